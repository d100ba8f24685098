package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// definedTypes 정의된 모든 ErrorType 상수와 문자열 표현입니다.
var definedTypes = []struct {
	errType ErrorType
	str     string
}{
	{Internal, "Internal"},
	{System, "System"},
	{InvalidInput, "InvalidInput"},
	{NotFound, "NotFound"},
	{ExecutionFailed, "ExecutionFailed"},
	{ParsingFailed, "ParsingFailed"},
	{Timeout, "Timeout"},
	{Unavailable, "Unavailable"},
}

func TestErrorType_String(t *testing.T) {
	for _, tt := range definedTypes {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.errType.String())
		})
	}

	t.Run("정의되지 않은 값", func(t *testing.T) {
		assert.Equal(t, "ErrorType(-1)", ErrorType(-1).String())
		assert.Equal(t, "ErrorType(999)", ErrorType(999).String())
	})
}

func TestErrorType_ZeroValue(t *testing.T) {
	// 초기화되지 않은 ErrorType은 Internal로 분류되어야 한다.
	var zeroType ErrorType
	assert.Equal(t, Internal, zeroType)
}

func TestErrorType_Printability(t *testing.T) {
	assert.Equal(t, "NotFound", fmt.Sprintf("%s", NotFound))
	assert.Equal(t, "NotFound", fmt.Sprintf("%v", NotFound))
	assert.Equal(t, "\"NotFound\"", fmt.Sprintf("%q", NotFound))
}
