package log

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// 별칭 타입이 logrus 타입과 상호 교환 가능한지 검증합니다.
func TestTypeAliases(t *testing.T) {
	t.Parallel()

	// 레벨 상수 매핑
	assert.Equal(t, logrus.PanicLevel, PanicLevel)
	assert.Equal(t, logrus.FatalLevel, FatalLevel)
	assert.Equal(t, logrus.ErrorLevel, ErrorLevel)
	assert.Equal(t, logrus.WarnLevel, WarnLevel)
	assert.Equal(t, logrus.InfoLevel, InfoLevel)
	assert.Equal(t, logrus.DebugLevel, DebugLevel)
	assert.Equal(t, logrus.TraceLevel, TraceLevel)

	// Fields 상호 교환
	localFields := Fields{"component": "sync.service"}
	var logrusFields logrus.Fields = localFields
	assert.Equal(t, localFields, Fields(logrusFields))

	// Logger 포인터 상호 교환
	var logger *Logger = logrus.StandardLogger()
	assert.NotNil(t, logger)
}
