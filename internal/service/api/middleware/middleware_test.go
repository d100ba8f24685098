package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestPanicRecovery(t *testing.T) {
	e := echo.New()
	e.Use(PanicRecovery())
	e.GET("/panic", func(echo.Context) error {
		panic("의도된 패닉")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()

	// 패닉이 서버 밖으로 전파되지 않아야 한다.
	assert.NotPanics(t, func() {
		e.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimiting(t *testing.T) {
	t.Run("버스트 초과 시 429", func(t *testing.T) {
		e := echo.New()
		e.Use(RateLimiting(1, 2))
		e.GET("/", func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		statuses := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)
			statuses = append(statuses, rec.Code)
		}

		assert.Equal(t, http.StatusOK, statuses[0])
		assert.Equal(t, http.StatusOK, statuses[1])
		assert.Equal(t, http.StatusTooManyRequests, statuses[2])
	})

	t.Run("IP별 독립 제한", func(t *testing.T) {
		e := echo.New()
		e.Use(RateLimiting(1, 1))
		e.GET("/", func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})

		first := httptest.NewRequest(http.MethodGet, "/", nil)
		first.RemoteAddr = "10.0.0.1:1234"
		firstRec := httptest.NewRecorder()
		e.ServeHTTP(firstRec, first)

		// 다른 IP의 첫 요청은 제한에 걸리지 않아야 한다.
		second := httptest.NewRequest(http.MethodGet, "/", nil)
		second.RemoteAddr = "10.0.0.2:1234"
		secondRec := httptest.NewRecorder()
		e.ServeHTTP(secondRec, second)

		assert.Equal(t, http.StatusOK, firstRec.Code)
		assert.Equal(t, http.StatusOK, secondRec.Code)
	})

	t.Run("잘못된 설정은 패닉", func(t *testing.T) {
		assert.Panics(t, func() { RateLimiting(0, 1) })
		assert.Panics(t, func() { RateLimiting(1, 0) })
	})
}

func TestMaskSensitiveQueryParams(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "민감 파라미터 없음",
			uri:  "/sync/results?artist_name=IU",
			want: "/sync/results?artist_name=IU",
		},
		{
			name: "api_key 마스킹",
			uri:  "/sync/run?api_key=supersecretvalue123",
			want: "/sync/run?api_key=supe***e123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSensitiveQueryParams(tt.uri))
		})
	}
}
