package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/concert-sync-server/internal/service/api/constants"
	"github.com/darkkaiser/concert-sync-server/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/concert-sync-server/internal/service/api/middleware"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간
	// 동기화 실행 엔드포인트가 블로킹 방식이므로 기본값이 깁니다. (10분)
	RequestTimeout time.Duration
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다 (순서가 중요합니다):
//
//  1. PanicRecovery - 패닉 복구 및 로깅
//  2. RequestID - 요청별 고유 ID 부여 (X-Request-ID 헤더)
//  3. ServerHeader - Server 헤더 제거 (서버 스택 정보 노출 방지)
//  4. HTTPLogger - HTTP 요청/응답 로깅 (민감 파라미터 마스킹)
//  5. RateLimiting - IP 기반 요청 제한 (기본: 20 req/s, 버스트 40)
//  6. BodyLimit - 요청 본문 크기 제한 (기본: 128KB)
//  7. CORS - Cross-Origin Resource Sharing
//  8. Secure - 보안 헤더 설정 (X-XSS-Protection 등)
//
// 동기화 실행 엔드포인트는 수 분간 블로킹될 수 있으므로 Echo의 Timeout
// 미들웨어 대신 서버 레벨의 WriteTimeout으로만 제한합니다.
//
// 라우트 설정은 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 설정해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true

	// 타임아웃 미설정 시 기본값을 적용하여 무한 대기를 방지합니다.
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = constants.DefaultRequestTimeout
	}

	// 보안 및 리소스 관리를 위한 HTTP 서버 타임아웃 설정
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = timeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 프레임워크의 내부 로그를 애플리케이션 로거로 통합합니다.
	e.Logger = appmiddleware.Logger{Logger: applog.StandardLogger()}

	// 전역 HTTP 에러 핸들러 설정
	e.HTTPErrorHandler = httputil.ErrorHandler

	// 미들웨어 적용 (권장 순서)

	// 1. Panic 복구
	e.Use(appmiddleware.PanicRecovery())
	// 2. Request ID
	e.Use(middleware.RequestID())
	// 3. Server 헤더 제거 (보안 강화)
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	// 4. HTTP 로깅 (RateLimit 이전에 위치하여 429 에러도 기록)
	e.Use(appmiddleware.HTTPLogger())
	// 5. Rate Limiting
	e.Use(appmiddleware.RateLimiting(constants.DefaultRateLimitPerSecond, constants.DefaultRateLimitBurst))
	// 6. Body Limit
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	// 7. CORS 설정
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	// 8. 보안 헤더 (XSS Protection 등)
	e.Use(middleware.Secure())

	return e
}
