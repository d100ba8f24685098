package api

import (
	"github.com/darkkaiser/concert-sync-server/internal/service/api/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes API 서비스의 라우트를 등록합니다.
//
//   - GET  /                              서비스 기본 정보
//   - GET  /health/                       헬스체크 (DB Ping 포함)
//   - POST /sync/run?force=               전체 가수 동기화 실행
//   - POST /sync/run/:artist_name?force=  특정 가수 동기화 실행
//   - GET  /sync/results?artist_name=     콘서트 검색 결과 조회
//   - GET  /sync/results/:artist_keyword_id
//   - GET  /sync/crawled?artist_name=     크롤링 원본 데이터 조회
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/", h.RootHandler)

	e.GET("/health", h.HealthCheckHandler)
	e.GET("/health/", h.HealthCheckHandler)

	sync := e.Group("/sync")
	sync.POST("/run", h.RunSyncHandler)
	sync.POST("/run/:artist_name", h.RunArtistSyncHandler)
	sync.GET("/results", h.ListResultsHandler)
	sync.GET("/results/:artist_keyword_id", h.ResultsByArtistIDHandler)
	sync.GET("/crawled", h.ListCrawledHandler)
}
