package handler

import (
	"context"
	"net/http"

	"github.com/darkkaiser/concert-sync-server/internal/config"
	"github.com/darkkaiser/concert-sync-server/internal/service/api/constants"
	"github.com/labstack/echo/v4"
)

// HealthResponse 헬스체크 응답 형식입니다.
type HealthResponse struct {
	Status           string `json:"status"`
	AIEnabled        bool   `json:"ai_enabled"`
	SchedulerEnabled bool   `json:"scheduler_enabled"`
	SourceDB         bool   `json:"source_db"`
	TargetDB         bool   `json:"target_db"`
}

// RootResponse 루트 엔드포인트 응답 형식입니다.
type RootResponse struct {
	Service          string `json:"service"`
	AIEnabled        bool   `json:"ai_enabled"`
	SchedulerEnabled bool   `json:"scheduler_enabled"`
}

// HealthCheckHandler 서비스와 의존 구성요소의 상태를 반환합니다.
//
// GET /health/
//
// 소스/타겟 DB에 Ping을 수행하여 연결 상태를 확인하고, AI 분석과
// 스케줄러의 활성화 여부를 함께 보고합니다. 두 DB 중 하나라도
// 응답하지 않으면 status가 unhealthy로 표시됩니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), constants.DefaultHealthCheckTimeout)
	defer cancel()

	sourceOK := h.source.Ping(ctx) == nil
	targetOK := h.target.Ping(ctx) == nil

	status := constants.HealthStatusHealthy
	if !sourceOK || !targetOK {
		status = constants.HealthStatusUnhealthy
	}

	return c.JSON(http.StatusOK, HealthResponse{
		Status:           status,
		AIEnabled:        h.aiEnabled,
		SchedulerEnabled: h.schedulerEnabled,
		SourceDB:         sourceOK,
		TargetDB:         targetOK,
	})
}

// RootHandler 서비스 기본 정보를 반환합니다.
//
// GET /
func (h *Handler) RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{
		Service:          config.AppName,
		AIEnabled:        h.aiEnabled,
		SchedulerEnabled: h.schedulerEnabled,
	})
}
