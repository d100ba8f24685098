// Package handler 콘서트 동기화 API의 HTTP 핸들러를 제공합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/concert-sync-server/internal/storage"

	syncsvc "github.com/darkkaiser/concert-sync-server/internal/service/sync"
)

// SyncService 동기화 실행 서비스 인터페이스입니다.
type SyncService interface {
	// SyncAll 소스 DB의 전체 가수를 대상으로 동기화를 실행합니다.
	SyncAll(ctx context.Context, force bool) (*syncsvc.SyncResult, error)

	// SyncArtist 이름으로 지정한 가수 한 명을 동기화합니다.
	// 가수 키워드가 존재하지 않으면 apperrors.NotFound 타입의 에러를 반환합니다.
	SyncArtist(ctx context.Context, artistName string, force bool) (*syncsvc.ArtistSyncResult, error)
}

// Handler API 요청을 처리하는 핸들러입니다.
//
// 동기화 실행은 SyncService에 위임하고, 결과 조회는 타겟 DB 저장소를
// 직접 읽습니다. 헬스체크를 위해 소스/타겟 DB 저장소의 Ping을 사용합니다.
type Handler struct {
	syncService SyncService
	source      storage.SourceStore
	target      storage.TargetStore

	aiEnabled        bool
	schedulerEnabled bool
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(syncService SyncService, source storage.SourceStore, target storage.TargetStore, aiEnabled, schedulerEnabled bool) *Handler {
	if syncService == nil {
		panic("SyncService는 필수입니다")
	}
	if source == nil {
		panic("SourceStore는 필수입니다")
	}
	if target == nil {
		panic("TargetStore는 필수입니다")
	}

	return &Handler{
		syncService: syncService,
		source:      source,
		target:      target,

		aiEnabled:        aiEnabled,
		schedulerEnabled: schedulerEnabled,
	}
}
