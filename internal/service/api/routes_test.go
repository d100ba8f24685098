package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/concert-sync-server/internal/service/api/handler"
	"github.com/darkkaiser/concert-sync-server/internal/service/api/httputil"
	"github.com/darkkaiser/concert-sync-server/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncsvc "github.com/darkkaiser/concert-sync-server/internal/service/sync"
)

type stubSyncService struct{}

func (stubSyncService) SyncAll(context.Context, bool) (*syncsvc.SyncResult, error) {
	return &syncsvc.SyncResult{TotalArtists: 1, Synced: 1}, nil
}

func (stubSyncService) SyncArtist(context.Context, string, bool) (*syncsvc.ArtistSyncResult, error) {
	return &syncsvc.ArtistSyncResult{}, nil
}

type stubSourceStore struct{}

func (stubSourceStore) ListArtists(context.Context) ([]storage.ArtistKeyword, error) {
	return nil, nil
}

func (stubSourceStore) FindArtistByName(context.Context, string) (*storage.ArtistKeyword, error) {
	return nil, nil
}

func (stubSourceStore) Ping(context.Context) error { return nil }

type stubTargetStore struct{}

func (stubTargetStore) Migrate(context.Context) error                                { return nil }
func (stubTargetStore) SaveCrawledData(context.Context, []storage.CrawledData) error { return nil }
func (stubTargetStore) SyncedArtistIDs(context.Context) (map[int64]struct{}, error)  { return nil, nil }
func (stubTargetStore) DeleteArtistData(context.Context, int64) error                { return nil }
func (stubTargetStore) Ping(context.Context) error                                   { return nil }
func (stubTargetStore) SaveSearchResults(context.Context, []storage.ConcertSearchResult) error {
	return nil
}

func (stubTargetStore) ListSearchResults(context.Context, string) ([]storage.ConcertSearchResult, error) {
	return nil, nil
}

func (stubTargetStore) ListSearchResultsByArtistID(context.Context, int64) ([]storage.ConcertSearchResult, error) {
	return nil, nil
}

func (stubTargetStore) ListCrawledData(context.Context, string) ([]storage.CrawledData, error) {
	return nil, nil
}

// newTestServer 미들웨어와 라우트가 모두 설정된 테스트용 서버를 생성합니다.
func newTestServer() http.Handler {
	h := handler.NewHandler(stubSyncService{}, stubSourceStore{}, stubTargetStore{}, true, true)

	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"*"}})
	RegisterRoutes(e, h)

	return e
}

func TestRoutes_Registered(t *testing.T) {
	server := newTestServer()

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{"루트", http.MethodGet, "/", http.StatusOK},
		{"헬스체크", http.MethodGet, "/health/", http.StatusOK},
		{"헬스체크 슬래시 없이", http.MethodGet, "/health", http.StatusOK},
		{"전체 동기화 실행", http.MethodPost, "/sync/run", http.StatusOK},
		{"특정 가수 동기화 실행", http.MethodPost, "/sync/run/아이유", http.StatusOK},
		{"결과 조회", http.MethodGet, "/sync/results", http.StatusOK},
		{"크롤링 데이터 조회", http.MethodGet, "/sync/crawled", http.StatusOK},
		{"결과 없는 가수 ID 조회", http.MethodGet, "/sync/results/42", http.StatusNotFound},
		{"동기화 실행에 GET은 불가", http.MethodGet, "/sync/run", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()

			server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// 존재하지 않는 경로는 표준 에러 응답 형식의 404를 반환해야 한다.
func TestRoutes_NotFoundShape(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/no-such-path", nil)
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusNotFound, resp.ResultCode)
	assert.NotEmpty(t, resp.Message)
}

// 응답에 Server 헤더가 노출되지 않아야 한다.
func TestRoutes_ServerHeaderStripped(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health/", nil)
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Server"))
}
