package api

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/darkkaiser/concert-sync-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.AppConfig {
	return &config.AppConfig{
		API: config.APIConfig{ListenPort: 0}, // 임의의 빈 포트에 바인딩
	}
}

func TestNewService_NilDependencies(t *testing.T) {
	assert.Panics(t, func() {
		NewService(nil, stubSyncService{}, stubSourceStore{}, stubTargetStore{}, nil)
	})
	assert.Panics(t, func() {
		NewService(newTestConfig(), nil, stubSourceStore{}, stubTargetStore{}, nil)
	})
}

func TestService_StartAndGracefulShutdown(t *testing.T) {
	s := NewService(newTestConfig(), stubSyncService{}, stubSourceStore{}, stubTargetStore{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	// 서버가 기동될 시간을 준 뒤 종료 신호를 보낸다.
	time.Sleep(100 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("서비스가 제한 시간 내에 종료되지 않았습니다")
	}
}

func TestService_DuplicateStart(t *testing.T) {
	s := NewService(newTestConfig(), stubSyncService{}, stubSourceStore{}, stubTargetStore{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	// 중복 호출은 에러 없이 무시된다.
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	cancel()
	wg.Wait()
}
