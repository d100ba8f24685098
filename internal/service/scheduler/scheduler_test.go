package scheduler

import (
	"context"
	gosync "sync"
	"testing"
	"time"

	syncsvc "github.com/darkkaiser/concert-sync-server/internal/service/sync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeSyncRunner 테스트용 동기화 실행기
type fakeSyncRunner struct {
	mu    gosync.Mutex
	calls int
	done  chan struct{}
}

func newFakeSyncRunner() *fakeSyncRunner {
	return &fakeSyncRunner{done: make(chan struct{}, 16)}
}

func (f *fakeSyncRunner) SyncAll(_ context.Context, _ bool) (*syncsvc.SyncResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	f.done <- struct{}{}
	return &syncsvc.SyncResult{}, nil
}

func (f *fakeSyncRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestScheduler_RunsImmediatelyOnStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := newFakeSyncRunner()
	s := NewService(runner, 3600, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var wg gosync.WaitGroup
	wg.Add(1)

	require.NoError(t, s.Start(ctx, &wg))

	// 첫 동기화는 주기를 기다리지 않고 즉시 실행된다.
	select {
	case <-runner.done:
	case <-time.After(3 * time.Second):
		t.Fatal("첫 동기화가 실행되지 않았습니다")
	}
	assert.Equal(t, 1, runner.callCount())

	cancel()
	wg.Wait()
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewService(newFakeSyncRunner(), 3600, nil)

	// 시작 전 Stop 호출은 아무 동작도 하지 않아야 한다.
	assert.NotPanics(t, s.Stop)
}

func TestScheduler_DuplicateStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	runner := newFakeSyncRunner()
	s := NewService(runner, 3600, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var wg gosync.WaitGroup

	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	// 중복 호출은 에러 없이 무시된다.
	wg.Add(1)
	require.NoError(t, s.Start(ctx, &wg))

	select {
	case <-runner.done:
	case <-time.After(3 * time.Second):
		t.Fatal("첫 동기화가 실행되지 않았습니다")
	}

	cancel()
	wg.Wait()
}

func TestNewService_NilRunnerPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewService(nil, 3600, nil)
	})
}
