// Package scheduler 동기화 파이프라인을 주기적으로 실행하는 스케줄러 서비스입니다.
package scheduler

import (
	"context"
	"fmt"
	gosync "sync"

	"github.com/darkkaiser/concert-sync-server/internal/service/notify"
	syncsvc "github.com/darkkaiser/concert-sync-server/internal/service/sync"

	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

// SyncRunner 전체 동기화를 실행하는 인터페이스입니다.
type SyncRunner interface {
	SyncAll(ctx context.Context, force bool) (*syncsvc.SyncResult, error)
}

// Scheduler 설정된 주기(SYNC_INTERVAL)마다 전체 동기화를 실행하는 서비스입니다.
//
// 서비스 시작 직후 첫 동기화를 즉시 1회 실행하고, 이후 주기적으로 반복합니다.
// 이전 동기화가 끝나지 않았으면 다음 주기는 건너뜁니다. (중복 실행 방지)
type Scheduler struct {
	syncRunner   SyncRunner
	syncInterval int
	notifier     notify.Notifier

	cron *cron.Cron

	// syncCtx 동기화 실행에 전달되는 컨텍스트 (서비스 종료 시 취소)
	syncCtx context.Context

	running   bool
	runningMu gosync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
// syncInterval은 동기화 주기(초)입니다.
func NewService(syncRunner SyncRunner, syncInterval int, notifier notify.Notifier) *Scheduler {
	if syncRunner == nil {
		panic("SyncRunner는 필수입니다")
	}
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}

	return &Scheduler{
		syncRunner:   syncRunner,
		syncInterval: syncInterval,
		notifier:     notifier,
	}
}

// Start 스케줄러를 시작하고 동기화 작업을 Cron 엔진에 등록합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *gosync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("서비스 시작 진입: Scheduler 서비스 초기화 프로세스를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	s.syncCtx = serviceStopCtx

	// Cron 엔진 초기화
	// - Recover: Panic 발생 시 복구하여 다음 주기 실행에 영향을 주지 않음
	// - SkipIfStillRunning: 이전 동기화가 끝나지 않았으면 다음 실행을 건너뜀
	s.cron = cron.New(
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(
			cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger())),
			cron.SkipIfStillRunning(cron.VerbosePrintfLogger(applog.StandardLogger())),
		),
	)

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %ds", s.syncInterval), s.runSync)
	if err != nil {
		serviceStopWG.Done()
		return err
	}

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"sync_interval": s.syncInterval,
	}).Info("서비스 시작 완료: Scheduler 서비스가 정상적으로 초기화되었습니다")

	// 첫 동기화는 주기를 기다리지 않고 즉시 실행한다.
	// WrappedJob을 통해 실행하여 Recover/SkipIfStillRunning 체인을 그대로 적용한다.
	go s.cron.Entry(entryID).WrappedJob.Run()

	// 종료 신호 대기 (고루틴)
	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 실행 중인 스케줄러를 안전하게 중지합니다.
// 실행 중인 동기화가 있으면 완료될 때까지 대기합니다.
func (s *Scheduler) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("종료 절차 진입: Scheduler 서비스 중지 시그널을 수신했습니다")

	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 종료 완료: 모든 리소스가 정리되었습니다")
}

// runSync 전체 동기화를 1회 실행합니다. (Cron 엔진에서 호출)
func (s *Scheduler) runSync() {
	applog.WithComponent(component).Info("주기 동기화를 시작합니다")

	result, err := s.syncRunner.SyncAll(s.syncCtx, false)
	if err != nil {
		applog.WithComponent(component).WithError(err).Error("주기 동기화에 실패했습니다")
		s.notifier.NotifyError("주기 동기화에 실패했습니다", err)
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"total_artists":  result.TotalArtists,
		"synced":         result.Synced,
		"skipped":        result.Skipped,
		"concerts_found": result.ConcertsFound,
	}).Info("주기 동기화를 완료했습니다")

	// 새로 동기화된 가수가 있을 때만 결과를 알린다.
	if result.Synced > 0 {
		s.notifier.NotifySyncResult(result)
	}
}
