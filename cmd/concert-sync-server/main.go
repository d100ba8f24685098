package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/darkkaiser/concert-sync-server/internal/config"
	"github.com/darkkaiser/concert-sync-server/internal/service"
	"github.com/darkkaiser/concert-sync-server/internal/service/analyzer"
	"github.com/darkkaiser/concert-sync-server/internal/service/api"
	"github.com/darkkaiser/concert-sync-server/internal/service/crawler"
	"github.com/darkkaiser/concert-sync-server/internal/service/notify"
	"github.com/darkkaiser/concert-sync-server/internal/service/scheduler"
	"github.com/darkkaiser/concert-sync-server/internal/storage"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
	log "github.com/sirupsen/logrus"

	syncsvc "github.com/darkkaiser/concert-sync-server/internal/service/sync"
)

// 빌드 정보 변수 (Dockerfile의 ldflags로 주입됨)
var (
	Version     = "dev"     // Git 커밋 해시
	BuildDate   = "unknown" // 빌드 날짜
	BuildNumber = "0"       // 빌드 번호
)

const (
	banner = `
   ____                                _     ____
  / ___| ___   _ __    ___  ___  _ __| |_  / ___|  _   _  _ __    ___
 | |    / _ \ | '_ \  / __|/ _ \| '__| __| \___ \ | | | || '_ \  / __|
 | |___| (_) || | | || (__|  __/| |  | |_   ___) || |_| || | | || (__
  \____|\___/ |_| |_| \___|\___||_|   \__| |____/  \__, ||_| |_| \___|
                                                   |___/     %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.Load()
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화 및 오래된 로그 파일 정리
	// 무인 운영 서버이므로 에러 레벨 이상은 별도 파일로 분리해 기록한다.
	applog.SetCallerPathPrefix("github.com/darkkaiser/concert-sync-server/")
	appLogCloser := applog.InitFileWithOptions(config.AppName, appConfig.Log.RetentionDays, applog.InitFileOptions{
		EnableCriticalLog: true,
	})
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	// 아스키아트 출력(https://ko.rakko.tools/tools/68/, 폰트:standard)
	fmt.Printf(banner, Version)

	// 빌드 정보 출력
	applog.WithComponentAndFields("main", log.Fields{
		"version":      Version,
		"build_date":   BuildDate,
		"build_number": BuildNumber,
		"go_version":   runtime.Version(),
		"os_arch":      fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}).Info("서버 초기화 시작")

	// 소스/타겟 DB URL은 모든 동기화·조회 경로의 전제 조건이다.
	if !appConfig.Database.Configured() {
		log.Fatal("소스/타겟 DB URL(SOURCE_DATABASE_URL, TARGET_DATABASE_URL)이 설정되지 않아 서버를 시작할 수 없습니다")
	}

	// DB 연결 및 저장소를 초기화한다.
	sourceDB, err := storage.Open(appConfig.Database.SourceURL)
	if err != nil {
		log.WithError(err).Fatal("소스 DB 연결 실패")
	}
	targetDB, err := storage.Open(appConfig.Database.TargetURL)
	if err != nil {
		log.WithError(err).Fatal("타겟 DB 연결 실패")
	}

	sourceStore := storage.NewSourceStore(sourceDB)
	targetStore := storage.NewTargetStore(targetDB)

	// 타겟 DB에 결과 테이블을 생성한다. (소스 DB는 건드리지 않는다)
	if err := targetStore.Migrate(context.Background()); err != nil {
		log.WithError(err).Fatal("타겟 DB 테이블 생성 실패")
	}

	// AI 분석기를 초기화한다. API 키가 없으면 분석 없이 동작한다.
	concertAnalyzer, err := analyzer.NewGeminiAnalyzer(context.Background(), appConfig.AI.APIKey, appConfig.AI.Model)
	if err != nil {
		log.WithError(err).Fatal("Gemini 분석기 초기화 실패")
	}

	// 텔레그램 알림 전송기를 초기화한다. 설정이 없으면 무동작 전송기를 사용한다.
	var notifier notify.Notifier = notify.NopNotifier{}
	if appConfig.Telegram.Enabled() {
		telegramNotifier, err := notify.NewTelegramNotifier(appConfig.Telegram.BotToken, appConfig.Telegram.ChatID)
		if err != nil {
			// 알림은 부가 기능이므로 초기화 실패가 서버 기동을 막지 않는다.
			applog.WithComponent("main").WithError(err).Warn("텔레그램 알림 전송기 초기화에 실패하여 알림 없이 동작합니다")
		} else {
			notifier = telegramNotifier
		}
	}

	// 서비스를 생성하고 초기화한다.
	syncService := syncsvc.NewService(sourceStore, targetStore, crawler.NewDefaultOrchestrator(), concertAnalyzer)
	apiService := api.NewService(appConfig, syncService, sourceStore, targetStore, notifier)

	services := []service.Service{apiService}

	// 스케줄러는 활성화 설정과 AI API 키가 모두 준비된 경우에만 시작한다.
	// 조건이 충족되지 않아도 API를 통한 수동 동기화는 가능하다.
	if appConfig.Scheduler.Enabled && appConfig.AI.Enabled() {
		services = append(services, scheduler.NewService(syncService, appConfig.Scheduler.SyncInterval, notifier))
	} else {
		applog.WithComponentAndFields("main", log.Fields{
			"scheduler_enabled": appConfig.Scheduler.Enabled,
			"ai_enabled":        appConfig.AI.Enabled(),
		}).Info("스케줄러 시작 조건이 충족되지 않아 주기 동기화를 건너뜁니다")
	}

	// Set up cancellation context and waitgroup
	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	// 서비스를 시작한다.
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", log.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	// Handle sigterm and await termC signal
	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC // Blocks here until interrupted

	// Handle shutdown
	applog.WithComponent("main").Info("Shutdown signal received")
	cancel()             // Signal cancellation to context.Context
	serviceStopWG.Wait() // Block here until are workers are done
}
