package config

import (
	"fmt"
	"os"
	"strings"

	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "concert-sync-server"

	// DefaultFilename 애플리케이션 초기화 시 참조하는 기본 설정 파일명입니다.
	// 설정 파일은 선택 사항이며, 파일이 없으면 기본값과 환경 변수만으로 동작합니다.
	DefaultFilename = AppName + ".json"

	// DefaultAIModel LLM 분석에 사용할 기본 모델 식별자입니다.
	DefaultAIModel = "gemini-2.5-flash"

	// DefaultSyncInterval 스케줄러의 기본 동기화 주기(초)입니다.
	DefaultSyncInterval = 3600

	// DefaultListenPort API 서버의 기본 포트입니다.
	DefaultListenPort = 8080

	// DefaultLogRetentionDays 로그 파일의 기본 보존 기간(일)입니다.
	DefaultLogRetentionDays = 30.0
)

// legacyEnvKeys 접두사 없는 레거시 환경 변수와 설정 키의 매핑입니다.
//
// 이 시스템은 기존 배포 환경과의 호환성을 위해 SOURCE_DATABASE_URL 같은
// 평면적인 환경 변수 이름을 그대로 인식합니다. 동일한 항목이 설정 파일에도
// 존재하면 환경 변수가 우선합니다.
var legacyEnvKeys = map[string]string{
	"SOURCE_DATABASE_URL": "database.source_url",
	"TARGET_DATABASE_URL": "database.target_url",
	"GOOGLE_API_KEY":      "ai.api_key",
	"AI_MODEL":            "ai.model",
	"ENABLE_SCHEDULER":    "scheduler.enabled",
	"SYNC_INTERVAL":       "scheduler.sync_interval",
	"BATCH_SIZE":          "batch_size",
	"TELEGRAM_BOT_TOKEN":  "telegram.bot_token",
	"TELEGRAM_CHAT_ID":    "telegram.chat_id",
	"LISTEN_PORT":         "api.listen_port",
	"DEBUG":               "debug",
}

// AppConfig 애플리케이션의 모든 설정을 관장하는 최상위 루트 구조체
type AppConfig struct {
	Debug     bool            `json:"debug"`
	Database  DatabaseConfig  `json:"database"`
	AI        AIConfig        `json:"ai"`
	Scheduler SchedulerConfig `json:"scheduler"`
	API       APIConfig       `json:"api"`
	Telegram  TelegramConfig  `json:"telegram"`
	Log       LogConfig       `json:"log"`

	// BatchSize 이전 배포 환경에서 넘어온 레거시 설정입니다.
	// 콘서트 동기화 파이프라인은 이 값을 사용하지 않지만, 기존 환경 변수가
	// 설정 로드를 실패시키지 않도록 항목 자체는 유지합니다.
	BatchSize int `json:"batch_size"`
}

// validate 설정 로드 직후, 각 설정 항목의 정합성과 필수 값의 유효성을 검증합니다.
func (c *AppConfig) validate() error {
	if err := c.AI.validate(); err != nil {
		return err
	}
	if err := c.Scheduler.validate(); err != nil {
		return err
	}
	if err := c.API.validate(); err != nil {
		return err
	}
	if err := c.Telegram.validate(); err != nil {
		return err
	}
	return nil
}

// DatabaseConfig 소스/타겟 DB 연결 문자열을 담는 설정 구조체
//
// 소스 DB는 가수 키워드(artist_keyword)를 읽기 전용으로 조회하고,
// 타겟 DB에는 크롤링 원본과 AI 분석 결과가 저장됩니다. 두 URL이 같은
// DB 인스턴스를 가리켜도 무방합니다.
type DatabaseConfig struct {
	SourceURL string `json:"source_url"`
	TargetURL string `json:"target_url"`
}

// Configured 소스와 타겟 DB URL이 모두 설정되었는지 여부를 반환합니다.
func (c *DatabaseConfig) Configured() bool {
	return c.SourceURL != "" && c.TargetURL != ""
}

// AIConfig Gemini API 자격 증명과 모델 식별자를 담는 설정 구조체
type AIConfig struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}

// Enabled API 키가 설정되어 AI 분석이 가능한지 여부를 반환합니다.
func (c *AIConfig) Enabled() bool {
	return c.APIKey != ""
}

func (c *AIConfig) validate() error {
	if strings.TrimSpace(c.Model) == "" {
		return apperrors.New(apperrors.InvalidInput, "AI 모델(ai.model)이 설정되지 않았습니다")
	}
	return nil
}

// SchedulerConfig 주기적 동기화 스케줄러 동작을 정의하는 설정 구조체
type SchedulerConfig struct {
	Enabled bool `json:"enabled"`

	// SyncInterval 동기화 주기(초)입니다.
	SyncInterval int `json:"sync_interval"`
}

func (c *SchedulerConfig) validate() error {
	if c.SyncInterval < 1 {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("동기화 주기(scheduler.sync_interval)는 1초 이상이어야 합니다: %d", c.SyncInterval))
	}
	return nil
}

// APIConfig API 서버의 포트 설정을 정의하는 구조체
type APIConfig struct {
	ListenPort int `json:"listen_port" validate:"min=1,max=65535"`
}

func (c *APIConfig) validate() error {
	if err := checkStruct(c, "API 서버"); err != nil {
		// Validator 에러를 사용자 친화적인 메시지로 변환한다.
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("API 서버 포트(api.listen_port)는 1에서 65535 사이의 값이어야 합니다: %d", c.ListenPort))
	}
	return nil
}

// TelegramConfig 동기화 실패 알림용 텔레그램 봇 정보를 담는 설정 구조체
//
// 봇 토큰과 채팅 ID가 모두 설정된 경우에만 알림이 활성화되며,
// 둘 다 비어있으면 알림 기능은 조용히 비활성화됩니다.
type TelegramConfig struct {
	BotToken string `json:"bot_token"`
	ChatID   int64  `json:"chat_id"`
}

// Enabled 텔레그램 알림이 활성화되었는지 여부를 반환합니다.
func (c *TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != 0
}

func (c *TelegramConfig) validate() error {
	// 둘 중 하나만 설정된 어중간한 상태는 설정 실수일 가능성이 높으므로 거부한다.
	if (c.BotToken != "") != (c.ChatID != 0) {
		return apperrors.New(apperrors.InvalidInput, "텔레그램 알림을 사용하려면 봇 토큰(telegram.bot_token)과 채팅 ID(telegram.chat_id)를 모두 설정해야 합니다")
	}
	if c.BotToken != "" && !telegramBotTokenRegex.MatchString(c.BotToken) {
		return apperrors.New(apperrors.InvalidInput, "텔레그램 봇 토큰(telegram.bot_token) 형식이 올바르지 않습니다")
	}
	return nil
}

// LogConfig 로그 파일 보존 정책을 정의하는 설정 구조체
type LogConfig struct {
	RetentionDays float64 `json:"retention_days"`
}

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 경로의 설정 파일을 읽어 AppConfig 객체를 생성합니다.
//
// 로드 우선순위(낮음 → 높음):
//  1. 기본값
//  2. JSON 설정 파일 (선택 사항 — 없으면 건너뜀)
//  3. CONCERT_SYNC_ 접두사 환경 변수 (이중 언더스코어 → 계층 구분자)
//  4. 레거시 평면 환경 변수 (SOURCE_DATABASE_URL, GOOGLE_API_KEY 등)
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값 로드 (가장 낮은 우선순위)
	err := k.Load(confmap.Provider(map[string]interface{}{
		"ai.model":                DefaultAIModel,
		"scheduler.enabled":       true,
		"scheduler.sync_interval": DefaultSyncInterval,
		"api.listen_port":         DefaultListenPort,
		"log.retention_days":      DefaultLogRetentionDays,
		"batch_size":              10,
	}, "."), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일 로드 (기본값 덮어쓰기)
	// 원본 배포 환경은 환경 변수만으로 동작하므로 설정 파일은 선택 사항입니다.
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if !os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
		}
	}

	// 3. 접두사 환경 변수 로드
	// 접두사: CONCERT_SYNC_
	// 구분자: 이중 언더스코어(__)를 점(.)으로 변환 (계층 구조 표현)
	// 예: CONCERT_SYNC_SCHEDULER__SYNC_INTERVAL -> scheduler.sync_interval
	if err := k.Load(env.Provider("CONCERT_SYNC_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "CONCERT_SYNC_")
		s = strings.ToLower(s)
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 레거시 평면 환경 변수 로드 (최우선 순위)
	legacy := map[string]interface{}{}
	for envName, key := range legacyEnvKeys {
		if v, ok := os.LookupEnv(envName); ok && v != "" {
			legacy[key] = v
		}
	}
	if len(legacy) > 0 {
		if err := k.Load(confmap.Provider(legacy, "."), nil); err != nil {
			return nil, apperrors.Wrap(err, apperrors.System, "레거시 환경 변수 로드에 실패했습니다")
		}
	}

	// 5. 구조체 언마샬링 (Strict Validation 적용)
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			ErrorUnused:      true, // 설정에 존재하지만 구조체에 없는 필드가 있을 경우 에러를 발생시킴
			WeaklyTypedInput: true,
		},
	}
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	// 6. DATABASE_URL 레거시 폴백
	// 소스/타겟 URL 중 설정되지 않은 쪽에 DATABASE_URL을 채워넣습니다.
	if fallback := os.Getenv("DATABASE_URL"); fallback != "" {
		if appConfig.Database.SourceURL == "" {
			appConfig.Database.SourceURL = fallback
		}
		if appConfig.Database.TargetURL == "" {
			appConfig.Database.TargetURL = fallback
		}
	}

	// 7. 유효성 검사 수행 (정합성 체크)
	if err := appConfig.validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 유효성 검증에 실패했습니다")
	}

	return &appConfig, nil
}
