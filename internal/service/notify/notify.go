// Package notify 동기화 결과와 장애를 텔레그램으로 알리는 기능을 제공합니다.
package notify

import (
	"fmt"

	syncsvc "github.com/darkkaiser/concert-sync-server/internal/service/sync"

	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// component Notify 계층의 로깅용 컴포넌트 이름
const component = "notify"

// Notifier 동기화 이벤트를 외부 채널로 알리는 인터페이스입니다.
// 알림 전송 실패는 로깅만 하고 호출자에게 전파하지 않습니다.
type Notifier interface {
	// NotifySyncResult 전체 동기화 완료 결과를 알립니다.
	NotifySyncResult(result *syncsvc.SyncResult)

	// NotifyError 동기화 중 발생한 장애를 알립니다.
	NotifyError(message string, err error)
}

// TelegramNotifier 텔레그램 봇 기반 Notifier 구현체입니다.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

var _ Notifier = (*TelegramNotifier)(nil)

// NewTelegramNotifier 텔레그램 알림 전송기를 생성합니다.
// 봇 토큰 검증을 위해 텔레그램 API에 접속하므로 네트워크가 필요합니다.
func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "텔레그램 봇 초기화에 실패했습니다")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_username": bot.Self.UserName,
	}).Info("텔레그램 알림 전송기를 초기화했습니다")

	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) NotifySyncResult(result *syncsvc.SyncResult) {
	text := fmt.Sprintf(
		"🎵 콘서트 동기화 완료\n\n"+
			"• 전체 가수: %d명\n"+
			"• 동기화: %d명\n"+
			"• 건너뜀: %d명\n"+
			"• 발견된 콘서트: %d건",
		result.TotalArtists, result.Synced, result.Skipped, result.ConcertsFound,
	)
	n.send(text)
}

func (n *TelegramNotifier) NotifyError(message string, err error) {
	n.send(fmt.Sprintf("⚠️ %s\n\n%v", message, err))
}

func (n *TelegramNotifier) send(text string) {
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		applog.WithComponent(component).WithError(err).Error("텔레그램 알림 전송에 실패했습니다")
	}
}

// NopNotifier 텔레그램 설정이 없을 때 사용하는 무동작 Notifier입니다.
type NopNotifier struct{}

var _ Notifier = (*NopNotifier)(nil)

func (NopNotifier) NotifySyncResult(*syncsvc.SyncResult) {}

func (NopNotifier) NotifyError(string, error) {}
