package poller

import (
	"errors"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/infra/config"
)

// ErrWebhookURLRequired - в режиме webhook не задан публичный URL
var ErrWebhookURLRequired = errors.New("webhook mode requires WEBHOOK_URL")

// NewPoller создаёт Poller в зависимости от режима работы бота
func NewPoller(cfg config.TelegramBot) (tele.Poller, error) {
	if cfg.Mode == config.ModeWebhook {
		if cfg.WebhookURL == "" {
			return nil, ErrWebhookURLRequired
		}
		return &tele.Webhook{
			Listen: cfg.ListenAddr,
			Endpoint: &tele.WebhookEndpoint{
				PublicURL: cfg.WebhookURL,
			},
		}, nil
	}
	return &tele.LongPoller{Timeout: cfg.PollInterval}, nil
}
