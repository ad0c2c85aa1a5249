package start_handler

import (
	"strings"
	"testing"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/telegramtest"
)

func TestStartHandler(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	h := NewStartHandler(func(id int64) bool { return id == 1 })

	_ = h.Handle(bot.NewContext(telegramtest.Message(2, "/start", "")))
	got := api.Last(t).Text()
	if !strings.Contains(got, "Hello Ann!") || strings.Contains(got, "/admin") {
		t.Errorf("unexpected user greeting %q", got)
	}

	_ = h.Handle(bot.NewContext(telegramtest.Message(1, "/start", "")))
	if got := api.Last(t).Text(); !strings.Contains(got, "Use /admin") {
		t.Errorf("admin greeting must mention /admin, got %q", got)
	}
}
