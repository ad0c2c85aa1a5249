package stop_handler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/telegramtest"
	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/session"
)

type fakeEngine struct{ err error }

func (e fakeEngine) End(context.Context, int64) (model.Result, error) { return model.Result{}, e.err }

func TestStopHandler(t *testing.T) {
	bot, api := telegramtest.NewBot(t)

	if err := NewStopHandler(fakeEngine{}).Handle(bot.NewContext(telegramtest.Message(1, "/stop", ""))); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(api.Calls()) != 0 {
		t.Errorf("successful stop must leave the summary to the engine, got %v", api.Texts())
	}

	_ = NewStopHandler(fakeEngine{err: session.ErrNoActiveSession}).Handle(bot.NewContext(telegramtest.Message(1, "/stop", "")))
	if got := api.Last(t).Text(); got != "You are not currently taking a quiz." {
		t.Errorf("unexpected reply %q", got)
	}

	_ = NewStopHandler(fakeEngine{err: errors.New("db down")}).Handle(bot.NewContext(telegramtest.Message(1, "/stop", "")))
	if got := api.Last(t).Text(); !strings.Contains(got, "could not be saved") {
		t.Errorf("unexpected reply %q", got)
	}
}
