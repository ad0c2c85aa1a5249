package stop_handler

import (
	"context"
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/session"
)

// SessionEnder досрочно завершает попытку с подсчетом результата
type SessionEnder interface {
	End(ctx context.Context, userID int64) (model.Result, error)
}

// StopHandler обрабатывает /stop. Неотвеченные вопросы засчитываются как пропущенные.
type StopHandler struct {
	engine SessionEnder
}

func NewStopHandler(engine SessionEnder) *StopHandler {
	return &StopHandler{engine: engine}
}

func (h *StopHandler) Handle(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	_, err := h.engine.End(context.Background(), user.ID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrNoActiveSession):
		return c.Send("You are not currently taking a quiz.")
	default:
		return c.Send(fmt.Sprintf("Your quiz was finished, but the result could not be saved: %v", err))
	}
}

func (h *StopHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
