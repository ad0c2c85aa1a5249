package cancel_handler

import (
	"context"
	"errors"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/session"
)

// SessionCanceller отменяет попытку без сохранения результата
type SessionCanceller interface {
	Cancel(ctx context.Context, userID int64) error
}

// DraftCanceller удаляет черновик викторины
type DraftCanceller interface {
	Cancel(adminID int64) bool
}

// CancelHandler обрабатывает /cancel: сначала отменяется попытка, иначе черновик викторины
type CancelHandler struct {
	engine SessionCanceller
	drafts DraftCanceller
}

func NewCancelHandler(engine SessionCanceller, drafts DraftCanceller) *CancelHandler {
	return &CancelHandler{engine: engine, drafts: drafts}
}

func (h *CancelHandler) Handle(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	err := h.engine.Cancel(context.Background(), user.ID)
	if err == nil {
		// сообщение об отмене отправляет движок
		return nil
	}
	if !errors.Is(err, session.ErrNoActiveSession) {
		return c.Send("Failed to cancel the quiz. Please try again.")
	}

	if h.drafts != nil && h.drafts.Cancel(user.ID) {
		return c.Send("Quiz creation cancelled.")
	}
	return c.Send("You are not currently taking a quiz.")
}

func (h *CancelHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
