package answer_handler

import (
	"context"
	"errors"
	"log"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/session"
	"github.com/IT-Nick/quizbot/internal/infra/presenter"
)

// AnswerSubmitter принимает ответ на вопрос с указанной меткой
type AnswerSubmitter interface {
	SubmitAnswer(ctx context.Context, userID int64, question int, generation uint64, option int) error
}

// AnswerHandler обрабатывает нажатие на вариант ответа
type AnswerHandler struct {
	engine AnswerSubmitter
	logger *log.Logger
}

func NewAnswerHandler(engine AnswerSubmitter, logger *log.Logger) *AnswerHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &AnswerHandler{engine: engine, logger: logger}
}

// Handle передает ответ движку. Обратную связь по ответу показывает движок,
// здесь только закрывается callback. Повторные и устаревшие нажатия молча игнорируются.
func (h *AnswerHandler) Handle(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	data, err := presenter.DecodeAnswer(c.Data())
	if err != nil {
		h.logger.Printf("answer callback from %d: %v", user.ID, err)
		return c.Respond()
	}

	err = h.engine.SubmitAnswer(context.Background(), user.ID, data.Question, data.Generation, data.Option)
	switch {
	case err == nil, errors.Is(err, session.ErrStaleEvent):
		return c.Respond()
	case errors.Is(err, session.ErrNoActiveSession):
		return c.Respond(&tele.CallbackResponse{Text: "You are not currently taking a quiz."})
	case errors.Is(err, session.ErrInvalidOption):
		return c.Respond(&tele.CallbackResponse{Text: "Invalid option."})
	default:
		h.logger.Printf("submit answer for %d: %v", user.ID, err)
		return c.Respond(&tele.CallbackResponse{Text: "Failed to record your answer."})
	}
}

func (h *AnswerHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
