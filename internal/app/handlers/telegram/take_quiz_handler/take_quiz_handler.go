package take_quiz_handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/session"
	"github.com/IT-Nick/quizbot/internal/infra/presenter"
)

// QuizGetter возвращает викторину по идентификатору
type QuizGetter interface {
	GetQuiz(ctx context.Context, id string) (model.Quiz, error)
}

// SessionStarter начинает попытку
type SessionStarter interface {
	Start(ctx context.Context, userID int64, quizID string) (session.Snapshot, error)
	Snapshot(userID int64) (session.Snapshot, bool)
}

// TakeQuizHandler обрабатывает /take <id> и нажатие кнопки запуска из /list
type TakeQuizHandler struct {
	quizzes QuizGetter
	engine  SessionStarter
}

func NewTakeQuizHandler(quizzes QuizGetter, engine SessionStarter) *TakeQuizHandler {
	return &TakeQuizHandler{quizzes: quizzes, engine: engine}
}

// Handle проверяет викторину, отправляет вводное сообщение и запускает попытку.
// Первый вопрос показывает движок.
func (h *TakeQuizHandler) Handle(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}
	if c.Callback() != nil {
		_ = c.Respond()
	}

	quizID := h.quizID(c)
	if quizID == "" {
		return c.Send("Please provide a quiz ID. Use /list to see available quizzes.")
	}
	if _, ok := h.engine.Snapshot(user.ID); ok {
		return c.Send("You are already taking a quiz. Please finish it or use /cancel to cancel it.")
	}

	ctx := context.Background()
	quiz, err := h.quizzes.GetQuiz(ctx, quizID)
	if errors.Is(err, model.ErrQuizNotFound) {
		return c.Send(fmt.Sprintf("Quiz with ID %s not found. Use /list to see available quizzes.", quizID))
	}
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to load quiz: %v", err))
	}
	if len(quiz.Questions) == 0 {
		return c.Send("This quiz has no questions yet.")
	}

	if err := c.Send(introText(quiz)); err != nil {
		return err
	}

	_, err = h.engine.Start(ctx, user.ID, quizID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, session.ErrAlreadyInSession):
		return c.Send("You are already taking a quiz. Please finish it or use /cancel to cancel it.")
	case errors.Is(err, model.ErrQuizNotFound):
		return c.Send(fmt.Sprintf("Quiz with ID %s not found. Use /list to see available quizzes.", quizID))
	default:
		return c.Send(fmt.Sprintf("Failed to start quiz: %v", err))
	}
}

func (h *TakeQuizHandler) quizID(c tele.Context) string {
	if cb := c.Callback(); cb != nil {
		return strings.TrimSpace(cb.Data)
	}
	args := c.Args()
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func introText(q model.Quiz) string {
	return fmt.Sprintf("Starting quiz: %s\n\n"+
		"Description: %s\n"+
		"Number of questions: %d\n"+
		"Time limit per question: %d seconds\n"+
		"Negative marking: %s points\n\n"+
		"Use /cancel to cancel the quiz or /stop to finish early.",
		q.Title, q.Description, len(q.Questions), q.TimeLimit, presenter.FormatScore(q.NegativeMarkingFactor))
}

func (h *TakeQuizHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
