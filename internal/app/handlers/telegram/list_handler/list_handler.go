package list_handler

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// QuizLister возвращает каталог викторин
type QuizLister interface {
	ListQuizzes(ctx context.Context) ([]model.Quiz, error)
}

// ListHandler обрабатывает команду /list
type ListHandler struct {
	quizzes QuizLister
}

func NewListHandler(quizzes QuizLister) *ListHandler {
	return &ListHandler{quizzes: quizzes}
}

// Handle выводит список викторин с кнопкой запуска для каждой
func (h *ListHandler) Handle(c tele.Context) error {
	quizzes, err := h.quizzes.ListQuizzes(context.Background())
	if err != nil {
		return c.Send(fmt.Sprintf("Failed to list quizzes: %v", err))
	}
	if len(quizzes) == 0 {
		return c.Send("There are no quizzes available yet.")
	}

	var b strings.Builder
	b.WriteString("Available Quizzes:\n\n")
	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(quizzes))
	for _, q := range quizzes {
		fmt.Fprintf(&b, "ID: %s - %s\n", q.ID, q.Title)
		fmt.Fprintf(&b, "Description: %s\n", q.Description)
		fmt.Fprintf(&b, "Questions: %d\n", len(q.Questions))
		fmt.Fprintf(&b, "Time limit: %ds per question\n\n", q.TimeLimit)
		rows = append(rows, markup.Row(markup.Data("▶️ "+q.Title, model.TakeQuizKey, q.ID)))
	}
	b.WriteString("Use /take (quiz_id) to take a quiz.")
	markup.Inline(rows...)

	return c.Send(b.String(), markup)
}

func (h *ListHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
