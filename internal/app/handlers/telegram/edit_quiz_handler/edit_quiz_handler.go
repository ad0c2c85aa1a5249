package edit_quiz_handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// QuizEditor - операции администратора над каталогом
type QuizEditor interface {
	UpdateTimeLimit(ctx context.Context, id string, seconds int) (model.Quiz, error)
	UpdateQuestionTimeLimit(ctx context.Context, id string, index, seconds int) (model.Quiz, error)
	DeleteQuiz(ctx context.Context, id string) error
}

// EditTimeHandler обрабатывает /edittime <quiz_id> <seconds>
type EditTimeHandler struct {
	quizzes QuizEditor
}

func NewEditTimeHandler(quizzes QuizEditor) *EditTimeHandler {
	return &EditTimeHandler{quizzes: quizzes}
}

func (h *EditTimeHandler) Handle(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Send("Please provide all required arguments: /edittime (quiz_id) (seconds)")
	}
	seconds, err := strconv.Atoi(args[1])
	if err != nil {
		return c.Send("Please enter a valid number for the time limit.")
	}

	quiz, err := h.quizzes.UpdateTimeLimit(context.Background(), args[0], seconds)
	if err != nil {
		return c.Send(editErrorText(args[0], err))
	}
	return c.Send(fmt.Sprintf("Time limit for quiz %s has been updated to %d seconds per question.", quiz.Title, quiz.TimeLimit))
}

func (h *EditTimeHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// EditQuestionTimeHandler обрабатывает /editquestiontime <quiz_id> <index> <seconds>. Индекс начинается с 0.
type EditQuestionTimeHandler struct {
	quizzes QuizEditor
}

func NewEditQuestionTimeHandler(quizzes QuizEditor) *EditQuestionTimeHandler {
	return &EditQuestionTimeHandler{quizzes: quizzes}
}

func (h *EditQuestionTimeHandler) Handle(c tele.Context) error {
	args := c.Args()
	if len(args) < 3 {
		return c.Send("Please provide all required arguments: /editquestiontime (quiz_id) (question_index) (time_limit)")
	}
	index, err1 := strconv.Atoi(args[1])
	seconds, err2 := strconv.Atoi(args[2])
	if err1 != nil || err2 != nil {
		return c.Send("Error processing your request. Please use the format:\n/editquestiontime (quiz_id) (question_index) (time_limit)")
	}

	quiz, err := h.quizzes.UpdateQuestionTimeLimit(context.Background(), args[0], index, seconds)
	if err != nil {
		return c.Send(editErrorText(args[0], err))
	}
	return c.Send(fmt.Sprintf("Time limit for question %d in quiz %s has been updated to %d seconds.", index+1, quiz.Title, seconds))
}

func (h *EditQuestionTimeHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// DeleteQuizHandler обрабатывает /deletequiz <quiz_id>
type DeleteQuizHandler struct {
	quizzes QuizEditor
}

func NewDeleteQuizHandler(quizzes QuizEditor) *DeleteQuizHandler {
	return &DeleteQuizHandler{quizzes: quizzes}
}

func (h *DeleteQuizHandler) Handle(c tele.Context) error {
	args := c.Args()
	if len(args) < 1 {
		return c.Send("Please provide a quiz ID: /deletequiz (quiz_id)")
	}
	if err := h.quizzes.DeleteQuiz(context.Background(), args[0]); err != nil {
		return c.Send(editErrorText(args[0], err))
	}
	return c.Send(fmt.Sprintf("Quiz %s has been deleted.", args[0]))
}

func (h *DeleteQuizHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

func editErrorText(quizID string, err error) string {
	switch {
	case errors.Is(err, model.ErrQuizNotFound):
		return fmt.Sprintf("Quiz with ID %s not found. Use /list to see available quizzes.", quizID)
	case errors.Is(err, model.ErrInvalidTimeLimit):
		return fmt.Sprintf("Time limit must be between %d and %d seconds.", model.MinTimeLimit, model.MaxTimeLimit)
	case errors.Is(err, model.ErrInvalidQuestion):
		return fmt.Sprintf("Invalid question index: %v", err)
	default:
		return fmt.Sprintf("Failed to update quiz: %v", err)
	}
}
