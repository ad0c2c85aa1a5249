package create_quiz_handler

import (
	"context"
	"errors"
	"fmt"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/authoring"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// DraftManager ведет пошаговое создание викторины
type DraftManager interface {
	Begin(adminID int64) (authoring.State, error)
	Done(adminID int64) (authoring.State, error)
	HandleText(adminID int64, text string) (authoring.Outcome, error)
}

// QuizCreator сохраняет готовую викторину
type QuizCreator interface {
	CreateQuiz(ctx context.Context, draft model.Quiz) (model.Quiz, error)
}

// CreateHandler обрабатывает /create
type CreateHandler struct {
	drafts DraftManager
}

func NewCreateHandler(drafts DraftManager) *CreateHandler {
	return &CreateHandler{drafts: drafts}
}

func (h *CreateHandler) Handle(c tele.Context) error {
	if _, err := h.drafts.Begin(c.Sender().ID); err != nil {
		if errors.Is(err, authoring.ErrDraftInProgress) {
			return c.Send("You have an active marathon quiz. Finish it with /finalize_marathon or discard it with /cancel_marathon.")
		}
		return c.Send(fmt.Sprintf("Failed to start quiz creation: %v", err))
	}
	return c.Send("Let's create a new quiz!\n\n" +
		"First, send me the quiz title and description in the format:\n" +
		"Title | Description\n\n" +
		"For example:\n" +
		"History Quiz | Test your knowledge of world history\n\n" +
		"Use /cancel to cancel quiz creation.")
}

func (h *CreateHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// DoneHandler обрабатывает /done: вопросы добавлены, дальше лимит времени
type DoneHandler struct {
	drafts           DraftManager
	defaultTimeLimit int
}

func NewDoneHandler(drafts DraftManager, defaultTimeLimit int) *DoneHandler {
	return &DoneHandler{drafts: drafts, defaultTimeLimit: defaultTimeLimit}
}

func (h *DoneHandler) Handle(c tele.Context) error {
	st, err := h.drafts.Done(c.Sender().ID)
	switch {
	case errors.Is(err, authoring.ErrNoDraft):
		return c.Send("You are not adding questions right now. Start with /create.")
	case errors.Is(err, authoring.ErrNoQuestions):
		return c.Send("You haven't added any questions yet. Please add at least one question or use /cancel to cancel.")
	case err != nil:
		return c.Send(fmt.Sprintf("Failed to finish adding questions: %v", err))
	}

	count := 0
	if next, ok := st.(authoring.AwaitingTimeLimit); ok {
		count = len(next.Questions)
	}
	return c.Send(fmt.Sprintf("You've added %d questions.\n\n"+
		"Now, set the time limit for each question in seconds.\n"+
		"Default is %d seconds. Enter a number (%d-%d):\n\n"+
		"Use /cancel to cancel.", count, h.defaultTimeLimit, model.MinTimeLimit, model.MaxTimeLimit))
}

func (h *DoneHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// TextHandler принимает текстовые сообщения - шаги создания викторины
type TextHandler struct {
	drafts                 DraftManager
	quizzes                QuizCreator
	defaultNegativeMarking float64
}

func NewTextHandler(drafts DraftManager, quizzes QuizCreator, defaultNegativeMarking float64) *TextHandler {
	return &TextHandler{drafts: drafts, quizzes: quizzes, defaultNegativeMarking: defaultNegativeMarking}
}

func (h *TextHandler) Handle(c tele.Context) error {
	user := c.Sender()
	if user == nil {
		return nil
	}

	out, err := h.drafts.HandleText(user.ID, c.Text())
	if err != nil {
		return c.Send(errorText(out.State, err))
	}

	if out.Draft != nil {
		quiz, err := h.quizzes.CreateQuiz(context.Background(), *out.Draft)
		if err != nil {
			return c.Send(fmt.Sprintf("Error creating quiz: %v", err))
		}
		return c.Send(fmt.Sprintf("Quiz created successfully!\n\n"+
			"Title: %s\n"+
			"Description: %s\n"+
			"Questions: %d\n"+
			"Time limit: %d seconds per question\n"+
			"Negative marking: %v points\n\n"+
			"Quiz ID: %s\n\n"+
			"Users can take this quiz with /take %s",
			quiz.Title, quiz.Description, len(quiz.Questions), quiz.TimeLimit,
			quiz.NegativeMarkingFactor, quiz.ID, quiz.ID))
	}

	switch st := out.State.(type) {
	case authoring.AddingQuestions:
		if len(st.Questions) == 0 {
			return c.Send(fmt.Sprintf("Quiz title: %s\nDescription: %s\n\n"+
				"Now, add questions in the format:\n"+
				"Question | Option A | Option B | Option C | Option D | CorrectOption(0-3)\n\n"+
				"For example:\n"+
				"What is the capital of France? | London | Berlin | Paris | Madrid | 2\n\n"+
				"Use /done when you've added all questions or /cancel to cancel.", st.Title, st.Description))
		}
		return c.Send(fmt.Sprintf("Question added! You now have %d questions.\n\n"+
			"Add another question or use /done to finish adding questions.", len(st.Questions)))
	case authoring.AwaitingNegativeMarking:
		return c.Send(fmt.Sprintf("Time limit set to %d seconds per question.\n\n"+
			"Finally, set the negative marking factor (0-1).\n"+
			"Default is %v. Example: 0.25 means -0.25 points for wrong answers.\n\n"+
			"Use /cancel to cancel.", st.TimeLimit, h.defaultNegativeMarking))
	}
	return nil
}

// errorText переводит ошибку шага в подсказку для администратора
func errorText(st authoring.State, err error) string {
	switch {
	case errors.Is(err, authoring.ErrNoDraft):
		return "Use /help to see available commands."
	case errors.Is(err, authoring.ErrUnexpectedInput):
		return "Forward polls to add questions to the marathon quiz, or use /finalize_marathon."
	}

	switch st.(type) {
	case authoring.AwaitingTitle:
		return "Please use the format: Title | Description\n\nTry again or use /cancel to cancel."
	case authoring.AddingQuestions:
		return fmt.Sprintf("Error processing your question: %v\n\nPlease use the format:\n"+
			"Question | OptionA | OptionB | OptionC | OptionD | CorrectOption(0-3)\n\n"+
			"Try again or use /cancel to cancel.", err)
	case authoring.AwaitingTimeLimit:
		return fmt.Sprintf("Time limit must be a number between %d and %d seconds.\n\n"+
			"Please try again or use /cancel to cancel.", model.MinTimeLimit, model.MaxTimeLimit)
	case authoring.AwaitingNegativeMarking:
		return "Negative marking factor must be a number between 0 and 1.\n\n" +
			"Please try again or use /cancel to cancel."
	}
	return fmt.Sprintf("Error: %v", err)
}

func (h *TextHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}
