package marathon_handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/domain/authoring"
	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// Marathon - сбор викторины из пересланных опросов
type Marathon interface {
	StartMarathon(adminID int64, args string) (authoring.CollectingPolls, error)
	AddPoll(adminID int64, poll authoring.Poll) (authoring.CollectingPolls, error)
	EditAnswer(adminID int64, number, option int) (authoring.CollectingPolls, error)
	FinalizeMarathon(adminID int64) (model.Quiz, error)
	CancelMarathon(adminID int64) (int, error)
}

// QuizCreator сохраняет готовую викторину
type QuizCreator interface {
	CreateQuiz(ctx context.Context, draft model.Quiz) (model.Quiz, error)
}

const noMarathon = "No active marathon quiz. Start one with /start_marathon"

// StartHandler обрабатывает /start_marathon [Title | Description]
type StartHandler struct {
	marathon Marathon
}

func NewStartHandler(marathon Marathon) *StartHandler {
	return &StartHandler{marathon: marathon}
}

func (h *StartHandler) Handle(c tele.Context) error {
	payload := ""
	if msg := c.Message(); msg != nil {
		payload = msg.Payload
	}
	st, err := h.marathon.StartMarathon(c.Sender().ID, payload)
	if errors.Is(err, authoring.ErrDraftInProgress) {
		return c.Send("You already have an active marathon quiz. Use /finalize_marathon or /cancel_marathon first.")
	}
	if err != nil {
		return c.Send(fmt.Sprintf("Error starting marathon: %v", err))
	}
	return c.Send(fmt.Sprintf("Marathon quiz started!\n\n"+
		"Title: %s\n"+
		"Description: %s\n\n"+
		"Forward polls to add them as questions.\n"+
		"Use /edit_answer (question_number) (option) to fix a correct answer.\n"+
		"Use /finalize_marathon when done or /cancel_marathon to discard.", st.Title, st.Description))
}

func (h *StartHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// FinalizeHandler обрабатывает /finalize_marathon
type FinalizeHandler struct {
	marathon Marathon
	quizzes  QuizCreator
}

func NewFinalizeHandler(marathon Marathon, quizzes QuizCreator) *FinalizeHandler {
	return &FinalizeHandler{marathon: marathon, quizzes: quizzes}
}

func (h *FinalizeHandler) Handle(c tele.Context) error {
	draft, err := h.marathon.FinalizeMarathon(c.Sender().ID)
	switch {
	case errors.Is(err, authoring.ErrNotInMarathon):
		return c.Send(noMarathon)
	case errors.Is(err, authoring.ErrNoQuestions):
		return c.Send("The quiz has no questions. Please forward polls to add questions.")
	case err != nil:
		return c.Send(fmt.Sprintf("Error finalizing marathon: %v", err))
	}

	quiz, err := h.quizzes.CreateQuiz(context.Background(), draft)
	if err != nil {
		return c.Send(fmt.Sprintf("Error finalizing marathon: %v", err))
	}
	return c.Send(fmt.Sprintf("Marathon quiz created successfully!\n\n"+
		"Title: %s\n"+
		"Questions: %d\n"+
		"Time limit: %d seconds per question\n"+
		"Quiz ID: %s\n\n"+
		"Users can take this quiz with /take %s", quiz.Title, len(quiz.Questions), quiz.TimeLimit, quiz.ID, quiz.ID))
}

func (h *FinalizeHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// CancelHandler обрабатывает /cancel_marathon
type CancelHandler struct {
	marathon Marathon
}

func NewCancelHandler(marathon Marathon) *CancelHandler {
	return &CancelHandler{marathon: marathon}
}

func (h *CancelHandler) Handle(c tele.Context) error {
	n, err := h.marathon.CancelMarathon(c.Sender().ID)
	if errors.Is(err, authoring.ErrNotInMarathon) {
		return c.Send("No active marathon quiz to cancel.")
	}
	if err != nil {
		return c.Send(fmt.Sprintf("Error canceling marathon: %v", err))
	}
	return c.Send(fmt.Sprintf("Marathon quiz cancelled. %d collected questions were discarded.", n))
}

func (h *CancelHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// EditAnswerHandler обрабатывает /edit_answer <номер вопроса> <вариант>. Номер начинается с 1, вариант с 0.
type EditAnswerHandler struct {
	marathon Marathon
}

func NewEditAnswerHandler(marathon Marathon) *EditAnswerHandler {
	return &EditAnswerHandler{marathon: marathon}
}

func (h *EditAnswerHandler) Handle(c tele.Context) error {
	args := c.Args()
	if len(args) < 2 {
		return c.Send("Please provide the question number and the correct option: /edit_answer (question_number) (option)")
	}
	number, err1 := strconv.Atoi(args[0])
	option, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return c.Send("Please provide a valid number.")
	}

	st, err := h.marathon.EditAnswer(c.Sender().ID, number, option)
	switch {
	case errors.Is(err, authoring.ErrNotInMarathon):
		return c.Send(noMarathon)
	case errors.Is(err, authoring.ErrQuestionNotFound):
		if len(st.Questions) == 0 {
			return c.Send("The marathon quiz has no questions yet. Forward a poll first.")
		}
		return c.Send(fmt.Sprintf("Invalid question number. The marathon quiz has %d questions.", len(st.Questions)))
	case errors.Is(err, model.ErrInvalidQuestion):
		return c.Send(fmt.Sprintf("Invalid option: %v", err))
	case err != nil:
		return c.Send(fmt.Sprintf("Error setting correct answer: %v", err))
	}

	q := st.Questions[number-1]
	return c.Send(fmt.Sprintf("Correct answer for question %d set to %s. %s", number, model.OptionLetter(option), q.Options[option]))
}

func (h *EditAnswerHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

// PollHandler принимает пересланный опрос. Во время марафона опрос становится вопросом,
// иначе из него создается отдельная викторина из одного вопроса.
type PollHandler struct {
	marathon Marathon
	quizzes  QuizCreator
	suffix   func() string
}

func NewPollHandler(marathon Marathon, quizzes QuizCreator) *PollHandler {
	return &PollHandler{marathon: marathon, quizzes: quizzes, suffix: model.NewQuizID}
}

func (h *PollHandler) Handle(c tele.Context) error {
	msg := c.Message()
	if msg == nil || msg.Poll == nil {
		return c.Send("No poll found in this message. Please forward a message containing a poll.")
	}
	poll := toPoll(msg.Poll)
	if len(poll.Options) < model.MinOptions {
		return c.Send("Poll must have at least 2 options.")
	}

	adminID := c.Sender().ID
	st, err := h.marathon.AddPoll(adminID, poll)
	if err == nil {
		return c.Send(fmt.Sprintf("Question %d added to marathon quiz: %s\n\n"+
			"Forward more polls or use /finalize_marathon to finish.", len(st.Questions), poll.Question))
	}
	if !errors.Is(err, authoring.ErrNotInMarathon) {
		return c.Send(fmt.Sprintf("Error processing poll: %v", err))
	}

	draft, err := authoring.PollQuiz(poll, adminID, h.suffix())
	if err != nil {
		return c.Send(fmt.Sprintf("Error processing poll: %v", err))
	}
	quiz, err := h.quizzes.CreateQuiz(context.Background(), draft)
	if err != nil {
		return c.Send(fmt.Sprintf("Error creating quiz: %v", err))
	}
	return c.Send(fmt.Sprintf("Quiz created successfully from poll!\n\n"+
		"Title: %s\n"+
		"Quiz ID: %s\n\n"+
		"Users can take this quiz with /take %s", quiz.Title, quiz.ID, quiz.ID))
}

func (h *PollHandler) GetHandlerFunc() tele.HandlerFunc {
	return func(c tele.Context) error {
		return h.Handle(c)
	}
}

func toPoll(p *tele.Poll) authoring.Poll {
	options := make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		options = append(options, o.Text)
	}
	correct := -1
	if p.Type == tele.PollQuiz {
		correct = p.CorrectOption
	}
	return authoring.Poll{Question: p.Question, Options: options, CorrectOption: correct}
}
