package create_quiz_handler

import (
	"context"
	"strings"
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/IT-Nick/quizbot/internal/app/handlers/telegram/telegramtest"
	"github.com/IT-Nick/quizbot/internal/domain/authoring"
	"github.com/IT-Nick/quizbot/internal/domain/quizzes/repository"
	"github.com/IT-Nick/quizbot/internal/domain/quizzes/service"
)

func TestGuidedCreation(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	drafts := authoring.NewManager()
	repo := repository.NewMemoryRepository()
	quizzes := service.NewQuizService(repo, 60, 0.25)

	create := NewCreateHandler(drafts)
	done := NewDoneHandler(drafts, 60)
	text := NewTextHandler(drafts, quizzes, 0.25)

	send := func(h func(tele.Context) error, msg string) string {
		t.Helper()
		if err := h(bot.NewContext(telegramtest.Message(1, msg, ""))); err != nil {
			t.Fatalf("%q: %v", msg, err)
		}
		return api.Last(t).Text()
	}

	if got := send(create.Handle, "/create"); !strings.Contains(got, "Let's create a new quiz!") {
		t.Fatalf("unexpected /create reply %q", got)
	}
	if got := send(text.Handle, "no separator"); !strings.Contains(got, "Title | Description") {
		t.Errorf("expected format hint, got %q", got)
	}
	if got := send(text.Handle, "Capitals | Europe"); !strings.Contains(got, "Quiz title: Capitals") {
		t.Errorf("unexpected title reply %q", got)
	}
	if got := send(done.Handle, "/done"); !strings.Contains(got, "haven't added any questions") {
		t.Errorf("expected no-questions reply, got %q", got)
	}
	if got := send(text.Handle, "France? | Berlin | Paris | Rome | Madrid | 1"); !strings.Contains(got, "You now have 1 questions") {
		t.Errorf("unexpected question reply %q", got)
	}
	if got := send(text.Handle, "Broken | A | B"); !strings.Contains(got, "Error processing your question") {
		t.Errorf("expected question error, got %q", got)
	}
	if got := send(done.Handle, "/done"); !strings.Contains(got, "You've added 1 questions") {
		t.Errorf("unexpected /done reply %q", got)
	}
	if got := send(text.Handle, "5"); !strings.Contains(got, "between 10 and 300") {
		t.Errorf("expected time limit error, got %q", got)
	}
	if got := send(text.Handle, "30"); !strings.Contains(got, "Time limit set to 30 seconds") {
		t.Errorf("unexpected time limit reply %q", got)
	}
	if got := send(text.Handle, "2"); !strings.Contains(got, "between 0 and 1") {
		t.Errorf("expected negative marking error, got %q", got)
	}
	if got := send(text.Handle, "0.5"); !strings.Contains(got, "Quiz created successfully!") {
		t.Fatalf("unexpected final reply %q", got)
	}

	list, err := quizzes.ListQuizzes(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one stored quiz, got %v (%v)", list, err)
	}
	q := list[0]
	if q.Title != "Capitals" || q.TimeLimit != 30 || q.NegativeMarkingFactor != 0.5 || q.Questions[0].CorrectOption != 1 {
		t.Errorf("unexpected stored quiz %+v", q)
	}
	if _, ok := drafts.State(1); ok {
		t.Errorf("draft must be cleared after creation")
	}
}

func TestTextWithoutDraft(t *testing.T) {
	bot, api := telegramtest.NewBot(t)
	h := NewTextHandler(authoring.NewManager(), service.NewQuizService(repository.NewMemoryRepository(), 60, 0.25), 0.25)
	if err := h.Handle(bot.NewContext(telegramtest.Message(2, "hello", ""))); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if got := api.Last(t).Text(); got != "Use /help to see available commands." {
		t.Errorf("unexpected reply %q", got)
	}
}
