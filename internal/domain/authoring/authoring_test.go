package authoring

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

func TestGuidedFlow(t *testing.T) {
	m := NewManager()

	if _, err := m.HandleText(1, "hello"); !errors.Is(err, ErrNoDraft) {
		t.Fatalf("expected ErrNoDraft, got %v", err)
	}
	if _, err := m.Begin(1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := m.HandleText(1, "no separator"); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
	out, err := m.HandleText(1, " Capitals | European capitals ")
	if err != nil {
		t.Fatalf("title: %v", err)
	}
	adding, ok := out.State.(AddingQuestions)
	if !ok || adding.Title != "Capitals" || adding.Description != "European capitals" {
		t.Fatalf("unexpected state %#v", out.State)
	}

	if _, err := m.Done(1); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
	for _, bad := range []string{"Q | A | B", "Q | A | B | C | D | x", "Q | A | B | C | D | 4"} {
		if _, err := m.HandleText(1, bad); !errors.Is(err, ErrBadFormat) {
			t.Errorf("%q: expected ErrBadFormat, got %v", bad, err)
		}
	}
	out, err = m.HandleText(1, "Capital of France? | Berlin | Paris | London | Madrid | 1")
	if err != nil {
		t.Fatalf("question: %v", err)
	}
	if n := len(out.State.(AddingQuestions).Questions); n != 1 {
		t.Fatalf("expected 1 question, got %d", n)
	}

	if _, err := m.Done(1); err != nil {
		t.Fatalf("Done failed: %v", err)
	}
	if _, err := m.HandleText(1, "5"); !errors.Is(err, model.ErrInvalidTimeLimit) {
		t.Fatalf("expected ErrInvalidTimeLimit, got %v", err)
	}
	if _, err := m.HandleText(1, "soon"); !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat, got %v", err)
	}
	out, err = m.HandleText(1, "45")
	if err != nil {
		t.Fatalf("time limit: %v", err)
	}
	if st, ok := out.State.(AwaitingNegativeMarking); !ok || st.TimeLimit != 45 {
		t.Fatalf("unexpected state %#v", out.State)
	}
	if _, err := m.HandleText(1, "1.5"); !errors.Is(err, model.ErrInvalidNegativeMarking) {
		t.Fatalf("expected ErrInvalidNegativeMarking, got %v", err)
	}
	out, err = m.HandleText(1, "0.5")
	if err != nil {
		t.Fatalf("negative marking: %v", err)
	}
	if out.Draft == nil {
		t.Fatal("expected finished draft")
	}
	d := out.Draft
	if d.Title != "Capitals" || d.CreatorID != 1 || d.TimeLimit != 45 || d.NegativeMarkingFactor != 0.5 || len(d.Questions) != 1 {
		t.Fatalf("unexpected draft %+v", d)
	}
	if d.Questions[0].Options[1] != "Paris" || d.Questions[0].CorrectOption != 1 {
		t.Fatalf("unexpected question %+v", d.Questions[0])
	}
	if _, ok := m.State(1); ok {
		t.Errorf("draft must be removed after completion")
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	m := NewManager()
	_, _ = m.Begin(1)
	if !m.Cancel(1) {
		t.Fatal("expected draft to be cancelled")
	}
	if m.Cancel(1) {
		t.Fatal("second cancel must report false")
	}
}

func TestMarathon(t *testing.T) {
	m := NewManager()
	m.now = func() time.Time { return time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC) }

	st, err := m.StartMarathon(3, "")
	if err != nil {
		t.Fatalf("StartMarathon failed: %v", err)
	}
	if st.Title != "Marathon Quiz 2024-07-01" || st.Description != "A quiz created from multiple polls" {
		t.Fatalf("unexpected defaults %+v", st)
	}
	if _, err := m.StartMarathon(3, "Other"); !errors.Is(err, ErrDraftInProgress) {
		t.Fatalf("expected ErrDraftInProgress, got %v", err)
	}
	if _, err := m.Begin(3); !errors.Is(err, ErrDraftInProgress) {
		t.Fatalf("expected Begin to refuse during marathon, got %v", err)
	}
	if _, err := m.FinalizeMarathon(3); !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}

	if _, err := m.AddPoll(3, Poll{Question: "Pick", Options: []string{"only"}}); !errors.Is(err, model.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion for 1-option poll, got %v", err)
	}
	if _, err := m.AddPoll(3, Poll{Question: "Sky?", Options: []string{"red", "blue"}, CorrectOption: 1}); err != nil {
		t.Fatalf("AddPoll failed: %v", err)
	}
	st, err = m.AddPoll(3, Poll{Question: "Grass?", Options: []string{"green", "pink", "grey"}, CorrectOption: -1})
	if err != nil {
		t.Fatalf("AddPoll failed: %v", err)
	}
	if len(st.Questions) != 2 || st.Questions[0].CorrectOption != 1 || st.Questions[1].CorrectOption != 0 {
		t.Fatalf("unexpected questions %+v", st.Questions)
	}

	if _, err := m.EditAnswer(3, 3, 0); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if _, err := m.EditAnswer(3, 2, 5); !errors.Is(err, model.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
	if _, err := m.EditAnswer(3, 2, 2); err != nil {
		t.Fatalf("EditAnswer failed: %v", err)
	}

	quiz, err := m.FinalizeMarathon(3)
	if err != nil {
		t.Fatalf("FinalizeMarathon failed: %v", err)
	}
	if quiz.TimeLimit != PollTimeLimit || quiz.NegativeMarkingFactor != 0 || quiz.CreatorID != 3 {
		t.Fatalf("unexpected quiz settings %+v", quiz)
	}
	if quiz.Questions[1].CorrectOption != 2 {
		t.Fatalf("edited answer lost: %+v", quiz.Questions[1])
	}
	if _, err := m.CancelMarathon(3); !errors.Is(err, ErrNotInMarathon) {
		t.Fatalf("expected ErrNotInMarathon, got %v", err)
	}
}

func TestMarathonTitleAndCancel(t *testing.T) {
	m := NewManager()
	st, err := m.StartMarathon(4, "Weekly | Polls from the channel")
	if err != nil {
		t.Fatalf("StartMarathon failed: %v", err)
	}
	if st.Title != "Weekly" || st.Description != "Polls from the channel" {
		t.Fatalf("unexpected title %+v", st)
	}
	_, _ = m.AddPoll(4, Poll{Question: "?", Options: []string{"a", "b"}})
	n, err := m.CancelMarathon(4)
	if err != nil || n != 1 {
		t.Fatalf("CancelMarathon: %d %v", n, err)
	}
	if _, err := m.AddPoll(4, Poll{Question: "?", Options: []string{"a", "b"}}); !errors.Is(err, ErrNotInMarathon) {
		t.Fatalf("expected ErrNotInMarathon, got %v", err)
	}
}

func TestPollQuiz(t *testing.T) {
	quiz, err := PollQuiz(Poll{Question: strings.Repeat("x", 40), Options: []string{"a", "b"}, CorrectOption: 1}, 9, "abcd1234")
	if err != nil {
		t.Fatalf("PollQuiz failed: %v", err)
	}
	if quiz.Title != "Poll Quiz abcd1234" {
		t.Errorf("unexpected title %q", quiz.Title)
	}
	if quiz.Description != "Created from poll: "+strings.Repeat("x", 30)+"..." {
		t.Errorf("unexpected description %q", quiz.Description)
	}
	if quiz.TimeLimit != 15 || quiz.NegativeMarkingFactor != 0 || quiz.Questions[0].CorrectOption != 1 {
		t.Errorf("unexpected quiz %+v", quiz)
	}
}
