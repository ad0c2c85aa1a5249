package model

import (
	"errors"
	"testing"
)

func sampleQuiz() Quiz {
	limit := 30
	return Quiz{
		ID:                    "abcd1234",
		Title:                 "Capitals",
		TimeLimit:             60,
		NegativeMarkingFactor: 0.25,
		Questions: []Question{
			{Text: "Capital of France?", Options: []string{"Berlin", "Paris"}, CorrectOption: 1},
			{Text: "Capital of Spain?", Options: []string{"Madrid", "Rome", "Lisbon"}, CorrectOption: 0, TimeLimit: &limit},
		},
	}
}

func TestQuizValidate(t *testing.T) {
	if err := sampleQuiz().Validate(); err != nil {
		t.Fatalf("valid quiz rejected: %v", err)
	}

	q := sampleQuiz()
	q.NegativeMarkingFactor = 1.5
	if err := q.Validate(); !errors.Is(err, ErrInvalidNegativeMarking) {
		t.Errorf("expected ErrInvalidNegativeMarking, got %v", err)
	}

	q = sampleQuiz()
	q.TimeLimit = 5
	if err := q.Validate(); !errors.Is(err, ErrInvalidTimeLimit) {
		t.Errorf("expected ErrInvalidTimeLimit, got %v", err)
	}

	q = sampleQuiz()
	q.Questions[0].CorrectOption = 2
	if err := q.Validate(); !errors.Is(err, ErrInvalidQuestion) {
		t.Errorf("expected ErrInvalidQuestion for out-of-range correct option, got %v", err)
	}

	q = sampleQuiz()
	q.Questions[1].Options = []string{"only"}
	if err := q.Validate(); !errors.Is(err, ErrInvalidQuestion) {
		t.Errorf("expected ErrInvalidQuestion for single option, got %v", err)
	}
}

func TestEffectiveTimeLimit(t *testing.T) {
	q := sampleQuiz()
	if got := q.Questions[0].EffectiveTimeLimit(q.TimeLimit); got != 60 {
		t.Errorf("expected quiz default 60, got %d", got)
	}
	if got := q.Questions[1].EffectiveTimeLimit(q.TimeLimit); got != 30 {
		t.Errorf("expected override 30, got %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	q := sampleQuiz()
	c := q.Clone()

	c.Questions[0].Options[0] = "Changed"
	*c.Questions[1].TimeLimit = 99
	c.Questions = append(c.Questions, Question{Text: "extra"})

	if q.Questions[0].Options[0] != "Berlin" {
		t.Errorf("clone shares options with original")
	}
	if *q.Questions[1].TimeLimit != 30 {
		t.Errorf("clone shares time limit pointer with original")
	}
	if len(q.Questions) != 2 {
		t.Errorf("clone shares questions slice with original")
	}
}

func TestResultPercentage(t *testing.T) {
	r := Result{Score: 0.75, MaxScore: 3}
	if got := r.Percentage(); got != 25 {
		t.Errorf("expected 25, got %v", got)
	}
	if got := (Result{Score: 2, MaxScore: 3}).Percentage(); got != 66.7 {
		t.Errorf("expected 66.7, got %v", got)
	}
	if got := (Result{}).Percentage(); got != 0 {
		t.Errorf("expected 0 for empty result, got %v", got)
	}
}

func TestOptionLetter(t *testing.T) {
	if OptionLetter(0) != "A" || OptionLetter(3) != "D" {
		t.Errorf("unexpected letters: %s %s", OptionLetter(0), OptionLetter(3))
	}
}
