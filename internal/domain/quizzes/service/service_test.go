package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/quizzes/repository"
)

func newService() *QuizService {
	return NewQuizService(repository.NewMemoryRepository(), model.DefaultTimeLimit, model.DefaultNegativeMarking)
}

func draft() model.Quiz {
	return model.Quiz{
		Title:                 "Capitals",
		Description:           "Europe",
		CreatorID:             10,
		NegativeMarkingFactor: 0.25,
		Questions: []model.Question{
			{Text: "France?", Options: []string{"Paris", "Rome", "Oslo", "Bern"}, CorrectOption: 0},
			{Text: "Italy?", Options: []string{"Paris", "Rome", "Oslo", "Bern"}, CorrectOption: 1},
		},
	}
}

func TestCreateQuizAssignsIDAndDefaults(t *testing.T) {
	s := newService()
	quiz, err := s.CreateQuiz(context.Background(), draft())
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	if len(quiz.ID) != 8 {
		t.Errorf("expected 8-char id, got %q", quiz.ID)
	}
	if quiz.TimeLimit != model.DefaultTimeLimit {
		t.Errorf("expected default time limit, got %d", quiz.TimeLimit)
	}
	if quiz.CreatedAt.IsZero() {
		t.Errorf("created_at not set")
	}
}

func TestCreateQuizValidates(t *testing.T) {
	s := newService()
	ctx := context.Background()

	bad := draft()
	bad.Questions[0].CorrectOption = 4
	if _, err := s.CreateQuiz(ctx, bad); !errors.Is(err, model.ErrInvalidQuestion) {
		t.Errorf("expected ErrInvalidQuestion, got %v", err)
	}

	empty := draft()
	empty.Questions = nil
	if _, err := s.CreateQuiz(ctx, empty); !errors.Is(err, model.ErrInvalidQuiz) {
		t.Errorf("expected ErrInvalidQuiz, got %v", err)
	}

	marking := draft()
	marking.NegativeMarkingFactor = 1.5
	if _, err := s.CreateQuiz(ctx, marking); !errors.Is(err, model.ErrInvalidNegativeMarking) {
		t.Errorf("expected ErrInvalidNegativeMarking, got %v", err)
	}
}

func TestEdits(t *testing.T) {
	s := newService()
	ctx := context.Background()
	quiz, _ := s.CreateQuiz(ctx, draft())

	if _, err := s.UpdateTimeLimit(ctx, quiz.ID, 5); !errors.Is(err, model.ErrInvalidTimeLimit) {
		t.Errorf("expected ErrInvalidTimeLimit, got %v", err)
	}
	if _, err := s.UpdateTimeLimit(ctx, quiz.ID, 45); err != nil {
		t.Fatalf("UpdateTimeLimit failed: %v", err)
	}
	if _, err := s.UpdateQuestionTimeLimit(ctx, quiz.ID, 2, 20); !errors.Is(err, model.ErrInvalidQuestion) {
		t.Errorf("expected index error, got %v", err)
	}
	if _, err := s.UpdateQuestionTimeLimit(ctx, quiz.ID, 1, 20); err != nil {
		t.Fatalf("UpdateQuestionTimeLimit failed: %v", err)
	}
	if _, err := s.SetCorrectOption(ctx, quiz.ID, 0, 9); !errors.Is(err, model.ErrInvalidQuestion) {
		t.Errorf("expected option error, got %v", err)
	}
	if _, err := s.SetCorrectOption(ctx, quiz.ID, 0, 2); err != nil {
		t.Fatalf("SetCorrectOption failed: %v", err)
	}

	got, err := s.GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}
	if got.TimeLimit != 45 {
		t.Errorf("expected time limit 45, got %d", got.TimeLimit)
	}
	if got.Questions[1].EffectiveTimeLimit(got.TimeLimit) != 20 {
		t.Errorf("expected question override 20")
	}
	if got.Questions[0].EffectiveTimeLimit(got.TimeLimit) != 45 {
		t.Errorf("expected question 0 to fall back to quiz limit")
	}
	if got.Questions[0].CorrectOption != 2 {
		t.Errorf("expected correct option 2, got %d", got.Questions[0].CorrectOption)
	}
}

func TestDeleteQuiz(t *testing.T) {
	s := newService()
	ctx := context.Background()
	quiz, _ := s.CreateQuiz(ctx, draft())

	if err := s.DeleteQuiz(ctx, quiz.ID); err != nil {
		t.Fatalf("DeleteQuiz failed: %v", err)
	}
	if _, err := s.GetQuiz(ctx, quiz.ID); !errors.Is(err, model.ErrQuizNotFound) {
		t.Errorf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newService()
	ctx := context.Background()
	quiz, _ := s.CreateQuiz(ctx, draft())

	data, err := s.ExportQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("ExportQuiz failed: %v", err)
	}
	imported, err := s.ImportQuiz(ctx, data, 77)
	if err != nil {
		t.Fatalf("ImportQuiz failed: %v", err)
	}
	if imported.ID == quiz.ID {
		t.Errorf("import must assign a new id")
	}
	if imported.CreatorID != 77 || imported.Title != quiz.Title || len(imported.Questions) != 2 {
		t.Errorf("unexpected imported quiz: %+v", imported)
	}
}

func TestImportDefaultsAndErrors(t *testing.T) {
	s := newService()
	ctx := context.Background()

	minimal := map[string]any{
		"title":       "Minimal",
		"description": "",
		"questions": []map[string]any{
			{"text": "Yes?", "options": []string{"yes", "no"}, "correct_option": 0},
		},
	}
	data, _ := json.Marshal(minimal)
	quiz, err := s.ImportQuiz(ctx, data, 1)
	if err != nil {
		t.Fatalf("ImportQuiz failed: %v", err)
	}
	if quiz.TimeLimit != 60 || quiz.NegativeMarkingFactor != 0.25 {
		t.Errorf("expected defaults 60/0.25, got %d/%v", quiz.TimeLimit, quiz.NegativeMarkingFactor)
	}

	bad := []string{
		`not json`,
		`{"description": "", "questions": []}`,
		`{"title": "x", "questions": []}`,
		`{"title": "x", "description": ""}`,
		`{"title": "x", "description": "", "questions": [{"text": "q", "options": ["a", "b"]}]}`,
		`{"title": "x", "description": "", "questions": [{"text": "q", "options": ["a"], "correct_option": 0}]}`,
		`{"title": "x", "description": "", "questions": [{"text": "q", "options": ["a", "b"], "correct_option": 2}]}`,
	}
	for _, in := range bad {
		if _, err := s.ImportQuiz(ctx, []byte(in), 1); !errors.Is(err, ErrInvalidImport) {
			t.Errorf("%s: expected ErrInvalidImport, got %v", in, err)
		}
	}
}
