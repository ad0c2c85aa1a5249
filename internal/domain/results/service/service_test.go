package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/results/repository"
)

type failingRepo struct{}

func (failingRepo) Add(context.Context, int64, model.Result) error {
	return errors.New("boom")
}

func (failingRepo) ListByUser(context.Context, int64) ([]model.Result, error) {
	return nil, errors.New("boom")
}

func TestGetResultsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := NewResultService(repository.NewMemoryRepository())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_ = s.RecordResult(ctx, 5, model.Result{QuizID: "old", Timestamp: base})
	_ = s.RecordResult(ctx, 5, model.Result{QuizID: "new", Timestamp: base.Add(time.Hour)})
	_ = s.RecordResult(ctx, 5, model.Result{QuizID: "tie", Timestamp: base.Add(time.Hour)})

	got, err := s.GetResults(ctx, 5)
	if err != nil {
		t.Fatalf("GetResults failed: %v", err)
	}
	order := []string{"tie", "new", "old"}
	for i, id := range order {
		if got[i].QuizID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].QuizID)
		}
		if got[i].UserID != 5 {
			t.Errorf("user id not stamped on result")
		}
	}
}

func TestGetQuizResults(t *testing.T) {
	ctx := context.Background()
	s := NewResultService(repository.NewMemoryRepository())
	_ = s.RecordResult(ctx, 1, model.Result{QuizID: "a", Timestamp: time.Now()})
	_ = s.RecordResult(ctx, 1, model.Result{QuizID: "b", Timestamp: time.Now()})

	got, err := s.GetQuizResults(ctx, 1, "b")
	if err != nil {
		t.Fatalf("GetQuizResults failed: %v", err)
	}
	if len(got) != 1 || got[0].QuizID != "b" {
		t.Fatalf("unexpected results: %+v", got)
	}
}

func TestErrorsPropagate(t *testing.T) {
	s := NewResultService(failingRepo{})
	if err := s.RecordResult(context.Background(), 1, model.Result{}); err == nil {
		t.Error("expected record error")
	}
	if _, err := s.GetResults(context.Background(), 1); err == nil {
		t.Error("expected list error")
	}
}
