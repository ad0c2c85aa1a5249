package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// Repository - хранилище результатов попыток
type Repository interface {
	Add(ctx context.Context, userID int64, result model.Result) error
	ListByUser(ctx context.Context, userID int64) ([]model.Result, error)
}

// ResultService для работы с результатами пользователей
type ResultService struct {
	repo Repository
}

// NewResultService создает новый экземпляр ResultService
func NewResultService(repo Repository) *ResultService {
	return &ResultService{repo: repo}
}

// RecordResult сохраняет итог попытки. Повторов при ошибке нет.
func (s *ResultService) RecordResult(ctx context.Context, userID int64, result model.Result) error {
	result.UserID = userID
	if err := s.repo.Add(ctx, userID, result); err != nil {
		return fmt.Errorf("failed to record result for user %d: %w", userID, err)
	}
	return nil
}

// GetResults возвращает результаты пользователя, начиная с самых новых
func (s *ResultService) GetResults(ctx context.Context, userID int64) ([]model.Result, error) {
	results, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results for user %d: %w", userID, err)
	}
	// при равном времени раньше идет добавленный позже
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})
	return results, nil
}

// GetQuizResults возвращает результаты пользователя по одной викторине, начиная с самых новых
func (s *ResultService) GetQuizResults(ctx context.Context, userID int64, quizID string) ([]model.Result, error) {
	results, err := s.GetResults(ctx, userID)
	if err != nil {
		return nil, err
	}
	filtered := results[:0]
	for _, r := range results {
		if r.QuizID == quizID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}
