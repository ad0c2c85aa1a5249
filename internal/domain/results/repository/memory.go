package repository

import (
	"context"
	"sync"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// MemoryRepository хранит результаты в памяти процесса
type MemoryRepository struct {
	mu      sync.RWMutex
	results map[int64][]model.Result
}

// NewMemoryRepository создает пустое хранилище результатов
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{results: make(map[int64][]model.Result)}
}

// Add добавляет результат в конец списка пользователя
func (r *MemoryRepository) Add(_ context.Context, userID int64, result model.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[userID] = append(r.results[userID], result.Clone())
	return nil
}

// ListByUser возвращает результаты пользователя в порядке добавления
func (r *MemoryRepository) ListByUser(_ context.Context, userID int64) ([]model.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.results[userID]
	out := make([]model.Result, len(stored))
	for i, res := range stored {
		out[i] = res.Clone()
	}
	return out, nil
}
