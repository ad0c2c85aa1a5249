package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// MemoryRepository хранит викторины в памяти процесса. Данные теряются при перезапуске.
type MemoryRepository struct {
	mu      sync.RWMutex
	quizzes map[string]model.Quiz
}

// NewMemoryRepository создает пустое хранилище викторин
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{quizzes: make(map[string]model.Quiz)}
}

// Save добавляет или заменяет викторину
func (r *MemoryRepository) Save(_ context.Context, quiz model.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[quiz.ID] = quiz.Clone()
	return nil
}

// Get возвращает копию викторины
func (r *MemoryRepository) Get(_ context.Context, id string) (model.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quiz, ok := r.quizzes[id]
	if !ok {
		return model.Quiz{}, model.ErrQuizNotFound
	}
	return quiz.Clone(), nil
}

// List возвращает все викторины в порядке создания
func (r *MemoryRepository) List(_ context.Context) ([]model.Quiz, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	quizzes := make([]model.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		quizzes = append(quizzes, q.Clone())
	}
	sort.Slice(quizzes, func(i, j int) bool {
		if quizzes[i].CreatedAt.Equal(quizzes[j].CreatedAt) {
			return quizzes[i].ID < quizzes[j].ID
		}
		return quizzes[i].CreatedAt.Before(quizzes[j].CreatedAt)
	})
	return quizzes, nil
}

// Delete удаляет викторину
func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.quizzes[id]; !ok {
		return model.ErrQuizNotFound
	}
	delete(r.quizzes, id)
	return nil
}
