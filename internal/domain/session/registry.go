package session

import (
	"context"
	"log"
	"sync"
)

// Marker отражает активные попытки во внешнем хранилище (например, Redis).
// Ошибки маркера не влияют на работу реестра.
type Marker interface {
	Mark(ctx context.Context, userID int64, sessionID string) error
	Unmark(ctx context.Context, userID int64, sessionID string) error
}

// Registry хранит не более одной активной попытки на пользователя
type Registry struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	marker   Marker
	logger   *log.Logger
}

// NewRegistry создает пустой реестр. marker может быть nil.
func NewRegistry(marker Marker, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		sessions: make(map[int64]*Session),
		marker:   marker,
		logger:   logger,
	}
}

// Insert добавляет попытку, если у пользователя еще нет активной. Проверка и вставка атомарны.
func (r *Registry) Insert(s *Session) bool {
	r.mu.Lock()
	if _, ok := r.sessions[s.userID]; ok {
		r.mu.Unlock()
		return false
	}
	r.sessions[s.userID] = s
	r.mu.Unlock()

	if r.marker != nil {
		if err := r.marker.Mark(context.Background(), s.userID, s.id); err != nil {
			r.logger.Printf("session marker: failed to mark user %d: %v", s.userID, err)
		}
	}
	return true
}

// Get возвращает активную попытку пользователя
func (r *Registry) Get(userID int64) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Remove удаляет попытку, только если в реестре лежит именно она
func (r *Registry) Remove(s *Session) bool {
	r.mu.Lock()
	current, ok := r.sessions[s.userID]
	if !ok || current != s {
		r.mu.Unlock()
		return false
	}
	delete(r.sessions, s.userID)
	r.mu.Unlock()

	if r.marker != nil {
		if err := r.marker.Unmark(context.Background(), s.userID, s.id); err != nil {
			r.logger.Printf("session marker: failed to unmark user %d: %v", s.userID, err)
		}
	}
	return true
}

// Len возвращает количество активных попыток
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
