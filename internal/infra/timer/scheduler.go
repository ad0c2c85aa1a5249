package timer

import (
	"sync"
	"time"
)

// Scheduler - планировщик отложенных вызовов поверх time.AfterFunc.
// Каждый вызов идентифицируется ключом; повторное планирование с тем же ключом заменяет предыдущий вызов.
type Scheduler[K comparable] struct {
	mu     sync.Mutex
	timers map[K]*time.Timer
}

// NewScheduler создает пустой планировщик
func NewScheduler[K comparable]() *Scheduler[K] {
	return &Scheduler[K]{timers: make(map[K]*time.Timer)}
}

// Schedule вызывает fn в отдельной горутине через delay
func (s *Scheduler[K]) Schedule(key K, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.timers[key]; ok {
		old.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.timers[key] == t {
			delete(s.timers, key)
		}
		s.mu.Unlock()
		fn()
	})
	s.timers[key] = t
}

// Cancel останавливает вызов. false означает, что вызов уже сработал или не планировался.
func (s *Scheduler[K]) Cancel(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[key]
	if !ok {
		return false
	}
	delete(s.timers, key)
	return t.Stop()
}

func (s *Scheduler[K]) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop отменяет все ожидающие вызовы
func (s *Scheduler[K]) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
