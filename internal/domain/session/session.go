package session

import (
	"sync"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// State - этап жизненного цикла попытки
type State int

const (
	StateActive State = iota + 1
	StateAdvancing
	StateFinished
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateAdvancing:
		return "advancing"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Tag идентифицирует отложенный вызов планировщика. Generation отличает текущий
// экземпляр вопроса от прошлых, поэтому опоздавший таймер не совпадет с новым тегом.
type Tag struct {
	SessionID  string
	Question   int
	Generation uint64
}

// Session - попытка одного пользователя пройти одну викторину.
// Все поля меняются только под mu.
type Session struct {
	mu sync.Mutex

	id        string
	userID    int64
	quiz      model.Quiz
	startedAt time.Time

	state      State
	current    int
	generation uint64
	answers    []model.AnswerRecord
	deadline   time.Time
}

func newSession(id string, userID int64, quiz model.Quiz, now time.Time) *Session {
	answers := make([]model.AnswerRecord, len(quiz.Questions))
	for i, q := range quiz.Questions {
		answers[i] = model.NewAnswerRecord(i, q)
	}
	return &Session{
		id:        id,
		userID:    userID,
		quiz:      quiz,
		startedAt: now,
		state:     StateActive,
		answers:   answers,
	}
}

// ID возвращает идентификатор попытки
func (s *Session) ID() string { return s.id }

// UserID возвращает владельца попытки
func (s *Session) UserID() int64 { return s.userID }

func (s *Session) tagLocked() Tag {
	return Tag{SessionID: s.id, Question: s.current, Generation: s.generation}
}

func (s *Session) questionLocked() model.Question {
	return s.quiz.Questions[s.current]
}

func (s *Session) timeLimitLocked() time.Duration {
	return time.Duration(s.questionLocked().EffectiveTimeLimit(s.quiz.TimeLimit)) * time.Second
}

// acceptLocked проверяет, что событие относится к текущему активному вопросу
func (s *Session) acceptLocked(ev Event) error {
	question, generation := ev.tag()
	if s.state != StateActive || generation != s.generation || question != s.current {
		return ErrStaleEvent
	}
	return nil
}

func (s *Session) recordLocked(option int) model.AnswerRecord {
	q := s.questionLocked()
	a := model.NewAnswerRecord(s.current, q)
	a.SelectedOption = option
	a.IsCorrect = option != model.NoAnswer && option == q.CorrectOption
	s.answers[s.current] = a
	return a
}

// Snapshot - копия состояния попытки для чтения вне блокировки
type Snapshot struct {
	SessionID  string
	UserID     int64
	QuizID     string
	QuizTitle  string
	State      State
	Current    int
	Total      int
	Generation uint64
	Deadline   time.Time
	Remaining  time.Duration
	StartedAt  time.Time
	Answers    []model.AnswerRecord
}

func (s *Session) snapshotLocked(now time.Time) Snapshot {
	answers := make([]model.AnswerRecord, len(s.answers))
	copy(answers, s.answers)
	remaining := time.Duration(0)
	if s.state == StateActive && s.deadline.After(now) {
		remaining = s.deadline.Sub(now)
	}
	return Snapshot{
		SessionID:  s.id,
		UserID:     s.userID,
		QuizID:     s.quiz.ID,
		QuizTitle:  s.quiz.Title,
		State:      s.state,
		Current:    s.current,
		Total:      len(s.quiz.Questions),
		Generation: s.generation,
		Deadline:   s.deadline,
		Remaining:  remaining,
		StartedAt:  s.startedAt,
		Answers:    answers,
	}
}
