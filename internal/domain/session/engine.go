package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/IT-Nick/quizbot/internal/domain/model"
	"github.com/IT-Nick/quizbot/internal/domain/scoring"
)

// QuizSource возвращает викторину по идентификатору (только чтение)
type QuizSource interface {
	GetQuiz(ctx context.Context, quizID string) (model.Quiz, error)
}

// ResultRecorder сохраняет итог попытки
type ResultRecorder interface {
	RecordResult(ctx context.Context, userID int64, result model.Result) error
}

// Scheduler - планировщик отложенных вызовов. fn вызывается в другой горутине,
// Schedule не должен вызывать fn синхронно. Cancel работает по принципу best-effort.
type Scheduler interface {
	Schedule(tag Tag, delay time.Duration, fn func())
	Cancel(tag Tag) bool
}

// RetireReason - почему вопрос был закрыт
type RetireReason int

const (
	RetireAnswered RetireReason = iota + 1
	RetireTimedOut
)

// QuestionView - данные для показа вопроса пользователю
type QuestionView struct {
	UserID     int64
	SessionID  string
	QuizTitle  string
	Index      int
	Total      int
	Generation uint64
	Text       string
	Options    []string
	TimeLimit  time.Duration
	Deadline   time.Time
}

// RetiredView - данные о закрытом вопросе для обратной связи
type RetiredView struct {
	UserID     int64
	SessionID  string
	Index      int
	Total      int
	Generation uint64
	Reason     RetireReason
	Answer     model.AnswerRecord
}

// Presenter принимает запросы на отрисовку от движка. Вызывается под блокировкой попытки,
// поэтому не должен обращаться к Engine синхронно.
type Presenter interface {
	ShowQuestion(ctx context.Context, view QuestionView) error
	ShowRetired(ctx context.Context, view RetiredView) error
	ShowResult(ctx context.Context, result model.Result) error
	ShowCancelled(ctx context.Context, userID int64, sessionID string) error
}

// Options - необязательные параметры движка
type Options struct {
	AdvanceDelay time.Duration // пауза между закрытием вопроса и показом следующего
	Logger       *log.Logger
	Debug        bool
	Marker       Marker
	Now          func() time.Time
	NewID        func() string
}

// Engine управляет попытками прохождения викторин с ограничением времени на вопрос
type Engine struct {
	quizzes   QuizSource
	results   ResultRecorder
	scheduler Scheduler
	presenter Presenter
	registry  *Registry

	advanceDelay time.Duration
	logger       *log.Logger
	debug        bool
	now          func() time.Time
	newID        func() string
}

// NewEngine создает движок попыток
func NewEngine(quizzes QuizSource, results ResultRecorder, scheduler Scheduler, presenter Presenter, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if presenter == nil {
		presenter = nopPresenter{}
	}
	return &Engine{
		quizzes:      quizzes,
		results:      results,
		scheduler:    scheduler,
		presenter:    presenter,
		registry:     NewRegistry(opts.Marker, opts.Logger),
		advanceDelay: opts.AdvanceDelay,
		logger:       opts.Logger,
		debug:        opts.Debug,
		now:          opts.Now,
		newID:        opts.NewID,
	}
}

// Start начинает попытку пользователя и показывает первый вопрос
func (e *Engine) Start(ctx context.Context, userID int64, quizID string) (Snapshot, error) {
	const op = "session.Start"

	if _, ok := e.registry.Get(userID); ok {
		return Snapshot{}, ErrAlreadyInSession
	}

	quiz, err := e.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(quiz.Questions) == 0 {
		return Snapshot{}, ErrInvalidQuizState
	}

	s := newSession(e.newID(), userID, quiz.Clone(), e.now())

	// Попытка блокируется до вставки в реестр, чтобы ни одно событие не застало её до показа вопроса
	s.mu.Lock()
	defer s.mu.Unlock()

	if !e.registry.Insert(s) {
		return Snapshot{}, ErrAlreadyInSession
	}
	e.armLocked(ctx, s)

	e.logger.Printf("session %s started: user=%d quiz=%s questions=%d", s.id, userID, quiz.ID, len(quiz.Questions))
	return s.snapshotLocked(e.now()), nil
}

// HandleEvent применяет событие к активной попытке пользователя
func (e *Engine) HandleEvent(ctx context.Context, userID int64, ev Event) error {
	s, ok := e.registry.Get(userID)
	if !ok {
		return ErrNoActiveSession
	}
	return e.dispatch(ctx, s, ev)
}

// SubmitAnswer - обертка над HandleEvent для ответа пользователя
func (e *Engine) SubmitAnswer(ctx context.Context, userID int64, question int, generation uint64, option int) error {
	return e.HandleEvent(ctx, userID, AnswerSubmitted{Question: question, Generation: generation, Option: option})
}

// Cancel прерывает попытку без сохранения результата
func (e *Engine) Cancel(ctx context.Context, userID int64) error {
	s, ok := e.registry.Get(userID)
	if !ok {
		return ErrNoActiveSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive && s.state != StateAdvancing {
		return ErrNoActiveSession
	}
	e.scheduler.Cancel(s.tagLocked())
	s.state = StateCancelled
	s.generation++
	e.registry.Remove(s)

	if err := e.presenter.ShowCancelled(ctx, s.userID, s.id); err != nil {
		e.logger.Printf("session %s: show cancelled: %v", s.id, err)
	}
	e.logger.Printf("session %s cancelled by user %d at question %d", s.id, s.userID, s.current)
	return nil
}

// End досрочно завершает попытку: оставшиеся вопросы считаются неотвеченными, результат сохраняется
func (e *Engine) End(ctx context.Context, userID int64) (model.Result, error) {
	s, ok := e.registry.Get(userID)
	if !ok {
		return model.Result{}, ErrNoActiveSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive && s.state != StateAdvancing {
		return model.Result{}, ErrNoActiveSession
	}
	e.scheduler.Cancel(s.tagLocked())
	s.current = len(s.quiz.Questions)
	return e.finishLocked(ctx, s)
}

// Snapshot возвращает копию состояния активной попытки пользователя
func (e *Engine) Snapshot(userID int64) (Snapshot, bool) {
	s, ok := e.registry.Get(userID)
	if !ok {
		return Snapshot{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(e.now()), true
}

// ActiveCount возвращает количество активных попыток
func (e *Engine) ActiveCount() int {
	return e.registry.Len()
}

// dispatch - единственная точка сериализации изменений попытки
func (e *Engine) dispatch(ctx context.Context, s *Session, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := ev.(type) {
	case AnswerSubmitted:
		if err := s.acceptLocked(ev); err != nil {
			return e.dropStale(s, ev, err)
		}
		if ev.Option < 0 || ev.Option >= len(s.questionLocked().Options) {
			return ErrInvalidOption
		}
		e.scheduler.Cancel(s.tagLocked())
		answer := s.recordLocked(ev.Option)
		return e.retireLocked(ctx, s, RetireAnswered, answer)

	case DeadlineFired:
		if err := s.acceptLocked(ev); err != nil {
			return e.dropStale(s, ev, err)
		}
		answer := s.recordLocked(model.NoAnswer)
		return e.retireLocked(ctx, s, RetireTimedOut, answer)

	case advanceDue:
		if s.state != StateAdvancing || ev.generation != s.generation || ev.question != s.current {
			return e.dropStale(s, ev, ErrStaleEvent)
		}
		e.armLocked(ctx, s)
		return nil

	default:
		return fmt.Errorf("session: unknown event %T", ev)
	}
}

// armLocked показывает текущий вопрос и ставит таймер на его дедлайн
func (e *Engine) armLocked(ctx context.Context, s *Session) {
	s.generation++
	s.state = StateActive

	limit := s.timeLimitLocked()
	s.deadline = e.now().Add(limit)

	tag := s.tagLocked()
	e.scheduler.Schedule(tag, limit, func() {
		err := e.dispatch(context.Background(), s, DeadlineFired{Question: tag.Question, Generation: tag.Generation})
		if err != nil && !errors.Is(err, ErrStaleEvent) {
			e.logger.Printf("session %s: deadline for question %d: %v", s.id, tag.Question, err)
		}
	})

	q := s.questionLocked()
	view := QuestionView{
		UserID:     s.userID,
		SessionID:  s.id,
		QuizTitle:  s.quiz.Title,
		Index:      s.current,
		Total:      len(s.quiz.Questions),
		Generation: s.generation,
		Text:       q.Text,
		Options:    append([]string(nil), q.Options...),
		TimeLimit:  limit,
		Deadline:   s.deadline,
	}
	if err := e.presenter.ShowQuestion(ctx, view); err != nil {
		e.logger.Printf("session %s: show question %d: %v", s.id, s.current, err)
	}
}

// retireLocked закрывает текущий вопрос и переходит к следующему или к подсчету результата
func (e *Engine) retireLocked(ctx context.Context, s *Session, reason RetireReason, answer model.AnswerRecord) error {
	view := RetiredView{
		UserID:     s.userID,
		SessionID:  s.id,
		Index:      s.current,
		Total:      len(s.quiz.Questions),
		Generation: s.generation,
		Reason:     reason,
		Answer:     answer,
	}
	if err := e.presenter.ShowRetired(ctx, view); err != nil {
		e.logger.Printf("session %s: show retired %d: %v", s.id, s.current, err)
	}

	s.state = StateAdvancing
	s.current++
	if s.current >= len(s.quiz.Questions) {
		_, err := e.finishLocked(ctx, s)
		return err
	}

	if e.advanceDelay <= 0 {
		e.armLocked(ctx, s)
		return nil
	}

	tag := s.tagLocked()
	e.scheduler.Schedule(tag, e.advanceDelay, func() {
		err := e.dispatch(context.Background(), s, advanceDue{question: tag.Question, generation: tag.Generation})
		if err != nil && !errors.Is(err, ErrStaleEvent) {
			e.logger.Printf("session %s: advance to question %d: %v", s.id, tag.Question, err)
		}
	})
	return nil
}

// finishLocked считает результат, сохраняет его и убирает попытку из реестра. Повторный вызов ничего не делает.
func (e *Engine) finishLocked(ctx context.Context, s *Session) (model.Result, error) {
	const op = "session.finish"

	if s.state == StateFinished || s.state == StateCancelled {
		return model.Result{}, ErrStaleEvent
	}
	s.state = StateFinished
	s.generation++

	answers := make([]model.AnswerRecord, len(s.answers))
	copy(answers, s.answers)
	result := model.Result{
		UserID:                s.userID,
		QuizID:                s.quiz.ID,
		QuizTitle:             s.quiz.Title,
		Score:                 scoring.CalculateScore(answers, s.quiz.NegativeMarkingFactor),
		MaxScore:              scoring.MaxScore(len(s.quiz.Questions)),
		NegativeMarkingFactor: s.quiz.NegativeMarkingFactor,
		Answers:               answers,
		Timestamp:             e.now(),
	}

	e.registry.Remove(s)

	if err := e.results.RecordResult(ctx, s.userID, result); err != nil {
		return result, fmt.Errorf("%s: record result: %w", op, err)
	}
	if err := e.presenter.ShowResult(ctx, result); err != nil {
		e.logger.Printf("session %s: show result: %v", s.id, err)
	}

	e.logger.Printf("session %s finished: user=%d quiz=%s score=%.2f/%d", s.id, s.userID, s.quiz.ID, result.Score, result.MaxScore)
	return result, nil
}

func (e *Engine) dropStale(s *Session, ev Event, err error) error {
	if e.debug {
		question, generation := ev.tag()
		e.logger.Printf("DEBUG: session %s: dropped stale %T (question=%d generation=%d, current=%d generation=%d state=%s)",
			s.id, ev, question, generation, s.current, s.generation, s.state)
	}
	return err
}

type nopPresenter struct{}

func (nopPresenter) ShowQuestion(context.Context, QuestionView) error  { return nil }
func (nopPresenter) ShowRetired(context.Context, RetiredView) error    { return nil }
func (nopPresenter) ShowResult(context.Context, model.Result) error    { return nil }
func (nopPresenter) ShowCancelled(context.Context, int64, string) error { return nil }
