package authoring

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// Параметры викторин, созданных из опросов
const (
	PollTimeLimit       = 15
	PollNegativeMarking = 0
	guidedOptionCount   = 4
)

// Poll - опрос Telegram, пересланный администратором
type Poll struct {
	Question      string
	Options       []string
	CorrectOption int // -1, если опрос не является викториной
}

// Outcome - результат обработки ввода: новое состояние и, если создание завершено, готовый черновик
type Outcome struct {
	State State
	Draft *model.Quiz
}

// Manager хранит черновики викторин администраторов. На одного администратора - один черновик.
type Manager struct {
	mu     sync.Mutex
	drafts map[int64]State
	now    func() time.Time
}

// NewManager создает менеджер черновиков
func NewManager() *Manager {
	return &Manager{drafts: make(map[int64]State), now: time.Now}
}

// State возвращает текущий этап создания викторины
func (m *Manager) State(adminID int64) (State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[adminID]
	return st, ok
}

// Begin начинает пошаговое создание викторины. Предыдущий пошаговый черновик сбрасывается.
func (m *Manager) Begin(adminID int64) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[adminID].(CollectingPolls); ok {
		return nil, ErrDraftInProgress
	}
	m.drafts[adminID] = AwaitingTitle{}
	return AwaitingTitle{}, nil
}

// Cancel удаляет черновик администратора
func (m *Manager) Cancel(adminID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.drafts[adminID]; !ok {
		return false
	}
	delete(m.drafts, adminID)
	return true
}

// HandleText применяет текстовое сообщение к текущему этапу
func (m *Manager) HandleText(adminID int64, text string) (Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.drafts[adminID]
	if !ok {
		return Outcome{}, ErrNoDraft
	}

	switch st := current.(type) {
	case AwaitingTitle:
		title, description, ok := splitTitle(text)
		if !ok {
			return Outcome{State: st}, fmt.Errorf("%w: use Title | Description", ErrBadFormat)
		}
		next := AddingQuestions{Title: title, Description: description}
		m.drafts[adminID] = next
		return Outcome{State: next}, nil

	case AddingQuestions:
		q, err := ParseQuestion(text)
		if err != nil {
			return Outcome{State: st}, err
		}
		st.Questions = append(cloneQuestions(st.Questions), q)
		m.drafts[adminID] = st
		return Outcome{State: st}, nil

	case AwaitingTimeLimit:
		seconds, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return Outcome{State: st}, fmt.Errorf("%w: time limit must be a whole number of seconds", ErrBadFormat)
		}
		if err := model.ValidateTimeLimit(seconds); err != nil {
			return Outcome{State: st}, err
		}
		next := AwaitingNegativeMarking{Title: st.Title, Description: st.Description, Questions: st.Questions, TimeLimit: seconds}
		m.drafts[adminID] = next
		return Outcome{State: next}, nil

	case AwaitingNegativeMarking:
		factor, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Outcome{State: st}, fmt.Errorf("%w: negative marking must be a number", ErrBadFormat)
		}
		if err := model.ValidateNegativeMarking(factor); err != nil {
			return Outcome{State: st}, err
		}
		delete(m.drafts, adminID)
		draft := model.Quiz{
			Title:                 st.Title,
			Description:           st.Description,
			CreatorID:             adminID,
			TimeLimit:             st.TimeLimit,
			NegativeMarkingFactor: factor,
			Questions:             cloneQuestions(st.Questions),
		}
		return Outcome{Draft: &draft}, nil

	default:
		return Outcome{State: current}, ErrUnexpectedInput
	}
}

// Done завершает добавление вопросов и переходит к вводу лимита времени
func (m *Manager) Done(adminID int64) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.drafts[adminID].(AddingQuestions)
	if !ok {
		return nil, ErrNoDraft
	}
	if len(st.Questions) == 0 {
		return st, ErrNoQuestions
	}
	next := AwaitingTimeLimit{Title: st.Title, Description: st.Description, Questions: st.Questions}
	m.drafts[adminID] = next
	return next, nil
}

// StartMarathon начинает сбор вопросов из пересланных опросов. args - "Название | Описание", может быть пустым.
func (m *Manager) StartMarathon(adminID int64, args string) (CollectingPolls, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.drafts[adminID].(CollectingPolls); ok {
		return CollectingPolls{}, ErrDraftInProgress
	}
	st := CollectingPolls{
		Title:       "Marathon Quiz " + m.now().Format("2006-01-02"),
		Description: "A quiz created from multiple polls",
	}
	if args = strings.TrimSpace(args); args != "" {
		parts := strings.SplitN(args, "|", 2)
		if title := strings.TrimSpace(parts[0]); title != "" {
			st.Title = title
		}
		if len(parts) > 1 {
			st.Description = strings.TrimSpace(parts[1])
		}
	}
	m.drafts[adminID] = st
	return st, nil
}

// AddPoll добавляет опрос в марафон. Вне марафона возвращает ErrNotInMarathon.
func (m *Manager) AddPoll(adminID int64, poll Poll) (CollectingPolls, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.drafts[adminID].(CollectingPolls)
	if !ok {
		return CollectingPolls{}, ErrNotInMarathon
	}
	q, err := pollQuestion(poll)
	if err != nil {
		return st, err
	}
	st.Questions = append(cloneQuestions(st.Questions), q)
	m.drafts[adminID] = st
	return st, nil
}

// EditAnswer меняет правильный вариант вопроса марафона. number начинается с 1.
func (m *Manager) EditAnswer(adminID int64, number, option int) (CollectingPolls, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.drafts[adminID].(CollectingPolls)
	if !ok {
		return CollectingPolls{}, ErrNotInMarathon
	}
	index := number - 1
	if index < 0 || index >= len(st.Questions) {
		return st, fmt.Errorf("%w: %d of %d", ErrQuestionNotFound, number, len(st.Questions))
	}
	if option < 0 || option >= len(st.Questions[index].Options) {
		return st, fmt.Errorf("%w: option %d out of range [0, %d)", model.ErrInvalidQuestion, option, len(st.Questions[index].Options))
	}
	st.Questions = cloneQuestions(st.Questions)
	st.Questions[index].CorrectOption = option
	m.drafts[adminID] = st
	return st, nil
}

// FinalizeMarathon завершает марафон и возвращает черновик викторины
func (m *Manager) FinalizeMarathon(adminID int64) (model.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.drafts[adminID].(CollectingPolls)
	if !ok {
		return model.Quiz{}, ErrNotInMarathon
	}
	if len(st.Questions) == 0 {
		return model.Quiz{}, ErrNoQuestions
	}
	delete(m.drafts, adminID)
	return model.Quiz{
		Title:                 st.Title,
		Description:           st.Description,
		CreatorID:             adminID,
		TimeLimit:             PollTimeLimit,
		NegativeMarkingFactor: PollNegativeMarking,
		Questions:             cloneQuestions(st.Questions),
	}, nil
}

// CancelMarathon удаляет марафон и возвращает количество собранных вопросов
func (m *Manager) CancelMarathon(adminID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.drafts[adminID].(CollectingPolls)
	if !ok {
		return 0, ErrNotInMarathon
	}
	delete(m.drafts, adminID)
	return len(st.Questions), nil
}

// PollQuiz строит викторину из одного опроса, пересланного вне марафона
func PollQuiz(poll Poll, creatorID int64, suffix string) (model.Quiz, error) {
	q, err := pollQuestion(poll)
	if err != nil {
		return model.Quiz{}, err
	}
	preview := []rune(poll.Question)
	if len(preview) > 30 {
		preview = preview[:30]
	}
	return model.Quiz{
		Title:                 "Poll Quiz " + suffix,
		Description:           "Created from poll: " + string(preview) + "...",
		CreatorID:             creatorID,
		TimeLimit:             PollTimeLimit,
		NegativeMarkingFactor: PollNegativeMarking,
		Questions:             []model.Question{q},
	}, nil
}

// ParseQuestion разбирает строку "Вопрос | A | B | C | D | n", где n - номер правильного варианта 0..3
func ParseQuestion(text string) (model.Question, error) {
	parts := strings.Split(text, "|")
	if len(parts) < guidedOptionCount+2 {
		return model.Question{}, fmt.Errorf("%w: use Question | A | B | C | D | CorrectOption(0-3)", ErrBadFormat)
	}
	options := make([]string, guidedOptionCount)
	for i := range options {
		options[i] = strings.TrimSpace(parts[i+1])
	}
	correct, err := strconv.Atoi(strings.TrimSpace(parts[guidedOptionCount+1]))
	if err != nil {
		return model.Question{}, fmt.Errorf("%w: correct option must be a number", ErrBadFormat)
	}
	if correct < 0 || correct >= guidedOptionCount {
		return model.Question{}, fmt.Errorf("%w: correct option must be 0, 1, 2 or 3", ErrBadFormat)
	}
	q := model.Question{
		Text:          strings.TrimSpace(parts[0]),
		Options:       options,
		CorrectOption: correct,
	}
	if err := q.Validate(); err != nil {
		return model.Question{}, err
	}
	return q, nil
}

func pollQuestion(poll Poll) (model.Question, error) {
	correct := poll.CorrectOption
	if correct < 0 || correct >= len(poll.Options) {
		correct = 0
	}
	q := model.Question{
		Text:          strings.TrimSpace(poll.Question),
		Options:       append([]string(nil), poll.Options...),
		CorrectOption: correct,
	}
	if err := q.Validate(); err != nil {
		return model.Question{}, err
	}
	return q, nil
}

func splitTitle(text string) (string, string, bool) {
	parts := strings.SplitN(text, "|", 2)
	if len(parts) < 2 {
		return "", "", false
	}
	title := strings.TrimSpace(parts[0])
	if title == "" {
		return "", "", false
	}
	return title, strings.TrimSpace(parts[1]), true
}

func cloneQuestions(qs []model.Question) []model.Question {
	out := make([]model.Question, len(qs))
	for i, q := range qs {
		out[i] = q.Clone()
	}
	return out
}
