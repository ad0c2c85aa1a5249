package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Границы и значения по умолчанию для параметров викторины
const (
	MinTimeLimit           = 10
	MaxTimeLimit           = 300
	DefaultTimeLimit       = 60
	DefaultNegativeMarking = 0.25
	MinOptions             = 2
)

// Question представляет вопрос викторины с вариантами ответа
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	TimeLimit     *int     `json:"time_limit,omitempty"` // nil - используется значение викторины
}

// Quiz представляет викторину, созданную администратором
type Quiz struct {
	ID                    string     `json:"id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	CreatorID             int64      `json:"creator_id"`
	TimeLimit             int        `json:"time_limit"`
	NegativeMarkingFactor float64    `json:"negative_marking_factor"`
	Questions             []Question `json:"questions"`
	CreatedAt             time.Time  `json:"created_at"`
}

// NewQuizID генерирует короткий идентификатор викторины
func NewQuizID() string {
	return uuid.NewString()[:8]
}

// EffectiveTimeLimit возвращает лимит времени вопроса в секундах
func (q Question) EffectiveTimeLimit(quizDefault int) int {
	if q.TimeLimit != nil {
		return *q.TimeLimit
	}
	return quizDefault
}

// Validate проверяет инварианты вопроса
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: question text is empty", ErrInvalidQuestion)
	}
	if len(q.Options) < MinOptions {
		return fmt.Errorf("%w: at least %d options required, got %d", ErrInvalidQuestion, MinOptions, len(q.Options))
	}
	if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
		return fmt.Errorf("%w: correct option %d out of range [0, %d)", ErrInvalidQuestion, q.CorrectOption, len(q.Options))
	}
	if q.TimeLimit != nil {
		if err := ValidateTimeLimit(*q.TimeLimit); err != nil {
			return err
		}
	}
	return nil
}

// Validate проверяет инварианты викторины и всех её вопросов
func (q Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidQuiz)
	}
	if err := ValidateTimeLimit(q.TimeLimit); err != nil {
		return err
	}
	if err := ValidateNegativeMarking(q.NegativeMarkingFactor); err != nil {
		return err
	}
	for i, question := range q.Questions {
		if err := question.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

// Clone возвращает глубокую копию викторины, чтобы последующие правки не затрагивали копию
func (q Quiz) Clone() Quiz {
	c := q
	c.Questions = make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		c.Questions[i] = question.Clone()
	}
	return c
}

// Clone возвращает глубокую копию вопроса
func (q Question) Clone() Question {
	c := q
	c.Options = append([]string(nil), q.Options...)
	if q.TimeLimit != nil {
		limit := *q.TimeLimit
		c.TimeLimit = &limit
	}
	return c
}

// ValidateTimeLimit проверяет, что лимит времени лежит в допустимом диапазоне
func ValidateTimeLimit(seconds int) error {
	if seconds < MinTimeLimit || seconds > MaxTimeLimit {
		return fmt.Errorf("%w: %d seconds, must be between %d and %d", ErrInvalidTimeLimit, seconds, MinTimeLimit, MaxTimeLimit)
	}
	return nil
}

// ValidateNegativeMarking проверяет коэффициент штрафа за неверный ответ
func ValidateNegativeMarking(factor float64) error {
	if factor < 0 || factor > 1 {
		return fmt.Errorf("%w: %v, must be between 0 and 1", ErrInvalidNegativeMarking, factor)
	}
	return nil
}

// OptionLetter возвращает буквенное обозначение варианта: 0 -> A, 1 -> B
func OptionLetter(index int) string {
	if index < 0 || index >= 26 {
		return fmt.Sprintf("%d", index+1)
	}
	return string(rune('A' + index))
}
