package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// Repository - хранилище викторин. Реализации возвращают копии, независимые от хранимых данных.
type Repository interface {
	Save(ctx context.Context, quiz model.Quiz) error
	Get(ctx context.Context, id string) (model.Quiz, error)
	List(ctx context.Context) ([]model.Quiz, error)
	Delete(ctx context.Context, id string) error
}

// ErrInvalidImport возвращается при разборе некорректного JSON викторины
var ErrInvalidImport = errors.New("invalid quiz file")

// QuizService для работы с каталогом викторин
type QuizService struct {
	repo Repository
	now  func() time.Time

	defaultTimeLimit       int
	defaultNegativeMarking float64
}

// NewQuizService создает новый экземпляр QuizService
func NewQuizService(repo Repository, defaultTimeLimit int, defaultNegativeMarking float64) *QuizService {
	if defaultTimeLimit == 0 {
		defaultTimeLimit = model.DefaultTimeLimit
	}
	return &QuizService{
		repo:                   repo,
		now:                    time.Now,
		defaultTimeLimit:       defaultTimeLimit,
		defaultNegativeMarking: defaultNegativeMarking,
	}
}

// CreateQuiz присваивает черновику идентификатор, проверяет его и сохраняет
func (s *QuizService) CreateQuiz(ctx context.Context, draft model.Quiz) (model.Quiz, error) {
	const op = "quizzes.CreateQuiz"

	quiz := draft.Clone()
	quiz.ID = model.NewQuizID()
	quiz.CreatedAt = s.now()
	if quiz.TimeLimit == 0 {
		quiz.TimeLimit = s.defaultTimeLimit
	}
	if len(quiz.Questions) == 0 {
		return model.Quiz{}, fmt.Errorf("%s: %w: quiz has no questions", op, model.ErrInvalidQuiz)
	}
	if err := quiz.Validate(); err != nil {
		return model.Quiz{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.Save(ctx, quiz); err != nil {
		return model.Quiz{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Printf("quiz %s created by %d: %q, %d questions", quiz.ID, quiz.CreatorID, quiz.Title, len(quiz.Questions))
	return quiz, nil
}

// GetQuiz получает викторину по идентификатору
func (s *QuizService) GetQuiz(ctx context.Context, id string) (model.Quiz, error) {
	quiz, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Quiz{}, fmt.Errorf("failed to get quiz %s: %w", id, err)
	}
	return quiz, nil
}

// ListQuizzes возвращает все викторины
func (s *QuizService) ListQuizzes(ctx context.Context) ([]model.Quiz, error) {
	quizzes, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return quizzes, nil
}

// UpdateTimeLimit меняет лимит времени на вопрос по умолчанию
func (s *QuizService) UpdateTimeLimit(ctx context.Context, id string, seconds int) (model.Quiz, error) {
	if err := model.ValidateTimeLimit(seconds); err != nil {
		return model.Quiz{}, err
	}
	return s.update(ctx, id, func(q *model.Quiz) error {
		q.TimeLimit = seconds
		return nil
	})
}

// UpdateQuestionTimeLimit задает отдельный лимит времени для вопроса с индексом index
func (s *QuizService) UpdateQuestionTimeLimit(ctx context.Context, id string, index, seconds int) (model.Quiz, error) {
	if err := model.ValidateTimeLimit(seconds); err != nil {
		return model.Quiz{}, err
	}
	return s.update(ctx, id, func(q *model.Quiz) error {
		if index < 0 || index >= len(q.Questions) {
			return fmt.Errorf("%w: question index %d out of range [0, %d)", model.ErrInvalidQuestion, index, len(q.Questions))
		}
		limit := seconds
		q.Questions[index].TimeLimit = &limit
		return nil
	})
}

// SetCorrectOption меняет правильный вариант ответа вопроса
func (s *QuizService) SetCorrectOption(ctx context.Context, id string, index, option int) (model.Quiz, error) {
	return s.update(ctx, id, func(q *model.Quiz) error {
		if index < 0 || index >= len(q.Questions) {
			return fmt.Errorf("%w: question index %d out of range [0, %d)", model.ErrInvalidQuestion, index, len(q.Questions))
		}
		if option < 0 || option >= len(q.Questions[index].Options) {
			return fmt.Errorf("%w: option %d out of range [0, %d)", model.ErrInvalidQuestion, option, len(q.Questions[index].Options))
		}
		q.Questions[index].CorrectOption = option
		return nil
	})
}

// DeleteQuiz удаляет викторину. Уже начатые попытки продолжают работать со своей копией.
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	log.Printf("quiz %s deleted", id)
	return nil
}

// ExportQuiz возвращает викторину в формате JSON
func (s *QuizService) ExportQuiz(ctx context.Context, id string) ([]byte, error) {
	quiz, err := s.GetQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode quiz %s: %w", id, err)
	}
	return data, nil
}

type importQuestion struct {
	Text          *string  `json:"text"`
	Options       []string `json:"options"`
	CorrectOption *int     `json:"correct_option"`
	TimeLimit     *int     `json:"time_limit"`
}

type importQuiz struct {
	Title                 *string          `json:"title"`
	Description           *string          `json:"description"`
	TimeLimit             *int             `json:"time_limit"`
	NegativeMarkingFactor *float64         `json:"negative_marking_factor"`
	Questions             []importQuestion `json:"questions"`
}

// ImportQuiz создает викторину из JSON. Обязательны title, description и questions;
// у каждого вопроса обязательны text, options и correct_option.
func (s *QuizService) ImportQuiz(ctx context.Context, data []byte, creatorID int64) (model.Quiz, error) {
	var in importQuiz
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&in); err != nil {
		return model.Quiz{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	switch {
	case in.Title == nil:
		return model.Quiz{}, fmt.Errorf("%w: missing required field: title", ErrInvalidImport)
	case in.Description == nil:
		return model.Quiz{}, fmt.Errorf("%w: missing required field: description", ErrInvalidImport)
	case in.Questions == nil:
		return model.Quiz{}, fmt.Errorf("%w: missing required field: questions", ErrInvalidImport)
	}

	draft := model.Quiz{
		Title:                 *in.Title,
		Description:           *in.Description,
		CreatorID:             creatorID,
		TimeLimit:             s.defaultTimeLimit,
		NegativeMarkingFactor: s.defaultNegativeMarking,
	}
	if in.TimeLimit != nil {
		draft.TimeLimit = *in.TimeLimit
	}
	if in.NegativeMarkingFactor != nil {
		draft.NegativeMarkingFactor = *in.NegativeMarkingFactor
	}
	for i, q := range in.Questions {
		if q.Text == nil || q.Options == nil || q.CorrectOption == nil {
			return model.Quiz{}, fmt.Errorf("%w: question %d: text, options and correct_option are required", ErrInvalidImport, i)
		}
		draft.Questions = append(draft.Questions, model.Question{
			Text:          *q.Text,
			Options:       q.Options,
			CorrectOption: *q.CorrectOption,
			TimeLimit:     q.TimeLimit,
		})
	}

	quiz, err := s.CreateQuiz(ctx, draft)
	if err != nil {
		return model.Quiz{}, fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	return quiz, nil
}

func (s *QuizService) update(ctx context.Context, id string, apply func(q *model.Quiz) error) (model.Quiz, error) {
	quiz, err := s.GetQuiz(ctx, id)
	if err != nil {
		return model.Quiz{}, err
	}
	if err := apply(&quiz); err != nil {
		return model.Quiz{}, err
	}
	if err := s.repo.Save(ctx, quiz); err != nil {
		return model.Quiz{}, fmt.Errorf("failed to save quiz %s: %w", id, err)
	}
	return quiz, nil
}
