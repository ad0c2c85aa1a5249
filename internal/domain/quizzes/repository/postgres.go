package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// QuizRepository хранит викторины в PostgreSQL. Вопросы лежат в колонке jsonb.
type QuizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository создает новый экземпляр QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db}
}

// Save добавляет или заменяет викторину
func (r *QuizRepository) Save(ctx context.Context, quiz model.Quiz) error {
	questions, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("failed to encode questions: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO quizzes (id, title, description, creator_id, time_limit, negative_marking, questions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			time_limit = EXCLUDED.time_limit,
			negative_marking = EXCLUDED.negative_marking,
			questions = EXCLUDED.questions
	`, quiz.ID, quiz.Title, quiz.Description, quiz.CreatorID, quiz.TimeLimit, quiz.NegativeMarkingFactor, questions, quiz.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// Get получает викторину по идентификатору
func (r *QuizRepository) Get(ctx context.Context, id string) (model.Quiz, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, title, description, creator_id, time_limit, negative_marking, questions, created_at
		FROM quizzes WHERE id = $1
	`, id)
	quiz, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Quiz{}, model.ErrQuizNotFound
		}
		return model.Quiz{}, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

// List возвращает все викторины в порядке создания
func (r *QuizRepository) List(ctx context.Context) ([]model.Quiz, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, title, description, creator_id, time_limit, negative_marking, questions, created_at
		FROM quizzes ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return quizzes, nil
}

// Delete удаляет викторину
func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM quizzes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrQuizNotFound
	}
	return nil
}

func scanQuiz(row pgx.Row) (model.Quiz, error) {
	var (
		quiz      model.Quiz
		questions []byte
	)
	err := row.Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.CreatorID, &quiz.TimeLimit,
		&quiz.NegativeMarkingFactor, &questions, &quiz.CreatedAt)
	if err != nil {
		return model.Quiz{}, err
	}
	if err := json.Unmarshal(questions, &quiz.Questions); err != nil {
		return model.Quiz{}, fmt.Errorf("failed to decode questions: %w", err)
	}
	return quiz, nil
}
