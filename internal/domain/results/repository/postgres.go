package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// ResultRepository хранит результаты в PostgreSQL
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository создает новый экземпляр ResultRepository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// Add сохраняет результат попытки
func (r *ResultRepository) Add(ctx context.Context, userID int64, result model.Result) error {
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO quiz_results (user_id, quiz_id, quiz_title, score, max_score, negative_marking, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, userID, result.QuizID, result.QuizTitle, result.Score, result.MaxScore, result.NegativeMarkingFactor, answers, result.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert result: %w", err)
	}
	return nil
}

// ListByUser возвращает результаты пользователя в порядке добавления
func (r *ResultRepository) ListByUser(ctx context.Context, userID int64) ([]model.Result, error) {
	rows, err := r.db.Query(ctx, `
		SELECT quiz_id, quiz_title, score, max_score, negative_marking, answers, created_at
		FROM quiz_results WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		var (
			res     model.Result
			answers []byte
		)
		if err := rows.Scan(&res.QuizID, &res.QuizTitle, &res.Score, &res.MaxScore,
			&res.NegativeMarkingFactor, &answers, &res.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		if err := json.Unmarshal(answers, &res.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers: %w", err)
		}
		res.UserID = userID
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate over rows: %w", err)
	}
	return results, nil
}
