package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/IT-Nick/quizbot/internal/domain/model"
)

// RedisRepository хранит результаты пользователя в списке Redis в виде JSON
type RedisRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisRepository создает хранилище результатов поверх клиента Redis
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client, prefix: "quizbot:results:"}
}

// Add добавляет результат в конец списка пользователя
func (r *RedisRepository) Add(ctx context.Context, userID int64, result model.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := r.client.RPush(ctx, r.key(userID), data).Err(); err != nil {
		return fmt.Errorf("failed to push result: %w", err)
	}
	return nil
}

// ListByUser возвращает результаты пользователя в порядке добавления
func (r *RedisRepository) ListByUser(ctx context.Context, userID int64) ([]model.Result, error) {
	raw, err := r.client.LRange(ctx, r.key(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	results := make([]model.Result, 0, len(raw))
	for _, item := range raw {
		var res model.Result
		if err := json.Unmarshal([]byte(item), &res); err != nil {
			return nil, fmt.Errorf("failed to decode result: %w", err)
		}
		results = append(results, res)
	}
	return results, nil
}

func (r *RedisRepository) key(userID int64) string {
	return r.prefix + strconv.FormatInt(userID, 10)
}
