package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionMarker отмечает в Redis пользователей с активной попыткой.
// Ключ живет ttl, чтобы после падения процесса метки не оставались навсегда.
type SessionMarker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionMarker создает маркер активных попыток
func NewSessionMarker(client *redis.Client, ttl time.Duration) *SessionMarker {
	return &SessionMarker{client: client, ttl: ttl}
}

// Mark сохраняет идентификатор активной попытки пользователя
func (m *SessionMarker) Mark(ctx context.Context, userID int64, sessionID string) error {
	if err := m.client.Set(ctx, m.key(userID), sessionID, m.ttl).Err(); err != nil {
		return fmt.Errorf("mark session: %w", err)
	}
	if err := m.client.SAdd(ctx, m.setKey(), userID).Err(); err != nil {
		return fmt.Errorf("mark session: %w", err)
	}
	return nil
}

// Unmark снимает метку, только если она принадлежит указанной попытке
func (m *SessionMarker) Unmark(ctx context.Context, userID int64, sessionID string) error {
	current, err := m.client.Get(ctx, m.key(userID)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("unmark session: %w", err)
	}
	if err == nil && current != sessionID {
		return nil
	}
	if err := m.client.Del(ctx, m.key(userID)).Err(); err != nil {
		return fmt.Errorf("unmark session: %w", err)
	}
	if err := m.client.SRem(ctx, m.setKey(), userID).Err(); err != nil {
		return fmt.Errorf("unmark session: %w", err)
	}
	return nil
}

// Active возвращает идентификатор активной попытки пользователя, если метка есть
func (m *SessionMarker) Active(ctx context.Context, userID int64) (string, bool, error) {
	id, err := m.client.Get(ctx, m.key(userID)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get session mark: %w", err)
	}
	return id, true, nil
}

// Count возвращает количество пользователей с действующей меткой. Пользователи,
// чей ключ уже истек по ttl, удаляются из множества.
func (m *SessionMarker) Count(ctx context.Context) (int64, error) {
	members, err := m.client.SMembers(ctx, m.setKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("count session marks: %w", err)
	}
	if len(members) == 0 {
		return 0, nil
	}

	pipe := m.client.Pipeline()
	exists := make([]*redis.IntCmd, len(members))
	for i, member := range members {
		exists[i] = pipe.Exists(ctx, keyPrefix+member)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("count session marks: %w", err)
	}

	var stale []interface{}
	for i, cmd := range exists {
		if cmd.Val() == 0 {
			stale = append(stale, members[i])
		}
	}
	if len(stale) > 0 {
		if err := m.client.SRem(ctx, m.setKey(), stale...).Err(); err != nil {
			return 0, fmt.Errorf("prune session marks: %w", err)
		}
	}
	return int64(len(members) - len(stale)), nil
}

const keyPrefix = "quizbot:session:"

func (m *SessionMarker) key(userID int64) string {
	return keyPrefix + strconv.FormatInt(userID, 10)
}

func (m *SessionMarker) setKey() string {
	return "quizbot:sessions"
}
