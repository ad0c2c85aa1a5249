package app

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	quizRepo "github.com/IT-Nick/quizbot/internal/domain/quizzes/repository"
	quizService "github.com/IT-Nick/quizbot/internal/domain/quizzes/service"
	resultRepo "github.com/IT-Nick/quizbot/internal/domain/results/repository"
	resultService "github.com/IT-Nick/quizbot/internal/domain/results/service"
	"github.com/IT-Nick/quizbot/internal/infra/config"
	"github.com/IT-Nick/quizbot/internal/infra/postgres"
)

// storage - выбранные хранилища викторин и результатов
type storage struct {
	db      *pgxpool.Pool
	redis   *redis.Client
	quizzes quizService.Repository
	results resultService.Repository
}

// initStorage подключает хранилища согласно storage.type. Викторины хранятся в postgres,
// если задан database_url, иначе в памяти. Результаты - в выбранном хранилище.
func initStorage(ctx context.Context, cfg config.Storage) (*storage, error) {
	const op = "app.initStorage"

	st := &storage{}

	if cfg.DatabaseURL != "" {
		if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		db, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		st.db = db
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			st.Close()
			_ = client.Close()
			return nil, fmt.Errorf("%s: failed to ping redis: %w", op, err)
		}
		log.Println("Redis connected successfully!")
		st.redis = client
	}

	if st.db != nil {
		st.quizzes = quizRepo.NewQuizRepository(st.db)
	} else {
		st.quizzes = quizRepo.NewMemoryRepository()
	}

	switch cfg.Type {
	case config.StoragePostgres:
		st.results = resultRepo.NewResultRepository(st.db)
	case config.StorageRedis:
		st.results = resultRepo.NewRedisRepository(st.redis)
	default:
		st.results = resultRepo.NewMemoryRepository()
	}

	log.Printf("storage initialized: type=%s postgres=%t redis=%t", cfg.Type, st.db != nil, st.redis != nil)
	return st, nil
}

// Close закрывает подключения
func (s *storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Printf("redis close: %v", err)
		}
	}
}
