package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"github.com/IT-Nick/quizbot/internal/infra/postgres/migrations"
)

// Connect устанавливает подключение к базе данных и проверяет его
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	const op = "postgres.Connect"

	connConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse database config: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create database pool: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to ping database: %w", op, err)
	}

	log.Println("Database connected successfully!")
	return db, nil
}

// Migrate применяет схему базы данных
func Migrate(ctx context.Context, databaseURL string) error {
	const op = "postgres.Migrate"

	if databaseURL == "" {
		return fmt.Errorf("%s: database url not configured", op)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(databaseURL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("%s: init: %w", op, err)
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if group.IsZero() {
		log.Println("database schema is up to date")
		return nil
	}
	log.Printf("migrated to %s", group)
	return nil
}
