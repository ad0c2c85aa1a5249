package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

const createQuizzesSQL = `
CREATE TABLE IF NOT EXISTS quizzes (
	id               TEXT PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	creator_id       BIGINT NOT NULL,
	time_limit       INTEGER NOT NULL,
	negative_marking DOUBLE PRECISION NOT NULL,
	questions        JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createQuizzesSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS quizzes`)
			return err
		},
	)
}
