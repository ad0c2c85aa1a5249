package migrations

import (
	"context"

	"github.com/uptrace/bun"
)

const createQuizResultsSQL = `
CREATE TABLE IF NOT EXISTS quiz_results (
	id               BIGSERIAL PRIMARY KEY,
	user_id          BIGINT NOT NULL,
	quiz_id          TEXT NOT NULL,
	quiz_title       TEXT NOT NULL,
	score            DOUBLE PRECISION NOT NULL,
	max_score        INTEGER NOT NULL,
	negative_marking DOUBLE PRECISION NOT NULL,
	answers          JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS quiz_results_user_id_idx ON quiz_results (user_id)`

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createQuizResultsSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS quiz_results`)
			return err
		},
	)
}
