package migrations

import "github.com/uptrace/bun/migrate"

// Migrations - схема PostgreSQL для хранилищ викторин и результатов
var Migrations = migrate.NewMigrations()
