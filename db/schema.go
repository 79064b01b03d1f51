// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The same DDL runs on PostgreSQL and SQLite.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// DropSchema removes every table created by CreateSchema.
// Used by tests that share a database.
func DropSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS rating`)
	if err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	return nil
}

const schema = `
-- Vote distributions, one row per rated item
CREATE TABLE IF NOT EXISTS rating (
    name TEXT PRIMARY KEY,
    description TEXT,
    rating_1 BIGINT NOT NULL DEFAULT 0 CHECK (rating_1 >= 0),
    rating_2 BIGINT NOT NULL DEFAULT 0 CHECK (rating_2 >= 0),
    rating_3 BIGINT NOT NULL DEFAULT 0 CHECK (rating_3 >= 0),
    rating_4 BIGINT NOT NULL DEFAULT 0 CHECK (rating_4 >= 0),
    rating_5 BIGINT NOT NULL DEFAULT 0 CHECK (rating_5 >= 0),
    rating_6 BIGINT NOT NULL DEFAULT 0 CHECK (rating_6 >= 0),
    rating_7 BIGINT NOT NULL DEFAULT 0 CHECK (rating_7 >= 0),
    rating_8 BIGINT NOT NULL DEFAULT 0 CHECK (rating_8 >= 0),
    rating_9 BIGINT NOT NULL DEFAULT 0 CHECK (rating_9 >= 0),
    rating_10 BIGINT NOT NULL DEFAULT 0 CHECK (rating_10 >= 0),
    score DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_rating_score ON rating(score DESC, name);
`
