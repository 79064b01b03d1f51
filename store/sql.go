// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/rate-anything/db"
	"github.com/danielhkuo/rate-anything/models"
	"github.com/danielhkuo/rate-anything/rating"
)

// SQLStore implements Store on PostgreSQL or SQLite.
//
// Each vote is one INSERT ... ON CONFLICT DO UPDATE statement, so the
// database serializes concurrent votes on the same row.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

// OpenSQL opens a PostgreSQL (typ "postgres") or SQLite (typ "sqlite")
// database and creates the schema.
func OpenSQL(ctx context.Context, typ, url string) (*SQLStore, error) {
	if url == "" {
		return nil, errors.New("database URL required")
	}

	driver, dsn := "postgres", url
	if typ == TypeSQLite {
		driver, dsn = "sqlite", sqliteDSN(url)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if typ == TypeSQLite {
		// one writer; pool callers queue instead of hitting SQLITE_BUSY
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.CreateSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	return NewSQLStore(conn, typ), nil
}

// NewSQLStore wraps an open connection. The schema must already exist.
func NewSQLStore(conn *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

// DB exposes the underlying connection for health checks and tests.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// sqliteDSN adds the pragmas modernc.org/sqlite reads from the DSN.
func sqliteDSN(url string) string {
	path := strings.TrimPrefix(url, "file:")
	if strings.Contains(path, "?") {
		return "file:" + path
	}
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
}

var placeholder = regexp.MustCompile(`\$\d+`)

// rebind rewrites $N placeholders to ? for SQLite. Queries must use each
// placeholder exactly once and in ascending order.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != TypeSQLite {
		return query
	}
	return placeholder.ReplaceAllString(query, "?")
}

const ratingColumns = `name, description,
	rating_1, rating_2, rating_3, rating_4, rating_5,
	rating_6, rating_7, rating_8, rating_9, rating_10,
	score`

// upsertQueries[k-1] applies a vote of k.
var upsertQueries = buildUpsertQueries()

func buildUpsertQueries() [models.MaxScore]string {
	weighted := make([]string, 0, models.MaxScore)
	total := make([]string, 0, models.MaxScore)
	for k := models.MinScore; k <= models.MaxScore; k++ {
		weighted = append(weighted, fmt.Sprintf("rating.rating_%d * %d", k, k))
		total = append(total, fmt.Sprintf("rating.rating_%d", k))
	}

	var queries [models.MaxScore]string
	for k := models.MinScore; k <= models.MaxScore; k++ {
		col := fmt.Sprintf("rating_%d", k)
		// SET expressions read the pre-update row, so adding the vote
		// once to each sum gives the post-increment totals.
		queries[k-1] = fmt.Sprintf(`
			INSERT INTO rating (name, description, %[1]s, score)
			VALUES ($1, $2, 1, $3)
			ON CONFLICT (name) DO UPDATE SET
				%[1]s = rating.%[1]s + 1,
				description = excluded.description,
				score = CAST(%[2]s + $4 AS DOUBLE PRECISION) /
				        CAST(%[3]s + 1 AS DOUBLE PRECISION)
			RETURNING %[4]s
		`, col, strings.Join(weighted, " + "), strings.Join(total, " + "), ratingColumns)
	}
	return queries
}

// Get handles the read path for one item.
func (s *SQLStore) Get(ctx context.Context, name string) (models.Rating, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT `+ratingColumns+`
		FROM rating
		WHERE name = $1
	`), name)

	r, err := scanRating(row)
	if err == sql.ErrNoRows {
		return models.Rating{}, fmt.Errorf("%w: %s", rating.ErrNotFound, name)
	}
	if err != nil {
		return models.Rating{}, fmt.Errorf("%w: get %q: %w", rating.ErrStorage, name, err)
	}
	return r, nil
}

// Vote atomically creates or increments the row for name.
func (s *SQLStore) Vote(ctx context.Context, name string, score int, description *string) (models.Rating, error) {
	if _, err := rating.ValidateScore(float64(score)); err != nil {
		return models.Rating{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Rating{}, fmt.Errorf("%w: begin vote %q: %w", rating.ErrStorage, name, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, s.rebind(upsertQueries[score-1]),
		name, description, float64(score), int64(score))
	r, err := scanRating(row)
	if err != nil {
		return models.Rating{}, fmt.Errorf("%w: vote %q: %w", rating.ErrStorage, name, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Rating{}, fmt.Errorf("%w: commit vote %q: %w", rating.ErrStorage, name, err)
	}
	return r, nil
}

// Rankings returns one page ordered by score, ties by name.
func (s *SQLStore) Rankings(ctx context.Context, page models.Page) ([]models.RankEntry, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT name, description, score
		FROM rating
		ORDER BY score DESC, name ASC
		LIMIT $1 OFFSET $2
	`), page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: query rankings: %w", rating.ErrStorage, err)
	}
	defer rows.Close()

	entries := []models.RankEntry{}
	for rows.Next() {
		var e models.RankEntry
		var desc sql.NullString
		if err := rows.Scan(&e.Name, &desc, &e.Score); err != nil {
			return nil, fmt.Errorf("%w: scan ranking: %w", rating.ErrStorage, err)
		}
		e.Description = nullableString(desc)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate rankings: %w", rating.ErrStorage, err)
	}

	if len(entries) == 0 {
		return nil, rating.ErrNoData
	}
	return entries, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func scanRating(row *sql.Row) (models.Rating, error) {
	var r models.Rating
	var desc sql.NullString

	dest := []any{&r.Name, &desc}
	for i := range r.Buckets {
		dest = append(dest, &r.Buckets[i])
	}
	dest = append(dest, &r.Score)

	if err := row.Scan(dest...); err != nil {
		return models.Rating{}, err
	}

	r.Description = nullableString(desc)
	_, r.Votes = rating.Sums(r.Buckets)
	return r, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
