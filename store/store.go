// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/rate-anything/models"
)

// Backend names accepted by Open.
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
	TypeMemory   = "memory"
)

// Store persists rating distributions.
//
// Vote must be atomic per name: concurrent votes for the same item are
// all reflected in the final buckets and score.
type Store interface {
	// Get returns rating.ErrNotFound when the name has no votes.
	Get(ctx context.Context, name string) (models.Rating, error)
	// Vote applies one validated vote and returns the updated record.
	Vote(ctx context.Context, name string, score int, description *string) (models.Rating, error)
	// Rankings returns rating.ErrNoData for an empty page.
	Rankings(ctx context.Context, page models.Page) ([]models.RankEntry, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the backend named by typ and prepares its schema.
func Open(ctx context.Context, typ, url string) (Store, error) {
	switch typ {
	case TypePostgres, TypeSQLite:
		return OpenSQL(ctx, typ, url)
	case TypeMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database type %q", typ)
	}
}
