// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/danielhkuo/rate-anything/db"
)

// TestPostgresStore runs the store contract against a real PostgreSQL
// container. Skipped in -short mode or when Docker is unavailable.
func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("ratings_test"),
		postgres.WithUsername("ratings"),
		postgres.WithPassword("devpassword"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	runStoreSuite(t, func(t *testing.T) Store {
		s, err := OpenSQL(context.Background(), TypePostgres, dsn)
		require.NoError(t, err)

		// every subtest starts from an empty table
		require.NoError(t, db.DropSchema(context.Background(), s.DB()))
		require.NoError(t, db.CreateSchema(context.Background(), s.DB()))

		t.Cleanup(func() { s.Close() })
		return s
	})
}
