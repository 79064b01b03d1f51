// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is portable between PostgreSQL and SQLite.

# Tables

  - rating: one row per rated item, keyed by slug

Columns rating_1 .. rating_10 count the votes for each score. The score
column holds the weighted mean and is rewritten on every vote so that
ranking queries never aggregate on read.

# Indexes

  - rating.(score DESC, name) for the ranking listing
*/
package db
