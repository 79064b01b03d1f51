// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/danielhkuo/rate-anything/models"
	"github.com/danielhkuo/rate-anything/rating"
)

// MemoryStore keeps ratings in process memory. Data is lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	ratings map[string]models.Rating
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ratings: make(map[string]models.Rating)}
}

func (s *MemoryStore) Get(_ context.Context, name string) (models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.ratings[name]
	if !ok {
		return models.Rating{}, fmt.Errorf("%w: %s", rating.ErrNotFound, name)
	}
	return clone(r), nil
}

// Vote holds the write lock across read, apply and write.
func (s *MemoryStore) Vote(ctx context.Context, name string, score int, description *string) (models.Rating, error) {
	if err := ctx.Err(); err != nil {
		return models.Rating{}, fmt.Errorf("%w: vote %q: %w", rating.ErrStorage, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var prev *models.Rating
	if r, ok := s.ratings[name]; ok {
		prev = &r
	}

	next, err := rating.Apply(prev, name, score, description)
	if err != nil {
		return models.Rating{}, err
	}
	s.ratings[name] = next
	return clone(next), nil
}

func (s *MemoryStore) Rankings(_ context.Context, page models.Page) ([]models.RankEntry, error) {
	s.mu.RLock()
	entries := make([]models.RankEntry, 0, len(s.ratings))
	for _, r := range s.ratings {
		entries = append(entries, models.RankEntry{
			Name:        r.Name,
			Description: r.Description,
			Score:       r.Score,
		})
	}
	s.mu.RUnlock()

	slices.SortFunc(entries, func(a, b models.RankEntry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if page.Offset >= len(entries) {
		return nil, rating.ErrNoData
	}
	end := len(entries)
	if page.Limit >= 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	if end <= page.Offset {
		return nil, rating.ErrNoData
	}
	return entries[page.Offset:end], nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func clone(r models.Rating) models.Rating {
	if r.Description != nil {
		d := *r.Description
		r.Description = &d
	}
	return r
}
