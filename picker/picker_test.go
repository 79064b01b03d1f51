// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package picker

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(items []Item, banned []string) *Picker {
	return NewWithRand(items, banned, rand.New(rand.NewPCG(1, 2)))
}

func TestLoad(t *testing.T) {
	input := `# header
Tokyo 12.5

Pizza 3
  Go_(game)   0.25
`
	items, err := Load(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Item{
		{Slug: "Tokyo", Weight: 12.5},
		{Slug: "Pizza", Weight: 3},
		{Slug: "Go_(game)", Weight: 0.25},
	}, items)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing weight", "Tokyo 1\nPizza\n", "line 2"},
		{"extra field", "Tokyo 1 2\n", "line 1"},
		{"not a number", "Tokyo heavy\n", "invalid weight"},
		{"negative", "# c\nTokyo -1\n", "line 2"},
		{"nan", "Tokyo NaN\n", "invalid weight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("Tokyo 1\nPizza 2\n"), 0o644))

	items, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestPick_OnlyReturnsEligible(t *testing.T) {
	p := seeded([]Item{
		{Slug: "Tokyo", Weight: 1},
		{Slug: "Spam_sandwich", Weight: 100},
		{Slug: "Nothing", Weight: 0},
		{Slug: "Pizza", Weight: 1},
	}, []string{"Spam"})
	assert.Equal(t, 2, p.Len())

	for i := 0; i < 500; i++ {
		slug, err := p.Pick()
		require.NoError(t, err)
		assert.Contains(t, []string{"Tokyo", "Pizza"}, slug)
	}
}

func TestPick_FollowsWeights(t *testing.T) {
	p := seeded([]Item{
		{Slug: "heavy", Weight: 9},
		{Slug: "light", Weight: 1},
	}, nil)

	counts := map[string]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		slug, err := p.Pick()
		require.NoError(t, err)
		counts[slug]++
	}
	assert.InDelta(t, 0.9, float64(counts["heavy"])/n, 0.03)
	assert.InDelta(t, 0.1, float64(counts["light"])/n, 0.03)
}

func TestPick_Exclude(t *testing.T) {
	p := seeded([]Item{{Slug: "a", Weight: 1}, {Slug: "b", Weight: 1}}, nil)

	for i := 0; i < 100; i++ {
		slug, err := p.Pick("a")
		require.NoError(t, err)
		assert.Equal(t, "b", slug)
	}

	_, err := p.Pick("a", "b")
	assert.ErrorIs(t, err, ErrNoEligible)
}

func TestPick_AllBanned(t *testing.T) {
	p := seeded([]Item{{Slug: "bad_word", Weight: 5}}, []string{"bad"})
	_, err := p.Pick()
	assert.ErrorIs(t, err, ErrNoEligible)

	_, _, err = p.Pair()
	assert.ErrorIs(t, err, ErrNoEligible)
}

func TestPair(t *testing.T) {
	p := seeded([]Item{
		{Slug: "a", Weight: 100},
		{Slug: "b", Weight: 1},
		{Slug: "c", Weight: 1},
	}, nil)

	for i := 0; i < 200; i++ {
		left, right, err := p.Pair()
		require.NoError(t, err)
		assert.NotEqual(t, left, right)
	}
}

func TestPair_SingleItem(t *testing.T) {
	p := seeded([]Item{{Slug: "only", Weight: 1}}, nil)
	_, _, err := p.Pair()
	assert.ErrorIs(t, err, ErrNoEligible)
}

func TestPick_Concurrent(t *testing.T) {
	p := seeded([]Item{{Slug: "a", Weight: 1}, {Slug: "b", Weight: 2}}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := p.Pick(); err != nil {
					t.Errorf("pick failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
