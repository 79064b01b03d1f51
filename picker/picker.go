// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrNoEligible is returned when every item is banned, excluded or
// has zero weight.
var ErrNoEligible = errors.New("no eligible items")

// Item is one line of the items file.
type Item struct {
	Slug   string
	Weight float64
}

// Load parses "slug weight" lines. Blank lines and lines starting with
// '#' are skipped.
func Load(r io.Reader) ([]Item, error) {
	var items []Item
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"slug weight\", got %q", line, text)
		}
		w, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("line %d: invalid weight %q", line, fields[1])
		}
		items = append(items, Item{Slug: fields[0], Weight: w})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open items file: %w", err)
	}
	defer f.Close()

	items, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// Picker samples slugs in proportion to their weight.
type Picker struct {
	mu    sync.Mutex
	rng   *rand.Rand
	items []Item
}

// New builds a picker from items, dropping any whose slug contains one of
// the banned substrings.
func New(items []Item, banned []string) *Picker {
	seed := uint64(time.Now().UnixNano())
	return NewWithRand(items, banned, rand.New(rand.NewPCG(seed, seed>>1|1)))
}

// NewWithRand is New with a caller-supplied random source.
func NewWithRand(items []Item, banned []string, rng *rand.Rand) *Picker {
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Weight <= 0 || isBanned(it.Slug, banned) {
			continue
		}
		kept = append(kept, it)
	}
	return &Picker{rng: rng, items: kept}
}

func isBanned(slug string, banned []string) bool {
	for _, word := range banned {
		if word != "" && strings.Contains(slug, word) {
			return true
		}
	}
	return false
}

// Len reports the number of eligible items.
func (p *Picker) Len() int {
	return len(p.items)
}

// Pick returns a weighted random slug not in exclude.
func (p *Picker) Pick(exclude ...string) (string, error) {
	var total float64
	for _, it := range p.items {
		if !slices.Contains(exclude, it.Slug) {
			total += it.Weight
		}
	}
	if total <= 0 {
		return "", ErrNoEligible
	}

	p.mu.Lock()
	target := p.rng.Float64() * total
	p.mu.Unlock()

	var last string
	for _, it := range p.items {
		if slices.Contains(exclude, it.Slug) {
			continue
		}
		if target < it.Weight {
			return it.Slug, nil
		}
		target -= it.Weight
		last = it.Slug
	}
	// float rounding can leave target just past the final weight
	return last, nil
}

// Pair returns two distinct slugs.
func (p *Picker) Pair() (string, string, error) {
	left, err := p.Pick()
	if err != nil {
		return "", "", err
	}
	right, err := p.Pick(left)
	if err != nil {
		return "", "", err
	}
	return left, right, nil
}
