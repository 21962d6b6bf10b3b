// Attune - Relationship Coaching Game Recommendation Engine
// Copyright 2026 Attune Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/attune-labs/attune

// Package catalog holds the immutable game registry.
//
// The catalog is loaded once at process start and treated as a read-only
// value; concurrent reads need no locking. Administrative reloads construct
// a new Catalog and swap it atomically via Store — requests in flight keep
// the instance they started with.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ErrEmptyCatalog indicates a catalog with no games. This is a fatal
// configuration error at startup, never a per-request condition.
var ErrEmptyCatalog = errors.New("catalog contains no games")

// Catalog is an immutable collection of games. Construct with New or Load;
// never mutate after construction.
type Catalog struct {
	games  []Game
	byID   map[string]*Game
	maxLvl int
}

// New builds a validated catalog from game definitions.
// Games are sorted by ID for deterministic iteration order.
func New(games []Game) (*Catalog, error) {
	if len(games) == 0 {
		return nil, ErrEmptyCatalog
	}

	sorted := make([]Game, len(games))
	copy(sorted, games)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[string]*Game, len(sorted))
	maxLvl := 0
	for i := range sorted {
		g := &sorted[i]
		if err := g.validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		if _, dup := byID[g.ID]; dup {
			return nil, fmt.Errorf("invalid catalog: duplicate game id %q", g.ID)
		}
		byID[g.ID] = g
		if g.LevelRequired > maxLvl {
			maxLvl = g.LevelRequired
		}
	}

	return &Catalog{games: sorted, byID: byID, maxLvl: maxLvl}, nil
}

// Load reads a catalog from a YAML file of the form:
//
//	games:
//	  - id: and-what-else
//	    title: "And What Else?"
//	    ...
//
// A missing path loads the built-in default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(DefaultGames())
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load catalog file %s: %w", path, err)
	}

	var games []Game
	if err := k.Unmarshal("games", &games); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	return New(games)
}

// Games returns all games in deterministic (ID) order.
// The returned slice must not be modified.
func (c *Catalog) Games() []Game {
	return c.games
}

// Get returns the game with the given ID, or nil if absent.
func (c *Catalog) Get(id string) *Game {
	return c.byID[id]
}

// Len returns the number of games.
func (c *Catalog) Len() int {
	return len(c.games)
}

// MaxLevel returns the highest level_required across the catalog.
func (c *Catalog) MaxLevel() int {
	return c.maxLvl
}

// ForLevel returns games whose level requirement is satisfied by the given
// user level, in deterministic order.
func (c *Catalog) ForLevel(userLevel int) []Game {
	out := make([]Game, 0, len(c.games))
	for _, g := range c.games {
		if g.LevelRequired <= userLevel {
			out = append(out, g)
		}
	}
	return out
}

// Store holds the current catalog and supports atomic replacement on
// administrative reload. Reads are lock-free.
type Store struct {
	current atomic.Pointer[Catalog]
	path    string
}

// NewStore creates a store around an initial catalog.
// The path, if non-empty, is re-read on Reload.
func NewStore(initial *Catalog, path string) *Store {
	s := &Store{path: path}
	s.current.Store(initial)
	return s
}

// Current returns the active catalog. Never nil.
func (s *Store) Current() *Catalog {
	return s.current.Load()
}

// Reload re-reads the catalog source, validates it, and swaps it in
// atomically. On any error the previous catalog stays active.
func (s *Store) Reload() (*Catalog, error) {
	c, err := Load(s.path)
	if err != nil {
		return nil, fmt.Errorf("catalog reload: %w", err)
	}
	s.current.Store(c)
	return c, nil
}
