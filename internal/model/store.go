// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package model owns the application state: the current recipe, the search
// state, and the bookmark list. State is mutated only through Store
// methods; renderers read copies obtained from Snapshot.
//
// API and storage calls run outside the store's lock and their results are applied
// under it. Recipe loads and searches each carry a generation number, so a
// response that arrives after a newer request of the same kind has started
// is dropped with ErrSuperseded instead of overwriting fresher state.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/pdiddy/forkify/internal/storage"
	"github.com/pdiddy/forkify/pkg/types"
)

// BookmarksKey is the storage key holding the serialized bookmark list.
const BookmarksKey = "bookmarks"

var (
	// ErrNoRecipe is returned by operations that need a loaded recipe.
	ErrNoRecipe = errors.New("no recipe loaded")

	// ErrSuperseded is returned when a newer request of the same kind
	// started while this one was in flight. Its result was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// RecipeAPI is the subset of the remote API the store depends on.
type RecipeAPI interface {
	GetRecipe(ctx context.Context, id string) (types.Recipe, error)
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
	CreateRecipe(ctx context.Context, r types.Recipe) (types.Recipe, error)
}

// State is the complete application state.
type State struct {
	// Recipe is nil until the first recipe is loaded.
	Recipe    *types.Recipe     `json:"recipe"`
	Search    types.SearchState `json:"search"`
	Bookmarks []types.Recipe    `json:"bookmarks"`
}

// Store holds State and exposes the operations that mutate it.
type Store struct {
	mu      sync.Mutex
	state   State
	api     RecipeAPI
	storage storage.Storage
	log     *slog.Logger

	recipeGen uint64
	searchGen uint64

	// bookmarksVersion counts bookmark mutations (guarded by mu);
	// persistedVersion is the last one written to storage (guarded by
	// persistMu).
	bookmarksVersion uint64
	persistMu        sync.Mutex
	persistedVersion uint64
}

// Options configures Open.
type Options struct {
	// ResultsPerPage is the search page size (default 10).
	ResultsPerPage int
	Logger         *slog.Logger
}

// Open creates a store and rehydrates bookmarks from st. Unreadable or
// corrupt bookmark data is logged and the store starts with no bookmarks.
func Open(ctx context.Context, api RecipeAPI, st storage.Storage, opts Options) (*Store, error) {
	if opts.ResultsPerPage <= 0 {
		opts.ResultsPerPage = types.DefaultResultsPerPage
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	s := &Store{
		api:     api,
		storage: st,
		log:     log,
		state: State{
			Search: types.SearchState{
				Page:           1,
				ResultsPerPage: opts.ResultsPerPage,
			},
		},
	}

	raw, ok, err := st.GetItem(ctx, BookmarksKey)
	if err != nil {
		return nil, err
	}
	if ok && raw != "" {
		var saved []types.Recipe
		if err := json.Unmarshal([]byte(raw), &saved); err != nil {
			log.Warn("discarding unreadable bookmarks", "err", err)
		} else {
			s.state.Bookmarks = dedupeBookmarks(saved)
		}
	}
	return s, nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := State{
		Search:    s.state.Search,
		Bookmarks: cloneRecipes(s.state.Bookmarks),
	}
	out.Search.Results = append([]types.SearchResult(nil), s.state.Search.Results...)
	if s.state.Recipe != nil {
		r := s.state.Recipe.Clone()
		out.Recipe = &r
	}
	return out
}

// Recipe returns a copy of the current recipe, or ErrNoRecipe.
func (s *Store) Recipe() (types.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Recipe == nil {
		return types.Recipe{}, ErrNoRecipe
	}
	return s.state.Recipe.Clone(), nil
}

// LoadRecipe fetches the recipe with the given id and makes it current.
// The recipe is marked bookmarked when its id is in the bookmark list.
func (s *Store) LoadRecipe(ctx context.Context, id string) error {
	s.mu.Lock()
	s.recipeGen++
	gen := s.recipeGen
	s.mu.Unlock()

	r, err := s.api.GetRecipe(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.recipeGen {
		s.log.Debug("dropping superseded recipe load", "id", id)
		return ErrSuperseded
	}
	if err != nil {
		return err
	}

	r.Bookmarked = s.bookmarkIndexLocked(r.ID) >= 0
	s.state.Recipe = &r
	return nil
}

func cloneRecipes(in []types.Recipe) []types.Recipe {
	if in == nil {
		return nil
	}
	out := make([]types.Recipe, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
