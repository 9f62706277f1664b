// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pdiddy/forkify/pkg/types"
)

// Bookmarks returns a copy of the bookmark list in insertion order.
func (s *Store) Bookmarks() []types.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecipes(s.state.Bookmarks)
}

// IsBookmarked reports whether id is in the bookmark list.
func (s *Store) IsBookmarked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookmarkIndexLocked(id) >= 0
}

// AddBookmark appends recipe to the bookmark list unless its id is already
// present, flags the current recipe when ids match, and persists the list.
func (s *Store) AddBookmark(ctx context.Context, recipe types.Recipe) error {
	s.mu.Lock()
	s.addBookmarkLocked(recipe)
	snap, err := s.bookmarksSnapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.persistBookmarks(ctx, snap)
}

// DeleteBookmark removes the bookmark with the given id, clears the current
// recipe's flag when ids match, and persists the list. Deleting an id that
// is not bookmarked changes nothing but still persists.
func (s *Store) DeleteBookmark(ctx context.Context, id string) error {
	s.mu.Lock()
	if i := s.bookmarkIndexLocked(id); i >= 0 {
		s.state.Bookmarks = append(s.state.Bookmarks[:i:i], s.state.Bookmarks[i+1:]...)
	}
	if s.state.Recipe != nil && s.state.Recipe.ID == id {
		s.state.Recipe.Bookmarked = false
	}
	snap, err := s.bookmarksSnapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.persistBookmarks(ctx, snap)
}

func (s *Store) addBookmarkLocked(recipe types.Recipe) {
	if s.bookmarkIndexLocked(recipe.ID) < 0 {
		saved := recipe.Clone()
		saved.Bookmarked = true
		s.state.Bookmarks = append(s.state.Bookmarks, saved)
	}
	if s.state.Recipe != nil && s.state.Recipe.ID == recipe.ID {
		s.state.Recipe.Bookmarked = true
	}
}

func (s *Store) bookmarkIndexLocked(id string) int {
	for i, b := range s.state.Bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// bookmarksSnapshot is an encoded bookmark list and the mutation it follows.
type bookmarksSnapshot struct {
	data    string
	version uint64
}

func (s *Store) bookmarksSnapshotLocked() (bookmarksSnapshot, error) {
	list := s.state.Bookmarks
	if list == nil {
		list = []types.Recipe{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return bookmarksSnapshot{}, fmt.Errorf("encoding bookmarks: %w", err)
	}
	s.bookmarksVersion++
	return bookmarksSnapshot{data: string(data), version: s.bookmarksVersion}, nil
}

// persistBookmarks writes snap to storage without holding the state lock.
// A snapshot older than one already written is dropped so concurrent
// mutations cannot leave a stale list behind.
func (s *Store) persistBookmarks(ctx context.Context, snap bookmarksSnapshot) error {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if snap.version <= s.persistedVersion {
		return nil
	}
	if err := s.storage.SetItem(ctx, BookmarksKey, snap.data); err != nil {
		return fmt.Errorf("persisting bookmarks: %w", err)
	}
	s.persistedVersion = snap.version
	return nil
}

// dedupeBookmarks keeps the first occurrence of every id and marks each
// entry bookmarked.
func dedupeBookmarks(in []types.Recipe) []types.Recipe {
	seen := make(map[string]struct{}, len(in))
	out := make([]types.Recipe, 0, len(in))
	for _, r := range in {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		r.Bookmarked = true
		out = append(out, r)
	}
	return out
}
