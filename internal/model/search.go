// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"context"

	"github.com/pdiddy/forkify/pkg/types"
)

// LoadSearchResults records query, fetches its results, and resets the
// page cursor to 1. Failures are logged and returned.
func (s *Store) LoadSearchResults(ctx context.Context, query string) error {
	s.mu.Lock()
	s.searchGen++
	gen := s.searchGen
	s.state.Search.Query = query
	s.mu.Unlock()

	results, err := s.api.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.searchGen {
		s.log.Debug("dropping superseded search", "query", query)
		return ErrSuperseded
	}
	if err != nil {
		s.log.Error("search failed", "query", query, "err", err)
		return err
	}

	s.state.Search.Results = results
	s.state.Search.Page = 1
	return nil
}

// SearchResultPage moves the page cursor to page and returns that page's
// results. Pages outside the result range yield an empty slice.
func (s *Store) SearchResultPage(page int) []types.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultPageLocked(page)
}

// CurrentResultPage returns the results of the current page.
func (s *Store) CurrentResultPage() []types.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultPageLocked(s.state.Search.Page)
}

// PageCount returns the number of result pages for the current search.
func (s *Store) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PageCount(len(s.state.Search.Results), s.state.Search.ResultsPerPage)
}

func (s *Store) resultPageLocked(page int) []types.SearchResult {
	s.state.Search.Page = page
	return pageSlice(s.state.Search.Results, page, s.state.Search.ResultsPerPage)
}

// PageCount is ceil(total / perPage). It is 0 when there are no results.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// pageSlice returns a copy of results[(page-1)*perPage : page*perPage]
// clipped to the slice bounds.
func pageSlice(results []types.SearchResult, page, perPage int) []types.SearchResult {
	if page < 1 || perPage <= 0 {
		return []types.SearchResult{}
	}
	start := (page - 1) * perPage
	if start >= len(results) {
		return []types.SearchResult{}
	}
	end := min(start+perPage, len(results))
	return append([]types.SearchResult(nil), results[start:end]...)
}
