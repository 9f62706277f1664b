// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/forkify/pkg/types"
)

func TestButtons(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		numPages int
		want     []Button
	}{
		{"single page", 1, 1, nil},
		{"no results", 1, 0, nil},
		{"first of many", 1, 3, []Button{{Next, 2, "Page 2"}}},
		{"middle", 2, 3, []Button{{Prev, 1, "Page 1"}, {Next, 3, "Page 3"}}},
		{"last", 3, 3, []Button{{Prev, 2, "Page 2"}}},
		{"past the last", 4, 3, nil},
		{"far past the last", 9, 3, nil},
		{"before the first", 0, 3, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Buttons(tt.page, tt.numPages))
		})
	}
}

func TestPaginationView(t *testing.T) {
	v := New()
	state := types.SearchState{Query: "pizza", Results: results(30), Page: 2, ResultsPerPage: 10}

	p := PaginationFor(state)
	assert.Equal(t, 3, p.NumPages)
	require.NoError(t, v.Pagination.Render(p))

	d := doc(t, string(v.Pagination.Markup()))
	prev := d.Find(`[data-key="page-prev"]`)
	next := d.Find(`[data-key="page-next"]`)
	prevPage, _ := prev.Attr("data-page")
	nextPage, _ := next.Attr("data-page")
	assert.Equal(t, "1", prevPage)
	assert.Equal(t, "3", nextPage)
	assert.Equal(t, "Page 1", prev.Text())
	assert.Equal(t, "Page 3", next.Text())

	state.Page = 3
	patches, err := v.Pagination.Update(PaginationFor(state))
	require.NoError(t, err)
	keys := map[string]PatchOp{}
	for _, p := range patches {
		keys[p.Key] = p.Op
	}
	assert.Equal(t, OpRemove, keys["page-next"])
	assert.Equal(t, OpAttrs, keys["page-prev"])
}

func TestPaginationViewPastLastPageHasNoButtons(t *testing.T) {
	v := New()
	p := PaginationFor(types.SearchState{Results: results(30), Page: 4, ResultsPerPage: 10})
	assert.Equal(t, 3, p.NumPages)
	assert.Empty(t, p.Buttons)
	require.NoError(t, v.Pagination.Render(p))
	d := doc(t, string(v.Pagination.Markup()))
	assert.Equal(t, 0, d.Find("a").Length())
}

func TestPaginationViewSinglePage(t *testing.T) {
	v := New()
	require.NoError(t, v.Pagination.Render(PaginationFor(types.SearchState{Results: results(4), Page: 1, ResultsPerPage: 10})))
	d := doc(t, string(v.Pagination.Markup()))
	assert.Equal(t, 0, d.Find("a").Length())
}
