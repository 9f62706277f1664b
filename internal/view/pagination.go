// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import (
	"fmt"

	"github.com/pdiddy/forkify/pkg/types"
)

// Direction is the side a pagination button points to.
type Direction string

const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// Button is one pagination control.
type Button struct {
	Direction Direction
	Page      int
	Label     string
}

// Pagination feeds the pagination view.
type Pagination struct {
	Page     int
	NumPages int
	Buttons  []Button
}

// Buttons returns the controls for page out of numPages: "prev" when
// page > 1 and "next" when page < numPages. There are none when
// numPages <= 1 or page lies outside 1..numPages.
func Buttons(page, numPages int) []Button {
	if numPages <= 1 || page < 1 || page > numPages {
		return nil
	}
	var out []Button
	if page > 1 {
		out = append(out, Button{Direction: Prev, Page: page - 1, Label: fmt.Sprintf("Page %d", page-1)})
	}
	if page < numPages {
		out = append(out, Button{Direction: Next, Page: page + 1, Label: fmt.Sprintf("Page %d", page+1)})
	}
	return out
}

// PaginationFor derives the pagination controls of a search state.
func PaginationFor(s types.SearchState) Pagination {
	n := 0
	if s.ResultsPerPage > 0 {
		n = (len(s.Results) + s.ResultsPerPage - 1) / s.ResultsPerPage
	}
	return Pagination{Page: s.Page, NumPages: n, Buttons: Buttons(s.Page, n)}
}
