// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package termview renders recipes, search results, and bookmarks for the
// terminal.
package termview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/forkify/internal/view"
	"github.com/pdiddy/forkify/pkg/types"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#d9480f", Dark: "#f38e82"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorMark   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	markStyle   = lipgloss.NewStyle().Foreground(colorMark)
	qtyStyle    = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
)

const (
	iconBookmarked = "★"
	iconUser       = "✎"
)

// Recipe renders a full recipe with its ingredient list.
func Recipe(r types.Recipe) string {
	var b strings.Builder

	title := titleStyle.Render(r.Title)
	if r.Bookmarked {
		title += " " + markStyle.Render(iconBookmarked)
	}
	if r.Key != "" {
		title += " " + mutedStyle.Render(iconUser)
	}
	b.WriteString(title + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %d minutes · %d servings · id %s",
		r.Publisher, r.CookingTime, r.Servings, r.ID)) + "\n\n")

	b.WriteString(headerStyle.Render("Ingredients") + "\n")
	for _, ing := range r.Ingredients {
		line := strings.TrimSpace(ing.Unit + " " + ing.Description)
		b.WriteString(qtyStyle.Render(view.FormatQuantity(ing.Quantity)) + "  " + line + "\n")
	}

	if r.SourceURL != "" {
		b.WriteString("\n" + mutedStyle.Render("Directions: "+r.SourceURL) + "\n")
	}
	return b.String()
}

// Results renders one page of search results followed by a page footer.
func Results(query string, results []types.SearchResult, page, numPages int) string {
	if len(results) == 0 {
		return mutedStyle.Render("No recipes found for your query! Please try again ;)") + "\n"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Results for %q", query)) + "\n")
	for _, r := range results {
		b.WriteString(summaryLine(r.ID, r.Title, r.Publisher, r.Key != "", false))
	}

	footer := fmt.Sprintf("page %d of %d", page, numPages)
	var hints []string
	for _, btn := range view.Buttons(page, numPages) {
		hints = append(hints, fmt.Sprintf("%s: --page %d", btn.Direction, btn.Page))
	}
	if len(hints) > 0 {
		footer += " (" + strings.Join(hints, ", ") + ")"
	}
	b.WriteString(mutedStyle.Render(footer) + "\n")
	return b.String()
}

// Bookmarks renders the bookmark list.
func Bookmarks(recipes []types.Recipe) string {
	if len(recipes) == 0 {
		return mutedStyle.Render("No bookmarks yet. Find a nice recipe and bookmark it ;)") + "\n"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Bookmarks") + "\n")
	for _, r := range recipes {
		b.WriteString(summaryLine(r.ID, r.Title, r.Publisher, r.Key != "", true))
	}
	return b.String()
}

func summaryLine(id, title, publisher string, user, bookmarked bool) string {
	marks := ""
	if bookmarked {
		marks += " " + markStyle.Render(iconBookmarked)
	}
	if user {
		marks += " " + mutedStyle.Render(iconUser)
	}
	return fmt.Sprintf("  %s%s\n    %s\n", titleStyle.Render(title), marks, mutedStyle.Render(publisher+" · "+id))
}
