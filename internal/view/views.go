// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package view

import "github.com/pdiddy/forkify/pkg/types"

// IngredientFields is the number of ingredient inputs on the add-recipe
// form.
const IngredientFields = 6

// ResultsData feeds the search results view. ActiveID marks the recipe
// currently open.
type ResultsData struct {
	Results  []types.SearchResult
	ActiveID string
}

// BookmarksData feeds the bookmarks view.
type BookmarksData struct {
	Bookmarks []types.Recipe
	ActiveID  string
}

// AddRecipeForm feeds the add-recipe view. Ingredients always has
// IngredientFields entries.
type AddRecipeForm struct {
	Form        types.NewRecipeForm
	Ingredients []string
}

// NewAddRecipeForm pads form's ingredient lines to IngredientFields.
func NewAddRecipeForm(form types.NewRecipeForm) AddRecipeForm {
	lines := append([]string(nil), form.Ingredients...)
	for len(lines) < IngredientFields {
		lines = append(lines, "")
	}
	return AddRecipeForm{Form: form, Ingredients: lines}
}

// preview is one row of the results or bookmarks list. Prefix namespaces
// its keys so both lists can share the template.
type preview struct {
	Prefix    string
	ID        string
	Title     string
	Publisher string
	Image     string
	Key       string
	Active    bool
}

func previewOf(prefix, id, title, publisher, image, key, activeID string) preview {
	return preview{
		Prefix:    prefix,
		ID:        id,
		Title:     title,
		Publisher: publisher,
		Image:     image,
		Key:       key,
		Active:    id == activeID,
	}
}

// Views groups every view of the page.
type Views struct {
	Recipe     *View[types.Recipe]
	Results    *View[ResultsData]
	Pagination *View[Pagination]
	Bookmarks  *View[BookmarksData]
	AddRecipe  *View[AddRecipeForm]
}

// New returns the page's views, each mounted with its initial content.
func New() *Views {
	v := &Views{
		Recipe: &View[types.Recipe]{
			name:         "recipe",
			errorMessage: "We could not find that recipe. Please try another one!",
			message:      "Start by searching for a recipe or an ingredient. Have fun!",
			isEmpty:      func(r types.Recipe) bool { return r.ID == "" },
		},
		Results: &View[ResultsData]{
			name:         "results",
			errorMessage: "No recipes found for your query! Please try again ;)",
			isEmpty:      func(d ResultsData) bool { return len(d.Results) == 0 },
		},
		Pagination: &View[Pagination]{
			name: "pagination",
		},
		Bookmarks: &View[BookmarksData]{
			name:         "bookmarks",
			errorMessage: "No bookmarks yet. Find a nice recipe and bookmark it ;)",
			isEmpty:      func(d BookmarksData) bool { return len(d.Bookmarks) == 0 },
		},
		AddRecipe: &View[AddRecipeForm]{
			name:    "addrecipe",
			message: "You created new recipe!",
		},
	}
	v.Recipe.RenderMessage("")
	v.AddRecipe.Render(NewAddRecipeForm(types.NewRecipeForm{}))
	return v
}
