// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for forkify.
//
// Recipe and SearchResult use the internal camelCase JSON names. They are
// the shapes persisted in local storage; the remote API's snake_case
// payloads are mapped onto them in internal/forkify.
package types

// Recipe is the full detail of a single recipe.
type Recipe struct {
	// ID is the API identifier of the recipe.
	ID string `json:"id" yaml:"id"`

	Title     string `json:"title" yaml:"title"`
	SourceURL string `json:"sourceUrl" yaml:"source_url"`
	Image     string `json:"image" yaml:"image"`
	Publisher string `json:"publisher" yaml:"publisher"`

	// CookingTime is the preparation time in minutes.
	CookingTime int `json:"cookingTime" yaml:"cooking_time"`

	// Servings is the serving count the ingredient quantities refer to.
	Servings int `json:"servings" yaml:"servings"`

	Ingredients []Ingredient `json:"ingredients" yaml:"ingredients"`

	// Key is set only on recipes uploaded with the user's API key.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Bookmarked is derived from the local bookmark list; the API never
	// returns it.
	Bookmarked bool `json:"bookmarked,omitempty" yaml:"bookmarked,omitempty"`
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		for i, ing := range r.Ingredients {
			out.Ingredients[i] = ing.Clone()
		}
	}
	return out
}

// Summary reduces a recipe to its search-result form.
func (r Recipe) Summary() SearchResult {
	return SearchResult{
		ID:        r.ID,
		Title:     r.Title,
		Publisher: r.Publisher,
		Image:     r.Image,
		Key:       r.Key,
	}
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	// Quantity is nil when the API reports no amount ("salt to taste").
	Quantity    *float64 `json:"quantity" yaml:"quantity"`
	Unit        string   `json:"unit" yaml:"unit"`
	Description string   `json:"description" yaml:"description"`
}

// Clone returns a copy of ing that does not share the quantity pointer.
func (ing Ingredient) Clone() Ingredient {
	out := ing
	if ing.Quantity != nil {
		q := *ing.Quantity
		out.Quantity = &q
	}
	return out
}

// Qty returns a pointer to q. It keeps literals in tests and callers short.
func Qty(q float64) *float64 { return &q }

// SearchResult is the reduced recipe representation returned by search.
type SearchResult struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Publisher string `json:"publisher" yaml:"publisher"`
	Image     string `json:"image" yaml:"image"`
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`
}

// SearchState holds the current query, its results, and the page cursor.
type SearchState struct {
	Query   string         `json:"query" yaml:"query"`
	Results []SearchResult `json:"results" yaml:"results"`

	// Page is 1-indexed and reset to 1 on every new query.
	Page           int `json:"page" yaml:"page"`
	ResultsPerPage int `json:"resultsPerPage" yaml:"results_per_page"`
}

// NewRecipeForm is the raw add-recipe form as submitted by the user. Numeric
// fields stay strings until the upload validates them.
type NewRecipeForm struct {
	Title       string `json:"title" yaml:"title"`
	SourceURL   string `json:"sourceUrl" yaml:"source_url"`
	Image       string `json:"image" yaml:"image"`
	Publisher   string `json:"publisher" yaml:"publisher"`
	CookingTime string `json:"cookingTime" yaml:"cooking_time"`
	Servings    string `json:"servings" yaml:"servings"`

	// Ingredients holds free-text lines in "quantity,unit,description" form.
	// Empty lines are ignored.
	Ingredients []string `json:"ingredients" yaml:"ingredients"`
}
