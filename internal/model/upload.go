// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/forkify/pkg/types"
)

// ErrIngredientFormat is returned for an ingredient line that does not
// split into exactly three comma-separated fields.
var ErrIngredientFormat = errors.New("please use correct format")

// ValidationError reports an invalid add-recipe form field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseIngredient parses a "quantity,unit,description" line. Fields are
// trimmed. An empty, zero, or non-numeric quantity becomes nil.
func ParseIngredient(line string) (types.Ingredient, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 {
		return types.Ingredient{}, fmt.Errorf("%w: %q has %d fields, want quantity,unit,description",
			ErrIngredientFormat, line, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	ing := types.Ingredient{Unit: fields[1], Description: fields[2]}
	if q, err := strconv.ParseFloat(fields[0], 64); err == nil && q != 0 && !math.IsNaN(q) && !math.IsInf(q, 0) {
		ing.Quantity = &q
	}
	return ing, nil
}

// ParseIngredients parses every non-blank line. The first malformed line
// fails the whole list.
func ParseIngredients(lines []string) ([]types.Ingredient, error) {
	out := make([]types.Ingredient, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		ing, err := ParseIngredient(line)
		if err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, nil
}

// BuildRecipe validates form and converts it into a recipe ready for
// upload. The returned recipe has no id.
func BuildRecipe(form types.NewRecipeForm) (types.Recipe, error) {
	ingredients, err := ParseIngredients(form.Ingredients)
	if err != nil {
		return types.Recipe{}, &ValidationError{Field: "ingredients", Err: err}
	}
	cookingTime, err := positiveInt("cookingTime", form.CookingTime)
	if err != nil {
		return types.Recipe{}, err
	}
	servings, err := positiveInt("servings", form.Servings)
	if err != nil {
		return types.Recipe{}, err
	}

	return types.Recipe{
		Title:       strings.TrimSpace(form.Title),
		SourceURL:   strings.TrimSpace(form.SourceURL),
		Image:       strings.TrimSpace(form.Image),
		Publisher:   strings.TrimSpace(form.Publisher),
		CookingTime: cookingTime,
		Servings:    servings,
		Ingredients: ingredients,
	}, nil
}

func positiveInt(field, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: field, Err: fmt.Errorf("%q is not a number", raw)}
	}
	if n < 1 {
		return 0, &ValidationError{Field: field, Err: fmt.Errorf("must be at least 1, got %d", n)}
	}
	return n, nil
}

// UploadRecipe validates form, posts it to the API, makes the created
// recipe current, and bookmarks it. It supersedes any recipe load still in
// flight. The returned recipe is the server's copy, flagged bookmarked.
func (s *Store) UploadRecipe(ctx context.Context, form types.NewRecipeForm) (types.Recipe, error) {
	recipe, err := BuildRecipe(form)
	if err != nil {
		return types.Recipe{}, err
	}

	created, err := s.api.CreateRecipe(ctx, recipe)
	if err != nil {
		return types.Recipe{}, err
	}

	s.mu.Lock()
	s.recipeGen++
	s.state.Recipe = &created
	s.addBookmarkLocked(created)
	current := s.state.Recipe.Clone()
	snap, err := s.bookmarksSnapshotLocked()
	s.mu.Unlock()
	if err != nil {
		return current, err
	}
	return current, s.persistBookmarks(ctx, snap)
}
