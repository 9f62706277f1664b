// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package forkify

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pdiddy/forkify/pkg/types"
)

const statusSuccess = "success"

// Forkify API JSON structures.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Results int             `json:"results"`
	Data    json.RawMessage `json:"data"`
}

type recipeData struct {
	Recipe *recipePayload `json:"recipe"`
}

type searchData struct {
	Recipes []summaryPayload `json:"recipes"`
}

type recipePayload struct {
	ID          string              `json:"id,omitempty"`
	Title       string              `json:"title"`
	SourceURL   string              `json:"source_url"`
	ImageURL    string              `json:"image_url"`
	Publisher   string              `json:"publisher"`
	CookingTime int                 `json:"cooking_time"`
	Servings    int                 `json:"servings"`
	Ingredients []ingredientPayload `json:"ingredients"`
	Key         string              `json:"key,omitempty"`
}

type ingredientPayload struct {
	Quantity    *float64 `json:"quantity"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
}

type summaryPayload struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Publisher string `json:"publisher"`
	ImageURL  string `json:"image_url"`
	Key       string `json:"key,omitempty"`
}

func (d recipeData) toRecipe() (types.Recipe, error) {
	if d.Recipe == nil {
		return types.Recipe{}, &DecodeError{Shape: "recipe", Err: errors.New("missing recipe member")}
	}
	p := d.Recipe
	if p.ID == "" {
		return types.Recipe{}, &DecodeError{Shape: "recipe", Err: errors.New("recipe has no id")}
	}

	r := types.Recipe{
		ID:          p.ID,
		Title:       p.Title,
		SourceURL:   p.SourceURL,
		Image:       p.ImageURL,
		Publisher:   p.Publisher,
		CookingTime: p.CookingTime,
		Servings:    p.Servings,
		Key:         p.Key,
		Ingredients: make([]types.Ingredient, 0, len(p.Ingredients)),
	}
	for _, ing := range p.Ingredients {
		r.Ingredients = append(r.Ingredients, types.Ingredient{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}
	return r, nil
}

func (d searchData) toResults() ([]types.SearchResult, error) {
	if d.Recipes == nil {
		return nil, &DecodeError{Shape: "recipes", Err: errors.New("missing recipes member")}
	}
	out := make([]types.SearchResult, 0, len(d.Recipes))
	for i, s := range d.Recipes {
		if s.ID == "" {
			return nil, &DecodeError{Shape: "recipes", Err: fmt.Errorf("result %d has no id", i)}
		}
		out = append(out, types.SearchResult{
			ID:        s.ID,
			Title:     s.Title,
			Publisher: s.Publisher,
			Image:     s.ImageURL,
			Key:       s.Key,
		})
	}
	return out, nil
}

// fromRecipe converts r into the upload payload. The id is left for the
// API to assign.
func fromRecipe(r types.Recipe) recipePayload {
	p := recipePayload{
		Title:       r.Title,
		SourceURL:   r.SourceURL,
		ImageURL:    r.Image,
		Publisher:   r.Publisher,
		CookingTime: r.CookingTime,
		Servings:    r.Servings,
		Ingredients: make([]ingredientPayload, 0, len(r.Ingredients)),
	}
	for _, ing := range r.Ingredients {
		p.Ingredients = append(p.Ingredients, ingredientPayload{
			Quantity:    ing.Quantity,
			Unit:        ing.Unit,
			Description: ing.Description,
		})
	}
	return p
}
