// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"errors"
	"fmt"
)

// ErrInvalidServings is returned when a rescale would divide by zero or
// produce a non-positive serving count.
var ErrInvalidServings = errors.New("servings must be at least 1")

// UpdateServings rescales every ingredient quantity of the current recipe
// by newServings/servings and stores newServings. Ingredients without a
// quantity are left unchanged. On error the recipe is not modified.
func (s *Store) UpdateServings(newServings int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.state.Recipe
	if r == nil {
		return ErrNoRecipe
	}
	if newServings < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidServings, newServings)
	}
	if r.Servings < 1 {
		return fmt.Errorf("%w: recipe %s has %d servings", ErrInvalidServings, r.ID, r.Servings)
	}

	for i := range r.Ingredients {
		q := r.Ingredients[i].Quantity
		if q == nil {
			continue
		}
		scaled := *q * float64(newServings) / float64(r.Servings)
		r.Ingredients[i].Quantity = &scaled
	}
	r.Servings = newServings
	return nil
}
