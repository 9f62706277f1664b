// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package model

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/forkify/pkg/types"
)

const ingredientFieldPrefix = "ingredient"

// FormFromValues builds a NewRecipeForm from submitted form values. Every
// field whose name starts with "ingredient" contributes one line, ordered
// by the numeric suffix of its name ("ingredient-1", "ingredient-2", ...).
func FormFromValues(v url.Values) types.NewRecipeForm {
	form := types.NewRecipeForm{
		Title:       v.Get("title"),
		SourceURL:   v.Get("sourceUrl"),
		Image:       v.Get("image"),
		Publisher:   v.Get("publisher"),
		CookingTime: v.Get("cookingTime"),
		Servings:    v.Get("servings"),
	}

	var names []string
	for name := range v {
		if strings.HasPrefix(name, ingredientFieldPrefix) {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		ni, nj := fieldOrdinal(names[i]), fieldOrdinal(names[j])
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		form.Ingredients = append(form.Ingredients, v.Get(name))
	}
	return form
}

// fieldOrdinal extracts the trailing number of a field name, or -1.
func fieldOrdinal(name string) int {
	i := len(name)
	for i > 0 && name[i-1] >= '0' && name[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(name[i:])
	if err != nil {
		return -1
	}
	return n
}
