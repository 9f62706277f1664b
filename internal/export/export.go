// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes bookmarked recipes to YAML, JSON, or XLSX.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/forkify/pkg/types"
)

// Format is an export file format.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	XLSX Format = "xlsx"
)

// Sheet names of the XLSX export.
const (
	RecipesSheet     = "Bookmarks"
	IngredientsSheet = "Ingredients"
)

// ParseFormat accepts a format name, case-insensitively. "yml" is YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	case "xlsx":
		return XLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: use yaml, json, or xlsx", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Write encodes recipes to w in the given format.
func Write(w io.Writer, format Format, recipes []types.Recipe) error {
	if recipes == nil {
		recipes = []types.Recipe{}
	}
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recipes); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(recipes); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case XLSX:
		return writeXLSX(w, recipes)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// writeXLSX writes one row per recipe to the Bookmarks sheet and one row
// per ingredient to the Ingredients sheet.
func writeXLSX(w io.Writer, recipes []types.Recipe) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RecipesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(IngredientsSheet); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(RecipesSheet)
	if err != nil {
		return err
	}
	header := []interface{}{"id", "title", "publisher", "source_url", "image_url", "cooking_time", "servings", "user_generated"}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}
	for i, r := range recipes {
		row := []interface{}{r.ID, r.Title, r.Publisher, r.SourceURL, r.Image, r.CookingTime, r.Servings, r.Key != ""}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	sw, err = f.NewStreamWriter(IngredientsSheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", []interface{}{"recipe_id", "quantity", "unit", "description"}); err != nil {
		return err
	}
	row := 2
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			var qty interface{}
			if ing.Quantity != nil {
				qty = *ing.Quantity
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := sw.SetRow(cell, []interface{}{r.ID, qty, ing.Unit, ing.Description}); err != nil {
				return err
			}
			row++
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}
