// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/forkify/pkg/types"
)

func bookmarks() []types.Recipe {
	return []types.Recipe{
		{
			ID: "a", Title: "Pizza", Publisher: "P", CookingTime: 30, Servings: 4, Bookmarked: true,
			Ingredients: []types.Ingredient{
				{Quantity: types.Qty(2), Unit: "cups", Description: "flour"},
				{Description: "salt"},
			},
		},
		{ID: "b", Title: "Soup", Servings: 2, CookingTime: 10, Key: "k", Bookmarked: true},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": YAML, "YML": YAML, "json": JSON, " xlsx ": XLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)

	f, err := FormatFromPath("/tmp/out.yml")
	require.NoError(t, err)
	assert.Equal(t, YAML, f)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, bookmarks()))

	var got []types.Recipe
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, bookmarks(), got)
	assert.Contains(t, buf.String(), `"cookingTime": 30`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, YAML, bookmarks()))

	var got []types.Recipe
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Pizza", got[0].Title)
	assert.Nil(t, got[0].Ingredients[1].Quantity)
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, JSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, XLSX, bookmarks()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(RecipesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, []string{"a", "Pizza", "P"}, rows[1][:3])
	assert.Equal(t, "TRUE", rows[2][7])

	rows, err = f.GetRows(IngredientsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"a", "2", "cups", "flour"}, rows[1])
	assert.Equal(t, "salt", rows[2][3])
}
