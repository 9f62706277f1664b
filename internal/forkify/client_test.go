// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package forkify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/forkify/internal/httputil"
	"github.com/pdiddy/forkify/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

const sampleRecipeJSON = `{
  "status": "success",
  "data": {
    "recipe": {
      "publisher": "Closet Cooking",
      "ingredients": [
        {"quantity": 1, "unit": "", "description": "tbsp. olive oil"},
        {"quantity": null, "unit": "", "description": "salt"},
        {"quantity": 0.5, "unit": "cup", "description": "parmesan"}
      ],
      "source_url": "http://www.closetcooking.com/2011/08/pizza.html",
      "image_url": "http://forkify-api.herokuapp.com/images/pizza.jpg",
      "title": "Pizza Dip",
      "servings": 4,
      "cooking_time": 45,
      "id": "5ed6604591c37cdc054bc886"
    }
  }
}`

const sampleSearchJSON = `{
  "status": "success",
  "results": 2,
  "data": {
    "recipes": [
      {"publisher": "101 Cookbooks", "image_url": "http://img/1.jpg", "title": "Best Pizza Dough Ever", "id": "5ed6604591c37cdc054bcd09"},
      {"publisher": "Me", "image_url": "http://img/2.jpg", "title": "My Pizza", "id": "abc", "key": "k-123"}
    ]
  }
}`

func testClient(ts *httptest.Server, key string) *Client {
	c := New(types.APIConfig{URL: ts.URL + "/api/v2/recipes/", Key: key, Timeout: 5 * time.Second})
	c.HTTP = ts.Client()
	return c
}

func TestNewTrimsTrailingSlashAndAppliesDefaults(t *testing.T) {
	c := New(types.APIConfig{URL: "http://example.test/recipes/"})
	assert.Equal(t, "http://example.test/recipes", c.BaseURL)
	assert.Equal(t, types.DefaultTimeout, c.Timeout)
	assert.Equal(t, types.DefaultMaxRetries, c.MaxRetries)
	assert.Equal(t, types.DefaultUserAgent, c.UserAgent)
}

func TestGetRecipe(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(sampleRecipeJSON))
	}))
	defer ts.Close()

	r, err := testClient(ts, "").GetRecipe(context.Background(), "5ed6604591c37cdc054bc886")
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/recipes/5ed6604591c37cdc054bc886", gotPath)
	assert.Equal(t, "5ed6604591c37cdc054bc886", r.ID)
	assert.Equal(t, "Pizza Dip", r.Title)
	assert.Equal(t, "http://www.closetcooking.com/2011/08/pizza.html", r.SourceURL)
	assert.Equal(t, "http://forkify-api.herokuapp.com/images/pizza.jpg", r.Image)
	assert.Equal(t, 45, r.CookingTime)
	assert.Equal(t, 4, r.Servings)
	assert.Empty(t, r.Key)
	assert.False(t, r.Bookmarked)
	require.Len(t, r.Ingredients, 3)
	assert.Equal(t, 1.0, *r.Ingredients[0].Quantity)
	assert.Nil(t, r.Ingredients[1].Quantity)
	assert.Equal(t, "cup", r.Ingredients[2].Unit)
}

func TestGetRecipeSendsKeyWhenConfigured(t *testing.T) {
	var gotKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(sampleRecipeJSON))
	}))
	defer ts.Close()

	_, err := testClient(ts, "k-123").GetRecipe(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "k-123", gotKey)
}

func TestGetRecipeFailPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":"fail","message":"Invalid _id: nope"}`))
	}))
	defer ts.Close()

	_, err := testClient(ts, "").GetRecipe(context.Background(), "nope")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadRequest, fe.Status)
	assert.Equal(t, "Invalid _id: nope (400)", err.Error())
}

func TestGetRecipeNonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html>not found</html>"))
	}))
	defer ts.Close()

	_, err := testClient(ts, "").GetRecipe(context.Background(), "x")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Not Found (404)", fe.Error())
}

func TestGetRecipeSuccessStatusWithFailBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"No recipe"}`))
	}))
	defer ts.Close()

	_, err := testClient(ts, "").GetRecipe(context.Background(), "x")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "No recipe", fe.Message)
}

func TestGetRecipeShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<<<`},
		{"missing data", `{"status":"success"}`},
		{"missing recipe", `{"status":"success","data":{}}`},
		{"recipe without id", `{"status":"success","data":{"recipe":{"title":"x"}}}`},
		{"wrong field type", `{"status":"success","data":{"recipe":{"id":"x","servings":"four"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			_, err := testClient(ts, "").GetRecipe(context.Background(), "x")
			var de *DecodeError
			assert.True(t, errors.As(err, &de), "got %v", err)
		})
	}
}

func TestGetRecipeNetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := testClient(ts, "")
	c.MaxRetries = 1
	ts.Close()

	_, err := c.GetRecipe(context.Background(), "x")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.Status)
	assert.Contains(t, fe.Error(), "fetching recipe data")
}

func TestGetRecipeTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c := testClient(ts, "")
	c.Timeout = 50 * time.Millisecond

	_, err := c.GetRecipe(context.Background(), "x")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe.Error(), "took too long")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSearch(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		w.Write([]byte(sampleSearchJSON))
	}))
	defer ts.Close()

	results, err := testClient(ts, "").Search(context.Background(), "pizza")
	require.NoError(t, err)

	assert.Equal(t, "pizza", gotQuery)
	require.Len(t, results, 2)
	assert.Equal(t, types.SearchResult{
		ID: "5ed6604591c37cdc054bcd09", Title: "Best Pizza Dough Ever",
		Publisher: "101 Cookbooks", Image: "http://img/1.jpg",
	}, results[0])
	assert.Equal(t, "k-123", results[1].Key)
}

func TestSearchEmptyResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","results":0,"data":{"recipes":[]}}`))
	}))
	defer ts.Close()

	results, err := testClient(ts, "").Search(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchRejectsResultWithoutID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","data":{"recipes":[{"title":"x"}]}}`))
	}))
	defer ts.Close()

	_, err := testClient(ts, "").Search(context.Background(), "x")
	var de *DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestCreateRecipe(t *testing.T) {
	var gotBody map[string]any
	var gotKey, gotMethod, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotKey = r.URL.Query().Get("key")
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"status":"success","data":{"recipe":{
			"id":"new-1","title":"Soup","source_url":"http://s","image_url":"http://i",
			"publisher":"Me","cooking_time":30,"servings":2,"key":"k-123",
			"ingredients":[{"quantity":2,"unit":"cups","description":"water"}]}}}`))
	}))
	defer ts.Close()

	in := types.Recipe{
		Title: "Soup", SourceURL: "http://s", Image: "http://i", Publisher: "Me",
		CookingTime: 30, Servings: 2,
		Ingredients: []types.Ingredient{{Quantity: types.Qty(2), Unit: "cups", Description: "water"}},
	}
	out, err := testClient(ts, "k-123").CreateRecipe(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "k-123", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Soup", gotBody["title"])
	assert.Equal(t, "http://s", gotBody["source_url"])
	assert.Equal(t, "http://i", gotBody["image_url"])
	assert.Equal(t, float64(30), gotBody["cooking_time"])
	assert.NotContains(t, gotBody, "id")

	assert.Equal(t, "new-1", out.ID)
	assert.Equal(t, "k-123", out.Key)
	require.Len(t, out.Ingredients, 1)
}

func TestCreateRecipeRequiresKey(t *testing.T) {
	c := New(types.APIConfig{URL: "http://unused.test"})
	_, err := c.CreateRecipe(context.Background(), types.Recipe{Title: "x"})
	assert.ErrorIs(t, err, ErrMissingKey)
}
