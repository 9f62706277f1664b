// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/forkify/internal/controller"
	"github.com/pdiddy/forkify/internal/forkify"
	"github.com/pdiddy/forkify/internal/httputil"
	"github.com/pdiddy/forkify/internal/model"
	"github.com/pdiddy/forkify/internal/storage"
	"github.com/pdiddy/forkify/internal/view"
	"github.com/pdiddy/forkify/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = 0
}

func recipeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		id := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, "/recipes"), "/")
		switch {
		case r.Method == http.MethodPost:
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			body["id"] = "new-recipe"
			body["key"] = "k-1"
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": map[string]any{"recipe": body}})
		case id == "":
			json.NewEncoder(w).Encode(map[string]any{"status": "success", "results": 2, "data": map[string]any{"recipes": []map[string]any{
				{"id": "a1", "title": "Pasta One", "publisher": "P", "image_url": "https://i/1"},
				{"id": "a2", "title": "Pasta Two", "publisher": "P", "image_url": "https://i/2"},
			}}})
		case id == "bad":
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"status": "fail", "message": "Invalid _id: bad"})
		default:
			json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": map[string]any{"recipe": map[string]any{
				"id": id, "title": "Dish " + id, "publisher": "P", "source_url": "https://s",
				"image_url": "https://i", "servings": 2, "cooking_time": 10,
				"ingredients": []map[string]any{{"quantity": 1, "unit": "kg", "description": "rice"}},
			}}})
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	api := recipeAPI(t)
	client := forkify.New(types.APIConfig{URL: api.URL + "/recipes", Key: "k-1"})
	st, err := storage.NewSQLite(filepath.Join(t.TempDir(), "forkify.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	store, err := model.Open(context.Background(), client, st, model.Options{})
	require.NoError(t, err)
	return New(controller.New(store, view.New(), controller.Options{}), nil)
}

func do(t *testing.T, s *Server, method, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

var jsonAccept = map[string]string{"Accept": "application/json"}

func decode(t *testing.T, w *httptest.ResponseRecorder) response {
	t.Helper()
	var r response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	return r
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIndexRendersPage(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Start by searching for a recipe or an ingredient")
	assert.Contains(t, w.Body.String(), "No bookmarks yet")
}

func TestRecipeRoute(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/recipes/r1", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dish r1")

	w = do(t, s, http.MethodGet, "/recipes/r2", "", jsonAccept)
	require.Equal(t, http.StatusOK, w.Code)
	r := decode(t, w)
	require.NotNil(t, r.State.Recipe)
	assert.Equal(t, "r2", r.State.Recipe.ID)
	assert.Contains(t, r.Patches, controller.RegionRecipe)
}

func TestRecipeRouteFailure(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/recipes/bad", "", jsonAccept)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Invalid _id: bad (400)", decode(t, w).Error)

	w = do(t, s, http.MethodGet, "/recipes/bad", "", nil)
	assert.Contains(t, w.Body.String(), "We could not find that recipe. Please try another one!")
}

func TestSearchAndPageRoutes(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/search?q=pasta", "", jsonAccept)
	require.Equal(t, http.StatusOK, w.Code)
	r := decode(t, w)
	assert.Equal(t, "pasta", r.State.Search.Query)
	assert.Len(t, r.State.Search.Results, 2)

	w = do(t, s, http.MethodGet, "/search/page/2", "", jsonAccept)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode(t, w).State.Search.Page)

	w = do(t, s, http.MethodGet, "/search/page/zero", "", jsonAccept)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServingsRoute(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/recipes/r1", "", nil)

	w := do(t, s, http.MethodPost, "/recipe/servings", `{"servings":4}`,
		map[string]string{"Accept": "application/json", "Content-Type": "application/json"})
	require.Equal(t, http.StatusOK, w.Code)
	r := decode(t, w)
	assert.Equal(t, 4, r.State.Recipe.Servings)
	assert.Equal(t, 2.0, *r.State.Recipe.Ingredients[0].Quantity)

	w = do(t, s, http.MethodPost, "/recipe/servings", "servings=1",
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/recipes/r1", w.Header().Get("Location"))
}

func TestServingsWithoutRecipe(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodPost, "/recipe/servings", `{"servings":4}`,
		map[string]string{"Accept": "application/json", "Content-Type": "application/json"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookmarkRoutes(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/recipes/r1", "", nil)

	w := do(t, s, http.MethodPost, "/recipe/bookmark", "", jsonAccept)
	require.Equal(t, http.StatusOK, w.Code)
	r := decode(t, w)
	require.Len(t, r.State.Bookmarks, 1)
	assert.True(t, r.State.Recipe.Bookmarked)

	w = do(t, s, http.MethodGet, "/bookmarks", "", nil)
	assert.Contains(t, w.Body.String(), "Dish r1")

	w = do(t, s, http.MethodPost, "/recipe/bookmark", "", jsonAccept)
	assert.Empty(t, decode(t, w).State.Bookmarks)
}

func TestAddRecipeRoute(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{
		"title": {"Rice"}, "sourceUrl": {"https://s"}, "image": {"https://i"},
		"publisher": {"Me"}, "cookingTime": {"15"}, "servings": {"2"},
		"ingredient-1": {"1,kg,rice"}, "ingredient-2": {""},
	}
	w := do(t, s, http.MethodPost, "/recipes", form.Encode(),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/recipes/new-recipe", w.Header().Get("Location"))

	w = do(t, s, http.MethodGet, "/bookmarks", "", jsonAccept)
	bookmarks := decode(t, w).State.Bookmarks
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "k-1", bookmarks[0].Key)
}

func TestAddRecipeRouteRejectsBadIngredient(t *testing.T) {
	s := newTestServer(t)

	form := url.Values{
		"title": {"Rice"}, "cookingTime": {"15"}, "servings": {"2"},
		"ingredient-1": {"rice"},
	}
	w := do(t, s, http.MethodPost, "/recipes", form.Encode(), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"Accept":       "application/json",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	r := decode(t, w)
	assert.Contains(t, r.Error, "please use correct format")
	assert.Empty(t, r.Upload.ID)
}

func TestUploadFormRoute(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/upload", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="ingredient-6"`)
	assert.NotContains(t, w.Body.String(), `add-recipe-window hidden`)
}

func TestStaticAssets(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/static/app.js", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "data-region")
}
