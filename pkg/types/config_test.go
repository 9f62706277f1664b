// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithDefaults(t *testing.T) {
	cfg := AppConfig{}.WithDefaults()

	assert.Equal(t, DefaultAPIURL, cfg.API.URL)
	assert.Equal(t, DefaultTimeout, cfg.API.Timeout)
	assert.Equal(t, DefaultMaxRetries, cfg.API.MaxRetries)
	assert.Equal(t, 10, cfg.Search.ResultsPerPage)
	assert.Equal(t, 2.5, cfg.UI.ModalCloseSec)
	assert.Equal(t, StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, DefaultServerAddr, cfg.Server.Addr)
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := AppConfig{
		API:     APIConfig{URL: "http://localhost/api", Timeout: time.Second, MaxRetries: 7},
		Search:  SearchConfig{ResultsPerPage: 5},
		Storage: StorageConfig{Backend: StorageRedis, Namespace: "test"},
	}.WithDefaults()

	assert.Equal(t, "http://localhost/api", cfg.API.URL)
	assert.Equal(t, time.Second, cfg.API.Timeout)
	assert.Equal(t, 7, cfg.API.MaxRetries)
	assert.Equal(t, 5, cfg.Search.ResultsPerPage)
	assert.Equal(t, StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, "test", cfg.Storage.Namespace)
}

func TestRecipeCloneIsDeep(t *testing.T) {
	r := Recipe{
		ID:          "r1",
		Ingredients: []Ingredient{{Quantity: Qty(2), Unit: "cups", Description: "flour"}},
	}
	c := r.Clone()
	*c.Ingredients[0].Quantity = 4
	c.Ingredients[0].Unit = "g"

	assert.Equal(t, 2.0, *r.Ingredients[0].Quantity)
	assert.Equal(t, "cups", r.Ingredients[0].Unit)
}
