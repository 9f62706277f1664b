// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults applied when a config value is zero.
const (
	DefaultAPIURL         = "https://forkify-api.herokuapp.com/api/v2/recipes"
	DefaultTimeout        = 10 * time.Second
	DefaultResultsPerPage = 10
	DefaultModalCloseSec  = 2.5
	DefaultMaxRetries     = 3
	DefaultUserAgent      = "forkify/0.1"
	DefaultServerAddr     = "127.0.0.1:8080"
	DefaultStorageBackend = StorageSQLite
	DefaultRedisNamespace = "forkify"
)

// APIConfig holds settings for the remote recipe API.
type APIConfig struct {
	// URL is the recipes collection endpoint, without a trailing slash.
	URL string `json:"url" yaml:"url"`

	// Key is the personal API key used for uploads. Recipes created with it
	// carry the key and are returned by searches that include it.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`

	// Timeout bounds a single request, retries included.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retries on HTTP 429 and 5xx (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for search pagination.
type SearchConfig struct {
	// ResultsPerPage is the page size (default 10).
	ResultsPerPage int `json:"results_per_page" yaml:"results_per_page"`
}

// UIConfig holds presentation settings for the browser UI.
type UIConfig struct {
	// ModalCloseSec is how long the add-recipe modal stays open after a
	// successful upload.
	ModalCloseSec float64 `json:"modal_close_sec" yaml:"modal_close_sec"`
}

// StorageBackend identifies the local storage implementation.
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageFile   StorageBackend = "file"
	StorageRedis  StorageBackend = "redis"
)

// StorageConfig holds settings for bookmark persistence.
type StorageConfig struct {
	// Backend selects sqlite, file, or redis.
	Backend StorageBackend `json:"backend" yaml:"backend"`

	// Path is the SQLite database or JSON file path.
	Path string `json:"path" yaml:"path"`

	// RedisURL is used by the redis backend (e.g. "redis://localhost:6379/0").
	RedisURL string `json:"redis_url,omitempty" yaml:"redis_url,omitempty"`

	// Namespace prefixes redis keys (default "forkify").
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// ServerConfig holds settings for the browser UI server.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// AppConfig groups every section of the configuration file.
type AppConfig struct {
	API     APIConfig     `json:"api" yaml:"api"`
	Search  SearchConfig  `json:"search" yaml:"search"`
	UI      UIConfig      `json:"ui" yaml:"ui"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c AppConfig) WithDefaults() AppConfig {
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = DefaultTimeout
	}
	if c.API.MaxRetries <= 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.UserAgent == "" {
		c.API.UserAgent = DefaultUserAgent
	}
	if c.Search.ResultsPerPage <= 0 {
		c.Search.ResultsPerPage = DefaultResultsPerPage
	}
	if c.UI.ModalCloseSec <= 0 {
		c.UI.ModalCloseSec = DefaultModalCloseSec
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultStorageBackend
	}
	if c.Storage.Namespace == "" {
		c.Storage.Namespace = DefaultRedisNamespace
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	return c
}
