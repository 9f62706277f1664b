// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package forkify is a typed client for the Forkify recipe API.
//
// Payloads are decoded into private schema structs mirroring the API's
// snake_case shapes and validated before they are converted into
// pkg/types values; a shape mismatch fails with a *DecodeError instead of
// leaking half-filled records into application state.
package forkify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/forkify/internal/httputil"
	"github.com/pdiddy/forkify/pkg/types"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// ErrMissingKey is returned by CreateRecipe when no API key is configured.
var ErrMissingKey = errors.New("an API key is required to upload recipes")

// FetchError reports a rejected request or a non-success API payload.
type FetchError struct {
	// Status is the HTTP status code, or 0 when no response arrived.
	Status int
	// Message is the API's own message when it sent one.
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("%s (%d)", e.Message, e.Status)
	case e.Message != "":
		return e.Message
	default:
		return fmt.Sprintf("fetching recipe data: %v", e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports a payload that does not match the expected schema.
type DecodeError struct {
	// Shape names the expected payload, e.g. "recipe" or "recipes".
	Shape string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s payload: %v", e.Shape, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Client talks to the recipes endpoint.
type Client struct {
	HTTP *http.Client

	// BaseURL is the recipes collection URL without a trailing slash.
	BaseURL string
	Key     string

	// Timeout bounds each call, retries included. Zero means no bound
	// beyond the caller's context.
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string
}

// New builds a client from cfg. Missing values fall back to defaults.
func New(cfg types.APIConfig) *Client {
	cfg = types.AppConfig{API: cfg}.WithDefaults().API
	return &Client{
		HTTP:       &http.Client{},
		BaseURL:    strings.TrimRight(cfg.URL, "/"),
		Key:        cfg.Key,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		UserAgent:  cfg.UserAgent,
	}
}

// GetRecipe fetches the full recipe with the given id.
func (c *Client) GetRecipe(ctx context.Context, id string) (types.Recipe, error) {
	reqURL := c.BaseURL + "/" + url.PathEscape(id)
	if c.Key != "" {
		reqURL += "?" + url.Values{"key": {c.Key}}.Encode()
	}

	var data recipeData
	if err := c.do(ctx, http.MethodGet, reqURL, nil, &data, "recipe"); err != nil {
		return types.Recipe{}, err
	}
	return data.toRecipe()
}

// Search returns the summaries matching query. When a key is configured
// the user's own uploads are included.
func (c *Client) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	params := url.Values{"search": {query}}
	if c.Key != "" {
		params.Set("key", c.Key)
	}

	var data searchData
	if err := c.do(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil, &data, "recipes"); err != nil {
		return nil, err
	}
	return data.toResults()
}

// CreateRecipe uploads r and returns the recipe as stored by the API,
// including its new id and key.
func (c *Client) CreateRecipe(ctx context.Context, r types.Recipe) (types.Recipe, error) {
	if c.Key == "" {
		return types.Recipe{}, ErrMissingKey
	}

	body, err := json.Marshal(fromRecipe(r))
	if err != nil {
		return types.Recipe{}, fmt.Errorf("encoding recipe: %w", err)
	}

	reqURL := c.BaseURL + "?" + url.Values{"key": {c.Key}}.Encode()
	var data recipeData
	if err := c.do(ctx, http.MethodPost, reqURL, body, &data, "recipe"); err != nil {
		return types.Recipe{}, err
	}
	return data.toRecipe()
}

// do performs one API call, checks the envelope, and decodes its data
// member into out.
func (c *Client) do(ctx context.Context, method, reqURL string, body []byte, out any, shape string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.MaxRetries)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && c.Timeout > 0 {
			return &FetchError{
				Message: fmt.Sprintf("request took too long, timed out after %s", c.Timeout),
				Err:     err,
			}
		}
		return &FetchError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &FetchError{Status: resp.StatusCode, Message: "reading response", Err: err}
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &FetchError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return &DecodeError{Shape: shape, Err: decodeErr}
	}
	if env.Status != "" && env.Status != statusSuccess {
		return &FetchError{Status: resp.StatusCode, Message: env.Message}
	}
	if len(env.Data) == 0 {
		return &DecodeError{Shape: shape, Err: errors.New("missing data member")}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &DecodeError{Shape: shape, Err: err}
	}
	return nil
}
