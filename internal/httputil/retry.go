// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helper used by the recipe API client.
package httputil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryBaseDelay is the first backoff interval; each retry doubles it.
// Tests override this to avoid real sleeps.
var RetryBaseDelay = 500 * time.Millisecond

const defaultMaxRetries = 3

var errRetryableStatus = errors.New("retryable status")

// Retryable reports whether an HTTP status code is worth retrying: 429 and
// the gateway-style 5xx codes.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// DoWithRetry executes req and retries transport errors and retryable status
// codes with exponential backoff starting at RetryBaseDelay.
//
// When maxRetries is 0 the default (3) is used. Request bodies are replayed
// through req.GetBody, so requests built with http.NewRequest and a
// bytes.Reader can be retried. If ctx is cancelled the function returns
// ctx.Err(). After exhausting retries on a retryable status the last
// response is returned so the caller can inspect it. A retryable response
// whose body cannot be read counts as a transport error.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = RetryBaseDelay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxRetries)), ctx)

	var last *http.Response
	op := func() error {
		attempt := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(fmt.Errorf("rewinding request body: %w", err))
			}
			attempt.Body = body
		}

		resp, err := client.Do(attempt)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}

		if !Retryable(resp.StatusCode) {
			last = resp
			return nil
		}

		// Buffer the body so the final retryable response can still be
		// returned after the connection is released.
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			last = nil
			return fmt.Errorf("reading %d response: %w", resp.StatusCode, err)
		}
		resp.Body = io.NopCloser(bytes.NewReader(data))
		last = resp
		return errRetryableStatus
	}

	err := backoff.Retry(op, policy)
	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case errors.Is(err, errRetryableStatus):
		return last, nil
	default:
		return nil, err
	}
}
