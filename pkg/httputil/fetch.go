package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/coachtree/coachtree/pkg/observability"
)

const fetchTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a remote dataset doesn't exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with a standard timeout for dataset requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// FetchDataset downloads a raw dataset payload from url with automatic retries.
//
// Transient failures (network errors, 5xx responses) are retried up to 3
// times with exponential backoff. A 404 returns [ErrNotFound]; other
// non-200 statuses return [ErrNetwork]. The returned bytes are the raw
// response body, suitable for feeding straight into the ingest stage.
func FetchDataset(ctx context.Context, url string) ([]byte, error) {
	client := NewHTTPClient()
	hooks := observability.Fetch()

	var body []byte
	err := RetryWithBackoff(ctx, func() error {
		hooks.OnFetch(ctx, url)
		start := time.Now()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			hooks.OnFetchError(ctx, url, err)
			return &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		defer resp.Body.Close()

		if err := checkStatus(resp.StatusCode); err != nil {
			hooks.OnFetchError(ctx, url, err)
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			hooks.OnFetchError(ctx, url, err)
			return &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
		}
		hooks.OnFetchComplete(ctx, url, resp.StatusCode, len(body), time.Since(start))
		return nil
	})
	return body, err
}

// FetchDatasetCached is FetchDataset backed by a local response cache.
// A fresh cached copy short-circuits the network entirely; an expired or
// missing entry triggers a real fetch whose body is written back to the
// cache. A nil cache degrades to a plain fetch.
func FetchDatasetCached(ctx context.Context, url string, c *Cache) ([]byte, error) {
	if c == nil {
		return FetchDataset(ctx, url)
	}
	scoped := c.Namespace("dataset:")

	var cached []byte
	if ok, err := scoped.Get(url, &cached); ok && err == nil {
		return cached, nil
	} else if err != nil && !errors.Is(err, ErrExpired) {
		return nil, err
	}

	body, err := FetchDataset(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := scoped.Set(url, body); err != nil {
		return nil, err
	}
	return body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
