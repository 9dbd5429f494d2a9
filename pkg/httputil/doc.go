// Package httputil provides HTTP utilities for fetching coaching datasets.
//
// # Overview
//
// This package provides the infrastructure for remote dataset access:
//
//   - [Cache]: File-based response caching
//   - [Retry]: Automatic retry with exponential backoff
//   - [FetchDataset]: Download a raw dataset with retries and fetch hooks
//
// # Caching
//
// [Cache] stores fetched payloads in the filesystem (~/.cache/coachtree/)
// with configurable TTL. This speeds up repeated operations and avoids
// re-downloading datasets that rarely change.
//
// [FetchDatasetCached] combines the two:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	data, err := httputil.FetchDatasetCached(ctx, url, cache)
//
// Cache keys should be namespaced by source to avoid collisions; the
// fetch layer stores under "dataset:"+url.
//
// # Retry
//
// [Retry] wraps operations with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// It uses exponential backoff, doubling the delay after each attempt:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetch()
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/coachtree/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `coachtree cache clear` or by deleting
// the cache directory.
package httputil
