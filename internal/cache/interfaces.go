package cache

import (
	"context"

	"eventshare/internal/domain"
)

// ResultCache defines the interface for share result caching
type ResultCache interface {
	// Get retrieves the result stored under a fingerprint key, if present and fresh
	Get(ctx context.Context, key string) (domain.ShareResult, bool)

	// Set stores a result under a fingerprint key
	Set(ctx context.Context, key string, result domain.ShareResult) error

	// Clear drops every cached result
	Clear(ctx context.Context) error

	// Len returns the number of stored entries
	Len() int

	// Close closes the cache (if applicable)
	Close() error
}
