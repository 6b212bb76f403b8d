package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"eventshare/internal/domain"
)

// ResultCache is a mock implementation of cache.ResultCache
type ResultCache struct {
	mock.Mock
}

// Get retrieves a cached share result by fingerprint key
func (m *ResultCache) Get(ctx context.Context, key string) (domain.ShareResult, bool) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return domain.ShareResult{}, args.Bool(1)
	}
	return args.Get(0).(domain.ShareResult), args.Bool(1)
}

// Set stores a share result under the given fingerprint key
func (m *ResultCache) Set(ctx context.Context, key string, result domain.ShareResult) error {
	args := m.Called(ctx, key, result)
	return args.Error(0)
}

// Clear removes all cached results
func (m *ResultCache) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Len reports the number of cached results
func (m *ResultCache) Len() int {
	args := m.Called()
	return args.Int(0)
}

// Close closes the cache
func (m *ResultCache) Close() error {
	args := m.Called()
	return args.Error(0)
}
