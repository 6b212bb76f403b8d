package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"eventshare/internal/domain"
)

// ShareService is a mock implementation of service.ShareService
type ShareService struct {
	mock.Mock
}

// GenerateShareText builds the share text for the current month
func (m *ShareService) GenerateShareText(ctx context.Context) (domain.ShareResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return domain.ShareResult{}, args.Error(1)
	}
	return args.Get(0).(domain.ShareResult), args.Error(1)
}

// ShareConfig returns the active share configuration
func (m *ShareService) ShareConfig() domain.ShareConfig {
	args := m.Called()
	if args.Get(0) == nil {
		return domain.ShareConfig{}
	}
	return args.Get(0).(domain.ShareConfig)
}

// UpdateShareConfig validates, persists and applies a new share configuration
func (m *ShareService) UpdateShareConfig(ctx context.Context, cfg domain.ShareConfig) (domain.ShareConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return domain.ShareConfig{}, args.Error(1)
	}
	return args.Get(0).(domain.ShareConfig), args.Error(1)
}

// ReloadShareConfig re-reads the share configuration from its store
func (m *ShareService) ReloadShareConfig(ctx context.Context) (domain.ShareConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return domain.ShareConfig{}, args.Error(1)
	}
	return args.Get(0).(domain.ShareConfig), args.Error(1)
}

// CreateEvent registers a new event
func (m *ShareService) CreateEvent(ctx context.Context, req domain.CreateEventRequest) (domain.Event, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return domain.Event{}, args.Error(1)
	}
	return args.Get(0).(domain.Event), args.Error(1)
}

// GetEvent retrieves a single event by id
func (m *ShareService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return domain.Event{}, args.Error(1)
	}
	return args.Get(0).(domain.Event), args.Error(1)
}

// ListEvents retrieves all known events
func (m *ShareService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

// UpdateEventStatus moderates an event and returns its updated state
func (m *ShareService) UpdateEventStatus(ctx context.Context, id string, req domain.UpdateEventStatusRequest) (domain.Event, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return domain.Event{}, args.Error(1)
	}
	return args.Get(0).(domain.Event), args.Error(1)
}

// DeleteEvent removes an event
func (m *ShareService) DeleteEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ImportEvents stores externally sourced events, skipping ids already present
func (m *ShareService) ImportEvents(ctx context.Context, events []domain.Event) (int, error) {
	args := m.Called(ctx, events)
	return args.Int(0), args.Error(1)
}

// Close closes the service and its dependencies
func (m *ShareService) Close() error {
	args := m.Called()
	return args.Error(0)
}
