package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"eventshare/internal/domain"
)

// EventRepository is a mock implementation of repository.EventRepository
type EventRepository struct {
	mock.Mock
}

// CreateEvent stores a new event
func (m *EventRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return domain.Event{}, args.Error(1)
	}
	return args.Get(0).(domain.Event), args.Error(1)
}

// GetEvent retrieves an event by its id
func (m *EventRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return domain.Event{}, args.Error(1)
	}
	return args.Get(0).(domain.Event), args.Error(1)
}

// ListEvents retrieves all events ordered by start date
func (m *EventRepository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

// UpdateEventStatus sets the moderation status of an event
func (m *EventRepository) UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// DeleteEvent removes an event by its id
func (m *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// EventExists checks if an event id is present
func (m *EventRepository) EventExists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// Close closes the repository connection
func (m *EventRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
