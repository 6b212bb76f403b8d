package repository

import (
	"context"
	"errors"

	"eventshare/internal/domain"
)

// ErrEventNotFound is returned when no event exists for the requested id.
var ErrEventNotFound = errors.New("event not found")

// ErrEventExists is returned when creating an event whose id is already taken.
var ErrEventExists = errors.New("event already exists")

// EventRepository defines the interface for event data operations
type EventRepository interface {
	// CreateEvent stores a new event. Returns ErrEventExists when the id is taken.
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)

	// GetEvent retrieves an event by its id
	GetEvent(ctx context.Context, id string) (domain.Event, error)

	// ListEvents retrieves all events ordered by start date
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// UpdateEventStatus sets the moderation status of an event
	UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) error

	// DeleteEvent removes an event by its id
	DeleteEvent(ctx context.Context, id string) error

	// EventExists checks if an event id is present
	EventExists(ctx context.Context, id string) (bool, error)

	// Close closes the repository connection
	Close() error
}
