package service

import (
	"context"

	"eventshare/internal/domain"
)

// ShareService defines the interface for event and share text operations
type ShareService interface {
	// GenerateShareText builds the share text for the current month
	GenerateShareText(ctx context.Context) (domain.ShareResult, error)

	// ShareConfig returns the active share configuration
	ShareConfig() domain.ShareConfig

	// UpdateShareConfig validates, persists and applies a new share configuration
	UpdateShareConfig(ctx context.Context, cfg domain.ShareConfig) (domain.ShareConfig, error)

	// ReloadShareConfig re-reads the share configuration from its store
	ReloadShareConfig(ctx context.Context) (domain.ShareConfig, error)

	// CreateEvent registers a new event
	CreateEvent(ctx context.Context, req domain.CreateEventRequest) (domain.Event, error)

	// GetEvent retrieves a single event by id
	GetEvent(ctx context.Context, id string) (domain.Event, error)

	// ListEvents retrieves all known events
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// UpdateEventStatus moderates an event and returns its updated state
	UpdateEventStatus(ctx context.Context, id string, req domain.UpdateEventStatusRequest) (domain.Event, error)

	// DeleteEvent removes an event
	DeleteEvent(ctx context.Context, id string) error

	// ImportEvents stores externally sourced events, skipping ids already present
	ImportEvents(ctx context.Context, events []domain.Event) (int, error)

	// Close closes the service and its dependencies
	Close() error
}

// ConfigStore persists the share configuration between runs
type ConfigStore interface {
	// Load reads the stored share configuration
	Load() (domain.ShareConfig, error)

	// Save persists the share configuration
	Save(cfg domain.ShareConfig) error
}
