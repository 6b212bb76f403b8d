package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"eventshare/internal/cache"
	"eventshare/internal/domain"
	"eventshare/internal/metrics"
	"eventshare/internal/repository"
	"eventshare/internal/share"
	"eventshare/internal/shareconfig"
)

// shareService implements ShareService
type shareService struct {
	repo  repository.EventRepository
	cache cache.ResultCache
	store ConfigStore
	log   zerolog.Logger
	now   func() time.Time

	mu  sync.RWMutex
	cfg domain.ShareConfig
}

// Option configures optional service behavior
type Option func(*shareService)

// WithNow overrides the service clock
func WithNow(now func() time.Time) Option {
	return func(s *shareService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger used by the service
func WithLogger(log zerolog.Logger) Option {
	return func(s *shareService) {
		s.log = log
	}
}

// NewShareService creates a new share service on top of the given
// repository, result cache and config store. cfg is the initially active
// share configuration, usually the store's last saved state.
func NewShareService(repo repository.EventRepository, resultCache cache.ResultCache, store ConfigStore, cfg domain.ShareConfig, opts ...Option) ShareService {
	s := &shareService{
		repo:  repo,
		cache: resultCache,
		store: store,
		log:   zerolog.Nop(),
		now:   time.Now,
		cfg:   shareconfig.Normalize(cfg),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateShareText builds the share text for the current month
func (s *shareService) GenerateShareText(ctx context.Context) (domain.ShareResult, error) {
	metrics.IncGenerate()
	started := time.Now()

	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return domain.ShareResult{}, fmt.Errorf("failed to list events: %w", err)
	}

	cfg := s.ShareConfig()
	key := share.Fingerprint(events, cfg)

	if result, exists := s.cache.Get(ctx, key); exists {
		metrics.IncCacheHit()
		s.log.Debug().Str("key", key).Msg("share text served from cache")
		return result, nil
	}
	metrics.IncCacheMiss()

	result := share.Generate(events, cfg, s.now())

	if err := s.cache.Set(ctx, key, result); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache share result")
	}
	if result.WasTruncated {
		metrics.IncTruncated()
	}
	metrics.ObserveGenerateDuration(time.Since(started))
	metrics.SetCacheEntries(s.cache.Len())

	s.log.Info().
		Int("included_events", result.IncludedEventCount).
		Bool("truncated", result.WasTruncated).
		Msg("share text generated")

	return result, nil
}

// ShareConfig returns a copy of the active share configuration
func (s *shareService) ShareConfig() domain.ShareConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg := s.cfg
	cfg.Hashtags = append([]string(nil), s.cfg.Hashtags...)
	return cfg
}

// UpdateShareConfig validates, persists and applies a new share configuration
func (s *shareService) UpdateShareConfig(ctx context.Context, cfg domain.ShareConfig) (domain.ShareConfig, error) {
	normalized := shareconfig.Normalize(cfg)
	if err := validateShareConfig(normalized); err != nil {
		return domain.ShareConfig{}, err
	}

	if err := s.store.Save(normalized); err != nil {
		return domain.ShareConfig{}, fmt.Errorf("failed to save share config: %w", err)
	}

	s.mu.Lock()
	s.cfg = normalized
	s.mu.Unlock()

	// Every cached result was produced under the old configuration.
	s.clearCache(ctx)
	s.log.Info().Str("destination_url", normalized.DestinationURL).Msg("share config updated")

	return normalized, nil
}

// ReloadShareConfig re-reads the share configuration from its store
func (s *shareService) ReloadShareConfig(ctx context.Context) (domain.ShareConfig, error) {
	cfg, err := s.store.Load()
	if err != nil {
		return domain.ShareConfig{}, fmt.Errorf("failed to load share config: %w", err)
	}
	if err := validateShareConfig(cfg); err != nil {
		return domain.ShareConfig{}, fmt.Errorf("invalid share config: %w", err)
	}

	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()

	s.clearCache(ctx)
	metrics.IncConfigReload()
	s.log.Info().Str("destination_url", cfg.DestinationURL).Msg("share config reloaded")

	return cfg, nil
}

// CreateEvent registers a new event
func (s *shareService) CreateEvent(ctx context.Context, req domain.CreateEventRequest) (domain.Event, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Event{}, fmt.Errorf("title cannot be empty")
	}
	if req.StartDate.IsZero() {
		return domain.Event{}, fmt.Errorf("start date cannot be empty")
	}

	end := req.EndDate
	if end.IsZero() {
		end = req.StartDate
	}
	if end.Before(req.StartDate) {
		return domain.Event{}, fmt.Errorf("end date cannot be before start date")
	}

	status := domain.EventStatusPending
	if req.Status != "" {
		parsed, err := domain.ParseEventStatus(req.Status)
		if err != nil {
			return domain.Event{}, err
		}
		status = parsed
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	event := domain.Event{
		ID:        id,
		Title:     title,
		StartDate: req.StartDate,
		EndDate:   end,
		Status:    status,
		Link:      strings.TrimSpace(req.Link),
		CreatedAt: s.now().UTC(),
	}

	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return domain.Event{}, err
	}

	s.clearCache(ctx)
	s.log.Info().Str("event_id", created.ID).Str("status", string(created.Status)).Msg("event created")

	return created, nil
}

// GetEvent retrieves a single event by id
func (s *shareService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

// ListEvents retrieves all known events
func (s *shareService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

// UpdateEventStatus moderates an event and returns its updated state
func (s *shareService) UpdateEventStatus(ctx context.Context, id string, req domain.UpdateEventStatusRequest) (domain.Event, error) {
	status, err := domain.ParseEventStatus(req.Status)
	if err != nil {
		return domain.Event{}, err
	}

	if err := s.repo.UpdateEventStatus(ctx, id, status); err != nil {
		return domain.Event{}, err
	}

	s.clearCache(ctx)
	s.log.Info().Str("event_id", id).Str("status", string(status)).Msg("event status updated")

	return s.repo.GetEvent(ctx, id)
}

// DeleteEvent removes an event
func (s *shareService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.repo.DeleteEvent(ctx, id); err != nil {
		return err
	}

	s.clearCache(ctx)
	s.log.Info().Str("event_id", id).Msg("event deleted")

	return nil
}

// ImportEvents stores externally sourced events, skipping ids already present
func (s *shareService) ImportEvents(ctx context.Context, events []domain.Event) (int, error) {
	imported := 0
	for _, event := range events {
		if event.ID == "" {
			event.ID = uuid.NewString()
		}

		exists, err := s.repo.EventExists(ctx, event.ID)
		if err != nil {
			return imported, fmt.Errorf("failed to check event %s: %w", event.ID, err)
		}
		if exists {
			continue
		}

		if event.Status == "" {
			event.Status = domain.EventStatusPending
		}
		if event.EndDate.IsZero() {
			event.EndDate = event.StartDate
		}
		if event.CreatedAt.IsZero() {
			event.CreatedAt = s.now().UTC()
		}

		if _, err := s.repo.CreateEvent(ctx, event); err != nil {
			return imported, fmt.Errorf("failed to import event %s: %w", event.ID, err)
		}
		imported++
	}

	if imported > 0 {
		s.clearCache(ctx)
	}
	s.log.Info().Int("imported", imported).Int("received", len(events)).Msg("events imported")

	return imported, nil
}

// Close closes the service and its dependencies
func (s *shareService) Close() error {
	if err := s.cache.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}
	if err := s.repo.Close(); err != nil {
		return fmt.Errorf("failed to close repository: %w", err)
	}
	return nil
}

// clearCache drops memoized results after a mutation. The fingerprint only
// covers event identity, not status, so mutations invalidate explicitly.
func (s *shareService) clearCache(ctx context.Context) {
	if err := s.cache.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear result cache")
	}
	metrics.SetCacheEntries(s.cache.Len())
}

// validateShareConfig rejects configurations the generator cannot use
func validateShareConfig(cfg domain.ShareConfig) error {
	if cfg.BaseMessage == "" {
		return fmt.Errorf("base message cannot be empty")
	}
	if cfg.DestinationURL == "" {
		return fmt.Errorf("destination URL cannot be empty")
	}

	parsed, err := url.ParseRequestURI(cfg.DestinationURL)
	if err != nil {
		return fmt.Errorf("invalid destination URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid destination URL: only HTTP and HTTPS are supported")
	}

	return nil
}

// Ensure shareService implements ShareService interface
var _ ShareService = (*shareService)(nil)
