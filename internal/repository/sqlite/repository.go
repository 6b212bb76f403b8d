package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"eventshare/internal/domain"
	"eventshare/internal/repository"
)

// Repository implements repository.EventRepository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(databasePath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", databasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	repo := &Repository{db: db}

	if err := repo.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

// CreateEvent stores a new event. Returns repository.ErrEventExists when the id is taken.
func (r *Repository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	exists, err := r.EventExists(ctx, event.ID)
	if err != nil {
		return domain.Event{}, err
	}
	if exists {
		return domain.Event{}, repository.ErrEventExists
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO events (id, title, start_date, end_date, status, link, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.StartDate, event.EndDate, string(event.Status),
		nullString(event.Link), event.CreatedAt)
	if err != nil {
		return domain.Event{}, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEvent retrieves an event by its id
func (r *Repository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, start_date, end_date, status, link, created_at
		 FROM events WHERE id = ?`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Event{}, repository.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// ListEvents retrieves all events ordered by start date, then creation date
func (r *Repository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, start_date, end_date, status, link, created_at
		 FROM events ORDER BY start_date, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return events, nil
}

// UpdateEventStatus sets the moderation status of an event
func (r *Repository) UpdateEventStatus(ctx context.Context, id string, status domain.EventStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE events SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update event status: %w", err)
	}
	if affected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

// DeleteEvent removes an event by its id
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

// EventExists checks if an event id is present
func (r *Repository) EventExists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check event existence: %w", err)
	}
	return count > 0, nil
}

// Close closes the repository connection
func (r *Repository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanEvent reads one events row into a domain.Event
func scanEvent(row rowScanner) (domain.Event, error) {
	var (
		event domain.Event
		link  sql.NullString
	)
	err := row.Scan(&event.ID, &event.Title, &event.StartDate, &event.EndDate,
		&event.Status, &link, &event.CreatedAt)
	if err != nil {
		return domain.Event{}, err
	}
	event.Link = link.String
	return event, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Ensure Repository implements the interface
var _ repository.EventRepository = (*Repository)(nil)
