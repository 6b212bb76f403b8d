package domain

import (
	"fmt"
	"time"
)

// EventStatus is the moderation state of an event
type EventStatus string

// Moderation states an event can be in
const (
	EventStatusPending  EventStatus = "pending"
	EventStatusApproved EventStatus = "approved"
	EventStatusRejected EventStatus = "rejected"
)

// Valid reports whether the status is a known moderation state
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPending, EventStatusApproved, EventStatusRejected:
		return true
	}
	return false
}

// ParseEventStatus converts external input into an EventStatus
func ParseEventStatus(s string) (EventStatus, error) {
	status := EventStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown event status %q", s)
	}
	return status, nil
}

// Event represents a community event
type Event struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	StartDate time.Time   `json:"start_date"`
	EndDate   time.Time   `json:"end_date"`
	Status    EventStatus `json:"status"`
	Link      string      `json:"link,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// ShareConfig holds the operator-managed parts of every share text
type ShareConfig struct {
	DestinationURL string   `json:"destination_url" yaml:"destination_url"`
	Hashtags       []string `json:"hashtags" yaml:"hashtags"`
	BaseMessage    string   `json:"base_message" yaml:"base_message"`
}

// ShareResult represents a generated share text with its metadata
type ShareResult struct {
	ShareText          string `json:"share_text"`
	IncludedEventCount int    `json:"included_event_count"`
	WasTruncated       bool   `json:"was_truncated"`
}

// CacheEntry represents a cached share result
type CacheEntry struct {
	Key       string
	Result    ShareResult
	CreatedAt time.Time
}

// CreateEventRequest represents the request to create an event. ID is
// optional; the server assigns one when it is empty. Status defaults to
// pending and EndDate to StartDate.
type CreateEventRequest struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Link      string    `json:"link,omitempty"`
	Status    string    `json:"status,omitempty"`
}

// UpdateEventStatusRequest represents the request to moderate an event
type UpdateEventStatusRequest struct {
	Status string `json:"status"`
}
