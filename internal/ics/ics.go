// Package ics reads events from iCalendar data.
package ics

import (
	"fmt"
	"io"
	"os"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"eventshare/internal/domain"
)

// Parse reads VEVENT entries from iCalendar data. Entries without a summary
// or a parseable start time are skipped. Recurrence rules are not expanded;
// only the first occurrence is read. Every parsed event starts out pending.
func Parse(r io.Reader) ([]domain.Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	events := make([]domain.Event, 0)
	for _, ve := range cal.Events() {
		event, ok := parseVEvent(ve)
		if !ok {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// ParseFile reads VEVENT entries from an iCalendar file on disk
func ParseFile(path string) ([]domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open calendar file: %w", err)
	}
	defer f.Close()

	events, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent) (domain.Event, bool) {
	var event domain.Event

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		event.Title = p.Value
	}
	if event.Title == "" {
		return domain.Event{}, false
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return domain.Event{}, false
	}
	event.StartDate = start

	end, err := ve.GetEndAt()
	if err != nil || end.Before(start) {
		end = start
	}
	event.EndDate = end

	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		event.ID = p.Value
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if p := ve.GetProperty(ical.ComponentPropertyUrl); p != nil {
		event.Link = p.Value
	}

	event.Status = domain.EventStatusPending

	return event, true
}
