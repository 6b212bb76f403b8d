package share

import (
	"time"

	"eventshare/internal/domain"
)

// FilterEligible returns the events that belong in this month's share text:
// approved events whose start date falls in the same calendar year and month
// as now, on now's day or later. Time of day is ignored, so an event that
// started earlier today is still eligible. Start dates are evaluated in now's
// location.
func FilterEligible(events []domain.Event, now time.Time) []domain.Event {
	eligible := make([]domain.Event, 0, len(events))
	for _, ev := range events {
		if ev.Status != domain.EventStatusApproved {
			continue
		}
		start := ev.StartDate.In(now.Location())
		if start.Year() != now.Year() || start.Month() != now.Month() {
			continue
		}
		if start.Day() < now.Day() {
			continue
		}
		eligible = append(eligible, ev)
	}
	return eligible
}
