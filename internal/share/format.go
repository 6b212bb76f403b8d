package share

import (
	"sort"
	"time"

	"eventshare/internal/domain"
)

// dateLayout renders a zero-padded month and day, e.g. 03/05.
const dateLayout = "01/02"

// FormatDate renders a start date as MM/DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatLine renders one event as "MM/DD Title". The title is included
// verbatim, whatever characters it contains.
func FormatLine(ev domain.Event) string {
	return FormatDate(ev.StartDate) + " " + ev.Title
}

// SortAndFormatLines sorts events by start date ascending and formats each as
// a share line. Events with equal start dates keep their input order.
func SortAndFormatLines(events []domain.Event) []string {
	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	lines := make([]string, len(sorted))
	for i, ev := range sorted {
		lines[i] = FormatLine(ev)
	}
	return lines
}
