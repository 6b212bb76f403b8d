// Package share generates the bounded share text that announces the current
// month's approved events.
package share

import (
	"strings"
	"time"

	"eventshare/internal/domain"
)

// noEventsMessage replaces the event list when nothing is eligible this
// month.
const noEventsMessage = "今月開催予定のイベントはありません。"

// BuildFooter renders the fixed tail of every share text: the destination
// URL on its own line, followed by the hashtags separated by spaces.
func BuildFooter(cfg domain.ShareConfig) string {
	if len(cfg.Hashtags) == 0 {
		return cfg.DestinationURL
	}
	return cfg.DestinationURL + "\n" + strings.Join(cfg.Hashtags, " ")
}

// Generate renders the share text for the given events and configuration as
// of now. It is a pure function: equal inputs produce byte-identical
// results, which is what lets cached results stand in for fresh ones.
func Generate(events []domain.Event, cfg domain.ShareConfig, now time.Time) domain.ShareResult {
	footer := BuildFooter(cfg)

	eligible := FilterEligible(events, now)
	if len(eligible) == 0 {
		return domain.ShareResult{
			ShareText:          cfg.BaseMessage + blockSeparator + noEventsMessage + blockSeparator + footer,
			IncludedEventCount: 0,
			WasTruncated:       false,
		}
	}

	lines := SortAndFormatLines(eligible)
	return Truncate(cfg.BaseMessage, lines, footer, cfg.DestinationURL)
}
