package share

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"eventshare/internal/domain"
)

// Fingerprint derives the cache key for an (events, config) pair. The key is
// insensitive to event order and changes whenever any event's identity
// (id, start date, title) or any config field changes.
//
// FNV-1a at 32 bits is fast but not collision free: two distinct inputs can
// share a key, and the cache then serves the other input's text until the
// entry expires. With at most ten entries and a five minute TTL that
// exposure is accepted.
func Fingerprint(events []domain.Event, cfg domain.ShareConfig) string {
	triples := make([]string, len(events))
	for i, ev := range events {
		triples[i] = ev.ID + "|" + ev.StartDate.UTC().Format(time.RFC3339) + "|" + ev.Title
	}
	sort.Strings(triples)

	eventHash := fnv.New32a()
	for _, triple := range triples {
		eventHash.Write([]byte(triple))
		eventHash.Write([]byte{'\n'})
	}

	configHash := fnv.New32a()
	configHash.Write([]byte(cfg.DestinationURL))
	configHash.Write([]byte{'|'})
	configHash.Write([]byte(strings.Join(cfg.Hashtags, ",")))
	configHash.Write([]byte{'|'})
	configHash.Write([]byte(cfg.BaseMessage))

	return fmt.Sprintf("%08x-%08x", eventHash.Sum32(), configHash.Sum32())
}
