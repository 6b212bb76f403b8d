package share

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"eventshare/internal/domain"
)

// CharacterLimit is the maximum length of a generated share text. Lengths are
// counted in runes; the posting surface counts characters, not bytes.
const CharacterLimit = 280

// blockSeparator joins the three blocks of a share text: base message, event
// lines, footer.
const blockSeparator = "\n\n"

// omissionMarker renders the count of events left out of a truncated text.
func omissionMarker(omitted int) string {
	return fmt.Sprintf("...他%d件のイベント", omitted)
}

// Truncate assembles a share text from a base message, formatted event lines
// and a footer, keeping the result within CharacterLimit.
//
// Lines are taken greedily in the given order; the first line that does not
// fit ends the fill even if a later, shorter line still would. Each included
// line is charged its length plus a joining newline. The last line's newline
// is never emitted, which leaves one spare rune that only the omission marker
// may use: when at least one line was dropped, the last included line is
// replaced by the marker, provided the marker is no longer than that line
// plus the spare rune. A marker that does not fit is silently left out, so a
// truncated text can carry no omission cue.
//
// When the base message and footer alone leave no room for any line, the
// result degrades to the base message plus the bare destination URL. That
// degraded text is the only output without the full footer and the only one
// that can exceed CharacterLimit.
func Truncate(baseMessage string, lines []string, footer, destinationURL string) domain.ShareResult {
	overhead := utf8.RuneCountInString(baseMessage) +
		utf8.RuneCountInString(footer) +
		2*utf8.RuneCountInString(blockSeparator)
	budget := CharacterLimit - overhead

	if budget <= 0 {
		return domain.ShareResult{
			ShareText:          baseMessage + blockSeparator + destinationURL,
			IncludedEventCount: 0,
			WasTruncated:       true,
		}
	}

	included := make([]string, 0, len(lines))
	used := 0
	for _, line := range lines {
		cost := utf8.RuneCountInString(line) + 1
		if used+cost > budget {
			break
		}
		included = append(included, line)
		used += cost
	}

	truncated := len(included) < len(lines)
	count := len(included)

	if truncated && len(included) > 0 {
		marker := omissionMarker(len(lines) - len(included) + 1)
		last := included[len(included)-1]
		if utf8.RuneCountInString(marker) <= utf8.RuneCountInString(last)+1 {
			// The marker replaces a real line, so that line no longer counts
			// as included.
			included[len(included)-1] = marker
			count--
		}
	}

	text := baseMessage + blockSeparator + footer
	if len(included) > 0 {
		text = baseMessage + blockSeparator + strings.Join(included, "\n") + blockSeparator + footer
	}

	return domain.ShareResult{
		ShareText:          text,
		IncludedEventCount: count,
		WasTruncated:       truncated,
	}
}
