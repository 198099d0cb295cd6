package convo

import (
	"regexp"
	"strings"
)

// Handoff marker wire format embedded in generated or forced text.
const (
	HandoffOpen  = "[HANDOFF_SUMMARY]"
	HandoffClose = "[/HANDOFF_SUMMARY]"
)

// Non-greedy so multiple pairs each match separately; (?s) allows embedded
// newlines inside the summary.
var handoffPattern = regexp.MustCompile(`(?s)\[HANDOFF_SUMMARY\](.*?)\[/HANDOFF_SUMMARY\]`)

// StripSummary removes handoff markers from text. It returns the cleaned
// text, the trimmed interior of the first marker pair, and whether a pair was
// found. Only one pair is expected per message; if several are present all
// are stripped and only the first is returned.
func StripSummary(text string) (clean, summary string, found bool) {
	match := handoffPattern.FindStringSubmatch(text)
	if match == nil {
		return text, "", false
	}

	summary = strings.TrimSpace(match[1])
	clean = strings.TrimSpace(handoffPattern.ReplaceAllString(text, ""))
	return clean, summary, true
}

// ComposeMarker wraps a summary in the handoff markers.
func ComposeMarker(summary string) string {
	return HandoffOpen + summary + HandoffClose
}

// HandoffPending reports whether the most recent assistant turn asked for
// handoff confirmation, detected by two literal substrings. Recomputed each
// call; nothing is stored.
func HandoffPending(transcript Transcript) bool {
	turn, ok := transcript.LastAssistant()
	if !ok {
		return false
	}
	lower := strings.ToLower(turn.Content)
	return strings.Contains(lower, "pass") && strings.Contains(lower, "team")
}
