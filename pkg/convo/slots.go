package convo

import "strings"

// Keyword vocabularies for slot detection. Matching is case-insensitive
// substring containment with no stemming and no negation handling: a message
// saying "I don't want tracking" still sets the feature slot. That is an
// accepted limitation of the keyword approach, isolated here so it can later
// be swapped for a model-based classifier without touching the controller.
var (
	appTypeKeywords = []string{
		"gym", "restaurant", "fitness", "food", "delivery", "booking",
		"scheduling", "todo", "task", "finance", "health", "social",
		"ecommerce", "shopping",
	}

	featureKeywords = []string{
		"track", "manage", "show", "workout", "subscription", "member",
		"book", "order", "schedule", "display", "list", "monitor", "busy",
		"notification", "alert", "remind",
	}

	phoneKeywords = []string{"phone", "mobile", "ios", "android"}
	webKeywords   = []string{"website", "web"}
)

// minFeatureTurnLen filters out bare acknowledgements ("ok", "yes") that
// happen to contain a feature keyword as a substring.
const minFeatureTurnLen = 5

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// firstMatch returns the first keyword contained in lower, or "".
func firstMatch(lower string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

// detectPlatform classifies a turn's platform mention. Phone keywords take
// priority over web keywords when both appear.
func detectPlatform(lower string) Platform {
	if containsAny(lower, phoneKeywords) {
		return PlatformPhone
	}
	if containsAny(lower, webKeywords) {
		return PlatformWeb
	}
	return PlatformNone
}

// mentionsPlatform reports whether text contains any platform keyword.
func mentionsPlatform(text string) bool {
	return detectPlatform(strings.ToLower(text)) != PlatformNone
}

// Extract derives a SlotSet from the transcript's prior user turns plus the
// new message. It is a pure function of its inputs.
//
// When isNewTopic is true only the new message is scanned, and only for an
// app-type keyword: a fresh build request starts gathering over regardless of
// what older turns contain. Otherwise prior user turns are scanned in
// chronological order (first match wins, never replaced), then the new
// message itself fills any slot history left empty.
func Extract(transcript Transcript, newMessage string, isNewTopic bool) SlotSet {
	if isNewTopic {
		return SlotSet{AppType: firstMatch(strings.ToLower(newMessage), appTypeKeywords)}
	}

	var slots SlotSet
	for _, turn := range transcript.UserTurns() {
		lower := strings.ToLower(turn.Content)
		if slots.Features == "" && len(turn.Content) > minFeatureTurnLen && containsAny(lower, featureKeywords) {
			slots.Features = turn.Content
		}
		if slots.Platform == PlatformNone {
			slots.Platform = detectPlatform(lower)
		}
	}

	// Second pass: the current message can supply a slot history didn't.
	lower := strings.ToLower(newMessage)
	if slots.Features == "" && len(newMessage) > minFeatureTurnLen && containsAny(lower, featureKeywords) {
		slots.Features = newMessage
	}
	if slots.Platform == PlatformNone {
		slots.Platform = detectPlatform(lower)
	}

	return slots
}
