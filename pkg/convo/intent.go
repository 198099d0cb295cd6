package convo

import "strings"

// Informational phrases cover identity questions, news, named products,
// services, company facts, and blog content.
var informationalPhrases = []string{
	"who are you", "what is siphio", "what's siphio", "about siphio",
	"what do you do", "what does siphio",
	"news", "latest", "update",
	"spending insights", "checklist manager", "ai agents",
	"services", "hire", "careers",
	"team", "mission", "values", "tech stack",
	"blog", "article",
	"how does", "what are",
}

// Build-verb keywords signal an app-build request anywhere in the
// conversation.
var buildKeywords = []string{
	"build", "create", "make", "develop",
	"need an app", "want an app",
	"i want a", "i need a",
	"looking for an app", "app for my",
}

// Starter phrases signal a brand-new build request in the current message
// alone. Stricter subset of buildKeywords: "create" alone is not enough,
// "can you build" is.
var newRequestPhrases = []string{
	"i want to build", "i want to create", "i want to make",
	"can you build", "can you create", "can you make",
	"build me a", "build me an",
	"create a", "create an",
	"make me a", "make me an",
	"need an app for", "want an app for",
}

// Exact-match affirmative set for handoff confirmation.
var affirmativeWords = map[string]bool{
	"yes": true, "yeah": true, "sure": true, "yep": true,
	"ok": true, "okay": true,
	"yes please": true, "yes, please": true,
	"y": true, "yea": true,
}

// IsInformational reports whether the message looks like a question about the
// company or its products rather than a build request.
func IsInformational(message string) bool {
	return containsAny(strings.ToLower(message), informationalPhrases)
}

// IsBuildIntent reports whether the message, or any prior user turn, carries
// an app-build keyword.
func IsBuildIntent(message string, transcript Transcript) bool {
	if containsAny(strings.ToLower(message), buildKeywords) {
		return true
	}
	for _, turn := range transcript.UserTurns() {
		if containsAny(strings.ToLower(turn.Content), buildKeywords) {
			return true
		}
	}
	return false
}

// IsNewBuildRequest reports whether the message alone, ignoring history,
// opens a fresh build request.
func IsNewBuildRequest(message string) bool {
	return containsAny(strings.ToLower(message), newRequestPhrases)
}

// IsAffirmative reports whether the normalized message is an exact match
// against the affirmative-word set. Substrings do not count: "yes and also..."
// is ordinary conversational content.
func IsAffirmative(message string) bool {
	return affirmativeWords[strings.ToLower(strings.TrimSpace(message))]
}

// WantsKnowledge decides the informational route: informational phrasing wins
// only when no build intent is present anywhere in the conversation, so an
// app-building user is never diverted to knowledge lookup by overlapping
// phrasing.
func WantsKnowledge(message string, transcript Transcript) bool {
	return IsInformational(message) && !IsBuildIntent(message, transcript)
}
