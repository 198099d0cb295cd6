package convo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSummaryRoundTrip(t *testing.T) {
	summaries := []string{
		"Gym phone app to track workouts",
		"App for website - order tracking",
		"multi\nline\nsummary",
		"",
	}
	for _, s := range summaries {
		clean, got, found := StripSummary(ComposeMarker(s))
		assert.True(t, found)
		assert.Equal(t, s, got)
		assert.Empty(t, clean)
	}
}

func TestStripSummaryNoMarker(t *testing.T) {
	clean, summary, found := StripSummary("just a plain reply")
	assert.False(t, found)
	assert.Equal(t, "just a plain reply", clean)
	assert.Empty(t, summary)
}

func TestStripSummaryEmbeddedInText(t *testing.T) {
	text := "Perfect! Want me to pass this to the team?\n\n[HANDOFF_SUMMARY]Gym phone app[/HANDOFF_SUMMARY]"
	clean, summary, found := StripSummary(text)
	assert.True(t, found)
	assert.Equal(t, "Gym phone app", summary)
	assert.Equal(t, "Perfect! Want me to pass this to the team?", clean)
}

func TestStripSummaryMultiplePairsAllStrippedFirstReturned(t *testing.T) {
	text := "a [HANDOFF_SUMMARY]one[/HANDOFF_SUMMARY] b [HANDOFF_SUMMARY]two[/HANDOFF_SUMMARY] c"
	clean, summary, found := StripSummary(text)
	assert.True(t, found)
	assert.Equal(t, "one", summary)
	assert.NotContains(t, clean, "HANDOFF_SUMMARY")
	assert.NotContains(t, clean, "two")
}

func TestHandoffPending(t *testing.T) {
	assert.False(t, HandoffPending(nil))

	// Most recent assistant turn asked for confirmation.
	assert.True(t, HandoffPending(Transcript{
		{Role: RoleUser, Content: "phone app"},
		{Role: RoleAssistant, Content: "Want me to pass this to the team?"},
	}))

	// Both substrings required.
	assert.False(t, HandoffPending(Transcript{
		{Role: RoleAssistant, Content: "The team is great"},
	}))
	assert.False(t, HandoffPending(Transcript{
		{Role: RoleAssistant, Content: "I'll pass on that"},
	}))
}
