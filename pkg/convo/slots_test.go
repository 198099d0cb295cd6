package convo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNewTopicScansOnlyMessage(t *testing.T) {
	transcript := Transcript{
		{Role: RoleUser, Content: "track workouts and show gym busyness"},
		{Role: RoleAssistant, Content: "Cool - phone app or website?"},
		{Role: RoleUser, Content: "phone app"},
	}

	slots := Extract(transcript, "i want to build a restaurant app", true)

	assert.Equal(t, "restaurant", slots.AppType)
	assert.Empty(t, slots.Features, "history must be ignored on a new topic")
	assert.Equal(t, PlatformNone, slots.Platform)
}

func TestExtractFirstFeatureTurnWins(t *testing.T) {
	transcript := Transcript{
		{Role: RoleUser, Content: "i want to build a gym app"},
		{Role: RoleAssistant, Content: "A gym app, nice! What would you want it to do?"},
		{Role: RoleUser, Content: "track workouts and memberships"},
		{Role: RoleAssistant, Content: "Got it."},
		{Role: RoleUser, Content: "also manage subscriptions"},
	}

	slots := Extract(transcript, "phone app please", false)

	assert.Equal(t, "track workouts and memberships", slots.Features)
	assert.Equal(t, PlatformPhone, slots.Platform)
}

func TestExtractShortTurnsCannotSetFeatures(t *testing.T) {
	transcript := Transcript{
		{Role: RoleUser, Content: "list"}, // contains "list" but too short
	}

	slots := Extract(transcript, "ok", false)
	assert.Empty(t, slots.Features)
}

func TestExtractMessageFillsSlotsHistoryMissed(t *testing.T) {
	transcript := Transcript{
		{Role: RoleUser, Content: "hello there"},
	}

	slots := Extract(transcript, "it should track deliveries on a website", false)

	assert.Equal(t, "it should track deliveries on a website", slots.Features)
	assert.Equal(t, PlatformWeb, slots.Platform)
}

func TestExtractPhoneBeatsWebInSameTurn(t *testing.T) {
	slots := Extract(nil, "mobile version of the website", false)
	assert.Equal(t, PlatformPhone, slots.Platform)
}

func TestExtractNegationStillMatches(t *testing.T) {
	// Documented limitation: no negation handling.
	slots := Extract(nil, "i don't want tracking at all", false)
	assert.Equal(t, "i don't want tracking at all", slots.Features)
}

func TestExtractIsPure(t *testing.T) {
	transcript := Transcript{
		{Role: RoleUser, Content: "track orders for my restaurant"},
		{Role: RoleAssistant, Content: "Phone app or website?"},
	}

	first := Extract(transcript, "android", false)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Extract(transcript, "android", false))
	}
}

func TestExtractCaseInsensitive(t *testing.T) {
	slots := Extract(nil, "TRACK MY WORKOUTS ON IOS", false)
	assert.Equal(t, "TRACK MY WORKOUTS ON IOS", slots.Features)
	assert.Equal(t, PlatformPhone, slots.Platform)
}
