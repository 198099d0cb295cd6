package convo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatheringTranscript() Transcript {
	return Transcript{
		{Role: RoleUser, Content: "i want to build a gym app"},
		{Role: RoleAssistant, Content: "A gym app, nice! What would you want it to do?"},
		{Role: RoleUser, Content: "track workouts and show how busy the gym is"},
		{Role: RoleAssistant, Content: "Cool - phone app or website?"},
	}
}

func TestConfirmedHandoffBypassesGeneration(t *testing.T) {
	c := NewController()
	transcript := append(gatheringTranscript(),
		Turn{Role: RoleUser, Content: "phone app"},
		Turn{Role: RoleAssistant, Content: "Want me to pass this to the team?"},
	)

	d := c.Decide(transcript, "yes")

	require.Equal(t, DecisionForced, d.Kind)
	assert.True(t, d.HandoffReady)
	assert.NotEmpty(t, d.Summary)
	assert.Contains(t, d.Response, handoffAckText)
	assert.Contains(t, d.Response, HandoffOpen)

	// The codec recovers exactly the controller's summary.
	_, summary, found := StripSummary(d.Response)
	require.True(t, found)
	assert.Equal(t, d.Summary, summary)
}

func TestAffirmativeWithoutPendingHandoffFallsThrough(t *testing.T) {
	c := NewController()
	d := c.Decide(Transcript{
		{Role: RoleUser, Content: "hello"},
		{Role: RoleAssistant, Content: "Hi! What can I do for you?"},
	}, "yes")

	assert.Equal(t, DecisionInstructed, d.Kind)
	assert.False(t, d.HandoffReady)
}

func TestNewBuildRequestAsksAboutAppType(t *testing.T) {
	c := NewController()
	d := c.Decide(nil, "i want to build a gym app")

	require.Equal(t, DecisionInstructed, d.Kind)
	assert.Contains(t, d.Instruction, "gym app")
	assert.False(t, d.HandoffReady)
	assert.Equal(t, "gym", d.Slots.AppType)
}

func TestNewBuildRequestRestartsGathering(t *testing.T) {
	c := NewController()
	// Even with a fully gathered transcript, a fresh request starts over.
	transcript := append(gatheringTranscript(), Turn{Role: RoleUser, Content: "phone app"})

	d := c.Decide(transcript, "can you build a restaurant app instead")

	assert.Equal(t, DecisionInstructed, d.Kind)
	assert.False(t, d.HandoffReady)
	assert.Contains(t, d.Instruction, "restaurant app")
}

func TestCompleteSlotsForceConfirmationVerbatim(t *testing.T) {
	c := NewController()
	transcript := append(gatheringTranscript(), Turn{Role: RoleUser, Content: "phone app"})

	d := c.Decide(transcript, "sounds good, whatever works")

	require.Equal(t, DecisionForced, d.Kind)
	assert.Equal(t, "Want me to pass this to the team?", d.Response)
	assert.True(t, d.HandoffReady)
	assert.Equal(t, "App for phone - track workouts and show how busy the gym is", d.Summary)
}

func TestPlatformAnswerInCurrentMessageForcesConfirmation(t *testing.T) {
	c := NewController()
	// Platform arrives in this very message; controller's raw-message check
	// must catch it even before history contains it.
	d := c.Decide(gatheringTranscript(), "phone")

	require.Equal(t, DecisionForced, d.Kind)
	assert.Equal(t, handoffConfirmText, d.Response)
	assert.True(t, d.HandoffReady)
}

func TestFeaturesOnlyAsksPlatformQuestion(t *testing.T) {
	c := NewController()
	transcript := Transcript{
		{Role: RoleUser, Content: "i want a gym app"},
		{Role: RoleAssistant, Content: "What should it do?"},
	}

	d := c.Decide(transcript, "it should track my workouts")

	require.Equal(t, DecisionInstructed, d.Kind)
	assert.Contains(t, d.Instruction, "Phone app or website?")
	assert.False(t, d.HandoffReady)
}

func TestEmptySlotsAskWhatAppShouldDo(t *testing.T) {
	c := NewController()
	d := c.Decide(nil, "hello")

	require.Equal(t, DecisionInstructed, d.Kind)
	assert.Contains(t, d.Instruction, "Ask what the app should do")
}

func TestDecideIsIdempotent(t *testing.T) {
	c := NewController()
	transcript := append(gatheringTranscript(),
		Turn{Role: RoleUser, Content: "phone app"},
		Turn{Role: RoleAssistant, Content: "Want me to pass this to the team?"},
	)

	first := c.Decide(transcript, "yes")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Decide(transcript, "yes"))
	}
}

func TestBuildSummaryFallbacks(t *testing.T) {
	assert.Equal(t, "App for phone - custom app", BuildSummary(SlotSet{}))
	assert.Equal(t, "App for website - order tracking",
		BuildSummary(SlotSet{Features: "order tracking", Platform: PlatformWeb}))
}
