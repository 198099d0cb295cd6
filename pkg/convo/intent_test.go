package convo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInformational(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"who are you", true},
		{"what's the latest news?", true},
		{"tell me about spending insights", true},
		{"what are your services", true},
		{"do you have a blog", true},
		{"how does the checklist manager work", true},
		{"i want a gym app", false},
		{"phone app", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsInformational(tt.message), "message: %q", tt.message)
	}
}

func TestIsBuildIntentChecksHistory(t *testing.T) {
	transcript := Transcript{
		{Role: RoleUser, Content: "i want to build a gym app"},
		{Role: RoleAssistant, Content: "What should it do?"},
	}

	// Current message has no build keyword, but history does.
	assert.True(t, IsBuildIntent("it should track workouts", transcript))
	assert.False(t, IsBuildIntent("it should track workouts", nil))
	assert.True(t, IsBuildIntent("can you develop something for me", nil))
}

func TestIsNewBuildRequestIgnoresHistory(t *testing.T) {
	assert.True(t, IsNewBuildRequest("I want to build a restaurant app"))
	assert.True(t, IsNewBuildRequest("build me a todo app"))
	assert.True(t, IsNewBuildRequest("need an app for my gym"))
	assert.False(t, IsNewBuildRequest("it should track workouts"))
	assert.False(t, IsNewBuildRequest("yes"))
}

func TestIsAffirmativeExactMatchOnly(t *testing.T) {
	assert.True(t, IsAffirmative("yes"))
	assert.True(t, IsAffirmative("  Yes, please  "))
	assert.True(t, IsAffirmative("OK"))
	assert.True(t, IsAffirmative("y"))
	assert.False(t, IsAffirmative("yes and make it blue"))
	assert.False(t, IsAffirmative("no"))
	assert.False(t, IsAffirmative(""))
}

func TestBuildIntentWinsRoutingTies(t *testing.T) {
	// Overlaps an informational phrase ("what are") but carries build intent.
	msg := "what are the steps, i want to build a finance app"
	assert.True(t, IsInformational(msg))
	assert.True(t, IsBuildIntent(msg, nil))
	assert.False(t, WantsKnowledge(msg, nil))

	assert.True(t, WantsKnowledge("what are your values", nil))
}
