package tokens

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountNonEmpty(t *testing.T) {
	counter, err := NewCounter()
	require.NoError(t, err)

	assert.Equal(t, 0, counter.Count(""))
	assert.Greater(t, counter.Count("I want to build a gym app"), 0)

	// Longer text costs more tokens.
	short := counter.Count("hello")
	long := counter.Count(strings.Repeat("hello world ", 50))
	assert.Greater(t, long, short)
}

func TestNilCounterFallsBackToEstimate(t *testing.T) {
	var counter *Counter
	assert.Equal(t, 3, counter.Count("hello, world")) // 12 chars / 4
}

func TestWithinBudget(t *testing.T) {
	counter := &Counter{}
	assert.True(t, counter.WithinBudget(0))
	assert.True(t, counter.WithinBudget(SessionBudget-1))
	assert.False(t, counter.WithinBudget(SessionBudget))
	assert.False(t, counter.WithinBudget(SessionBudget+500))
}
