package logx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugDomainFiltering(t *testing.T) {
	t.Cleanup(func() { SetDebug(false, nil) })

	SetDebug(true, nil)
	assert.True(t, IsDebugEnabled("controller"))
	assert.True(t, IsDebugEnabled("webapi"))

	SetDebug(true, []string{"controller", "leads"})
	assert.True(t, IsDebugEnabled("controller"))
	assert.True(t, IsDebugEnabled("leads"))
	assert.False(t, IsDebugEnabled("webapi"))

	SetDebug(false, nil)
	assert.False(t, IsDebugEnabled("controller"))
}

func TestErrorfReturnsError(t *testing.T) {
	err := Errorf("lookup failed: %s", "no such lead")
	require.Error(t, err)
	assert.Equal(t, "lookup failed: no such lead", err.Error())
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	base := Errorf("underlying")
	wrapped := Wrap(base, "db connect")
	require.Error(t, wrapped)
	assert.Equal(t, "db connect: underlying", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
}

func TestLoggerComponent(t *testing.T) {
	l := NewLogger("persistence")
	assert.Equal(t, "persistence", l.Component())
}
