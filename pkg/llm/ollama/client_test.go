package ollama

import (
	"errors"
	"testing"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/pkg/llm"
	"frontdesk/pkg/llm/llmerrors"
)

func TestStopReason(t *testing.T) {
	assert.Equal(t, "incomplete", stopReason(&api.ChatResponse{Done: false}))
	assert.Equal(t, "end_turn", stopReason(&api.ChatResponse{Done: true, DoneReason: "stop"}))
	assert.Equal(t, "end_turn", stopReason(&api.ChatResponse{Done: true}))
	assert.Equal(t, "max_tokens", stopReason(&api.ChatResponse{Done: true, DoneReason: "length"}))
	assert.Equal(t, "other", stopReason(&api.ChatResponse{Done: true, DoneReason: "other"}))
}

func TestClassifyError(t *testing.T) {
	assert.True(t, llmerrors.Is(classifyError(errors.New("dial tcp: connection refused")), llmerrors.ErrorTypeTransient))
	assert.True(t, llmerrors.Is(classifyError(errors.New(`model "llama3" not found`)), llmerrors.ErrorTypeBadPrompt))
	assert.True(t, llmerrors.Is(classifyError(errors.New("request timeout")), llmerrors.ErrorTypeTransient))
	assert.True(t, llmerrors.Is(classifyError(errors.New("weird failure")), llmerrors.ErrorTypeUnknown))
	assert.NoError(t, classifyError(nil))
}

func TestConvertTools(t *testing.T) {
	defs := []llm.ToolDefinition{{
		Name:        "search_knowledge",
		Description: "Search the knowledge base",
		InputSchema: llm.InputSchema{
			Properties: map[string]llm.Property{
				"query": {Type: "string", Description: "search query"},
			},
			Required: []string{"query"},
		},
	}}

	tools := convertTools(defs)
	require.Len(t, tools, 1)
	assert.Equal(t, "function", tools[0].Type)
	assert.Equal(t, "search_knowledge", tools[0].Function.Name)
	assert.Equal(t, []string{"query"}, tools[0].Function.Parameters.Required)
}

func TestNewClientFallsBackOnBadURL(t *testing.T) {
	c := NewClient("://not-a-url", "llama3")
	assert.Equal(t, "llama3", c.ModelName())
	assert.NotNil(t, c.client)
}
