package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/pkg/convo"
	"frontdesk/pkg/knowledge"
	"frontdesk/pkg/llm"
	"frontdesk/pkg/tokens"
)

func newTestService(t *testing.T, client llm.Client) *Service {
	t.Helper()
	index, err := knowledge.NewIndex()
	require.NoError(t, err)
	counter, err := tokens.NewCounter()
	require.NoError(t, err)
	return NewService(client, index, counter)
}

func TestRespondRejectsEmptyMessage(t *testing.T) {
	svc := newTestService(t, llm.NewMockClient(nil, nil))
	_, err := svc.Respond(context.Background(), &Request{Message: ""})
	assert.Error(t, err)
}

func TestRespondInstructedPrependsInstruction(t *testing.T) {
	mock := llm.NewMockClient([]llm.CompletionResponse{
		{Content: "Nice, a gym app! What should it do?", Usage: llm.Usage{PromptTokens: 50, CompletionTokens: 12}},
	}, nil)
	svc := newTestService(t, mock)

	resp, err := svc.Respond(context.Background(), &Request{Message: "I want to build a gym app"})
	require.NoError(t, err)
	assert.Equal(t, "Nice, a gym app! What should it do?", resp.Response)
	assert.Equal(t, 62, resp.TokensUsed)
	assert.False(t, resp.HandoffReady)
	assert.Empty(t, resp.ToolsCalled)

	requests := mock.Requests()
	require.Len(t, requests, 1)
	messages := requests[0].Messages
	require.NotEmpty(t, messages)
	assert.Equal(t, llm.RoleSystem, messages[0].Role)
	last := messages[len(messages)-1]
	assert.Equal(t, llm.RoleUser, last.Role)
	assert.True(t, strings.HasPrefix(last.Content, "[INSTRUCTION:"))
	assert.Contains(t, last.Content, "I want to build a gym app")
}

func TestRespondForcedConfirmationSkipsGeneration(t *testing.T) {
	mock := llm.NewMockClient(nil, nil)
	svc := newTestService(t, mock)

	history := convo.Transcript{
		{Role: convo.RoleUser, Content: "I want an app that tracks workouts"},
		{Role: convo.RoleAssistant, Content: "Phone app or website?"},
	}
	resp, err := svc.Respond(context.Background(), &Request{Message: "phone app", History: history})
	require.NoError(t, err)

	assert.Equal(t, "Want me to pass this to the team?", resp.Response)
	assert.True(t, resp.HandoffReady)
	assert.Equal(t, "App for phone - I want an app that tracks workouts", resp.HandoffSummary)
	assert.Zero(t, resp.TokensUsed)
	assert.Zero(t, mock.CallCount(), "forced turns must not hit the model")
}

func TestRespondForcedAckStripsMarker(t *testing.T) {
	mock := llm.NewMockClient(nil, nil)
	svc := newTestService(t, mock)

	history := convo.Transcript{
		{Role: convo.RoleUser, Content: "I want an app that tracks workouts"},
		{Role: convo.RoleAssistant, Content: "Phone app or website?"},
		{Role: convo.RoleUser, Content: "phone app"},
		{Role: convo.RoleAssistant, Content: "Want me to pass this to the team?"},
	}
	resp, err := svc.Respond(context.Background(), &Request{Message: "yes please", History: history})
	require.NoError(t, err)

	assert.Equal(t, "Great, I'll let the team know!", resp.Response)
	assert.NotContains(t, resp.Response, "[HANDOFF_SUMMARY]")
	assert.True(t, resp.HandoffReady)
	assert.Equal(t, "App for phone - I want an app that tracks workouts", resp.HandoffSummary)
	assert.Zero(t, mock.CallCount())
}

func TestRespondKnowledgeRunsToolRoundTrip(t *testing.T) {
	mock := llm.NewMockClient([]llm.CompletionResponse{
		{
			ToolCalls: []llm.ToolCall{{
				ID:   "call_1",
				Name: knowledge.ToolName,
				Parameters: map[string]any{
					"query":    "spending insights",
					"category": "apps",
				},
			}},
			Usage: llm.Usage{PromptTokens: 100, CompletionTokens: 20},
		},
		{
			Content: "Spending Insights helps you track where your money goes!",
			Usage:   llm.Usage{PromptTokens: 200, CompletionTokens: 15},
		},
	}, nil)
	svc := newTestService(t, mock)

	resp, err := svc.Respond(context.Background(), &Request{Message: "tell me about spending insights"})
	require.NoError(t, err)

	assert.Equal(t, "Spending Insights helps you track where your money goes!", resp.Response)
	assert.Equal(t, []string{knowledge.ToolName}, resp.ToolsCalled)
	assert.Equal(t, 335, resp.TokensUsed)
	assert.False(t, resp.HandoffReady)

	requests := mock.Requests()
	require.Len(t, requests, 2)
	assert.Len(t, requests[0].Tools, 1)
	assert.Equal(t, knowledge.ToolName, requests[0].Tools[0].Name)
	// Second call carries the search results back to the model.
	followupLast := requests[1].Messages[len(requests[1].Messages)-1]
	assert.Equal(t, llm.RoleUser, followupLast.Role)
	assert.Contains(t, followupLast.Content, "Knowledge base results:")
	assert.Contains(t, followupLast.Content, "Spending Insights")

	// A tool-use-only completion has no text; the follow-up must not carry
	// an empty assistant turn.
	for _, m := range requests[1].Messages {
		assert.NotEmpty(t, m.Content)
	}
}

func TestRespondKnowledgeKeepsAssistantPreamble(t *testing.T) {
	mock := llm.NewMockClient([]llm.CompletionResponse{
		{
			Content: "Let me look that up!",
			ToolCalls: []llm.ToolCall{{
				ID:         "call_1",
				Name:       knowledge.ToolName,
				Parameters: map[string]any{"query": "spending insights"},
			}},
		},
		{Content: "Spending Insights tracks your money!"},
	}, nil)
	svc := newTestService(t, mock)

	_, err := svc.Respond(context.Background(), &Request{Message: "tell me about spending insights"})
	require.NoError(t, err)

	requests := mock.Requests()
	require.Len(t, requests, 2)
	var assistantTurns []string
	for _, m := range requests[1].Messages {
		if m.Role == llm.RoleAssistant {
			assistantTurns = append(assistantTurns, m.Content)
		}
	}
	assert.Equal(t, []string{"Let me look that up!"}, assistantTurns)
}

func TestRespondKnowledgeWithoutToolCall(t *testing.T) {
	mock := llm.NewMockClient([]llm.CompletionResponse{
		{Content: "We're an AI software company based in London!", Usage: llm.Usage{PromptTokens: 80, CompletionTokens: 10}},
	}, nil)
	svc := newTestService(t, mock)

	resp, err := svc.Respond(context.Background(), &Request{Message: "what is siphio?"})
	require.NoError(t, err)
	assert.Equal(t, "We're an AI software company based in London!", resp.Response)
	assert.Empty(t, resp.ToolsCalled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRespondBudgetExhaustedForcesHandoffOffer(t *testing.T) {
	mock := llm.NewMockClient(nil, nil)
	svc := newTestService(t, mock)

	// Far past the session budget no matter how the text tokenizes.
	filler := strings.Repeat("workout tracking plans and progress charts ", 4000)
	history := convo.Transcript{
		{Role: convo.RoleUser, Content: filler},
		{Role: convo.RoleAssistant, Content: "Got it!"},
	}
	resp, err := svc.Respond(context.Background(), &Request{Message: "tell me more", History: history})
	require.NoError(t, err)

	assert.True(t, resp.HandoffReady)
	assert.Contains(t, resp.Response, "pass this to the team")
	assert.NotEmpty(t, resp.HandoffSummary)
	assert.Zero(t, mock.CallCount())
}

func TestRespondSurfacesGenerationErrors(t *testing.T) {
	mock := llm.NewMockClient(nil, []error{assert.AnError})
	svc := newTestService(t, mock)

	_, err := svc.Respond(context.Background(), &Request{Message: "I want to build a gym app"})
	assert.Error(t, err)
}
