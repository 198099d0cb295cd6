// Package chat orchestrates one conversational turn: deterministic dialogue
// control, knowledge-grounded generation, and handoff marker processing.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"frontdesk/pkg/convo"
	"frontdesk/pkg/knowledge"
	"frontdesk/pkg/llm"
	"frontdesk/pkg/logx"
	"frontdesk/pkg/tokens"
)

// Request is one user turn with its full conversation history.
type Request struct {
	Message string
	History convo.Transcript
}

// Response is the agent's reply for one turn.
type Response struct {
	Timestamp      time.Time `json:"timestamp"`
	Response       string    `json:"response"`
	HandoffSummary string    `json:"handoff_summary,omitempty"`
	ToolsCalled    []string  `json:"tools_called"`
	TokensUsed     int       `json:"tokens_used"`
	HandoffReady   bool      `json:"handoff_ready"`
}

// Service processes chat turns. It holds no per-conversation state: every
// request carries its history and is decided from scratch.
type Service struct {
	client     llm.Client
	controller *convo.Controller
	index      *knowledge.Index
	counter    *tokens.Counter
	logger     *logx.Logger
}

// NewService creates a chat service.
func NewService(client llm.Client, index *knowledge.Index, counter *tokens.Counter) *Service {
	return &Service{
		client:     client,
		controller: convo.NewController(),
		index:      index,
		counter:    counter,
		logger:     logx.NewLogger("chat"),
	}
}

// Respond processes one user turn.
func (s *Service) Respond(ctx context.Context, req *Request) (*Response, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	s.logger.Debug("turn: message=%q history=%d", req.Message, len(req.History))

	// Session budget check. A conversation that has burned its budget gets
	// pushed toward handoff instead of more generation.
	if !s.counter.WithinBudget(s.sessionTokens(req)) {
		slots := convo.Extract(req.History, req.Message, false)
		summary := convo.BuildSummary(slots)
		s.logger.Info("session budget exhausted, forcing handoff offer")
		return &Response{
			Timestamp:      time.Now().UTC(),
			Response:       "We've covered a lot of ground! Want me to pass this to the team?",
			ToolsCalled:    []string{},
			HandoffReady:   true,
			HandoffSummary: summary,
		}, nil
	}

	// Informational questions route to knowledge-grounded generation.
	if convo.WantsKnowledge(req.Message, req.History) {
		return s.respondWithKnowledge(ctx, req)
	}

	decision := s.controller.Decide(req.History, req.Message)

	if decision.Kind == convo.DecisionForced {
		clean, summary, found := convo.StripSummary(decision.Response)
		resp := &Response{
			Timestamp:    time.Now().UTC(),
			Response:     clean,
			ToolsCalled:  []string{},
			HandoffReady: decision.HandoffReady,
		}
		if found {
			resp.HandoffSummary = summary
		} else if decision.HandoffReady {
			resp.HandoffSummary = decision.Summary
		}
		s.logger.Info("forced response, handoff_ready=%v", resp.HandoffReady)
		return resp, nil
	}

	return s.respondInstructed(ctx, req, decision)
}

// respondInstructed generates a reply under a controller instruction.
func (s *Service) respondInstructed(ctx context.Context, req *Request, decision convo.Decision) (*Response, error) {
	userMessage := decision.Instruction + "\n\n" + req.Message

	messages := s.buildMessages(req.History, userMessage)
	in := llm.NewCompletionRequest(messages)

	completion, err := s.client.Complete(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	clean, summary, found := convo.StripSummary(completion.Content)
	return &Response{
		Timestamp:      time.Now().UTC(),
		Response:       clean,
		TokensUsed:     completion.Usage.Total(),
		ToolsCalled:    []string{},
		HandoffReady:   found,
		HandoffSummary: summary,
	}, nil
}

// respondWithKnowledge runs generation with the knowledge search tool
// available, executing at most one round of tool calls.
func (s *Service) respondWithKnowledge(ctx context.Context, req *Request) (*Response, error) {
	messages := s.buildMessages(req.History, req.Message)
	in := llm.NewCompletionRequest(messages)
	in.Tools = []llm.ToolDefinition{knowledge.ToolDefinition()}

	completion, err := s.client.Complete(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	toolsCalled := []string{}
	tokensUsed := completion.Usage.Total()

	if len(completion.ToolCalls) > 0 {
		var resultParts []string
		for _, call := range completion.ToolCalls {
			toolsCalled = append(toolsCalled, call.Name)
			if call.Name != knowledge.ToolName {
				continue
			}
			result := s.index.ExecuteToolCall(call)
			raw, err := json.Marshal(result)
			if err != nil {
				return nil, fmt.Errorf("failed to encode search result: %w", err)
			}
			resultParts = append(resultParts, string(raw))
		}

		// Feed results back for the final answer. Tool-use-only completions
		// have no text; an empty assistant turn is invalid for providers, so
		// it is skipped.
		followup := make([]llm.CompletionMessage, 0, len(messages)+2)
		followup = append(followup, messages...)
		if completion.Content != "" {
			followup = append(followup, llm.NewAssistantMessage(completion.Content))
		}
		followup = append(followup, llm.NewUserMessage(
			"Knowledge base results:\n"+joinLines(resultParts)+
				"\n\nAnswer the user's question using only these results, in 2-3 friendly sentences."))

		final, err := s.client.Complete(ctx, llm.NewCompletionRequest(followup))
		if err != nil {
			return nil, fmt.Errorf("generation failed: %w", err)
		}
		tokensUsed += final.Usage.Total()
		completion = final
	}

	clean, summary, found := convo.StripSummary(completion.Content)
	return &Response{
		Timestamp:      time.Now().UTC(),
		Response:       clean,
		TokensUsed:     tokensUsed,
		ToolsCalled:    toolsCalled,
		HandoffReady:   found,
		HandoffSummary: summary,
	}, nil
}

// buildMessages assembles system prompt, history, and the current user turn.
func (s *Service) buildMessages(history convo.Transcript, userMessage string) []llm.CompletionMessage {
	messages := make([]llm.CompletionMessage, 0, len(history)+2)
	messages = append(messages, llm.NewSystemMessage(SystemPrompt))
	for _, turn := range history {
		switch turn.Role {
		case convo.RoleUser:
			messages = append(messages, llm.NewUserMessage(turn.Content))
		case convo.RoleAssistant:
			messages = append(messages, llm.NewAssistantMessage(turn.Content))
		}
	}
	messages = append(messages, llm.NewUserMessage(userMessage))
	return messages
}

// sessionTokens estimates tokens consumed so far by this conversation.
func (s *Service) sessionTokens(req *Request) int {
	total := s.counter.Count(req.Message)
	for _, turn := range req.History {
		total += s.counter.Count(turn.Content)
	}
	return total
}

func joinLines(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "\n"
		}
		out += p
	}
	return out
}
