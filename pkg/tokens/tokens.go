// Package tokens provides tiktoken-based token counting for session budgets.
package tokens

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// SessionBudget caps total token usage per conversation session. Once a
// transcript's accumulated usage reaches this, further generation is refused.
const SessionBudget = 15000

// Counter provides token counting backed by the GPT-4 encoding. Claude and
// Gemini tokenize similarly enough for budget purposes.
type Counter struct {
	codec tokenizer.Codec
}

// NewCounter creates a token counter. All models approximate with GPT-4 encoding.
func NewCounter() (*Counter, error) {
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer codec: %w", err)
	}
	return &Counter{codec: codec}, nil
}

// Count returns the number of tokens in the given text.
func (c *Counter) Count(text string) int {
	if c == nil || c.codec == nil {
		return estimate(text)
	}
	count, err := c.codec.Count(text)
	if err != nil {
		return estimate(text)
	}
	return count
}

// WithinBudget reports whether usedTokens leaves room in the session budget.
func (c *Counter) WithinBudget(usedTokens int) bool {
	return usedTokens < SessionBudget
}

// estimate falls back to character-based estimation (4 chars per token).
func estimate(text string) int {
	return len(text) / 4
}
