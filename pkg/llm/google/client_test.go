package google

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/pkg/llm"
	"frontdesk/pkg/llm/llmerrors"
)

func TestConvertMessagesMapsRoles(t *testing.T) {
	contents, system, err := convertMessages([]llm.CompletionMessage{
		llm.NewSystemMessage("persona"),
		llm.NewUserMessage("hi"),
		llm.NewAssistantMessage("hello"),
	})
	require.NoError(t, err)
	assert.Equal(t, "persona", system)
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
}

func TestConvertMessagesJoinsSystemParts(t *testing.T) {
	_, system, err := convertMessages([]llm.CompletionMessage{
		llm.NewSystemMessage("one"),
		llm.NewSystemMessage("two"),
		llm.NewUserMessage("hi"),
	})
	require.NoError(t, err)
	assert.Equal(t, "one\n\ntwo", system)
}

func TestConvertMessagesRejectsEmptyList(t *testing.T) {
	_, _, err := convertMessages(nil)
	assert.Error(t, err)
}

func TestClassifyError(t *testing.T) {
	assert.True(t, llmerrors.Is(classifyError(errors.New("googleapi: Error 429: quota exceeded")), llmerrors.ErrorTypeRateLimit))
	assert.True(t, llmerrors.Is(classifyError(errors.New("API key not valid")), llmerrors.ErrorTypeAuth))
	assert.True(t, llmerrors.Is(classifyError(errors.New("400 invalid argument")), llmerrors.ErrorTypeBadPrompt))
	assert.True(t, llmerrors.Is(classifyError(errors.New("service unavailable")), llmerrors.ErrorTypeTransient))
}

func TestInitIsConcurrencySafe(t *testing.T) {
	c := NewClient("test-key", "")

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = c.init(context.Background())
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	first := c.client
	require.NotNil(t, first)

	// Re-init is a no-op.
	require.NoError(t, c.init(context.Background()))
	assert.Same(t, first, c.client)
}

func TestConvertToolsBuildsDeclarations(t *testing.T) {
	defs := []llm.ToolDefinition{{
		Name:        "search_knowledge",
		Description: "Search the knowledge base",
		InputSchema: llm.InputSchema{
			Properties: map[string]llm.Property{
				"query":    {Type: "string"},
				"category": {Type: "string", Enum: []string{"apps", "services"}},
			},
			Required: []string{"query"},
		},
	}}

	decls := convertTools(defs)
	require.Len(t, decls, 1)
	assert.Equal(t, "search_knowledge", decls[0].Name)
	assert.Equal(t, []string{"query"}, decls[0].Parameters.Required)
	assert.Len(t, decls[0].Parameters.Properties, 2)
}
