package knowledge

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/pkg/llm"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex()
	require.NoError(t, err)
	return idx
}

func TestSearchFindsAppBySubstring(t *testing.T) {
	idx := testIndex(t)

	result := idx.Search("Spending Insights", CategoryApps, FormatConcise)
	require.True(t, result.Found)
	require.NotEmpty(t, result.Results)
	assert.Equal(t, "Spending Insights", result.Results[0].Title)
	assert.Equal(t, substringScore, result.Results[0].Score)
	assert.Empty(t, result.Suggestion)
}

func TestSearchAllCategoriesSortedByScore(t *testing.T) {
	idx := testIndex(t)

	result := idx.Search("AI agents", CategoryAll, FormatConcise)
	require.True(t, result.Found)
	assert.Equal(t, "all", result.Category)
	assert.LessOrEqual(t, len(result.Results), maxResults)
	for i := 1; i < len(result.Results); i++ {
		assert.GreaterOrEqual(t, result.Results[i-1].Score, result.Results[i].Score)
	}
}

func TestSearchNoResultsGivesSuggestion(t *testing.T) {
	idx := testIndex(t)

	result := idx.Search("quantum blockchain gardening", CategoryApps, FormatConcise)
	assert.False(t, result.Found)
	assert.Empty(t, result.Results)
	assert.Contains(t, result.Suggestion, "Spending Insights")
}

func TestSearchPricingQuery(t *testing.T) {
	idx := testIndex(t)

	result := idx.Search("pricing", CategoryServices, FormatConcise)
	require.True(t, result.Found)

	var titles []string
	for _, r := range result.Results {
		titles = append(titles, r.Title)
	}
	assert.Contains(t, titles, "Pricing Approach")
}

func TestSearchDetailedFormatIncludesSections(t *testing.T) {
	idx := testIndex(t)

	result := idx.Search("Checklist Manager", CategoryApps, FormatDetailed)
	require.True(t, result.Found)
	assert.Contains(t, result.Results[0].Content, "**Tech Stack**")
	assert.Contains(t, result.Results[0].Content, "**Why Built**")
}

func TestSearchCompanyMission(t *testing.T) {
	idx := testIndex(t)

	result := idx.Search("what is siphio's mission", CategoryCompany, FormatConcise)
	require.True(t, result.Found)
	assert.Equal(t, "About Siphio AI", result.Results[0].Title)
}

func TestScoreSubstringShortCircuits(t *testing.T) {
	assert.Equal(t, substringScore, score("gym app", "we built a gym app for members"))
	assert.Equal(t, 0.0, score("", "anything"))
	assert.Less(t, score("submarine navigation", "spending insights finance app"), matchThreshold)
}

func TestScoreTokenOverlap(t *testing.T) {
	s := score("track spending patterns", "surfaces spending patterns in plain language")
	assert.GreaterOrEqual(t, s, matchThreshold)
}

func TestExecuteToolCall(t *testing.T) {
	idx := testIndex(t)

	result := idx.ExecuteToolCall(llm.ToolCall{
		Name: ToolName,
		Parameters: map[string]any{
			"query":           "consulting",
			"category":        "services",
			"response_format": "detailed",
		},
	})
	require.True(t, result.Found)
	assert.Equal(t, "services", result.Category)
}

func TestExecuteToolCallBadParamsDegradeGracefully(t *testing.T) {
	idx := testIndex(t)

	result := idx.ExecuteToolCall(llm.ToolCall{
		Name: ToolName,
		Parameters: map[string]any{
			"query":    "agents",
			"category": 42, // wrong type
		},
	})
	assert.Equal(t, "all", result.Category)
}

func TestToolDefinitionShape(t *testing.T) {
	def := ToolDefinition()
	assert.Equal(t, ToolName, def.Name)
	assert.Contains(t, def.InputSchema.Properties, "query")
	assert.Equal(t, []string{"query"}, def.InputSchema.Required)
}

func TestNewIndexFromDirFallsBackToEmbedded(t *testing.T) {
	idx, err := NewIndexFromDir(t.TempDir())
	require.NoError(t, err)
	assert.NotEmpty(t, idx.apps.Apps)
}

func TestTruncateIsRuneAware(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))

	// Multibyte text must not be split mid-character.
	got := truncate(strings.Repeat("日本語", 10), 7)
	assert.Equal(t, "日本語日本語日...", got)
	assert.True(t, utf8.ValidString(got))
}
