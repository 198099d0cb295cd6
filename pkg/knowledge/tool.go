package knowledge

import (
	"frontdesk/pkg/llm"
)

// ToolName is the name the model uses to invoke knowledge search.
const ToolName = "search_knowledge_base"

// ToolDefinition returns the search tool declaration for LLM requests.
func ToolDefinition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name: ToolName,
		Description: "Search Siphio's knowledge base for accurate business information. " +
			"Use this tool to find information about Siphio's products, services, blog content, " +
			"and company details. ALWAYS use this tool instead of guessing or making up information about Siphio.",
		InputSchema: llm.InputSchema{
			Properties: map[string]llm.Property{
				"query": {
					Type:        "string",
					Description: "Natural language search query describing what to find",
				},
				"category": {
					Type:        "string",
					Description: "Optional filter: apps for products, services for consulting offerings, blog for articles, company for mission and team info. Leave empty to search all.",
					Enum:        []string{"apps", "services", "blog", "company"},
				},
				"response_format": {
					Type:        "string",
					Description: "concise for brief answers (default), detailed for comprehensive information",
					Enum:        []string{"concise", "detailed"},
				},
			},
			Required: []string{"query"},
		},
	}
}

// ExecuteToolCall runs a search from the model's tool call parameters.
// Unknown or malformed parameters degrade to an unfiltered concise search.
func (idx *Index) ExecuteToolCall(call llm.ToolCall) Result {
	query, _ := call.Parameters["query"].(string)

	category := CategoryAll
	if raw, ok := call.Parameters["category"].(string); ok {
		if c := Category(raw); c.Valid() {
			category = c
		}
	}

	format := FormatConcise
	if raw, ok := call.Parameters["response_format"].(string); ok && Format(raw) == FormatDetailed {
		format = FormatDetailed
	}

	return idx.Search(query, category, format)
}
