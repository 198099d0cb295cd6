// Package metrics provides services for querying and aggregating LLM usage
// metrics from Prometheus.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// UsageMetrics represents aggregated token usage for one model.
type UsageMetrics struct {
	Model            string `json:"model"`
	PromptTokens     int64  `json:"prompt_tokens"`
	CompletionTokens int64  `json:"completion_tokens"`
	TotalTokens      int64  `json:"total_tokens"`
	Requests         int64  `json:"requests"`
	Errors           int64  `json:"errors"`
}

// QueryService provides methods to query metrics from a Prometheus server
// scraping the agent's /metrics endpoint.
type QueryService struct {
	client   api.Client
	queryAPI v1.API
}

// NewQueryService creates a new metrics query service.
func NewQueryService(prometheusURL string) (*QueryService, error) {
	client, err := api.NewClient(api.Config{
		Address: prometheusURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus client: %w", err)
	}

	return &QueryService{
		client:   client,
		queryAPI: v1.NewAPI(client),
	}, nil
}

// GetUsage retrieves aggregated token usage across all models.
func (q *QueryService) GetUsage(ctx context.Context) (*UsageMetrics, error) {
	metrics := &UsageMetrics{Model: "all"}

	prompt, err := q.sumQuery(ctx, `sum(llm_tokens_total{type="prompt"})`)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompt tokens: %w", err)
	}
	metrics.PromptTokens = prompt

	completion, err := q.sumQuery(ctx, `sum(llm_tokens_total{type="completion"})`)
	if err != nil {
		return nil, fmt.Errorf("failed to query completion tokens: %w", err)
	}
	metrics.CompletionTokens = completion
	metrics.TotalTokens = prompt + completion

	requests, err := q.sumQuery(ctx, `sum(llm_requests_total)`)
	if err != nil {
		return nil, fmt.Errorf("failed to query request count: %w", err)
	}
	metrics.Requests = requests

	errors, err := q.sumQuery(ctx, `sum(llm_requests_total{status="error"})`)
	if err != nil {
		return nil, fmt.Errorf("failed to query error count: %w", err)
	}
	metrics.Errors = errors

	return metrics, nil
}

// GetUsageByModel retrieves token usage broken down by model.
func (q *QueryService) GetUsageByModel(ctx context.Context) (map[string]*UsageMetrics, error) {
	result := make(map[string]*UsageMetrics)

	modelsResult, _, err := q.queryAPI.Query(ctx, `group by (model) (llm_tokens_total)`, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}

	var models []string
	if vector, ok := modelsResult.(model.Vector); ok {
		for _, sample := range vector {
			if modelName, ok := sample.Metric["model"]; ok {
				models = append(models, string(modelName))
			}
		}
	}

	for _, modelName := range models {
		metrics := &UsageMetrics{Model: modelName}

		prompt, err := q.sumQuery(ctx, fmt.Sprintf(`sum(llm_tokens_total{model=%q, type="prompt"})`, modelName))
		if err != nil {
			return nil, fmt.Errorf("failed to query prompt tokens for model %s: %w", modelName, err)
		}
		metrics.PromptTokens = prompt

		completion, err := q.sumQuery(ctx, fmt.Sprintf(`sum(llm_tokens_total{model=%q, type="completion"})`, modelName))
		if err != nil {
			return nil, fmt.Errorf("failed to query completion tokens for model %s: %w", modelName, err)
		}
		metrics.CompletionTokens = completion
		metrics.TotalTokens = prompt + completion

		requests, err := q.sumQuery(ctx, fmt.Sprintf(`sum(llm_requests_total{model=%q})`, modelName))
		if err != nil {
			return nil, fmt.Errorf("failed to query request count for model %s: %w", modelName, err)
		}
		metrics.Requests = requests

		result[modelName] = metrics
	}

	return result, nil
}

// sumQuery runs an instant query expected to return a single-sample vector.
// Missing series come back as zero.
func (q *QueryService) sumQuery(ctx context.Context, query string) (int64, error) {
	result, _, err := q.queryAPI.Query(ctx, query, time.Now())
	if err != nil {
		return 0, err
	}
	if vector, ok := result.(model.Vector); ok && len(vector) > 0 {
		return int64(vector[0].Value), nil
	}
	return 0, nil
}
