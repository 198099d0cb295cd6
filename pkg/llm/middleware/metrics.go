package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"frontdesk/pkg/llm"
	"frontdesk/pkg/llm/llmerrors"
	"frontdesk/pkg/logx"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Recorder receives observations for completed LLM requests.
type Recorder interface {
	ObserveRequest(model string, promptTokens, completionTokens int, success bool, errorType string, duration time.Duration)
}

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	requestsTotal   *prometheus.CounterVec
	tokensTotal     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a new Prometheus-based metrics recorder,
// registering its collectors with the given registerer.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total number of LLM requests by model, status, and error type",
			},
			[]string{"model", "status", "error_type"},
		),
		tokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_tokens_total",
				Help: "Total number of tokens used in LLM requests",
			},
			[]string{"model", "type"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Duration of LLM requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"model"},
		),
	}
}

// ObserveRequest records metrics for a completed LLM request.
func (p *PrometheusRecorder) ObserveRequest(model string, promptTokens, completionTokens int, success bool, errorType string, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}

	p.requestsTotal.WithLabelValues(model, status, errorType).Inc()

	if success {
		p.tokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
		p.tokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}

	p.requestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// Metrics returns a middleware that records request latency, token usage,
// success/failure rates, and error types for every completion.
func Metrics(recorder Recorder, logger *logx.Logger) llm.Middleware {
	return func(next llm.Client) llm.Client {
		return llm.WrapClient(
			func(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
				start := time.Now()
				model := next.ModelName()

				resp, err := next.Complete(ctx, req)
				duration := time.Since(start)

				errorType := ""
				if err != nil {
					errorType = llmerrors.TypeOf(err).String()
				}

				recorder.ObserveRequest(
					model,
					resp.Usage.PromptTokens,
					resp.Usage.CompletionTokens,
					err == nil,
					errorType,
					duration,
				)

				if logger != nil {
					status := statusSuccess
					if err != nil {
						status = statusError
					}
					logger.Debug("LLM request: model=%s tokens=%d+%d=%d status=%s duration=%dms",
						model, resp.Usage.PromptTokens, resp.Usage.CompletionTokens,
						resp.Usage.Total(), status, duration.Milliseconds())
				}

				return resp, err //nolint:wrapcheck // Middleware passes through errors unchanged
			},
			next.ModelName,
		)
	}
}
