// Command frontdesk runs the Siphio front-desk agent HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"frontdesk/pkg/chat"
	"frontdesk/pkg/config"
	"frontdesk/pkg/knowledge"
	"frontdesk/pkg/leads"
	"frontdesk/pkg/llm"
	"frontdesk/pkg/llm/anthropic"
	"frontdesk/pkg/llm/google"
	"frontdesk/pkg/llm/middleware"
	"frontdesk/pkg/llm/ollama"
	"frontdesk/pkg/llm/openai"
	"frontdesk/pkg/logx"
	"frontdesk/pkg/persistence"
	"frontdesk/pkg/tokens"
	"frontdesk/pkg/webapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to YAML config file")
	flag.Parse()

	if configPath == "" {
		configPath = os.Getenv("FRONTDESK_CONFIG")
	}

	if err := run(configPath); err != nil {
		log.Fatalf("frontdesk: %v", err)
	}
}

func run(configPath string) error {
	logger := logx.NewLogger("frontdesk")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	loadSecrets(logger)

	db, err := persistence.InitializeDatabase(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	index, err := loadKnowledge(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load knowledge base: %w", err)
	}

	counter, err := tokens.NewCounter()
	if err != nil {
		return fmt.Errorf("failed to initialize token counter: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client, err := buildClient(cfg, registry, logger)
	if err != nil {
		return fmt.Errorf("failed to build LLM client: %w", err)
	}
	logger.Info("LLM provider: %s model=%s", cfg.LLM.Provider, client.ModelName())

	chatService := chat.NewService(client, index, counter)
	leadService := leads.NewService(persistence.NewDatabaseOperations(db))
	server := webapi.NewServer(chatService, leadService, registry, cfg.Server.CORSOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on http://%s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// loadSecrets decrypts the secrets file when present and a password is
// provided; otherwise API keys come from the environment.
func loadSecrets(logger *logx.Logger) {
	if !config.SecretsFileExists(".") {
		return
	}
	password := os.Getenv("FRONTDESK_SECRETS_PASSWORD")
	if password == "" {
		logger.Warn("secrets file exists but FRONTDESK_SECRETS_PASSWORD is not set, falling back to environment")
		return
	}
	secrets, err := config.DecryptSecretsFile(".", password)
	if err != nil {
		logger.Warn("failed to decrypt secrets file: %v", err)
		return
	}
	config.SetDecryptedSecrets(secrets)
	logger.Info("loaded %d secrets from encrypted file", len(secrets))
}

func loadKnowledge(cfg *config.Config, logger *logx.Logger) (*knowledge.Index, error) {
	if cfg.Knowledge.DataDir != "" {
		logger.Info("knowledge base: %s", cfg.Knowledge.DataDir)
		return knowledge.NewIndexFromDir(cfg.Knowledge.DataDir)
	}
	return knowledge.NewIndex()
}

// buildClient constructs the configured provider and wraps it with metrics
// and retry middleware.
func buildClient(cfg *config.Config, registry *prometheus.Registry, logger *logx.Logger) (llm.Client, error) {
	base, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}

	policy := middleware.NewRetryPolicy(middleware.RetryConfig{
		MaxAttempts:   cfg.Retry.MaxAttempts,
		InitialDelay:  time.Duration(cfg.Retry.InitialDelay) * time.Millisecond,
		MaxDelay:      time.Duration(cfg.Retry.MaxDelay) * time.Millisecond,
		BackoffFactor: middleware.DefaultRetryConfig.BackoffFactor,
		Jitter:        true,
	}, nil)
	recorder := middleware.NewPrometheusRecorder(registry)

	return llm.Chain(base,
		middleware.Metrics(recorder, logger),
		middleware.Retry(policy),
	), nil
}

func buildProvider(cfg *config.Config) (llm.Client, error) {
	switch cfg.LLM.Provider {
	case config.ProviderAnthropic, config.ProviderOpenAI, config.ProviderGoogle:
		apiKey, err := config.GetSecret(cfg.APIKeyEnvVar())
		if err != nil {
			return nil, fmt.Errorf("missing API key for provider %s: %w", cfg.LLM.Provider, err)
		}
		switch cfg.LLM.Provider {
		case config.ProviderAnthropic:
			return anthropic.NewClient(apiKey, cfg.LLM.Model), nil
		case config.ProviderOpenAI:
			return openai.NewClient(apiKey, cfg.LLM.Model), nil
		default:
			return google.NewClient(apiKey, cfg.LLM.Model), nil
		}
	case config.ProviderOllama:
		return ollama.NewClient(cfg.LLM.Host, cfg.LLM.Model), nil
	case config.ProviderMock:
		return llm.NewMockClient([]llm.CompletionResponse{
			{Content: "Hi! I'm the Siphio front desk. How can I help?"},
		}, nil), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.LLM.Provider)
	}
}
