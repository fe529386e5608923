package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/quill-labs/aide-cli/internal/adapters/driven/config/file"
	"github.com/quill-labs/aide-cli/internal/adapters/driven/embedding/openai"
	"github.com/quill-labs/aide-cli/internal/adapters/driven/google"
	"github.com/quill-labs/aide-cli/internal/adapters/driven/llm/anthropic"
	"github.com/quill-labs/aide-cli/internal/adapters/driven/storage/sqlite"
	"github.com/quill-labs/aide-cli/internal/adapters/driving/cli"
	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
	"github.com/quill-labs/aide-cli/internal/core/ports/driving"
	"github.com/quill-labs/aide-cli/internal/core/services"
	"github.com/quill-labs/aide-cli/internal/logger"
)

func main() {
	// Local .env files override nothing already in the environment
	_ = godotenv.Load()

	cli.SetBootstrap(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildServices assembles the application from configuration. Missing
// credentials degrade features rather than fail startup: without an
// OpenAI key there is no knowledge base, without an Anthropic key no
// assistant, without a Google token no calendar or mail.
func buildServices(dataDir string) (cli.Services, error) {
	ctx := context.Background()

	cfg, err := file.NewConfigStore(dataDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("open config: %w", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return cli.Services{}, fmt.Errorf("open document store: %w", err)
	}

	session := services.NewSession()

	var embedder driven.EmbeddingService
	if key := secret(cfg, "openai.api_key", "OPENAI_API_KEY"); key != "" {
		embedder, err = openai.NewEmbeddingService(openai.Config{APIKey: key})
		if err != nil {
			return cli.Services{}, fmt.Errorf("embedding service: %w", err)
		}
	}

	var completion driven.CompletionService
	if key := secret(cfg, "anthropic.api_key", "ANTHROPIC_API_KEY"); key != "" {
		completion, err = anthropic.NewCompletionService(anthropic.Config{APIKey: key})
		if err != nil {
			return cli.Services{}, fmt.Errorf("completion service: %w", err)
		}
	}

	var calendarSvc driven.CalendarService
	var mailSvc driven.MailService
	if token := secret(cfg, "google.access_token", "GOOGLE_ACCESS_TOKEN"); token != "" {
		ts := google.StaticTokenSource(token)
		calendarSvc, err = google.NewCalendarAdapter(ctx, ts)
		if err != nil {
			return cli.Services{}, fmt.Errorf("calendar service: %w", err)
		}
		mailSvc, err = google.NewMailAdapter(ctx, ts)
		if err != nil {
			return cli.Services{}, fmt.Errorf("mail service: %w", err)
		}
	}

	var retrieval *services.Retrieval
	if embedder != nil {
		retrieval = services.NewRetrieval(store, embedder, session)
		// Rebuild the index from previously persisted chunks
		if err := retrieval.Rebuild(ctx); err != nil {
			logger.Warn("Index rebuild failed, starting empty: %v", err)
		}
	}

	handlers := make(map[domain.Intent]services.IntentHandler)
	if retrieval != nil {
		handlers[domain.IntentKnowledge] = services.NewKnowledgeHandler(retrieval, completion, session)
		handlers[domain.IntentAnalysis] = services.NewAnalysisHandler(retrieval, completion, session)
	}
	handlers[domain.IntentCalendar] = services.NewCalendarHandler(calendarSvc, completion, session)
	handlers[domain.IntentEmail] = services.NewEmailHandler(mailSvc, completion, session)

	dispatcher := services.NewDispatcher(completion, session, handlers)

	var retrievalPort driving.RetrievalService
	if retrieval != nil {
		retrievalPort = retrieval
	}

	return cli.Services{
		Retrieval: retrievalPort,
		Assistant: dispatcher,
		Config:    cfg,
	}, nil
}

// secret resolves a credential: environment wins over the config file.
func secret(cfg driven.ConfigStore, key, envVar string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return cfg.GetString(key)
}
