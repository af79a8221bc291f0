package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/okralabs/okra/internal/application/usecase"
	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/port"
	"github.com/okralabs/okra/internal/infrastructure/adapter"
	"github.com/okralabs/okra/internal/infrastructure/config"
	"github.com/okralabs/okra/internal/infrastructure/messaging"
	mcpPresentation "github.com/okralabs/okra/internal/presentation/mcp"
)

// mcpserver serves the quote tools over MCP stdio. Logs go to stderr so the
// stdout stream stays clean for the protocol.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})).With("service", "okra-mcp")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	params, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		logger.Error("failed to load policy parameters", "error", err)
		os.Exit(1)
	}
	store, err := policy.NewStore(params)
	if err != nil {
		logger.Error("invalid policy parameters", "error", err)
		os.Exit(1)
	}

	publisher := messaging.NewLogEventPublisher(logger)
	explainer := adapter.NewTemplateExplainer()
	clock := port.SystemClock{}

	creditUC := usecase.NewEvaluateCreditUseCase(store, publisher, explainer, clock, cfg.EventSource, logger)
	bnplUC := usecase.NewEvaluateBNPLUseCase(store, publisher, explainer, clock, cfg.EventSource, logger)
	policiesUC := usecase.NewListPoliciesUseCase(store)

	server := mcpPresentation.NewServer(creditUC, bnplUC, policiesUC, logger)
	if err := server.Run(ctx); err != nil {
		logger.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
