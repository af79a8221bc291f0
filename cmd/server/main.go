package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okralabs/okra/internal/application/usecase"
	"github.com/okralabs/okra/internal/domain/policy"
	"github.com/okralabs/okra/internal/domain/port"
	"github.com/okralabs/okra/internal/infrastructure/adapter"
	"github.com/okralabs/okra/internal/infrastructure/config"
	"github.com/okralabs/okra/internal/infrastructure/messaging"
	grpcPresentation "github.com/okralabs/okra/internal/presentation/grpc"
	"github.com/okralabs/okra/internal/presentation/rest"
	pkgkafka "github.com/okralabs/okra/pkg/kafka"
	"github.com/okralabs/okra/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		observability.InitLogger(observability.LogConfig{Format: "json"}).
			Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
	})

	logger.Info("starting credit engine",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"policy_file", cfg.PolicyFile,
	)

	// --- Policy parameters --------------------------------------------------
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
	logger.Info("policy parameters loaded", "version", params.Version)

	// --- Metrics ------------------------------------------------------------
	meterProvider, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(ctx) }() //nolint:errcheck

	// --- Event publishing ---------------------------------------------------
	var publisher port.EventPublisher
	if cfg.KafkaEnabled {
		producer := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		publisher = messaging.NewKafkaEventPublisher(producer, logger)
		logger.Info("kafka publisher enabled", "topic", cfg.KafkaTopic)
	} else {
		publisher = messaging.NewLogEventPublisher(logger)
	}
	defer func() { _ = publisher.Close() }() //nolint:errcheck

	// --- Use cases ----------------------------------------------------------
	explainer := adapter.NewTemplateExplainer()
	clock := port.SystemClock{}
	creditUC := usecase.NewEvaluateCreditUseCase(store, publisher, explainer, clock, cfg.EventSource, logger)
	bnplUC := usecase.NewEvaluateBNPLUseCase(store, publisher, explainer, clock, cfg.EventSource, logger)
	policiesUC := usecase.NewListPoliciesUseCase(store)

	// --- gRPC server --------------------------------------------------------
	handler := grpcPresentation.NewCreditHandler(creditUC, bnplUC, policiesUC)
	grpcServer := grpcPresentation.NewServer(handler, cfg.ServiceName, logger)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			logger.Error("gRPC server error", "error", err)
			cancel()
		}
	}()

	// --- HTTP server --------------------------------------------------------
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, logger, func() bool {
		return store.Current() != nil
	}).RegisterRoutes(mux)
	rest.NewQuoteHandler(cfg.ServiceName, creditUC, bnplUC, policiesUC, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: mux,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	// --- Graceful shutdown --------------------------------------------------
	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit engine stopped")
}
