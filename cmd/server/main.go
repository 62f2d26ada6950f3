package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/adapters/parser"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/cache"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/classifier"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/core/services"
	applog "github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/log"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/pkg/config"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/server"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/server/usecase"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/visual"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}

// run encapsulates initialization and startup so main stays trivial.
func run() error {
	// 1. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger is not initialized yet, write to stderr
		_, _ = fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize the logger, with phone-number redaction
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(applog.NewRedactedLogger(handler))

	// 3. Validate configuration (after the logger is up)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// 4. Wire dependencies. The classifier strategy is decided here,
	// once, and injected into the analyzers.
	var sentimentClf, toxicityClf ports.Classifier
	switch cfg.Classifier.Provider {
	case config.ProviderOpenAI:
		sentimentClf = classifier.NewOpenAISentiment(cfg.Classifier.APIKey, cfg.Classifier.Model)
		toxicityClf = classifier.NewOpenAIToxicity(cfg.Classifier.APIKey, cfg.Classifier.Model)
	default:
		sentimentClf = classifier.NewRuleSentiment()
		toxicityClf = nil // toxicity runs on its rule patterns
	}

	reportStore := server.NewReportStore()
	reportStore.StartCleanupTicker(appCtx, config.DefaultCleanupInterval)
	cacheStore := cache.NewStore()
	cacheStore.StartCleanupTicker(appCtx, config.DefaultCleanupInterval)

	var wordCloud ports.CloudRenderer
	if cfg.WordCloud.FontPath != "" {
		wordCloud = visual.NewWordCloud(visual.Options{
			FontPath: cfg.WordCloud.FontPath,
			Width:    cfg.WordCloud.Width,
			Height:   cfg.WordCloud.Height,
			MaxWords: cfg.WordCloud.MaxWords,
		}, services.WordCloudStopWords())
	} else {
		slog.Info("no word cloud font configured, word clouds disabled")
	}

	analyzer := usecase.NewAnalyzeChatUseCase(
		cfg,
		parser.NewWhatsAppParser(),
		services.NewSentimentService(sentimentClf, cfg.Classifier.BatchSize),
		services.NewToxicityService(toxicityClf, cfg.Classifier.ToxicityThreshold),
		wordCloud,
		cacheStore,
	)

	// 5. Create the HTTP server
	srv, err := server.New(cfg, analyzer, reportStore)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// 6. Start the server and wait for shutdown
	serverDone := make(chan struct{})
	go func() {
		defer close(serverDone)
		slog.Info("starting server", "addr", cfg.Address(), "classifier", cfg.Classifier.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("signal received, shutting down...")
	appCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	<-serverDone

	slog.Info("application exited gracefully")
	return nil
}
