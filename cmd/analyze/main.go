// Command analyze runs the analysis pipeline over a local chat export and
// prints the report, without starting the HTTP server. It always uses the
// rule-based classifiers so it works offline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/adapters/exporter"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/adapters/parser"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/adapters/source"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/classifier"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/core/services"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/pkg/config"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/server/usecase"
)

func main() {
	var format string
	flag.StringVar(&format, "format", "console", "Output format: console, json or csv")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("Usage: analyze [-format console|json|csv] <chat-export.txt>")
	}

	// keep pipeline logging out of the report output
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	data, err := source.NewFileSource(flag.Arg(0)).Fetch()
	if err != nil {
		log.Fatalf("Failed to read chat export: %v", err)
	}

	analyzer := usecase.NewAnalyzeChatUseCase(
		cfg,
		parser.NewWhatsAppParser(),
		services.NewSentimentService(classifier.NewRuleSentiment(), cfg.Classifier.BatchSize),
		services.NewToxicityService(nil, cfg.Classifier.ToxicityThreshold),
		nil, // no word cloud on the console
		nil, // no cache for one-shot runs
	)

	report, err := analyzer.AnalyzeChat(context.Background(), data)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	switch format {
	case "console":
		if err := exporter.NewConsoleExporter(os.Stdout).Export(report); err != nil {
			log.Fatalf("Failed to print report: %v", err)
		}
	case "json":
		out, err := exporter.ReportToJSON(report)
		if err != nil {
			log.Fatalf("Failed to export report: %v", err)
		}
		fmt.Println(string(out))
	case "csv":
		out, err := exporter.ReportToCSV(report)
		if err != nil {
			log.Fatalf("Failed to export report: %v", err)
		}
		fmt.Print(string(out))
	default:
		log.Fatalf("Unknown format %q", format)
	}
}
