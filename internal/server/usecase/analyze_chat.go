package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/cache"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/core/services"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/pkg/config"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/visual"
)

// AnalyzeChatUseCase runs the full analysis pipeline over one chat export
// and assembles the report. One invocation is one independent run; no
// state crosses runs except the content-hash cache.
type AnalyzeChatUseCase struct {
	cfg        *config.Config
	parser     ports.Parser
	users      *services.UserService
	keywords   *services.KeywordService
	emojis     *services.EmojiService
	sentiment  *services.SentimentService
	toxicity   *services.ToxicityService
	stats      *services.StatsService
	wordCloud  ports.CloudRenderer
	cacheStore *cache.Store
}

// NewAnalyzeChatUseCase wires the pipeline. wordCloud may be nil, which
// disables the word-cloud feature.
func NewAnalyzeChatUseCase(
	cfg *config.Config,
	parser ports.Parser,
	sentiment *services.SentimentService,
	toxicity *services.ToxicityService,
	wordCloud ports.CloudRenderer,
	cacheStore *cache.Store,
) *AnalyzeChatUseCase {
	return &AnalyzeChatUseCase{
		cfg:        cfg,
		parser:     parser,
		users:      services.NewUserService(),
		keywords:   services.NewKeywordService(),
		emojis:     services.NewEmojiService(),
		sentiment:  sentiment,
		toxicity:   toxicity,
		stats:      services.NewStatsService(),
		wordCloud:  wordCloud,
		cacheStore: cacheStore,
	}
}

// AnalyzeChat parses the export and fans the message sequence out to the
// analyzers. Only an empty parse fails the run; every other problem
// degrades to an empty or default aggregate so the rest of the report
// still renders.
func (uc *AnalyzeChatUseCase) AnalyzeChat(ctx context.Context, data []byte) (*domain.Report, error) {
	contentHash := cache.ContentHash(data)
	if uc.cacheStore != nil {
		if cached, found := uc.cacheStore.Get(contentHash); found {
			slog.Info("cache hit for export", "hash", contentHash)
			return cached, nil
		}
	}

	messages, err := uc.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse chat export: %w", err)
	}
	slog.Info("chat export parsed", "message_count", len(messages))

	report := &domain.Report{
		BasicStats:     uc.stats.BasicStats(messages),
		UserStats:      uc.users.AnalyzeUsers(messages),
		KeywordStats:   uc.keywords.AnalyzeKeywords(messages),
		EmojiStats:     uc.emojis.AnalyzeEmojis(messages),
		SentimentStats: uc.sentiment.AnalyzeSentiment(ctx, messages),
		ToxicityStats:  uc.toxicity.AnalyzeToxicity(ctx, messages),
		ProcessedAt:    time.Now(),
	}
	report.Charts = uc.stats.ChartData(messages, report.SentimentStats.Overall)

	if uc.wordCloud != nil {
		img, err := uc.wordCloud.Render(visual.BuildBlob(messages))
		switch {
		case err != nil:
			// rendering is best effort; the report ships without it
			slog.Warn("word cloud rendering failed", "error", err)
		case img != nil:
			report.WordCloudPNG = base64.StdEncoding.EncodeToString(img)
		}
	}

	report.Insights = uc.collectInsights(report)

	if uc.cacheStore != nil {
		ttl := uc.cfg.CacheTTL()
		uc.cacheStore.Put(contentHash, report, ttl)
		slog.Info("report cached", "hash", contentHash, "ttl", ttl.String())
	}

	slog.Info("analysis complete",
		"messages", report.BasicStats.TotalMessages,
		"users", report.BasicStats.UniqueUsers,
	)
	return report, nil
}

func (uc *AnalyzeChatUseCase) collectInsights(report *domain.Report) []string {
	var insights []string
	insights = append(insights, uc.users.Insights(report.UserStats)...)
	insights = append(insights, uc.keywords.Insights(report.KeywordStats)...)
	insights = append(insights, uc.emojis.Insights(report.EmojiStats)...)
	insights = append(insights, uc.sentiment.Insights(report.SentimentStats)...)
	insights = append(insights, uc.toxicity.Insights(report.ToxicityStats)...)
	return insights
}
