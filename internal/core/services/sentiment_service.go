package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const defaultBatchSize = 100

// SentimentService classifies text messages through an injected Classifier
// and aggregates overall, per-user and daily distributions.
type SentimentService struct {
	classifier ports.Classifier
	batchSize  int
}

// NewSentimentService creates a SentimentService around a classifier
// strategy. batchSize <= 0 falls back to the default of 100.
func NewSentimentService(classifier ports.Classifier, batchSize int) *SentimentService {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &SentimentService{classifier: classifier, batchSize: batchSize}
}

// AnalyzeSentiment classifies every text-category message in fixed-size
// batches. A failing batch degrades to neutral defaults for its messages
// instead of aborting the run.
func (s *SentimentService) AnalyzeSentiment(ctx context.Context, messages []domain.Message) domain.SentimentStats {
	stats := domain.SentimentStats{
		Overall:  domain.SentimentDistribution{},
		PerUser:  map[string]domain.SentimentDistribution{},
		Timeline: map[string]domain.SentimentDistribution{},
	}

	var textMessages []domain.Message
	for _, msg := range messages {
		if msg.Category == domain.CategoryText {
			textMessages = append(textMessages, msg)
		}
	}
	if len(textMessages) == 0 {
		return stats
	}

	slog.Info("analyzing sentiment", "text_message_count", len(textMessages))

	labels := make([]string, 0, len(textMessages))
	for start := 0; start < len(textMessages); start += s.batchSize {
		end := start + s.batchSize
		if end > len(textMessages) {
			end = len(textMessages)
		}

		texts := make([]string, 0, end-start)
		for _, msg := range textMessages[start:end] {
			texts = append(texts, msg.Text)
		}

		predictions, err := s.classifier.ClassifyBatch(ctx, texts)
		if err != nil {
			slog.Warn("sentiment batch failed, defaulting to neutral", "batch_start", start, "error", err)
			for range texts {
				labels = append(labels, SentimentNeutral)
			}
			continue
		}
		for _, prediction := range predictions {
			labels = append(labels, NormalizeSentimentLabel(prediction.Label))
		}
	}

	overall := map[string]int{}
	perUser := map[string]map[string]int{}
	perDate := map[string]map[string]int{}

	for i, msg := range textMessages {
		label := labels[i]
		overall[label]++

		if perUser[msg.User] == nil {
			perUser[msg.User] = map[string]int{}
		}
		perUser[msg.User][label]++

		date := msg.Timestamp.Format(dateKeyLayout)
		if perDate[date] == nil {
			perDate[date] = map[string]int{}
		}
		perDate[date][label]++
	}

	stats.Overall = toDistribution(overall)
	for user, counts := range perUser {
		stats.PerUser[user] = toDistribution(counts)
	}
	for date, counts := range perDate {
		stats.Timeline[date] = toDistribution(counts)
	}
	return stats
}

// Insights produces human readable findings from sentiment aggregates.
func (s *SentimentService) Insights(stats domain.SentimentStats) []string {
	if len(stats.Overall) == 0 {
		return []string{"No sentiment data available"}
	}

	dominant := ""
	var dominantShare float64
	for _, label := range sortedKeys(stats.Overall) {
		share := stats.Overall[label]
		if share > dominantShare {
			dominantShare = share
			dominant = label
		}
	}
	insights := []string{
		fmt.Sprintf("Overall conversation is %s (%.1f%%)", dominant, dominantShare),
	}

	var positiveUser, negativeUser string
	var maxPositive, maxNegative float64
	for _, user := range sortedKeys(stats.PerUser) {
		dist := stats.PerUser[user]
		if dist[SentimentPositive] > maxPositive {
			maxPositive = dist[SentimentPositive]
			positiveUser = user
		}
		if dist[SentimentNegative] > maxNegative {
			maxNegative = dist[SentimentNegative]
			negativeUser = user
		}
	}
	if positiveUser != "" {
		insights = append(insights, fmt.Sprintf("Most positive user: %s (%.1f%% positive)", positiveUser, maxPositive))
	}
	if negativeUser != "" && maxNegative > 20 {
		insights = append(insights, fmt.Sprintf("Most negative user: %s (%.1f%% negative)", negativeUser, maxNegative))
	}
	return insights
}

// NormalizeSentimentLabel maps arbitrary classifier labels onto the three
// canonical ones. Any label containing POSITIVE, POS or 1 is positive; any
// containing NEGATIVE, NEG or 0 is negative; everything else is neutral.
func NormalizeSentimentLabel(label string) string {
	upper := strings.ToUpper(label)
	switch {
	case strings.Contains(upper, "POSITIVE"), strings.Contains(upper, "POS"), strings.Contains(upper, "1"):
		return SentimentPositive
	case strings.Contains(upper, "NEGATIVE"), strings.Contains(upper, "NEG"), strings.Contains(upper, "0"):
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// toDistribution converts label counts to percentage shares rounded to one
// decimal.
func toDistribution(counts map[string]int) domain.SentimentDistribution {
	total := 0
	for _, n := range counts {
		total += n
	}
	dist := domain.SentimentDistribution{}
	if total == 0 {
		return dist
	}
	for label, n := range counts {
		dist[label] = round1(float64(n) / float64(total) * 100)
	}
	return dist
}
