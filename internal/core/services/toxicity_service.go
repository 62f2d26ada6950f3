package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/classifier"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

const (
	toxicExampleLimit     = 5
	toxicExampleMaxLength = 100
	minToxicityLength     = 3

	exampleTimestampLayout = "2006-01-02 15:04"
)

// ToxicityService flags toxic text messages. A model-backed classifier is
// optional: when it is absent or fails for a message, detection falls
// through to the fixed rule patterns.
type ToxicityService struct {
	classifier ports.Classifier // nil means rule-based only
	threshold  float64
}

// NewToxicityService creates a ToxicityService. Pass a nil classifier to
// run purely rule based. threshold is the minimum model confidence for a
// toxic verdict; values outside (0, 1) fall back to 0.7.
func NewToxicityService(clf ports.Classifier, threshold float64) *ToxicityService {
	if threshold <= 0 || threshold >= 1 {
		threshold = 0.7
	}
	return &ToxicityService{classifier: clf, threshold: threshold}
}

// AnalyzeToxicity inspects every text-category message and aggregates
// toxic counts, the overall score, per-user counters and up to five
// redacted examples in processing order.
func (s *ToxicityService) AnalyzeToxicity(ctx context.Context, messages []domain.Message) domain.ToxicityStats {
	stats := domain.ToxicityStats{
		UserToxicity:  map[string]domain.UserToxicity{},
		ToxicExamples: []domain.ToxicExample{},
	}
	if len(messages) == 0 {
		return stats
	}

	slog.Info("analyzing message toxicity", "message_count", len(messages))

	// every participant gets an entry, even those without text messages
	for _, msg := range messages {
		if _, ok := stats.UserToxicity[msg.User]; !ok {
			stats.UserToxicity[msg.User] = domain.UserToxicity{}
		}
	}

	totalTextMessages := 0
	for _, msg := range messages {
		if msg.Category != domain.CategoryText {
			continue
		}
		totalTextMessages++

		entry := stats.UserToxicity[msg.User]
		entry.TotalMessages++

		if s.isToxic(ctx, msg.Text) {
			stats.ToxicMessages++
			entry.ToxicCount++

			if len(stats.ToxicExamples) < toxicExampleLimit {
				stats.ToxicExamples = append(stats.ToxicExamples, domain.ToxicExample{
					User:      msg.User,
					Message:   truncateMessage(msg.Text, toxicExampleMaxLength),
					Timestamp: msg.Timestamp.Format(exampleTimestampLayout),
				})
			}
		}
		stats.UserToxicity[msg.User] = entry
	}

	for user, entry := range stats.UserToxicity {
		if entry.TotalMessages > 0 {
			entry.ToxicityPercentage = round1(float64(entry.ToxicCount) / float64(entry.TotalMessages) * 100)
		}
		stats.UserToxicity[user] = entry
	}

	if totalTextMessages > 0 {
		stats.ToxicityScore = round1(float64(stats.ToxicMessages) / float64(totalTextMessages) * 100)
	}
	return stats
}

// isToxic decides one message. Messages shorter than three characters
// after trimming are never toxic.
func (s *ToxicityService) isToxic(ctx context.Context, text string) bool {
	if len(strings.TrimSpace(text)) < minToxicityLength {
		return false
	}

	if s.classifier != nil {
		prediction, err := s.classifier.Classify(ctx, text)
		if err == nil {
			return strings.Contains(strings.ToUpper(prediction.Label), "TOXIC") &&
				prediction.Confidence > s.threshold
		}
		slog.Warn("toxicity classifier failed, using rule-based detection", "error", err)
	}

	return classifier.MatchesToxicPattern(text)
}

// Insights produces human readable findings from toxicity aggregates.
func (s *ToxicityService) Insights(stats domain.ToxicityStats) []string {
	if stats.ToxicMessages == 0 {
		return []string{"No toxic content detected, this is a healthy conversation"}
	}

	insights := []string{
		fmt.Sprintf("%d potentially toxic messages detected (%.1f%% of total)", stats.ToxicMessages, stats.ToxicityScore),
	}

	var worstUser string
	var worstShare float64
	for _, user := range sortedKeys(stats.UserToxicity) {
		entry := stats.UserToxicity[user]
		if entry.ToxicityPercentage > worstShare {
			worstShare = entry.ToxicityPercentage
			worstUser = user
		}
	}
	if worstUser != "" && worstShare > 10 {
		insights = append(insights, fmt.Sprintf("Most toxic user: %s (%.1f%% toxic messages)", worstUser, worstShare))
	}

	switch {
	case stats.ToxicityScore > 10:
		insights = append(insights, "Consider moderating this conversation or addressing toxic behavior")
	case stats.ToxicityScore > 5:
		insights = append(insights, "Some concerning messages detected, monitor for escalation")
	}
	return insights
}

// truncateMessage truncates at a rune boundary so multi-byte text never
// yields invalid UTF-8.
func truncateMessage(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
