package services

import (
	"fmt"
	"strings"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

// StatsService computes headline numbers and the chart-ready series handed
// to the external renderer.
type StatsService struct{}

// NewStatsService creates a new StatsService.
func NewStatsService() *StatsService {
	return &StatsService{}
}

// BasicStats derives the headline numbers of a conversation.
func (s *StatsService) BasicStats(messages []domain.Message) domain.BasicStats {
	if len(messages) == 0 {
		return domain.BasicStats{}
	}

	users := map[string]bool{}
	first, last := messages[0].Timestamp, messages[0].Timestamp
	totalWords, textCount, mediaCount, linkCount := 0, 0, 0, 0

	for _, msg := range messages {
		users[msg.User] = true

		if msg.Timestamp.Before(first) {
			first = msg.Timestamp
		}
		if msg.Timestamp.After(last) {
			last = msg.Timestamp
		}

		switch msg.Category {
		case domain.CategoryText:
			textCount++
			totalWords += len(strings.Fields(msg.Text))
		case domain.CategoryMedia:
			mediaCount++
		case domain.CategoryLink:
			linkCount++
		}
	}

	days := int(last.Sub(first).Hours() / 24)
	if days < 1 {
		days = 1
	}

	textDivisor := textCount
	if textDivisor < 1 {
		textDivisor = 1
	}

	return domain.BasicStats{
		TotalMessages:      len(messages),
		UniqueUsers:        len(users),
		DateRange:          fmt.Sprintf("%s to %s", first.Format(dateKeyLayout), last.Format(dateKeyLayout)),
		AvgMessagesPerDay:  round2(float64(len(messages)) / float64(days)),
		TotalWords:         totalWords,
		MediaMessages:      mediaCount,
		LinkMessages:       linkCount,
		AvgWordsPerMessage: round1(float64(totalWords) / float64(textDivisor)),
	}
}

// ChartData builds the named series for the rendering collaborator. The
// hourly histogram is dense across all 24 hours; every other series is
// sparse and absence means zero.
func (s *StatsService) ChartData(messages []domain.Message, sentiment domain.SentimentDistribution) domain.ChartData {
	charts := domain.ChartData{
		MessageTypes:  map[string]int{},
		DailyActivity: map[string]int{},
		UserActivity:  map[string]int{},
		Sentiment:     domain.SentimentDistribution{},
	}

	for _, msg := range messages {
		charts.MessageTypes[string(msg.Category)]++
		charts.DailyActivity[msg.Timestamp.Format(dateKeyLayout)]++
		charts.UserActivity[msg.User]++
		charts.HourlyActivity[msg.Timestamp.Hour()]++
	}

	for label, share := range sentiment {
		charts.Sentiment[label] = share
	}
	return charts
}
