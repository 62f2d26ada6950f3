package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

func TestStatsService_BasicStats(t *testing.T) {
	service := NewStatsService()

	t.Run("headline numbers", func(t *testing.T) {
		messages := []domain.Message{
			textMessage(messageAt(1, 9), "Alice", "good morning everyone"),
			{Timestamp: messageAt(2, 10), User: "Bob", Text: "<Media omitted>", Category: domain.CategoryMedia},
			{Timestamp: messageAt(3, 11), User: "Bob", Text: "https://example.com", Category: domain.CategoryLink},
			textMessage(messageAt(4, 12), "Alice", "see you"),
		}

		stats := service.BasicStats(messages)

		assert.Equal(t, 4, stats.TotalMessages)
		assert.Equal(t, 2, stats.UniqueUsers)
		assert.Equal(t, "2023-12-01 to 2023-12-04", stats.DateRange)
		assert.Equal(t, 1, stats.MediaMessages)
		assert.Equal(t, 1, stats.LinkMessages)
		// words counted over text messages only
		assert.Equal(t, 5, stats.TotalWords)
		assert.InDelta(t, 2.5, stats.AvgWordsPerMessage, 1e-9)
	})

	t.Run("single day span counts as one day", func(t *testing.T) {
		messages := []domain.Message{
			textMessage(messageAt(1, 9), "Alice", "hi"),
			textMessage(messageAt(1, 10), "Alice", "bye"),
		}

		stats := service.BasicStats(messages)
		assert.InDelta(t, 2.0, stats.AvgMessagesPerDay, 1e-9)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, domain.BasicStats{}, service.BasicStats(nil))
	})
}

func TestStatsService_ChartData(t *testing.T) {
	service := NewStatsService()

	messages := []domain.Message{
		textMessage(messageAt(1, 9), "Alice", "hi"),
		textMessage(messageAt(1, 9), "Bob", "hello"),
		{Timestamp: messageAt(2, 21), User: "Bob", Text: "<Media omitted>", Category: domain.CategoryMedia},
	}
	sentiment := domain.SentimentDistribution{SentimentPositive: 66.7, SentimentNeutral: 33.3}

	charts := service.ChartData(messages, sentiment)

	t.Run("sparse series", func(t *testing.T) {
		assert.Equal(t, map[string]int{"text": 2, "media": 1}, charts.MessageTypes)
		assert.Equal(t, map[string]int{"2023-12-01": 2, "2023-12-02": 1}, charts.DailyActivity)
		assert.Equal(t, map[string]int{"Alice": 1, "Bob": 2}, charts.UserActivity)
	})

	t.Run("hourly histogram is dense with 24 buckets", func(t *testing.T) {
		require.Len(t, charts.HourlyActivity, 24)
		assert.Equal(t, 2, charts.HourlyActivity[9])
		assert.Equal(t, 1, charts.HourlyActivity[21])
		assert.Zero(t, charts.HourlyActivity[0])
	})

	t.Run("sentiment copied into the chart payload", func(t *testing.T) {
		assert.Equal(t, domain.SentimentDistribution(map[string]float64{
			SentimentPositive: 66.7,
			SentimentNeutral:  33.3,
		}), charts.Sentiment)
	})
}
