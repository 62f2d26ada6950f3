package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		BasicStats: domain.BasicStats{
			TotalMessages:      3,
			UniqueUsers:        2,
			DateRange:          "2023-12-15 to 2023-12-15",
			AvgMessagesPerDay:  3,
			TotalWords:         8,
			MediaMessages:      1,
			AvgWordsPerMessage: 4,
		},
		UserStats: domain.UserStats{
			ActiveUsers: []domain.UserActivity{
				{User: "Alice", MessageCount: 2, Percentage: 66.67},
				{User: "Bob", MessageCount: 1, Percentage: 33.33},
			},
		},
		KeywordStats: domain.KeywordStats{
			TrendingWords: []domain.WordCount{
				{Word: "morning", Count: 2},
				{Word: "everyone", Count: 2},
			},
		},
		SentimentStats: domain.SentimentStats{
			Overall: domain.SentimentDistribution{
				"positive": 50.0,
				"neutral":  50.0,
			},
		},
		Insights: []string{"Most active user: Alice (2 messages, 66.7% of the conversation)"},
	}
}

func TestReportToCSV(t *testing.T) {
	data, err := ReportToCSV(sampleReport())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Type", "Key", "Value"}, records[0])

	byKey := map[string][]string{}
	for _, record := range records[1:] {
		require.Len(t, record, 3)
		byKey[record[1]] = record
	}

	assert.Equal(t, []string{"Basic Stats", "total_messages", "3"}, byKey["total_messages"])
	assert.Equal(t, []string{"Basic Stats", "date_range", "2023-12-15 to 2023-12-15"}, byKey["date_range"])
	assert.Equal(t, []string{"Sentiment", "positive", "50"}, byKey["positive"])
	assert.Equal(t, []string{"Keyword", "morning", "2"}, byKey["morning"])

	// absent labels are omitted, not zero-filled
	_, hasNegative := byKey["negative"]
	assert.False(t, hasNegative)
}

func TestReportToJSON(t *testing.T) {
	data, err := ReportToJSON(sampleReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	basic, ok := decoded["basic_stats"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 3, basic["total_messages"])
}

func TestConsoleExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleExporter(&buf).Export(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Messages: 3 from 2 users")
	assert.Contains(t, out, "1. Alice: 2 messages (66.7%)")
	assert.Contains(t, out, "morning (2)")
	assert.Contains(t, out, "positive: 50.0%")
	assert.Contains(t, out, "Most active user: Alice")
	// no toxicity section for a clean conversation
	assert.NotContains(t, out, "Toxicity")
}
