package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

// ReportToCSV renders a report as flat (Type, Key, Value) triples covering
// basic stats, the sentiment distribution and the trending keywords.
func ReportToCSV(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{{"Type", "Key", "Value"}}

	basic := report.BasicStats
	rows = append(rows,
		[]string{"Basic Stats", "total_messages", fmt.Sprintf("%d", basic.TotalMessages)},
		[]string{"Basic Stats", "unique_users", fmt.Sprintf("%d", basic.UniqueUsers)},
		[]string{"Basic Stats", "date_range", basic.DateRange},
		[]string{"Basic Stats", "avg_messages_per_day", fmt.Sprintf("%g", basic.AvgMessagesPerDay)},
		[]string{"Basic Stats", "total_words", fmt.Sprintf("%d", basic.TotalWords)},
		[]string{"Basic Stats", "media_messages", fmt.Sprintf("%d", basic.MediaMessages)},
		[]string{"Basic Stats", "link_messages", fmt.Sprintf("%d", basic.LinkMessages)},
		[]string{"Basic Stats", "avg_words_per_message", fmt.Sprintf("%g", basic.AvgWordsPerMessage)},
	)

	// fixed label order keeps exports diffable between runs
	for _, label := range []string{"positive", "negative", "neutral"} {
		if share, ok := report.SentimentStats.Overall[label]; ok {
			rows = append(rows, []string{"Sentiment", label, fmt.Sprintf("%g", share)})
		}
	}

	for _, keyword := range report.KeywordStats.TrendingWords {
		rows = append(rows, []string{"Keyword", keyword.Word, fmt.Sprintf("%d", keyword.Count)})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
