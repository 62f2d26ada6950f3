package exporter

import (
	"fmt"
	"io"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

// ConsoleExporter implements ports.Exporter by printing a readable summary
// of the report.
type ConsoleExporter struct {
	out io.Writer
}

// NewConsoleExporter creates a console exporter writing to out.
func NewConsoleExporter(out io.Writer) ports.Exporter {
	return &ConsoleExporter{out: out}
}

// Export prints the report summary.
func (e *ConsoleExporter) Export(report *domain.Report) error {
	basic := report.BasicStats

	fmt.Fprintln(e.out, "--- Chat Analysis ---")
	fmt.Fprintf(e.out, "Messages: %d from %d users (%s)\n", basic.TotalMessages, basic.UniqueUsers, basic.DateRange)
	fmt.Fprintf(e.out, "Words: %d total, %.1f per message, %.2f messages per day\n",
		basic.TotalWords, basic.AvgWordsPerMessage, basic.AvgMessagesPerDay)

	fmt.Fprintln(e.out, "\nParticipants:")
	for i, user := range report.UserStats.ActiveUsers {
		fmt.Fprintf(e.out, "%d. %s: %d messages (%.1f%%)\n", i+1, user.User, user.MessageCount, user.Percentage)
	}

	if len(report.KeywordStats.TrendingWords) > 0 {
		fmt.Fprintln(e.out, "\nTrending words:")
		for _, word := range report.KeywordStats.TrendingWords {
			fmt.Fprintf(e.out, "  %s (%d)\n", word.Word, word.Count)
		}
	}

	if report.EmojiStats.TotalEmojis > 0 {
		fmt.Fprintf(e.out, "\nEmojis: %d total, %d unique\n", report.EmojiStats.TotalEmojis, report.EmojiStats.UniqueEmojis)
		for _, emoji := range report.EmojiStats.TopEmojis {
			fmt.Fprintf(e.out, "  %s %s (%d)\n", emoji.Emoji, emoji.Name, emoji.Count)
		}
	}

	if len(report.SentimentStats.Overall) > 0 {
		fmt.Fprintln(e.out, "\nSentiment:")
		for _, label := range []string{"positive", "neutral", "negative"} {
			if share, ok := report.SentimentStats.Overall[label]; ok {
				fmt.Fprintf(e.out, "  %s: %.1f%%\n", label, share)
			}
		}
	}

	if report.ToxicityStats.ToxicMessages > 0 {
		fmt.Fprintf(e.out, "\nToxicity: %d messages flagged (%.1f%%)\n",
			report.ToxicityStats.ToxicMessages, report.ToxicityStats.ToxicityScore)
	}

	if len(report.Insights) > 0 {
		fmt.Fprintln(e.out, "\nInsights:")
		for _, insight := range report.Insights {
			fmt.Fprintf(e.out, "  - %s\n", insight)
		}
	}
	return nil
}
