package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/forPelevin/gomoji"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

const (
	topEmojiLimit     = 20
	userTopEmojiLimit = 5
)

var titleCaser = cases.Title(language.English)

// EmojiService extracts emojis and aggregates their usage.
//
// Extraction is code-point wise, not grapheme-cluster aware: multi
// code-point sequences such as flags or skin-tone modified emoji count as
// their constituent characters.
type EmojiService struct{}

// NewEmojiService creates a new EmojiService.
func NewEmojiService() *EmojiService {
	return &EmojiService{}
}

// AnalyzeEmojis scans every message for emoji code points and aggregates
// totals, top-20 ranking, per-user usage and a daily timeline.
func (s *EmojiService) AnalyzeEmojis(messages []domain.Message) domain.EmojiStats {
	stats := domain.EmojiStats{
		TopEmojis:      []domain.EmojiCount{},
		UserEmojiStats: map[string]domain.UserEmojiStats{},
		EmojiTimeline:  map[string]int{},
	}
	if len(messages) == 0 {
		return stats
	}

	slog.Debug("analyzing emoji usage", "message_count", len(messages))

	allEmojis := newOrderedCounter()
	perUser := map[string]*orderedCounter{}
	var userOrder []string

	for _, msg := range messages {
		found := extractEmojis(msg.Text)
		if len(found) == 0 {
			continue
		}

		counter, ok := perUser[msg.User]
		if !ok {
			counter = newOrderedCounter()
			perUser[msg.User] = counter
			userOrder = append(userOrder, msg.User)
		}

		date := msg.Timestamp.Format(dateKeyLayout)
		for _, e := range found {
			allEmojis.Add(e)
			counter.Add(e)
			stats.EmojiTimeline[date]++
		}
	}

	stats.TotalEmojis = allEmojis.Total()
	stats.UniqueEmojis = allEmojis.Unique()
	if stats.TotalEmojis == 0 {
		return stats
	}
	stats.EmojiDiversity = round3(float64(stats.UniqueEmojis) / float64(stats.TotalEmojis))

	for _, entry := range allEmojis.MostCommon(topEmojiLimit) {
		stats.TopEmojis = append(stats.TopEmojis, domain.EmojiCount{
			Emoji:      entry.Key,
			Name:       emojiName(entry.Key),
			Count:      entry.Count,
			Percentage: round1(float64(entry.Count) / float64(stats.TotalEmojis) * 100),
		})
	}

	for _, user := range userOrder {
		counter := perUser[user]
		userStats := domain.UserEmojiStats{
			TotalEmojis:  counter.Total(),
			UniqueEmojis: counter.Unique(),
			TopEmojis:    []domain.EmojiCount{},
		}
		for _, entry := range counter.MostCommon(userTopEmojiLimit) {
			userStats.TopEmojis = append(userStats.TopEmojis, domain.EmojiCount{
				Emoji: entry.Key,
				Name:  emojiName(entry.Key),
				Count: entry.Count,
			})
		}
		stats.UserEmojiStats[user] = userStats
	}

	return stats
}

// Insights produces human readable findings from emoji aggregates.
func (s *EmojiService) Insights(stats domain.EmojiStats) []string {
	if stats.TotalEmojis == 0 {
		return []string{"No emojis used in this conversation"}
	}

	insights := []string{
		fmt.Sprintf("Total emojis used: %d (%d unique)", stats.TotalEmojis, stats.UniqueEmojis),
	}
	if len(stats.TopEmojis) > 0 {
		top := stats.TopEmojis[0]
		insights = append(insights, fmt.Sprintf("Most popular emoji: %s %s (%d times)", top.Emoji, top.Name, top.Count))
	}
	switch {
	case stats.EmojiDiversity > 0.1:
		insights = append(insights, fmt.Sprintf("High emoji diversity (%.1f%%), varied emoji usage", stats.EmojiDiversity*100))
	case stats.EmojiDiversity < 0.05:
		insights = append(insights, fmt.Sprintf("Low emoji diversity (%.1f%%), repetitive emoji usage", stats.EmojiDiversity*100))
	}

	var expressiveUser string
	var mostEmojis int
	for _, user := range sortedKeys(stats.UserEmojiStats) {
		userStats := stats.UserEmojiStats[user]
		if userStats.TotalEmojis > mostEmojis {
			mostEmojis = userStats.TotalEmojis
			expressiveUser = user
		}
	}
	if expressiveUser != "" {
		insights = append(insights, fmt.Sprintf("Most expressive user: %s (%d emojis)", expressiveUser, mostEmojis))
	}
	return insights
}

// extractEmojis returns every character of the text that is a recognized
// emoji code point, in order of appearance.
func extractEmojis(text string) []string {
	var emojis []string
	for _, r := range text {
		ch := string(r)
		if _, err := gomoji.GetInfo(ch); err == nil {
			emojis = append(emojis, ch)
		}
	}
	return emojis
}

// emojiName derives a readable name from the emoji slug, e.g.
// "smiling-face" becomes "Smiling Face".
func emojiName(emojiChar string) string {
	info, err := gomoji.GetInfo(emojiChar)
	if err != nil || info.Slug == "" {
		return "Unknown Emoji"
	}
	return titleCaser.String(strings.ReplaceAll(info.Slug, "-", " "))
}
