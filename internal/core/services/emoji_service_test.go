package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

func TestEmojiService_AnalyzeEmojis(t *testing.T) {
	service := NewEmojiService()

	t.Run("counts emojis across messages", func(t *testing.T) {
		messages := []domain.Message{
			textMessage(messageAt(15, 10), "Alice", "Good morning everyone! \U0001F60A"),
			textMessage(messageAt(15, 11), "Bob", "see you later \U0001F60A\U0001F44D"),
		}

		stats := service.AnalyzeEmojis(messages)

		assert.Equal(t, 3, stats.TotalEmojis)
		assert.Equal(t, 2, stats.UniqueEmojis)

		require.NotEmpty(t, stats.TopEmojis)
		assert.Equal(t, "\U0001F60A", stats.TopEmojis[0].Emoji)
		assert.Equal(t, 2, stats.TopEmojis[0].Count)
		assert.NotEmpty(t, stats.TopEmojis[0].Name)
	})

	t.Run("per-user aggregates and timeline", func(t *testing.T) {
		messages := []domain.Message{
			textMessage(messageAt(1, 9), "Alice", "\U0001F602\U0001F602"),
			textMessage(messageAt(2, 9), "Bob", "fine \U0001F44D"),
			textMessage(messageAt(2, 10), "Bob", "no emoji here"),
		}

		stats := service.AnalyzeEmojis(messages)

		alice := stats.UserEmojiStats["Alice"]
		assert.Equal(t, 2, alice.TotalEmojis)
		assert.Equal(t, 1, alice.UniqueEmojis)

		bob := stats.UserEmojiStats["Bob"]
		assert.Equal(t, 1, bob.TotalEmojis)

		assert.Equal(t, 2, stats.EmojiTimeline["2023-12-01"])
		assert.Equal(t, 1, stats.EmojiTimeline["2023-12-02"])
	})

	t.Run("diversity is unique over total", func(t *testing.T) {
		messages := []domain.Message{
			textMessage(messageAt(1, 9), "Alice", "\U0001F602\U0001F602\U0001F602\U0001F44D"),
		}

		stats := service.AnalyzeEmojis(messages)
		assert.InDelta(t, 0.5, stats.EmojiDiversity, 1e-9)
	})

	t.Run("percentages of top emojis", func(t *testing.T) {
		messages := []domain.Message{
			textMessage(messageAt(1, 9), "Alice", "\U0001F602\U0001F602\U0001F602\U0001F44D"),
		}

		stats := service.AnalyzeEmojis(messages)
		require.Len(t, stats.TopEmojis, 2)
		assert.InDelta(t, 75.0, stats.TopEmojis[0].Percentage, 1e-9)
		assert.InDelta(t, 25.0, stats.TopEmojis[1].Percentage, 1e-9)
	})

	t.Run("no emojis at all", func(t *testing.T) {
		messages := []domain.Message{
			textMessage(messageAt(1, 9), "Alice", "plain text only"),
		}

		stats := service.AnalyzeEmojis(messages)
		assert.Zero(t, stats.TotalEmojis)
		assert.Empty(t, stats.TopEmojis)
		assert.Zero(t, stats.EmojiDiversity)
	})
}

func TestEmojiName(t *testing.T) {
	assert.Equal(t, "Thumbs Up", emojiName("\U0001F44D"))
	assert.Equal(t, "Unknown Emoji", emojiName("x"))
}

func TestEmojiService_Insights(t *testing.T) {
	service := NewEmojiService()

	t.Run("no emoji conversation", func(t *testing.T) {
		insights := service.Insights(domain.EmojiStats{})
		require.Len(t, insights, 1)
		assert.Contains(t, insights[0], "No emojis")
	})

	t.Run("names the most expressive user", func(t *testing.T) {
		stats := service.AnalyzeEmojis([]domain.Message{
			textMessage(messageAt(1, 9), "Alice", "\U0001F602\U0001F602"),
			textMessage(messageAt(1, 10), "Bob", "\U0001F44D"),
		})

		insights := service.Insights(stats)
		found := false
		for _, line := range insights {
			if line == "Most expressive user: Alice (2 emojis)" {
				found = true
			}
		}
		assert.True(t, found)
	})

	t.Run("ties resolve to the same user every run", func(t *testing.T) {
		stats := service.AnalyzeEmojis([]domain.Message{
			textMessage(messageAt(1, 9), "Zoe", "\U0001F602"),
			textMessage(messageAt(1, 10), "Alice", "\U0001F44D"),
		})

		first := service.Insights(stats)
		assert.Contains(t, first, "Most expressive user: Alice (1 emojis)")
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, service.Insights(stats))
		}
	})
}
