package services

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

const (
	trendingPoolSize  = 50
	trendingLimit     = 20
	wordFrequencyCap  = 100
	userTopWordsLimit = 5
	// enough text for a stable language guess
	languageSampleLimit = 4000
)

var nonWordRunes = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// KeywordService computes word frequencies, trending words and per-user
// vocabulary profiles.
type KeywordService struct{}

// NewKeywordService creates a new KeywordService.
func NewKeywordService() *KeywordService {
	return &KeywordService{}
}

// AnalyzeKeywords is a pure function of the message sequence: the same
// input always yields the same aggregates.
func (s *KeywordService) AnalyzeKeywords(messages []domain.Message) domain.KeywordStats {
	stats := domain.KeywordStats{
		TrendingWords:  []domain.WordCount{},
		WordFrequency:  map[string]int{},
		UserVocabulary: map[string]domain.UserVocabulary{},
	}
	if len(messages) == 0 {
		return stats
	}

	slog.Debug("analyzing keywords", "message_count", len(messages))

	// Trending words and the raw frequency table only look at text
	// messages; vocabulary profiles cover every message a user sent.
	wordCounts := newOrderedCounter()
	totalWords := 0
	var languageSample strings.Builder

	for _, msg := range messages {
		if msg.Category != domain.CategoryText {
			continue
		}
		for _, word := range extractWords(msg.Text) {
			wordCounts.Add(word)
			totalWords++
		}
		if languageSample.Len() < languageSampleLimit {
			languageSample.WriteString(msg.Text)
			languageSample.WriteByte(' ')
		}
	}

	for _, entry := range wordCounts.MostCommon(trendingPoolSize) {
		if stopWords[entry.Key] {
			continue
		}
		stats.TrendingWords = append(stats.TrendingWords, domain.WordCount{
			Word:       entry.Key,
			Count:      entry.Count,
			Percentage: round2(float64(entry.Count) / float64(totalWords) * 100),
		})
		if len(stats.TrendingWords) == trendingLimit {
			break
		}
	}

	for _, entry := range wordCounts.MostCommon(wordFrequencyCap) {
		stats.WordFrequency[entry.Key] = entry.Count
	}

	stats.UserVocabulary = s.userVocabulary(messages)

	if sample := strings.TrimSpace(languageSample.String()); sample != "" {
		info := whatlanggo.Detect(sample)
		stats.Language = info.Lang.String()
		stats.LanguageScore = round2(info.Confidence)
	}

	return stats
}

func (s *KeywordService) userVocabulary(messages []domain.Message) map[string]domain.UserVocabulary {
	perUser := map[string]*orderedCounter{}
	var userOrder []string

	for _, msg := range messages {
		counter, ok := perUser[msg.User]
		if !ok {
			counter = newOrderedCounter()
			perUser[msg.User] = counter
			userOrder = append(userOrder, msg.User)
		}
		for _, word := range extractWords(msg.Text) {
			counter.Add(word)
		}
	}

	vocabulary := make(map[string]domain.UserVocabulary, len(userOrder))
	for _, user := range userOrder {
		counter := perUser[user]
		total := counter.Total()

		richness := 0.0
		if total > 0 {
			richness = round3(float64(counter.Unique()) / float64(total))
		}

		topWords := []domain.WordCount{}
		for _, entry := range counter.MostCommon(10) {
			if stopWords[entry.Key] {
				continue
			}
			topWords = append(topWords, domain.WordCount{Word: entry.Key, Count: entry.Count})
			if len(topWords) == userTopWordsLimit {
				break
			}
		}

		vocabulary[user] = domain.UserVocabulary{
			TotalWords:         total,
			UniqueWords:        counter.Unique(),
			VocabularyRichness: richness,
			TopWords:           topWords,
		}
	}
	return vocabulary
}

// ExtractKeywords returns the top non-stop words of a single text blob.
func (s *KeywordService) ExtractKeywords(text string, topN int) []domain.WordCount {
	if text == "" {
		return []domain.WordCount{}
	}

	counter := newOrderedCounter()
	for _, word := range extractWords(text) {
		counter.Add(word)
	}

	keywords := []domain.WordCount{}
	for _, entry := range counter.MostCommon(-1) {
		if stopWords[entry.Key] {
			continue
		}
		keywords = append(keywords, domain.WordCount{Word: entry.Key, Count: entry.Count})
		if len(keywords) == topN {
			break
		}
	}
	return keywords
}

// Insights produces human readable findings from keyword aggregates.
func (s *KeywordService) Insights(stats domain.KeywordStats) []string {
	if len(stats.TrendingWords) == 0 {
		return []string{"No significant trending words found"}
	}

	top := stats.TrendingWords[0]
	insights := []string{
		fmt.Sprintf("Most used word: '%s' (%d times)", top.Word, top.Count),
	}

	var richestUser, talkativeUser string
	var richestScore float64
	var mostWords int
	for _, user := range sortedKeys(stats.UserVocabulary) {
		vocab := stats.UserVocabulary[user]
		if vocab.VocabularyRichness > richestScore || richestUser == "" {
			richestScore = vocab.VocabularyRichness
			richestUser = user
		}
		if vocab.TotalWords > mostWords || talkativeUser == "" {
			mostWords = vocab.TotalWords
			talkativeUser = user
		}
	}
	if richestUser != "" {
		insights = append(insights, fmt.Sprintf("Richest vocabulary: %s (%.1f%% unique words)", richestUser, richestScore*100))
	}
	if talkativeUser != "" {
		insights = append(insights, fmt.Sprintf("Most words used: %s (%d total words)", talkativeUser, mostWords))
	}
	return insights
}

// extractWords lowercases the text, replaces anything that is not a letter,
// digit or whitespace with a space and keeps alphabetic tokens longer than
// two characters.
func extractWords(text string) []string {
	cleaned := nonWordRunes.ReplaceAllString(strings.ToLower(text), " ")

	var words []string
	for _, token := range strings.Fields(cleaned) {
		if runeLen(token) > 2 && isAlpha(token) {
			words = append(words, token)
		}
	}
	return words
}

func runeLen(s string) int {
	return len([]rune(s))
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
