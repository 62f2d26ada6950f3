package domain

import "time"

// Category is the kind of content a message carries. It is assigned once
// when the message is parsed and never recomputed afterwards.
type Category string

const (
	CategoryText     Category = "text"
	CategoryMedia    Category = "media"
	CategoryDocument Category = "document"
	CategoryLink     Category = "link"
	CategoryLocation Category = "location"
)

// Message is one parsed chat message. Continuation lines are already merged
// into Text, separated by a single space. Timestamp is always valid: lines
// whose date or time could not be resolved are never emitted by the parser.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Text      string    `json:"text"`
	Category  Category  `json:"category"`
}

// Prediction is the result of classifying a single piece of text.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// UserActivity holds the message count of one user and its share of the
// whole conversation. Percentage is kept unrounded; rounding happens at
// presentation time.
type UserActivity struct {
	User         string  `json:"user"`
	MessageCount int     `json:"message_count"`
	Percentage   float64 `json:"percentage"`
}

// UserStats aggregates per-user participation.
// ActivityTimeline maps calendar date ("2006-01-02") to user to message
// count. Absent date/user combinations mean zero.
type UserStats struct {
	ActiveUsers      []UserActivity            `json:"active_users"`
	TopUser          *UserActivity             `json:"top_user,omitempty"`
	ActivityTimeline map[string]map[string]int `json:"activity_timeline"`
}

// WordCount is a word with its frequency. Percentage is only populated for
// trending words.
type WordCount struct {
	Word       string  `json:"word"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage,omitempty"`
}

// UserVocabulary describes the lexical profile of one user.
type UserVocabulary struct {
	TotalWords         int         `json:"total_words"`
	UniqueWords        int         `json:"unique_words"`
	VocabularyRichness float64     `json:"vocabulary_richness"`
	TopWords           []WordCount `json:"top_words"`
}

// KeywordStats aggregates word usage across the conversation.
// WordFrequency holds raw counts including stop words, capped at the 100
// most frequent tokens. TrendingWords excludes stop words.
type KeywordStats struct {
	TrendingWords  []WordCount               `json:"trending_words"`
	WordFrequency  map[string]int            `json:"word_frequency"`
	UserVocabulary map[string]UserVocabulary `json:"user_vocabulary"`
	Language       string                    `json:"language,omitempty"`
	LanguageScore  float64                   `json:"language_score,omitempty"`
}

// EmojiCount is a single emoji with its human readable name and frequency.
type EmojiCount struct {
	Emoji      string  `json:"emoji"`
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage,omitempty"`
}

// UserEmojiStats holds emoji usage for one user.
type UserEmojiStats struct {
	TotalEmojis  int          `json:"total_emojis"`
	UniqueEmojis int          `json:"unique_emojis"`
	TopEmojis    []EmojiCount `json:"top_emojis"`
}

// EmojiStats aggregates emoji usage. EmojiTimeline maps calendar date to
// the number of emojis used that day.
type EmojiStats struct {
	TotalEmojis    int                       `json:"total_emojis"`
	UniqueEmojis   int                       `json:"unique_emojis"`
	TopEmojis      []EmojiCount              `json:"top_emojis"`
	UserEmojiStats map[string]UserEmojiStats `json:"user_emoji_stats"`
	EmojiTimeline  map[string]int            `json:"emoji_timeline"`
	EmojiDiversity float64                   `json:"emoji_diversity"`
}

// SentimentDistribution maps a normalized sentiment label (positive,
// negative, neutral) to its share in percent, rounded to one decimal.
type SentimentDistribution map[string]float64

// SentimentStats aggregates sentiment across the conversation.
// Timeline maps calendar date to that day's label distribution.
type SentimentStats struct {
	Overall  SentimentDistribution            `json:"overall_sentiment"`
	PerUser  map[string]SentimentDistribution `json:"user_sentiment"`
	Timeline map[string]SentimentDistribution `json:"sentiment_timeline"`
}

// ToxicExample is a redacted sample of a flagged message. The message body
// is truncated to 100 characters with an ellipsis marker when longer.
type ToxicExample struct {
	User      string `json:"user"`
	Message   string `json:"message"`
	Timestamp string `json:"datetime"`
}

// UserToxicity holds toxicity counters for one user, computed over that
// user's text messages only.
type UserToxicity struct {
	ToxicCount         int     `json:"toxic_count"`
	TotalMessages      int     `json:"total_messages"`
	ToxicityPercentage float64 `json:"toxicity_percentage"`
}

// ToxicityStats aggregates toxicity findings. ToxicExamples keeps at most
// the first five flagged messages in processing order.
type ToxicityStats struct {
	ToxicMessages int                     `json:"toxic_messages"`
	ToxicityScore float64                 `json:"toxicity_score"`
	UserToxicity  map[string]UserToxicity `json:"user_toxicity"`
	ToxicExamples []ToxicExample          `json:"toxic_examples"`
}

// BasicStats holds headline numbers about the conversation.
type BasicStats struct {
	TotalMessages      int     `json:"total_messages"`
	UniqueUsers        int     `json:"unique_users"`
	DateRange          string  `json:"date_range"`
	AvgMessagesPerDay  float64 `json:"avg_messages_per_day"`
	TotalWords         int     `json:"total_words"`
	MediaMessages      int     `json:"media_messages"`
	LinkMessages       int     `json:"link_messages"`
	AvgWordsPerMessage float64 `json:"avg_words_per_message"`
}

// ChartData holds chart-ready series for an external renderer. All series
// except HourlyActivity are sparse; HourlyActivity is dense across all 24
// hours with zero-filled buckets.
type ChartData struct {
	MessageTypes   map[string]int        `json:"message_types"`
	DailyActivity  map[string]int        `json:"daily_activity"`
	UserActivity   map[string]int        `json:"user_activity"`
	HourlyActivity [24]int               `json:"hourly_activity"`
	Sentiment      SentimentDistribution `json:"sentiment"`
}

// Report bundles every analysis result of a single run. Reports are
// immutable once assembled and independent between runs.
type Report struct {
	ID             string         `json:"id,omitempty"`
	BasicStats     BasicStats     `json:"basic_stats"`
	UserStats      UserStats      `json:"user_stats"`
	KeywordStats   KeywordStats   `json:"keyword_stats"`
	EmojiStats     EmojiStats     `json:"emoji_stats"`
	SentimentStats SentimentStats `json:"sentiment_stats"`
	ToxicityStats  ToxicityStats  `json:"toxicity_stats"`
	Charts         ChartData      `json:"charts"`
	WordCloudPNG   string         `json:"wordcloud_img,omitempty"`
	Insights       []string       `json:"insights,omitempty"`
	ProcessedAt    time.Time      `json:"processed_at"`
}
