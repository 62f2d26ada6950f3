// Package classifier provides the pluggable label+confidence capability
// consumed by the sentiment and toxicity analyzers. Two strategies exist:
// a model-backed classifier and the rule-based ones below. The strategy is
// chosen once at configuration time and injected, never branched per call.
package classifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

var positiveWords = map[string]bool{
	"good": true, "great": true, "awesome": true, "excellent": true,
	"amazing": true, "wonderful": true, "fantastic": true, "love": true,
	"like": true, "happy": true, "joy": true, "pleased": true,
	"excited": true, "glad": true, "perfect": true, "best": true,
	"beautiful": true, "nice": true, "cool": true, "thanks": true,
	"thank": true, "appreciate": true, "grateful": true, "wow": true,
	"yay": true, "haha": true, "lol": true, "congratulations": true,
	"congrats": true, "well": true, "super": true, "brilliant": true,
	"outstanding": true, "magnificent": true, "marvelous": true,
	"terrific": true, "delighted": true, "thrilled": true, "ecstatic": true,
	"cheerful": true, "optimistic": true, "positive": true, "success": true,
	"win": true, "victory": true, "achieve": true, "accomplished": true,
	"proud": true, "satisfying": true, "blessed": true, "lucky": true,
	"fortunate": true,
}

var negativeWords = map[string]bool{
	"bad": true, "terrible": true, "awful": true, "horrible": true,
	"hate": true, "dislike": true, "angry": true, "mad": true, "sad": true,
	"upset": true, "disappointed": true, "frustrated": true,
	"annoyed": true, "irritated": true, "worried": true, "concerned": true,
	"stressed": true, "depressed": true, "miserable": true, "unhappy": true,
	"sorry": true, "apologize": true, "mistake": true, "error": true,
	"wrong": true, "fail": true, "failure": true, "lost": true,
	"lose": true, "broken": true, "damage": true, "hurt": true,
	"pain": true, "sick": true, "ill": true, "problem": true,
	"issue": true, "trouble": true, "difficult": true, "hard": true,
	"challenging": true, "struggle": true, "tough": true, "worse": true,
	"worst": true, "disgusting": true, "gross": true, "yuck": true,
	"boring": true, "dull": true, "stupid": true, "dumb": true,
}

// RuleSentiment labels text by counting occurrences of fixed positive and
// negative word lists. It is deterministic: the same text always yields
// the same prediction.
type RuleSentiment struct{}

// NewRuleSentiment creates a rule-based sentiment classifier.
func NewRuleSentiment() ports.Classifier {
	return &RuleSentiment{}
}

// Classify assigns the majority polarity of the matched words and a
// confidence proportional to how decisive the majority is.
func (c *RuleSentiment) Classify(_ context.Context, text string) (domain.Prediction, error) {
	positive, negative := 0, 0
	words := strings.Fields(strings.ToLower(text))
	for _, word := range words {
		if positiveWords[word] {
			positive++
		} else if negativeWords[word] {
			negative++
		}
	}

	switch {
	case positive > negative:
		return domain.Prediction{Label: "POSITIVE", Confidence: scoreConfidence(positive-negative, len(words))}, nil
	case negative > positive:
		return domain.Prediction{Label: "NEGATIVE", Confidence: scoreConfidence(negative-positive, len(words))}, nil
	default:
		return domain.Prediction{Label: "NEUTRAL", Confidence: 0.5}, nil
	}
}

// ClassifyBatch classifies every text in order.
func (c *RuleSentiment) ClassifyBatch(ctx context.Context, texts []string) ([]domain.Prediction, error) {
	predictions := make([]domain.Prediction, len(texts))
	for i, text := range texts {
		prediction, err := c.Classify(ctx, text)
		if err != nil {
			return nil, err
		}
		predictions[i] = prediction
	}
	return predictions, nil
}

// scoreConfidence maps a word-count margin onto (0.5, 0.95].
func scoreConfidence(margin, total int) float64 {
	if total == 0 {
		return 0.5
	}
	confidence := 0.5 + float64(margin)/float64(total)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return confidence
}

// ToxicPatterns are word-boundary matched harassment and self-harm phrase
// patterns used for rule-based toxicity detection. Kept deliberately small
// to avoid flagging ordinary disagreement.
var ToxicPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(hate|stupid|idiot|dumb|moron)\b`),
	regexp.MustCompile(`(?i)\b(shut up|shutup)\b`),
	regexp.MustCompile(`(?i)\b(kill yourself|kys)\b`),
	regexp.MustCompile(`(?i)\b(go die|die)\b`),
}

// MatchesToxicPattern reports whether the text trips any toxic pattern.
func MatchesToxicPattern(text string) bool {
	for _, pattern := range ToxicPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
