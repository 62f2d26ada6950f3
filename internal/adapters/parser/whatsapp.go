package parser

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

// ErrNoMessages is returned when not a single message could be extracted
// from a non-empty export. Callers surface it as an unparseable file, not
// as a crash.
var ErrNoMessages = errors.New("no messages could be parsed from input")

// Export formats differ per platform and locale, so the line patterns are
// tried in a fixed order: AM/PM qualified patterns come before the bare
// 24-hour ones, otherwise a looser pattern could shadow a stricter match.
var linePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4}),\s(\d{1,2}:\d{2}\s(?:AM|PM))\s-\s([^:]+):\s(.+)$`),
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{4}),\s(\d{1,2}:\d{2})\s-\s([^:]+):\s(.+)$`),
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2}),\s(\d{1,2}:\d{2}\s(?:AM|PM))\s-\s([^:]+):\s(.+)$`),
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2}),\s(\d{1,2}:\d{2})\s-\s([^:]+):\s(.+)$`),
	regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{4}),\s(\d{1,2}:\d{2}:\d{2})\]\s([^:]+):\s(.+)$`),
	regexp.MustCompile(`^(\d{1,2}\.\d{1,2}\.\d{2}),\s(\d{1,2}:\d{2})\s-\s([^:]+):\s(.+)$`),
}

var dateLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"1/2/2006",
	"2.1.06",
}

var timeLayouts = []string{
	"3:04 PM",
	"15:04",
	"15:04:05",
}

// maximum number of unmatched lines echoed to the log
const unmatchedLogLimit = 10

// WhatsAppParser implements ports.Parser for plain-text WhatsApp exports.
type WhatsAppParser struct{}

// NewWhatsAppParser creates a new WhatsAppParser.
func NewWhatsAppParser() ports.Parser {
	return &WhatsAppParser{}
}

// Parse walks the export line by line. A line that matches one of the
// header patterns and resolves to a valid timestamp starts a new message;
// any other line is merged into the message being accumulated, or dropped
// when there is none.
func (p *WhatsAppParser) Parse(data []byte) ([]domain.Message, error) {
	text := strings.ToValidUTF8(string(data), "")
	lines := strings.Split(strings.TrimSpace(text), "\n")

	var messages []domain.Message
	var current *domain.Message
	unmatched := 0

	for lineNum, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if msg, ok := matchHeader(line); ok {
			if current != nil {
				messages = append(messages, *current)
			}
			current = msg
			continue
		}

		// Continuation of a multi-line message, or noise before the
		// first header.
		if current != nil {
			current.Text += " " + line
		} else {
			unmatched++
			if unmatched < unmatchedLogLimit {
				slog.Debug("unmatched chat line", "line_number", lineNum+1, "content", truncate(line, 100))
			}
		}
	}

	if current != nil {
		messages = append(messages, *current)
	}

	slog.Info("chat parsing complete", "parsed", len(messages), "unmatched", unmatched)

	if len(messages) == 0 {
		return nil, ErrNoMessages
	}
	return messages, nil
}

// matchHeader tries every line pattern in priority order. A pattern match
// only counts when the captured date and time resolve to a real timestamp;
// otherwise the line falls back to continuation handling.
func matchHeader(line string) (*domain.Message, bool) {
	for _, pattern := range linePatterns {
		groups := pattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}

		ts, ok := resolveTimestamp(groups[1], groups[2])
		if !ok {
			return nil, false
		}

		body := strings.TrimSpace(groups[4])
		return &domain.Message{
			Timestamp: ts,
			User:      strings.TrimSpace(groups[3]),
			Text:      body,
			Category:  classify(body),
		}, true
	}
	return nil, false
}

// resolveTimestamp tries every supported date/time layout combination.
func resolveTimestamp(dateStr, timeStr string) (time.Time, bool) {
	for _, dateLayout := range dateLayouts {
		for _, timeLayout := range timeLayouts {
			ts, err := time.Parse(dateLayout+" "+timeLayout, dateStr+" "+timeStr)
			if err == nil {
				return ts, true
			}
		}
	}
	return time.Time{}, false
}

// classify assigns a message category from its body. Marker classes are
// checked in a fixed precedence: media beats document beats link beats
// location beats the text default.
func classify(body string) domain.Category {
	lower := strings.ToLower(body)

	switch {
	case containsAny(lower, "<media omitted>", "image omitted", "video omitted", "audio omitted"):
		return domain.CategoryMedia
	case containsAny(lower, "document omitted", "contact card omitted"):
		return domain.CategoryDocument
	case strings.Contains(lower, "http"):
		return domain.CategoryLink
	case containsAny(lower, "location:", "live location"):
		return domain.CategoryLocation
	default:
		return domain.CategoryText
	}
}

func containsAny(s string, markers ...string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
