// Package visual renders the word-cloud image for a report. Rendering is
// best effort: any failure degrades to the feature being omitted from the
// report, never to a failed analysis.
package visual

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/psykhi/wordclouds"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

var urlPattern = regexp.MustCompile(`http\S+|www\S+|https\S+`)
var nonAlphaPattern = regexp.MustCompile(`[^a-zA-Z\s]`)

var cloudColors = []color.Color{
	color.RGBA{R: 0x44, G: 0x01, B: 0x54, A: 0xff},
	color.RGBA{R: 0x3b, G: 0x52, B: 0x8b, A: 0xff},
	color.RGBA{R: 0x21, G: 0x91, B: 0x8c, A: 0xff},
	color.RGBA{R: 0x5e, G: 0xc9, B: 0x62, A: 0xff},
	color.RGBA{R: 0xfd, G: 0xe7, B: 0x25, A: 0xff},
}

// Options configures the word-cloud renderer.
type Options struct {
	FontPath string
	Width    int
	Height   int
	MaxWords int
}

// WordCloud implements ports.CloudRenderer on top of the wordclouds
// drawing library.
type WordCloud struct {
	opts      Options
	stopWords map[string]bool
}

// NewWordCloud creates a renderer. stopWords are removed from the blob
// before weighting.
func NewWordCloud(opts Options, stopWords map[string]bool) ports.CloudRenderer {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}
	if opts.MaxWords <= 0 {
		opts.MaxWords = 100
	}
	return &WordCloud{opts: opts, stopWords: stopWords}
}

// Render weights the words of an already-cleaned blob and draws them as a
// PNG. It returns nil bytes when the blob holds no usable words.
func (w *WordCloud) Render(blob string) ([]byte, error) {
	weights := w.wordWeights(blob)
	if len(weights) == 0 {
		return nil, nil
	}

	if w.opts.FontPath == "" {
		return nil, fmt.Errorf("no word cloud font configured")
	}
	if _, err := os.Stat(w.opts.FontPath); err != nil {
		return nil, fmt.Errorf("word cloud font not available: %w", err)
	}

	cloud := wordclouds.NewWordcloud(weights,
		wordclouds.FontFile(w.opts.FontPath),
		wordclouds.FontMaxSize(64),
		wordclouds.FontMinSize(10),
		wordclouds.Width(w.opts.Width),
		wordclouds.Height(w.opts.Height),
		wordclouds.Colors(cloudColors),
		wordclouds.BackgroundColor(color.White),
		wordclouds.RandomPlacement(false),
	)

	var buf bytes.Buffer
	if err := png.Encode(&buf, cloud.Draw()); err != nil {
		return nil, fmt.Errorf("failed to encode word cloud: %w", err)
	}
	return buf.Bytes(), nil
}

// wordWeights counts the non-stop words of the blob, keeping at most
// MaxWords of the heaviest ones.
func (w *WordCloud) wordWeights(blob string) map[string]int {
	counts := map[string]int{}
	for _, word := range strings.Fields(blob) {
		if len(word) <= 2 || w.stopWords[word] {
			continue
		}
		counts[word]++
	}
	if len(counts) <= w.opts.MaxWords {
		return counts
	}

	type weighted struct {
		word  string
		count int
	}
	ranked := make([]weighted, 0, len(counts))
	for word, count := range counts {
		ranked = append(ranked, weighted{word, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].word < ranked[j].word
	})

	top := map[string]int{}
	for _, entry := range ranked[:w.opts.MaxWords] {
		top[entry.word] = entry.count
	}
	return top
}

// CleanText prepares a raw text blob for rendering: lowercase, URLs
// stripped, non-alphabetic characters replaced with spaces and whitespace
// collapsed.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = nonAlphaPattern.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// BuildBlob joins every text-category message into the single blob the
// renderer consumes.
func BuildBlob(messages []domain.Message) string {
	var parts []string
	for _, msg := range messages {
		if msg.Category == domain.CategoryText && strings.TrimSpace(msg.Text) != "" {
			parts = append(parts, msg.Text)
		}
	}
	return CleanText(strings.Join(parts, " "))
}
