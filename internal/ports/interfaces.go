package ports

import (
	"context"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

// DataSource provides the raw bytes of a chat export.
type DataSource interface {
	// Fetch loads the export and returns its content.
	Fetch() ([]byte, error)
}

// Parser turns a raw chat export into an ordered message sequence.
type Parser interface {
	// Parse returns the messages in file order. It fails only when not a
	// single message could be produced from non-empty input.
	Parse(data []byte) ([]domain.Message, error)
}

// Classifier labels text with a confidence score. Implementations may be
// model backed or rule based; the strategy is selected once at
// configuration time and injected into the analyzers.
type Classifier interface {
	Classify(ctx context.Context, text string) (domain.Prediction, error)
	// ClassifyBatch returns one prediction per input, same order and
	// length.
	ClassifyBatch(ctx context.Context, texts []string) ([]domain.Prediction, error)
}

// CloudRenderer turns a cleaned text blob into a rendered word-cloud
// image. It returns nil when the blob is empty after cleaning.
type CloudRenderer interface {
	Render(blob string) ([]byte, error)
}

// Exporter writes a finished report to some destination.
type Exporter interface {
	Export(report *domain.Report) error
}
