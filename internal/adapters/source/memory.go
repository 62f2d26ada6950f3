package source

import (
	"fmt"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

// MemorySource implements ports.DataSource for an export already held in
// memory, e.g. an HTTP upload body.
type MemorySource struct {
	data []byte
}

// NewMemorySource creates a new MemorySource.
func NewMemorySource(data []byte) ports.DataSource {
	return &MemorySource{data: data}
}

// Fetch returns a copy of the data so callers cannot mutate the original.
func (s *MemorySource) Fetch() ([]byte, error) {
	if s.data == nil {
		return nil, fmt.Errorf("no data set")
	}

	dataCopy := make([]byte, len(s.data))
	copy(dataCopy, s.data)
	return dataCopy, nil
}
