package source

import (
	"fmt"
	"os"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/ports"
)

// FileSource implements ports.DataSource for a chat export on disk.
type FileSource struct {
	filePath string
}

// NewFileSource creates a new FileSource.
func NewFileSource(filePath string) ports.DataSource {
	return &FileSource{filePath: filePath}
}

// Fetch reads the export file and returns its content.
func (s *FileSource) Fetch() ([]byte, error) {
	if s.filePath == "" {
		return nil, fmt.Errorf("no file path configured")
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", s.filePath, err)
	}
	return data, nil
}
