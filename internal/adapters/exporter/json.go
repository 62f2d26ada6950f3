package exporter

import (
	"encoding/json"
	"fmt"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

// ReportToJSON renders the full report structure as indented JSON.
func ReportToJSON(report *domain.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}
