package report

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ExportJSON renders v as an indented JSON artifact, the form the report
// consumers ingest alongside the processed CSV.
func ExportJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("report: encode json: %w", err)
	}
	return buf.Bytes(), nil
}
