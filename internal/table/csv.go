package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"donorpulse/internal/domain"
)

// missingTokens are the raw field values treated as absent on ingest,
// matching the export conventions of the upstream CRM.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"null": {},
	"NULL": {},
	"None": {},
	"#N/A": {},
	"—":    {}, // em-dash used as a blank marker by some exports
}

// ReadCSV parses a comma-separated table from r. The stream is UTF-8 with an
// optional byte-order mark. Every cell is ingested as a string; recognized
// missing-value tokens become invalid cells. The first record is the header.
func ReadCSV(r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table: input has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("table: read header: %w", err)
	}

	var records [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("table: read row %d: %w", len(records)+2, err)
		}
		records = append(records, rec)
	}

	t := New(len(records))
	for i, name := range header {
		cells := make([]Cell, len(records))
		for row, rec := range records {
			if i >= len(rec) {
				cells[row] = Missing(KindString)
				continue
			}
			if _, missing := missingTokens[rec[i]]; missing {
				cells[row] = Missing(KindString)
				continue
			}
			cells[row] = String(rec[i])
		}
		if err := t.SetColumn(name, cells); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadFile reads a CSV table from path. A missing file is a fatal condition
// for the pipeline and is returned to the caller with its cause.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("table: %w: %s", domain.ErrMissingInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("table: open input: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV renders the table to w: header row first, one record per row,
// cells formatted per their kind. Output is deterministic for a given table.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.names); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}
	record := make([]string, len(t.names))
	for row := 0; row < t.rows; row++ {
		for i, name := range t.names {
			record[i] = t.cols[name][row].Format()
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("table: write row %d: %w", row+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
