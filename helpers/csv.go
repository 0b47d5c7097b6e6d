package helpers

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/cartograph-org/cartograph/engine"
)

// ============================================================================
// CSV HELPER — Parses delimited text into engine Records
// ============================================================================
// The consumer reads the CSV from wherever it lives (file, S3, stdin).
// This helper converts the raw bytes into records; the first row is the
// header and defines the schema. Role inference happens later in the
// engine — here every column is kept verbatim.
// ============================================================================

// ParseCSV parses CSV bytes into records plus the header-order schema.
// Cells are trimmed; an empty cell is a null. Malformed rows are skipped.
func ParseCSV(data []byte) ([]engine.Record, []string, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1 // ragged rows tolerated, trailing cells null

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read CSV header")
	}

	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = strings.TrimSpace(h)
	}

	var records []engine.Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}

		rec := make(engine.Record, len(columns))
		for i, val := range row {
			if i >= len(columns) {
				break
			}
			val = strings.TrimSpace(val)
			if val != "" {
				rec[columns[i]] = val
			}
		}
		records = append(records, rec)
	}

	return records, columns, nil
}

// ParseCSVView parses CSV bytes straight into a RecordView (convenience
// wrapper for consumers who don't need the raw slice).
func ParseCSVView(data []byte) (engine.RecordView, error) {
	records, columns, err := ParseCSV(data)
	if err != nil {
		return nil, err
	}
	return engine.NewSliceView(columns, records), nil
}
