package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// extractCSV extracts candidates from header-identified name and phone
// columns. Header matching is case-insensitive substring, so "Full Name" and
// "Phone 1 - Value" both qualify. Rows missing either column are skipped.
func extractCSV(doc string) ([]Candidate, error) {
	reader := csv.NewReader(strings.NewReader(doc))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Format: FormatCSV, Reason: "empty document"}
		}
		return nil, &ParseError{Format: FormatCSV, Reason: err.Error()}
	}

	nameCol, phoneCol := -1, -1
	for i, h := range header {
		col := strings.ToLower(strings.TrimSpace(h))
		if nameCol < 0 && strings.Contains(col, "name") {
			nameCol = i
		}
		if phoneCol < 0 && strings.Contains(col, "phone") {
			phoneCol = i
		}
	}
	if nameCol < 0 || phoneCol < 0 {
		return nil, &ParseError{Format: FormatCSV, Reason: "header must contain a name and a phone column"}
	}

	var candidates []Candidate
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: FormatCSV, Reason: err.Error()}
		}
		if nameCol >= len(row) || phoneCol >= len(row) {
			continue
		}
		candidates = append(candidates, Candidate{
			RawName:  row[nameCol],
			RawPhone: row[phoneCol],
		})
	}

	return candidates, nil
}
