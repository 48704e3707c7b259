package feed

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"shopify-sync/core/reconcile"
)

// Row is one parsed feed record: field name to trimmed cell value.
type Row map[string]string

// Get returns the value of field, or "" when absent.
func (r Row) Get(field string) string {
	return r[field]
}

// Parse decodes a CSV feed with a header row according to schema.
//
// A header missing a required column fails the whole file with
// ErrValidationGap. Blank lines are skipped silently. A row whose required
// values are blank is dropped and reported as a warning.
func Parse(data []byte, schema Schema) ([]Row, []reconcile.Warning, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s feed: read header: %w", schema.Name, err)
	}

	index, err := columnIndex(header, schema)
	if err != nil {
		return nil, nil, err
	}

	var (
		rows     []Row
		warnings []reconcile.Warning
	)
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s feed: %w", schema.Name, err)
		}
		line, _ := r.FieldPos(0)

		row := make(Row, len(index))
		blank := true
		for field, i := range index {
			if i < len(record) {
				v := strings.TrimSpace(record[i])
				row[field] = v
				if v != "" {
					blank = false
				}
			}
		}
		if blank {
			continue
		}

		if missing := missingRequired(row, schema.Required); len(missing) > 0 {
			warnings = append(warnings, reconcile.Warning{
				Key: fmt.Sprintf("%s line %d", schema.Name, line),
				Err: fmt.Errorf("%w: %s", reconcile.ErrValidationGap, strings.Join(missing, ", ")),
			})
			continue
		}
		rows = append(rows, row)
	}

	return rows, warnings, nil
}

// Encode serializes a header and records as CSV.
func Encode(header []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func columnIndex(header []string, schema Schema) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	index := make(map[string]int, len(schema.Columns))
	for field, label := range schema.Columns {
		if i, ok := pos[strings.ToLower(strings.TrimSpace(label))]; ok {
			index[field] = i
		}
	}

	var missing []string
	for _, field := range schema.Required {
		if _, ok := index[field]; !ok {
			missing = append(missing, schema.Columns[field])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s feed: %w: header lacks %s", schema.Name, reconcile.ErrValidationGap, strings.Join(missing, ", "))
	}
	return index, nil
}

func missingRequired(row Row, required []string) []string {
	var missing []string
	for _, field := range required {
		if row[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}
