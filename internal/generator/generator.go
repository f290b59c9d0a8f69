package generator

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/mcncl/jsoncsv/internal/flattener"
	"github.com/mcncl/jsoncsv/internal/formatter"
)

// Generator writes flattened rows as CSV text
type Generator struct {
	formatter *formatter.Formatter
}

// NewGenerator creates a Generator that keeps header labels as they are
func NewGenerator() *Generator {
	return &Generator{formatter: formatter.NewFormatter()}
}

// NewGeneratorWithFormatter creates a Generator that styles header labels with f
func NewGeneratorWithFormatter(f *formatter.Formatter) *Generator {
	if f == nil {
		f = formatter.NewFormatter()
	}
	return &Generator{formatter: f}
}

// Header returns the union of all row keys, each once, in the order it is
// first seen scanning rows in order.
func Header(rows []*flattener.Row) []string {
	header := make([]string, 0)
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row == nil {
			continue
		}
		for key := range row.AllFromFront() {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			header = append(header, key)
		}
	}
	return header
}

// GenerateCSV renders rows as CSV with a header line. Rows missing a column get
// an empty field. When no row has any column the result is the empty string.
func (g *Generator) GenerateCSV(rows []*flattener.Row) (string, error) {
	header := Header(rows)
	if len(header) == 0 {
		return "", nil
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := writeRecord(w, &buf, g.formatter.FormatHeader(header)); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(header))
	for i, row := range rows {
		for j, column := range header {
			record[j] = ""
			if row == nil {
				continue
			}
			if cell, ok := row.Get(column); ok {
				record[j] = cell.Text()
			}
		}
		if err := writeRecord(w, &buf, record); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return buf.String(), nil
}

// writeRecord writes one line. encoding/csv writes a lone empty field as an
// empty line, which readers skip; it is written as "" instead so the row count
// survives a round trip.
func writeRecord(w *csv.Writer, buf *strings.Builder, record []string) error {
	if len(record) == 1 && record[0] == "" {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		buf.WriteString("\"\"\n")
		return nil
	}
	return w.Write(record)
}
