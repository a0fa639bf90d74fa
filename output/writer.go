// Package output serializes classification results as delimited text.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rnatools/rfamtype/classify"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatCSV produces comma-separated output.
	FormatCSV Format = "csv"

	// FormatTSV produces tab-separated output.
	FormatTSV Format = "tsv"
)

// FormatInfo provides metadata about an output format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Delimiter separates fields within a row.
	Delimiter rune
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatCSV: {
		Name:      FormatCSV,
		MIMEType:  "text/csv",
		Extension: ".csv",
		Delimiter: ',',
	},
	FormatTSV: {
		Name:      FormatTSV,
		MIMEType:  "text/tab-separated-values",
		Extension: ".tsv",
		Delimiter: '\t',
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// ParseFormat validates a format name from a flag or config value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if _, ok := FormatRegistry[f]; !ok {
		return "", fmt.Errorf("unknown output format %q (want csv or tsv)", s)
	}
	return f, nil
}

// Header is the column header row every result file starts with.
var Header = []string{"family_id", "method", "rna_types"}

// typeSeparator joins multiple labels within the rna_types field.
const typeSeparator = ";"

// Writer emits one row per classification result, preceded by the
// header row. Rows appear in the order results are written; a fallback
// result is a legitimate row with an empty rna_types field.
type Writer struct {
	cw *csv.Writer
}

// NewWriter creates a Writer emitting the given format to w.
func NewWriter(w io.Writer, format Format) (*Writer, error) {
	info, ok := GetFormatInfo(format)
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", format)
	}

	cw := csv.NewWriter(w)
	cw.Comma = info.Delimiter
	return &Writer{cw: cw}, nil
}

// WriteHeader writes the column header row.
func (w *Writer) WriteHeader() error {
	if err := w.cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// Write writes one result row.
func (w *Writer) Write(res classify.Result) error {
	types := make([]string, len(res.Types))
	for i, t := range res.Types {
		types[i] = t.String()
	}

	row := []string{res.Accession, string(res.Method), strings.Join(types, typeSeparator)}
	if err := w.cw.Write(row); err != nil {
		return fmt.Errorf("writing row for %s: %w", res.Accession, err)
	}
	return nil
}

// WriteAll writes the header, every result in order, and flushes.
func (w *Writer) WriteAll(results []classify.Result) error {
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, res := range results {
		if err := w.Write(res); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Flush writes buffered rows to the underlying writer.
func (w *Writer) Flush() error {
	w.cw.Flush()
	if err := w.cw.Error(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	return nil
}
