// Package output renders filtered tables for the CLI and the web UI.
package output

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// Format is an output encoding.
type Format string

const (
	// FormatTable is a human-readable text table.
	FormatTable Format = "table"
	// FormatJSON is a JSON document.
	FormatJSON Format = "json"
	// FormatCSV is CSV with a header line.
	FormatCSV Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be table, json, or csv)", s)
	}
}

// Write renders table to w in the given format.
func Write(w io.Writer, table *models.Table, format Format, pretty bool) error {
	switch format {
	case FormatTable:
		return WriteTable(w, table)
	case FormatCSV:
		return WriteCSV(w, table)
	case FormatJSON:
		data, err := ToJSON(table, pretty)
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
