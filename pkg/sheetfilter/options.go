// Package sheetfilter filters the rows of a spreadsheet sheet by a
// case-insensitive substring match on one column.
package sheetfilter

// Defaults used when a request leaves a field empty.
const (
	DefaultSheetName = "Historial"
	DefaultColumn    = "Acción"
)

// Options configures how the source document is read.
type Options struct {
	// RawValues reads stored cell values instead of display-formatted text.
	RawValues bool
	// Range restricts reading to a cell range such as "A1:F200". Empty reads the whole sheet.
	Range string
	// UsePrintArea restricts reading to the sheet's print area when one is defined.
	// Range takes precedence.
	UsePrintArea bool
}

// DefaultOptions returns default read options.
func DefaultOptions() Options {
	return Options{}
}
