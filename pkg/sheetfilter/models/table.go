package models

import "golang.org/x/text/unicode/norm"

// Row represents one data row of a table.
type Row struct {
	// R is the source row index (1-based). Zero for rows not read from a sheet.
	R int `json:"r"`
	// Cells holds one cell per table column, in column order.
	Cells []Cell `json:"cells"`
}

// Cell returns the cell at column index i. Missing trailing cells read as null.
func (r Row) Cell(i int) Cell {
	if i < 0 || i >= len(r.Cells) {
		return Null()
	}
	return r.Cells[i]
}

// Table is a rectangular block of text cells read from one sheet.
type Table struct {
	// SheetName is the sheet the table was read from.
	SheetName string `json:"sheet_name"`
	// Range is the cell range the table occupies in the sheet (e.g. "A1:F20"), if known.
	Range string `json:"range,omitempty"`
	// Columns are the column names, in sheet order.
	Columns []string `json:"columns"`
	// Rows are the data rows, in sheet order.
	Rows []Row `json:"rows"`
}

// NewTable returns an empty table for sheetName with the given columns.
func NewTable(sheetName string, columns ...string) *Table {
	return &Table{
		SheetName: sheetName,
		Columns:   columns,
		Rows:      []Row{},
	}
}

// ColumnIndex returns the index of the named column.
// Names are compared in Unicode NFC form.
func (t *Table) ColumnIndex(name string) (int, bool) {
	want := NormalizeName(name)
	for i, col := range t.Columns {
		if NormalizeName(col) == want {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Empty reports whether the table has no data rows.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// Records returns the rows as string slices with nulls read as "".
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i := range t.Columns {
			rec[i] = row.Cell(i).String()
		}
		records = append(records, rec)
	}
	return records
}

// NormalizeName returns s in Unicode NFC form.
func NormalizeName(s string) string {
	return norm.NFC.String(s)
}
