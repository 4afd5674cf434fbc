package sheetfilter

// Request names the sheet, column and search term of a filter call.
type Request struct {
	// SheetName is the sheet to read. Empty means DefaultSheetName.
	SheetName string `json:"sheet_name"`
	// Column is the column to search. Empty means DefaultColumn.
	Column string `json:"column"`
	// Query is the substring to look for. Must not be empty.
	Query string `json:"query"`
}

// WithDefaults returns a copy of r with empty sheet and column names filled in.
func (r Request) WithDefaults(sheetName, column string) Request {
	if r.SheetName == "" {
		r.SheetName = sheetName
	}
	if r.Column == "" {
		r.Column = column
	}
	return r
}

// Validate rejects a request with an empty query.
func (r Request) Validate() error {
	if r.Query == "" {
		return ErrEmptyQuery
	}
	return nil
}
