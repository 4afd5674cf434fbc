package sheetfilter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/parser"
	"github.com/xuri/excelize/v2"
)

// Filter reads the requested sheet from src and returns the rows whose
// column value contains the query, ignoring case.
//
// On failure the returned table is empty and the error is ErrEmptyQuery,
// a *ParseError or a *ColumnNotFoundError. A table with zero rows and a nil
// error means nothing matched.
func Filter(src io.Reader, req Request, opts Options) (*models.Table, error) {
	req = req.WithDefaults(DefaultSheetName, DefaultColumn)
	if err := req.Validate(); err != nil {
		return models.NewTable(req.SheetName), err
	}

	table, err := ReadTable(src, req.SheetName, opts)
	if err != nil {
		return models.NewTable(req.SheetName), err
	}

	return FilterTable(table, req.Column, req.Query)
}

// FilterFile is Filter for a workbook on disk.
func FilterFile(path string, req Request, opts Options) (*models.Table, error) {
	req = req.WithDefaults(DefaultSheetName, DefaultColumn)
	if err := req.Validate(); err != nil {
		return models.NewTable(req.SheetName), err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.NewTable(req.SheetName), NewParseError(req.SheetName, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	table, err := readSheet(f, req.SheetName, opts)
	if err != nil {
		return models.NewTable(req.SheetName), err
	}

	return FilterTable(table, req.Column, req.Query)
}

// ReadTable parses src and reads one sheet with every cell as text.
// Any failure is returned as a *ParseError.
func ReadTable(src io.Reader, sheetName string, opts Options) (*models.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, NewParseError(sheetName, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	return readSheet(f, sheetName, opts)
}

func readSheet(f *excelize.File, sheetName string, opts Options) (*models.Table, error) {
	readOpts := parser.ReadOptions{RawValues: opts.RawValues}

	switch {
	case opts.Range != "":
		area, err := parser.ParseRange(opts.Range)
		if err != nil {
			return nil, NewParseError(sheetName, err)
		}
		readOpts.Area = area
	case opts.UsePrintArea:
		if area, ok := parser.PrintArea(f, sheetName); ok {
			readOpts.Area = area
		}
	}

	table, err := parser.ReadTable(f, sheetName, readOpts)
	if err != nil {
		var missing ErrSheetNotExist
		if errors.As(err, &missing) {
			err = fmt.Errorf("%w (available sheets: %s)", err, strings.Join(f.GetSheetList(), ", "))
		}
		return nil, NewParseError(sheetName, err)
	}

	return table, nil
}

// FilterTable returns the rows of t whose column value contains query,
// ignoring case. Null cells match as "". Row order and all columns are kept.
func FilterTable(t *models.Table, column, query string) (*models.Table, error) {
	result := models.NewTable(t.SheetName)
	if query == "" {
		return result, ErrEmptyQuery
	}

	colIdx, ok := t.ColumnIndex(column)
	if !ok {
		return result, &ColumnNotFoundError{Column: column, SheetName: t.SheetName}
	}

	result.Columns = append([]string(nil), t.Columns...)
	result.Range = t.Range

	needle := fold(query)
	for _, row := range t.Rows {
		if strings.Contains(fold(row.Cell(colIdx).String()), needle) {
			result.Rows = append(result.Rows, row)
		}
	}

	return result, nil
}

// Match reports whether value contains query, ignoring case.
func Match(value, query string) bool {
	return strings.Contains(fold(value), fold(query))
}

// fold lowercases s in NFC form so composed and decomposed accents compare equal.
func fold(s string) string {
	return strings.ToLower(models.NormalizeName(s))
}
