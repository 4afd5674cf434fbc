package sheetfilter

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/parser"
	"github.com/xuri/excelize/v2"
)

// ErrEmptyQuery indicates a filter request without a search term.
var ErrEmptyQuery = errors.New("query must not be empty")

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidRange indicates a read window could not be parsed.
var ErrInvalidRange = parser.ErrInvalidRange

// ErrSheetNotExist is re-exported from excelize and reports a missing sheet.
type ErrSheetNotExist = excelize.ErrSheetNotExist

// Error codes reported by Code.
const (
	CodeParseError     = "parse_error"
	CodeColumnNotFound = "column_not_found"
	CodeEmptyQuery     = "empty_query"
	CodeInternal       = "internal_error"
)

// ParseError reports a document or sheet that could not be read.
type ParseError struct {
	SheetName string
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot read sheet %q: %v", e.SheetName, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(sheetName string, err error) *ParseError {
	return &ParseError{
		SheetName: sheetName,
		Err:       err,
	}
}

// ColumnNotFoundError reports a target column missing from a sheet.
type ColumnNotFoundError struct {
	Column    string
	SheetName string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in sheet %q", e.Column, e.SheetName)
}

// Code maps a filter error to a stable code. It returns "" for nil.
func Code(err error) string {
	var parseErr *ParseError
	var columnErr *ColumnNotFoundError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return CodeEmptyQuery
	case errors.As(err, &columnErr):
		return CodeColumnNotFound
	case errors.As(err, &parseErr):
		return CodeParseError
	default:
		return CodeInternal
	}
}
