package sheetfilter

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
	"github.com/xuri/excelize/v2"
)

func historyTable() *models.Table {
	t := models.NewTable("Historial", "Usuario", "Acción")
	values := []models.Cell{
		models.Text("Login"),
		models.Text("logout"),
		models.Text(""),
		models.Null(),
		models.Text("LOGIN FAILED"),
	}
	for i, v := range values {
		t.Rows = append(t.Rows, models.Row{
			R:     i + 2,
			Cells: []models.Cell{models.Text("user"), v},
		})
	}
	return t
}

// historyWorkbook writes an xlsx with a "Historial" sheet and an extra "Resumen" sheet.
func historyWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Historial"))
	_, err := f.NewSheet("Resumen")
	require.NoError(t, err)

	rows := [][]any{
		{"Fecha", "Usuario", "Acción"},
		{"2024-01-02", "ana", "Login"},
		{"2024-01-02", "ana", "logout"},
		{"2024-01-03", "luis", ""},
		{"2024-01-03", "luis", nil},
		{"2024-01-04", "marta", "LOGIN FAILED"},
		{"2024-01-05", "marta", 12345},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Historial", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func sourceRows(t *models.Table) []int {
	var rs []int
	for _, row := range t.Rows {
		rs = append(rs, row.R)
	}
	return rs
}

func TestFilterTableExample(t *testing.T) {
	table := historyTable()

	result, err := FilterTable(table, "Acción", "log")
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 6}, sourceRows(result))
	assert.Equal(t, table.Columns, result.Columns)
	assert.Equal(t, "Historial", result.SheetName)
}

func TestFilterTableProperties(t *testing.T) {
	table := historyTable()

	for _, q := range []string{"log", "LOG", "in", "failed", "x", " ", "Login FAILED"} {
		result, err := FilterTable(table, "Acción", q)
		require.NoError(t, err, q)

		// Every result row comes from the input and matches.
		matched := make(map[int]bool)
		for _, row := range result.Rows {
			assert.True(t, Match(row.Cell(1).String(), q), "row %d should match %q", row.R, q)
			matched[row.R] = true
		}
		// Every input row left out does not match.
		for _, row := range table.Rows {
			if !matched[row.R] {
				assert.False(t, Match(row.Cell(1).String(), q), "row %d should not match %q", row.R, q)
			}
		}

		// Idempotent
		again, err := FilterTable(result, "Acción", q)
		require.NoError(t, err)
		assert.Equal(t, result.Rows, again.Rows)
	}
}

func TestFilterTableNoMatches(t *testing.T) {
	result, err := FilterTable(historyTable(), "Acción", "delete")
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Equal(t, []string{"Usuario", "Acción"}, result.Columns)
}

func TestFilterTableColumnNotFound(t *testing.T) {
	for _, q := range []string{"log", "anything"} {
		result, err := FilterTable(historyTable(), "Action", q)

		var columnErr *ColumnNotFoundError
		require.ErrorAs(t, err, &columnErr)
		assert.Equal(t, "Action", columnErr.Column)
		assert.Equal(t, "Historial", columnErr.SheetName)
		assert.True(t, result.Empty())
		assert.Equal(t, CodeColumnNotFound, Code(err))
	}
}

func TestFilterTableEmptyQuery(t *testing.T) {
	result, err := FilterTable(historyTable(), "Acción", "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.True(t, result.Empty())
}

func TestFilterTableNullCells(t *testing.T) {
	table := models.NewTable("S", "A", "B")
	table.Rows = []models.Row{
		{R: 2, Cells: []models.Cell{models.Text("x")}}, // short row, B missing
		{R: 3, Cells: []models.Cell{models.Text("x"), models.Null()}},
		{R: 4, Cells: []models.Cell{models.Text("x"), models.Text("bee")}},
	}

	result, err := FilterTable(table, "B", "b")
	require.NoError(t, err)
	assert.Equal(t, []int{4}, sourceRows(result))
}

func TestFilterTableDecomposedColumnName(t *testing.T) {
	// "Acción" with a combining acute accent
	decomposed := "Accio\u0301n"
	table := models.NewTable("S", decomposed)
	table.Rows = []models.Row{{R: 2, Cells: []models.Cell{models.Text("Creacio\u0301n")}}}

	result, err := FilterTable(table, "Acción", "CREACIÓN")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
}

func TestFilter(t *testing.T) {
	data := historyWorkbook(t)

	result, err := Filter(bytes.NewReader(data), Request{Query: "log"}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Fecha", "Usuario", "Acción"}, result.Columns)
	assert.Equal(t, []int{2, 3, 6}, sourceRows(result))
	assert.Equal(t, models.Text("ana"), result.Rows[0].Cell(1))
	assert.Equal(t, "A1:C7", result.Range)
}

func TestFilterNumbersAsText(t *testing.T) {
	result, err := Filter(bytes.NewReader(historyWorkbook(t)), Request{Query: "234"}, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 1, result.Len())
	assert.Equal(t, models.Text("12345"), result.Rows[0].Cell(2))
}

func TestFilterDeterministic(t *testing.T) {
	data := historyWorkbook(t)
	req := Request{SheetName: "Historial", Column: "Acción", Query: "LOG"}

	first, err := Filter(bytes.NewReader(data), req, DefaultOptions())
	require.NoError(t, err)
	second, err := Filter(bytes.NewReader(data), req, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFilterMissingSheet(t *testing.T) {
	req := Request{SheetName: "Auditoría", Query: "log"}
	result, err := Filter(bytes.NewReader(historyWorkbook(t)), req, DefaultOptions())

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Auditoría", parseErr.SheetName)

	var missing ErrSheetNotExist
	assert.True(t, errors.As(err, &missing))
	assert.Contains(t, err.Error(), "Historial, Resumen")

	assert.True(t, result.Empty())
	assert.Equal(t, CodeParseError, Code(err))
}

func TestFilterEmptySheetHasNoColumn(t *testing.T) {
	req := Request{SheetName: "Resumen", Query: "log"}
	_, err := Filter(bytes.NewReader(historyWorkbook(t)), req, DefaultOptions())

	var columnErr *ColumnNotFoundError
	assert.ErrorAs(t, err, &columnErr)
}

func TestFilterCorruptDocument(t *testing.T) {
	result, err := Filter(bytes.NewReader([]byte("not a workbook")), Request{Query: "log"}, DefaultOptions())

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.True(t, result.Empty())
}

func TestFilterEmptyQuery(t *testing.T) {
	_, err := Filter(bytes.NewReader(historyWorkbook(t)), Request{}, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, CodeEmptyQuery, Code(err))
}

func TestFilterRange(t *testing.T) {
	data := historyWorkbook(t)

	result, err := Filter(bytes.NewReader(data), Request{Query: "log"}, Options{Range: "A1:C3"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, sourceRows(result))

	_, err = Filter(bytes.NewReader(data), Request{Query: "log"}, Options{Range: "nope"})
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Equal(t, CodeParseError, Code(err))
}

func TestFilterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historial.xlsx")
	require.NoError(t, os.WriteFile(path, historyWorkbook(t), 0644))

	result, err := FilterFile(path, Request{Query: "failed"}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []int{6}, sourceRows(result))

	_, err = FilterFile(filepath.Join(t.TempDir(), "missing.xlsx"), Request{Query: "x"}, DefaultOptions())
	assert.Equal(t, CodeParseError, Code(err))
}

func TestRequestWithDefaults(t *testing.T) {
	req := Request{Query: "q"}.WithDefaults(DefaultSheetName, DefaultColumn)
	assert.Equal(t, Request{SheetName: "Historial", Column: "Acción", Query: "q"}, req)

	req = Request{SheetName: "S", Column: "C", Query: "q"}.WithDefaults(DefaultSheetName, DefaultColumn)
	assert.Equal(t, "S", req.SheetName)
	assert.Equal(t, "C", req.Column)
}
