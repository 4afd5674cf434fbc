package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellJSON(t *testing.T) {
	row := Row{R: 3, Cells: []Cell{Text("Login"), Null(), Text("")}}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"r":3,"cells":["Login",null,""]}`, string(data))

	var decoded Row
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, row, decoded)
}

func TestRowCell(t *testing.T) {
	row := Row{Cells: []Cell{Text("a")}}
	assert.Equal(t, Text("a"), row.Cell(0))
	assert.Equal(t, Null(), row.Cell(1))
	assert.Equal(t, Null(), row.Cell(-1))
	assert.Equal(t, "", row.Cell(5).String())
}

func TestColumnIndex(t *testing.T) {
	table := NewTable("Historial", "Fecha", "Acción")

	idx, ok := table.ColumnIndex("Acción")
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = table.ColumnIndex("accion")
	assert.False(t, ok)
}

func TestRecords(t *testing.T) {
	table := NewTable("S", "a", "b")
	table.Rows = []Row{
		{R: 2, Cells: []Cell{Text("1"), Null()}},
		{R: 3, Cells: []Cell{Text("2")}},
	}
	assert.Equal(t, [][]string{{"1", ""}, {"2", ""}}, table.Records())
}
