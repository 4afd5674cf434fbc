package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

func sampleTable() *models.Table {
	t := models.NewTable("Historial", "Usuario", "Acción")
	t.Range = "A1:B4"
	t.Rows = []models.Row{
		{R: 2, Cells: []models.Cell{models.Text("ana"), models.Text("Login")}},
		{R: 4, Cells: []models.Cell{models.Text("luis, jr"), models.Null()}},
	}
	return t
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"table", "json", "csv"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleTable(), false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sheet_name": "Historial",
		"range": "A1:B4",
		"columns": ["Usuario", "Acción"],
		"rows": [
			{"r": 2, "cells": ["ana", "Login"]},
			{"r": 4, "cells": ["luis, jr", null]}
		]
	}`, string(data))

	pretty, err := ToJSON(sampleTable(), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"sheet_name\"")
}

func TestToJSONEmptyRows(t *testing.T) {
	data, err := ToJSON(models.NewTable("S", "a"), false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"rows":[]`)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))
	assert.Equal(t, "Usuario,Acción\nana,Login\n\"luis, jr\",\n", buf.String())
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleTable()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4) // header, separator, two rows
	assert.Contains(t, lines[0], "Acción")
	assert.Contains(t, lines[2], "Login")
	assert.Contains(t, lines[3], "luis, jr")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTable(), FormatJSON, false))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	assert.Error(t, Write(&buf, sampleTable(), Format("xml"), false))
}
