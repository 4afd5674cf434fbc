// Package parser reads sheets of an Excel workbook into text tables.
package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
	"github.com/xuri/excelize/v2"
)

// ReadOptions configures how a sheet is read.
type ReadOptions struct {
	// RawValues reads stored cell values instead of display-formatted text.
	RawValues bool
	// Area restricts reading to a cell rectangle. Nil reads the whole sheet.
	Area *Area
}

// ReadTable reads a sheet into a Table.
// The first non-empty row inside the data bounds is the header; every cell is kept as text.
// Fully blank rows below the header are skipped.
func ReadTable(f *excelize.File, sheetName string, opts ReadOptions) (*models.Table, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: opts.RawValues})
	if err != nil {
		return nil, err
	}

	rowOffset, colOffset := 0, 0
	if opts.Area != nil {
		rows = cropRows(rows, *opts.Area)
		rowOffset, colOffset = opts.Area.R1-1, opts.Area.C1-1
	}

	table := models.NewTable(sheetName)
	bounds, ok := findDataBounds(rows)
	if !ok {
		return table, nil
	}

	table.Columns = headerNames(rows[bounds.MinRow], bounds.MinCol, bounds.MaxCol)
	table.Range = bounds.Ref(rowOffset, colOffset)

	for rowIdx := bounds.MinRow + 1; rowIdx <= bounds.MaxRow; rowIdx++ {
		row := rows[rowIdx]
		cells := make([]models.Cell, 0, len(table.Columns))
		hasData := false

		for colIdx := bounds.MinCol; colIdx <= bounds.MaxCol; colIdx++ {
			if colIdx >= len(row) || row[colIdx] == "" {
				cells = append(cells, models.Null())
				continue
			}
			hasData = true
			cells = append(cells, models.Text(row[colIdx]))
		}

		if hasData {
			table.Rows = append(table.Rows, models.Row{
				R:     rowOffset + rowIdx + 1, // 1-based source row
				Cells: cells,
			})
		}
	}

	return table, nil
}

// headerNames builds unique column names from a header row.
// Blank names become "Unnamed: <i>"; repeats get ".1", ".2", ... suffixes.
func headerNames(header []string, minCol, maxCol int) []string {
	names := make([]string, 0, maxCol-minCol+1)
	used := make(map[string]bool)
	suffix := make(map[string]int)

	for colIdx := minCol; colIdx <= maxCol; colIdx++ {
		name := ""
		if colIdx < len(header) {
			name = models.NormalizeName(header[colIdx])
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", colIdx-minCol)
		}

		if used[name] {
			base := name
			for used[name] {
				suffix[base]++
				name = fmt.Sprintf("%s.%d", base, suffix[base])
			}
		}
		used[name] = true
		names = append(names, name)
	}

	return names
}

// cropRows returns the part of rows inside area.
func cropRows(rows [][]string, area Area) [][]string {
	var result [][]string
	for rowIdx := area.R1 - 1; rowIdx < area.R2 && rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		var cropped []string
		for colIdx := area.C1 - 1; colIdx < area.C2 && colIdx < len(row); colIdx++ {
			cropped = append(cropped, row[colIdx])
		}
		result = append(result, cropped)
	}
	return result
}
