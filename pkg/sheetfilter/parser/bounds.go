package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Bounds is the bounding box of the non-empty cells of a sheet (0-based, inclusive).
type Bounds struct {
	MinRow int
	MaxRow int
	MinCol int
	MaxCol int
}

// Ref returns the bounds in Excel range notation (e.g. "A1:D10").
// The offsets shift the box when rows were cropped from a larger sheet.
func (b Bounds) Ref(rowOffset, colOffset int) string {
	startCell, err := excelize.CoordinatesToCellName(colOffset+b.MinCol+1, rowOffset+b.MinRow+1)
	if err != nil {
		return ""
	}
	endCell, err := excelize.CoordinatesToCellName(colOffset+b.MaxCol+1, rowOffset+b.MaxRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// findDataBounds finds the bounding box of non-empty cells.
// It returns false when every cell is empty.
func findDataBounds(rows [][]string) (Bounds, bool) {
	b := Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if b.MinRow < 0 || rowIdx < b.MinRow {
					b.MinRow = rowIdx
				}
				if b.MaxRow < 0 || rowIdx > b.MaxRow {
					b.MaxRow = rowIdx
				}
				if b.MinCol < 0 || colIdx < b.MinCol {
					b.MinCol = colIdx
				}
				if b.MaxCol < 0 || colIdx > b.MaxCol {
					b.MaxCol = colIdx
				}
			}
		}
	}

	return b, b.MinRow >= 0
}
