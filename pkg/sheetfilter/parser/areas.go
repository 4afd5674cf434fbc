package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidRange indicates a cell range string could not be parsed.
var ErrInvalidRange = errors.New("invalid cell range")

// Area represents cell coordinate bounds of a read window.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// ParseRange parses a range string like "A1:D10" or "$A$1:$D$10".
// A sheet prefix ("Sheet1!A1:D10") is ignored.
func ParseRange(s string) (*Area, error) {
	ref := strings.TrimSpace(s)
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	area := parseRangeToArea(ref)
	if area == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	return area, nil
}

// PrintArea returns the first print area defined for sheetName.
func PrintArea(f *excelize.File, sheetName string) (*Area, bool) {
	for _, dn := range f.GetDefinedName() {
		// Look for _xlnm.Print_Area defined name
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		name, areas := parsePrintAreaReference(dn.RefersTo)
		if len(areas) == 0 {
			continue
		}
		if name == sheetName || (name == "" && dn.Scope == sheetName) {
			return &areas[0], true
		}
	}
	return nil, false
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parsePrintAreaReference(ref string) (string, []Area) {
	var areas []Area

	// Split by comma for multiple print areas
	parts := strings.Split(ref, ",")

	var sheetName string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := strings.Trim(part[:idx], "'")
			if sheetName == "" {
				sheetName = sheet
			}

			if area := parseRangeToArea(part[idx+1:]); area != nil {
				areas = append(areas, *area)
			}
		}
	}

	return sheetName, areas
}

// parseRangeToArea parses a range string like $A$1:$D$10 to Area.
// Start and end are swapped into order when given reversed.
func parseRangeToArea(rangeStr string) *Area {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return &Area{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}
