// Package models defines the tabular data structures read from a sheet.
package models

import "encoding/json"

// Cell is a single text cell. A cell that was absent in the source is null.
type Cell struct {
	// Value is the cell text. Always empty for a null cell.
	Value string
	// Valid is false when the cell is null.
	Valid bool
}

// Text returns a valid cell holding s.
func Text(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Null returns a null cell.
func Null() Cell {
	return Cell{}
}

// String returns the cell text, with null read as the empty string.
func (c Cell) String() string {
	return c.Value
}

// MarshalJSON encodes a null cell as JSON null and a valid cell as a string.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON decodes a JSON string or null.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Null()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Text(s)
	return nil
}
