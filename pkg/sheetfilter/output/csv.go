package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// WriteCSV writes the column names and then one record per row. Nulls are empty fields.
func WriteCSV(w io.Writer, table *models.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("cw.Write: %w", err)
	}
	if err := cw.WriteAll(table.Records()); err != nil {
		return fmt.Errorf("cw.WriteAll: %w", err)
	}

	return nil
}
