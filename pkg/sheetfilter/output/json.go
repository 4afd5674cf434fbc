package output

import (
	"encoding/json"

	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// ToJSON serializes a table. Null cells are encoded as JSON null.
func ToJSON(table *models.Table, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(table, "", "  ")
	}
	return json.Marshal(table)
}
