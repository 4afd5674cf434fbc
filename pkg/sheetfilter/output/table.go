package output

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter/models"
)

// WriteTable renders the rows as a text table. The first column is the source row number.
func WriteTable(w io.Writer, t *models.Table) error {
	header := table.Row{"#"}
	for _, col := range t.Columns {
		header = append(header, col)
	}

	var rows []table.Row
	for i, rec := range t.Records() {
		row := table.Row{t.Rows[i].R}
		for _, v := range rec {
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	tw := table.NewWriter()
	tw.AppendHeader(header)
	tw.AppendRows(rows)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	tw.Style().Options.DrawBorder = false

	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}
