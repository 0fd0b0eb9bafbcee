package core

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// PrintTable renders rows to w. The first row is the header.
func PrintTable(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(tableRow(rows[0]))
	for _, row := range rows[1:] {
		tw.AppendRow(tableRow(row))
	}
	tw.SetStyle(table.StyleLight)
	tw.Render()
}

func tableRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, cell := range cells {
		row[i] = cell
	}
	return row
}
