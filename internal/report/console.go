package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/banshee-data/survival.report/internal/dataset"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(true)
	table.SetHeader(header)
	return table
}

// PrintOverview prints the shape of t and the non-null count and kind of
// each column.
func PrintOverview(w io.Writer, t *dataset.Table) {
	rows, cols := t.Shape()
	fmt.Fprintf(w, "Dataset Info: %d entries, %d columns\n", rows, cols)

	table := newTable(w, []string{"#", "Column", "Non-Null Count", "Dtype"})
	for i, c := range t.Columns() {
		table.Append([]string{
			strconv.Itoa(i),
			c.Name,
			fmt.Sprintf("%d non-null", c.Len()-c.MissingCount()),
			c.Kind.String(),
		})
	}
	table.Render()
}

// PrintHead prints the first n rows of t. Missing cells print as NaN.
func PrintHead(w io.Writer, t *dataset.Table, n int) {
	if n > t.NumRows() {
		n = t.NumRows()
	}
	fmt.Fprintf(w, "First %d rows:\n", n)

	table := newTable(w, t.Names())
	cols := t.Columns()
	for i := 0; i < n; i++ {
		row := make([]string, len(cols))
		for j, c := range cols {
			if !c.Valid[i] {
				row[j] = "NaN"
				continue
			}
			row[j] = c.Cell(i)
		}
		table.Append(row)
	}
	table.Render()
}

// PrintMissing prints the per-column missing tallies.
func PrintMissing(w io.Writer, counts []dataset.MissingStat) {
	fmt.Fprintln(w, "Missing Values:")

	table := newTable(w, []string{"Column", "Missing", "Percent"})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})
	for _, m := range counts {
		table.Append([]string{
			m.Column,
			strconv.Itoa(m.Missing),
			fmt.Sprintf("%.2f%%", pct(m.Fraction())),
		})
	}
	table.Render()
}
