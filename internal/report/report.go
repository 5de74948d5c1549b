// Package report prints the per-sample-count summary of a run as a table.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/khx0/statistics/internal/qq"
)

// Header is the table header.
var Header = []string{"N", "Mean", "Std Dev", "Pearson r", "Max Dev", "Raw File", "SHA-256", "Plots"}

// Row is one line of the summary table.
type Row struct {
	Summary qq.Summary
	RawFile string
	// Digest is the short form of the raw file's checksum.
	Digest string
	Plots  int
}

// Table is a model for the summary rows.
type Table struct {
	rows []Row
}

// NewTable creates an empty summary table.
func NewTable() *Table {
	return &Table{}
}

// Add appends a row.
func (t *Table) Add(r Row) {
	t.rows = append(t.rows, r)
}

// Rows returns the table cells, one slice per row.
func (t *Table) Rows() [][]string {
	data := make([][]string, len(t.rows))
	for i, r := range t.rows {
		s := r.Summary
		data[i] = []string{
			strconv.Itoa(s.N),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Correlation),
			formatFloat(s.MaxDeviation),
			r.RawFile,
			r.Digest,
			strconv.Itoa(r.Plots),
		}
	}
	return data
}

// Draw renders the table to w.
func (t *Table) Draw(w io.Writer) error {
	output := tablewriter.NewWriter(w)
	output.SetHeader(Header)
	output.SetAutoFormatHeaders(false)
	output.SetAutoWrapText(false)
	output.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, v := range t.Rows() {
		output.Append(v)
	}
	output.Render()
	return nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}
