package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khx0/statistics/internal/qq"
)

func TestRows(t *testing.T) {
	table := NewTable()
	table.Add(Row{
		Summary: qq.Summary{N: 10, Mean: 0.1, StdDev: 0.9, Correlation: 0.98765, MaxDeviation: 0.5},
		RawFile: "raw/a.npy",
		Digest:  "0123abcd",
		Plots:   2,
	})
	table.Add(Row{Summary: qq.Summary{N: 1, Correlation: math.NaN()}})

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"10", "0.1000", "0.9000", "0.9877", "0.5000", "raw/a.npy", "0123abcd", "2"}, rows[0])
	assert.Equal(t, "NaN", rows[1][3])
}

func TestDraw(t *testing.T) {
	table := NewTable()
	table.Add(Row{Summary: qq.Summary{N: 100, Correlation: 0.99}, RawFile: "raw/b.npy", Plots: 1})

	var buf bytes.Buffer
	require.NoError(t, table.Draw(&buf))

	out := buf.String()
	assert.Contains(t, out, "Pearson r")
	assert.Contains(t, out, "raw/b.npy")
	assert.Equal(t, 5, strings.Count(out, "\n"), out)
}
