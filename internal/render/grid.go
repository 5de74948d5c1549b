package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// majorGrid returns gonum's grid, which follows the major ticks only.
func majorGrid(s Style) *plotter.Grid {
	g := plotter.NewGrid()
	line := draw.LineStyle{Color: s.gridColor(s.GridMajorAlpha), Width: s.GridMajorWidth}
	g.Vertical = line
	g.Horizontal = line
	return g
}

// minorValues returns the minor tick positions of an axis. Fixed layouts
// keep their minors out of the axis ticks, so they are asked directly.
func minorValues(a plot.Axis) []float64 {
	if t, ok := a.Tick.Marker.(fixedTicker); ok {
		return t.minors(a.Min, a.Max)
	}
	var values []float64
	for _, tk := range a.Tick.Marker.Ticks(a.Min, a.Max) {
		if tk.IsMinor() {
			values = append(values, tk.Value)
		}
	}
	return values
}

// minorGrid draws grid lines at the minor ticks of both axes.
type minorGrid struct {
	line draw.LineStyle
}

func newMinorGrid(s Style) minorGrid {
	return minorGrid{line: draw.LineStyle{Color: s.gridColor(s.GridMinorAlpha), Width: s.GridMinorWidth}}
}

// Plot implements plot.Plotter.
func (g minorGrid) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	for _, v := range minorValues(plt.X) {
		x := trX(v)
		c.StrokeLine2(g.line, x, c.Min.Y, x, c.Max.Y)
	}
	for _, v := range minorValues(plt.Y) {
		y := trY(v)
		c.StrokeLine2(g.line, c.Min.X, y, c.Max.X, y)
	}
}

// minorTicks draws the minor ticks of fixed axis layouts outwards from the
// bottom and left edges of the data area, where the axis lines run.
// Autoscaled axes draw their own minor ticks.
type minorTicks struct {
	width  vg.Length
	length vg.Length
}

func newMinorTicks(s Style) minorTicks {
	return minorTicks{width: s.MinorTickWidth, length: s.MinorTickLength}
}

// Plot implements plot.Plotter.
func (m minorTicks) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)

	if t, ok := plt.X.Tick.Marker.(fixedTicker); ok {
		line := plt.X.Tick.LineStyle
		line.Width = m.width
		for _, v := range t.minors(plt.X.Min, plt.X.Max) {
			x := trX(v)
			c.StrokeLine2(line, x, c.Min.Y-m.length, x, c.Min.Y)
		}
	}
	if t, ok := plt.Y.Tick.Marker.(fixedTicker); ok {
		line := plt.Y.Tick.LineStyle
		line.Width = m.width
		for _, v := range t.minors(plt.Y.Min, plt.Y.Max) {
			y := trY(v)
			c.StrokeLine2(line, c.Min.X-m.length, y, c.Min.X, y)
		}
	}
}
