package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Margins are the fractions of the figure that lie left of, right of, below
// and above the plotting canvas, expressed as the positions of the canvas
// edges: Left and Bottom from the lower-left corner, Right and Top likewise.
type Margins struct {
	Left   float64
	Right  float64
	Bottom float64
	Top    float64
}

// Validate checks that the canvas edges are ordered and inside the figure.
func (m Margins) Validate() error {
	if m.Left < 0 || m.Bottom < 0 || m.Right > 1 || m.Top > 1 || m.Left >= m.Right || m.Bottom >= m.Top {
		return fmt.Errorf("margins %+v do not leave a plotting canvas", m)
	}
	return nil
}

// Canvas is the requested physical size of the plotting canvas, axes
// excluded, and the margins reserved around it.
type Canvas struct {
	Width   vg.Length
	Height  vg.Length
	Margins Margins
}

// DefaultCanvas returns a 5 cm × 4 cm canvas.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:  5 * vg.Centimeter,
		Height: 4 * vg.Centimeter,
		Margins: Margins{
			Left:   0.15,
			Right:  0.95,
			Bottom: 0.15,
			Top:    0.92,
		},
	}
}

// Figure is the total size of the rendered image.
type Figure struct {
	Width   vg.Length
	Height  vg.Length
	Margins Margins
}

// Figure computes the figure size whose canvas, once the margins are taken
// away, has exactly the requested width and height.
func (c Canvas) Figure() (Figure, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return Figure{}, fmt.Errorf("canvas size %v x %v must be positive", c.Width, c.Height)
	}
	if err := c.Margins.Validate(); err != nil {
		return Figure{}, err
	}
	return Figure{
		Width:   c.Width / vg.Length(c.Margins.Right-c.Margins.Left),
		Height:  c.Height / vg.Length(c.Margins.Top-c.Margins.Bottom),
		Margins: c.Margins,
	}, nil
}

// DataRect returns the rectangle the plotting canvas occupies inside the
// figure.
func (f Figure) DataRect() vg.Rectangle {
	return vg.Rectangle{
		Min: vg.Point{X: vg.Length(f.Margins.Left) * f.Width, Y: vg.Length(f.Margins.Bottom) * f.Height},
		Max: vg.Point{X: vg.Length(f.Margins.Right) * f.Width, Y: vg.Length(f.Margins.Top) * f.Height},
	}
}

// place returns the region of dc to draw p into so that p's data area lands
// on the figure's canvas rectangle. Axes, labels and title go into the
// margins. When a margin is too narrow for them the region is clamped to
// the figure and the canvas shrinks on that side.
func place(p *plot.Plot, dc draw.Canvas, f Figure) draw.Canvas {
	data := p.DataCanvas(dc)
	left := data.Min.X - dc.Min.X
	bottom := data.Min.Y - dc.Min.Y
	right := dc.Max.X - data.Max.X
	top := dc.Max.Y - data.Max.Y

	target := f.DataRect()
	return draw.Crop(dc,
		nonNegative(target.Min.X-left),
		-nonNegative(f.Width-target.Max.X-right),
		nonNegative(target.Min.Y-bottom),
		-nonNegative(f.Height-target.Max.Y-top),
	)
}

func nonNegative(l vg.Length) vg.Length {
	if l < 0 {
		return 0
	}
	return l
}
