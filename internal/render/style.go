package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// Style holds every data-independent rendering constant. A Style value is
// passed with each render call; nothing is kept between calls.
type Style struct {
	Font     font.Font
	MathText bool

	AxisLineWidth vg.Length
	// Ticks point outwards on the bottom and left axes only.
	TickLength      vg.Length
	TickWidth       vg.Length
	MinorTickLength vg.Length
	MinorTickWidth  vg.Length
	TickLabelSize   vg.Length

	LabelSize vg.Length
	LabelPad  vg.Length
	TitleSize vg.Length
	TitlePad  vg.Length

	LineWidth    vg.Length
	MarkerRadius vg.Length
	// DiagonalPad widens the reference line beyond the x range by this
	// fraction on each side.
	DiagonalPad    float64
	DiagonalPoints int

	GridColor       color.NRGBA
	GridMajorAlpha  float64
	GridMinorAlpha  float64
	GridMajorWidth  vg.Length
	GridMinorWidth  vg.Length
	RasterDPI       float64
	XLabel, YLabel  string
	TransparentBack bool
}

// DefaultStyle returns the publication style of the reference plots.
func DefaultStyle() Style {
	return Style{
		Font:     font.Font{Typeface: "Liberation", Variant: "Sans"},
		MathText: true,

		AxisLineWidth:   vg.Points(0.5),
		TickLength:      vg.Points(3.0),
		TickWidth:       vg.Points(0.5),
		MinorTickLength: vg.Points(1.5),
		MinorTickWidth:  vg.Points(0.25),
		TickLabelSize:   vg.Points(6.0),

		LabelSize: vg.Points(7.0),
		LabelPad:  vg.Points(2.5),
		TitleSize: vg.Points(7.0),
		TitlePad:  vg.Points(2.0),

		LineWidth: vg.Points(0.5),
		// A marker area of 15 pt², as a radius.
		MarkerRadius:   vg.Points(1.94),
		DiagonalPad:    0.05,
		DiagonalPoints: 500,

		GridColor:       color.NRGBA{R: 128, G: 128, B: 128, A: 255},
		GridMajorAlpha:  0.2,
		GridMinorAlpha:  0.05,
		GridMajorWidth:  vg.Points(0.4),
		GridMinorWidth:  vg.Points(0.2),
		RasterDPI:       600,
		XLabel:          "theoretical quantiles",
		YLabel:          "sample quantiles",
		TransparentBack: true,
	}
}

func (s Style) textHandler() text.Handler {
	if s.MathText {
		return text.Latex{Fonts: font.DefaultCache}
	}
	return text.Plain{Fonts: font.DefaultCache}
}

func (s Style) fontOfSize(size vg.Length) font.Font {
	f := s.Font
	f.Size = size
	return f
}

func (s Style) gridColor(alpha float64) color.NRGBA {
	c := s.GridColor
	c.A = uint8(alpha*255 + 0.5)
	return c
}

// shortColors are the single-letter colour codes accepted in palettes.
var shortColors = map[string]string{
	"k": "#000000",
	"w": "#ffffff",
	"r": "#ff0000",
	"g": "#008000",
	"b": "#0000ff",
	"c": "#00bfbf",
	"m": "#bf00bf",
	"y": "#bfbf00",
}

// ParseColor accepts "#rrggbb" hex codes and single-letter colour codes.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if hex, ok := shortColors[strings.ToLower(s)]; ok {
		s = hex
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return c, nil
}

// ParsePalette parses every entry of a palette.
func ParsePalette(entries []string) ([]color.Color, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	palette := make([]color.Color, len(entries))
	for i, e := range entries {
		c, err := ParseColor(e)
		if err != nil {
			return nil, err
		}
		palette[i] = c
	}
	return palette, nil
}
