package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/khx0/statistics/internal/qq"
)

// Format is an output image format.
type Format string

const (
	PDF Format = "pdf"
	PNG Format = "png"
	EPS Format = "eps"
	SVG Format = "svg"
)

// Outputs switches the output formats on and off.
type Outputs struct {
	PDF bool
	PNG bool
	EPS bool
	SVG bool
}

// DefaultOutputs writes the vector PDF only.
func DefaultOutputs() Outputs {
	return Outputs{PDF: true}
}

// Formats lists the enabled formats in a fixed order.
func (o Outputs) Formats() []Format {
	var formats []Format
	if o.PDF {
		formats = append(formats, PDF)
	}
	if o.EPS {
		formats = append(formats, EPS)
	}
	if o.SVG {
		formats = append(formats, SVG)
	}
	if o.PNG {
		formats = append(formats, PNG)
	}
	return formats
}

// Options is everything one render call needs besides the data.
type Options struct {
	// Name is the output file name without date stamp or extension.
	Name string
	Dir  string
	// Palette[0] colours the markers and the reference line.
	Palette []color.Color
	// XFormat and YFormat fix the axis layout; nil leaves the axis to
	// gonum's autoscaling.
	XFormat   *AxisFormat
	YFormat   *AxisFormat
	Title     string
	Grid      bool
	DateStamp bool
	Outputs   Outputs
	Canvas    Canvas
	Style     Style
}

// DefaultOptions returns the options of the reference plots for name.
func DefaultOptions(name, dir string) Options {
	axis := AxisFormat{Min: -2.9, Max: 2.9, TickStart: -3.0, TickEnd: 2.51, MajorStep: 1.0, MinorStep: 0.5}
	x, y := axis, axis
	return Options{
		Name:      name,
		Dir:       dir,
		Palette:   []color.Color{color.Black},
		XFormat:   &x,
		YFormat:   &y,
		DateStamp: true,
		Outputs:   DefaultOutputs(),
		Canvas:    DefaultCanvas(),
		Style:     DefaultStyle(),
	}
}

// Artifact is one written image file.
type Artifact struct {
	Format Format
	Path   string
}

// Renderer writes QQ plots. It holds no styling state; the clock is only
// read for date stamps.
type Renderer struct {
	now func() time.Time
}

// NewRenderer returns a renderer that stamps file names with today's date.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// NewRendererWithClock returns a renderer that reads the date from now.
func NewRendererWithClock(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

// Render draws the sample set and writes one file per enabled format.
func (r *Renderer) Render(set *qq.SampleSet, opts Options) ([]Artifact, error) {
	if opts.Name == "" {
		return nil, errors.New("output name is required")
	}
	fig, err := opts.Canvas.Figure()
	if err != nil {
		return nil, err
	}

	p, err := Plot(set, opts)
	if err != nil {
		return nil, err
	}

	formats := opts.Outputs.Formats()
	if len(formats) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", opts.Dir, err)
	}

	name := opts.Name
	if opts.DateStamp {
		name = stamp(name, r.now())
	}

	artifacts := make([]Artifact, 0, len(formats))
	for _, format := range formats {
		path := filepath.Join(opts.Dir, name+"."+string(format))
		if err := write(p, fig, format, path, opts.Style); err != nil {
			return artifacts, err
		}
		artifacts = append(artifacts, Artifact{Format: format, Path: path})
	}
	return artifacts, nil
}

// Plot builds the QQ plot of a sample set: reference line, open-circle
// scatter, minor ticks, optional grid, then ticks and limits.
func Plot(set *qq.SampleSet, opts Options) (*plot.Plot, error) {
	if len(opts.Palette) == 0 {
		return nil, errors.New("palette is empty")
	}
	for _, f := range []*AxisFormat{opts.XFormat, opts.YFormat} {
		if f == nil {
			continue
		}
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	style := opts.Style
	ink := opts.Palette[0]

	p := plot.New()
	applyStyle(p, style)
	p.Title.Text = opts.Title

	lo, hi := diagonalSpan(set, opts.XFormat, style.DiagonalPad)
	line, err := plotter.NewLine(diagonal(lo, hi, style.DiagonalPoints))
	if err != nil {
		return nil, fmt.Errorf("failed to build reference line: %w", err)
	}
	line.LineStyle = draw.LineStyle{Color: ink, Width: style.LineWidth}

	scatter, err := plotter.NewScatter(pairXYs{set.Pairs})
	if err != nil {
		return nil, fmt.Errorf("failed to build scatter for n=%d: %w", set.N, err)
	}
	scatter.GlyphStyle = draw.GlyphStyle{Color: ink, Radius: style.MarkerRadius, Shape: draw.RingGlyph{}}

	p.Add(line, unpaddedScatter{scatter}, newMinorTicks(style))

	if opts.Grid {
		p.Add(majorGrid(style), newMinorGrid(style))
	}

	// Add widened the axes to the data; the limits go in last.
	applyAxis(&p.X, opts.XFormat)
	applyAxis(&p.Y, opts.YFormat)
	return p, nil
}

func applyStyle(p *plot.Plot, s Style) {
	handler := s.textHandler()

	p.Title.TextStyle.Font = s.fontOfSize(s.TitleSize)
	p.Title.TextStyle.Handler = handler
	p.Title.Padding = s.TitlePad

	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.Padding = 0
		a.LineStyle.Width = s.AxisLineWidth
		a.Tick.Length = s.TickLength
		a.Tick.LineStyle.Width = s.TickWidth
		a.Tick.Label.Font = s.fontOfSize(s.TickLabelSize)
		a.Label.TextStyle.Font = s.fontOfSize(s.LabelSize)
		a.Label.TextStyle.Handler = handler
		a.Label.Padding = s.LabelPad
	}
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
}

func applyAxis(a *plot.Axis, f *AxisFormat) {
	if f == nil {
		return
	}
	a.Tick.Marker = newFixedTicker(*f)
	a.Min, a.Max = f.Min, f.Max
}

// diagonalSpan is the padded x range of the reference line.
func diagonalSpan(set *qq.SampleSet, x *AxisFormat, frac float64) (float64, float64) {
	if x != nil {
		return x.Padded(frac)
	}
	theoretical := set.Theoretical()
	return pad(floats.Min(theoretical), floats.Max(theoretical), frac)
}

// diagonal samples y = x at n evenly spaced points of [lo, hi].
func diagonal(lo, hi float64, n int) plotter.XYs {
	if n < 2 {
		n = 2
	}
	xs := floats.Span(make([]float64, n), lo, hi)
	xys := make(plotter.XYs, n)
	for i, x := range xs {
		xys[i].X = x
		xys[i].Y = x
	}
	return xys
}

// pairXYs adapts a pair matrix to plotter.XYer.
type pairXYs struct {
	m *mat.Dense
}

func (p pairXYs) Len() int {
	r, _ := p.m.Dims()
	return r
}

func (p pairXYs) XY(i int) (x, y float64) {
	return p.m.At(i, qq.TheoreticalCol), p.m.At(i, qq.EmpiricalCol)
}

// unpaddedScatter hides the scatter's glyph boxes from the plot so that
// markers near the limits do not shrink the data area. Markers outside the
// limits are not drawn.
type unpaddedScatter struct {
	s *plotter.Scatter
}

func (u unpaddedScatter) Plot(c draw.Canvas, p *plot.Plot) {
	u.s.Plot(c, p)
}

func (u unpaddedScatter) DataRange() (xmin, xmax, ymin, ymax float64) {
	return u.s.DataRange()
}

// canvasWriter is a drawable canvas that can serialise itself.
type canvasWriter interface {
	vg.CanvasSizer
	io.WriterTo
}

func newCanvas(format Format, fig Figure, s Style) (canvasWriter, error) {
	switch format {
	case PDF:
		return vgpdf.New(fig.Width, fig.Height), nil
	case EPS:
		return vgeps.New(fig.Width, fig.Height), nil
	case SVG:
		return vgsvg.New(fig.Width, fig.Height), nil
	case PNG:
		c := vgimg.NewWith(vgimg.UseWH(fig.Width, fig.Height), vgimg.UseDPI(int(s.RasterDPI)))
		return vgimg.PngCanvas{Canvas: c}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func write(p *plot.Plot, fig Figure, format Format, path string, s Style) error {
	c, err := newCanvas(format, fig, s)
	if err != nil {
		return err
	}

	// Raster output always gets an opaque background.
	p.BackgroundColor = color.White
	if s.TransparentBack && format != PNG {
		p.BackgroundColor = color.Transparent
	}
	dc := draw.New(c)
	p.Draw(place(p, dc, fig))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
