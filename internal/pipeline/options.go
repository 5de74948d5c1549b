package pipeline

import (
	"fmt"

	"gonum.org/v1/plot/vg"

	"github.com/khx0/statistics/internal/config"
	"github.com/khx0/statistics/internal/render"
)

// RenderOptions translates the render configuration into the options shared
// by every plot of a run. Name and Title are filled in per sample count.
func RenderOptions(cfg config.RenderConfig, outDir string) (render.Options, error) {
	palette, err := render.ParsePalette(cfg.Palette)
	if err != nil {
		return render.Options{}, fmt.Errorf("invalid palette: %w", err)
	}

	x := render.AxisFormat(cfg.XAxis)
	y := render.AxisFormat(cfg.YAxis)
	for _, a := range []render.AxisFormat{x, y} {
		if err := a.Validate(); err != nil {
			return render.Options{}, err
		}
	}

	canvas := render.Canvas{
		Width:   vg.Length(cfg.WidthCM) * vg.Centimeter,
		Height:  vg.Length(cfg.HeightCM) * vg.Centimeter,
		Margins: render.Margins(cfg.Margins),
	}
	if _, err := canvas.Figure(); err != nil {
		return render.Options{}, err
	}

	opts := render.DefaultOptions("", outDir)
	opts.Palette = palette
	opts.XFormat = &x
	opts.YFormat = &y
	opts.Grid = cfg.Grid
	opts.DateStamp = cfg.DateStamp
	opts.Outputs = render.Outputs{
		PDF: cfg.PDF,
		PNG: cfg.PNG,
		EPS: cfg.EPS,
		SVG: cfg.SVG,
	}
	opts.Canvas = canvas
	return opts, nil
}

// Title returns the plot title for sample count n.
func Title(n int) string {
	return fmt.Sprintf("qq-plot for $n=%d$", n)
}

func optionsFor(base render.Options, n int) render.Options {
	opts := base
	opts.Name = render.OutputName(n)
	opts.Title = Title(n)
	return opts
}
