// Package render draws QQ plots with gonum/plot and writes them as PDF,
// PNG, EPS or SVG files.
//
// A render call takes a sample set and an Options value and is otherwise
// stateless: the style, canvas geometry, axis layout and palette travel
// with the call. The figure is sized so that the plotting canvas, axes
// excluded, has the requested physical size; axes, labels and the title are
// placed in the margins around it.
//
// The plot consists of the reference line y = x, drawn slightly past the x
// range and clipped, the sample pairs as open circles, an optional major and
// minor grid, and fixed major ticks with thinner minor ticks. Vector
// outputs get a transparent background.
//
//	r := render.NewRenderer()
//	opts := render.DefaultOptions(render.OutputName(set.N), "out")
//	artifacts, err := r.Render(set, opts)
package render
