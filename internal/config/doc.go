// Package config provides 12-factor configuration for the qqplot batch.
//
// Configuration is loaded from environment variables with defaults that
// reproduce the reference QQ plots. An optional TOML style file can override
// the render layout without touching the environment.
//
// Configuration Sections:
//   - Pipeline: sample sizes and the pseudorandom seed
//   - Paths: raw-data store and artifact directories
//   - Render: output formats, grid, date stamp, palette, canvas, axes
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Pipeline.SampleSizes)
//
// Environment Variables:
//   - QQPLOT_SAMPLE_SIZES, QQPLOT_SEED
//   - QQPLOT_RAW_DIR, QQPLOT_OUT_DIR
//   - QQPLOT_PDF, QQPLOT_PNG, QQPLOT_EPS, QQPLOT_SVG
//   - QQPLOT_GRID, QQPLOT_DATESTAMP, QQPLOT_PALETTE
//   - QQPLOT_WIDTH_CM, QQPLOT_HEIGHT_CM, QQPLOT_STYLE_FILE
//   - RENDER_MARGINS_{LEFT,RIGHT,BOTTOM,TOP}
//   - RENDER_XAXIS_{MIN,MAX,TICKSTART,TICKEND,MAJORSTEP,MINORSTEP} (and RENDER_YAXIS_*)
//   - LOG_LEVEL, LOG_DEV
//
// Style file example:
//
//	palette = ["#1f77b4"]
//	grid = true
//
//	[x_axis]
//	min = -3.5
//	max = 3.5
//	tick_start = -4.0
//	tick_end = 3.51
//	major_step = 1.0
//	minor_step = 0.5
package config
