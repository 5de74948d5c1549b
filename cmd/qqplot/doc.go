// Package main is the entry point for the qqplot batch tool.
//
// qqplot draws seeded standard normal samples for a list of sample sizes,
// stores the (theoretical, sample) quantile pairs and renders one QQ plot
// per sample size.
//
// Commands:
//   - generate: draw and store the sample sets
//   - render: plot the stored sample sets
//   - run: both, in that order (default)
//
// Configuration:
//   - Environment variables (QQPLOT_*, LOG_LEVEL, LOG_DEV)
//   - Optional TOML style file named by QQPLOT_STYLE_FILE
//
// Usage:
//
//	# Default sample sizes, PDF output into ./out
//	./qqplot
//
//	# PNG as well, with grid
//	QQPLOT_PNG=true QQPLOT_GRID=true ./qqplot run
//
// The process exits non-zero on the first error.
package main
