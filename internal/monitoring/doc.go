/*
Package monitoring collects Prometheus metrics for a pipeline run.

# Overview

A batch run has no scrape endpoint, so every Metrics value owns a private
registry and writes it to a node-exporter textfile when the run ends. The
file can be picked up by the textfile collector or simply inspected.

# Metrics

- Stage runs and durations, labelled by stage and status
- Samples drawn and sample sets stored
- Artifacts written and their sizes, labelled by format
- Pearson correlation and maximum deviation per sample count

# Usage

	metrics := monitoring.NewMetrics()

	timer := monitoring.NewTimer(metrics, "generate")
	// ... generate a sample set ...
	timer.Stop(monitoring.StatusSuccess)

	metrics.ObserveSampleSet(100, 0.995, 0.21)
	if err := metrics.WriteTextfile("out/qqplot.prom"); err != nil {
		return err
	}
*/
package monitoring
