/*
Package pipeline runs the two stages of a QQ-plot batch.

# Overview

Stage a draws one sample set per configured sample count and writes it to
the raw-data store. Stage b reads every sample set back and renders one
plot per enabled format. A full run performs stage a for all sample counts
before stage b starts, so the renderer only ever sees data that went
through the store.

Every run gets a ULID run ID and ends by writing a YAML manifest and a
Prometheus metrics textfile. Runs that render write them into the output
directory; a generate-only run writes them next to the raw data. The first
error aborts the batch.

# Usage

	p, err := pipeline.New(cfg, log)
	if err != nil {
		return err
	}
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}
	result.Table.Draw(os.Stdout)
*/
package pipeline
