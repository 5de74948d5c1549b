// Package logging provides structured logging for the qqplot batch using uber/zap.
//
// Two modes are available:
//   - Production: JSON lines on stderr
//   - Development: coloured console output with caller information
//
// Child loggers carry the pipeline stage name and the sample count so that
// every line of a run can be traced back to the sample set it concerns.
//
// Example Usage:
//
//	logger, err := logging.New(logging.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer logger.Close()
//	logger.Stage("generate").ForSampleSet(100).Info("sample set written", zap.String("path", path))
package logging
