package qq

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes how closely a sample set follows the reference line.
type Summary struct {
	N int
	// Mean and StdDev are the sample moments of the empirical column.
	Mean   float64
	StdDev float64
	// Correlation is Pearson's r between the two columns, the
	// probability-plot correlation coefficient.
	Correlation float64
	// MaxDeviation is the largest |empirical - theoretical| over all ranks.
	MaxDeviation float64
}

// Summarize computes the fit statistics of a sample set. Moments and the
// correlation are NaN for a single sample.
func Summarize(s *SampleSet) Summary {
	theoretical := s.Theoretical()
	empirical := s.Empirical()

	mean, std := stat.MeanStdDev(empirical, nil)

	var maxDev float64
	for i := range empirical {
		maxDev = math.Max(maxDev, math.Abs(empirical[i]-theoretical[i]))
	}

	corr := math.NaN()
	if s.N > 1 {
		corr = stat.Correlation(theoretical, empirical, nil)
	}

	return Summary{
		N:            s.N,
		Mean:         mean,
		StdDev:       std,
		Correlation:  corr,
		MaxDeviation: maxDev,
	}
}
