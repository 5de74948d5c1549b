package qq

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ErrShapeMismatch is returned when the theoretical and empirical quantile
// sequences differ in length. It is never recovered from.
var ErrShapeMismatch = errors.New("shape mismatch")

// Column indices of a sample set's pair matrix.
const (
	TheoreticalCol = 0
	EmpiricalCol   = 1
)

// SampleSet is the ordered sequence of (theoretical, empirical) quantile
// pairs for one sample count, stored as an N×2 matrix sorted by the
// empirical column.
type SampleSet struct {
	N     int
	Pairs *mat.Dense
}

// NewSampleSet wraps an existing N×2 matrix, typically one read back from the
// raw-data store.
func NewSampleSet(pairs *mat.Dense) (*SampleSet, error) {
	r, c := pairs.Dims()
	if c != 2 {
		return nil, fmt.Errorf("%w: pair matrix is %dx%d, want %dx2", ErrShapeMismatch, r, c, r)
	}
	return &SampleSet{N: r, Pairs: pairs}, nil
}

// Theoretical returns a copy of the theoretical quantile column.
func (s *SampleSet) Theoretical() []float64 {
	return mat.Col(nil, TheoreticalCol, s.Pairs)
}

// Empirical returns a copy of the sorted sample column.
func (s *SampleSet) Empirical() []float64 {
	return mat.Col(nil, EmpiricalCol, s.Pairs)
}

// Generator draws standard normal samples and pairs them with the matching
// theoretical quantiles. Every call reseeds, so a given N always yields the
// same sample set.
type Generator struct {
	seed uint64
}

// NewGenerator returns a generator that seeds every draw with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{seed: seed}
}

// Seed returns the seed applied to every draw.
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Generate draws n samples from N(0,1) and returns the sorted
// (theoretical, empirical) pairs.
func (g *Generator) Generate(n int) (*SampleSet, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", n)
	}

	samples := g.Draw(n)
	sort.Float64s(samples)

	positions := PlottingPositions(n)
	if len(positions) != len(samples) {
		return nil, fmt.Errorf("%w: %d plotting positions for %d samples", ErrShapeMismatch, len(positions), len(samples))
	}

	pairs, err := Pair(TheoreticalQuantiles(positions), samples)
	if err != nil {
		return nil, err
	}
	return &SampleSet{N: n, Pairs: pairs}, nil
}

// Draw returns n unsorted N(0,1) samples from a freshly seeded source.
func (g *Generator) Draw(n int) []float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
		Src:   rand.NewPCG(g.seed, g.seed),
	}

	samples := make([]float64, n)
	for i := range samples {
		samples[i] = dist.Rand()
	}
	return samples
}

// PlottingPositions returns p_i = (i - 0.5)/n for i = 1..n.
func PlottingPositions(n int) []float64 {
	positions := make([]float64, n)
	for i := range positions {
		positions[i] = (float64(i+1) - 0.5) / float64(n)
	}
	return positions
}

// TheoreticalQuantiles evaluates the standard normal inverse CDF at each
// probability.
func TheoreticalQuantiles(positions []float64) []float64 {
	quantiles := make([]float64, len(positions))
	for i, p := range positions {
		quantiles[i] = distuv.UnitNormal.Quantile(p)
	}
	return quantiles
}

// Pair interleaves the theoretical and empirical quantiles into an N×2
// matrix. It refuses sequences of different length instead of truncating
// or padding either one.
func Pair(theoretical, empirical []float64) (*mat.Dense, error) {
	if len(theoretical) != len(empirical) {
		return nil, fmt.Errorf("%w: %d theoretical quantiles for %d samples", ErrShapeMismatch, len(theoretical), len(empirical))
	}
	if len(theoretical) == 0 {
		return nil, fmt.Errorf("%w: no quantiles to pair", ErrShapeMismatch)
	}

	pairs := mat.NewDense(len(theoretical), 2, nil)
	pairs.SetCol(TheoreticalCol, theoretical)
	pairs.SetCol(EmpiricalCol, empirical)
	return pairs, nil
}
