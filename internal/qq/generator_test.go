package qq

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const testSeed = 123456789

var sampleSizes = []int{10, 20, 50, 100, 500, 1000}

func TestGenerate(t *testing.T) {
	gen := NewGenerator(testSeed)

	for _, n := range sampleSizes {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			testGeneratedSet(t, gen, n)
		})
	}
}

func testGeneratedSet(t *testing.T, gen *Generator, n int) {
	set, err := gen.Generate(n)
	require.NoError(t, err)

	t.Run("shape", func(t *testing.T) {
		r, c := set.Pairs.Dims()
		assert.Equal(t, n, r)
		assert.Equal(t, 2, c)
		assert.Equal(t, n, set.N)
	})

	t.Run("empirical column sorted", func(t *testing.T) {
		assert.True(t, sort.Float64sAreSorted(set.Empirical()))
	})

	t.Run("theoretical column sorted", func(t *testing.T) {
		assert.True(t, sort.Float64sAreSorted(set.Theoretical()))
	})

	t.Run("rank invariant", func(t *testing.T) {
		theoretical := set.Theoretical()
		for i := 1; i <= n; i++ {
			p := (float64(i) - 0.5) / float64(n)
			assert.InDelta(t, distuv.UnitNormal.Quantile(p), theoretical[i-1], 1e-12)
		}
	})
}

func TestGenerateIsDeterministic(t *testing.T) {
	for _, n := range sampleSizes {
		a, err := NewGenerator(testSeed).Generate(n)
		require.NoError(t, err)

		gen := NewGenerator(testSeed)
		_, err = gen.Generate(7)
		require.NoError(t, err)
		b, err := gen.Generate(n)
		require.NoError(t, err)

		// Bitwise equality, not a tolerance.
		assert.True(t, mat.Equal(a.Pairs, b.Pairs), "n=%d", n)
	}
}

func TestGenerateSeedMatters(t *testing.T) {
	a, err := NewGenerator(1).Generate(100)
	require.NoError(t, err)
	b, err := NewGenerator(2).Generate(100)
	require.NoError(t, err)

	assert.False(t, mat.Equal(a.Pairs, b.Pairs))
	assert.Equal(t, a.Theoretical(), b.Theoretical())
}

func TestGenerateEmpiricalIsSortedDraw(t *testing.T) {
	gen := NewGenerator(testSeed)
	drawn := gen.Draw(50)
	sort.Float64s(drawn)

	set, err := gen.Generate(50)
	require.NoError(t, err)
	assert.Equal(t, drawn, set.Empirical())
}

func TestGenerateRejectsNonPositive(t *testing.T) {
	gen := NewGenerator(testSeed)

	for _, n := range []int{0, -1} {
		_, err := gen.Generate(n)
		assert.Error(t, err)
	}
}

func TestDrawLooksNormal(t *testing.T) {
	samples := NewGenerator(testSeed).Draw(100000)

	var sum, sumSq float64
	for _, x := range samples {
		sum += x
		sumSq += x * x
	}
	mean := sum / float64(len(samples))
	variance := sumSq/float64(len(samples)) - mean*mean

	assert.InDelta(t, 0.0, mean, 0.02)
	assert.InDelta(t, 1.0, variance, 0.02)
}

func TestPlottingPositions(t *testing.T) {
	positions := PlottingPositions(10)

	require.Len(t, positions, 10)
	assert.InDelta(t, 0.05, positions[0], 1e-15)
	assert.InDelta(t, 0.95, positions[9], 1e-15)
	assert.True(t, sort.Float64sAreSorted(positions))
}

func TestTheoreticalQuantiles(t *testing.T) {
	t.Run("median of odd n", func(t *testing.T) {
		for _, n := range []int{1, 3, 11, 101} {
			q := TheoreticalQuantiles(PlottingPositions(n))
			assert.InDelta(t, 0.0, q[n/2], 1e-12, "n=%d", n)
		}
	})

	t.Run("symmetry", func(t *testing.T) {
		q := TheoreticalQuantiles(PlottingPositions(20))
		for i := range q {
			assert.InDelta(t, -q[i], q[len(q)-1-i], 1e-9)
		}
	})

	t.Run("known values", func(t *testing.T) {
		q := TheoreticalQuantiles([]float64{0.05, 0.5, 0.975})
		assert.InDelta(t, -1.6448536269514729, q[0], 1e-9)
		assert.InDelta(t, 0.0, q[1], 1e-12)
		assert.InDelta(t, 1.959963984540054, q[2], 1e-9)
	})
}

func TestPair(t *testing.T) {
	t.Run("columns", func(t *testing.T) {
		pairs, err := Pair([]float64{-1, 0, 1}, []float64{-0.5, 0.1, 2})
		require.NoError(t, err)

		assert.Equal(t, []float64{-1, 0, 1}, mat.Col(nil, TheoreticalCol, pairs))
		assert.Equal(t, []float64{-0.5, 0.1, 2}, mat.Col(nil, EmpiricalCol, pairs))
	})

	t.Run("shape mismatch fails fast", func(t *testing.T) {
		theoretical := TheoreticalQuantiles(PlottingPositions(9))
		empirical := NewGenerator(testSeed).Draw(10)

		pairs, err := Pair(theoretical, empirical)
		assert.Nil(t, pairs)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrShapeMismatch))
	})

	t.Run("longer theoretical column", func(t *testing.T) {
		_, err := Pair(make([]float64, 11), make([]float64, 10))
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Pair(nil, nil)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestNewSampleSet(t *testing.T) {
	set, err := NewSampleSet(mat.NewDense(3, 2, []float64{-1, -1.2, 0, 0.1, 1, 0.9}))
	require.NoError(t, err)
	assert.Equal(t, 3, set.N)

	_, err = NewSampleSet(mat.NewDense(3, 3, nil))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSummarize(t *testing.T) {
	t.Run("perfect fit", func(t *testing.T) {
		q := TheoreticalQuantiles(PlottingPositions(25))
		pairs, err := Pair(q, q)
		require.NoError(t, err)

		s := Summarize(&SampleSet{N: 25, Pairs: pairs})
		assert.InDelta(t, 1.0, s.Correlation, 1e-12)
		assert.Equal(t, 0.0, s.MaxDeviation)
		assert.InDelta(t, 0.0, s.Mean, 1e-12)
	})

	t.Run("generated set", func(t *testing.T) {
		set, err := NewGenerator(testSeed).Generate(1000)
		require.NoError(t, err)

		s := Summarize(set)
		assert.Equal(t, 1000, s.N)
		assert.Greater(t, s.Correlation, 0.99)
		assert.InDelta(t, 1.0, s.StdDev, 0.1)
		assert.Greater(t, s.MaxDeviation, 0.0)
	})

	t.Run("single sample", func(t *testing.T) {
		set, err := NewGenerator(testSeed).Generate(1)
		require.NoError(t, err)

		s := Summarize(set)
		assert.True(t, math.IsNaN(s.Correlation))
	})
}
