package render

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// AxisFormat is the range and tick layout of one axis. Tick positions follow
// the half-open interval [TickStart, TickEnd) in steps of MajorStep and
// MinorStep; only ticks inside [Min, Max] are drawn.
type AxisFormat struct {
	Min       float64
	Max       float64
	TickStart float64
	TickEnd   float64
	MajorStep float64
	MinorStep float64
}

// Validate rejects layouts that cannot produce an axis.
func (a AxisFormat) Validate() error {
	switch {
	case math.IsNaN(a.Min) || math.IsNaN(a.Max) || a.Min >= a.Max:
		return fmt.Errorf("axis range [%g, %g] is empty", a.Min, a.Max)
	case !(a.MajorStep > 0) || !(a.MinorStep > 0):
		return fmt.Errorf("axis tick steps %g/%g must be positive", a.MajorStep, a.MinorStep)
	case !(a.TickStart < a.TickEnd):
		return fmt.Errorf("axis tick interval [%g, %g) is empty", a.TickStart, a.TickEnd)
	}
	return nil
}

// MajorTicks returns the major tick positions.
func (a AxisFormat) MajorTicks() []float64 {
	return arange(a.TickStart, a.TickEnd, a.MajorStep)
}

// MinorTicks returns the minor tick positions.
func (a AxisFormat) MinorTicks() []float64 {
	return arange(a.TickStart, a.TickEnd, a.MinorStep)
}

// Padded widens [Min, Max] outwards by frac of each bound's magnitude.
func (a AxisFormat) Padded(frac float64) (lo, hi float64) {
	return pad(a.Min, a.Max, frac)
}

func pad(lo, hi, frac float64) (float64, float64) {
	return lo - frac*math.Abs(lo), hi + frac*math.Abs(hi)
}

// arange returns start, start+step, ... up to but excluding end.
func arange(start, end, step float64) []float64 {
	n := int(math.Ceil((end - start) / step))
	if n <= 0 {
		return nil
	}
	values := make([]float64, n)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	return values
}

// tickEpsilon absorbs the rounding left by arange.
const tickEpsilon = 1e-9

// fixedTicker implements plot.Ticker with explicit major positions. The
// minor positions are kept for the minor tick and grid plotters, which draw
// them thinner than the axis would.
type fixedTicker struct {
	major []float64
	minor []float64
}

func newFixedTicker(a AxisFormat) fixedTicker {
	return fixedTicker{major: a.MajorTicks(), minor: a.MinorTicks()}
}

// Ticks returns the labelled major ticks inside [min, max].
func (t fixedTicker) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for _, v := range t.major {
		if inRange(v, min, max) {
			ticks = append(ticks, plot.Tick{Value: v, Label: tickLabel(v)})
		}
	}
	return ticks
}

// minors returns the minor positions inside [min, max]. Positions that
// coincide with a major tick are dropped.
func (t fixedTicker) minors(min, max float64) []float64 {
	var values []float64
	for _, v := range t.minor {
		if inRange(v, min, max) && !t.isMajor(v) {
			values = append(values, v)
		}
	}
	return values
}

func inRange(v, min, max float64) bool {
	return v >= min-tickEpsilon && v <= max+tickEpsilon
}

func (t fixedTicker) isMajor(v float64) bool {
	for _, m := range t.major {
		if math.Abs(m-v) < tickEpsilon {
			return true
		}
	}
	return false
}

// tickLabel prints the shortest decimal form of v, rounded to hide
// accumulated step error.
func tickLabel(v float64) string {
	v = math.Round(v*1e9) / 1e9
	if v == 0 {
		v = 0 // no "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
