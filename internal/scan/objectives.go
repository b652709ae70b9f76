package scan

import (
	"math"

	"github.com/quanta-lab/polarisim/internal/analysis"
	"github.com/quanta-lab/polarisim/internal/spectrum"
)

// Resonance scores a sweep by its smallest anticrossing gap. Minimizing
// it over the cavity energy parks the photon mode on an exciton line,
// where the gap bottoms out at the bare Rabi splitting.
func Resonance(res *spectrum.Result) float64 {
	gap, ok := analysis.RabiSplitting(res)
	if !ok {
		return math.Inf(1)
	}
	return gap.Split
}

// TargetSplitting scores the distance of the Rabi splitting from a
// target value in eV.
func TargetSplitting(target float64) Objective {
	return func(res *spectrum.Result) float64 {
		gap, ok := analysis.RabiSplitting(res)
		if !ok {
			return math.Inf(1)
		}
		return math.Abs(gap.Split - target)
	}
}

// TargetCrossing scores the distance of the first bare-mode crossing
// from a target momentum in 1/µm; sweeps without a crossing score +Inf.
func TargetCrossing(target float64) Objective {
	return func(res *spectrum.Result) float64 {
		crossings := analysis.BareCrossings(res)
		if len(crossings) == 0 {
			return math.Inf(1)
		}
		best := math.Inf(1)
		for _, c := range crossings {
			if d := math.Abs(c.K - target); d < best {
				best = d
			}
		}
		return best
	}
}
