package analysis

import (
	"math"

	"github.com/quanta-lab/polarisim/internal/spectrum"
)

// Gap is the minimum separation between two adjacent polariton branches
// over the swept grid, i.e. the anticrossing (Rabi) splitting when the
// branches repel around a bare crossing.
type Gap struct {
	Lower int     // index of the lower branch
	Upper int     // index of the upper branch
	K     float64 // momentum of minimum separation
	Split float64 // eV
}

// MinimumGaps returns one Gap per adjacent branch pair.
func MinimumGaps(res *spectrum.Result) []Gap {
	if res == nil || res.NumBranches() < 2 {
		return nil
	}

	gaps := make([]Gap, 0, res.NumBranches()-1)
	for j := 0; j < res.NumBranches()-1; j++ {
		g := Gap{Lower: j, Upper: j + 1, Split: math.Inf(1)}
		for i, k := range res.Ks {
			d := res.Branches[j+1][i] - res.Branches[j][i]
			if d < g.Split {
				g.Split = d
				g.K = k
			}
		}
		gaps = append(gaps, g)
	}
	return gaps
}

// RabiSplitting returns the smallest anticrossing gap of the sweep, the
// usual headline number for a strongly coupled cavity.
func RabiSplitting(res *spectrum.Result) (Gap, bool) {
	gaps := MinimumGaps(res)
	if len(gaps) == 0 {
		return Gap{}, false
	}
	best := gaps[0]
	for _, g := range gaps[1:] {
		if g.Split < best.Split {
			best = g
		}
	}
	return best, true
}
