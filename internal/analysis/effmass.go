package analysis

import (
	"fmt"

	"github.com/quanta-lab/polarisim/internal/physics"
	"github.com/quanta-lab/polarisim/internal/spectrum"
)

// EffectiveMass estimates the curvature mass of a branch at the start of
// the grid from a three-point finite difference, in units of the free
// electron mass. The grid should start at (or very near) k = 0 for the
// number to mean the usual polariton effective mass.
func EffectiveMass(res *spectrum.Result, branch int) (float64, error) {
	if res == nil || branch < 0 || branch >= res.NumBranches() {
		return 0, fmt.Errorf("no branch %d in sweep", branch)
	}
	if len(res.Ks) < 3 {
		return 0, fmt.Errorf("need at least 3 grid points, got %d", len(res.Ks))
	}

	e := res.Branches[branch]
	dk := res.Ks[1] - res.Ks[0]
	curv := (e[0] - 2*e[1] + e[2]) / (dk * dk) // eV·µm²
	if curv == 0 {
		return 0, fmt.Errorf("flat branch %d, curvature is zero", branch)
	}

	// E ≈ E₀ + (ħck)²/(2·m*·mₑc²)  ⇒  m*/mₑ = (ħc)²/(curv·mₑc²)
	return physics.HBarC * physics.HBarC / (curv * physics.ElectronMass), nil
}
