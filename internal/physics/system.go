package physics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System is one cavity photon mode coupled to a set of exciton resonances.
// The Hamiltonian at momentum k is real symmetric: bare energies on the
// diagonal, photon–exciton couplings in row/column 0, no direct
// exciton–exciton coupling.
type System struct {
	Cavity   Cavity
	Excitons []Exciton

	// CouplingScale multiplies every exciton coupling. 1 by default;
	// exposed so the explorer and the scan can dial the light–matter
	// interaction without touching individual excitons.
	CouplingScale float64
}

// NewSystem builds a System with CouplingScale = 1.
func NewSystem(c Cavity, excitons []Exciton) *System {
	return &System{Cavity: c, Excitons: excitons, CouplingScale: 1.0}
}

// Dim is the Hamiltonian dimension: photon plus one row per exciton.
func (s *System) Dim() int { return 1 + len(s.Excitons) }

// Labels returns branch labels for tables: "C" for the cavity photon,
// exciton names otherwise.
func (s *System) Labels() []string {
	labels := make([]string, s.Dim())
	labels[0] = "C"
	for i, x := range s.Excitons {
		if x.Name != "" {
			labels[i+1] = x.Name
		} else {
			labels[i+1] = fmt.Sprintf("X%d", i+1)
		}
	}
	return labels
}

// BareEnergies returns the uncoupled mode energies at k: photon first,
// then each exciton.
func (s *System) BareEnergies(k float64) []float64 {
	e := make([]float64, s.Dim())
	e[0] = s.Cavity.Dispersion(k)
	for i, x := range s.Excitons {
		e[i+1] = x.Dispersion(k)
	}
	return e
}

// Hamiltonian builds H(k) as a dense symmetric matrix. SymDense only
// stores the upper triangle, so symmetry holds by construction.
func (s *System) Hamiltonian(k float64) *mat.SymDense {
	n := s.Dim()
	h := mat.NewSymDense(n, nil)

	h.SetSym(0, 0, s.Cavity.Dispersion(k))
	for i, x := range s.Excitons {
		h.SetSym(i+1, i+1, x.Dispersion(k))
		h.SetSym(0, i+1, s.CouplingScale*x.Coupling)
	}
	return h
}

// GetParams exposes the tunable parameters for the explorer and the scan.
func (s *System) GetParams() map[string]float64 {
	return map[string]float64{
		"cavity":   s.Cavity.Energy,
		"index":    s.Cavity.Index,
		"coupling": s.CouplingScale,
	}
}

// SetParam adjusts a tunable parameter by name. Unknown names are ignored.
func (s *System) SetParam(name string, value float64) {
	switch name {
	case "cavity":
		s.Cavity.Energy = value
	case "index":
		s.Cavity.Index = value
	case "coupling":
		s.CouplingScale = value
	}
}
