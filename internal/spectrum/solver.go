package spectrum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/quanta-lab/polarisim/internal/physics"
)

// ErrEigenFailed is returned when the symmetric eigendecomposition does
// not converge. With a finite symmetric Hamiltonian this only happens on
// malformed input (NaN energies or couplings).
var ErrEigenFailed = errors.New("spectrum: eigendecomposition failed")

// Solver diagonalizes the system Hamiltonian at single momenta.
type Solver struct {
	sys *physics.System
}

func NewSolver(sys *physics.System) *Solver {
	return &Solver{sys: sys}
}

// Solve builds H(k), factorizes it, and returns the sorted eigenvalues
// together with the photon fraction of each branch. Eigenvalues come back
// from gonum in ascending order already.
func (s *Solver) Solve(k float64) (Point, error) {
	h := s.sys.Hamiltonian(k)

	var eig mat.EigenSym
	if !eig.Factorize(h, true) {
		return Point{}, fmt.Errorf("%w at k=%g", ErrEigenFailed, k)
	}

	n := s.sys.Dim()
	p := Point{
		K:        k,
		Energies: eig.Values(nil),
		Photon:   make([]float64, n),
	}

	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	for j := 0; j < n; j++ {
		c := vecs.At(0, j)
		p.Photon[j] = c * c
		// Factorize reports success even when H carries NaN entries, so
		// the output has to be checked too.
		if math.IsNaN(p.Energies[j]) || math.IsNaN(p.Photon[j]) {
			return Point{}, fmt.Errorf("%w at k=%g", ErrEigenFailed, k)
		}
	}
	return p, nil
}
