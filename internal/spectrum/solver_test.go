package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/quanta-lab/polarisim/internal/physics"
)

func twoLevel(cavityE, excitonE, g float64) *physics.System {
	return physics.NewSystem(
		physics.Cavity{Energy: cavityE, Index: 3.54},
		[]physics.Exciton{{Name: "X", Energy: excitonE, Coupling: g}},
	)
}

func TestSolveTwoLevelAnalytic(t *testing.T) {
	g := 0.002
	sys := twoLevel(1.500, 1.490, g)

	p, err := NewSolver(sys).Solve(0)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	mean := (1.500 + 1.490) / 2
	half := math.Sqrt(0.005*0.005 + g*g)
	wantLower := mean - half
	wantUpper := mean + half

	if math.Abs(p.Energies[0]-wantLower) > 1e-10 {
		t.Errorf("lower branch: expected %.8f, got %.8f", wantLower, p.Energies[0])
	}
	if math.Abs(p.Energies[1]-wantUpper) > 1e-10 {
		t.Errorf("upper branch: expected %.8f, got %.8f", wantUpper, p.Energies[1])
	}
}

func TestSolveZeroCoupling(t *testing.T) {
	sys := twoLevel(1.500, 1.490, 0)

	p, err := NewSolver(sys).Solve(0)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if math.Abs(p.Energies[0]-1.490) > 1e-12 || math.Abs(p.Energies[1]-1.500) > 1e-12 {
		t.Errorf("uncoupled eigenvalues should be the bare energies, got %v", p.Energies)
	}

	// all photon weight sits on the (upper) photon branch
	if math.Abs(p.Photon[1]-1.0) > 1e-12 || math.Abs(p.Photon[0]) > 1e-12 {
		t.Errorf("expected photon fractions [0, 1], got %v", p.Photon)
	}
}

func TestSolvePhotonFractionsSumToOne(t *testing.T) {
	sys := physics.NewSystem(
		physics.Cavity{Energy: 1.49, Index: 3.54},
		[]physics.Exciton{
			{Energy: 1.484, Coupling: 0.002},
			{Energy: 1.488, Coupling: 0.002},
			{Energy: 1.492, Coupling: 0.002},
			{Energy: 1.496, Coupling: 0.002},
		},
	)

	for _, k := range []float64{0, 1.5, 4, 8} {
		p, err := NewSolver(sys).Solve(k)
		if err != nil {
			t.Fatalf("solve failed at k=%f: %v", k, err)
		}
		sum := 0.0
		for _, f := range p.Photon {
			sum += f
		}
		if math.Abs(sum-1.0) > 1e-10 {
			t.Errorf("photon fractions at k=%f sum to %f, want 1", k, sum)
		}
	}
}

func TestSolveMalformedInput(t *testing.T) {
	sys := twoLevel(math.NaN(), 1.490, 0.002)

	_, err := NewSolver(sys).Solve(0)
	if !errors.Is(err, ErrEigenFailed) {
		t.Errorf("expected ErrEigenFailed for NaN cavity energy, got %v", err)
	}
}

func TestSolveNaNCoupling(t *testing.T) {
	sys := twoLevel(1.500, 1.490, math.NaN())

	if _, err := NewSolver(sys).Solve(2); err == nil {
		t.Error("expected error for NaN coupling, got nil")
	}
}
