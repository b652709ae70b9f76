package spectrum

import (
	"context"
	"math"
	"testing"
)

func TestSweepGrid(t *testing.T) {
	sys := twoLevel(1.500, 1.490, 0.002)
	cfg := Config{KMin: 0, KMax: 8, Points: 50}

	res, err := Sweep(context.Background(), sys, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(res.Ks) != 50 {
		t.Errorf("expected 50 grid points, got %d", len(res.Ks))
	}
	if res.Ks[0] != 0 || res.Ks[49] != 8 {
		t.Errorf("grid endpoints wrong: %f..%f", res.Ks[0], res.Ks[49])
	}

	dk := res.Ks[1] - res.Ks[0]
	for i := 2; i < len(res.Ks); i++ {
		if math.Abs((res.Ks[i]-res.Ks[i-1])-dk) > 1e-12 {
			t.Fatalf("grid not uniform at index %d", i)
		}
	}

	if res.NumBranches() != 2 {
		t.Fatalf("expected 2 branches, got %d", res.NumBranches())
	}
	for i := range res.Ks {
		if res.Branches[0][i] > res.Branches[1][i] {
			t.Fatalf("branches out of order at index %d", i)
		}
	}
}

func TestSweepMatchesSolver(t *testing.T) {
	sys := twoLevel(1.495, 1.490, 0.003)
	cfg := Config{KMin: 0, KMax: 4, Points: 17, Workers: 4}

	res, err := Sweep(context.Background(), sys, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	solver := NewSolver(sys)
	for i, k := range res.Ks {
		p, err := solver.Solve(k)
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		for j := range p.Energies {
			if math.Abs(res.Branches[j][i]-p.Energies[j]) > 1e-12 {
				t.Fatalf("sweep disagrees with solver at k=%f branch %d", k, j)
			}
		}
	}
}

func TestSweepBareModes(t *testing.T) {
	sys := twoLevel(1.500, 1.490, 0.002)
	cfg := Config{KMin: 0, KMax: 2, Points: 5}

	res, err := Sweep(context.Background(), sys, cfg)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	for i, k := range res.Ks {
		bare := sys.BareEnergies(k)
		for m := range bare {
			if math.Abs(res.Bare[m][i]-bare[m]) > 1e-12 {
				t.Fatalf("bare mode %d wrong at k=%f", m, k)
			}
		}
	}
}

func TestSweepInvalidConfig(t *testing.T) {
	sys := twoLevel(1.500, 1.490, 0.002)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"one point", Config{KMin: 0, KMax: 1, Points: 1}},
		{"empty range", Config{KMin: 1, KMax: 1, Points: 10}},
		{"inverted range", Config{KMin: 2, KMax: 1, Points: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Sweep(context.Background(), sys, tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSweepCanceled(t *testing.T) {
	sys := twoLevel(1.500, 1.490, 0.002)
	cfg := Config{KMin: 0, KMax: 8, Points: 300}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Sweep(ctx, sys, cfg); err == nil {
		t.Error("expected context error, got nil")
	}
}

func TestSweepSolverError(t *testing.T) {
	sys := twoLevel(math.NaN(), 1.490, 0.002)
	cfg := Config{KMin: 0, KMax: 8, Points: 20}

	if _, err := Sweep(context.Background(), sys, cfg); err == nil {
		t.Error("expected eigendecomposition error, got nil")
	}
}
