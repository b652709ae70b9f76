package scan

import (
	"context"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/quanta-lab/polarisim/internal/physics"
	"github.com/quanta-lab/polarisim/internal/spectrum"
)

func testSystem() *physics.System {
	return physics.NewSystem(
		physics.Cavity{Energy: 1.4900, Index: 3.54},
		[]physics.Exciton{{Name: "X", Energy: 1.4900, Coupling: 0.0025}},
	)
}

func TestGridScanResonance(t *testing.T) {
	sys := testSystem()
	cfg := spectrum.Config{KMin: 0, KMax: 8, Points: 200}

	values := floats.Span(make([]float64, 21), 1.4800, 1.5000)
	g := NewGridScan([]string{"cavity"}, [][]float64{values})

	best, score, err := g.Run(context.Background(), sys, cfg, Resonance)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if best == nil {
		t.Fatal("expected a best parameter set")
	}

	// wherever the bare modes cross, the gap bottoms out at 2g
	if math.Abs(score-2*0.0025) > 2e-4 {
		t.Errorf("expected objective ~0.005, got %f", score)
	}
	if best["cavity"] > 1.4900+1e-9 {
		t.Errorf("resonant cavity should not sit above the exciton, got %f", best["cavity"])
	}
}

func TestGridScanRestoresParams(t *testing.T) {
	sys := testSystem()
	cfg := spectrum.Config{KMin: 0, KMax: 4, Points: 50}

	values := []float64{1.485, 1.495}
	g := NewGridScan([]string{"cavity"}, [][]float64{values})

	if _, _, err := g.Run(context.Background(), sys, cfg, Resonance); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if sys.Cavity.Energy != 1.4900 {
		t.Errorf("cavity energy not restored: %f", sys.Cavity.Energy)
	}
}

func TestGridScanTargetCrossing(t *testing.T) {
	sys := testSystem()
	cfg := spectrum.Config{KMin: 0, KMax: 8, Points: 200}

	// the further the cavity sits below the exciton, the further out the
	// bare crossing moves
	values := floats.Span(make([]float64, 11), 1.4800, 1.4895)
	g := NewGridScan([]string{"cavity"}, [][]float64{values})

	best, score, err := g.Run(context.Background(), sys, cfg, TargetCrossing(3.0))
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if best == nil {
		t.Fatal("expected a best parameter set")
	}
	if score > 0.5 {
		t.Errorf("crossing should land near the target, off by %f", score)
	}
}

func TestGridScanCanceled(t *testing.T) {
	sys := testSystem()
	cfg := spectrum.Config{KMin: 0, KMax: 8, Points: 100}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGridScan([]string{"cavity"}, [][]float64{{1.48, 1.49}})
	if _, _, err := g.Run(ctx, sys, cfg, Resonance); err == nil {
		t.Error("expected context error")
	}
}

func TestTargetSplitting(t *testing.T) {
	obj := TargetSplitting(0.005)
	if v := obj(&spectrum.Result{}); !math.IsInf(v, 1) {
		t.Errorf("empty result should score +Inf, got %f", v)
	}
}
