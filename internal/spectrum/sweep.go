package spectrum

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/quanta-lab/polarisim/internal/physics"
)

// Sweep diagonalizes the system over a linear momentum grid. Grid points
// are independent, so they are fanned out to a small worker pool; each
// worker owns its solver and writes only its own column of the result.
func Sweep(ctx context.Context, sys *physics.System, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	ks := floats.Span(make([]float64, cfg.Points), cfg.KMin, cfg.KMax)
	// Span accumulates l + step*i, which can round the last point off
	// KMax; the grid must end exactly there.
	ks[len(ks)-1] = cfg.KMax
	n := sys.Dim()

	res := &Result{
		Ks:       ks,
		Branches: make([][]float64, n),
		Photon:   make([][]float64, n),
		Bare:     make([][]float64, n),
		Labels:   sys.Labels(),
	}
	for j := 0; j < n; j++ {
		res.Branches[j] = make([]float64, cfg.Points)
		res.Photon[j] = make([]float64, cfg.Points)
		res.Bare[j] = make([]float64, cfg.Points)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > cfg.Points {
		workers = cfg.Points
	}

	idx := make(chan int)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			solver := NewSolver(sys)
			for i := range idx {
				if errs[worker] != nil {
					continue // keep draining so the feeder never blocks
				}
				p, err := solver.Solve(ks[i])
				if err != nil {
					errs[worker] = err
					continue
				}
				bare := sys.BareEnergies(ks[i])
				for j := 0; j < n; j++ {
					res.Branches[j][i] = p.Energies[j]
					res.Photon[j][i] = p.Photon[j]
					res.Bare[j][i] = bare[j]
				}
			}
		}(w)
	}

	var ctxErr error
feed:
	for i := 0; i < cfg.Points; i++ {
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func validate(cfg Config) error {
	if cfg.Points < 2 {
		return fmt.Errorf("sweep needs at least 2 points, got %d", cfg.Points)
	}
	if cfg.KMax <= cfg.KMin {
		return fmt.Errorf("invalid momentum range [%g, %g]", cfg.KMin, cfg.KMax)
	}
	return nil
}
