package scan

import (
	"context"
	"math"

	"github.com/quanta-lab/polarisim/internal/physics"
	"github.com/quanta-lab/polarisim/internal/spectrum"
)

// Objective scores one sweep; lower is better.
type Objective func(res *spectrum.Result) float64

// GridScan evaluates an objective over a cartesian grid of named system
// parameters ("cavity", "coupling", "index"), the numerical analog of
// tuning a cavity piezo in the lab.
type GridScan struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridScan(params []string, ranges [][]float64) *GridScan {
	return &GridScan{paramNames: params, ranges: ranges}
}

// Run sweeps the system at every grid vertex and returns the best
// parameter set with its objective value. The system's original
// parameters are restored before returning.
func (g *GridScan) Run(ctx context.Context, sys *physics.System, cfg spectrum.Config, obj Objective) (map[string]float64, float64, error) {
	orig := sys.GetParams()
	defer func() {
		for name, v := range orig {
			sys.SetParam(name, v)
		}
	}()

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.runRecursive(ctx, 0, make(map[string]float64), sys, cfg, obj, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridScan) runRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	sys *physics.System,
	cfg spectrum.Config,
	obj Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		for name, v := range current {
			sys.SetParam(name, v)
		}
		res, err := spectrum.Sweep(ctx, sys, cfg)
		if err != nil {
			return err
		}

		val := obj(res)
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	for _, val := range g.ranges[depth] {
		current[g.paramNames[depth]] = val
		if err := g.runRecursive(ctx, depth+1, current, sys, cfg, obj, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, g.paramNames[depth])
	return nil
}
