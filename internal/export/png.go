package export

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/quanta-lab/polarisim/internal/spectrum"
	"github.com/quanta-lab/polarisim/internal/viz"
)

// SavePNG plots every polariton branch with gonum/plot and saves the
// figure to path (format follows the extension, .png by convention).
func SavePNG(res *spectrum.Result, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "k (1/µm)"
	p.Y.Label.Text = "E (eV)"

	n := res.NumBranches()
	args := make([]interface{}, 0, 2*n)
	for j, branch := range res.Branches {
		pts := make(plotter.XYs, len(res.Ks))
		for i := range res.Ks {
			pts[i].X = res.Ks[i]
			pts[i].Y = branch[i]
		}
		args = append(args, viz.BranchLabel(j, n), pts)
	}

	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
