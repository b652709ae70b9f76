package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/quanta-lab/polarisim/internal/spectrum"
)

var branchColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Cyan,
	asciigraph.Blue,
	asciigraph.Magenta,
	asciigraph.White,
	asciigraph.Default,
}

// Ascii renders the sweep as an asciigraph multi-series plot, one series
// per polariton branch.
func Ascii(res *spectrum.Result, width, height int) string {
	colors := branchColors
	if len(colors) > res.NumBranches() {
		colors = colors[:res.NumBranches()]
	}
	caption := fmt.Sprintf("E (eV) vs k = %.2f..%.2f 1/um",
		res.Ks[0], res.Ks[len(res.Ks)-1])
	return asciigraph.PlotMany(res.Branches,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
	)
}

// Range returns the padded energy window covering every branch, and the
// bare modes too when includeBare is set.
func Range(res *spectrum.Result, includeBare bool) (lo, hi float64) {
	lo, hi = res.Branches[0][0], res.Branches[0][0]
	scan := func(series []float64) {
		for _, v := range series {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	for _, b := range res.Branches {
		scan(b)
	}
	if includeBare {
		for _, b := range res.Bare {
			scan(b)
		}
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1e-3
	}
	return lo - pad, hi + pad
}

// DispersionCanvas draws the sweep onto a braille canvas: branches as
// solid polylines, bare modes as sparse dots when showBare is set.
// kCursor < 0 disables the cursor column.
func DispersionCanvas(res *spectrum.Result, width, height int, showBare bool, kCursor int) *Canvas {
	lo, hi := Range(res, showBare)

	c := NewCanvas(width, height)
	if showBare {
		for _, bare := range res.Bare {
			c.DrawDots(bare, lo, hi, 4)
		}
	}
	for _, branch := range res.Branches {
		c.DrawSeries(branch, lo, hi)
	}
	if kCursor >= 0 && kCursor < len(res.Ks) {
		x := kCursor * (width*2 - 1) / (len(res.Ks) - 1)
		for y := 0; y < height*4; y += 3 {
			c.Set(x, y)
		}
	}
	return c
}

// Dispersion renders the canvas with a minimal energy/momentum frame.
func Dispersion(res *spectrum.Result, width, height int, showBare bool, kCursor int) string {
	lo, hi := Range(res, showBare)
	c := DispersionCanvas(res, width, height, showBare, kCursor)

	var b strings.Builder
	rows := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	for i, row := range rows {
		switch i {
		case 0:
			b.WriteString(Dim.Render(fmt.Sprintf("%8.4f ", hi)))
		case len(rows) - 1:
			b.WriteString(Dim.Render(fmt.Sprintf("%8.4f ", lo)))
		default:
			b.WriteString(strings.Repeat(" ", 9))
		}
		b.WriteString(Cyan.Render(row))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", 9))
	axis := fmt.Sprintf("%-8.2f%s%8.2f",
		res.Ks[0], strings.Repeat(" ", maxInt(width-16, 1)), res.Ks[len(res.Ks)-1])
	b.WriteString(Dim.Render(axis) + "\n")
	return b.String()
}

// BranchLabel names branch j of an n-branch spectrum: LP for the lowest,
// UP for the highest, MPj in between.
func BranchLabel(j, n int) string {
	switch {
	case j == 0:
		return "LP"
	case j == n-1:
		return "UP"
	default:
		return fmt.Sprintf("MP%d", j)
	}
}

// Table renders the eigenvalue table at grid index idx: branch energies
// top to bottom with photon fraction readouts.
func Table(res *spectrum.Result, idx int) string {
	if idx < 0 || idx >= len(res.Ks) {
		return ""
	}
	p := res.At(idx)
	n := res.NumBranches()

	var b strings.Builder
	b.WriteString(Dim.Render(fmt.Sprintf("  k = %.3f 1/um", p.K)) + "\n")
	for j := n - 1; j >= 0; j-- {
		frac := p.Photon[j]
		bar := strings.Repeat("█", int(frac*10+0.5))
		b.WriteString(fmt.Sprintf("  %s  %s  %s %s\n",
			Cyan.Render(fmt.Sprintf("%-4s", BranchLabel(j, n))),
			White.Render(fmt.Sprintf("%.5f eV", p.Energies[j])),
			Yellow.Render(fmt.Sprintf("%5.1f%%", frac*100)),
			Green.Render(bar),
		))
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
