package export

import (
	"fmt"
	"strings"

	"github.com/quanta-lab/polarisim/internal/spectrum"
	"github.com/quanta-lab/polarisim/internal/viz"
)

var svgPalette = []string{
	"#ff5555", "#f1fa8c", "#50fa7b", "#8be9fd",
	"#6272a4", "#ff79c6", "#f8f8f2", "#bd93f9",
}

// DispersionSVG renders the sweep as an SVG: branch polylines in color,
// bare modes as dashed gray lines.
func DispersionSVG(res *spectrum.Result, width, height int) string {
	lo, hi := viz.Range(res, true)

	toX := func(i int) float64 {
		return float64(i) / float64(len(res.Ks)-1) * float64(width)
	}
	toY := func(e float64) float64 {
		return float64(height) - (e-lo)/(hi-lo)*float64(height)
	}

	path := func(series []float64) string {
		var sb strings.Builder
		for i, v := range series {
			if i == 0 {
				sb.WriteString(fmt.Sprintf("M%.1f,%.1f", toX(i), toY(v)))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(i), toY(v)))
			}
		}
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, bare := range res.Bare {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="#555555" stroke-width="1" stroke-dasharray="4 3" d="%s"/>
`, path(bare)))
	}
	for j, branch := range res.Branches {
		color := svgPalette[j%len(svgPalette)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, color, path(branch)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// CanvasSVG converts a braille canvas to an SVG dot field, one circle
// per lit sub-pixel, so the explorer can save exactly what it renders.
func CanvasSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * 2 * scale
	height := float64(canvas.Height) * 4 * scale
	radius := scale * 0.4

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#8be9fd">
`, width, height, width, height))

	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.Lit(x, y) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, (float64(x)+0.5)*scale, (float64(y)+0.5)*scale, radius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
