package physics

import "math"

// Cavity is a planar microcavity photon mode. Energy is the mode energy at
// zero in-plane momentum; Index is the effective refractive index of the
// cavity spacer.
type Cavity struct {
	Energy float64 // eV at k = 0
	Index  float64 // effective refractive index
}

// Dispersion returns the photon energy at in-plane momentum k (1/µm):
// E(k) = sqrt(E₀² + (ħck/n)²).
func (c Cavity) Dispersion(k float64) float64 {
	t := HBarC * k / c.Index
	return math.Sqrt(c.Energy*c.Energy + t*t)
}
