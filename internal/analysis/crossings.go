package analysis

import (
	"github.com/quanta-lab/polarisim/internal/spectrum"
)

// Crossing marks a momentum where the bare cavity photon crosses a bare
// exciton level.
type Crossing struct {
	Exciton string  `json:"exciton"`
	K       float64 `json:"k"`      // 1/µm
	Energy  float64 `json:"energy"` // eV
}

// BareCrossings scans the sweep grid for sign changes of
// E_photon(k) − E_exciton(k) and refines each crossing by linear
// interpolation between the bracketing grid points. A difference that is
// exactly zero on a grid point counts as a crossing at that point.
func BareCrossings(res *spectrum.Result) []Crossing {
	if res == nil || len(res.Bare) < 2 {
		return nil
	}

	photon := res.Bare[0]
	var out []Crossing

	for m := 1; m < len(res.Bare); m++ {
		exc := res.Bare[m]
		for i := 1; i < len(res.Ks); i++ {
			d0 := photon[i-1] - exc[i-1]
			d1 := photon[i] - exc[i]

			switch {
			case d1 == 0:
				out = append(out, Crossing{Exciton: res.Labels[m], K: res.Ks[i], Energy: exc[i]})
			case d0 == 0:
				if i == 1 {
					out = append(out, Crossing{Exciton: res.Labels[m], K: res.Ks[0], Energy: exc[0]})
				}
				// interior zeros were recorded by the previous pair
			case d0*d1 < 0:
				t := d0 / (d0 - d1)
				k := res.Ks[i-1] + t*(res.Ks[i]-res.Ks[i-1])
				e := exc[i-1] + t*(exc[i]-exc[i-1])
				out = append(out, Crossing{Exciton: res.Labels[m], K: k, Energy: e})
			}
		}
	}
	return out
}
