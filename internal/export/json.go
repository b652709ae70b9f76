package export

import (
	"encoding/json"
	"io"

	"github.com/quanta-lab/polarisim/internal/analysis"
	"github.com/quanta-lab/polarisim/internal/spectrum"
)

type sweepJSON struct {
	Material     string              `json:"material,omitempty"`
	CavityEnergy float64             `json:"cavity_energy"`
	Labels       []string            `json:"labels"`
	Ks           []float64           `json:"k"`
	Branches     [][]float64         `json:"branches"`
	Photon       [][]float64         `json:"photon"`
	Crossings    []analysis.Crossing `json:"crossings"`
}

// WriteJSON writes the sweep plus its bare-mode crossings as a single
// indented JSON document.
func WriteJSON(w io.Writer, material string, cavityEnergy float64, res *spectrum.Result) error {
	doc := sweepJSON{
		Material:     material,
		CavityEnergy: cavityEnergy,
		Labels:       res.Labels,
		Ks:           res.Ks,
		Branches:     res.Branches,
		Photon:       res.Photon,
		Crossings:    analysis.BareCrossings(res),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
