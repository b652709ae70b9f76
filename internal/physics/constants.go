package physics

// Energies are in eV, in-plane momenta in 1/µm, masses in units of the
// free electron mass.
const (
	// HBarC is ħc in eV·µm.
	HBarC = 0.1973269804

	// ElectronMass is the electron rest energy mₑc² in eV.
	ElectronMass = 510998.95
)

// MeV converts millielectronvolts to eV.
func MeV(v float64) float64 { return v * 1e-3 }
