package physics

// Exciton is a single exciton resonance coupled to the cavity mode.
// Mass is the total exciton mass in units of the free electron mass; the
// exciton branch is nearly flat on photonic momentum scales, so the
// quadratic term is a small correction.
type Exciton struct {
	Name     string  `yaml:"name"`
	Energy   float64 `yaml:"energy"`   // eV at k = 0
	Mass     float64 `yaml:"mass"`     // units of mₑ
	Coupling float64 `yaml:"coupling"` // photon coupling g, eV
}

// Dispersion returns the exciton energy at in-plane momentum k (1/µm):
// E(k) = E₀ + (ħck)²/(2·M·mₑc²).
func (x Exciton) Dispersion(k float64) float64 {
	if x.Mass == 0 {
		return x.Energy
	}
	t := HBarC * k
	return x.Energy + t*t/(2*x.Mass*ElectronMass)
}
