package config

import (
	"sort"

	"github.com/quanta-lab/polarisim/internal/physics"
)

// Presets are ready-made material stacks. Energies in eV, masses in units
// of the free electron mass, couplings in eV.
var Presets = map[string]*Config{
	// Seven GaAs quantum wells in a λ-cavity, slightly detuned from each
	// other by growth inhomogeneity.
	"gaas-qw": {
		Material: "gaas-qw",
		Cavity:   CavityConfig{Energy: 1.4900, Index: 3.54},
		Excitons: []physics.Exciton{
			{Name: "QW1", Energy: 1.4840, Mass: 0.30, Coupling: 0.0020},
			{Name: "QW2", Energy: 1.4860, Mass: 0.30, Coupling: 0.0020},
			{Name: "QW3", Energy: 1.4880, Mass: 0.30, Coupling: 0.0020},
			{Name: "QW4", Energy: 1.4900, Mass: 0.30, Coupling: 0.0020},
			{Name: "QW5", Energy: 1.4920, Mass: 0.30, Coupling: 0.0020},
			{Name: "QW6", Energy: 1.4940, Mass: 0.30, Coupling: 0.0020},
			{Name: "QW7", Energy: 1.4960, Mass: 0.30, Coupling: 0.0020},
		},
		Coupling: 1.0,
		Sweep:    SweepConfig{KMin: DefaultKMin, KMax: DefaultKMax, Points: DefaultPoints},
		DataDir:  DefaultDataDir,
	},
	// WS₂ monolayer in an open cavity: A/B series plus trion and an
	// interlayer line.
	"tmd-ws2": {
		Material: "tmd-ws2",
		Cavity:   CavityConfig{Energy: 2.0100, Index: 1.90},
		Excitons: []physics.Exciton{
			{Name: "T", Energy: 1.9800, Mass: 1.20, Coupling: 0.0050},
			{Name: "A1s", Energy: 2.0100, Mass: 1.00, Coupling: 0.0200},
			{Name: "A2s", Energy: 2.0800, Mass: 1.00, Coupling: 0.0060},
			{Name: "A3s", Energy: 2.1050, Mass: 1.00, Coupling: 0.0030},
			{Name: "IL", Energy: 2.1500, Mass: 1.50, Coupling: 0.0020},
			{Name: "B1s", Energy: 2.4100, Mass: 1.00, Coupling: 0.0150},
			{Name: "B2s", Energy: 2.4700, Mass: 1.00, Coupling: 0.0040},
		},
		Coupling: 1.0,
		Sweep:    SweepConfig{KMin: 0.0, KMax: 12.0, Points: DefaultPoints},
		DataDir:  DefaultDataDir,
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	// Deep-copy so callers can tune the cavity without mutating the preset.
	cp := *p
	cp.Excitons = make([]physics.Exciton, len(p.Excitons))
	copy(cp.Excitons, p.Excitons)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
