package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quanta-lab/polarisim/internal/physics"
	"github.com/quanta-lab/polarisim/internal/spectrum"
)

const (
	DefaultKMin    = 0.0
	DefaultKMax    = 8.0
	DefaultPoints  = 300
	DefaultDataDir = ".polarisim"
)

type Config struct {
	Material string            `yaml:"material"`
	Cavity   CavityConfig      `yaml:"cavity"`
	Excitons []physics.Exciton `yaml:"excitons"`
	Coupling float64           `yaml:"coupling_scale,omitempty"` // 0 means 1
	Sweep    SweepConfig       `yaml:"sweep"`
	DataDir  string            `yaml:"data_dir"`
}

type CavityConfig struct {
	Energy float64 `yaml:"energy"` // eV at k = 0
	Index  float64 `yaml:"index"`
}

type SweepConfig struct {
	KMin    float64 `yaml:"k_min"`
	KMax    float64 `yaml:"k_max"`
	Points  int     `yaml:"points"`
	Workers int     `yaml:"workers"`
}

// DefaultConfig is the GaAs multi-quantum-well preset.
func DefaultConfig() *Config {
	return GetPreset("gaas-qw")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if len(c.Excitons) == 0 {
		return fmt.Errorf("config needs at least one exciton")
	}
	if c.Cavity.Energy <= 0 {
		return fmt.Errorf("cavity energy must be positive, got %g", c.Cavity.Energy)
	}
	if c.Cavity.Index <= 0 {
		return fmt.Errorf("refractive index must be positive, got %g", c.Cavity.Index)
	}
	if c.Coupling < 0 {
		return fmt.Errorf("coupling scale must not be negative, got %g", c.Coupling)
	}
	if c.Sweep.Points < 2 {
		return fmt.Errorf("sweep points must be at least 2, got %d", c.Sweep.Points)
	}
	if c.Sweep.KMax <= c.Sweep.KMin {
		return fmt.Errorf("invalid momentum range [%g, %g]", c.Sweep.KMin, c.Sweep.KMax)
	}
	return nil
}

// System builds the coupled photon–exciton system described by the config.
func (c *Config) System() *physics.System {
	excitons := make([]physics.Exciton, len(c.Excitons))
	copy(excitons, c.Excitons)
	sys := physics.NewSystem(physics.Cavity{
		Energy: c.Cavity.Energy,
		Index:  c.Cavity.Index,
	}, excitons)
	if c.Coupling > 0 {
		sys.SetParam("coupling", c.Coupling)
	}
	return sys
}

// SweepConfig converts the sweep section for the spectrum package.
func (c *Config) SweepConfig() spectrum.Config {
	return spectrum.Config{
		KMin:    c.Sweep.KMin,
		KMax:    c.Sweep.KMax,
		Points:  c.Sweep.Points,
		Workers: c.Sweep.Workers,
	}
}
