package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Material != "gaas-qw" {
		t.Errorf("expected material gaas-qw, got %s", cfg.Material)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	if len(cfg.Excitons) != 7 {
		t.Errorf("expected 7 excitons, got %d", len(cfg.Excitons))
	}
	if cfg.System().Dim() != 8 {
		t.Errorf("expected an 8x8 system, got %d", cfg.System().Dim())
	}
}

func TestGetPresetCopies(t *testing.T) {
	a := GetPreset("gaas-qw")
	if a == nil {
		t.Fatal("expected preset, got nil")
	}
	a.Cavity.Energy = 9.9
	a.Excitons[0].Coupling = 9.9

	b := GetPreset("gaas-qw")
	if b.Cavity.Energy == 9.9 || b.Excitons[0].Coupling == 9.9 {
		t.Error("preset mutated through returned copy")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) < 2 {
		t.Fatalf("expected at least 2 presets, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Error("presets should be sorted")
		}
	}
}

func TestCouplingScale(t *testing.T) {
	cfg := GetPreset("gaas-qw")
	if got := cfg.System().CouplingScale; got != 1.0 {
		t.Errorf("preset should default to unit coupling scale, got %g", got)
	}

	cfg.Coupling = 1.5
	if got := cfg.System().CouplingScale; got != 1.5 {
		t.Errorf("expected coupling scale 1.5, got %g", got)
	}

	// hand-built configs without the field keep the unit scale
	cfg.Coupling = 0
	if got := cfg.System().CouplingScale; got != 1.0 {
		t.Errorf("zero coupling_scale should mean 1, got %g", got)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := GetPreset("tmd-ws2")
	cfg.Cavity.Energy = 2.025
	cfg.Sweep.Points = 123

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Cavity.Energy != 2.025 {
		t.Errorf("expected cavity 2.025, got %f", loaded.Cavity.Energy)
	}
	if loaded.Sweep.Points != 123 {
		t.Errorf("expected 123 points, got %d", loaded.Sweep.Points)
	}
	if len(loaded.Excitons) != len(cfg.Excitons) {
		t.Errorf("exciton count changed: %d != %d", len(loaded.Excitons), len(cfg.Excitons))
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no excitons", func(c *Config) { c.Excitons = nil }},
		{"zero cavity", func(c *Config) { c.Cavity.Energy = 0 }},
		{"zero index", func(c *Config) { c.Cavity.Index = 0 }},
		{"negative coupling scale", func(c *Config) { c.Coupling = -0.5 }},
		{"one point", func(c *Config) { c.Sweep.Points = 1 }},
		{"inverted range", func(c *Config) { c.Sweep.KMin, c.Sweep.KMax = 2, 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
