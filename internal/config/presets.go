package config

import "github.com/san-kum/spectra/internal/potential"

// Presets are named scenarios per potential family. Verification presets
// carry grids fine enough for the cross-method tolerance.
var Presets = map[string]map[string]*Config{
	potential.FamilyBox: {
		"unit": {
			Background: BackgroundConfig{Type: potential.FamilyBox},
			Domain:     DomainConfig{L: 0.5, NPoints: 400, GridType: "uniform"},
			Modes:      ModesConfig{NEigenvalues: 3, Method: "fd"},
		},
		"verify": {
			Background: BackgroundConfig{Type: potential.FamilyBox},
			Domain:     DomainConfig{L: 0.5, NPoints: 800, GridType: "uniform"},
			Modes:      ModesConfig{NEigenvalues: 3, Method: "fd"},
		},
	},
	potential.FamilyHarmonic: {
		"unit": {
			Background: BackgroundConfig{Type: potential.FamilyHarmonic, Params: map[string]float64{"omega": 1}},
			Domain:     DomainConfig{L: 8, NPoints: 800, GridType: "uniform"},
			Modes:      ModesConfig{NEigenvalues: 3, Method: "fd"},
		},
	},
	potential.FamilyPoschlTeller: {
		"two-level": {
			Background: BackgroundConfig{Type: potential.FamilyPoschlTeller, Params: map[string]float64{"v0": 6, "a": 1}},
			Domain:     DomainConfig{L: 10, NPoints: 400, GridType: "uniform"},
			Modes:      ModesConfig{NEigenvalues: 4, Method: "fd"},
		},
		"verify": {
			Background: BackgroundConfig{Type: potential.FamilyPoschlTeller, Params: map[string]float64{"v0": 6, "a": 1}},
			Domain:     DomainConfig{L: 6, NPoints: 1200, GridType: "uniform"},
			Modes:      ModesConfig{NEigenvalues: 2, Method: "fd"},
		},
		"atlas": {
			Background: BackgroundConfig{Type: potential.FamilyPoschlTeller, Params: map[string]float64{"v0": 9, "a": 1}},
			Domain:     DomainConfig{L: 10, NPoints: 240, GridType: "uniform"},
			Modes:      ModesConfig{NEigenvalues: 4, Method: "fd"},
			Sweep: SweepConfig{
				Target:        3,
				MinBallRadius: 1,
				Axes: []AxisConfig{
					{Name: "v0", Min: 8, Max: 10.5, Steps: 6},
					{Name: "a", Min: 0.96, Max: 1.04, Steps: 5},
				},
			},
		},
	},
	potential.FamilyDoubleWell: {
		"split": {
			Background: BackgroundConfig{Type: potential.FamilyDoubleWell, Params: map[string]float64{"v0": 8, "a": 1.5}},
			Domain:     DomainConfig{L: 6, NPoints: 600, GridType: "uniform"},
			Modes:      ModesConfig{NEigenvalues: 4, Method: "fd"},
		},
	},
	potential.FamilyDomainWall: {
		"wall": {
			Background: BackgroundConfig{Type: potential.FamilyDomainWall, Params: map[string]float64{"m": 2, "a": 1}},
			Domain:     DomainConfig{L: 10, NPoints: 500, GridType: "uniform"},
			Modes:      ModesConfig{NEigenvalues: 3, Method: "fd"},
		},
	},
}

// GetPreset resolves a preset and fills unset sections from the defaults.
func GetPreset(family, name string) *Config {
	byName, ok := Presets[family]
	if !ok {
		return nil
	}
	preset, ok := byName[name]
	if !ok {
		return nil
	}

	cfg := *preset
	if cfg.Physical.Scale == 0 {
		cfg.Physical.Scale = 1.0
	}
	if cfg.BC.Left.Kind == "" {
		cfg.BC.Left.Kind = "dirichlet"
	}
	if cfg.BC.Right.Kind == "" {
		cfg.BC.Right.Kind = "dirichlet"
	}
	if cfg.Domain.GridType == "" {
		cfg.Domain.GridType = "uniform"
	}
	if cfg.Sweep.MinBallRadius == 0 {
		cfg.Sweep.MinBallRadius = 1
	}
	return &cfg
}

func ListPresets(family string) []string {
	byName, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	return names
}
