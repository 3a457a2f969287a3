package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/spectra/internal/atlas"
	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/potential"
)

const (
	DefaultL           = 10.0
	DefaultNPoints     = 400
	DefaultEigenvalues = 4
	DefaultTarget      = 3
)

type Config struct {
	Physical   PhysicalConfig   `yaml:"physical"`
	Background BackgroundConfig `yaml:"background"`
	Domain     DomainConfig     `yaml:"domain"`
	BC         BCConfig         `yaml:"bc"`
	Modes      ModesConfig      `yaml:"modes"`
	Tolerances ToleranceConfig  `yaml:"tolerances"`
	Sweep      SweepConfig      `yaml:"sweep"`
}

// PhysicalConfig carries the dimensionless scale knobs; Scale multiplies
// every potential parameter with energy dimension.
type PhysicalConfig struct {
	Scale float64 `yaml:"scale"`
}

type BackgroundConfig struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params"`
}

type DomainConfig struct {
	L        float64 `yaml:"l"` // half-width; the interval is [-L, L]
	NPoints  int     `yaml:"n_points"`
	GridType string  `yaml:"grid_type"`
	HalfLine bool    `yaml:"half_line"`
}

type EndpointConfig struct {
	Kind  string  `yaml:"kind"`
	Kappa float64 `yaml:"kappa"`
}

type BCConfig struct {
	Left  EndpointConfig `yaml:"left"`
	Right EndpointConfig `yaml:"right"`
}

type ModesConfig struct {
	NEigenvalues int    `yaml:"n_eigenvalues"`
	Method       string `yaml:"method"`
}

type ToleranceConfig struct {
	AnalyticRel     float64 `yaml:"analytic_rel"`
	CrossMethodRel  float64 `yaml:"cross_method_rel"`
	RefinementDrift float64 `yaml:"refinement_drift"`
	CutoffDrift     float64 `yaml:"cutoff_drift"`
	Symmetry        float64 `yaml:"symmetry"`
	Normalization   float64 `yaml:"normalization"`
	Orthogonality   float64 `yaml:"orthogonality"`
	BCResidual      float64 `yaml:"bc_residual"`
	ThresholdEps    float64 `yaml:"threshold_eps"`
	GapMargin       float64 `yaml:"gap_margin"`
}

type AxisConfig struct {
	Name  string    `yaml:"name"`
	Min   float64   `yaml:"min"`
	Max   float64   `yaml:"max"`
	Steps int       `yaml:"steps"`
	List  []float64 `yaml:"list"`
}

type SweepConfig struct {
	Target        int          `yaml:"target"`
	Axes          []AxisConfig `yaml:"axes"`
	MinBallRadius int          `yaml:"min_ball_radius"`
	Workers       int          `yaml:"workers"`
}

func Default() *Config {
	return &Config{
		Physical:   PhysicalConfig{Scale: 1.0},
		Background: BackgroundConfig{Type: potential.FamilyPoschlTeller},
		Domain:     DomainConfig{L: DefaultL, NPoints: DefaultNPoints, GridType: "uniform"},
		BC: BCConfig{
			Left:  EndpointConfig{Kind: "dirichlet"},
			Right: EndpointConfig{Kind: "dirichlet"},
		},
		Modes: ModesConfig{NEigenvalues: DefaultEigenvalues, Method: "fd"},
		Sweep: SweepConfig{Target: DefaultTarget, MinBallRadius: 1},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &bvp.ConfigError{Field: "file", Detail: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fails fast on malformed input; values are never silently
// corrected.
func (c *Config) Validate() error {
	if c.Physical.Scale <= 0 {
		return &bvp.ConfigError{Field: "physical.scale", Detail: fmt.Sprintf("must be positive, got %g", c.Physical.Scale)}
	}
	if c.Domain.L <= 0 {
		return &bvp.ConfigError{Field: "domain.l", Detail: fmt.Sprintf("must be positive, got %g", c.Domain.L)}
	}
	if c.Domain.NPoints < bvp.MinGridPoints {
		return &bvp.ConfigError{Field: "domain.n_points", Detail: fmt.Sprintf("%d below minimum %d", c.Domain.NPoints, bvp.MinGridPoints)}
	}
	if _, err := bvp.ParseGridKind(c.Domain.GridType); err != nil {
		return err
	}
	if _, err := bvp.ParseMethod(c.Modes.Method); err != nil {
		return err
	}
	if c.Modes.NEigenvalues < 1 {
		return &bvp.ConfigError{Field: "modes.n_eigenvalues", Detail: "must request at least 1 eigenvalue"}
	}
	if _, err := c.boundary(); err != nil {
		return err
	}
	if _, err := potential.New(c.Background.Type, c.Background.Params); err != nil {
		return err
	}
	for i, ax := range c.Sweep.Axes {
		if ax.Name == "" {
			return &bvp.ConfigError{Field: fmt.Sprintf("sweep.axes[%d].name", i), Detail: "axis name required"}
		}
		if len(ax.List) == 0 && ax.Steps < 1 {
			return &bvp.ConfigError{Field: fmt.Sprintf("sweep.axes[%d].steps", i), Detail: "need steps ≥ 1 or an explicit list"}
		}
	}
	return nil
}

// ToProblem builds the immutable problem value this configuration
// describes.
func (c *Config) ToProblem() (bvp.Problem, error) {
	if err := c.Validate(); err != nil {
		return bvp.Problem{}, err
	}

	params := make(map[string]float64, len(c.Background.Params))
	for k, v := range c.Background.Params {
		params[k] = v * c.Physical.Scale
	}
	pot, err := potential.New(c.Background.Type, params)
	if err != nil {
		return bvp.Problem{}, err
	}

	grid, _ := bvp.ParseGridKind(c.Domain.GridType)
	var dom bvp.Domain
	if c.Domain.HalfLine {
		dom = bvp.NewHalfLine(c.Domain.L, c.Domain.NPoints, grid)
	} else {
		dom = bvp.NewInterval(-c.Domain.L, c.Domain.L, c.Domain.NPoints, grid)
	}

	bc, err := c.boundary()
	if err != nil {
		return bvp.Problem{}, err
	}

	prob := bvp.Problem{Potential: pot, Domain: dom, BC: bc}
	return prob, prob.Validate()
}

// Method resolves the configured solve method.
func (c *Config) Method() bvp.Method {
	m, _ := bvp.ParseMethod(c.Modes.Method)
	return m
}

// ToTolerances overlays the configured tolerances on the defaults; zero
// fields keep their default.
func (c *Config) ToTolerances() bvp.ToleranceProfile {
	tol := bvp.DefaultTolerances()
	t := c.Tolerances
	if t.AnalyticRel > 0 {
		tol.AnalyticRel = t.AnalyticRel
	}
	if t.CrossMethodRel > 0 {
		tol.CrossMethodRel = t.CrossMethodRel
	}
	if t.RefinementDrift > 0 {
		tol.RefinementDrift = t.RefinementDrift
	}
	if t.CutoffDrift > 0 {
		tol.CutoffDrift = t.CutoffDrift
	}
	if t.Symmetry > 0 {
		tol.Symmetry = t.Symmetry
	}
	if t.Normalization > 0 {
		tol.Normalization = t.Normalization
	}
	if t.Orthogonality > 0 {
		tol.Orthogonality = t.Orthogonality
	}
	if t.BCResidual > 0 {
		tol.BCResidual = t.BCResidual
	}
	if t.ThresholdEps > 0 {
		tol.ThresholdEps = t.ThresholdEps
	}
	if t.GapMargin > 0 {
		tol.GapMargin = t.GapMargin
	}
	return tol
}

// ToAxes builds the declarative sweep axes.
func (c *Config) ToAxes() []atlas.Axis {
	axes := make([]atlas.Axis, 0, len(c.Sweep.Axes))
	for _, ax := range c.Sweep.Axes {
		if len(ax.List) > 0 {
			axes = append(axes, atlas.ListAxis(ax.Name, ax.List))
		} else {
			axes = append(axes, atlas.NewAxis(ax.Name, ax.Min, ax.Max, ax.Steps))
		}
	}
	return axes
}

func (c *Config) boundary() (bvp.BoundaryConditions, error) {
	left, err := parseEndpoint(c.BC.Left)
	if err != nil {
		return bvp.BoundaryConditions{}, err
	}
	right, err := parseEndpoint(c.BC.Right)
	if err != nil {
		return bvp.BoundaryConditions{}, err
	}
	bc := bvp.BoundaryConditions{Left: left, Right: right}
	return bc, bc.Validate()
}

func parseEndpoint(e EndpointConfig) (bvp.Endpoint, error) {
	kind, err := bvp.ParseBCKind(e.Kind)
	if err != nil {
		return bvp.Endpoint{}, err
	}
	return bvp.Endpoint{Kind: kind, Kappa: e.Kappa}, nil
}
