package bvp

import (
	"fmt"
	"math"
)

// MinGridPoints is the smallest grid the discretization accepts.
const MinGridPoints = 50

// DefaultDecayMargin is how many characteristic decay lengths the domain
// must hold on each side of the origin for decaying potentials.
const DefaultDecayMargin = 5.0

type GridKind int

const (
	GridUniform GridKind = iota
	GridChebyshev
)

func (g GridKind) String() string {
	switch g {
	case GridUniform:
		return "uniform"
	case GridChebyshev:
		return "chebyshev"
	default:
		return "unknown"
	}
}

func ParseGridKind(s string) (GridKind, error) {
	switch s {
	case "uniform", "":
		return GridUniform, nil
	case "chebyshev":
		return GridChebyshev, nil
	default:
		return 0, &ConfigError{Field: "grid_type", Detail: fmt.Sprintf("unknown grid kind %q", s)}
	}
}

// Domain is the solution interval [XMin, XMax] with a grid choice.
// Half-line problems are truncated to [0, XMax] with HalfLine set, so the
// verification ladder knows the right endpoint is a cutoff, not a wall.
type Domain struct {
	XMin     float64
	XMax     float64
	N        int
	Grid     GridKind
	HalfLine bool
}

func NewInterval(xmin, xmax float64, n int, grid GridKind) Domain {
	return Domain{XMin: xmin, XMax: xmax, N: n, Grid: grid}
}

func NewHalfLine(xmax float64, n int, grid GridKind) Domain {
	return Domain{XMin: 0, XMax: xmax, N: n, Grid: grid, HalfLine: true}
}

func (d Domain) Length() float64 { return d.XMax - d.XMin }

func (d Domain) Validate() error {
	if d.N < MinGridPoints {
		return &ConfigError{Field: "n_points", Detail: fmt.Sprintf("grid of %d points below minimum %d", d.N, MinGridPoints)}
	}
	if d.HalfLine {
		if d.XMin != 0 {
			return &ConfigError{Field: "x_min", Detail: "half-line domain must start at 0"}
		}
		if d.XMax <= 0 {
			return &ConfigError{Field: "x_max", Detail: fmt.Sprintf("half-line cutoff must be positive, got %g", d.XMax)}
		}
	}
	if d.XMax <= d.XMin {
		return &ConfigError{Field: "domain", Detail: fmt.Sprintf("x_max %g must exceed x_min %g", d.XMax, d.XMin)}
	}
	return nil
}

type BCKind int

const (
	Dirichlet BCKind = iota
	Neumann
	Robin
)

func (k BCKind) String() string {
	switch k {
	case Dirichlet:
		return "dirichlet"
	case Neumann:
		return "neumann"
	case Robin:
		return "robin"
	default:
		return "unknown"
	}
}

func ParseBCKind(s string) (BCKind, error) {
	switch s {
	case "dirichlet", "":
		return Dirichlet, nil
	case "neumann":
		return Neumann, nil
	case "robin":
		return Robin, nil
	default:
		return 0, &ConfigError{Field: "bc", Detail: fmt.Sprintf("unknown boundary condition %q", s)}
	}
}

// Endpoint is one boundary condition. Kappa is meaningful only for Robin,
// in the outward-normal convention dψ/dn + κψ = 0 with κ ≥ 0.
type Endpoint struct {
	Kind  BCKind
	Kappa float64
}

func DirichletEnd() Endpoint          { return Endpoint{Kind: Dirichlet} }
func NeumannEnd() Endpoint            { return Endpoint{Kind: Neumann} }
func RobinEnd(kappa float64) Endpoint { return Endpoint{Kind: Robin, Kappa: kappa} }

func (e Endpoint) String() string {
	if e.Kind == Robin {
		return fmt.Sprintf("robin(κ=%g)", e.Kappa)
	}
	return e.Kind.String()
}

func (e Endpoint) validate(side string) error {
	switch e.Kind {
	case Dirichlet, Neumann:
		if e.Kappa != 0 {
			return &ConfigError{Field: "bc." + side, Detail: fmt.Sprintf("κ=%g set on a %s endpoint", e.Kappa, e.Kind)}
		}
	case Robin:
		if e.Kappa < 0 || math.IsNaN(e.Kappa) || math.IsInf(e.Kappa, 0) {
			return &ConfigError{Field: "bc." + side, Detail: fmt.Sprintf("robin κ must be finite and ≥ 0, got %g", e.Kappa)}
		}
	default:
		return &ConfigError{Field: "bc." + side, Detail: "unknown boundary condition kind"}
	}
	return nil
}

type BoundaryConditions struct {
	Left  Endpoint
	Right Endpoint
}

func (bc BoundaryConditions) Validate() error {
	if err := bc.Left.validate("left"); err != nil {
		return err
	}
	return bc.Right.validate("right")
}

type Method int

const (
	FiniteDifference Method = iota
	Shooting
)

func (m Method) String() string {
	switch m {
	case FiniteDifference:
		return "fd"
	case Shooting:
		return "shooting"
	default:
		return "unknown"
	}
}

func ParseMethod(s string) (Method, error) {
	switch s {
	case "fd", "finite_difference", "":
		return FiniteDifference, nil
	case "shoot", "shooting":
		return Shooting, nil
	default:
		return 0, &ConfigError{Field: "method", Detail: fmt.Sprintf("unknown method %q", s)}
	}
}

// Potential is a real-valued potential V(x) from a closed family set.
// Implementations are immutable value types; WithParam returns a modified
// copy and never mutates the receiver.
type Potential interface {
	Eval(x float64) float64

	// Asymptote is the essential spectrum threshold λ_th, the limit of V
	// at infinity. Confining families report +Inf.
	Asymptote() float64

	// DecayLength is the characteristic length over which V approaches
	// its asymptote, or 0 when the notion does not apply.
	DecayLength() float64

	Family() string
	Params() map[string]float64
	WithParam(name string, value float64) (Potential, error)
}

// Problem is an immutable (Potential, Domain, BC) bundle.
type Problem struct {
	Potential Potential
	Domain    Domain
	BC        BoundaryConditions
}

// Validate checks the problem geometry against the discretization
// requirements, including the decay-margin rule for decaying potentials.
func (p Problem) Validate() error {
	if p.Potential == nil {
		return &ConfigError{Field: "potential", Detail: "no potential supplied"}
	}
	if err := p.Domain.Validate(); err != nil {
		return err
	}
	if err := p.BC.Validate(); err != nil {
		return err
	}
	if ell := p.Potential.DecayLength(); ell > 0 && !math.IsInf(p.Potential.Asymptote(), 1) {
		need := DefaultDecayMargin * ell
		if p.Domain.XMax < need || (!p.Domain.HalfLine && -p.Domain.XMin < need) {
			return &ConfigError{
				Field: "domain",
				Detail: fmt.Sprintf("domain [%g, %g] holds fewer than %g decay lengths (ℓ=%g) of %s",
					p.Domain.XMin, p.Domain.XMax, DefaultDecayMargin, ell, p.Potential.Family()),
			}
		}
	}
	return nil
}

// Eigenpair is one (λ_n, ψ_n). Vector is the mode profile sampled on the
// solution grid, quadrature-normalized by the postprocessor.
type Eigenpair struct {
	Index        int
	Value        float64
	Vector       []float64
	NormResidual float64 // |‖ψ‖²−1| before renormalization
	Degenerate   bool    // within degeneracy tolerance of a neighbour
}

// Solution is the raw eigensolver output for one problem and method.
type Solution struct {
	Problem Problem
	Method  Method
	Grid    []float64
	Weights []float64
	Pairs   []Eigenpair

	// SymmetryResidual is ‖A−Aᵀ‖_max/‖A‖_max of the assembled operator
	// (finite difference only; zero for shooting).
	SymmetryResidual float64
}

func (s *Solution) Values() []float64 {
	vals := make([]float64, len(s.Pairs))
	for i, p := range s.Pairs {
		vals[i] = p.Value
	}
	return vals
}

// SolveOptions bounds the iterative parts of a solve. The zero value is
// not useful; start from DefaultSolveOptions.
type SolveOptions struct {
	RootTol     float64 // bisection width at which a shooting root is accepted
	MaxRootIter int     // bisection budget per root
	ScanSteps   int     // λ samples across the shooting scan window
	ScanMax     float64 // scan ceiling; 0 derives it from V and the domain
}

func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		RootTol:     1e-10,
		MaxRootIter: 200,
		ScanSteps:   2000,
	}
}
