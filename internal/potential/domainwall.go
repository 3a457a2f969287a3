package potential

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// DomainWall is the kink fluctuation potential
// V(x) = M²·(1 − (3/2)·sech²(x/a)), approaching the mass gap M² away from
// the wall. The well around the wall binds the translational zero mode.
type DomainWall struct {
	M float64
	A float64
}

func NewDomainWall() DomainWall { return DomainWall{M: 2.0, A: 1.0} }

func (d DomainWall) Eval(x float64) float64 {
	s := 1.0 / math.Cosh(x/d.A)
	return d.M * d.M * (1 - 1.5*s*s)
}

func (d DomainWall) Asymptote() float64 { return d.M * d.M }

func (d DomainWall) DecayLength() float64 { return d.A }

func (DomainWall) Family() string { return FamilyDomainWall }

func (d DomainWall) Params() map[string]float64 {
	return map[string]float64{"m": d.M, "a": d.A}
}

func (d DomainWall) WithParam(name string, value float64) (bvp.Potential, error) {
	switch name {
	case "m":
		d.M = value
	case "a":
		d.A = value
	default:
		return nil, unknownParam(FamilyDomainWall, name)
	}
	return d, nil
}
