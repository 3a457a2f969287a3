package potential

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// PoschlTeller is the well V(x) = −V0 sech²(x/a). Its bound spectrum is
// closed-form: λ_n = −((s−n)/a)² with s(s+1) = V0·a², for n < s.
type PoschlTeller struct {
	V0 float64
	A  float64
}

func NewPoschlTeller() PoschlTeller { return PoschlTeller{V0: 10.0, A: 1.0} }

func (p PoschlTeller) Eval(x float64) float64 {
	s := 1.0 / math.Cosh(x/p.A)
	return -p.V0 * s * s
}

func (PoschlTeller) Asymptote() float64 { return 0 }

func (p PoschlTeller) DecayLength() float64 { return p.A }

func (PoschlTeller) Family() string { return FamilyPoschlTeller }

func (p PoschlTeller) Params() map[string]float64 {
	return map[string]float64{"v0": p.V0, "a": p.A}
}

func (p PoschlTeller) WithParam(name string, value float64) (bvp.Potential, error) {
	switch name {
	case "v0":
		p.V0 = value
	case "a":
		p.A = value
	default:
		return nil, unknownParam(FamilyPoschlTeller, name)
	}
	return p, nil
}

// S is the well-strength exponent solving s(s+1) = V0·a².
func (p PoschlTeller) S() float64 {
	return 0.5 * (math.Sqrt(1+4*p.V0*p.A*p.A) - 1)
}

// BoundLevels returns the closed-form bound eigenvalues in ascending order.
func (p PoschlTeller) BoundLevels() []float64 {
	s := p.S()
	var levels []float64
	for n := 0; float64(n) < s; n++ {
		d := (s - float64(n)) / p.A
		levels = append(levels, -d*d)
	}
	return levels
}
