package potential

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// ExpTail is the exponentially decaying well V(x) = −V0·exp(−|x|/a).
type ExpTail struct {
	V0 float64
	A  float64
}

func NewExpTail() ExpTail { return ExpTail{V0: 10.0, A: 1.0} }

func (e ExpTail) Eval(x float64) float64 {
	return -e.V0 * math.Exp(-math.Abs(x)/e.A)
}

func (ExpTail) Asymptote() float64 { return 0 }

func (e ExpTail) DecayLength() float64 { return e.A }

func (ExpTail) Family() string { return FamilyExpTail }

func (e ExpTail) Params() map[string]float64 {
	return map[string]float64{"v0": e.V0, "a": e.A}
}

func (e ExpTail) WithParam(name string, value float64) (bvp.Potential, error) {
	switch name {
	case "v0":
		e.V0 = value
	case "a":
		e.A = value
	default:
		return nil, unknownParam(FamilyExpTail, name)
	}
	return e, nil
}
