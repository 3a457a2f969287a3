package potential

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// Box is a free particle between hard walls: V = 0 everywhere, with the
// confinement supplied by Dirichlet endpoints. Carries no parameters.
type Box struct{}

func (Box) Eval(float64) float64 { return 0 }

func (Box) Asymptote() float64 { return math.Inf(1) }

func (Box) DecayLength() float64 { return 0 }

func (Box) Family() string { return FamilyBox }

func (Box) Params() map[string]float64 { return map[string]float64{} }

func (Box) WithParam(name string, _ float64) (bvp.Potential, error) {
	return nil, unknownParam(FamilyBox, name)
}
