package operator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/potential"
)

func dirichlet() bvp.BoundaryConditions {
	return bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()}
}

func TestGridWeightsSumToLength(t *testing.T) {
	for _, kind := range []bvp.GridKind{bvp.GridUniform, bvp.GridChebyshev} {
		d := bvp.NewInterval(-3, 5, 101, kind)
		x, w := Grid(d)
		require.Len(t, x, 101)
		sum := 0.0
		for _, wi := range w {
			sum += wi
		}
		assert.InDelta(t, 8.0, sum, 1e-12, "grid kind %s", kind)
	}
}

func TestGridAscending(t *testing.T) {
	d := bvp.NewInterval(0, 1, 64, bvp.GridChebyshev)
	x, _ := Grid(d)
	assert.Equal(t, 0.0, x[0])
	assert.InDelta(t, 1.0, x[len(x)-1], 1e-15)
	for i := 1; i < len(x); i++ {
		assert.Greater(t, x[i], x[i-1])
	}
}

func TestDiscretizationSymmetry(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.PoschlTeller{V0: 6, A: 1},
		Domain:    bvp.NewInterval(-10, 10, 201, bvp.GridUniform),
		BC:        dirichlet(),
	}
	disc, err := NewDiscretization(prob)
	require.NoError(t, err)
	assert.Less(t, disc.SymmetryResidual, 1e-12)
}

func TestDiscretizationRejectsSmallGrid(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 10, bvp.GridUniform),
		BC:        dirichlet(),
	}
	_, err := NewDiscretization(prob)
	assert.ErrorIs(t, err, bvp.ErrBadConfig)
}

func TestDiscretizationRejectsNegativeKappa(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 100, bvp.GridUniform),
		BC: bvp.BoundaryConditions{
			Left:  bvp.RobinEnd(-2.0),
			Right: bvp.DirichletEnd(),
		},
	}
	_, err := NewDiscretization(prob)
	assert.ErrorIs(t, err, bvp.ErrBadConfig)
}

func TestDiscretizationRejectsNarrowDomain(t *testing.T) {
	// Pöschl-Teller with a=1 needs at least 5 decay lengths per side.
	prob := bvp.Problem{
		Potential: potential.PoschlTeller{V0: 6, A: 1},
		Domain:    bvp.NewInterval(-3, 3, 100, bvp.GridUniform),
		BC:        dirichlet(),
	}
	_, err := NewDiscretization(prob)
	assert.ErrorIs(t, err, bvp.ErrBadConfig)
}

func TestEmbedRestoresDirichletZeros(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 80, bvp.GridUniform),
		BC:        dirichlet(),
	}
	disc, err := NewDiscretization(prob)
	require.NoError(t, err)
	require.Len(t, disc.Active, 78)

	phi := make([]float64, len(disc.Active))
	for i := range phi {
		phi[i] = 1
	}
	psi := disc.Embed(phi)
	require.Len(t, psi, 80)
	assert.Zero(t, psi[0])
	assert.Zero(t, psi[79])
	assert.NotZero(t, psi[1])
}

func TestShooterMismatchBracketsBoxGroundState(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 400, bvp.GridUniform),
		BC:        dirichlet(),
	}
	sh, err := NewShooter(prob)
	require.NoError(t, err)

	// Ground state of the unit box is π² ≈ 9.8696.
	lo := sh.Mismatch(9.0)
	hi := sh.Mismatch(10.5)
	assert.True(t, lo*hi < 0, "mismatch should change sign across π²: f(9)=%g f(10.5)=%g", lo, hi)
}

func TestShooterProfileLength(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 128, bvp.GridUniform),
		BC:        dirichlet(),
	}
	sh, err := NewShooter(prob)
	require.NoError(t, err)

	u := sh.Profile(math.Pi * math.Pi)
	require.Len(t, u, 128)
	assert.Zero(t, u[0])
	assert.InDelta(t, 0, u[127], 1e-3)
}
