package solver

import (
	"context"
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

func TestFDBoxSpectrum(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 400, bvp.GridUniform),
		BC:        dirichlet(),
	}
	sol, err := Solve(context.Background(), prob, bvp.FiniteDifference, 3, bvp.DefaultSolveOptions())
	require.NoError(t, err)
	require.Len(t, sol.Pairs, 3)

	for n, pair := range sol.Pairs {
		want := float64((n+1)*(n+1)) * math.Pi * math.Pi
		assert.InEpsilon(t, want, pair.Value, 1e-3, "box level %d", n)
	}
}

func TestFDHarmonicSpectrum(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.NewHarmonic(),
		Domain:    bvp.NewInterval(-8, 8, 800, bvp.GridUniform),
		BC:        dirichlet(),
	}
	sol, err := Solve(context.Background(), prob, bvp.FiniteDifference, 3, bvp.DefaultSolveOptions())
	require.NoError(t, err)

	for n, pair := range sol.Pairs {
		want := 2*float64(n) + 1
		assert.InEpsilon(t, want, pair.Value, 1e-3, "harmonic level %d", n)
	}
}

func TestShootingBoxSpectrum(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 400, bvp.GridUniform),
		BC:        dirichlet(),
	}
	sol, err := Solve(context.Background(), prob, bvp.Shooting, 3, bvp.DefaultSolveOptions())
	require.NoError(t, err)

	for n, pair := range sol.Pairs {
		want := float64((n+1)*(n+1)) * math.Pi * math.Pi
		assert.InEpsilon(t, want, pair.Value, 1e-4, "box level %d", n)
	}
}

func TestEigenvaluesAscending(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.PoschlTeller{V0: 10, A: 1},
		Domain:    bvp.NewInterval(-12, 12, 500, bvp.GridUniform),
		BC:        dirichlet(),
	}
	for _, method := range []bvp.Method{bvp.FiniteDifference, bvp.Shooting} {
		sol, err := Solve(context.Background(), prob, method, 5, bvp.DefaultSolveOptions())
		require.NoError(t, err, "method %s", method)
		for i := 1; i < len(sol.Pairs); i++ {
			assert.Greater(t, sol.Pairs[i].Value, sol.Pairs[i-1].Value, "method %s", method)
		}
	}
}

func TestShootingScanExhaustion(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.PoschlTeller{V0: 6, A: 1},
		Domain:    bvp.NewInterval(-10, 10, 200, bvp.GridUniform),
		BC:        dirichlet(),
	}
	opts := bvp.DefaultSolveOptions()
	opts.ScanMax = -5.9 // below the ground state near -4

	_, err := Solve(context.Background(), prob, bvp.Shooting, 2, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, bvp.ErrNoConvergence)

	var conv *bvp.ConvergenceError
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, 2, conv.Requested)
	assert.Equal(t, 0, conv.Found)
}

func TestSolveRejectsZeroCount(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 100, bvp.GridUniform),
		BC:        dirichlet(),
	}
	_, err := Solve(context.Background(), prob, bvp.FiniteDifference, 0, bvp.DefaultSolveOptions())
	assert.ErrorIs(t, err, bvp.ErrBadConfig)
}

func TestSolveCanceledContext(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, 100, bvp.GridUniform),
		BC:        dirichlet(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Solve(ctx, prob, bvp.Shooting, 1, bvp.DefaultSolveOptions())
	assert.ErrorIs(t, err, bvp.ErrCanceled)
}
