package modes

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/potential"
	"github.com/san-kum/spectra/internal/solver"
)

func solveBox(t *testing.T, n, k int) *bvp.Solution {
	t.Helper()
	prob := bvp.Problem{
		Potential: potential.Box{},
		Domain:    bvp.NewInterval(0, 1, n, bvp.GridUniform),
		BC:        bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()},
	}
	sol, err := solver.Solve(context.Background(), prob, bvp.FiniteDifference, k, bvp.DefaultSolveOptions())
	require.NoError(t, err)
	return sol
}

func TestNormalizationRoundTrip(t *testing.T) {
	for _, n := range []int{100, 200, 400} {
		sol := solveBox(t, n, 3)
		sp := Postprocess(sol, bvp.DefaultTolerances())
		for _, m := range sp.Modes {
			norm := InnerProduct(sol.Weights, m.Vector, m.Vector)
			assert.InDelta(t, 1.0, norm, 1e-10, "n=%d mode %d", n, m.Index)
		}
	}
}

func TestOrthogonality(t *testing.T) {
	sol := solveBox(t, 300, 4)
	sp := Postprocess(sol, bvp.DefaultTolerances())
	for i := 0; i < len(sp.Modes); i++ {
		for j := i + 1; j < len(sp.Modes); j++ {
			ip := InnerProduct(sol.Weights, sp.Modes[i].Vector, sp.Modes[j].Vector)
			assert.InDelta(t, 0.0, ip, 1e-6, "modes %d,%d", i, j)
		}
	}
}

func TestNBoundIdempotent(t *testing.T) {
	values := []float64{-4.0001, -1.0002, 0.5, 2.3}
	first, _ := NBound(values, 0, 1e-8)
	for i := 0; i < 100; i++ {
		again, _ := NBound(values, 0, 1e-8)
		require.Equal(t, first, again)
	}
	assert.Equal(t, 2, first)
}

func TestNBoundConfiningThreshold(t *testing.T) {
	values := []float64{1, 3, 5}
	count, ambiguous := NBound(values, math.Inf(1), 1e-8)
	assert.Equal(t, 3, count)
	assert.Empty(t, ambiguous)
}

func TestAmbiguousBand(t *testing.T) {
	values := []float64{-2.0, -1e-10, 1.0}
	count, ambiguous := NBound(values, 0, 1e-8)
	assert.Equal(t, 1, count)
	assert.Equal(t, []int{1}, ambiguous)

	_, err := RequireDefiniteCount(values, 0, 1e-8)
	require.Error(t, err)
	assert.ErrorIs(t, err, bvp.ErrAmbiguousMode)

	var amb *bvp.AmbiguousModeError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, 1, amb.Index)
}

func TestOverlapBoxGroundState(t *testing.T) {
	// ψ₀ = √2·sin(πx) on [0,1]: ∫ψ⁴ = 4·(3/8) = 1.5.
	sol := solveBox(t, 400, 1)
	sp := Postprocess(sol, bvp.DefaultTolerances())
	assert.InDelta(t, 1.5, sp.Modes[0].OverlapI4, 1e-3)
}

func TestGapMargin(t *testing.T) {
	values := []float64{-4, -1, 0.5}
	margin := GapMargin(values, 2)
	assert.InDelta(t, 1.5, margin, 1e-12) // (0.5 − (−1)) / max(1, 0.5)

	assert.True(t, math.IsNaN(GapMargin(values, 3)))
	assert.True(t, math.IsNaN(GapMargin(values, 0)))
}

func TestPoschlTellerBoundCount(t *testing.T) {
	prob := bvp.Problem{
		Potential: potential.PoschlTeller{V0: 6, A: 1},
		Domain:    bvp.NewInterval(-10, 10, 400, bvp.GridUniform),
		BC:        bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()},
	}
	sol, err := solver.Solve(context.Background(), prob, bvp.FiniteDifference, 4, bvp.DefaultSolveOptions())
	require.NoError(t, err)

	sp := Postprocess(sol, bvp.DefaultTolerances())
	assert.Equal(t, 2, sp.NBound) // s=2: levels −4, −1
	assert.Equal(t, Bound, sp.Modes[0].Class)
	assert.Equal(t, Bound, sp.Modes[1].Class)
	assert.Equal(t, Scattering, sp.Modes[2].Class)
}

func TestPoschlTellerRefinement(t *testing.T) {
	exact := []float64{-4, -1} // s=2: λ_n = −(s−n)²
	solve := func(n int) *Spectrum {
		prob := bvp.Problem{
			Potential: potential.PoschlTeller{V0: 6, A: 1},
			Domain:    bvp.NewInterval(-10, 10, n, bvp.GridUniform),
			BC:        bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()},
		}
		sol, err := solver.Solve(context.Background(), prob, bvp.FiniteDifference, 2, bvp.DefaultSolveOptions())
		require.NoError(t, err)
		return Postprocess(sol, bvp.DefaultTolerances())
	}

	coarse := solve(400)
	fine := solve(800)
	assert.Equal(t, 2, coarse.NBound)
	assert.Equal(t, 2, fine.NBound)

	for n, want := range exact {
		errCoarse := math.Abs(coarse.Modes[n].Value-want) / math.Abs(want)
		errFine := math.Abs(fine.Modes[n].Value-want) / math.Abs(want)
		assert.Less(t, errCoarse, 5e-3, "level %d at N=400", n)
		assert.Less(t, errFine, 1.5e-3, "level %d at N=800", n)
		assert.Less(t, errFine, errCoarse, "level %d did not improve under refinement", n)
	}
}
