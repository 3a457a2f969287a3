package verify

import (
	"context"
	"fmt"

	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/modes"
	"github.com/san-kum/spectra/internal/solver"
)

// runV1 cross-checks the two discretization methods: per-eigenvalue
// relative disagreement below tolerance, and exact integer agreement on
// the bound-state count.
func (l *Ladder) runV1(ctx context.Context, p bvp.Problem, st *StageResult) error {
	fd, err := solver.Solve(ctx, p, bvp.FiniteDifference, l.K, l.Opts)
	if err != nil {
		return err
	}
	sh, err := solver.Solve(ctx, p, bvp.Shooting, l.K, l.Opts)
	if err != nil {
		return err
	}

	for n := 0; n < l.K; n++ {
		a, b := fd.Pairs[n].Value, sh.Pairs[n].Value
		st.add(Check{
			Name:      fmt.Sprintf("v1/eigenvalue[%d]", n),
			Observed:  b,
			Expected:  a,
			Tolerance: l.Tol.CrossMethodRel,
			Passed:    relErr(b, a) < l.Tol.CrossMethodRel,
		})
	}

	threshold := p.Potential.Asymptote()
	nFD, err := modes.RequireDefiniteCount(fd.Values(), threshold, l.Tol.ThresholdEps)
	if err != nil {
		st.add(Check{Name: "v1/nbound", Note: err.Error()})
		return nil
	}
	nSH, err := modes.RequireDefiniteCount(sh.Values(), threshold, l.Tol.ThresholdEps)
	if err != nil {
		st.add(Check{Name: "v1/nbound", Note: err.Error()})
		return nil
	}
	st.add(Check{
		Name:     "v1/nbound",
		Observed: float64(nSH),
		Expected: float64(nFD),
		Passed:   nFD == nSH,
	})
	return nil
}
