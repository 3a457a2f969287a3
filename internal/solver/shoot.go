package solver

import (
	"context"
	"math"

	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/operator"
)

func solveShooting(ctx context.Context, p bvp.Problem, k int, opts bvp.SolveOptions) (*bvp.Solution, error) {
	sh, err := operator.NewShooter(p)
	if err != nil {
		return nil, err
	}

	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, x := range sh.Grid {
		v := p.Potential.Eval(x)
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	scanMin := minV - 1e-9*(math.Abs(minV)+1)
	scanMax := opts.ScanMax
	if scanMax == 0 {
		// Free-particle estimate for the (k+1)-th level, with headroom.
		kn := float64(k+1) * math.Pi / p.Domain.Length()
		scanMax = maxV + 4*kn*kn
	}
	steps := opts.ScanSteps
	if steps < 2 {
		steps = 2000
	}

	roots := make([]float64, 0, k)
	dl := (scanMax - scanMin) / float64(steps)
	prevL := scanMin
	prevF := sh.Mismatch(prevL)

	for i := 1; i <= steps && len(roots) < k; i++ {
		select {
		case <-ctx.Done():
			return nil, bvp.ErrCanceled
		default:
		}

		l := scanMin + float64(i)*dl
		f := sh.Mismatch(l)
		switch {
		case f == 0:
			roots = append(roots, l)
		case prevF*f < 0:
			root, ok := bisect(sh, prevL, l, prevF, opts)
			if !ok {
				return nil, &bvp.ConvergenceError{
					Method:    bvp.Shooting,
					Requested: k,
					Found:     len(roots),
					ScanMin:   scanMin,
					ScanMax:   scanMax,
					Detail:    "bisection exhausted its iteration budget",
				}
			}
			roots = append(roots, root)
		}
		prevL, prevF = l, f
	}

	if len(roots) < k {
		return nil, &bvp.ConvergenceError{
			Method:    bvp.Shooting,
			Requested: k,
			Found:     len(roots),
			ScanMin:   scanMin,
			ScanMax:   scanMax,
		}
	}

	pairs := make([]bvp.Eigenpair, k)
	for n, root := range roots {
		pairs[n] = bvp.Eigenpair{
			Index:  n,
			Value:  root,
			Vector: sh.Profile(root),
		}
	}

	return &bvp.Solution{
		Problem: p,
		Method:  bvp.Shooting,
		Grid:    sh.Grid,
		Weights: sh.Weights,
		Pairs:   pairs,
	}, nil
}

func bisect(sh *operator.Shooter, lo, hi, flo float64, opts bvp.SolveOptions) (float64, bool) {
	budget := opts.MaxRootIter
	if budget <= 0 {
		budget = 200
	}
	tol := opts.RootTol
	if tol <= 0 {
		tol = 1e-10
	}

	for i := 0; i < budget; i++ {
		mid := 0.5 * (lo + hi)
		if hi-lo < tol*math.Max(1, math.Abs(mid)) {
			return mid, true
		}
		fm := sh.Mismatch(mid)
		if fm == 0 {
			return mid, true
		}
		if flo*fm < 0 {
			hi = mid
		} else {
			lo, flo = mid, fm
		}
	}
	return 0, false
}
