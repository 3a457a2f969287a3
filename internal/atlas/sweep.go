package atlas

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/modes"
	"github.com/san-kum/spectra/internal/solver"
)

type Status int

const (
	StatusOK Status = iota
	StatusAmbiguous
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusAmbiguous:
		return "AMBIGUOUS"
	case StatusInvalid:
		return "INVALID"
	default:
		return "unknown"
	}
}

// Point is one evaluated parameter combination θ.
type Point struct {
	Index       []int
	Theta       map[string]float64
	Status      Status
	NBound      int
	Eigenvalues []float64
	Margin      float64
	Err         string
}

// Sweep drives many independent solves over a parameter lattice.
type Sweep struct {
	Base   bvp.Problem
	Axes   []Axis
	Target int
	Method bvp.Method
	K      int // eigenvalues per point; raised to Target+1 if below
	Tol    bvp.ToleranceProfile
	Opts   bvp.SolveOptions

	// Workers bounds the pool; 0 means GOMAXPROCS.
	Workers int

	// Progress, when set, is called after every point evaluation. It may
	// be called concurrently from multiple workers.
	Progress func(done, total int, p Point)

	Log *slog.Logger
}

// Result is the merged sweep table, ordered by flat lattice index.
type Result struct {
	Axes      []Axis
	Target    int
	Points    []Point
	OK        int
	Ambiguous int
	Invalid   int
}

// Run evaluates every lattice point on the worker pool. Per-point errors
// are captured in the point record; only context cancellation aborts the
// sweep as a whole.
func (s *Sweep) Run(ctx context.Context) (*Result, error) {
	if len(s.Axes) == 0 {
		return nil, &bvp.ConfigError{Field: "sweep.axes", Detail: "at least one sweep axis required"}
	}
	if s.Target < 1 {
		return nil, &bvp.ConfigError{Field: "sweep.target", Detail: "target bound-state count must be at least 1"}
	}

	lat := Lattice{Axes: s.Axes}
	total := lat.Size()
	points := make([]Point, total)

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}

	jobs := make(chan int)
	var done atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for flat := range jobs {
				p := s.evaluate(ctx, lat, flat)
				points[flat] = p
				n := int(done.Add(1))
				if s.Log != nil && p.Status != StatusOK {
					s.Log.Debug("sweep point not ok", "status", p.Status.String(), "theta", p.Theta, "err", p.Err)
				}
				if s.Progress != nil {
					s.Progress(n, total, p)
				}
			}
		}()
	}

feed:
	for flat := 0; flat < total; flat++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- flat:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, bvp.ErrCanceled
	}

	res := &Result{Axes: s.Axes, Target: s.Target, Points: points}
	for _, p := range points {
		switch p.Status {
		case StatusOK:
			res.OK++
		case StatusAmbiguous:
			res.Ambiguous++
		default:
			res.Invalid++
		}
	}
	return res, nil
}

// evaluate is the pure per-point function: fresh problem, solve,
// postprocess, classify. All inputs are copied; nothing is shared by
// reference across evaluation boundaries.
func (s *Sweep) evaluate(ctx context.Context, lat Lattice, flat int) Point {
	idx := lat.At(flat)
	theta := lat.ValuesAt(idx)
	point := Point{Index: idx, Theta: theta}

	prob, err := s.applyTheta(theta)
	if err != nil {
		point.Status = StatusInvalid
		point.Err = err.Error()
		return point
	}

	k := s.K
	if k < s.Target+1 {
		k = s.Target + 1
	}
	sol, err := solver.Solve(ctx, prob, s.Method, k, s.Opts)
	if err != nil {
		point.Status = StatusInvalid
		point.Err = err.Error()
		return point
	}

	values := sol.Values()
	point.Eigenvalues = values

	nBound, err := modes.RequireDefiniteCount(values, prob.Potential.Asymptote(), s.Tol.ThresholdEps)
	if err != nil {
		point.Status = StatusAmbiguous
		point.Err = err.Error()
		return point
	}

	point.Status = StatusOK
	point.NBound = nBound
	point.Margin = modes.GapMargin(values, s.Target)
	if math.IsNaN(point.Margin) {
		point.Margin = 0
	}
	return point
}

func (s *Sweep) applyTheta(theta map[string]float64) (bvp.Problem, error) {
	prob := s.Base
	pot := prob.Potential

	for name, value := range theta {
		switch name {
		case AxisKappaLeft:
			prob.BC.Left = bvp.RobinEnd(value)
		case AxisKappaRight:
			prob.BC.Right = bvp.RobinEnd(value)
		case AxisXMax:
			if !prob.Domain.HalfLine {
				prob.Domain.XMin = -value
			}
			prob.Domain.XMax = value
		case AxisNGrid:
			prob.Domain.N = int(value)
		default:
			var err error
			pot, err = pot.WithParam(name, value)
			if err != nil {
				return prob, err
			}
		}
	}
	prob.Potential = pot
	return prob, nil
}
