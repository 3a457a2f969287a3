package verify

import (
	"context"
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

type Stage int

const (
	StageV0 Stage = iota
	StageV1
	StageV2
)

func (s Stage) String() string {
	switch s {
	case StageV0:
		return "V0"
	case StageV1:
		return "V1"
	case StageV2:
		return "V2"
	default:
		return "unknown"
	}
}

type Verdict int

const (
	VerdictPass Verdict = iota
	VerdictFail
)

func (v Verdict) String() string {
	if v == VerdictPass {
		return "PASS"
	}
	return "FAIL"
}

// Check is one named sub-check with the numbers needed to diagnose it.
type Check struct {
	Name      string
	Observed  float64
	Expected  float64
	Tolerance float64
	Passed    bool
	Skipped   bool
	Note      string
}

// Failure converts a failed check into its error form.
func (c Check) Failure() *bvp.CheckFailure {
	return &bvp.CheckFailure{Check: c.Name, Observed: c.Observed, Expected: c.Expected, Tolerance: c.Tolerance}
}

type StageResult struct {
	Stage   Stage
	Reached bool
	Passed  bool
	Checks  []Check
}

func (r *StageResult) add(c Check) { r.Checks = append(r.Checks, c) }

func (r *StageResult) settle() {
	r.Passed = true
	for _, c := range r.Checks {
		if !c.Skipped && !c.Passed {
			r.Passed = false
			return
		}
	}
}

// Report is the full ladder outcome for one configuration.
type Report struct {
	Problem bvp.Problem
	K       int
	Stages  []StageResult
	Verdict Verdict
}

// Failures lists every failed sub-check across the reached stages.
func (r *Report) Failures() []Check {
	var out []Check
	for _, st := range r.Stages {
		if !st.Reached {
			continue
		}
		for _, c := range st.Checks {
			if !c.Skipped && !c.Passed {
				out = append(out, c)
			}
		}
	}
	return out
}

// Ladder runs the three verification tiers with one tolerance profile.
type Ladder struct {
	Tol  bvp.ToleranceProfile
	K    int
	Opts bvp.SolveOptions
}

func NewLadder(tol bvp.ToleranceProfile, k int) *Ladder {
	return &Ladder{Tol: tol, K: k, Opts: bvp.DefaultSolveOptions()}
}

// Run drives the ladder for one problem. Solver errors propagate to the
// caller; check failures are recorded, terminate the ladder at the failed
// stage, and yield a FAIL verdict.
func (l *Ladder) Run(ctx context.Context, p bvp.Problem) (*Report, error) {
	rep := &Report{
		Problem: p,
		K:       l.K,
		Stages: []StageResult{
			{Stage: StageV0},
			{Stage: StageV1},
			{Stage: StageV2},
		},
		Verdict: VerdictFail,
	}

	runners := []func(context.Context, bvp.Problem, *StageResult) error{
		l.runV0,
		l.runV1,
		l.runV2,
	}
	for i, run := range runners {
		st := &rep.Stages[i]
		st.Reached = true
		if err := run(ctx, p, st); err != nil {
			return rep, err
		}
		st.settle()
		if !st.Passed {
			return rep, nil
		}
	}

	rep.Verdict = VerdictPass
	return rep, nil
}

func relErr(observed, expected float64) float64 {
	scale := math.Max(math.Abs(expected), 1e-12)
	return math.Abs(observed-expected) / scale
}
