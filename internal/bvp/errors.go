package bvp

import (
	"errors"
	"fmt"
)

// Domain errors for eigenproblem construction and solving.
var (
	// ErrBadConfig indicates malformed or out-of-range input.
	ErrBadConfig = errors.New("bvp: invalid configuration")

	// ErrNoConvergence indicates a solver exhausted its tolerance or
	// iteration budget.
	ErrNoConvergence = errors.New("bvp: solver failed to converge")

	// ErrCheckFailed indicates a named verification sub-check did not pass.
	ErrCheckFailed = errors.New("bvp: verification check failed")

	// ErrAmbiguousMode indicates an eigenvalue within epsilon of the
	// essential spectrum threshold.
	ErrAmbiguousMode = errors.New("bvp: eigenvalue within epsilon of essential spectrum threshold")

	// ErrUnknownFamily indicates a potential family outside the closed set.
	// It is a configuration error and matches ErrBadConfig.
	ErrUnknownFamily = fmt.Errorf("%w: unknown potential family", ErrBadConfig)

	// ErrUnknownParam indicates a parameter name the family does not carry.
	// It is a configuration error and matches ErrBadConfig.
	ErrUnknownParam = fmt.Errorf("%w: unknown potential parameter", ErrBadConfig)

	// ErrCanceled indicates the solve was interrupted by its context.
	ErrCanceled = errors.New("bvp: solve canceled by context")
)

// ConfigError reports which input field was malformed.
type ConfigError struct {
	Field  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bvp: invalid configuration: %s: %s", e.Field, e.Detail)
}

func (e *ConfigError) Unwrap() error { return ErrBadConfig }

// ConvergenceError carries the scan window and counts needed to reproduce
// a failed root search.
type ConvergenceError struct {
	Method    Method
	Requested int
	Found     int
	ScanMin   float64
	ScanMax   float64
	Detail    string
}

func (e *ConvergenceError) Error() string {
	msg := fmt.Sprintf("bvp: %s solver found %d of %d eigenvalues in [%g, %g]",
		e.Method, e.Found, e.Requested, e.ScanMin, e.ScanMax)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConvergenceError) Unwrap() error { return ErrNoConvergence }

// CheckFailure identifies a verification sub-check with the numbers needed
// to diagnose it without re-running.
type CheckFailure struct {
	Check     string
	Observed  float64
	Expected  float64
	Tolerance float64
}

func (e *CheckFailure) Error() string {
	return fmt.Sprintf("bvp: check %s failed: observed %g, expected %g (tol %g)",
		e.Check, e.Observed, e.Expected, e.Tolerance)
}

func (e *CheckFailure) Unwrap() error { return ErrCheckFailed }

// AmbiguousModeError flags a boundary-ambiguous mode; it is never folded
// into the bound or scattering counts.
type AmbiguousModeError struct {
	Index     int
	Value     float64
	Threshold float64
	Epsilon   float64
}

func (e *AmbiguousModeError) Error() string {
	return fmt.Sprintf("bvp: mode %d (λ=%g) within ε=%g of threshold λ_th=%g",
		e.Index, e.Value, e.Epsilon, e.Threshold)
}

func (e *AmbiguousModeError) Unwrap() error { return ErrAmbiguousMode }
