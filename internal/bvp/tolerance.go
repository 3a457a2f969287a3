package bvp

// ToleranceProfile collects every tolerance the verification ladder and
// postprocessor consult. Thread one profile through explicitly; tests can
// construct stricter or looser profiles without touching solver internals.
type ToleranceProfile struct {
	AnalyticRel     float64 // V0: relative error against closed-form eigenvalues
	CrossMethodRel  float64 // V1: relative disagreement between fd and shooting
	RefinementDrift float64 // V2: eigenvalue drift under grid doubling
	CutoffDrift     float64 // V2: eigenvalue drift under domain extension
	Symmetry        float64 // V2: operator symmetry residual
	Normalization   float64 // V0/V2: |‖ψ‖²−1| per mode
	Orthogonality   float64 // V0: |⟨ψ_m, ψ_n⟩| for m≠n
	BCResidual      float64 // V2: boundary condition residual per endpoint
	ThresholdEps    float64 // half-width of the ambiguous band around λ_th
	GapMargin       float64 // minimum relative spacing for a robust region
	Degeneracy      float64 // relative spacing below which a pair is degenerate
}

func DefaultTolerances() ToleranceProfile {
	return ToleranceProfile{
		AnalyticRel:     1e-3,
		CrossMethodRel:  1e-4,
		RefinementDrift: 1e-3,
		CutoffDrift:     1e-3,
		Symmetry:        1e-12,
		Normalization:   1e-6,
		Orthogonality:   1e-6,
		BCResidual:      5e-3,
		ThresholdEps:    1e-8,
		GapMargin:       0.05,
		Degeneracy:      1e-9,
	}
}
