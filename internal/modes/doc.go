// Package modes post-processes raw eigenpairs into normalized mode
// profiles, a bound-state count, and overlap integrals.
//
// The essential spectrum threshold λ_th is recomputed from the potential's
// asymptotic value on every call; it is intrinsic to the potential, never
// an external target. Modes within ThresholdEps of λ_th are classified
// Ambiguous and kept out of both the bound and scattering counts.
package modes
