// Package verify implements the tiered verification ladder
//
//	V0_PENDING → V0_DONE → V1_PENDING → V1_DONE → V2_PENDING → V2_DONE → {PASS, FAIL}
//
// V0 compares numerical eigenvalues against closed-form references where
// the family admits them. V1 cross-checks the finite-difference and
// shooting methods against each other, demanding exact bound-state count
// agreement. V2 checks stability: grid refinement, domain-cutoff
// sensitivity, operator symmetry, normalization, and boundary residuals.
//
// A failed check makes FAIL terminal for the configuration, and later
// stages are reported not-reached. Every sub-check carries its observed
// value, expected value, and tolerance so a report can show which
// invariant broke without re-running.
package verify
