// Package atlas sweeps a parameter lattice and classifies which
// combinations yield a target bound-state count.
//
// Axes are declarative: each [Axis] names a parameter and its values, and
// the lattice is their Cartesian product. The reserved names kappa_l,
// kappa_r, x_max and n_grid bind to the boundary conditions and domain;
// every other name binds to a potential parameter.
//
// Point evaluations are pure functions of their inputs, so the sweep runs
// them on a bounded worker pool with per-worker copies and an
// index-addressed result slice, so evaluation order cannot affect the
// merged table. A point whose solve fails is recorded with status INVALID
// and its error detail, never silently dropped and never aborting the
// sweep.
package atlas
