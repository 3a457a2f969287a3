// Package potential provides the closed set of potential families for the
// eigenvalue engine.
//
// Each family is a typed value implementing [bvp.Potential]:
//
//   - [Box]: free particle between hard walls
//   - [SquareWell]: finite square well of depth V0 and half-width a
//   - [Harmonic]: harmonic oscillator ω²x²
//   - [PoschlTeller]: −V0 sech²(x/a) well
//   - [Volcano]: central barrier ringed by a well
//   - [DoubleWell]: confining quartic double well
//   - [ExpTail]: exponentially decaying well
//   - [DomainWall]: kink fluctuation potential with a massive asymptote
//
// Families admitting closed-form spectra expose them through [Levels],
// which the analytic verification tier consumes.
//
// Potentials are immutable; WithParam returns a modified copy. Construct
// from a name and parameter map at the configuration edge with [New], or
// use the typed constructors directly.
package potential
