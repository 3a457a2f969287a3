// Package viz renders terminal views of spectra: potential and mode
// profile plots, the phase-atlas lattice map, and the live sweep
// progress screen.
package viz
