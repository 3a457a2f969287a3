package operator

import (
	"math"

	"github.com/san-kum/spectra/internal/bvp"
)

// Grid returns the node positions and half-cell trapezoid quadrature
// weights for the domain. Chebyshev grids use Gauss-Lobatto nodes mapped
// onto the interval, ordered ascending like the uniform case.
func Grid(d bvp.Domain) (x, w []float64) {
	n := d.N
	x = make([]float64, n)
	switch d.Grid {
	case bvp.GridChebyshev:
		mid := 0.5 * (d.XMin + d.XMax)
		half := 0.5 * d.Length()
		for i := 0; i < n; i++ {
			x[i] = mid - half*math.Cos(float64(i)*math.Pi/float64(n-1))
		}
	default:
		h := d.Length() / float64(n-1)
		for i := 0; i < n; i++ {
			x[i] = d.XMin + float64(i)*h
		}
		x[n-1] = d.XMax
	}
	return x, weights(x)
}

func weights(x []float64) []float64 {
	n := len(x)
	w := make([]float64, n)
	w[0] = 0.5 * (x[1] - x[0])
	for i := 1; i < n-1; i++ {
		w[i] = 0.5 * (x[i+1] - x[i-1])
	}
	w[n-1] = 0.5 * (x[n-1] - x[n-2])
	return w
}
