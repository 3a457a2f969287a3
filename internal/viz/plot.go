package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// PotentialPlot draws V(x) over the solution grid.
func PotentialPlot(grid, v []float64, width, height int) string {
	data := resample(v, width)
	caption := ""
	if len(grid) > 0 {
		caption = fmt.Sprintf("V(x) on [%g, %g]", grid[0], grid[len(grid)-1])
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// ModePlot draws the retained mode profiles as stacked series.
func ModePlot(grid []float64, profiles [][]float64, values []float64, width, height int) string {
	if len(profiles) == 0 {
		return ""
	}

	series := make([][]float64, len(profiles))
	for n, psi := range profiles {
		series[n] = resample(psi, width)
	}

	caption := "modes"
	if len(values) > 0 {
		caption = fmt.Sprintf("modes 0..%d, λ₀=%.4g", len(profiles)-1, values[0])
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Aqua, asciigraph.Green, asciigraph.Yellow, asciigraph.Fuchsia, asciigraph.Red),
	)
}

// MarginPlot draws the gap margin across sweep points in flat order.
func MarginPlot(margins []float64, width, height int) string {
	if len(margins) == 0 {
		return ""
	}
	return asciigraph.Plot(resample(margins, width),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("gap margin by lattice point"),
	)
}

// resample picks evenly spaced samples so long grids fit the plot width.
func resample(data []float64, width int) []float64 {
	if width <= 0 || len(data) <= width {
		return data
	}
	out := make([]float64, width)
	for i := 0; i < width; i++ {
		j := i * (len(data) - 1) / (width - 1)
		out[i] = data[j]
	}
	return out
}
