package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/spectra/internal/atlas"
)

// AtlasMap renders the sweep lattice as a character map. Each cell shows
// the bound-state count, with × for invalid points and ? for ambiguous
// ones. Points hitting the target render green, interior points bold.
// One axis renders as a single row; two axes as a grid with the first
// axis down the rows. Higher-dimensional sweeps fall back to a summary
// line.
func AtlasMap(res *atlas.Result, reg *atlas.Region) string {
	if len(res.Axes) > 2 {
		return fmt.Sprintf("%d axes; map rendering supports 1 or 2 (use the csv export)", len(res.Axes))
	}

	interior := make(map[int]bool, len(reg.Interior))
	for _, flat := range reg.Interior {
		interior[flat] = true
	}

	lat := atlas.Lattice{Axes: res.Axes}
	rows, cols := 1, len(res.Axes[0].Values)
	if len(res.Axes) == 2 {
		rows = len(res.Axes[0].Values)
		cols = len(res.Axes[1].Values)
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		if len(res.Axes) == 2 {
			b.WriteString(dim.Render(fmt.Sprintf("%8.3g ", res.Axes[0].Values[r])))
		}
		for c := 0; c < cols; c++ {
			var flat int
			if len(res.Axes) == 2 {
				flat = lat.Flat([]int{r, c})
			} else {
				flat = c
			}
			b.WriteString(cell(res.Points[flat], res.Target, interior[flat]))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	if len(res.Axes) == 2 {
		b.WriteString(dim.Render(fmt.Sprintf("%9s", res.Axes[0].Name)))
		b.WriteString(dim.Render(fmt.Sprintf(" ↓  %s →", res.Axes[1].Name)))
		b.WriteByte('\n')
	} else {
		b.WriteString(dim.Render(fmt.Sprintf("%s →", res.Axes[0].Name)))
		b.WriteByte('\n')
	}

	b.WriteString(dim.Render(fmt.Sprintf("target %d: %s hit, %s interior, %s invalid, %s ambiguous",
		res.Target,
		green.Render("digit"),
		green.Bold(true).Render("bold"),
		red.Render("×"),
		yellow.Render("?"))))
	return b.String()
}

func cell(p atlas.Point, target int, interior bool) string {
	switch p.Status {
	case atlas.StatusInvalid:
		return red.Render("×")
	case atlas.StatusAmbiguous:
		return yellow.Render("?")
	}

	s := fmt.Sprintf("%d", p.NBound)
	if p.NBound > 9 {
		s = "+"
	}
	if p.NBound != target {
		return white.Render(s)
	}
	if interior {
		return green.Bold(true).Render(s)
	}
	return green.Render(s)
}
