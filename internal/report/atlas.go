package report

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/spectra/internal/atlas"
)

// WriteAtlasSummary emits the sweep outcome and its robust-region
// classification as markdown.
func WriteAtlasSummary(w io.Writer, res *atlas.Result, reg *atlas.Region, rc RunContext) error {
	fmt.Fprintf(w, "# Phase atlas: target N_bound = %d\n\n", res.Target)

	fmt.Fprint(w, "- lattice:")
	total := 1
	for _, ax := range res.Axes {
		fmt.Fprintf(w, " %s[%d]", ax.Name, len(ax.Values))
		total *= len(ax.Values)
	}
	fmt.Fprintf(w, " (%d points)\n", total)
	fmt.Fprintf(w, "- status: %d ok, %d ambiguous, %d invalid\n", res.OK, res.Ambiguous, res.Invalid)
	fmt.Fprintf(w, "- run: %s\n\n", rc.Timestamp.Format(time.RFC3339))

	fmt.Fprintf(w, "## Region: %s\n\n", reg.Class)
	fmt.Fprintf(w, "- members: %d (volume fraction %.3f)\n", len(reg.Members), reg.VolumeFraction)
	if len(reg.Members) == 0 {
		return nil
	}
	fmt.Fprintf(w, "- interior points: %d\n", len(reg.Interior))
	fmt.Fprintf(w, "- gap margin: min %.4f, mean %.4f, std %.4f\n", reg.MarginMin, reg.MarginMean, reg.MarginStd)
	fmt.Fprintf(w, "- max boundary distance: %d lattice steps\n", reg.MaxBoundaryDistance)

	if reg.Class == atlas.RegionFineTuned {
		fmt.Fprintln(w, "\nEvery member sits on the region boundary; the target count does not survive parameter perturbation.")
	}
	return nil
}
