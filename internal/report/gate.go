package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/spectra/internal/verify"
)

// Gate bundles one ladder report with the context that produced it.
type Gate struct {
	Context RunContext
	Report  *verify.Report
}

type jsonCheck struct {
	Name      string  `json:"name"`
	Observed  float64 `json:"observed"`
	Expected  float64 `json:"expected"`
	Tolerance float64 `json:"tolerance"`
	Passed    bool    `json:"passed"`
	Skipped   bool    `json:"skipped,omitempty"`
	Note      string  `json:"note,omitempty"`
}

type jsonStage struct {
	Stage   string      `json:"stage"`
	Reached bool        `json:"reached"`
	Passed  bool        `json:"passed"`
	Checks  []jsonCheck `json:"checks,omitempty"`
}

type jsonGate struct {
	Timestamp string             `json:"timestamp"`
	Host      string             `json:"host,omitempty"`
	Commit    string             `json:"commit,omitempty"`
	Version   string             `json:"version,omitempty"`
	Family    string             `json:"family"`
	Params    map[string]float64 `json:"params"`
	K         int                `json:"k"`
	Verdict   string             `json:"verdict"`
	Stages    []jsonStage        `json:"stages"`
}

// WriteJSON emits the full gate record, indented for humans and diffs.
func (g Gate) WriteJSON(w io.Writer) error {
	out := jsonGate{
		Timestamp: g.Context.Timestamp.Format(time.RFC3339),
		Host:      g.Context.Host,
		Commit:    g.Context.Commit,
		Version:   g.Context.Version,
		Family:    g.Report.Problem.Potential.Family(),
		Params:    g.Report.Problem.Potential.Params(),
		K:         g.Report.K,
		Verdict:   g.Report.Verdict.String(),
	}
	for _, st := range g.Report.Stages {
		js := jsonStage{Stage: st.Stage.String(), Reached: st.Reached, Passed: st.Passed}
		for _, c := range st.Checks {
			js.Checks = append(js.Checks, jsonCheck{
				Name:      c.Name,
				Observed:  c.Observed,
				Expected:  c.Expected,
				Tolerance: c.Tolerance,
				Passed:    c.Passed,
				Skipped:   c.Skipped,
				Note:      c.Note,
			})
		}
		out.Stages = append(out.Stages, js)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteCSV emits one row per sub-check across all reached stages.
func (g Gate) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"stage", "check", "observed", "expected", "tolerance", "status", "note"}); err != nil {
		return err
	}
	for _, st := range g.Report.Stages {
		if !st.Reached {
			continue
		}
		for _, c := range st.Checks {
			status := "fail"
			switch {
			case c.Skipped:
				status = "skipped"
			case c.Passed:
				status = "pass"
			}
			row := []string{
				st.Stage.String(),
				c.Name,
				strconv.FormatFloat(c.Observed, 'g', 12, 64),
				strconv.FormatFloat(c.Expected, 'g', 12, 64),
				strconv.FormatFloat(c.Tolerance, 'g', 6, 64),
				status,
				c.Note,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown emits the human-facing gate report: a header with the
// configuration and context, then one table per reached stage.
func (g Gate) WriteMarkdown(w io.Writer) error {
	rep := g.Report
	prob := rep.Problem

	fmt.Fprintf(w, "# Verification gate: %s\n\n", prob.Potential.Family())
	fmt.Fprintf(w, "- verdict: **%s**\n", rep.Verdict)
	fmt.Fprintf(w, "- params: %s\n", formatParams(prob.Potential.Params()))
	fmt.Fprintf(w, "- domain: [%g, %g], N=%d, %s grid\n",
		prob.Domain.XMin, prob.Domain.XMax, prob.Domain.N, prob.Domain.Grid)
	fmt.Fprintf(w, "- boundary: left %s, right %s\n", prob.BC.Left, prob.BC.Right)
	fmt.Fprintf(w, "- eigenvalues retained: %d\n", rep.K)
	fmt.Fprintf(w, "- run: %s", g.Context.Timestamp.Format(time.RFC3339))
	if g.Context.Host != "" {
		fmt.Fprintf(w, " on %s", g.Context.Host)
	}
	if g.Context.Commit != "" {
		fmt.Fprintf(w, " at %s", g.Context.Commit)
	}
	if g.Context.Version != "" {
		fmt.Fprintf(w, " (%s)", g.Context.Version)
	}
	fmt.Fprintln(w)

	for _, st := range rep.Stages {
		fmt.Fprintf(w, "\n## %s", st.Stage)
		if !st.Reached {
			fmt.Fprintf(w, " (not reached)\n")
			continue
		}
		if st.Passed {
			fmt.Fprintf(w, " (passed)\n\n")
		} else {
			fmt.Fprintf(w, " (failed)\n\n")
		}

		fmt.Fprintln(w, "| check | observed | expected | tolerance | status |")
		fmt.Fprintln(w, "|-------|----------|----------|-----------|--------|")
		for _, c := range st.Checks {
			status := "fail"
			switch {
			case c.Skipped:
				status = "skipped"
			case c.Passed:
				status = "pass"
			}
			if c.Skipped {
				fmt.Fprintf(w, "| %s | | | | %s |\n", c.Name, status)
				continue
			}
			fmt.Fprintf(w, "| %s | %.6g | %.6g | %.2g | %s |\n",
				c.Name, c.Observed, c.Expected, c.Tolerance, status)
		}
		for _, c := range st.Checks {
			if c.Note != "" {
				fmt.Fprintf(w, "\n> %s: %s\n", c.Name, c.Note)
			}
		}
	}
	return nil
}

func formatParams(params map[string]float64) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := ""
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%g", k, params[k])
	}
	if s == "" {
		return "none"
	}
	return s
}
