package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/spectra/internal/bvp"
	"github.com/san-kum/spectra/internal/potential"
	"github.com/san-kum/spectra/internal/verify"
)

func testGate(t *testing.T) Gate {
	t.Helper()

	pot, err := potential.New(potential.FamilyPoschlTeller, map[string]float64{"v0": 6, "a": 1})
	if err != nil {
		t.Fatal(err)
	}
	prob := bvp.Problem{
		Potential: pot,
		Domain:    bvp.NewInterval(-6, 6, 400, bvp.GridUniform),
		BC:        bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()},
	}

	rep := &verify.Report{
		Problem: prob,
		K:       2,
		Verdict: verify.VerdictFail,
		Stages: []verify.StageResult{
			{
				Stage:   verify.StageV0,
				Reached: true,
				Passed:  false,
				Checks: []verify.Check{
					{Name: "v0/eigenvalue[0]", Observed: -3.99, Expected: -4, Tolerance: 1e-3, Passed: false},
					{Name: "v0/normalization[0]", Observed: 1, Expected: 1, Tolerance: 1e-6, Passed: true},
				},
			},
			{Stage: verify.StageV1},
			{Stage: verify.StageV2},
		},
	}
	rc := RunContext{
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Host:      "workbench",
		Commit:    "abc1234",
		Version:   "1.2.0",
	}
	return Gate{Context: rc, Report: rep}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := testGate(t).WriteMarkdown(&buf); err != nil {
		t.Fatalf("markdown: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"# Verification gate: poschl_teller",
		"verdict: **FAIL**",
		"a=1, v0=6",
		"## V0 (failed)",
		"v0/eigenvalue[0]",
		"## V1 (not reached)",
		"## V2 (not reached)",
		"workbench",
		"abc1234",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := testGate(t).WriteCSV(&buf); err != nil {
		t.Fatalf("csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	// header plus the two reached V0 checks; unreached stages emit nothing
	if len(lines) != 3 {
		t.Fatalf("expected 3 csv lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "stage,check,observed") {
		t.Errorf("bad header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "fail") {
		t.Errorf("first check should be a failure: %s", lines[1])
	}
	if !strings.Contains(lines[2], "pass") {
		t.Errorf("second check should pass: %s", lines[2])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := testGate(t).WriteJSON(&buf); err != nil {
		t.Fatalf("json: %v", err)
	}

	var out struct {
		Family  string `json:"family"`
		Verdict string `json:"verdict"`
		Commit  string `json:"commit"`
		Stages  []struct {
			Stage   string `json:"stage"`
			Reached bool   `json:"reached"`
		} `json:"stages"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Family != "poschl_teller" || out.Verdict != "FAIL" {
		t.Errorf("header wrong: %+v", out)
	}
	if out.Commit != "abc1234" {
		t.Errorf("context lost: %+v", out)
	}
	if len(out.Stages) != 3 || out.Stages[1].Reached {
		t.Errorf("stages wrong: %+v", out.Stages)
	}
}

func TestRunContextMap(t *testing.T) {
	rc := RunContext{
		Timestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Version:   "dev",
	}
	m := rc.Map()
	if m["version"] != "dev" {
		t.Errorf("version missing: %v", m)
	}
	if _, ok := m["host"]; ok {
		t.Error("empty host should be omitted")
	}
	if _, ok := m["commit"]; ok {
		t.Error("empty commit should be omitted")
	}
}

func TestCollect(t *testing.T) {
	rc := Collect()
	if rc.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
	if rc.Version == "" {
		t.Error("version not set")
	}
}
