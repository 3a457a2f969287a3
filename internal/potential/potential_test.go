package potential

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/spectra/internal/bvp"
)

func TestNewKnownFamilies(t *testing.T) {
	for _, family := range Families() {
		p, err := New(family, nil)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", family, err)
		}
		if p.Family() != family {
			t.Errorf("family mismatch: got %s, want %s", p.Family(), family)
		}
		if v := p.Eval(0.3); math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s: Eval(0.3) = %v", family, v)
		}
	}
}

func TestNewUnknownFamily(t *testing.T) {
	_, err := New("mexican_hat", nil)
	if !errors.Is(err, bvp.ErrUnknownFamily) {
		t.Errorf("expected ErrUnknownFamily, got %v", err)
	}
	if !errors.Is(err, bvp.ErrBadConfig) {
		t.Errorf("unknown family should be a configuration error, got %v", err)
	}
}

func TestNewUnknownParam(t *testing.T) {
	_, err := New(FamilyHarmonic, map[string]float64{"v0": 3})
	if !errors.Is(err, bvp.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if !errors.Is(err, bvp.ErrBadConfig) {
		t.Errorf("unknown param should be a configuration error, got %v", err)
	}
}

func TestWithParamDoesNotMutate(t *testing.T) {
	base := NewPoschlTeller()
	modified, err := base.WithParam("v0", 25.0)
	if err != nil {
		t.Fatalf("WithParam failed: %v", err)
	}
	if base.V0 != 10.0 {
		t.Errorf("receiver mutated: V0 = %g", base.V0)
	}
	if modified.Params()["v0"] != 25.0 {
		t.Errorf("copy not updated: v0 = %g", modified.Params()["v0"])
	}
}

func TestPoschlTellerBoundLevels(t *testing.T) {
	// V0=6, a=1 gives s=2 exactly: levels -4, -1.
	p := PoschlTeller{V0: 6, A: 1}
	if s := p.S(); math.Abs(s-2) > 1e-12 {
		t.Fatalf("s = %g, want 2", s)
	}
	levels := p.BoundLevels()
	want := []float64{-4, -1}
	if len(levels) != len(want) {
		t.Fatalf("got %d levels, want %d", len(levels), len(want))
	}
	for i := range want {
		if math.Abs(levels[i]-want[i]) > 1e-12 {
			t.Errorf("level %d = %g, want %g", i, levels[i], want[i])
		}
	}
}

func TestLevelsBox(t *testing.T) {
	prob := bvp.Problem{
		Potential: Box{},
		Domain:    bvp.NewInterval(0, 1, 100, bvp.GridUniform),
		BC:        bvp.BoundaryConditions{Left: bvp.DirichletEnd(), Right: bvp.DirichletEnd()},
	}
	levels := Levels(prob, 3)
	for n := 0; n < 3; n++ {
		want := float64((n+1)*(n+1)) * math.Pi * math.Pi
		if math.Abs(levels[n]-want) > 1e-9 {
			t.Errorf("box level %d = %g, want %g", n, levels[n], want)
		}
	}
}

func TestLevelsRequireDirichlet(t *testing.T) {
	prob := bvp.Problem{
		Potential: NewHarmonic(),
		Domain:    bvp.NewInterval(-8, 8, 200, bvp.GridUniform),
		BC:        bvp.BoundaryConditions{Left: bvp.NeumannEnd(), Right: bvp.DirichletEnd()},
	}
	if levels := Levels(prob, 3); levels != nil {
		t.Errorf("expected nil levels for non-Dirichlet BC, got %v", levels)
	}
}

func TestDomainWallAsymptote(t *testing.T) {
	d := DomainWall{M: 2, A: 1}
	if got := d.Asymptote(); got != 4 {
		t.Errorf("asymptote = %g, want 4", got)
	}
	if v := d.Eval(40); math.Abs(v-4) > 1e-9 {
		t.Errorf("far-field value = %g, want ≈4", v)
	}
}
