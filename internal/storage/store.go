package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/spectra/internal/atlas"
	"github.com/san-kum/spectra/internal/modes"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// AxisMeta records one sweep axis so an atlas can be rebuilt from disk.
type AxisMeta struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Kind        string             `json:"kind"` // "spectrum" or "atlas"
	Family      string             `json:"family"`
	Params      map[string]float64 `json:"params"`
	Timestamp   time.Time          `json:"timestamp"`
	Method      string             `json:"method,omitempty"`
	XMin        float64            `json:"x_min"`
	XMax        float64            `json:"x_max"`
	NPoints     int                `json:"n_points"`
	Grid        string             `json:"grid,omitempty"`
	Eigenvalues []float64          `json:"eigenvalues,omitempty"`
	NBound      int                `json:"n_bound"`
	Threshold   float64            `json:"threshold,omitempty"`
	Confining   bool               `json:"confining,omitempty"`
	Verdict     string             `json:"verdict,omitempty"`
	Target      int                `json:"target,omitempty"`
	Axes        []AxisMeta         `json:"axes,omitempty"`
	Context     map[string]string  `json:"context,omitempty"`
}

// SaveSpectrum persists one postprocessed solve as metadata.json plus a
// spectrum.csv holding the grid, the sampled potential, and the mode
// profiles. Verdict may be empty when no verification ladder ran.
func (s *Store) SaveSpectrum(sp *modes.Spectrum, verdict string, context map[string]string) (string, error) {
	prob := sp.Solution.Problem
	runID := newRunID(prob.Potential.Family())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Kind:        "spectrum",
		Family:      prob.Potential.Family(),
		Params:      prob.Potential.Params(),
		Timestamp:   time.Now(),
		Method:      sp.Solution.Method.String(),
		XMin:        prob.Domain.XMin,
		XMax:        prob.Domain.XMax,
		NPoints:     prob.Domain.N,
		Grid:        prob.Domain.Grid.String(),
		Eigenvalues: sp.Solution.Values(),
		NBound:      sp.NBound,
		Verdict:     verdict,
		Context:     context,
	}
	// A confining family has no finite threshold; json cannot carry +Inf.
	if math.IsInf(sp.Threshold, 1) {
		meta.Confining = true
	} else {
		meta.Threshold = sp.Threshold
	}
	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "spectrum.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"x", "v"}
	for n := range sp.Modes {
		header = append(header, fmt.Sprintf("psi%d", n))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	grid := sp.Solution.Grid
	for i := range grid {
		row := []string{
			formatFloat(grid[i]),
			formatFloat(prob.Potential.Eval(grid[i])),
		}
		for _, m := range sp.Modes {
			row = append(row, formatFloat(m.Vector[i]))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveAtlas persists a sweep result as metadata.json plus an atlas.csv
// with one row per lattice point in flat order.
func (s *Store) SaveAtlas(family string, params map[string]float64, res *atlas.Result, context map[string]string) (string, error) {
	runID := newRunID(family)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	axes := make([]AxisMeta, len(res.Axes))
	for d, ax := range res.Axes {
		axes[d] = AxisMeta{Name: ax.Name, Values: append([]float64(nil), ax.Values...)}
	}
	meta := RunMetadata{
		ID:        runID,
		Kind:      "atlas",
		Family:    family,
		Params:    params,
		Timestamp: time.Now(),
		Target:    res.Target,
		Axes:      axes,
		Context:   context,
	}
	if err := s.writeMetadata(runDir, meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "atlas.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := make([]string, 0, len(res.Axes)+5)
	for _, ax := range res.Axes {
		header = append(header, ax.Name)
	}
	header = append(header, "status", "n_bound", "margin", "eigenvalues", "error")
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range res.Points {
		row := make([]string, 0, len(header))
		for _, ax := range res.Axes {
			row = append(row, formatFloat(p.Theta[ax.Name]))
		}
		row = append(row,
			p.Status.String(),
			strconv.Itoa(p.NBound),
			formatFloat(p.Margin),
			joinFloats(p.Eigenvalues),
			p.Err,
		)
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSpectrum reads back the grid, the sampled potential, and the mode
// profiles of a spectrum run.
func (s *Store) LoadSpectrum(runID string) (grid, v []float64, profiles [][]float64, err error) {
	records, err := s.readCSV(runID, "spectrum.csv")
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil, nil
	}

	k := len(records[0]) - 2
	profiles = make([][]float64, k)
	for i := 1; i < len(records); i++ {
		row := records[i]
		if len(row) != k+2 {
			continue
		}
		x, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			continue
		}
		val, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		grid = append(grid, x)
		v = append(v, val)
		for n := 0; n < k; n++ {
			pv, err := strconv.ParseFloat(row[2+n], 64)
			if err != nil {
				pv = 0
			}
			profiles[n] = append(profiles[n], pv)
		}
	}
	return grid, v, profiles, nil
}

// LoadAtlas rebuilds a sweep result, points in flat lattice order, from
// the stored axes and point table.
func (s *Store) LoadAtlas(runID string) (*atlas.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	records, err := s.readCSV(runID, "atlas.csv")
	if err != nil {
		return nil, err
	}

	axes := make([]atlas.Axis, len(meta.Axes))
	for d, am := range meta.Axes {
		axes[d] = atlas.ListAxis(am.Name, am.Values)
	}
	lat := atlas.Lattice{Axes: axes}

	res := &atlas.Result{Axes: axes, Target: meta.Target}
	nAxes := len(axes)
	for i := 1; i < len(records); i++ {
		row := records[i]
		if len(row) != nAxes+5 {
			continue
		}
		flat := len(res.Points)
		p := atlas.Point{
			Index: lat.At(flat),
			Theta: make(map[string]float64, nAxes),
		}
		for d, ax := range axes {
			val, err := strconv.ParseFloat(row[d], 64)
			if err != nil {
				return nil, fmt.Errorf("atlas %s row %d: bad %s value %q", runID, i, ax.Name, row[d])
			}
			p.Theta[ax.Name] = val
		}
		p.Status = parseStatus(row[nAxes])
		p.NBound, _ = strconv.Atoi(row[nAxes+1])
		p.Margin, _ = strconv.ParseFloat(row[nAxes+2], 64)
		p.Eigenvalues = splitFloats(row[nAxes+3])
		p.Err = row[nAxes+4]

		switch p.Status {
		case atlas.StatusOK:
			res.OK++
		case atlas.StatusAmbiguous:
			res.Ambiguous++
		default:
			res.Invalid++
		}
		res.Points = append(res.Points, p)
	}
	return res, nil
}

func (s *Store) writeMetadata(runDir string, meta RunMetadata) error {
	f, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func newRunID(family string) string {
	return fmt.Sprintf("%s_%s", family, uuid.NewString()[:8])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = formatFloat(v)
	}
	return strings.Join(parts, ";")
}

func splitFloats(s string) []float64 {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func parseStatus(s string) atlas.Status {
	switch s {
	case "OK":
		return atlas.StatusOK
	case "AMBIGUOUS":
		return atlas.StatusAmbiguous
	default:
		return atlas.StatusInvalid
	}
}
