package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/spectra/internal/atlas"
)

// PointMsg carries one completed sweep point into the live view. The
// sweep's Progress callback sends it via Program.Send from worker
// goroutines.
type PointMsg struct {
	Done  int
	Total int
	Point atlas.Point
}

// DoneMsg ends the live view when the sweep returns.
type DoneMsg struct {
	Err error
}

// SweepModel is the bubbletea model for a running parameter sweep.
type SweepModel struct {
	family string
	target int
	total  int

	done      int
	ok        int
	ambiguous int
	invalid   int
	margins   []float64
	lastTheta string

	start    time.Time
	err      error
	finished bool
	width    int

	// Cancel stops the sweep context when the user quits early.
	Cancel func()
}

func NewSweepModel(family string, target, total int) SweepModel {
	return SweepModel{
		family: family,
		target: target,
		total:  total,
		start:  time.Now(),
		width:  80,
	}
}

func (m SweepModel) Init() tea.Cmd { return nil }

func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Cancel != nil {
				m.Cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case PointMsg:
		m.done = msg.Done
		m.total = msg.Total
		switch msg.Point.Status {
		case atlas.StatusOK:
			m.ok++
			m.margins = append(m.margins, msg.Point.Margin)
		case atlas.StatusAmbiguous:
			m.ambiguous++
		default:
			m.invalid++
		}
		m.lastTheta = formatTheta(msg.Point.Theta)
	case DoneMsg:
		m.err = msg.Err
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m SweepModel) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render(fmt.Sprintf("sweep %s, target N_bound = %d", m.family, m.target)))
	b.WriteString("\n\n")

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	barWidth := m.width - 20
	if barWidth < 10 {
		barWidth = 10
	}
	b.WriteString(fmt.Sprintf("%s %d/%d\n\n", ProgressBar(frac, barWidth), m.done, m.total))

	b.WriteString(fmt.Sprintf("  %s %d   %s %d   %s %d\n",
		green.Render("ok"), m.ok,
		yellow.Render("ambiguous"), m.ambiguous,
		red.Render("invalid"), m.invalid))

	if len(m.margins) > 0 {
		sparkWidth := m.width - 16
		if sparkWidth < 10 {
			sparkWidth = 10
		}
		b.WriteString(fmt.Sprintf("  margin %s\n", Sparkline(m.margins, sparkWidth)))
	}
	if m.lastTheta != "" {
		b.WriteString(dim.Render(fmt.Sprintf("  last θ: %s", m.lastTheta)))
		b.WriteByte('\n')
	}

	elapsed := time.Since(m.start).Round(time.Second)
	switch {
	case m.finished && m.err != nil:
		b.WriteString(FailStyle.Render(fmt.Sprintf("\nsweep aborted after %s: %v\n", elapsed, m.err)))
	case m.finished:
		b.WriteString(green.Render(fmt.Sprintf("\ndone in %s\n", elapsed)))
	default:
		b.WriteString(dim.Render(fmt.Sprintf("\nelapsed %s, q to cancel\n", elapsed)))
	}
	return b.String()
}

func formatTheta(theta map[string]float64) string {
	parts := make([]string, 0, len(theta))
	for name, v := range theta {
		parts = append(parts, fmt.Sprintf("%s=%.4g", name, v))
	}
	return strings.Join(parts, " ")
}
