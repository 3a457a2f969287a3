package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))

	PassStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82"))
	FailStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	SkipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

	StageHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("238"))
)

// Verdict renders PASS green and FAIL red.
func Verdict(s string) string {
	if s == "PASS" {
		return PassStyle.Render(s)
	}
	return FailStyle.Render(s)
}

// ProgressBar renders a fixed-width bar for completion in [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case fraction >= 1:
		return green.Render(bar)
	case fraction > 0.5:
		return cyan.Render(bar)
	default:
		return yellow.Render(bar)
	}
}

// Sparkline renders values as a row of block characters, sampled down to
// width columns.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return dim.Render(strings.Repeat("─", width))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		c := string(chars[idx])
		switch {
		case norm > 0.7:
			b.WriteString(green.Render(c))
		case norm > 0.3:
			b.WriteString(yellow.Render(c))
		default:
			b.WriteString(red.Render(c))
		}
	}
	return b.String()
}
