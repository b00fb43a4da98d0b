package qgrover

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	XLabel = "Measurement Outcomes"
	YLabel = "Frequency"
)

type histogramOptions struct {
	barWidth int
	outcomes []string
}

// HistogramOption adjusts Histogram rendering.
type HistogramOption func(*histogramOptions)

// WithBarWidth sets the number of cells the most frequent outcome spans.
func WithBarWidth(width int) HistogramOption {
	return func(o *histogramOptions) {
		if width > 0 {
			o.barWidth = width
		}
	}
}

// WithAllOutcomes lists every bitstring of the given width, including ones
// that were never observed.
func WithAllOutcomes(width int) HistogramOption {
	return func(o *histogramOptions) {
		o.outcomes = make([]string, 0, 1<<width)
		for i := 0; i < 1<<width; i++ {
			o.outcomes = append(o.outcomes, fmt.Sprintf("%0*b", width, i))
		}
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Faint(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	markStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// HistogramTitle names the run the way the chart heading does.
func HistogramTitle(shots int) string {
	return fmt.Sprintf("Measurements for %d iterations of %d-Qubit Grover's Algorithm", shots, Qubits)
}

/*
Histogram renders a horizontal bar chart of how often each bitstring appears
in memory, one row per outcome, with the frequency printed after each bar.
The Target row is highlighted.
*/
func Histogram(memory []string, opts ...HistogramOption) string {
	o := &histogramOptions{barWidth: 40}
	for _, opt := range opts {
		opt(o)
	}

	counts := Tally(memory)
	outcomes := o.outcomes
	if outcomes == nil {
		outcomes = counts.Outcomes()
	}

	peak := 0
	for _, outcome := range outcomes {
		peak = max(peak, counts.Frequency(outcome))
	}

	rows := make([]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		n := counts.Frequency(outcome)
		cells := 0
		if peak > 0 {
			cells = n * o.barWidth / peak
		}

		style := barStyle
		if outcome == Target {
			style = markStyle
		}

		bar := style.Render(strings.Repeat("█", cells))
		rows = append(rows, fmt.Sprintf("%s │%s %d", outcome, bar, n))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(HistogramTitle(counts.Total)),
		labelStyle.Render(YLabel),
		strings.Join(rows, "\n"),
		labelStyle.Render(XLabel),
	)
}
