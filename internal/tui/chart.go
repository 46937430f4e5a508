package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/couchcryptid/brewery-dashboard/internal/domain"
)

// renderBars draws a horizontal bar per bucket, scaled so the largest
// bucket fills width cells.
func renderBars(d domain.Distribution, width int) string {
	if len(d) == 0 {
		return ""
	}
	chart := domain.BuildChart("By Type", d)

	labelWidth := 0
	peak := 0
	for i, l := range chart.Labels {
		labelWidth = max(labelWidth, len(l))
		peak = max(peak, chart.Values[i])
	}

	lines := make([]string, 0, len(chart.Labels)+1)
	lines = append(lines, LabelStyle.Render(chart.Title))
	for i, l := range chart.Labels {
		n := barLength(chart.Values[i], peak, width)
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Colors[i])).Render(strings.Repeat("█", n))
		lines = append(lines, fmt.Sprintf("%-*s %s %d", labelWidth, l, bar, chart.Values[i]))
	}
	return strings.Join(lines, "\n")
}

// barLength keeps every non-zero bucket visible.
func barLength(v, peak, width int) int {
	if v <= 0 || peak <= 0 {
		return 0
	}
	return max(1, v*width/peak)
}
