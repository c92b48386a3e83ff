package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// progressBar renders "label [████░░░░] n/total" within width cells.
func progressBar(label string, done, total, width int) string {
	head := unselectedStyle.Render(label) + "  "
	tail := hintStyle.Render(fmt.Sprintf("  %d/%d", done, total))

	barWidth := width - lipgloss.Width(head) - lipgloss.Width(tail)
	barWidth = max(barWidth, 4)

	filled := 0
	if total > 0 {
		filled = barWidth * done / total
	}
	filled = min(max(filled, 0), barWidth)

	bar := lipgloss.NewStyle().Background(colorSecondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(colorBorder).Render(strings.Repeat(" ", barWidth-filled))
	return head + bar + tail
}
