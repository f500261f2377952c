package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleValue = lipgloss.NewStyle().Bold(true)
)

// Summary renders aligned label/value rows shown once resolution succeeds.
// Rows render in the order given.
func Summary(title string, rows [][2]string) string {
	width := 0
	for _, r := range rows {
		if len(r[0]) > width {
			width = len(r[0])
		}
	}
	var b strings.Builder
	b.WriteString(styleTitle.Render(title))
	for _, r := range rows {
		b.WriteString("\n  ")
		b.WriteString(styleLabel.Render(r[0] + strings.Repeat(" ", width-len(r[0])) + ":"))
		b.WriteString(" ")
		b.WriteString(styleValue.Render(r[1]))
	}
	return b.String()
}
