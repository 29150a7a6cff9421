// Package cli is the crm command line front end: cobra commands over the
// workspace plus lipgloss rendering of clients, catalogs and aggregates.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
)

// Swatch renders a colored dot followed by label.
func Swatch(color, label string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●") + " " + label
}

// Badge renders label on a colored background.
func Badge(color, label string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color("#FFFFFF")).
		Padding(0, 1).
		Render(label)
}

// ProgressBar renders a bar of width cells filled to percent (0..100).
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 30
	}
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(width, filled))
	bar := okStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %5.1f%%", bar, percent)
}
