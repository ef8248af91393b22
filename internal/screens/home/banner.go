package home

import (
	"charm.land/lipgloss/v2"

	"github.com/ymatsui/kijun/internal/ui/theme"
)

// renderTitle returns the home title with its tagline.
func renderTitle(width int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render("k i j u n")

	tagline := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(width).
		Align(lipgloss.Center).
		Render("基準をマスターしよう")

	return title + "\n" + tagline
}
