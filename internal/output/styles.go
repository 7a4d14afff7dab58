package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Use these instead of inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: property names, variable keys, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorYellow is used for warnings.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for errors (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleWarning styles warning markers.
	StyleWarning = lipgloss.NewStyle().Foreground(ColorYellow)

	// StyleError styles error markers.
	StyleError = lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
)

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatNoun renders a noun in the noun style.
func FormatNoun(s string) string {
	return StyleNoun.Render(s)
}
