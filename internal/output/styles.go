package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: paths, package names, naming tags.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for added lines and successful summaries.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modified entries.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed entries.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (scope prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleBold styles headings and tree roots.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleAdded styles additions in diffs.
	StyleAdded = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleRemoved styles removals in diffs.
	StyleRemoved = lipgloss.NewStyle().Foreground(ColorRed)

	// StyleModified styles modifications in diffs.
	StyleModified = lipgloss.NewStyle().Foreground(ColorYellow)
)

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatExportSummary renders the one-line summary printed after an export.
func FormatExportSummary(packages, modules, functions int, outDir string) string {
	return FormatCheckmark(fmt.Sprintf("exported %d %s, %d %s, %d %s to %s",
		packages, plural(packages, "package"),
		modules, plural(modules, "module"),
		functions, plural(functions, "function"),
		StyleNoun.Render(outDir)))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
