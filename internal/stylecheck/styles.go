package stylecheck

import "github.com/charmbracelet/lipgloss"

// Terminal styles for diagnostic output.
// Lipgloss automatically degrades colors based on terminal capabilities.
var (
	// StyleRed is used for carets and the ✖ marker.
	StyleRed = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	// StyleDim is used for source excerpts and rule names.
	StyleDim = lipgloss.NewStyle().Faint(true)
	// StyleUnderline is used for the component label heading each block.
	StyleUnderline = lipgloss.NewStyle().Underline(true)
)

// RenderStyle applies a lipgloss style to text when colors are enabled.
// When useColors is false, the text is returned unmodified.
func RenderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors || text == "" {
		return text
	}
	return style.Render(text)
}
