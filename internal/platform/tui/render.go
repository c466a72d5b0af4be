package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/neon-flip/internal/core"
)

// Neon palette
var (
	neonCyan    = lipgloss.Color("#00F0FF")
	neonMagenta = lipgloss.Color("#FF00E5")
	neonPink    = lipgloss.Color("#FF2A6D")
	neonPurple  = lipgloss.Color("#7B2CBF")
	neonYellow  = lipgloss.Color("#F9F871")
	neonGreen   = lipgloss.Color("#39FF14")
	neonRed     = lipgloss.Color("#FF3131")
	dimGray     = lipgloss.Color("241")
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(neonCyan).Bold(true),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(neonMagenta),
	core.ColorPink:    lipgloss.NewStyle().Foreground(neonPink),
	core.ColorPurple:  lipgloss.NewStyle().Foreground(neonPurple),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(neonYellow).Bold(true),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(neonGreen).Bold(true),
	core.ColorRed:     lipgloss.NewStyle().Foreground(neonRed).Bold(true),
	core.ColorGray:    lipgloss.NewStyle().Foreground(dimGray),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(neonCyan).MarginBottom(1)
	helpStyle  = lipgloss.NewStyle().Foreground(dimGray)
	errStyle   = lipgloss.NewStyle().Foreground(neonRed)
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[start]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers a (possibly styled) block horizontally within width.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
