package components

import (
	"fmt"

	"github.com/liralabs/lirabot/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with the active backend
// on the left and the running session cost on the right.
func RenderStatusBar(width int, backend, sessionCost string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := fmt.Sprintf(" %s  [tab]usage  [esc]quit", backend)
	right := ""
	if sessionCost != "" {
		right = fmt.Sprintf("Session: %s ", sessionCost)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
