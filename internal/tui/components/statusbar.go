package components

import (
	"fmt"

	"kina/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the
// left, dataset and assistant status on the right.
func RenderStatusBar(width, recordCount int, assistantReady, chatBusy bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"

	assistStatus := "assistant: off"
	if assistantReady {
		assistStatus = "assistant: ready"
	}
	if chatBusy {
		assistStatus = "assistant: thinking…"
	}
	right := fmt.Sprintf("%s │ %d records ", assistStatus, recordCount)

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
