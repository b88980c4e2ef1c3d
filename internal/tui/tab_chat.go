package tui

import (
	"strings"

	"kina/internal/model"
	"kina/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// chatState tracks the chat tab state.
type chatState struct {
	composing bool
	input     textinput.Model
	scroll    int // lines scrolled up from the bottom
}

func newChatState() chatState {
	ti := textinput.New()
	ti.Placeholder = "Ask about the 2026 budget..."
	ti.CharLimit = 500
	ti.Width = 60
	return chatState{input: ti}
}

// updateChatInput handles key events while composing a message.
func (a App) updateChatInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(a.chatTab.input.Value())
		if text == "" {
			a.chatTab.composing = false
			return a, nil
		}
		if a.session == nil || a.chatBusy {
			return a, nil
		}
		a.chatTab.input.SetValue("")
		a.chatTab.composing = false
		a.chatTab.scroll = 0
		a.chatBusy = true
		return a, tea.Batch(sendChatCmd(a.session, text), a.spinner.Tick)

	case "esc":
		a.chatTab.composing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.chatTab.input, cmd = a.chatTab.input.Update(msg)
	return a, cmd
}

func (a App) renderChatTab(cw, contentH int) string {
	t := theme.Active

	userStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	if a.session == nil {
		var b strings.Builder
		b.WriteString("\n")
		b.WriteString(textStyle.Render("  The Budget Bot needs a Gemini API key."))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Set GEMINI_API_KEY, add api_key under [assistant] in the config"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  file, or enter it on the Settings tab."))
		return b.String()
	}

	wrapW := cw - 6
	if wrapW < 30 {
		wrapW = 30
	}

	// Build the full transcript as lines, then window by scroll offset.
	var lines []string
	for _, m := range a.session.Messages() {
		label := userStyle.Render("You")
		if m.Role == model.RoleAssistant {
			label = botStyle.Render("Budget Bot")
		}
		lines = append(lines, "  "+label+dimStyle.Render("  "+m.Timestamp.Format("15:04")))
		for _, l := range wrapText(m.Text, wrapW) {
			lines = append(lines, "  "+textStyle.Render(l))
		}
		lines = append(lines, "")
	}
	if len(lines) == 0 {
		lines = append(lines,
			"",
			dimStyle.Render("  Ask about allocations, growth, deficits, or per-capita spending."),
			dimStyle.Render("  Press i to start typing."),
		)
	}
	if a.chatBusy {
		lines = append(lines, "  "+a.spinner.View()+dimStyle.Render(" thinking..."))
	}

	// Reserve rows for the input line
	viewH := contentH - 2
	if viewH < 3 {
		viewH = 3
	}

	maxScroll := len(lines) - viewH
	if maxScroll < 0 {
		maxScroll = 0
	}
	scroll := a.chatTab.scroll
	if scroll > maxScroll {
		scroll = maxScroll
	}
	start := len(lines) - viewH - scroll
	if start < 0 {
		start = 0
	}
	end := start + viewH
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines[start:end], "\n"))
	b.WriteString("\n")

	if a.chatTab.composing {
		b.WriteString("  " + a.chatTab.input.View())
	} else {
		b.WriteString(dimStyle.Render("  [i] compose  [j/k] scroll"))
	}

	return b.String()
}

// wrapText splits s into lines no wider than w, breaking on spaces.
func wrapText(s string, w int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if lipgloss.Width(line)+1+lipgloss.Width(word) > w {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}
