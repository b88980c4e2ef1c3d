package tui

import (
	"fmt"
	"strconv"
	"strings"

	"kina/internal/config"
	"kina/internal/model"
	"kina/internal/tui/components"
	"kina/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldAPIKey = iota
	settingsFieldModel
	settingsFieldTheme
	settingsFieldYear
	settingsFieldDataPath
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldAPIKey:
		ti.Placeholder = "Gemini API key"
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
		if existing := config.GetAPIKey(cfg); existing != "" {
			ti.SetValue(existing)
		}
	case settingsFieldModel:
		ti.Placeholder = "gemini-2.5-flash"
		ti.SetValue(cfg.Assistant.Model)
	case settingsFieldTheme:
		ti.Placeholder = "flexoki-dark, catppuccin-mocha, tokyo-night, terminal"
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldYear:
		ti.Placeholder = "2024, 2025, or 2026"
		ti.SetValue(strconv.Itoa(cfg.General.DefaultYear))
	case settingsFieldDataPath:
		ti.Placeholder = "path to .json or .db (empty for built-in data)"
		ti.SetValue(cfg.General.DataPath)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		// An API key or data path change affects the live session.
		a.recompute()
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldAPIKey:
		cfg.Assistant.APIKey = val
	case settingsFieldModel:
		cfg.Assistant.Model = val
	case settingsFieldTheme:
		cfg.Appearance.Theme = theme.ByName(val).Name
		theme.SetActive(cfg.Appearance.Theme)
	case settingsFieldYear:
		if n, err := strconv.Atoi(val); err == nil && model.Year(n).Valid() {
			cfg.General.DefaultYear = n
			a.year = model.Year(n)
		}
	case settingsFieldDataPath:
		cfg.General.DataPath = val
	}

	a.settings.saveErr = config.Save(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	okStyle := lipgloss.NewStyle().Foreground(t.Green)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)

	masked := "not set"
	if config.GetAPIKey(cfg) != "" {
		masked = "••••••••"
	}
	modelName := cfg.Assistant.Model
	if modelName == "" {
		modelName = "gemini-2.5-flash (default)"
	}
	dataPath := cfg.General.DataPath
	if dataPath == "" {
		dataPath = "built-in 2026 budget dataset"
	}

	fields := []struct{ label, value string }{
		{"Gemini API key", masked},
		{"Assistant model", modelName},
		{"Theme", cfg.Appearance.Theme},
		{"Default year", strconv.Itoa(cfg.General.DefaultYear)},
		{"Data source", dataPath},
	}

	var body strings.Builder
	for i, f := range fields {
		marker := "  "
		lbl := labelStyle
		if i == a.settings.cursor {
			marker = selStyle.Render("▸ ")
			lbl = selStyle
		}

		if a.settings.editing && i == a.settings.cursor {
			fmt.Fprintf(&body, "%s%s  %s\n", marker, lbl.Render(fmt.Sprintf("%-16s", f.label)), a.settings.input.View())
			continue
		}
		fmt.Fprintf(&body, "%s%s  %s\n", marker, lbl.Render(fmt.Sprintf("%-16s", f.label)), valueStyle.Render(f.value))
	}

	body.WriteString("\n")
	switch {
	case a.settings.saveErr != nil:
		body.WriteString(errStyle.Render("  Save failed: " + a.settings.saveErr.Error()))
	case a.settings.saved:
		body.WriteString(okStyle.Render("  Saved to " + config.ConfigPath()))
	default:
		body.WriteString(dimStyle.Render("  j/k to select, Enter to edit, Esc to cancel"))
	}

	return components.ContentCard("Settings", body.String(), cw)
}
