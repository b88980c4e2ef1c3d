package tui

import (
	"fmt"

	"kina/internal/config"
	"kina/internal/model"
	"kina/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues receives the first-run form answers.
type setupValues struct {
	apiKey    string
	themeName string
	year      int
}

// newSetupForm builds the first-run setup wizard.
func newSetupForm(recordCount int, vals *setupValues) *huh.Form {
	vals.themeName = theme.Active.Name
	vals.year = int(model.Year2026)

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		themeOpts[i] = huh.NewOption(th.Name, th.Name)
	}

	yearOpts := make([]huh.Option[int], len(model.Years))
	for i, y := range model.Years {
		yearOpts[i] = huh.NewOption(fmt.Sprintf("%d", int(y)), int(y))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to kina").
				Description(fmt.Sprintf("Loaded %d budget records covering 2024-2026.\nA couple of questions before the dashboard opens.", recordCount)),

			huh.NewInput().
				Title("Gemini API key").
				Description("Powers the Budget Bot chat tab. Leave blank to skip; set GEMINI_API_KEY later.").
				EchoMode(huh.EchoModePassword).
				Value(&vals.apiKey),

			huh.NewSelect[int]().
				Title("Default budget year").
				Options(yearOpts...).
				Value(&vals.year),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.themeName),
		),
	)
}

// saveSetupConfig persists the wizard answers and applies them to the
// running app.
func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()

	if a.setupVals.apiKey != "" {
		cfg.Assistant.APIKey = a.setupVals.apiKey
	}
	if model.Year(a.setupVals.year).Valid() {
		cfg.General.DefaultYear = a.setupVals.year
		a.year = model.Year(a.setupVals.year)
	}
	cfg.Appearance.Theme = theme.ByName(a.setupVals.themeName).Name
	theme.SetActive(cfg.Appearance.Theme)

	return config.Save(cfg)
}
