// Package tui provides the interactive Bubble Tea dashboard for kina.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kina/internal/assistant"
	"kina/internal/chat"
	"kina/internal/config"
	"kina/internal/dataset"
	"kina/internal/hierarchy"
	"kina/internal/model"
	"kina/internal/tui/components"
	"kina/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the dataset finishes loading.
type DataLoadedMsg struct {
	Store    *dataset.Store
	Err      error
	LoadTime time.Duration
}

// ChatReplyMsg is sent when an assistant turn completes.
type ChatReplyMsg struct {
	Reply model.ChatMessage
	Err   error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	store    *dataset.Store
	resolver *hierarchy.Resolver
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Active budget year for single-year views
	year model.Year

	// Chat
	session  *chat.Session
	chatBusy bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	explorer explorerState
	mapTab   mapState
	compare  compareState
	chatTab  chatState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner spinner.Model
	loadSub chan tea.Msg

	// Optional dataset override (json or sqlite path)
	dataPath string
}

const (
	tabOverview = iota
	tabExplorer
	tabMap
	tabCompare
	tabChat
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error.
// The TUI can always start even if the config file is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(dataPath string, year model.Year) App {
	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	if !year.Valid() {
		if y := model.Year(cfg.General.DefaultYear); y.Valid() {
			year = y
		} else {
			year = model.Year2026
		}
	}
	if dataPath == "" {
		dataPath = cfg.General.DataPath
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		year:      year,
		dataPath:  dataPath,
		needSetup: !config.Exists(),
		spinner:   sp,
		explorer:  newExplorerState(),
		chatTab:   newChatState(),
		loadSub:   make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dataPath, a.loadSub),
		a.spinner.Tick,
	)
}

// recompute rebuilds everything derived from the loaded record set.
func (a *App) recompute() {
	if a.store == nil {
		return
	}
	a.resolver = hierarchy.NewResolver(a.store.Records())

	// Rebuild the assistant session: the system prompt is composed
	// from the loaded records, so a new dataset means a new session.
	cfg := loadConfigOrDefault()
	a.session = nil
	if key := config.GetAPIKey(cfg); key != "" {
		var opts []assistant.Option
		if cfg.Assistant.BaseURL != "" {
			opts = append(opts, assistant.WithBaseURL(cfg.Assistant.BaseURL))
		}
		if cfg.Assistant.Model != "" {
			opts = append(opts, assistant.WithModel(cfg.Assistant.Model))
		}
		if client := assistant.NewClient(key, a.store.Records(), opts...); client != nil {
			a.session = chat.NewSession(client)
		}
	}

	a.explorer.clampCursor(len(a.explorerRows()))
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabExplorer && !a.explorer.searching {
				a.explorer.moveCursor(-1, len(a.explorerRows()))
			}
			if a.activeTab == tabMap {
				a.mapTab.handleKey("up", a.mapRowCount())
			}
			if a.activeTab == tabChat {
				a.chatTab.scroll--
				if a.chatTab.scroll < 0 {
					a.chatTab.scroll = 0
				}
			}
			return a, nil

		case tea.MouseButtonWheelDown:
			if a.activeTab == tabExplorer && !a.explorer.searching {
				a.explorer.moveCursor(1, len(a.explorerRows()))
			}
			if a.activeTab == tabMap {
				a.mapTab.handleKey("down", a.mapRowCount())
			}
			if a.activeTab == tabChat {
				a.chatTab.scroll++
			}
			return a, nil

		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			// Retry after a failed load
			if a.loadErr != nil && key == "r" {
				a.loadErr = nil
				return a, tea.Batch(loadDataCmd(a.dataPath, a.loadSub), a.spinner.Tick)
			}
			if a.loadErr != nil && key == "q" {
				return a, tea.Quit
			}
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Text-entry modes intercept keys before global bindings
		if a.activeTab == tabExplorer && a.explorer.searching {
			return a.updateExplorerSearch(msg)
		}
		if a.activeTab == tabChat && a.chatTab.composing {
			return a.updateChatInput(msg)
		}
		if a.activeTab == tabSettings && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Year switching applies everywhere
		switch key {
		case "1":
			a.year = model.Year2024
			return a, nil
		case "2":
			a.year = model.Year2025
			return a, nil
		case "3":
			a.year = model.Year2026
			return a, nil
		}

		if a.activeTab == tabExplorer {
			if handled, next, cmd := a.updateExplorerKeys(key); handled {
				return next, cmd
			}
		}
		if a.activeTab == tabMap {
			if handled := a.mapTab.handleKey(key, a.mapRowCount()); handled {
				return a, nil
			}
		}
		if a.activeTab == tabCompare {
			if handled := a.compare.handleKey(key, a.compareRowCount()); handled {
				return a, nil
			}
		}
		if a.activeTab == tabChat {
			if key == "i" || key == "enter" {
				a.chatTab.composing = true
				a.chatTab.input.Focus()
				return a, a.chatTab.input.Cursor.BlinkCmd()
			}
			switch key {
			case "j", "down":
				a.chatTab.scroll++
				return a, nil
			case "k", "up":
				a.chatTab.scroll--
				if a.chatTab.scroll < 0 {
					a.chatTab.scroll = 0
				}
				return a, nil
			}
		}
		if a.activeTab == tabSettings {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		if key == "q" {
			return a, tea.Quit
		}

		// Tab navigation: shortcut letters come from the tab bar itself
		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}
		switch key {
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = msg.Err == nil
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		if msg.Err != nil {
			return a, nil
		}
		a.store = msg.Store
		a.recompute()

		if a.needSetup {
			a.setupForm = newSetupForm(a.store.Len(), &a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case ChatReplyMsg:
		a.chatBusy = false
		a.chatTab.scroll = 0 // snap to the newest message
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.chatBusy {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.recompute()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// explorerRows is the display projection for the explorer tab.
func (a App) explorerRows() []model.BudgetRecord {
	if a.store == nil {
		return nil
	}
	return a.explorer.state.Rows(a.store.Records(), a.resolver)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.loadErr != nil {
		return a.viewLoadError()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  kina needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ kina"))
	b.WriteString(subtitleStyle.Render(" · PNG National Budget 2026"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Loading budget data..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoadError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface).
		Bold(true)

	bodyStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Budget data unavailable"))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render(truncStr(a.loadErr.Error(), 70)))
	b.WriteString("\n\n")
	b.WriteString(bodyStyle.Render("[r] retry   [q] quit"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o e m c h x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"1 2 3", "Switch year (2024 / 2025 / 2026)"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Explorer"))
	b.WriteString("\n")
	explorerBindings := []struct{ key, desc string }{
		{"/", "Search records"},
		{"f", "Cycle category filter"},
		{"n a 4 5 6", "Sort by name / category / year column"},
		{"Enter", "Drill into children"},
		{"Esc", "Back out of drill-down"},
		{"0", "Reset filters"},
	}
	for _, bind := range explorerBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Chat"))
	b.WriteString("\n")
	chatBindings := []struct{ key, desc string }{
		{"i / Enter", "Compose a question"},
		{"Esc", "Cancel composing"},
	}
	for _, bind := range chatBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-12s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// Header: tab bar + year pill
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	yearStr := pillStyle.Render(" FY ") + pillAccentStyle.Render(fmt.Sprintf("%d", int(a.year)))
	if a.explorer.state.Drilled() != "" {
		if parent, ok := a.store.FindByID(a.explorer.state.Drilled()); ok {
			yearStr += pillStyle.Render(" │ ") + pillAccentStyle.Render(parent.Name)
		}
	}
	yearStr += pillStyle.Render(" ")

	headerRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		headerRowStyle.Render(yearStr)

	statusBar := components.RenderStatusBar(w, a.store.Len(), a.session != nil, a.chatBusy)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabExplorer:
		content = a.renderExplorerTab(cw, contentH)
	case tabMap:
		content = a.renderMapTab(cw, contentH)
	case tabCompare:
		content = a.renderCompareTab(cw)
	case tabChat:
		content = a.renderChatTab(cw, contentH)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd loads the dataset in a background goroutine. Embedded
// data is near-instant but file and sqlite sources are not, and the
// spinner covers both.
func loadDataCmd(dataPath string, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			store, err := openStore(dataPath)
			sub <- DataLoadedMsg{
				Store:    store,
				Err:      err,
				LoadTime: time.Since(start),
			}
		}()

		return <-sub
	}
}

// openStore picks the data source: sqlite for .db paths, a JSON file
// for anything else given, and the embedded dataset by default.
func openStore(dataPath string) (*dataset.Store, error) {
	switch {
	case dataPath == "":
		return dataset.Load()
	case strings.HasSuffix(dataPath, ".db") || strings.HasSuffix(dataPath, ".sqlite"):
		return dataset.OpenSQLite(dataPath)
	default:
		return dataset.LoadFile(dataPath)
	}
}

// sendChatCmd runs one assistant turn in the background.
func sendChatCmd(session *chat.Session, text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := session.Send(context.Background(), text)
		return ChatReplyMsg{Reply: reply, Err: err}
	}
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space in the tab bar
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Two-column separator between tabs.
		if i < len(components.Tabs)-1 {
			pos += 2
		}
	}
	return -1
}
