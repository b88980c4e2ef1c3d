package tui

import (
	"fmt"
	"strings"

	"kina/internal/cli"
	"kina/internal/metrics"
	"kina/internal/model"
	"kina/internal/tui/theme"
	"kina/internal/view"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// filterCycle is the order the f key walks through category filters.
// Empty means no filter.
var filterCycle = []model.Category{
	"",
	model.CategorySector,
	model.CategoryProvince,
	model.CategoryAgency,
	model.CategoryDistrict,
	model.CategoryRevenue,
}

// explorerState tracks the explorer tab state.
type explorerState struct {
	state  *view.State
	cursor int
	offset int

	searching   bool
	searchInput textinput.Model

	filterIdx int // index into filterCycle
}

func newExplorerState() explorerState {
	return explorerState{state: view.NewState()}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "name or description..."
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (e *explorerState) clampCursor(n int) {
	if e.cursor >= n {
		e.cursor = n - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
}

func (e *explorerState) moveCursor(delta, n int) {
	e.cursor += delta
	e.clampCursor(n)
}

// cycleFilter advances the category filter to the next entry.
func (e *explorerState) cycleFilter() {
	e.filterIdx = (e.filterIdx + 1) % len(filterCycle)
	for c := range e.state.SelectedCategories {
		delete(e.state.SelectedCategories, c)
	}
	if cat := filterCycle[e.filterIdx]; cat != "" {
		e.state.ToggleCategory(cat)
	}
	e.cursor = 0
	e.offset = 0
}

// updateExplorerKeys handles explorer tab keys. Returns handled=false
// for keys that should fall through to the global bindings.
func (a App) updateExplorerKeys(key string) (bool, tea.Model, tea.Cmd) {
	rows := a.explorerRows()

	switch key {
	case "/":
		if a.explorer.state.Drilled() != "" {
			// Search and drill-down are mutually exclusive scopes.
			return true, a, nil
		}
		a.explorer.searching = true
		a.explorer.searchInput = newSearchInput()
		a.explorer.searchInput.SetValue(a.explorer.state.SearchTerm)
		a.explorer.searchInput.Focus()
		return true, a, a.explorer.searchInput.Cursor.BlinkCmd()

	case "f":
		a.explorer.cycleFilter()
		return true, a, nil

	case "n":
		a.explorer.state.ToggleSort(view.SortByName)
		return true, a, nil
	case "a":
		a.explorer.state.ToggleSort(view.SortByCategory)
		return true, a, nil
	case "4":
		a.explorer.state.ToggleSort(view.SortByAlloc2024)
		return true, a, nil
	case "5":
		a.explorer.state.ToggleSort(view.SortByAlloc2025)
		return true, a, nil
	case "6":
		a.explorer.state.ToggleSort(view.SortByAlloc2026)
		return true, a, nil

	case "enter":
		if a.explorer.cursor < len(rows) {
			target := rows[a.explorer.cursor]
			if a.resolver.HasChildren(target.ID) && a.explorer.state.DrillInto(target.ID) {
				a.explorer.cursor = 0
				a.explorer.offset = 0
			}
		}
		return true, a, nil

	case "esc":
		if a.explorer.state.Drilled() != "" {
			a.explorer.state.DrillUp()
			a.explorer.cursor = 0
			a.explorer.offset = 0
			return true, a, nil
		}
		if a.explorer.state.SearchTerm != "" {
			a.explorer.state.SearchTerm = ""
			a.explorer.cursor = 0
			a.explorer.offset = 0
			return true, a, nil
		}
		return true, a, nil

	case "0":
		a.explorer.state.Reset()
		a.explorer.filterIdx = 0
		a.explorer.cursor = 0
		a.explorer.offset = 0
		return true, a, nil

	case "j", "down":
		a.explorer.moveCursor(1, len(rows))
		return true, a, nil
	case "k", "up":
		a.explorer.moveCursor(-1, len(rows))
		return true, a, nil
	case "g":
		a.explorer.cursor = 0
		a.explorer.offset = 0
		return true, a, nil
	case "G":
		a.explorer.cursor = len(rows) - 1
		if a.explorer.cursor < 0 {
			a.explorer.cursor = 0
		}
		return true, a, nil
	}

	return false, a, nil
}

// updateExplorerSearch handles key events while in search mode.
func (a App) updateExplorerSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.explorer.state.SearchTerm = strings.TrimSpace(a.explorer.searchInput.Value())
		a.explorer.searching = false
		a.explorer.cursor = 0
		a.explorer.offset = 0
		return a, nil

	case "esc":
		a.explorer.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.explorer.searchInput, cmd = a.explorer.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderExplorerTab(cw, contentH int) string {
	t := theme.Active
	rows := a.explorerRows()

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	catStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green)
	growthUpStyle := lipgloss.NewStyle().Foreground(t.Green)
	growthDownStyle := lipgloss.NewStyle().Foreground(t.Red)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	var b strings.Builder

	// Scope line: search box, active search, filter, drill target
	if a.explorer.searching {
		b.WriteString("  /")
		b.WriteString(a.explorer.searchInput.View())
		b.WriteString("\n")
	} else {
		var scope []string
		if drilled := a.explorer.state.Drilled(); drilled != "" {
			if parent, ok := a.store.FindByID(drilled); ok {
				scope = append(scope, "within "+parent.Name)
			}
		}
		if a.explorer.state.SearchTerm != "" {
			scope = append(scope, fmt.Sprintf("search %q", a.explorer.state.SearchTerm))
		}
		if cat := filterCycle[a.explorer.filterIdx]; cat != "" {
			scope = append(scope, string(cat)+" only")
		}
		if len(scope) == 0 {
			scope = append(scope, "all records")
		}
		b.WriteString(dimStyle.Render("  " + strings.Join(scope, " │ ")))
		b.WriteString("\n")
	}

	// Column header
	nameW := cw - 52
	if nameW < 24 {
		nameW = 24
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("    %-*s %-16s %12s %10s %6s",
		nameW, "Name", "Category", fmt.Sprintf("%d", int(a.year)), "Growth", "Sub")))
	b.WriteString("\n")

	// Visible window
	visible := contentH - 4
	if visible < 1 {
		visible = 1
	}
	if a.explorer.cursor < a.explorer.offset {
		a.explorer.offset = a.explorer.cursor
	}
	if a.explorer.cursor >= a.explorer.offset+visible {
		a.explorer.offset = a.explorer.cursor - visible + 1
	}
	end := a.explorer.offset + visible
	if end > len(rows) {
		end = len(rows)
	}

	prevYear := a.year.Prev()
	hasPrev := prevYear != 0
	for i := a.explorer.offset; i < end; i++ {
		r := rows[i]

		marker := "  "
		rowName := nameStyle
		if i == a.explorer.cursor {
			marker = selStyle.Render("▸ ")
			rowName = selStyle
		}

		growthStr := dimStyle.Render(fmt.Sprintf("%10s", "n/a"))
		if hasPrev {
			if pct, ok := metrics.GrowthPercent(r.Allocation(a.year), r.Allocation(prevYear)); ok {
				s := fmt.Sprintf("%10s", cli.FormatGrowth(pct, true))
				if pct >= 0 {
					growthStr = growthUpStyle.Render(s)
				} else {
					growthStr = growthDownStyle.Render(s)
				}
			}
		}

		childMark := ""
		if n := len(a.resolver.ChildrenOf(r.ID)); n > 0 {
			childMark = fmt.Sprintf("%d ▸", n)
		}

		fmt.Fprintf(&b, "  %s%s %s %s %s %s\n",
			marker,
			rowName.Render(fmt.Sprintf("%-*s", nameW, truncStr(r.Name, nameW))),
			catStyle.Render(fmt.Sprintf("%-16s", displayKind(r))),
			amountStyle.Render(fmt.Sprintf("%12s", cli.FormatKina(r.Allocation(a.year)))),
			growthStr,
			dimStyle.Render(fmt.Sprintf("%6s", childMark)))
	}

	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("\n  No records match the current scope. Press 0 to reset."))
	}

	return b.String()
}

// displayKind renders a record's category for the UI. Agencies nested
// under a province are flagship projects in the budget papers.
func displayKind(r model.BudgetRecord) string {
	if r.Category == model.CategoryAgency && !r.IsRoot() {
		return "Flagship Project"
	}
	return string(r.Category)
}
