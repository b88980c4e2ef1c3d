package tui

import (
	"fmt"
	"strings"

	"kina/internal/cli"
	"kina/internal/metrics"
	"kina/internal/model"
	"kina/internal/tui/components"
	"kina/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// compareCycle is the order the f key walks through compare groups.
var compareCycle = []model.Category{
	model.CategorySector,
	model.CategoryProvince,
	model.CategoryRevenue,
}

// compareState tracks the compare tab state.
type compareState struct {
	cursor   int
	groupIdx int // index into compareCycle
}

func (c *compareState) handleKey(key string, rows int) bool {
	switch key {
	case "j", "down":
		if c.cursor < rows-1 {
			c.cursor++
		}
		return true
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
		}
		return true
	case "f":
		c.groupIdx = (c.groupIdx + 1) % len(compareCycle)
		c.cursor = 0
		return true
	case "g":
		c.cursor = 0
		return true
	}
	return false
}

func (a App) compareGroup() []model.BudgetRecord {
	cat := compareCycle[a.compare.groupIdx]
	return metrics.TopN(rootsOf(a.store.Records(), cat), model.Year2026, 12)
}

func (a App) compareRowCount() int {
	return len(a.compareGroup())
}

// renderCompareTab shows allocations across all three budget years
// side by side, with growth and a trend sparkline per record.
func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	rows := a.compareGroup()
	cat := compareCycle[a.compare.groupIdx]

	var b strings.Builder

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	header := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	upStyle := lipgloss.NewStyle().Foreground(t.Green)
	downStyle := lipgloss.NewStyle().Foreground(t.Red)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green)

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s totals, press f to switch group", cat)))
	b.WriteString("\n")

	nameW := cw - 66
	if nameW < 20 {
		nameW = 20
	}
	b.WriteString(header.Render(fmt.Sprintf("    %-*s %12s %12s %12s %9s  %s",
		nameW, "Name", "2024", "2025", "2026", "Δ 25→26", "Trend")))
	b.WriteString("\n")

	for i, r := range rows {
		marker := "  "
		rowName := nameStyle
		if i == a.compare.cursor {
			marker = selStyle.Render("▸ ")
			rowName = selStyle
		}

		growthStr := dimStyle.Render(fmt.Sprintf("%9s", "n/a"))
		if pct, ok := metrics.GrowthPercent(r.Allocation2026, r.Allocation2025); ok {
			s := fmt.Sprintf("%9s", cli.FormatGrowth(pct, true))
			if pct >= 0 {
				growthStr = upStyle.Render(s)
			} else {
				growthStr = downStyle.Render(s)
			}
		}

		series := metrics.YearSeries(r)
		vals := make([]float64, len(series))
		for j, v := range series {
			vals[j] = float64(v)
		}

		fmt.Fprintf(&b, "  %s%s %s %s %s %s  %s\n",
			marker,
			rowName.Render(fmt.Sprintf("%-*s", nameW, truncStr(r.Name, nameW))),
			dimStyle.Render(fmt.Sprintf("%12s", cli.FormatKina(r.Allocation2024))),
			dimStyle.Render(fmt.Sprintf("%12s", cli.FormatKina(r.Allocation2025))),
			amountStyle.Render(fmt.Sprintf("%12s", cli.FormatKina(r.Allocation2026))),
			growthStr,
			components.Sparkline(vals, t.Blue))
	}

	// Detail card for the highlighted record
	if a.compare.cursor < len(rows) {
		r := rows[a.compare.cursor]
		var detail strings.Builder
		if r.Description != "" {
			detail.WriteString(truncStr(r.Description, components.CardInnerWidth(cw)))
			detail.WriteString("\n")
		}
		total := metrics.CategoryTotal(a.store.Records(), cat, a.year)
		share := metrics.ShareOfTotal(r.Allocation(a.year), total)
		fmt.Fprintf(&detail, "Share of %s total (%d): %s",
			cat, int(a.year), cli.FormatPercent(share))
		if subtotal, err := a.resolver.SubtreeTotal(r.ID, a.year); err == nil && subtotal > 0 {
			fmt.Fprintf(&detail, "   Funded lines below: %s", cli.FormatKina(subtotal))
		}
		b.WriteString("\n")
		b.WriteString(components.ContentCard(r.Name, detail.String(), cw))
	}

	return b.String()
}
