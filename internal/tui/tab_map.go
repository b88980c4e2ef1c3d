package tui

import (
	"fmt"
	"strings"

	"kina/internal/cli"
	"kina/internal/dataset"
	"kina/internal/metrics"
	"kina/internal/tui/components"
	"kina/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Map bounds covering all 22 provinces with a little margin.
const (
	mapLatNorth = -1.5
	mapLatSouth = -11.0
	mapLngWest  = 140.5
	mapLngEast  = 156.0
)

// mapState tracks the selected province in the ranked legend.
type mapState struct {
	cursor int
}

func (m *mapState) handleKey(key string, rows int) bool {
	switch key {
	case "j", "down":
		if m.cursor < rows-1 {
			m.cursor++
		}
		return true
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case "g":
		m.cursor = 0
		return true
	case "G":
		m.cursor = rows - 1
		return true
	}
	return false
}

func (a App) mapRowCount() int {
	return len(metrics.ProvincePerCapitaSeries(a.store.Records(), a.year))
}

// renderMapTab draws provinces as markers on a lat/lng grid, colored
// by per-capita spend for the active year, with a ranked legend and a
// detail card for the selected province.
func (a App) renderMapTab(cw, contentH int) string {
	t := theme.Active
	records := a.store.Records()
	series := metrics.ProvincePerCapitaSeries(records, a.year)

	sel := a.mapTab.cursor
	if sel >= len(series) {
		sel = len(series) - 1
	}
	if sel < 0 {
		sel = 0
	}

	perCapita := make(map[string]float64, len(series))
	hasPC := make(map[string]bool, len(series))
	var maxPC float64
	for _, p := range series {
		perCapita[p.Record.ID] = p.PerCapita
		hasPC[p.Record.ID] = p.Known
		if p.Known && p.PerCapita > maxPC {
			maxPC = p.PerCapita
		}
	}

	colorFor := func(id string) lipgloss.Color {
		if !hasPC[id] || maxPC == 0 {
			return t.TextDim
		}
		switch frac := perCapita[id] / maxPC; {
		case frac >= 0.66:
			return t.Green
		case frac >= 0.33:
			return t.Yellow
		default:
			return t.Red
		}
	}

	// Grid size: leave room for the legend column on wide layouts
	gridW := cw - 6
	legendW := 0
	if !a.isCompactLayout() {
		legendW = 34
		gridW = cw - legendW - 6
	}
	// Reserve rows for the selected-province detail card below the grid.
	const detailH = 8
	gridH := contentH - detailH - 4
	if gridH < 10 {
		gridH = 10
	}
	if gridW < 40 {
		gridW = 40
	}

	type cellMark struct {
		label string
		color lipgloss.Color
	}
	grid := make(map[[2]int]cellMark)

	for _, g := range dataset.ProvinceGeos {
		col := int((g.Lng - mapLngWest) / (mapLngEast - mapLngWest) * float64(gridW-1))
		row := int((g.Lat - mapLatNorth) / (mapLatSouth - mapLatNorth) * float64(gridH-1))
		if col < 0 || col >= gridW || row < 0 || row >= gridH {
			continue
		}
		// Nudge collisions one cell down rather than dropping markers.
		key := [2]int{row, col}
		for {
			if _, taken := grid[key]; !taken {
				break
			}
			key[0]++
			if key[0] >= gridH {
				key[0] = row
				key[1]++
				if key[1] >= gridW {
					break
				}
			}
		}
		grid[key] = cellMark{label: g.Name, color: colorFor(g.ID)}
	}

	dotStyle := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	labelStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var gridB strings.Builder
	for row := 0; row < gridH; row++ {
		line := make([]rune, gridW)
		for i := range line {
			line[i] = ' '
		}
		// Render markers and short labels into this row
		var segs []string
		cursor := 0
		for col := 0; col < gridW; col++ {
			mark, ok := grid[[2]int{row, col}]
			if !ok {
				continue
			}
			label := truncStr(mark.label, 12)
			// Flush spaces before the marker
			if col > cursor {
				segs = append(segs, string(line[cursor:col]))
			}
			segs = append(segs, dotStyle(mark.color).Render("●"), labelStyle.Render(label))
			cursor = col + 1 + lipgloss.Width(label)
			if cursor > gridW {
				cursor = gridW
			}
		}
		if cursor < gridW {
			segs = append(segs, string(line[cursor:gridW]))
		}
		gridB.WriteString("  ")
		gridB.WriteString(strings.Join(segs, ""))
		gridB.WriteString("\n")
	}

	// Legend: ranked per-capita list, scrolled to keep the selection
	// visible and highlighted.
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	var legend string
	if legendW > 0 {
		visible := gridH
		if visible > len(series) {
			visible = len(series)
		}
		start := 0
		if sel >= visible {
			start = sel - visible + 1
		}
		var lb strings.Builder
		for i := start; i < start+visible && i < len(series); i++ {
			p := series[i]
			marker := dotStyle(colorFor(p.Record.ID)).Render("●")
			label := p.Record.Name
			if g, ok := dataset.GeoByID(p.Record.ID); ok {
				label = g.Name
			}
			row := fmt.Sprintf("%2d %-16s %s",
				i+1,
				truncStr(label, 16),
				cli.FormatPerCapita(p.PerCapita, p.Known))
			if i == sel {
				fmt.Fprintf(&lb, "%s %s\n", marker, selStyle.Render("▸ "+row))
			} else {
				fmt.Fprintf(&lb, "%s   %s\n", marker, row)
			}
		}
		legend = components.ContentCard(
			fmt.Sprintf("Per Capita %d", int(a.year)),
			lb.String(),
			legendW,
		)
	}

	title := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true).
		Render(fmt.Sprintf("  Provincial Spend Map %d   ", int(a.year))) +
		dotStyle(t.Green).Render("●") + labelStyle.Render(" high  ") +
		dotStyle(t.Yellow).Render("●") + labelStyle.Render(" mid  ") +
		dotStyle(t.Red).Render("●") + labelStyle.Render(" low  ") +
		dotStyle(t.TextDim).Render("●") + labelStyle.Render(" no census data   ") +
		labelStyle.Render("[j/k] select")

	gridOut := title + "\n\n" + gridB.String()
	if legend != "" {
		gridOut = lipgloss.JoinHorizontal(lipgloss.Top, gridOut, legend)
	}

	if len(series) == 0 {
		return gridOut
	}
	return gridOut + "\n" + a.renderProvinceDetail(series[sel], cw)
}

// renderProvinceDetail shows the selected province's figures and its
// funded lines: districts plus flagship projects.
func (a App) renderProvinceDetail(p metrics.ProvincePerCapita, cw int) string {
	t := theme.Active
	r := p.Record

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	pop := "no census data"
	if r.Population > 0 {
		pop = cli.FormatNumber(r.Population) + " people"
	}
	fmt.Fprintf(&b, "%s   %s   %s per head\n",
		amountStyle.Render(cli.FormatKina(r.Allocation(a.year))),
		dimStyle.Render(pop),
		nameStyle.Render(cli.FormatPerCapita(p.PerCapita, p.Known)))

	children := a.resolver.ChildrenOf(r.ID)
	if len(children) == 0 {
		b.WriteString(dimStyle.Render("No itemized lines below this province."))
		b.WriteString("\n")
	}
	const maxLines = 4
	for i, c := range children {
		if i == maxLines {
			fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("… and %d more", len(children)-maxLines)))
			break
		}
		fmt.Fprintf(&b, "%s %s  %s\n",
			nameStyle.Render(truncStr(c.Name, 36)),
			dimStyle.Render("("+displayKind(c)+")"),
			amountStyle.Render(cli.FormatKina(c.Allocation(a.year))))
	}

	region := ""
	if g, ok := dataset.GeoByID(r.ID); ok {
		region = " · " + string(g.Region)
	}
	return components.ContentCard(r.Name+region, b.String(), cw)
}
