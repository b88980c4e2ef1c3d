package tui

import (
	"fmt"
	"strings"

	"kina/internal/cli"
	"kina/internal/dataset"
	"kina/internal/metrics"
	"kina/internal/model"
	"kina/internal/tui/components"
	"kina/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	records := a.store.Records()
	fiscal := dataset.Fiscal()
	var b strings.Builder

	// Row 1: Headline metric cards
	perCapStr := cli.FormatPerCapita(metrics.NationalPerCapita(records))

	deficitDelta := fmt.Sprintf("was %.1f%% in 2024", fiscal.DeficitGDP2024)
	fundingDelta := fmt.Sprintf("%s domestic revenue", cli.FormatBillions(fiscal.DomesticRevenue))

	cards := []struct{ Label, Value, Delta string }{
		{"Expenditure", cli.FormatBillions(fiscal.TotalExpenditure), fmt.Sprintf("op %s / cap %s", cli.FormatKina(fiscal.OperationalExp), cli.FormatKina(fiscal.CapitalExp))},
		{"Revenue", cli.FormatBillions(fiscal.TotalRevenue), fundingDelta},
		{"Deficit / GDP", cli.FormatPercent(fiscal.DeficitGDP), deficitDelta},
		{"Per Capita", perCapStr, "2026 sector spend / person"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Sector allocations for the active year
	sectors := metrics.TopN(rootsOf(records, model.CategorySector), a.year, 8)
	if len(sectors) > 0 {
		chartVals := make([]float64, len(sectors))
		chartLabels := make([]string, len(sectors))
		for i, s := range sectors {
			chartVals[i] = float64(s.Allocation(a.year))
			chartLabels[i] = truncStr(s.Name, 8)
		}
		chartInnerW := components.CardInnerWidth(cw)
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Sector Allocations %d", int(a.year)),
			components.BarChart(chartVals, chartLabels, t.Blue, chartInnerW, 10),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Revenue share + analyst insights
	halves := components.LayoutRow(cw, 2)

	revenueCard := a.renderRevenueShare(halves[0])
	insightCard := a.renderInsights(halves[1])

	if a.isCompactLayout() {
		b.WriteString(a.renderRevenueShare(cw))
		b.WriteString("\n")
		b.WriteString(a.renderInsights(cw))
	} else {
		b.WriteString(components.CardRow([]string{revenueCard, insightCard}))
	}

	return b.String()
}

func (a App) renderRevenueShare(outerW int) string {
	records := a.store.Records()
	innerW := components.CardInnerWidth(outerW)

	sources := metrics.TopN(rootsOf(records, model.CategoryRevenue), a.year, 6)
	total := metrics.CategoryTotal(records, model.CategoryRevenue, a.year)

	labelW := 20
	barW := innerW - labelW - 18
	if barW < 8 {
		barW = 8
	}

	var body strings.Builder
	for _, r := range sources {
		share := metrics.ShareOfTotal(r.Allocation(a.year), total)
		body.WriteString(components.ShareBar(
			truncStr(r.Name, labelW),
			cli.FormatKina(r.Allocation(a.year)),
			share/100,
			labelW, barW))
		body.WriteString("\n")
	}

	// How much of the budget domestic revenue covers
	fiscal := dataset.Fiscal()
	body.WriteString("\n")
	body.WriteString(lipgloss.NewStyle().Foreground(theme.Active.TextMuted).
		Render(fmt.Sprintf("%-*s", labelW, "Internally funded")))
	body.WriteString(" ")
	body.WriteString(components.ProgressBar(fiscal.InternalFundingRatio/100, barW))

	return components.ContentCard(fmt.Sprintf("Revenue Sources %d", int(a.year)), body.String(), outerW)
}

func (a App) renderInsights(outerW int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(outerW)

	titleStyles := map[model.Sentiment]lipgloss.Style{
		model.SentimentPositive: lipgloss.NewStyle().Foreground(t.Green).Bold(true),
		model.SentimentWarning:  lipgloss.NewStyle().Foreground(t.Orange).Bold(true),
		model.SentimentNegative: lipgloss.NewStyle().Foreground(t.Red).Bold(true),
		model.SentimentNeutral:  lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true),
	}
	bodyStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	insights := dataset.Insights()
	limit := 4
	if len(insights) < limit {
		limit = len(insights)
	}

	var body strings.Builder
	for _, ins := range insights[:limit] {
		body.WriteString(titleStyles[ins.Sentiment].Render("• " + ins.Title))
		body.WriteString("\n")
		body.WriteString(bodyStyle.Render("  " + truncStr(ins.Description, innerW-2)))
		body.WriteString("\n")
	}

	return components.ContentCard("Analyst Notes", body.String(), outerW)
}

// rootsOf filters top-level records of one category, preserving order.
func rootsOf(records []model.BudgetRecord, cat model.Category) []model.BudgetRecord {
	var out []model.BudgetRecord
	for _, r := range records {
		if r.Category == cat && r.IsRoot() {
			out = append(out, r)
		}
	}
	return out
}
