package assistant

import (
	"fmt"
	"sort"
	"strings"

	"kina/internal/dataset"
	"kina/internal/metrics"
	"kina/internal/model"
)

// SystemInstruction composes the grounding prompt for the assistant
// from the fiscal snapshot and the loaded record set. Recomputing the
// figures here keeps the prompt in lockstep with whatever dataset is
// actually loaded instead of hard-coding numbers that can drift.
func SystemInstruction(records []model.BudgetRecord) string {
	fiscal := dataset.Fiscal()

	var b strings.Builder
	b.WriteString(`You are the "Budget Bot", an expert assistant for the Papua New Guinea National Budget Dashboard.` + "\n\n")

	b.WriteString("2026 FISCAL HEALTH METRICS:\n")
	fmt.Fprintf(&b, "- Budget Deficit as %% of GDP: %.1f%% (down from %.1f%% in 2024).\n", fiscal.DeficitGDP, fiscal.DeficitGDP2024)
	fmt.Fprintf(&b, "- Debt-to-GDP Ratio: %.1f%% target (down from %.1f%% in 2025).\n", fiscal.DebtGDP, fiscal.DebtGDP2025)
	fmt.Fprintf(&b, "- Internal Funding: %.0f%% of the budget is internally funded.\n", fiscal.InternalFundingRatio)
	fmt.Fprintf(&b, "- Domestic Revenue: %s of the %s total.\n\n", billions(fiscal.DomesticRevenue), billions(fiscal.TotalRevenue))

	b.WriteString("SPENDING EFFICIENCY & PER CAPITA:\n")
	if pc, ok := metrics.NationalPerCapita(records); ok {
		fmt.Fprintf(&b, "- National Per Capita Spending: K%.0f per person.\n", pc)
	} else {
		fmt.Fprintf(&b, "- National Per Capita Spending: K%.0f per person.\n", fiscal.NationalPerCapita)
	}
	fmt.Fprintf(&b, "- Operational vs Capital Split: %s Operational vs %s Capital/PIP.\n\n",
		billions(fiscal.OperationalExp), billions(fiscal.CapitalExp))

	writeGrowthLines(&b, records)
	writeRevenueLines(&b, records)

	b.WriteString("Official Sources:\n")
	fmt.Fprintf(&b, "- Treasury: %s\n", dataset.TreasuryURL)
	fmt.Fprintf(&b, "- Census/NSO: %s\n", dataset.NSOURL)
	fmt.Fprintf(&b, "- KPMG Review: %s\n\n", dataset.KPMGReportURL)

	b.WriteString("Guidelines:\n")
	fmt.Fprintf(&b, "1. When asked about budget health, highlight the %.1f%% deficit-to-GDP milestone.\n", fiscal.DeficitGDP)
	fmt.Fprintf(&b, "2. Emphasize that %.0f%% of the budget is internally funded, reducing reliance on external debt.\n", fiscal.InternalFundingRatio)
	b.WriteString("3. Use the per-capita figures to provide social context for spending.\n")
	b.WriteString("4. Answer only from the figures above; say so when a question falls outside them.\n")

	return b.String()
}

// writeGrowthLines lists the fastest-growing top-level sectors by 2025
// to 2026 change.
func writeGrowthLines(b *strings.Builder, records []model.BudgetRecord) {
	type growth struct {
		rec model.BudgetRecord
		pct float64
	}
	var grown []growth
	for _, r := range records {
		if r.Category != model.CategorySector || !r.IsRoot() {
			continue
		}
		if pct, ok := metrics.GrowthPercent(r.Allocation2026, r.Allocation2025); ok {
			grown = append(grown, growth{rec: r, pct: pct})
		}
	}
	if len(grown) == 0 {
		return
	}
	sort.SliceStable(grown, func(i, j int) bool { return grown[i].pct > grown[j].pct })
	if len(grown) > 3 {
		grown = grown[:3]
	}

	b.WriteString("KEY SECTOR GROWTH (2025 vs 2026):\n")
	for _, g := range grown {
		fmt.Fprintf(b, "- %s: %+.1f%% (total %s).\n", g.rec.Name, g.pct, billions(g.rec.Allocation2026))
	}
	b.WriteString("\n")
}

// writeRevenueLines lists the top revenue sources for 2026.
func writeRevenueLines(b *strings.Builder, records []model.BudgetRecord) {
	var revenue []model.BudgetRecord
	for _, r := range records {
		if r.Category == model.CategoryRevenue && r.IsRoot() {
			revenue = append(revenue, r)
		}
	}
	top := metrics.TopN(revenue, model.Year2026, 3)
	if len(top) == 0 {
		return
	}

	b.WriteString("REVENUE HIERARCHY:\n")
	for i, r := range top {
		fmt.Fprintf(b, "- #%d Source: %s at %s.\n", i+1, r.Name, billions(r.Allocation2026))
	}
	b.WriteString("\n")
}

func billions(kina int64) string {
	return fmt.Sprintf("K%.1f Billion", float64(kina)/1e9)
}
