package dataset

import "kina/internal/model"

// Official source documents cited across the dashboard.
const (
	TreasuryURL   = "https://www.treasury.gov.pg"
	NSOURL        = "https://www.nso.gov.pg/statistics/population/"
	KPMGReportURL = "https://assets.kpmg.com/content/dam/kpmg/pg/pdf/2025/KPMG_PNG_National_Budget_2026.pdf"
)

// Fiscal returns the 2026 strategy headline figures. These are
// independently authored top-line numbers, not derived from the record
// set.
func Fiscal() model.FiscalSnapshot {
	return model.FiscalSnapshot{
		DeficitGDP:           1.1,
		DeficitGDP2024:       2.2,
		DebtGDP:              45.5,
		DebtGDP2025:          48.4,
		InternalFundingRatio: 88,
		NationalPerCapita:    3035,
		OperationalExp:       19_100_000_000,
		CapitalExp:           11_813_000_000,
		DomesticRevenue:      27_400_000_000,
		TotalExpenditure:     30_913_000_000,
		TotalRevenue:         29_300_000_000,
	}
}

// Insights returns the static analyst commentary shown alongside the
// data.
func Insights() []model.AnalysisInsight {
	return []model.AnalysisInsight{
		{
			Title:       "Fiscal Consolidation Path",
			Description: "The reduction of the deficit to 1.1% of GDP is a significant milestone in the 13-year Budget Repair Plan.",
			Sentiment:   model.SentimentPositive,
			Source:      "KPMG 2026 Budget Review",
		},
		{
			Title:       "Functional Grant Increase",
			Description: "K769.9 million allocated for Functional Grants ensures sub-national service delivery.",
			Sentiment:   model.SentimentPositive,
			Source:      "Budget Strategy 2026",
		},
		{
			Title:       "Revenue Volatility Risk",
			Description: "Heavy reliance on commodity prices; a 10% gold/oil drop could widen the deficit significantly.",
			Sentiment:   model.SentimentWarning,
			Source:      "KPMG 2026 Budget Review",
		},
		{
			Title:       "PHA Funding Surge",
			Description: "K1.47 billion total for Provincial Health Authorities (PHAs) aims to decentralize healthcare.",
			Sentiment:   model.SentimentPositive,
			Source:      "Volume 1 - 2026 Budget",
		},
		{
			Title:       "Security with Growth Theme",
			Description: "The budget dual-focus on law & order (K2.5B) alongside 4.5% non-resource growth targets long-term stability.",
			Sentiment:   model.SentimentPositive,
			Source:      "KPMG 2026 Budget Review",
		},
		{
			Title:       "New Income Tax Act 2026",
			Description: "Effective Jan 1, 2026. Businesses must prepare for significant changes in employee and corporate tax calculations.",
			Sentiment:   model.SentimentWarning,
			Source:      "KPMG 2026 Budget Review",
		},
		{
			Title:       "Path to 2027 Surplus",
			Description: "Aggressive fiscal consolidation targets a balanced budget by 2027 and total debt clearance by 2034.",
			Sentiment:   model.SentimentPositive,
			Source:      "KPMG 2026 Budget Review",
		},
		{
			Title:       "Agriculture & SME Focus",
			Description: "Record K1.5B for Agriculture and K0.8B for SMEs signals a shift towards diversifying the non-resource economy.",
			Sentiment:   model.SentimentPositive,
			Source:      "KPMG 2026 Budget Review",
		},
	}
}
