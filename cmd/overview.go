package cmd

import (
	"fmt"

	"kina/internal/cli"
	"kina/internal/dataset"
	"kina/internal/hierarchy"
	"kina/internal/metrics"
	"kina/internal/model"

	"github.com/spf13/cobra"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "National budget headline figures",
	RunE:  runOverview,
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

func runOverview(_ *cobra.Command, _ []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	year, err := activeYear()
	if err != nil {
		return err
	}

	records := store.Records()
	fiscal := dataset.Fiscal()
	perCapita, pcOK := metrics.NationalPerCapita(records)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PNG NATIONAL BUDGET  FY %d", year)))
	fmt.Println()

	rows := [][]string{
		{"Total Expenditure", cli.FormatKina(fiscal.TotalExpenditure)},
		{"  Operational", cli.FormatKina(fiscal.OperationalExp)},
		{"  Capital", cli.FormatKina(fiscal.CapitalExp)},
		{"Total Revenue", cli.FormatKina(fiscal.TotalRevenue)},
		{"  Domestic", cli.FormatKina(fiscal.DomesticRevenue)},
		{"---"},
		{"Deficit / GDP", cli.FormatPercent(fiscal.DeficitGDP)},
		{"Debt / GDP", cli.FormatPercent(fiscal.DebtGDP)},
		{"Internal Funding", cli.FormatPercent(fiscal.InternalFundingRatio)},
		{"---"},
		{"Per Capita", cli.FormatPerCapita(perCapita, pcOK)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	// Top sectors as horizontal bars
	resolver := hierarchy.NewResolver(records)
	sectors := metrics.TopN(resolver.RootsOf(model.CategorySector), year, 8)
	if len(sectors) > 0 {
		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("TOP SECTORS  FY %d", year)))
		fmt.Println()

		maxVal := float64(sectors[0].Allocation(year))
		for _, s := range sectors {
			fmt.Println(cli.RenderHorizontalBar(s.Name, float64(s.Allocation(year)), maxVal, 32))
		}
	}

	return nil
}
