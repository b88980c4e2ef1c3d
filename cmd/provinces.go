package cmd

import (
	"fmt"

	"kina/internal/cli"
	"kina/internal/hierarchy"
	"kina/internal/metrics"

	"github.com/spf13/cobra"
)

var provincesCmd = &cobra.Command{
	Use:   "provinces",
	Short: "Provincial allocations and per-capita spending",
	RunE:  runProvinces,
}

func init() {
	rootCmd.AddCommand(provincesCmd)
}

func runProvinces(_ *cobra.Command, _ []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	year, err := activeYear()
	if err != nil {
		return err
	}

	records := store.Records()
	series := metrics.ProvincePerCapitaSeries(records, year)
	if len(series) == 0 {
		fmt.Println("\n  No province records in the dataset.")
		return nil
	}

	series = series[:topLimit(len(series))]
	resolver := hierarchy.NewResolver(records)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("PROVINCES  FY %d  by per-capita spend", year)))
	fmt.Println()

	rows := make([][]string, 0, len(series))
	for _, p := range series {
		r := p.Record
		growth, ok := metrics.GrowthPercent(r.Allocation(year), r.Allocation(year.Prev()))

		pop := "n/a"
		if r.Population > 0 {
			pop = cli.FormatNumber(r.Population)
		}

		rows = append(rows, []string{
			r.Name,
			cli.FormatKina(r.Allocation(year)),
			cli.FormatGrowth(growth, ok),
			pop,
			cli.FormatPerCapita(p.PerCapita, p.Known),
			fmt.Sprintf("%d", len(resolver.ChildrenOf(r.ID))),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Province", "Alloc", "Growth", "Population", "Per Capita", "Items"},
		Rows:    rows,
	}))

	return nil
}
