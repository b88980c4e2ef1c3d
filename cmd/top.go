package cmd

import (
	"fmt"

	"kina/internal/cli"
	"kina/internal/metrics"
	"kina/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagTopCount    int
	flagTopCategory string
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Largest budget lines across all categories",
	RunE:  runTop,
}

func init() {
	topCmd.Flags().IntVarP(&flagTopCount, "count", "n", 15, "Number of records to show")
	topCmd.Flags().StringVarP(&flagTopCategory, "category", "c", "", "Restrict to one category (Sector, Province, Agency, District, Revenue)")
	rootCmd.AddCommand(topCmd)
}

func runTop(_ *cobra.Command, _ []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	year, err := activeYear()
	if err != nil {
		return err
	}

	records := store.Records()
	if flagTopCategory != "" {
		cat := model.Category(flagTopCategory)
		if !cat.Valid() {
			return fmt.Errorf("unknown category %q", flagTopCategory)
		}
		var filtered []model.BudgetRecord
		for _, r := range records {
			if r.Category == cat {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	top := metrics.TopN(records, year, flagTopCount)
	if len(top) == 0 {
		fmt.Println("\n  No records match.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TOP %d BUDGET LINES  FY %d", len(top), year)))
	fmt.Println()

	rows := make([][]string, 0, len(top))
	for i, r := range top {
		growth, ok := metrics.GrowthPercent(r.Allocation(year), r.Allocation(year.Prev()))
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			r.Name,
			string(r.Category),
			cli.FormatKina(r.Allocation(year)),
			cli.FormatGrowth(growth, ok),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Name", "Category", "Alloc", "Growth"},
		Rows:    rows,
	}))

	return nil
}
