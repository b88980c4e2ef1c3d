package cmd

import (
	"fmt"

	"kina/internal/cli"
	"kina/internal/hierarchy"
	"kina/internal/metrics"
	"kina/internal/model"

	"github.com/spf13/cobra"
)

var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "Sector allocations with growth and share",
	RunE:  runSectors,
}

func init() {
	rootCmd.AddCommand(sectorsCmd)
}

func runSectors(_ *cobra.Command, _ []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	year, err := activeYear()
	if err != nil {
		return err
	}

	records := store.Records()
	resolver := hierarchy.NewResolver(records)
	roots := resolver.RootsOf(model.CategorySector)
	sectors := metrics.TopN(roots, year, topLimit(len(roots)))
	if len(sectors) == 0 {
		fmt.Println("\n  No sector records in the dataset.")
		return nil
	}

	total := metrics.CategoryTotal(records, model.CategorySector, year)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SECTORS  FY %d", year)))
	fmt.Println()

	rows := make([][]string, 0, len(sectors))
	for _, s := range sectors {
		growth, ok := metrics.GrowthPercent(s.Allocation(year), s.Allocation(year.Prev()))
		sub, _ := resolver.SubtreeTotal(s.ID, year)

		rows = append(rows, []string{
			s.Name,
			cli.FormatKina(s.Allocation(year)),
			cli.FormatGrowth(growth, ok),
			fmt.Sprintf("%.1f%%", metrics.ShareOfTotal(s.Allocation(year), total)),
			cli.FormatKina(sub),
			fmt.Sprintf("%d", len(resolver.ChildrenOf(s.ID))),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Sector", "Alloc", "Growth", "Share", "Funded Lines", "Items"},
		Rows:    rows,
	}))

	return nil
}
