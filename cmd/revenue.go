package cmd

import (
	"fmt"

	"kina/internal/cli"
	"kina/internal/hierarchy"
	"kina/internal/metrics"
	"kina/internal/model"

	"github.com/spf13/cobra"
)

var revenueCmd = &cobra.Command{
	Use:   "revenue",
	Short: "Revenue sources with share of total",
	RunE:  runRevenue,
}

func init() {
	rootCmd.AddCommand(revenueCmd)
}

func runRevenue(_ *cobra.Command, _ []string) error {
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
	roots := resolver.RootsOf(model.CategoryRevenue)
	sources := metrics.TopN(roots, year, topLimit(len(roots)))
	if len(sources) == 0 {
		fmt.Println("\n  No revenue records in the dataset.")
		return nil
	}

	total := metrics.CategoryTotal(records, model.CategoryRevenue, year)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REVENUE SOURCES  FY %d", year)))
	fmt.Println()

	for _, r := range sources {
		label := fmt.Sprintf("  %-28s %s", truncLabel(r.Name, 28), cli.FormatKina(r.Allocation(year)))
		fmt.Printf("%s  %s\n", label, cli.RenderShareBar(float64(r.Allocation(year)), float64(total), 24))
	}

	return nil
}

func truncLabel(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
