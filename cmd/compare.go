package cmd

import (
	"fmt"
	"strings"

	"kina/internal/cli"
	"kina/internal/dataset"
	"kina/internal/hierarchy"
	"kina/internal/metrics"
	"kina/internal/model"

	"github.com/spf13/cobra"
)

var flagCompareCategory string

var compareCmd = &cobra.Command{
	Use:   "compare [record] [record]",
	Short: "Three-year trend comparison",
	Long:  "Compare allocations across 2024-2026.\nWithout arguments, lists every top-level record of a category.\nWith two record names or ids, compares just those two side by side.",
	Args:  cobra.RangeArgs(0, 2),
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVarP(&flagCompareCategory, "category", "c", "Sector", "Category to compare (Sector, Province, Revenue)")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(_ *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	var group []model.BudgetRecord
	var title string

	if len(args) > 0 {
		for _, arg := range args {
			r, ok := findRecord(store, arg)
			if !ok {
				return fmt.Errorf("no record matches %q", arg)
			}
			group = append(group, r)
		}
		title = "TRENDS  2024-2026"
	} else {
		cat := model.Category(flagCompareCategory)
		if !cat.Valid() {
			return fmt.Errorf("unknown category %q", flagCompareCategory)
		}

		resolver := hierarchy.NewResolver(store.Records())
		roots := resolver.RootsOf(cat)
		group = metrics.TopN(roots, model.Year2026, topLimit(len(roots)))
		if len(group) == 0 {
			fmt.Printf("\n  No %s records in the dataset.\n", cat)
			return nil
		}
		title = fmt.Sprintf("%s TRENDS  2024-2026", strings.ToUpper(string(cat)))
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	rows := make([][]string, 0, len(group))
	for _, r := range group {
		growth, ok := metrics.GrowthPercent(r.Allocation2026, r.Allocation2025)

		series := metrics.YearSeries(r)
		values := make([]float64, len(series))
		for i, v := range series {
			values[i] = float64(v)
		}

		rows = append(rows, []string{
			r.Name,
			cli.FormatKina(r.Allocation2024),
			cli.FormatKina(r.Allocation2025),
			cli.FormatKina(r.Allocation2026),
			cli.FormatGrowth(growth, ok),
			cli.RenderSparkline(values),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "2024", "2025", "2026", "Δ25→26", "Trend"},
		Rows:    rows,
	}))

	return nil
}

// findRecord resolves an id or case-insensitive name substring.
func findRecord(store *dataset.Store, arg string) (model.BudgetRecord, bool) {
	if r, ok := store.FindByID(arg); ok {
		return r, true
	}
	needle := strings.ToLower(arg)
	for _, r := range store.Records() {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			return r, true
		}
	}
	return model.BudgetRecord{}, false
}
