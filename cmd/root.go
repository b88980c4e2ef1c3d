package cmd

import (
	"fmt"
	"os"
	"strings"

	"kina/internal/config"
	"kina/internal/dataset"
	"kina/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagData  string
	flagYear  int
	flagQuiet bool
	flagTop   int
)

var rootCmd = &cobra.Command{
	Use:   "kina",
	Short: "PNG National Budget 2026 explorer",
	Long:  "Explore the Papua New Guinea 2026 National Budget: sectors, provinces, revenue, and trends.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cfg, _ := config.Load()

	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", cfg.General.DataPath, "Budget data file (.json, .db, or .sqlite); embedded dataset by default")
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", cfg.General.DefaultYear, "Fiscal year (2024, 2025, or 2026)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress data warnings")
	rootCmd.PersistentFlags().IntVarP(&flagTop, "top", "t", 0, "Limit tables to the N largest entries (0 = all)")
}

// loadStore is the shared data loading path used by all commands.
func loadStore() (*dataset.Store, error) {
	var (
		store *dataset.Store
		err   error
	)
	switch {
	case flagData == "":
		store, err = dataset.Load()
	case strings.HasSuffix(flagData, ".db") || strings.HasSuffix(flagData, ".sqlite"):
		store, err = dataset.OpenSQLite(flagData)
	default:
		store, err = dataset.LoadFile(flagData)
	}
	if err != nil {
		return nil, err
	}

	if !flagQuiet {
		for _, w := range store.Warnings() {
			fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
		}
	}

	return store, nil
}

// topLimit applies the --top flag to a table of n rows.
func topLimit(n int) int {
	if flagTop > 0 && flagTop < n {
		return flagTop
	}
	return n
}

// activeYear validates the --year flag.
func activeYear() (model.Year, error) {
	y := model.Year(flagYear)
	if !y.Valid() {
		return 0, fmt.Errorf("unsupported fiscal year %d (want 2024, 2025, or 2026)", flagYear)
	}
	return y, nil
}
