package cmd

import (
	"fmt"

	"kina/internal/dataset"

	"github.com/spf13/cobra"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export --out <path.db>",
	Short: "Export the loaded dataset to a SQLite database",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Destination SQLite file")
	_ = exportCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	if err := dataset.Export(store, flagExportOut); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("  Exported %d records to %s\n", store.Len(), flagExportOut)
	return nil
}
