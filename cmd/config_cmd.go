// Package cmd implements the kina CLI commands.
package cmd

import (
	"fmt"

	"kina/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default year: %d\n", cfg.General.DefaultYear)
	if cfg.General.DataPath != "" {
		fmt.Printf("    Data path:    %s\n", cfg.General.DataPath)
	} else {
		fmt.Println("    Data path:    embedded dataset")
	}
	fmt.Println()

	fmt.Println("  [Assistant]")
	apiKey := config.GetAPIKey(cfg)
	if apiKey != "" {
		fmt.Printf("    API key:  %s\n", maskAPIKey(apiKey))
	} else {
		fmt.Println("    API key:  not configured")
	}
	if cfg.Assistant.Model != "" {
		fmt.Printf("    Model:    %s\n", cfg.Assistant.Model)
	}
	if cfg.Assistant.BaseURL != "" {
		fmt.Printf("    Base URL: %s\n", cfg.Assistant.BaseURL)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `kina tui` to reconfigure interactively.")
	return nil
}

// maskAPIKey shows only the first and last few characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
