package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hballard/VMIOrderGen/internal/config"
	"github.com/hballard/VMIOrderGen/internal/logger"
	"github.com/hballard/VMIOrderGen/internal/reconcile"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write sample config and product data files",
	Long: `Write a placeholder run configuration and an empty product data file at
their default locations (or the paths given). Existing files are left
untouched.`,
	RunE: runInitConfig,
}

func init() {
	rootCmd.AddCommand(initConfigCmd)

	initConfigCmd.Flags().StringP("config", "c", filepath.Join("config", "config.json"), "Path for the run configuration file")
	initConfigCmd.Flags().StringP("product-data", "D", filepath.Join("data", "product_data.csv"), "Path for the product data file")
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("init-config")

	configFile, _ := cmd.Flags().GetString("config")
	productFile, _ := cmd.Flags().GetString("product-data")

	if _, err := os.Stat(configFile); err == nil {
		log.Info().Str("file", configFile).Msg("Config file already exists; leaving it alone")
	} else {
		if err := config.WriteRunConfig(configFile, config.Template()); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}
		fmt.Printf("Wrote sample config to %s; edit it before running generate.\n", configFile)
	}

	if _, err := os.Stat(productFile); err == nil {
		log.Info().Str("file", productFile).Msg("Product data file already exists; leaving it alone")
	} else {
		if err := reconcile.WriteProductDataTemplate(productFile); err != nil {
			return fmt.Errorf("failed to write product data template: %w", err)
		}
		fmt.Printf("Wrote product data template to %s.\n", productFile)
	}

	return nil
}
