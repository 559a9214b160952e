package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hballard/VMIOrderGen/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "vmiorder",
	Short: "Generate VMI quote and OE upload files from inventory counts",
	Long: `vmiorder reconciles vendor-managed inventory counts against outstanding
backorders and produces two documents per run: customer-facing price quotes
(one workbook per shipto alias) and an order entry upload template (one
sheet per shipto).

Inputs are flat Excel or CSV files; everything is processed in one pass and
nothing is persisted between runs.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Use 'vmiorder generate' to process a count file, or --help for options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
