package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hballard/VMIOrderGen/internal/config"
	"github.com/hballard/VMIOrderGen/internal/logger"
	"github.com/hballard/VMIOrderGen/internal/reconcile"
	"github.com/hballard/VMIOrderGen/internal/render"
	"github.com/hballard/VMIOrderGen/internal/tabular"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Process a VMI count and produce quote and OE upload files",
	Long: `Process a VMI count extract against current backorders and product data,
then write the quote workbooks (one per shipto alias) and the OE upload
template (one sheet per shipto) into the output directory.

A missing config file is not fatal: a sample is written for the operator to
fill in and the run continues with it. Pass --require-config to fail
instead. A missing product data file likewise gets a template and the run
continues with an empty reference (descriptions blank, prices zero).`,
	Example: `  # Default file locations
  vmiorder generate

  # Explicit inputs, prices included in the upload file
  vmiorder generate -C counts.xlsx -B backorders.xlsx --add-prices

  # Fail rather than generate a placeholder config
  vmiorder generate --require-config`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("count-file", "C", "counts.xlsx", "Path to the count file to import (Excel or CSV)")
	generateCmd.Flags().StringP("backorder-file", "B", "backorders.xlsx", "Path to the backorder file to import (Excel or CSV)")
	generateCmd.Flags().StringP("product-data", "D", filepath.Join("data", "product_data.csv"), "Path to the product data file (CSV or Excel)")
	generateCmd.Flags().StringP("config", "c", filepath.Join("config", "config.json"), "Path to the run configuration file (JSON)")
	generateCmd.Flags().StringP("output", "P", "output", "Directory for the output files")
	generateCmd.Flags().StringP("quote", "Q", "quote", "Filename prefix for the quote workbooks")
	generateCmd.Flags().StringP("oe-upload", "O", "oe_upload", "Filename for the OE upload workbook (without extension)")
	generateCmd.Flags().BoolP("add-prices", "A", false, "Include unit prices in the OE upload file")
	generateCmd.Flags().Bool("require-config", false, "Fail when the config file is missing instead of writing a sample")
	generateCmd.Flags().String("logo", filepath.Join("images", "company_logo.png"), "Logo image placed in each quote header")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	countFile, _ := cmd.Flags().GetString("count-file")
	backorderFile, _ := cmd.Flags().GetString("backorder-file")
	productFile, _ := cmd.Flags().GetString("product-data")
	configFile, _ := cmd.Flags().GetString("config")
	outputDir, _ := cmd.Flags().GetString("output")
	quotePrefix, _ := cmd.Flags().GetString("quote")
	oeName, _ := cmd.Flags().GetString("oe-upload")
	addPrices, _ := cmd.Flags().GetBool("add-prices")
	requireConfig, _ := cmd.Flags().GetBool("require-config")
	logoPath, _ := cmd.Flags().GetString("logo")

	runCfg, created, err := config.LoadRunConfig(configFile, requireConfig)
	if err != nil {
		return fmt.Errorf("failed to load run configuration: %w", err)
	}
	if created {
		log.Warn().
			Str("file", configFile).
			Msg("No config file found; a sample was written. Edit it and re-run for correct customer and shipto values")
	}

	log.Info().
		Str("count_file", countFile).
		Str("backorder_file", backorderFile).
		Str("product_data", productFile).
		Str("customer_no", runCfg.CustomerNo).
		Bool("add_prices", addPrices).
		Msg("Starting order generation")

	lines, err := processOrders(countFile, backorderFile, productFile, runCfg)
	if err != nil {
		return err
	}

	quotePart := reconcile.PartitionByAlias(lines)
	oePart := reconcile.PartitionByShipto(lines)

	log.Info().
		Int("lines", len(lines)).
		Int("quote_partitions", len(quotePart.Keys)).
		Int("oe_partitions", len(oePart.Keys)).
		Msg("Reconciliation complete")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	oePath := filepath.Join(outputDir, oeName+".xlsx")
	if err := render.WriteOEUpload(oePart, runCfg, oePath, addPrices); err != nil {
		return fmt.Errorf("failed to write OE upload file: %w", err)
	}

	if _, err := render.WriteQuotes(quotePart, render.QuoteOptions{
		Dir:      outputDir,
		Prefix:   quotePrefix,
		LogoPath: logoPath,
	}); err != nil {
		return fmt.Errorf("failed to write quote files: %w", err)
	}

	log.Info().Str("output", outputDir).Msg("Order generation completed successfully")
	return nil
}

// processOrders runs the reconciliation pipeline: load the three extracts,
// aggregate backorders, and join. The full table is materialized before any
// output is written, so a parse failure anywhere produces no documents.
func processOrders(countFile, backorderFile, productFile string, runCfg config.RunConfig) ([]reconcile.ReconciledOrderLine, error) {
	log := logger.WithComponent("generate")

	reader := reconcile.NewDataReader(runCfg)

	counts, err := reader.ReadCounts(countFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read count file: %w", err)
	}

	refTable, err := reader.ReadProductReference(productFile)
	if err != nil {
		if !errors.Is(err, tabular.ErrMissingInputFile) {
			return nil, fmt.Errorf("failed to read product data file: %w", err)
		}
		log.Warn().
			Str("file", productFile).
			Msg("No product data file found; a template was written. Quotes will have blank descriptions and zero prices until it is populated")
		if err := reconcile.WriteProductDataTemplate(productFile); err != nil {
			return nil, fmt.Errorf("failed to write product data template: %w", err)
		}
		refTable = reconcile.ReferenceTable{}
	}

	backorderRecords, err := reader.ReadBackorders(backorderFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read backorder file: %w", err)
	}
	backorders := reconcile.AggregateBackorders(backorderRecords, runCfg.CustomerNo)

	norm := reconcile.NewNormalizer(runCfg.Shiptos, refTable)
	return reconcile.Join(counts, backorders, norm), nil
}
