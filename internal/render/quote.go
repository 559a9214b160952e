package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/hballard/VMIOrderGen/internal/logger"
	"github.com/hballard/VMIOrderGen/internal/reconcile"
)

// quoteHeaders is the fixed quote column set, matching the order of
// reconcile.ReconciledOrderLine.
var quoteHeaders = []string{
	"Bin", "Shipto", "Shipto Alias", "Prod", "Description", "New Prod",
	"Count", "Additional Qty", "Backorder", "Order Amt", "Unit Price",
	"Total Price",
}

// QuoteOptions controls quote workbook emission.
type QuoteOptions struct {
	Dir      string // output directory
	Prefix   string // filename prefix; files are <prefix>-<alias>.xlsx
	LogoPath string // optional logo image placed in the title row
}

// WriteQuotes emits one quote workbook per shipto alias and returns the
// written paths. Each sheet carries a title row with a grand-total SUM
// formula over the extended price column.
func WriteQuotes(part reconcile.Partition, opts QuoteOptions) ([]string, error) {
	const op = "WriteQuotes"

	log := logger.WithComponent("render-quote")

	hasLogo := false
	if opts.LogoPath != "" {
		if _, err := os.Stat(opts.LogoPath); err == nil {
			hasLogo = true
		} else {
			log.Warn().
				Str("logo", opts.LogoPath).
				Msg("No logo image found; quotes will not have an image in the header")
		}
	}

	var written []string
	for _, alias := range part.Keys {
		path := filepath.Join(opts.Dir, fmt.Sprintf("%s-%s.xlsx", opts.Prefix, alias))

		if err := writeQuoteWorkbook(path, alias, part.Groups[alias], opts.LogoPath, hasLogo); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		log.Info().
			Str("file", path).
			Str("shipto_alias", alias).
			Int("lines", len(part.Groups[alias])).
			Msg("Quote written")
		written = append(written, path)
	}

	return written, nil
}

func writeQuoteWorkbook(path, alias string, lines []reconcile.ReconciledOrderLine, logoPath string, hasLogo bool) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := alias
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	currencyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 8})
	if err != nil {
		return err
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 28, Color: "FF0000"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 14, Color: "FF0000"},
		NumFmt: 8,
	})
	if err != nil {
		return err
	}

	// Header row under the title, data from row 3.
	for col, h := range quoteHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		f.SetCellValue(sheet, cell, h)
	}

	for i, line := range lines {
		row := i + 3
		values := []interface{}{
			line.Bin,
			line.Shipto,
			line.ShiptoAlias,
			line.Product,
			line.Description,
			flagCell(line.NewProduct),
			line.CountedQty,
			line.AdditionalQty,
			line.BackorderQty,
			line.OrderAmt,
			line.UnitPrice.InexactFloat64(),
			line.TotalPrice.InexactFloat64(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "C", "C", 12)
	f.SetColWidth(sheet, "D", "D", 20)
	f.SetColWidth(sheet, "E", "E", 48)
	f.SetColWidth(sheet, "H", "H", 13)
	f.SetColWidth(sheet, "K", "K", 13)
	f.SetColWidth(sheet, "L", "L", 11)
	f.SetColStyle(sheet, "K:L", currencyStyle)

	// Title row: logo, merged "Quote" banner, grand total formula.
	f.SetRowHeight(sheet, 1, 45)
	if err := f.MergeCell(sheet, "E1", "I1"); err != nil {
		return err
	}
	f.SetCellValue(sheet, "E1", "Quote")
	f.SetCellStyle(sheet, "E1", "I1", titleStyle)
	f.SetCellValue(sheet, "K1", "Total Price")
	f.SetCellStyle(sheet, "K1", "L1", totalStyle)
	if err := f.SetCellFormula(sheet, "L1", fmt.Sprintf("SUM(L3:L%d)", len(lines)+2)); err != nil {
		return err
	}

	if hasLogo {
		if err := f.AddPicture(sheet, "A1", logoPath, nil); err != nil {
			return err
		}
	}

	landscape := "landscape"
	fitToWidth := 1
	fitToHeight := 0
	f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Orientation: &landscape,
		FitToWidth:  &fitToWidth,
		FitToHeight: &fitToHeight,
	})
	showGridLines := false
	f.SetSheetView(sheet, 0, &excelize.ViewOptions{ShowGridLines: &showGridLines})

	return saveAtomic(f, path)
}

func flagCell(b bool) string {
	if b {
		return "Y"
	}
	return ""
}
