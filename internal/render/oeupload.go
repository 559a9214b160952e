package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/hballard/VMIOrderGen/internal/config"
	"github.com/hballard/VMIOrderGen/internal/logger"
	"github.com/hballard/VMIOrderGen/internal/reconcile"
)

// oeDataHeaders is the column header row the order entry system expects at
// row 8 of each sheet.
var oeDataHeaders = []string{
	"Product", "Description", "Quantity", "Unit", "Price", "Discount",
	"Disc Type", "Vendor", "Prod Line", "Prod Cat", "Prod Cost", "Tie Type",
	"Tie Whse", "Drop Ship Option", "Print Option",
}

// Row at which product lines start; rows 1-4 are the order header block and
// row 8 the data header.
const oeFirstDataRow = 9

// WriteOEUpload emits the order entry upload workbook: one sheet per
// canonical shipto, each with the header block (customer, warehouse, PO,
// ship-via) followed by product code and order amount lines. Unit prices are
// included when addPrices is set.
func WriteOEUpload(part reconcile.Partition, cfg config.RunConfig, path string, addPrices bool) error {
	const op = "WriteOEUpload"

	log := logger.WithComponent("render-oe")

	f := excelize.NewFile()
	defer f.Close()

	for i, shipto := range part.Keys {
		sheet := shipto
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}

		// Order header block.
		f.SetCellValue(sheet, "A1", cfg.CustomerNo)
		f.SetCellValue(sheet, "A2", cfg.Warehouse)
		f.SetCellValue(sheet, "A3", cfg.PO[shipto])
		f.SetCellValue(sheet, "A4", cfg.ShipVia)
		f.SetCellValue(sheet, "B1", shipto)
		f.SetCellValue(sheet, "B2", "QU")

		for col, h := range oeDataHeaders {
			cell, _ := excelize.CoordinatesToCellName(col+1, 8)
			f.SetCellValue(sheet, cell, h)
		}

		for j, line := range part.Groups[shipto] {
			row := oeFirstDataRow + j
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), line.Product)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), line.OrderAmt)
			if addPrices {
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), line.UnitPrice.InexactFloat64())
			}
		}

		f.SetColWidth(sheet, "A", "A", 25)
		f.SetColWidth(sheet, "B", "B", 15)
		f.SetColWidth(sheet, "N", "N", 15)
		f.SetColWidth(sheet, "O", "O", 15)
	}

	if err := saveAtomic(f, path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info().
		Str("file", path).
		Int("shiptos", len(part.Keys)).
		Bool("prices_included", addPrices).
		Msg("OE upload written")

	return nil
}
