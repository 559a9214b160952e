package reconcile

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hballard/VMIOrderGen/internal/config"
	"github.com/hballard/VMIOrderGen/internal/logger"
	"github.com/hballard/VMIOrderGen/internal/tabular"
)

// DataReader loads the three input extracts into typed records. Unlike a
// warehouse feed where a bad row can be skipped and logged, a count or
// reference row that fails to parse aborts the whole file: emitting a quote
// with silently dropped lines is worse than no quote.
type DataReader struct {
	cfg config.RunConfig
	log zerolog.Logger
}

// NewDataReader creates a reader bound to the run configuration.
func NewDataReader(cfg config.RunConfig) *DataReader {
	return &DataReader{
		cfg: cfg,
		log: logger.WithComponent("reader"),
	}
}

// ReadCounts loads and parses the count extract. Each row's barcode is
// decoded into bin, shipto and product; the raw shipto is retained as the
// shipto alias.
func (dr *DataReader) ReadCounts(path string) ([]CountRecord, error) {
	const op = "ReadCounts"

	sheet, err := tabular.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	barcodeIdx, err := sheet.RequireColumn("barcode")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	countIdx, err := sheet.RequireColumn("count", "counted_qty", "qty")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	newProdIdx, hasNewProd := sheet.Column("new_prod", "new_product")
	additionalIdx, hasAdditional := sheet.Column("additional_qty", "additional")
	commentsIdx, hasComments := sheet.Column("comments", "comment")

	var records []CountRecord
	for i, row := range sheet.Rows {
		rowNum := i + 2 // header row plus 1-based numbering

		if isBlankRow(row) {
			continue
		}

		barcode, err := ParseBarcode(tabular.Cell(row, barcodeIdx))
		if err != nil {
			return nil, NewRowError(op, sheet.Path, rowNum, err)
		}

		counted, err := parseQuantity(tabular.Cell(row, countIdx))
		if err != nil {
			return nil, NewRowError(op, sheet.Path, rowNum, err)
		}

		var additional int64
		if hasAdditional {
			additional, err = parseQuantity(tabular.Cell(row, additionalIdx))
			if err != nil {
				return nil, NewRowError(op, sheet.Path, rowNum, err)
			}
		}

		var newProduct bool
		if hasNewProd {
			newProduct = parseFlag(tabular.Cell(row, newProdIdx))
		}

		var comments string
		if hasComments {
			comments = tabular.Cell(row, commentsIdx)
		}

		records = append(records, CountRecord{
			Bin:           barcode.Bin,
			ShiptoRaw:     barcode.Shipto,
			ShiptoAlias:   barcode.Shipto,
			Product:       barcode.Product,
			CountedQty:    counted,
			NewProduct:    newProduct,
			AdditionalQty: additional,
			Comments:      comments,
		})
	}

	dr.log.Info().
		Str("file", sheet.Path).
		Int("rows", len(records)).
		Msg("Count extract loaded")

	return records, nil
}

// ReadBackorders loads the raw backorder extract using the configured
// column-to-field mapping.
func (dr *DataReader) ReadBackorders(path string) ([]BackorderRecord, error) {
	const op = "ReadBackorders"

	sheet, err := tabular.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resolve := func(field string) (int, error) {
		ref, ok := dr.cfg.BackorderColumns[field]
		if !ok {
			return 0, fmt.Errorf("%s: no column configured for field %q: %w",
				sheet.Path, field, tabular.ErrMissingColumn)
		}
		idx, ok := sheet.Resolve(ref)
		if !ok {
			return 0, fmt.Errorf("%s: column %q for field %q: %w",
				sheet.Path, ref, field, tabular.ErrMissingColumn)
		}
		return idx, nil
	}

	productIdx, err := resolve(config.FieldProduct)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	shiptoIdx, err := resolve(config.FieldShipto)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	qtyIdx, err := resolve(config.FieldBackorder)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	customerIdx, err := resolve(config.FieldCustomerNo)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dateIdx, err := resolve(config.FieldEntryDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var records []BackorderRecord
	for i, row := range sheet.Rows {
		rowNum := i + 2

		if isBlankRow(row) {
			continue
		}

		// Backorder quantity is a secondary numeric: blank parses as zero,
		// but a garbled cell still aborts.
		qty, err := parseQuantity(tabular.Cell(row, qtyIdx))
		if err != nil {
			return nil, NewRowError(op, sheet.Path, rowNum, err)
		}

		records = append(records, BackorderRecord{
			Product:    tabular.Cell(row, productIdx),
			Shipto:     tabular.Cell(row, shiptoIdx),
			Qty:        qty,
			CustomerNo: tabular.Cell(row, customerIdx),
			EntryDate:  tabular.Cell(row, dateIdx),
		})
	}

	dr.log.Info().
		Str("file", sheet.Path).
		Int("rows", len(records)).
		Msg("Backorder extract loaded")

	return records, nil
}

// ReadProductReference loads the product data file into a lookup table keyed
// by normalized product code. Prices are parsed here so a bad price fails
// the run before any arithmetic happens.
func (dr *DataReader) ReadProductReference(path string) (ReferenceTable, error) {
	const op = "ReadProductReference"

	sheet, err := tabular.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	productIdx, err := sheet.RequireColumn("prod", "product")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	descIdx, hasDesc := sheet.Column("description", "desc")
	priceIdx, hasPrice := sheet.Column("price", "unit_price")
	altIdx, hasAlt := sheet.Column("alt_prod", "alt_product")

	table := make(ReferenceTable)
	for i, row := range sheet.Rows {
		rowNum := i + 2

		if isBlankRow(row) {
			continue
		}

		product := strings.ToUpper(tabular.Cell(row, productIdx))
		if product == "" {
			continue
		}

		ref := ProductReference{Product: product}
		if hasDesc {
			ref.Description = strings.ToUpper(tabular.Cell(row, descIdx))
		}
		if hasAlt {
			ref.AltProduct = strings.ToUpper(tabular.Cell(row, altIdx))
		}
		if hasPrice {
			ref.UnitPrice, err = ParsePrice(tabular.Cell(row, priceIdx))
			if err != nil {
				return nil, NewRowError(op, sheet.Path, rowNum, err)
			}
		}

		table[product] = ref
	}

	dr.log.Info().
		Str("file", sheet.Path).
		Int("products", len(table)).
		Msg("Product reference loaded")

	return table, nil
}

// WriteProductDataTemplate writes an empty product data file with the
// expected header so the operator can populate it.
func WriteProductDataTemplate(path string) error {
	const op = "WriteProductDataTemplate"

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	header := "prod,description,price,alt_prod\n"
	if err := os.WriteFile(path, []byte(header), 0644); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseQuantity reads an integral quantity cell. Excel readers hand back
// whole numbers as "20" but occasionally "20.0"; both are accepted. An empty
// cell is zero.
func parseQuantity(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}

	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", s, ErrInvalidQuantity)
	}

	return int64(math.Round(f)), nil
}

// parseFlag reads a free-form yes/no cell.
func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "", "0", "n", "no", "false":
		return false
	}
	return true
}
