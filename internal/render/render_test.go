package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/hballard/VMIOrderGen/internal/config"
	"github.com/hballard/VMIOrderGen/internal/reconcile"
)

func samplePartitionInput() []reconcile.ReconciledOrderLine {
	price, _ := decimal.NewFromString("2.50")
	total, _ := decimal.NewFromString("40.00")
	gadgetPrice, _ := decimal.NewFromString("9.99")

	return []reconcile.ReconciledOrderLine{
		{
			Bin: "A1", Shipto: "100", ShiptoAlias: "mainst", Product: "WIDGET",
			Description: "BLUE WIDGET", CountedQty: 20, BackorderQty: 4,
			OrderAmt: 16, UnitPrice: price, TotalPrice: total,
		},
		{
			Bin: "A2", Shipto: "200", ShiptoAlias: "annex", Product: "GADGET",
			Description: "RED GADGET", CountedQty: 5, BackorderQty: 10,
			OrderAmt: 0, UnitPrice: gadgetPrice, TotalPrice: decimal.Zero,
		},
	}
}

func sampleRunConfig() config.RunConfig {
	return config.RunConfig{
		CustomerNo: "12345",
		Warehouse:  "MAIN",
		ShipVia:    "UPS",
		PO:         map[string]string{"100": "4500012", "200": "4500013"},
	}
}

func TestWriteOEUpload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oe_upload.xlsx")
	part := reconcile.PartitionByShipto(samplePartitionInput())

	if err := WriteOEUpload(part, sampleRunConfig(), path, true); err != nil {
		t.Fatalf("WriteOEUpload returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("output workbook does not open: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "100" || sheets[1] != "200" {
		t.Fatalf("sheets = %v, want [100 200]", sheets)
	}

	checks := []struct {
		sheet, cell, want string
	}{
		{"100", "A1", "12345"},
		{"100", "A2", "MAIN"},
		{"100", "A3", "4500012"},
		{"100", "A4", "UPS"},
		{"100", "B1", "100"},
		{"100", "B2", "QU"},
		{"100", "A8", "Product"},
		{"100", "A9", "WIDGET"},
		{"100", "C9", "16"},
		{"200", "A3", "4500013"},
		{"200", "A9", "GADGET"},
		{"200", "C9", "0"},
	}
	for _, c := range checks {
		got, err := f.GetCellValue(c.sheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s!%s): %v", c.sheet, c.cell, err)
		}
		if got != c.want {
			t.Errorf("%s!%s = %q, want %q", c.sheet, c.cell, got, c.want)
		}
	}

	// Prices were requested.
	if got, _ := f.GetCellValue("100", "E9"); got != "2.5" {
		t.Errorf("100!E9 = %q, want 2.5", got)
	}
}

func TestWriteOEUpload_NoPrices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "oe_upload.xlsx")
	part := reconcile.PartitionByShipto(samplePartitionInput())

	if err := WriteOEUpload(part, sampleRunConfig(), path, false); err != nil {
		t.Fatalf("WriteOEUpload returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("100", "E9"); got != "" {
		t.Errorf("100!E9 = %q, want empty when prices are excluded", got)
	}
}

func TestWriteQuotes(t *testing.T) {
	dir := t.TempDir()
	part := reconcile.PartitionByAlias(samplePartitionInput())

	written, err := WriteQuotes(part, QuoteOptions{Dir: dir, Prefix: "quote"})
	if err != nil {
		t.Fatalf("WriteQuotes returned error: %v", err)
	}

	if len(written) != 2 {
		t.Fatalf("expected 2 quote files, got %d: %v", len(written), written)
	}
	if filepath.Base(written[0]) != "quote-mainst.xlsx" {
		t.Errorf("first file = %s, want quote-mainst.xlsx", written[0])
	}

	f, err := excelize.OpenFile(written[0])
	if err != nil {
		t.Fatalf("quote workbook does not open: %v", err)
	}
	defer f.Close()

	if got, _ := f.GetCellValue("mainst", "E1"); got != "Quote" {
		t.Errorf("title cell = %q, want Quote", got)
	}
	if got, _ := f.GetCellValue("mainst", "A2"); got != "Bin" {
		t.Errorf("first header = %q, want Bin", got)
	}
	if got, _ := f.GetCellValue("mainst", "D3"); got != "WIDGET" {
		t.Errorf("product cell = %q, want WIDGET", got)
	}
	if got, _ := f.GetCellValue("mainst", "J3"); got != "16" {
		t.Errorf("order amt cell = %q, want 16", got)
	}

	formula, err := f.GetCellFormula("mainst", "L1")
	if err != nil {
		t.Fatal(err)
	}
	if formula != "SUM(L3:L3)" {
		t.Errorf("grand total formula = %q, want SUM(L3:L3)", formula)
	}
}

func TestSaveAtomic_NoPartialFiles(t *testing.T) {
	dir := t.TempDir()
	part := reconcile.PartitionByShipto(samplePartitionInput())
	path := filepath.Join(dir, "oe_upload.xlsx")

	if err := WriteOEUpload(part, sampleRunConfig(), path, false); err != nil {
		t.Fatalf("WriteOEUpload returned error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".render-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only the output file in %s, got %v", dir, entries)
	}
}
