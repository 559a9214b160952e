package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		ref  string
		want int
		ok   bool
	}{
		{"A", 0, true},
		{"Z", 25, true},
		{"AA", 26, true},
		{"AB", 27, true},
		{"AD", 29, true},
		{"ad", 29, true},
		{"", 0, false},
		{"A1", 0, false},
		{"prod", 0, false},
	}

	for _, tt := range tests {
		got, ok := ColumnIndex(tt.ref)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ColumnIndex(%q) = %d, %v; want %d, %v", tt.ref, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")
	content := "Barcode,Count,Comments\nA1-100-WIDGET,20,\nA2-200-GADGET,5,note\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	sheet, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(sheet.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(sheet.Rows))
	}

	// Header matching is case-insensitive and supports aliases.
	idx, ok := sheet.Column("count", "counted_qty")
	if !ok || idx != 1 {
		t.Errorf("Column(count) = %d, %v; want 1, true", idx, ok)
	}
	if _, ok := sheet.Column("price"); ok {
		t.Error("Column(price) found a match in a sheet without one")
	}
}

func TestLoadExcel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.xlsx")

	f := excelize.NewFile()
	f.SetCellValue("Sheet1", "A1", "barcode")
	f.SetCellValue("Sheet1", "B1", "count")
	f.SetCellValue("Sheet1", "A2", "A1-100-WIDGET")
	f.SetCellValue("Sheet1", "B2", 20)
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	sheet, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(sheet.Rows) != 1 {
		t.Fatalf("expected 1 data row, got %d", len(sheet.Rows))
	}
	if got := Cell(sheet.Rows[0], 0); got != "A1-100-WIDGET" {
		t.Errorf("cell A2 = %q", got)
	}
	if got := Cell(sheet.Rows[0], 1); got != "20" {
		t.Errorf("cell B2 = %q", got)
	}
}

func TestLoad_SiblingFallback(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "input.csv")
	if err := os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	sheet, err := Load(filepath.Join(dir, "input.xlsx"))
	if err != nil {
		t.Fatalf("Load with sibling fallback returned error: %v", err)
	}
	if sheet.Path != csvPath {
		t.Errorf("resolved path = %q, want %q", sheet.Path, csvPath)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.xlsx"))
	if !errors.Is(err, ErrMissingInputFile) {
		t.Errorf("error = %v, want ErrMissingInputFile", err)
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("whatever"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestResolve(t *testing.T) {
	sheet := &Sheet{Header: []string{"entry_date", "prod", "backorder"}}

	if idx, ok := sheet.Resolve("prod"); !ok || idx != 1 {
		t.Errorf("Resolve(prod) = %d, %v; want 1, true", idx, ok)
	}
	// Not a header name; falls back to column letters within the sheet.
	if idx, ok := sheet.Resolve("C"); !ok || idx != 2 {
		t.Errorf("Resolve(C) = %d, %v; want 2, true", idx, ok)
	}
	if _, ok := sheet.Resolve("no_such_column1"); ok {
		t.Error("Resolve accepted an unresolvable reference")
	}
}

func TestResolve_LetterBeyondSheetWidth(t *testing.T) {
	// A positional reference past the last header column must not resolve;
	// it would address nothing but blank cells.
	sheet := &Sheet{Header: []string{"entry_date", "prod", "backorder"}}

	if idx, ok := sheet.Resolve("D"); ok {
		t.Errorf("Resolve(D) = %d, true; want no resolution on a 3-column sheet", idx)
	}
	if idx, ok := sheet.Resolve("AB"); ok {
		t.Errorf("Resolve(AB) = %d, true; want no resolution on a 3-column sheet", idx)
	}
}

func TestCell_ShortRow(t *testing.T) {
	row := []string{"only"}
	if got := Cell(row, 5); got != "" {
		t.Errorf("Cell out of range = %q, want empty", got)
	}
	if got := Cell(row, -1); got != "" {
		t.Errorf("Cell negative index = %q, want empty", got)
	}
}
