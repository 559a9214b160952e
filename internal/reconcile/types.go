package reconcile

import (
	"github.com/shopspring/decimal"
)

// CountRecord is one scanned inventory count row. The product code is
// upper-cased and right-trimmed when the barcode is parsed so downstream
// joins are case-insensitive.
type CountRecord struct {
	Bin           string // physical storage location from the barcode
	ShiptoRaw     string // shipto segment exactly as scanned
	ShiptoAlias   string // field name for the location, kept for the quote
	Product       string
	CountedQty    int64
	NewProduct    bool
	AdditionalQty int64
	Comments      string
}

// BackorderRecord is one row of the raw backorder extract. EntryDate is kept
// verbatim; it only participates in exact-duplicate removal.
type BackorderRecord struct {
	Product    string
	Shipto     string
	Qty        int64
	CustomerNo string
	EntryDate  string
}

// ProductShipto is the aggregation and join key.
type ProductShipto struct {
	Product string
	Shipto  string
}

// ProductReference is one row of the product data file. AltProduct, when
// non-empty, designates a substitute SKU that replaces the counted product
// on the order.
type ProductReference struct {
	Product     string
	Description string
	UnitPrice   decimal.Decimal
	AltProduct  string
}

// ReferenceTable indexes product reference rows by normalized product code.
type ReferenceTable map[string]ProductReference

// ReconciledOrderLine is the join result consumed by the renderers. Field
// order here is the column order contract for both output documents.
type ReconciledOrderLine struct {
	Bin           string
	Shipto        string
	ShiptoAlias   string
	Product       string // resolved to the substitute SKU when one exists
	Description   string
	NewProduct    bool
	CountedQty    int64
	AdditionalQty int64
	BackorderQty  int64
	OrderAmt      int64
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
	Comments      string
}
