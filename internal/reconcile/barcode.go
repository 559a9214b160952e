package reconcile

import (
	"fmt"
	"strings"
	"unicode"
)

// Barcode is a decoded count identifier of the form BIN-SHIPTO-PRODUCT.
type Barcode struct {
	Bin     string
	Shipto  string
	Product string
}

// ParseBarcode decodes a composite barcode string. The split is on the
// first two hyphens only, so a product code containing hyphens survives
// intact; bin and shipto codes never contain them. The product segment is
// right-trimmed and upper-cased. A barcode with fewer than three segments,
// or with an empty segment, is rejected with ErrMalformedIdentifier.
func ParseBarcode(raw string) (Barcode, error) {
	parts := strings.SplitN(raw, "-", 3)
	if len(parts) < 3 {
		return Barcode{}, fmt.Errorf("%q: %w", raw, ErrMalformedIdentifier)
	}

	b := Barcode{
		Bin:     parts[0],
		Shipto:  parts[1],
		Product: strings.ToUpper(strings.TrimRightFunc(parts[2], unicode.IsSpace)),
	}

	if b.Bin == "" || b.Shipto == "" || b.Product == "" {
		return Barcode{}, fmt.Errorf("%q: empty segment: %w", raw, ErrMalformedIdentifier)
	}

	return b, nil
}

// String re-joins the parsed segments with the barcode delimiter.
func (b Barcode) String() string {
	return b.Bin + "-" + b.Shipto + "-" + b.Product
}
