package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice converts a textual price to a decimal. A leading currency
// symbol and thousands separators are stripped first; an empty cell is zero.
// Anything non-numeric after stripping is ErrInvalidPriceFormat.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q: %w", raw, ErrInvalidPriceFormat)
	}
	return d, nil
}

// Join left-joins normalized count records against the aggregated backorders
// on (product, shipto) and against the product reference on product, and
// computes the derived order columns. A count with no backorder match gets
// backorder 0; a count with no reference row gets an empty description and a
// zero price, never a failure. Output preserves count-file row order.
//
// The order amount never goes negative: a backorder larger than the count
// zeroes the order before the additional quantity is applied.
func Join(counts []CountRecord, backorders map[ProductShipto]int64, norm *Normalizer) []ReconciledOrderLine {
	lines := make([]ReconciledOrderLine, 0, len(counts))

	for _, c := range counts {
		shipto := norm.CanonicalShipto(c.ShiptoRaw)
		product, ref, _ := norm.ResolveProduct(c.Product)

		backorderQty := backorders[ProductShipto{Product: product, Shipto: shipto}]

		orderAmt := c.CountedQty - backorderQty
		if orderAmt < 0 {
			orderAmt = 0
		}
		orderAmt += c.AdditionalQty

		totalPrice := ref.UnitPrice.Mul(decimal.NewFromInt(orderAmt))

		lines = append(lines, ReconciledOrderLine{
			Bin:           c.Bin,
			Shipto:        shipto,
			ShiptoAlias:   c.ShiptoAlias,
			Product:       product,
			Description:   ref.Description,
			NewProduct:    c.NewProduct,
			CountedQty:    c.CountedQty,
			AdditionalQty: c.AdditionalQty,
			BackorderQty:  backorderQty,
			OrderAmt:      orderAmt,
			UnitPrice:     ref.UnitPrice,
			TotalPrice:    totalPrice,
			Comments:      c.Comments,
		})
	}

	return lines
}
