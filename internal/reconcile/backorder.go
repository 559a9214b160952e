package reconcile

import "strings"

// AggregateBackorders reduces the raw backorder extract to one summed
// quantity per (product, shipto) for the configured customer. Rows for other
// customers are dropped, then exact-duplicate rows are removed so a repeated
// extract line for the same backorder event is not double-counted, then
// quantities are summed under case-normalized keys. Duplicate detection
// compares the raw rows: two rows that differ only in casing are distinct
// extract lines, even though they sum into the same key. Input order does
// not affect the result.
func AggregateBackorders(records []BackorderRecord, customerNo string) map[ProductShipto]int64 {
	customer := strings.TrimSpace(customerNo)

	seen := make(map[BackorderRecord]struct{}, len(records))
	agg := make(map[ProductShipto]int64)

	for _, r := range records {
		if strings.TrimSpace(r.CustomerNo) != customer {
			continue
		}

		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}

		key := ProductShipto{
			Product: strings.ToUpper(strings.TrimSpace(r.Product)),
			Shipto:  strings.ToUpper(strings.TrimSpace(r.Shipto)),
		}
		agg[key] += r.Qty
	}

	return agg
}
