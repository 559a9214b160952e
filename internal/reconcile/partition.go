package reconcile

// Partition groups reconciled lines under a document key. Keys holds
// first-seen order and each group preserves the joined table's row order;
// any presentation sorting belongs to the renderer.
type Partition struct {
	Keys   []string
	Groups map[string][]ReconciledOrderLine
}

func partitionBy(lines []ReconciledOrderLine, key func(ReconciledOrderLine) string) Partition {
	p := Partition{Groups: make(map[string][]ReconciledOrderLine)}
	for _, line := range lines {
		k := key(line)
		if _, ok := p.Groups[k]; !ok {
			p.Keys = append(p.Keys, k)
		}
		p.Groups[k] = append(p.Groups[k], line)
	}
	return p
}

// PartitionByAlias groups lines by shipto alias for the quote documents, one
// workbook per alias.
func PartitionByAlias(lines []ReconciledOrderLine) Partition {
	return partitionBy(lines, func(l ReconciledOrderLine) string { return l.ShiptoAlias })
}

// PartitionByShipto groups lines by canonical shipto for the OE upload
// document, one sheet per shipto. The two partitions are computed
// independently: the alias map may merge several shiptos under one alias or
// split one shipto across aliases, so neither grouping is derivable from the
// other.
func PartitionByShipto(lines []ReconciledOrderLine) Partition {
	return partitionBy(lines, func(l ReconciledOrderLine) string { return l.Shipto })
}
