package reconcile

// Normalizer canonicalizes shipto aliases and resolves substitute SKUs
// against the product reference table.
type Normalizer struct {
	aliases map[string]string
	ref     ReferenceTable
}

// NewNormalizer builds a normalizer from the configured alias map and the
// loaded product reference table. Either may be nil or empty.
func NewNormalizer(aliases map[string]string, ref ReferenceTable) *Normalizer {
	if aliases == nil {
		aliases = map[string]string{}
	}
	if ref == nil {
		ref = ReferenceTable{}
	}
	return &Normalizer{aliases: aliases, ref: ref}
}

// CanonicalShipto maps a scanned shipto alias to its canonical code. An
// unmapped value passes through unchanged.
func (n *Normalizer) CanonicalShipto(raw string) string {
	if canonical, ok := n.aliases[raw]; ok && canonical != "" {
		return canonical
	}
	return raw
}

// ResolveProduct looks up the counted product in the reference table and
// returns the code to order under, the reference row, and whether a row was
// found. Description and price always come from the counted product's row;
// only the ordered code is replaced when a substitute SKU is designated.
func (n *Normalizer) ResolveProduct(code string) (string, ProductReference, bool) {
	ref, ok := n.ref[code]
	if !ok {
		return code, ProductReference{}, false
	}
	if ref.AltProduct != "" {
		return ref.AltProduct, ref, true
	}
	return code, ref, true
}
