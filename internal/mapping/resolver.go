package mapping

import "shopclean/internal"

type nameEntry struct {
	name    string
	exclude bool
}

// Resolver decides the final product identity for a line item. Product
// codes are authoritative when present and known; free-text item names are
// noisy (typos, renamed SKUs, bundles) and are matched only as a fallback
// against the curated synonym table.
type Resolver struct {
	codes map[string]string
	names map[string]nameEntry
}

func NewResolver(tables Tables) *Resolver {
	r := &Resolver{
		codes: make(map[string]string, len(tables.ProductCodes)),
		names: make(map[string]nameEntry, len(tables.ItemNames)),
	}
	for code, name := range tables.ProductCodes {
		r.codes[code] = name
	}
	for raw, mapped := range tables.ItemNames {
		r.names[raw] = nameEntry{name: mapped, exclude: mapped == excludeMarker}
	}
	return r
}

// Resolve applies code mapping, then name mapping, then falls through with
// the raw values. Lookups are exact-match and case-sensitive.
func (r *Resolver) Resolve(productCode, parsedName string) internal.Resolution {
	if productCode != "" {
		if mapped, ok := r.codes[productCode]; ok {
			return internal.Resolution{Code: productCode, Name: mapped, Outcome: internal.ResolvedByCode}
		}
	}

	if entry, ok := r.names[parsedName]; ok {
		if entry.exclude {
			return internal.Resolution{Outcome: internal.ResolvedExcluded}
		}
		return internal.Resolution{Code: codeOrSentinel(productCode), Name: entry.name, Outcome: internal.ResolvedByName}
	}

	return internal.Resolution{Code: codeOrSentinel(productCode), Name: parsedName, Outcome: internal.ResolvedUnmapped}
}

// KnownCode reports whether the code map carries the given product code.
func (r *Resolver) KnownCode(productCode string) bool {
	_, ok := r.codes[productCode]
	return ok
}

func codeOrSentinel(productCode string) string {
	if productCode == "" {
		return internal.NoCode
	}
	return productCode
}
