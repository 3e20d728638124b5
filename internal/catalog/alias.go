package catalog

// Aliases maps a normalized schedule title to the catalog title it stands
// for.
type Aliases map[string]string

// NewAliases normalizes the keys of raw.  Empty keys or values are
// dropped.  When two raw keys normalize to the same form the
// lexicographically later raw key wins, so the result does not depend on
// map iteration order.
func NewAliases(raw map[string]string) Aliases {
	out := make(Aliases, len(raw))
	winners := make(map[string]string, len(raw))
	for from, to := range raw {
		k := Normalize(from)
		if k == "" || to == "" {
			continue
		}
		if prev, ok := winners[k]; ok && prev > from {
			continue
		}
		winners[k] = from
		out[k] = to
	}
	return out
}

// Lookup returns the catalog title aliased to title.
func (a Aliases) Lookup(title string) (string, bool) {
	to, ok := a[Normalize(title)]
	return to, ok
}
