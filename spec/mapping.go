package spec

import "fmt"

// IdentifierMapping maps wire keys back to the source leaf they were
// stripped from. Only leaves that actually required stripping get an entry.
type IdentifierMapping map[string]string

// BuildIdentifierMapping collects the restoration table for a spec and
// every spec in its registry. Decoding rewrites keys at every depth, so the
// table spans all reachable specs. When two distinct leaves strip to the
// same wire key the first mapping wins and a warning is returned.
func BuildIdentifierMapping(s *Spec, reg Registry) (IdentifierMapping, []string) {
	m := make(IdentifierMapping)
	var warnings []string

	add := func(fields []Field) {
		for _, f := range fields {
			leaf := f.Leaf()
			wire := WireName(leaf)
			if wire == leaf {
				continue
			}
			if prev, ok := m[wire]; ok {
				if prev != leaf {
					warnings = append(warnings, fmt.Sprintf(
						"identifier mapping collision on wire key %q: keeping %q, ignoring %q", wire, prev, leaf))
				}
				continue
			}
			m[wire] = leaf
		}
	}

	add(s.Fields)
	for _, ref := range RefOrder(s) {
		add(ref.Fields)
	}
	return m, warnings
}
