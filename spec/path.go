package spec

import (
	"sort"
	"strings"
)

// SplitIdentifier decomposes a dotted identifier into its namespace
// segments and leaf. Dots separate namespace segments only; the leaf never
// contains one.
func SplitIdentifier(id string) (namespace []string, leaf string) {
	segs := strings.Split(id, ".")
	return segs[:len(segs)-1], segs[len(segs)-1]
}

// WireName strips the reserved punctuation set from a leaf, producing the
// key used on the wire.
func WireName(leaf string) string {
	return strings.TrimRight(leaf, ReservedChars)
}

// PathOf converts an identifier to its dotted wire path: namespace segments
// unchanged, leaf stripped of reserved punctuation.
func PathOf(id string) string {
	return strings.Join(PathSegments(id), ".")
}

// PathSegments returns the wire path of an identifier as a segment list.
func PathSegments(id string) []string {
	ns, leaf := SplitIdentifier(id)
	return append(append([]string(nil), ns...), WireName(leaf))
}

// GroupByNamespace maps each dotted namespace path ("" for the root) to the
// fields declared exactly there, each renamed to its simple leaf name.
// Grouping is exact: a field at the root and one under "a" are siblings at
// different depths, never merged.
func GroupByNamespace(fields []Field) map[string][]Field {
	grouped := make(map[string][]Field)
	for _, f := range fields {
		ns, leaf := SplitIdentifier(f.Identifier)
		key := strings.Join(ns, ".")
		renamed := f
		renamed.Identifier = leaf
		grouped[key] = append(grouped[key], renamed)
	}
	return grouped
}

// PathTree arranges grouped fields into a namespace tree: the fields
// declared at this node plus named child subtrees.
type PathTree struct {
	Fields   []Field
	Children map[string]*PathTree
}

// BuildPathTree builds a namespace tree bottom-up from a GroupByNamespace
// result.
func BuildPathTree(grouped map[string][]Field) *PathTree {
	root := &PathTree{Children: make(map[string]*PathTree)}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		node := root
		if key != "" {
			for _, seg := range strings.Split(key, ".") {
				child, ok := node.Children[seg]
				if !ok {
					child = &PathTree{Children: make(map[string]*PathTree)}
					node.Children[seg] = child
				}
				node = child
			}
		}
		node.Fields = append(node.Fields, grouped[key]...)
	}
	return root
}

// ChildNames returns the child subtree names in lexicographic order.
func (t *PathTree) ChildNames() []string {
	names := make([]string, 0, len(t.Children))
	for name := range t.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
