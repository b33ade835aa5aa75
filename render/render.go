package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BaSui01/specform/spec"
)

// Render writes a spec as a pseudo-typed schema block: hoisted reference
// blocks, then inlined anonymous blocks, then the main block, separated by
// blank lines. Warnings report refs that no field uses; they are dropped
// from the output. The only error is a reference-registry failure.
func Render(s *spec.Spec) (string, []string, error) {
	reg, err := spec.BuildRegistry(s)
	if err != nil {
		return "", nil, err
	}

	part := spec.PartitionRefs(s, reg)
	var warnings []string
	for _, unused := range part.Unused {
		warnings = append(warnings, fmt.Sprintf("ref %q is not used by any field and was dropped", unused.Name))
	}

	var blocks []string
	for _, ref := range part.Hoisted {
		blocks = append(blocks, renderBlock(ref, ref.Name))
	}
	for _, ref := range part.Inlined {
		blocks = append(blocks, renderBlock(ref, ""))
	}
	blocks = append(blocks, renderBlock(s, s.Name))

	return strings.Join(blocks, "\n\n"), warnings, nil
}

// renderBlock renders one spec as a (possibly anonymous) block.
func renderBlock(s *spec.Spec, name string) string {
	tree := spec.BuildPathTree(spec.GroupByNamespace(s.Fields))

	var b strings.Builder
	if name != "" {
		b.WriteString(name + " ")
	}
	b.WriteString("{\n")
	renderNode(&b, tree, 1)
	b.WriteString("}")
	return b.String()
}

// renderNode renders the fields at one namespace depth followed by its
// child branches. A Many field whose wire leaf names a child branch is an
// array container: it is excluded from the flat pass and rendered as an
// array holding one nested object block.
func renderNode(b *strings.Builder, node *spec.PathTree, depth int) {
	ind := strings.Repeat("  ", depth)

	owners := make(map[string]spec.Field)
	for _, f := range node.Fields {
		if f.Cardinality == spec.Many {
			if _, ok := node.Children[f.WireLeaf()]; ok {
				owners[f.WireLeaf()] = f
			}
		}
	}

	for _, f := range node.Fields {
		if _, isContainer := owners[f.WireLeaf()]; isContainer && f.Cardinality == spec.Many {
			continue
		}
		writeComments(b, ind, f)
		b.WriteString(ind + f.WireLeaf() + ": " + typeToken(f) + ",\n")
	}

	for _, name := range node.ChildNames() {
		child := node.Children[name]
		if owner, ok := owners[name]; ok {
			writeComments(b, ind, owner)
			b.WriteString(ind + name + ": [\n")
			b.WriteString(ind + "  {\n")
			renderNode(b, child, depth+2)
			b.WriteString(ind + "  }\n")
			closing := ind + "]"
			if owner.Optional {
				closing += " or null"
			}
			b.WriteString(closing + ",\n")
		} else {
			b.WriteString(ind + name + ": {\n")
			renderNode(b, child, depth+1)
			b.WriteString(ind + "},\n")
		}
	}
}

// writeComments emits the description comment plus one sorted
// "value: description" line per enum entry.
func writeComments(b *strings.Builder, ind string, f spec.Field) {
	desc := f.Description
	if f.Humanize {
		desc = humanizeLeaf(f.Leaf()) + ": " + desc
	}

	suffix := " (required)"
	if f.Optional {
		suffix = " (optional)"
	}
	switch f.Type.Kind {
	case spec.KindDate:
		suffix += " (format: YYYY-MM-DD)"
	case spec.KindDateTime:
		suffix += " (format: ISO 8601 date and time)"
	case spec.KindVector:
		suffix += fmt.Sprintf(" (exactly %d elements)", f.Type.VecSize)
	}
	b.WriteString(ind + "// " + desc + suffix + "\n")

	for _, value := range sortedEnumValues(f.Enum) {
		b.WriteString(ind + "// " + value + ": " + f.Enum[value] + "\n")
	}
}

// typeToken composes the wire type token for a field: base token, enum or
// ref override, Many suffix, optional suffix, outermost last. Fixed vectors
// never take the Many suffix; their size already encodes array shape.
func typeToken(f spec.Field) string {
	var token string
	switch {
	case f.Enum != nil:
		values := sortedEnumValues(f.Enum)
		quoted := make([]string, len(values))
		for i, v := range values {
			quoted[i] = `"` + v + `"`
		}
		token = strings.Join(quoted, " or ")
	case f.Type.Kind == spec.KindRef:
		token = strings.Join(f.Ref.Names(), " | ")
	default:
		token = f.Type.Token()
	}

	if f.Cardinality == spec.Many && !f.Type.IsVector() {
		token += "[]"
	}
	if f.Optional {
		token += " or null"
	}
	return token
}

func sortedEnumValues(enum map[string]string) []string {
	if len(enum) == 0 {
		return nil
	}
	values := make([]string, 0, len(enum))
	for v := range enum {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// humanizeLeaf renders an identifier leaf as spaced words: punctuation
// stripped, separators spaced, first letter upper-cased.
func humanizeLeaf(leaf string) string {
	s := spec.WireName(leaf)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
