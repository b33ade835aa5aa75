package spec

// Options configures New beyond the field list.
type Options struct {
	// Refs are the specs this spec's ref fields may target. Each must
	// carry a name. Their fields are not flattened into this spec.
	Refs []*Spec

	// KeyNamespace, when set, is prefixed onto every decoded key of this
	// spec's substructure.
	KeyNamespace string
}

// Spec is an immutable, validated schema: an ordered field list plus
// optional named sub-spec references. Construct with New.
type Spec struct {
	// Name is optional for a top-level spec but required for refs.
	Name string

	Fields []Field

	Refs []*Spec

	KeyNamespace string
}

// New validates and builds a Spec. It fails with an ErrInvalidSpec error
// when a ref lacks a name, a ref field targets a spec absent from the
// supplied refs, or a single-valued field shares its wire path with other
// fields' namespace.
func New(name string, opts Options, fields ...Field) (*Spec, error) {
	refNames := make(map[string]bool, len(opts.Refs))
	for _, ref := range opts.Refs {
		if ref == nil || ref.Name == "" {
			return nil, invalidSpec("every ref must carry a name", name,
				"give each referenced spec a non-empty name")
		}
		refNames[ref.Name] = true
	}

	for _, f := range fields {
		for _, target := range f.Ref.Names() {
			if !refNames[target] {
				return nil, invalidSpec("ref field targets an unknown spec", f.Identifier,
					"add a spec named \""+target+"\" to Options.Refs")
			}
		}
	}

	// A field may own nested child fields only when it is many-valued;
	// a single-valued field sharing its wire path with a namespace would
	// claim the same key twice.
	for _, f := range fields {
		if f.Cardinality == Many {
			continue
		}
		segs := PathSegments(f.Identifier)
		for _, other := range fields {
			if f.Identifier == other.Identifier {
				continue
			}
			if isPathPrefix(segs, PathSegments(other.Identifier)) {
				return nil, invalidSpec("single-valued field clashes with nested fields under the same name", f.Identifier,
					"make \""+f.Identifier+"\" many-valued or rename the nested fields")
			}
		}
	}

	return &Spec{
		Name:         name,
		Fields:       append([]Field(nil), fields...),
		Refs:         append([]*Spec(nil), opts.Refs...),
		KeyNamespace: opts.KeyNamespace,
	}, nil
}

func isPathPrefix(prefix, segs []string) bool {
	if len(prefix) >= len(segs) {
		return false
	}
	for i, seg := range prefix {
		if segs[i] != seg {
			return false
		}
	}
	return true
}

// ManyFields returns the fields with Many cardinality, in declaration order.
func (s *Spec) ManyFields() []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Cardinality == Many {
			out = append(out, f)
		}
	}
	return out
}
