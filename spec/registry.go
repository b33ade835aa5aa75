package spec

// Registry indexes every spec reachable through refs by name.
type Registry map[string]*Spec

// BuildRegistry recursively merges each ref's own refs into a flat
// name -> spec index. It fails with an ErrDuplicateSpecName error on the
// first name shared by two definitions anywhere in the transitive set,
// reporting both.
func BuildRegistry(s *Spec) (Registry, error) {
	reg := make(Registry)
	if err := mergeRefs(s, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func mergeRefs(s *Spec, into Registry) error {
	for _, ref := range s.Refs {
		if prev, ok := into[ref.Name]; ok {
			return duplicateSpecName(ref.Name, prev, ref)
		}
		into[ref.Name] = ref
		if err := mergeRefs(ref, into); err != nil {
			return err
		}
	}
	return nil
}

// RefOrder returns every spec reachable through refs in declaration-order
// depth-first walk order. It assumes the registry built without collisions.
func RefOrder(s *Spec) []*Spec {
	var out []*Spec
	var walk func(*Spec)
	walk = func(sp *Spec) {
		for _, ref := range sp.Refs {
			out = append(out, ref)
			walk(ref)
		}
	}
	walk(s)
	return out
}
