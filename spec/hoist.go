package spec

// RefPartition splits a spec's transitive references by usage. Hoisted refs
// (two or more usages) render once, named, and are referenced elsewhere by
// name; inlined refs (exactly one usage) render once as their own anonymous
// block; unused refs are dropped from output entirely.
//
// Hoisting exists to bound prompt size when multiple fields share a
// sub-schema.
type RefPartition struct {
	Hoisted []*Spec
	Inlined []*Spec
	Unused  []*Spec
}

// CountRefUsages counts, for every registered spec, how many ref-field
// targets name it across the main spec and every registered spec. Each
// target in a union list contributes one count, not one per field.
func CountRefUsages(s *Spec, reg Registry) map[string]int {
	counts := make(map[string]int, len(reg))
	for name := range reg {
		counts[name] = 0
	}
	countFieldTargets(s.Fields, counts)
	for _, ref := range RefOrder(s) {
		countFieldTargets(ref.Fields, counts)
	}
	return counts
}

func countFieldTargets(fields []Field, counts map[string]int) {
	for _, f := range fields {
		for _, target := range f.Ref.Names() {
			counts[target]++
		}
	}
}

// PartitionRefs partitions the transitive reference set by usage count,
// preserving declaration-order walk order within each group.
func PartitionRefs(s *Spec, reg Registry) RefPartition {
	counts := CountRefUsages(s, reg)
	var p RefPartition
	for _, ref := range RefOrder(s) {
		switch n := counts[ref.Name]; {
		case n >= 2:
			p.Hoisted = append(p.Hoisted, ref)
		case n == 1:
			p.Inlined = append(p.Inlined, ref)
		default:
			p.Unused = append(p.Unused, ref)
		}
	}
	return p
}
