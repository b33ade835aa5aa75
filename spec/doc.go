// Copyright 2026 SpecForm Authors
// Use of this source code is governed by the project license.

/*
Package spec models structured-output schemas: typed, namespaced field
definitions grouped into specs that may reference other specs.

# Main types

  - Field / FieldOptions — a named, typed, cardinality-tagged schema slot
    with a description and optional enum, optionality and ref constraints
  - Spec / Options — an ordered field list with optional named sub-spec
    references and a key namespace
  - Registry — flattened name -> spec index over the transitive reference set
  - RefPartition — hoisted / inlined / unused split of references by usage
  - IdentifierMapping — wire key -> source identifier restoration table

# Path algebra

Identifiers are dotted paths whose last segment (the leaf) may carry the
reserved punctuation set "?!*+". The punctuation is legal in source
identifiers but invalid on the wire; PathOf, SplitIdentifier, WireName,
GroupByNamespace and BuildPathTree convert between the two worlds and
arrange flat field lists into namespace trees.

All values are constructed once, validated fail-fast, and never mutated.
Derived structures (registry, usage counts, partitions, mappings) are pure
functions recomputed per call.
*/
package spec
