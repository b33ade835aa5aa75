package decode

import (
	"fmt"
	"strings"

	"github.com/BaSui01/specform/lenientjson"
	"github.com/BaSui01/specform/spec"
)

// UnparsableResponseError is the fatal decode failure: no value could be
// recovered from the response text at all.
type UnparsableResponseError struct {
	Raw string
	Err error
}

func (e *UnparsableResponseError) Error() string {
	return fmt.Sprintf("unparsable response: %v", e.Err)
}

func (e *UnparsableResponseError) Unwrap() error { return e.Err }

// Decode parses text and restores it to the shape of s: wire keys back to
// source identifiers, keyword fields retyped to symbolic tokens, key
// namespaces applied. Warnings report recoverable parser repairs and
// shape adjustments; they never affect success.
func Decode(text string, s *spec.Spec) (any, []string, error) {
	reg, err := spec.BuildRegistry(s)
	if err != nil {
		return nil, nil, err
	}

	value, parseWarnings, err := lenientjson.Parse(text)
	if err != nil {
		return nil, nil, &UnparsableResponseError{Raw: text, Err: err}
	}
	warnings := make([]string, 0, len(parseWarnings))
	for _, w := range parseWarnings {
		warnings = append(warnings, w.Message)
	}

	value, wrapped := autoWrap(value, s)
	if wrapped {
		warnings = append(warnings, "auto-wrapped bare sequence under the spec's single many-valued field")
	}

	mapping, mapWarnings := spec.BuildIdentifierMapping(s, reg)
	warnings = append(warnings, mapWarnings...)
	value = restoreIdentifiers(value, mapping)

	value = retypeKeywords(value, keywordFields(s, reg))

	value = applyNamespaces(value, s, reg)

	return value, warnings, nil
}

// ParseOnly runs the lenient parse stage alone: no wrapping, restoration,
// retyping or namespacing.
func ParseOnly(text string) (any, []string, error) {
	value, parseWarnings, err := lenientjson.Parse(text)
	if err != nil {
		return nil, nil, &UnparsableResponseError{Raw: text, Err: err}
	}
	warnings := make([]string, 0, len(parseWarnings))
	for _, w := range parseWarnings {
		warnings = append(warnings, w.Message)
	}
	return value, warnings, nil
}

// autoWrap handles models answering a bare list when the schema named the
// field: a parsed sequence is wrapped under the spec's single Many field.
func autoWrap(value any, s *spec.Spec) (any, bool) {
	seq, ok := value.([]any)
	if !ok {
		return value, false
	}
	manyFields := s.ManyFields()
	if len(manyFields) != 1 {
		return value, false
	}

	// Wrap along the field's wire path so identifier restoration applies
	// uniformly afterwards.
	segments := spec.PathSegments(manyFields[0].Identifier)
	var wrapped any = seq
	for i := len(segments) - 1; i >= 0; i-- {
		wrapped = map[string]any{segments[i]: wrapped}
	}
	return wrapped, true
}

// restoreIdentifiers recursively rewrites structure keys from wire form to
// source identifiers. Unmapped keys pass through unchanged; scalars are
// untouched.
func restoreIdentifiers(value any, mapping spec.IdentifierMapping) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			if original, ok := mapping[key]; ok {
				key = original
			}
			out[key] = restoreIdentifiers(inner, mapping)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = restoreIdentifiers(inner, mapping)
		}
		return out
	default:
		return value
	}
}

// keywordFields collects leaf name -> cardinality for every keyword-typed
// field of the main spec and of every spec named by a ref field, targets
// being normalized union lists.
func keywordFields(s *spec.Spec, reg spec.Registry) map[string]spec.Cardinality {
	out := make(map[string]spec.Cardinality)
	add := func(fields []spec.Field) {
		for _, f := range fields {
			if f.Type.Kind == spec.KindKeyword {
				out[f.Leaf()] = f.Cardinality
			}
		}
	}
	add(s.Fields)
	seen := make(map[string]bool)
	var visit func(fields []spec.Field)
	visit = func(fields []spec.Field) {
		for _, f := range fields {
			for _, target := range f.Ref.Names() {
				if seen[target] {
					continue
				}
				seen[target] = true
				if ts, ok := reg[target]; ok {
					add(ts.Fields)
					visit(ts.Fields)
				}
			}
		}
	}
	visit(s.Fields)
	return out
}

// retypeKeywords converts string values under keyword field names to
// symbolic tokens, element-wise for Many cardinality.
func retypeKeywords(value any, fields map[string]spec.Cardinality) any {
	if len(fields) == 0 {
		return value
	}
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			if card, ok := fields[key]; ok {
				out[key] = retypeKeywordValue(inner, card)
				continue
			}
			out[key] = retypeKeywords(inner, fields)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = retypeKeywords(inner, fields)
		}
		return out
	default:
		return value
	}
}

func retypeKeywordValue(value any, card spec.Cardinality) any {
	if card == spec.Many {
		seq, ok := value.([]any)
		if !ok {
			return value
		}
		out := make([]any, len(seq))
		for i, e := range seq {
			if s, ok := e.(string); ok {
				out[i] = spec.Keyword(s)
			} else {
				out[i] = e
			}
		}
		return out
	}
	if s, ok := value.(string); ok {
		return spec.Keyword(s)
	}
	return value
}

// applyNamespaces prefixes decoded keys with the owning spec's key
// namespace: union ref members first, selected by their "type"
// discriminator, then the main spec's own namespace over the whole value.
func applyNamespaces(value any, s *spec.Spec, reg spec.Registry) any {
	value = applyMemberNamespaces(value, s, reg)
	if s.KeyNamespace != "" {
		value = prefixKeys(value, s.KeyNamespace)
	}
	return value
}

func applyMemberNamespaces(value any, s *spec.Spec, reg spec.Registry) any {
	for _, f := range s.Fields {
		if f.Type.Kind != spec.KindRef {
			continue
		}
		ns, leaf := spec.SplitIdentifier(f.Identifier)
		applyMemberAt(value, ns, leaf, f, reg)
	}
	return value
}

// applyMemberAt walks the field's namespace segments down to the structure
// holding the ref value, descending into sequence elements along the way,
// and rewrites the value in place.
func applyMemberAt(value any, ns []string, leaf string, f spec.Field, reg spec.Registry) {
	switch v := value.(type) {
	case []any:
		for _, elem := range v {
			applyMemberAt(elem, ns, leaf, f, reg)
		}
	case map[string]any:
		if len(ns) > 0 {
			if inner, ok := v[ns[0]]; ok {
				applyMemberAt(inner, ns[1:], leaf, f, reg)
			}
			return
		}
		inner, ok := v[leaf]
		if !ok {
			return
		}
		switch iv := inner.(type) {
		case map[string]any:
			v[leaf] = namespaceMember(iv, f, reg)
		case []any:
			for i, elem := range iv {
				if m, ok := elem.(map[string]any); ok {
					iv[i] = namespaceMember(m, f, reg)
				}
			}
		}
	}
}

// namespaceMember applies a union member's key namespace when the member
// structure carries a "type" discriminator naming that member.
func namespaceMember(m map[string]any, f spec.Field, reg spec.Registry) any {
	discriminator := ""
	switch t := m["type"].(type) {
	case string:
		discriminator = t
	case spec.Keyword:
		discriminator = string(t)
	}
	if discriminator == "" {
		return m
	}
	for _, target := range f.Ref.Names() {
		if target != discriminator {
			continue
		}
		if ts, ok := reg[target]; ok && ts.KeyNamespace != "" {
			return prefixKeys(m, ts.KeyNamespace)
		}
	}
	return m
}

// prefixKeys rewrites every key at every depth of the substructure to
// "ns/key". Keys that already carry a namespace are left alone.
func prefixKeys(value any, ns string) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			if !strings.Contains(key, "/") {
				key = ns + "/" + key
			}
			out[key] = prefixKeys(inner, ns)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = prefixKeys(inner, ns)
		}
		return out
	default:
		return value
	}
}
