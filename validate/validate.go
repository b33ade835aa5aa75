package validate

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BaSui01/specform/spec"
)

// Kind tags the validation error kinds. They are collected, never raised.
type Kind string

const (
	MissingRequiredField Kind = "missing_required_field"
	TypeMismatch         Kind = "type_mismatch"
	InvalidEnumValue     Kind = "invalid_enum_value"
)

// Error is one violation of the spec by the data.
type Error struct {
	Kind       Kind
	Identifier string
	Path       string

	// Expected, Value and ValueKind are set for TypeMismatch.
	Expected  string
	Value     any
	ValueKind string

	// Allowed lists the sorted enum keys for InvalidEnumValue.
	Allowed []string
}

func (e Error) Error() string {
	switch e.Kind {
	case MissingRequiredField:
		return fmt.Sprintf("%s: required field %q is missing", e.Kind, e.Identifier)
	case TypeMismatch:
		return fmt.Sprintf("%s: field %q expected %s, got %s (%v)", e.Kind, e.Identifier, e.Expected, e.ValueKind, e.Value)
	case InvalidEnumValue:
		return fmt.Sprintf("%s: field %q value %v is not one of %v", e.Kind, e.Identifier, e.Value, e.Allowed)
	default:
		return fmt.Sprintf("%s: field %q", e.Kind, e.Identifier)
	}
}

// Report is the exhaustive result of validating data against a spec. Valid
// is true iff no errors were collected across all fields.
type Report struct {
	Valid  bool
	Errors []Error
}

// Validate checks data against every field of s. All fields run all
// checks; nothing short-circuits.
func Validate(s *spec.Spec, data any) Report {
	v := &validator{spec: s, containers: containerPaths(s)}
	for _, f := range s.Fields {
		v.checkField(f, data)
	}
	return Report{Valid: len(v.errors) == 0, Errors: v.errors}
}

type validator struct {
	spec       *spec.Spec
	containers [][]string
	errors     []Error
}

// containerPaths lists the segment paths of Many fields that own nested
// child fields, outermost first.
func containerPaths(s *spec.Spec) [][]string {
	var out [][]string
	for _, f := range s.Fields {
		if f.Cardinality != spec.Many {
			continue
		}
		segs := identifierSegments(f)
		for _, other := range s.Fields {
			if other.Identifier == f.Identifier {
				continue
			}
			if isStrictPrefix(segs, identifierSegments(other)) {
				out = append(out, segs)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return len(out[i]) < len(out[j]) })
	return out
}

func (v *validator) checkField(f spec.Field, data any) {
	segs := identifierSegments(f)
	path := strings.Join(spec.PathSegments(f.Identifier), ".")

	if v.containerFor(segs) != nil {
		values := v.extractAll(data, segs, 0)

		allNil := true
		anyNil := len(values) == 0
		for _, val := range values {
			if val == nil {
				anyNil = true
			} else {
				allNil = false
			}
		}
		// One presence error covers the field however many elements
		// lack a value.
		if anyNil && !f.Optional {
			v.errors = append(v.errors, Error{Kind: MissingRequiredField, Identifier: f.Identifier, Path: path})
		}
		if !allNil {
			v.checkNestedValues(f, path, values)
		}
		return
	}

	value := v.walk(data, segs)
	if value == nil {
		if !f.Optional {
			v.errors = append(v.errors, Error{Kind: MissingRequiredField, Identifier: f.Identifier, Path: path})
		}
		return
	}
	v.checkType(f, path, value)
	v.checkEnum(f, path, value)
}

// extractAll resolves the path from segs[i] on to its leaf values,
// descending into every element of each declared container crossed on the
// way and flattening the results. Absent steps extract as nil.
func (v *validator) extractAll(value any, segs []string, i int) []any {
	for i < len(segs) {
		m, ok := value.(map[string]any)
		if !ok {
			return []any{nil}
		}
		value, ok = v.lookup(m, segs[i])
		if !ok {
			return []any{nil}
		}
		i++
		if i < len(segs) && v.isContainerPath(segs[:i]) {
			arr, ok := value.([]any)
			if !ok {
				return []any{nil}
			}
			var out []any
			for _, elem := range arr {
				out = append(out, v.extractAll(elem, segs, i)...)
			}
			return out
		}
	}
	return []any{value}
}

// checkNestedValues checks array-extracted leaf values element-wise
// against the scalar and enum rules, at most one error per check. A field
// that is itself a declared container only needs each value to be a
// sequence; its children validate their own shape.
func (v *validator) checkNestedValues(f spec.Field, path string, values []any) {
	if v.isContainer(f) {
		for _, val := range values {
			if val == nil {
				continue
			}
			if _, ok := val.([]any); !ok {
				v.errors = append(v.errors, Error{
					Kind: TypeMismatch, Identifier: f.Identifier, Path: path,
					Expected: "sequence", Value: val, ValueKind: kindOf(val),
				})
				break
			}
		}
		return
	}
	for _, val := range values {
		if val == nil {
			continue
		}
		if !checkScalar(f.Type, val) {
			v.errors = append(v.errors, Error{
				Kind: TypeMismatch, Identifier: f.Identifier, Path: path,
				Expected: f.Type.Token(), Value: val, ValueKind: kindOf(val),
			})
			break
		}
	}
	if f.Enum == nil {
		return
	}
	allowed := sortedKeys(f.Enum)
	for _, val := range values {
		if val == nil {
			continue
		}
		if bad, ok := firstDisallowed(val, f.Enum); ok {
			v.errors = append(v.errors, Error{
				Kind: InvalidEnumValue, Identifier: f.Identifier, Path: path,
				Value: bad, Allowed: allowed,
			})
			break
		}
	}
}

func (v *validator) checkType(f spec.Field, path string, value any) {
	// A Many container with declared children only needs to be a
	// sequence; its children validate their own shape.
	if v.isContainer(f) {
		if _, ok := value.([]any); !ok {
			v.errors = append(v.errors, Error{
				Kind: TypeMismatch, Identifier: f.Identifier, Path: path,
				Expected: "sequence", Value: value, ValueKind: kindOf(value),
			})
		}
		return
	}

	// Fixed vectors validate as a single sized vector regardless of
	// cardinality, matching the suppressed array suffix in rendering.
	if f.Type.IsVector() {
		if !checkScalar(f.Type, value) {
			v.errors = append(v.errors, Error{
				Kind: TypeMismatch, Identifier: f.Identifier, Path: path,
				Expected: f.Type.Token(), Value: value, ValueKind: kindOf(value),
			})
		}
		return
	}

	if f.Cardinality == spec.Many {
		seq, ok := value.([]any)
		if !ok {
			v.errors = append(v.errors, Error{
				Kind: TypeMismatch, Identifier: f.Identifier, Path: path,
				Expected: f.Type.Token() + "[]", Value: value, ValueKind: kindOf(value),
			})
			return
		}
		for _, elem := range seq {
			if elem != nil && !checkScalar(f.Type, elem) {
				v.errors = append(v.errors, Error{
					Kind: TypeMismatch, Identifier: f.Identifier, Path: path,
					Expected: f.Type.Token() + "[]", Value: elem, ValueKind: kindOf(elem),
				})
				return
			}
		}
		return
	}

	if !checkScalar(f.Type, value) {
		v.errors = append(v.errors, Error{
			Kind: TypeMismatch, Identifier: f.Identifier, Path: path,
			Expected: f.Type.Token(), Value: value, ValueKind: kindOf(value),
		})
	}
}

func (v *validator) checkEnum(f spec.Field, path string, value any) {
	if f.Enum == nil {
		return
	}
	if bad, ok := firstDisallowed(value, f.Enum); ok {
		v.errors = append(v.errors, Error{
			Kind: InvalidEnumValue, Identifier: f.Identifier, Path: path,
			Value: bad, Allowed: sortedKeys(f.Enum),
		})
	}
}

// firstDisallowed returns the first value not among the enum keys,
// iterating sequences element-wise.
func firstDisallowed(value any, enum map[string]string) (any, bool) {
	if seq, ok := value.([]any); ok {
		for _, elem := range seq {
			if elem == nil {
				continue
			}
			if bad, found := firstDisallowed(elem, enum); found {
				return bad, true
			}
		}
		return nil, false
	}
	s, ok := enumString(value)
	if !ok {
		return value, true
	}
	if _, allowed := enum[s]; !allowed {
		return value, true
	}
	return nil, false
}

func enumString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case spec.Keyword:
		return string(v), true
	}
	return "", false
}

// containerFor finds the outermost declared container path that is a
// strict prefix of segs.
func (v *validator) containerFor(segs []string) []string {
	for _, c := range v.containers {
		if isStrictPrefix(c, segs) {
			return c
		}
	}
	return nil
}

func (v *validator) isContainer(f spec.Field) bool {
	return v.isContainerPath(identifierSegments(f))
}

func (v *validator) isContainerPath(segs []string) bool {
	for _, c := range v.containers {
		if segsEqual(c, segs) {
			return true
		}
	}
	return false
}

func segsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if spec.WireName(a[i]) != spec.WireName(b[i]) {
			return false
		}
	}
	return true
}

// walk descends segment by segment, nil as soon as any step is absent.
// Keys are tried in source form, wire form, and namespaced form, so both
// raw and fully decoded data validate.
func (v *validator) walk(value any, segs []string) any {
	cur := value
	for _, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = v.lookup(m, seg)
		if !ok {
			return nil
		}
	}
	return cur
}

func (v *validator) lookup(m map[string]any, seg string) (any, bool) {
	if val, ok := m[seg]; ok {
		return val, true
	}
	if val, ok := m[spec.WireName(seg)]; ok {
		return val, true
	}
	if ns := v.spec.KeyNamespace; ns != "" {
		if val, ok := m[ns+"/"+seg]; ok {
			return val, true
		}
		if val, ok := m[ns+"/"+spec.WireName(seg)]; ok {
			return val, true
		}
	}
	return nil, false
}

func identifierSegments(f spec.Field) []string {
	ns, leaf := spec.SplitIdentifier(f.Identifier)
	return append(append([]string(nil), ns...), leaf)
}

func isStrictPrefix(prefix, segs []string) bool {
	if len(prefix) >= len(segs) {
		return false
	}
	for i, seg := range prefix {
		if spec.WireName(segs[i]) != spec.WireName(seg) {
			return false
		}
	}
	return true
}

// checkScalar applies the scalar and fixed-vector type rules, ignoring
// cardinality.
func checkScalar(t spec.FieldType, value any) bool {
	switch t.Kind {
	case spec.KindString:
		_, ok := value.(string)
		return ok
	case spec.KindInt:
		return isInteger(value)
	case spec.KindFloat:
		return isNumber(value)
	case spec.KindBool:
		_, ok := value.(bool)
		return ok
	case spec.KindDate:
		if _, ok := value.(spec.Date); ok {
			return true
		}
		s, ok := value.(string)
		if !ok {
			return false
		}
		_, err := spec.ParseDate(s)
		return err == nil
	case spec.KindDateTime:
		if _, ok := value.(time.Time); ok {
			return true
		}
		s, ok := value.(string)
		if !ok {
			return false
		}
		_, err := time.Parse(time.RFC3339, s)
		return err == nil
	case spec.KindKeyword:
		_, ok := enumString(value)
		return ok
	case spec.KindRef:
		_, ok := value.(map[string]any)
		return ok
	case spec.KindVector:
		seq, ok := value.([]any)
		if !ok || len(seq) != t.VecSize {
			return false
		}
		base := spec.FieldType{Kind: t.VecBase}
		for _, elem := range seq {
			if !checkScalar(base, elem) {
				return false
			}
		}
		return true
	}
	return false
}

func isInteger(value any) bool {
	switch v := value.(type) {
	case int, int32, int64:
		return true
	case float64:
		return v == math.Trunc(v)
	}
	return false
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int32, int64, float32, float64:
		return true
	}
	return false
}

func kindOf(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int32, int64:
		return "integer"
	case float32, float64:
		return "number"
	case spec.Keyword:
		return "keyword"
	case spec.Date:
		return "date"
	case time.Time:
		return "datetime"
	case []any:
		return "sequence"
	case map[string]any:
		return "structure"
	}
	return fmt.Sprintf("%T", value)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
