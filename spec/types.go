package spec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind enumerates the scalar field kinds plus the ref and fixed-vector forms.
type Kind string

const (
	KindString   Kind = "string"
	KindInt      Kind = "int"
	KindFloat    Kind = "float"
	KindBool     Kind = "bool"
	KindDate     Kind = "date"
	KindDateTime Kind = "datetime"
	KindKeyword  Kind = "keyword"
	KindRef      Kind = "ref"
	KindVector   Kind = "vector"
)

// Cardinality says whether a field holds one value or a sequence of values.
type Cardinality string

const (
	One  Cardinality = "one"
	Many Cardinality = "many"
)

// FieldType is a parsed field type: a scalar kind, a ref, or a fixed-size
// vector of a base kind. The zero value is invalid.
type FieldType struct {
	Kind Kind

	// VecBase and VecSize are set only when Kind is KindVector.
	// A "double" base normalizes to KindFloat.
	VecBase Kind
	VecSize int
}

var scalarKinds = map[Kind]bool{
	KindString:   true,
	KindInt:      true,
	KindFloat:    true,
	KindBool:     true,
	KindDate:     true,
	KindDateTime: true,
	KindKeyword:  true,
}

var vectorBases = map[string]Kind{
	"int":    KindInt,
	"string": KindString,
	"double": KindFloat,
}

// ParseType parses a type token such as "string", "ref" or "int-v-3".
func ParseType(token string) (FieldType, error) {
	if token == "" {
		return FieldType{}, fmt.Errorf("type is required")
	}
	k := Kind(token)
	if scalarKinds[k] || k == KindRef {
		return FieldType{Kind: k}, nil
	}
	if base, rest, ok := strings.Cut(token, "-v-"); ok {
		vecBase, known := vectorBases[base]
		if !known {
			return FieldType{}, fmt.Errorf("vector base %q must be one of int, string, double", base)
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			return FieldType{}, fmt.Errorf("vector size %q must be a positive integer", rest)
		}
		return FieldType{Kind: KindVector, VecBase: vecBase, VecSize: n}, nil
	}
	return FieldType{}, fmt.Errorf("unknown type token %q", token)
}

// IsVector reports whether the type is a fixed-size vector.
func (t FieldType) IsVector() bool { return t.Kind == KindVector }

// Token renders the wire type token for a scalar or vector type.
// Date, datetime and keyword have no native wire equivalent and render as
// string; ref tokens depend on target names and are composed by the renderer.
func (t FieldType) Token() string {
	switch t.Kind {
	case KindString, KindDate, KindDateTime, KindKeyword:
		return "string"
	case KindInt, KindFloat, KindBool:
		return string(t.Kind)
	case KindVector:
		base := FieldType{Kind: t.VecBase}.Token()
		return fmt.Sprintf("%s[%d]", base, t.VecSize)
	default:
		return string(t.Kind)
	}
}

// Keyword is a symbolic token decoded from a keyword-typed field.
type Keyword string

func (k Keyword) String() string { return string(k) }

// Date is a civil date without a time component or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time.Time to its civil date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses an ISO "2006-01-02" date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// String renders the ISO form, e.g. "2024-07-01".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// RefTarget names the spec(s) a ref-typed field points at: a single name or
// an ordered union of names. Both forms normalize to an ordered name list.
type RefTarget struct {
	names []string
	union bool
}

// RefTo targets a single named spec.
func RefTo(name string) RefTarget {
	return RefTarget{names: []string{name}}
}

// RefToAny targets an ordered union of named specs.
func RefToAny(names ...string) RefTarget {
	return RefTarget{names: append([]string(nil), names...), union: true}
}

// Names returns the ordered target names.
func (r RefTarget) Names() []string {
	return append([]string(nil), r.names...)
}

// IsUnion reports whether the target was declared as a union.
func (r RefTarget) IsUnion() bool { return r.union }

// IsZero reports whether no target was declared.
func (r RefTarget) IsZero() bool { return len(r.names) == 0 }
