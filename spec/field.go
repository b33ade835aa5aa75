package spec

import (
	"regexp"
	"strings"
)

// ReservedChars is the punctuation set legal at the end of an identifier
// leaf but invalid on the wire and forbidden in descriptions and enums.
const ReservedChars = "?!*+"

var (
	segmentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	leafRe    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*[?!*+]*$`)
)

// FieldOptions configures NewField. Identifier, Type, Cardinality and
// Description are required; the rest default to absent.
type FieldOptions struct {
	// Identifier is a dotted path; only the final segment may carry
	// reserved punctuation.
	Identifier string

	// Type is a type token: a scalar kind ("string", "int", "float",
	// "bool", "date", "datetime", "keyword"), "ref", or a fixed vector
	// "<base>-v-<n>" with base int, string or double.
	Type string

	Cardinality Cardinality

	// Description is emitted as the field's schema comment. It must not
	// contain reserved punctuation.
	Description string

	Optional bool

	// Enum maps each allowed value to its description. Every entry
	// requires a description; keys and descriptions must be free of
	// reserved punctuation.
	Enum map[string]string

	// Ref names the target spec(s); required iff Type is "ref".
	Ref RefTarget

	// Humanize renders the leaf name as spaced words in the schema comment.
	Humanize bool
}

// Field is an immutable, validated schema slot. Construct with NewField.
type Field struct {
	Identifier  string
	Type        FieldType
	Cardinality Cardinality
	Description string
	Optional    bool
	Enum        map[string]string
	Ref         RefTarget
	Humanize    bool
}

// NewField validates opts and builds a Field. It fails with an
// ErrInvalidField error on the first violation found.
func NewField(opts FieldOptions) (Field, error) {
	if opts.Identifier == "" {
		return Field{}, invalidField("identifier is required", nil, "set FieldOptions.Identifier to a dotted path")
	}
	ns, leaf := SplitIdentifier(opts.Identifier)
	if !leafRe.MatchString(leaf) {
		return Field{}, invalidField("identifier leaf is not a valid name", opts.Identifier,
			"leaves are word characters optionally ending in reserved punctuation")
	}
	for _, seg := range ns {
		if !segmentRe.MatchString(seg) {
			return Field{}, invalidField("identifier namespace segment is not a valid name", opts.Identifier,
				"namespace segments are plain word characters; punctuation is only legal on the leaf")
		}
	}

	ft, err := ParseType(opts.Type)
	if err != nil {
		return Field{}, invalidField(err.Error(), opts.Type, "use a scalar kind, \"ref\", or \"<base>-v-<n>\"")
	}

	switch opts.Cardinality {
	case One, Many:
	case "":
		return Field{}, invalidField("cardinality is required", nil, "set FieldOptions.Cardinality to spec.One or spec.Many")
	default:
		return Field{}, invalidField("unknown cardinality", opts.Cardinality, "use spec.One or spec.Many")
	}

	if opts.Description == "" {
		return Field{}, invalidField("description is required", opts.Identifier, "every field carries a schema comment")
	}
	if strings.ContainsAny(opts.Description, ReservedChars) {
		return Field{}, invalidField("description contains a reserved character", opts.Description,
			"descriptions must not use any of "+ReservedChars)
	}

	if ft.Kind == KindRef && opts.Ref.IsZero() {
		return Field{}, invalidField("ref field is missing its target", opts.Identifier,
			"set FieldOptions.Ref with RefTo or RefToAny")
	}
	if ft.Kind != KindRef && !opts.Ref.IsZero() {
		return Field{}, invalidField("ref target given for a non-ref field", opts.Identifier,
			"only fields of type \"ref\" may declare targets")
	}
	for _, name := range opts.Ref.Names() {
		if !segmentRe.MatchString(name) {
			return Field{}, invalidField("ref target is not a valid spec name", name, "use the referenced spec's name")
		}
	}

	var enum map[string]string
	if opts.Enum != nil {
		enum = make(map[string]string, len(opts.Enum))
		for value, desc := range opts.Enum {
			if desc == "" {
				return Field{}, invalidField("enum value is missing its description", value,
					"every enum entry maps an allowed value to a description")
			}
			if strings.ContainsAny(value, ReservedChars) || strings.ContainsAny(desc, ReservedChars) {
				return Field{}, invalidField("enum entry contains a reserved character", value,
					"enum values and descriptions must not use any of "+ReservedChars)
			}
			enum[value] = desc
		}
	}

	return Field{
		Identifier:  opts.Identifier,
		Type:        ft,
		Cardinality: opts.Cardinality,
		Description: opts.Description,
		Optional:    opts.Optional,
		Enum:        enum,
		Ref:         opts.Ref,
		Humanize:    opts.Humanize,
	}, nil
}

// Leaf returns the final identifier segment, punctuation included.
func (f Field) Leaf() string {
	_, leaf := SplitIdentifier(f.Identifier)
	return leaf
}

// WireLeaf returns the final identifier segment as it appears on the wire.
func (f Field) WireLeaf() string {
	return WireName(f.Leaf())
}
