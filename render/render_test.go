package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/specform/spec"
)

func mustField(t *testing.T, opts spec.FieldOptions) spec.Field {
	t.Helper()
	f, err := spec.NewField(opts)
	require.NoError(t, err)
	return f
}

func mustSpec(t *testing.T, name string, opts spec.Options, fields ...spec.Field) *spec.Spec {
	t.Helper()
	s, err := spec.New(name, opts, fields...)
	require.NoError(t, err)
	return s
}

func mustRender(t *testing.T, s *spec.Spec) string {
	t.Helper()
	text, _, err := Render(s)
	require.NoError(t, err)
	return text
}

func TestRenderFlatSpec(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "title", Type: "string", Cardinality: spec.One, Description: "The book title"}),
		mustField(t, spec.FieldOptions{Identifier: "year", Type: "int", Cardinality: spec.One, Description: "Publication year", Optional: true}),
	)

	want := strings.Join([]string{
		"{",
		"  // The book title (required)",
		"  title: string,",
		"  // Publication year (optional)",
		"  year: int or null,",
		"}",
	}, "\n")
	assert.Equal(t, want, mustRender(t, s))
}

func TestRenderWireKeyStripsPunctuation(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "valid?", Type: "bool", Cardinality: spec.One, Description: "Whether it checks out"}),
	)
	text := mustRender(t, s)
	assert.Contains(t, text, "valid: bool,")
	assert.NotContains(t, text, "valid?")
}

func TestRenderTypeTokens(t *testing.T) {
	tests := []struct {
		name string
		opts spec.FieldOptions
		want string
	}{
		{"date renders string", spec.FieldOptions{Identifier: "published", Type: "date", Cardinality: spec.One, Description: "Publish date"}, "published: string,"},
		{"datetime renders string", spec.FieldOptions{Identifier: "seen", Type: "datetime", Cardinality: spec.One, Description: "Last seen"}, "seen: string,"},
		{"keyword renders string", spec.FieldOptions{Identifier: "status", Type: "keyword", Cardinality: spec.One, Description: "Current status"}, "status: string,"},
		{"many appends brackets", spec.FieldOptions{Identifier: "tags", Type: "string", Cardinality: spec.Many, Description: "Labels"}, "tags: string[],"},
		{"optional many", spec.FieldOptions{Identifier: "tags", Type: "string", Cardinality: spec.Many, Description: "Labels", Optional: true}, "tags: string[] or null,"},
		{"vector", spec.FieldOptions{Identifier: "rgb", Type: "int-v-3", Cardinality: spec.One, Description: "Color triple"}, "rgb: int[3],"},
		{"many vector never double-brackets", spec.FieldOptions{Identifier: "rgb", Type: "int-v-3", Cardinality: spec.Many, Description: "Color triple"}, "rgb: int[3],"},
		{"double vector renders float", spec.FieldOptions{Identifier: "pos", Type: "double-v-2", Cardinality: spec.One, Description: "Position pair"}, "pos: float[2],"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSpec(t, "", spec.Options{}, mustField(t, tt.opts))
			assert.Contains(t, mustRender(t, s), tt.want)
		})
	}
}

func TestRenderVectorHint(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "rgb", Type: "int-v-3", Cardinality: spec.One, Description: "Color triple"}),
	)
	assert.Contains(t, mustRender(t, s), "// Color triple (required) (exactly 3 elements)")
}

func TestRenderDateHints(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "published", Type: "date", Cardinality: spec.One, Description: "Publish date"}),
		mustField(t, spec.FieldOptions{Identifier: "seen", Type: "datetime", Cardinality: spec.One, Description: "Last seen", Optional: true}),
	)
	text := mustRender(t, s)
	assert.Contains(t, text, "// Publish date (required) (format: YYYY-MM-DD)")
	assert.Contains(t, text, "// Last seen (optional) (format: ISO 8601 date and time)")
}

func TestRenderEnum(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{
			Identifier:  "role",
			Type:        "string",
			Cardinality: spec.One,
			Description: "Access level",
			Enum:        map[string]string{"user": "read only", "admin": "full access"},
		}),
	)
	text := mustRender(t, s)
	// One sorted comment line per allowed value, then the sorted token.
	assert.Contains(t, text, strings.Join([]string{
		"  // Access level (required)",
		"  // admin: full access",
		"  // user: read only",
		`  role: "admin" or "user",`,
	}, "\n"))
}

func TestRenderArrayOfObjects(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "books", Type: "string", Cardinality: spec.Many, Description: "All books found"}),
		mustField(t, spec.FieldOptions{Identifier: "books.title", Type: "string", Cardinality: spec.One, Description: "Title of one book"}),
		mustField(t, spec.FieldOptions{Identifier: "books.year", Type: "int", Cardinality: spec.One, Description: "Publication year", Optional: true}),
	)

	want := strings.Join([]string{
		"{",
		"  // All books found (required)",
		"  books: [",
		"    {",
		"      // Title of one book (required)",
		"      title: string,",
		"      // Publication year (optional)",
		"      year: int or null,",
		"    }",
		"  ],",
		"}",
	}, "\n")
	assert.Equal(t, want, mustRender(t, s))
}

func TestRenderNestedNamespaceWithoutOwner(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "meta.author", Type: "string", Cardinality: spec.One, Description: "Author name"}),
	)
	want := strings.Join([]string{
		"{",
		"  meta: {",
		"    // Author name (required)",
		"    author: string,",
		"  },",
		"}",
	}, "\n")
	assert.Equal(t, want, mustRender(t, s))
}

func TestRenderArrayOfObjectsAtDepth(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "report.books", Type: "string", Cardinality: spec.Many, Description: "All books"}),
		mustField(t, spec.FieldOptions{Identifier: "report.books.title", Type: "string", Cardinality: spec.One, Description: "Title"}),
	)
	text := mustRender(t, s)
	assert.Contains(t, text, "  report: {")
	assert.Contains(t, text, "    books: [")
	assert.Contains(t, text, "        title: string,")
}

func TestRenderHoisting(t *testing.T) {
	nameField := func() spec.Field {
		return mustField(t, spec.FieldOptions{Identifier: "name", Type: "string", Cardinality: spec.One, Description: "A name"})
	}
	author := mustSpec(t, "author", spec.Options{}, nameField())
	publisher := mustSpec(t, "publisher", spec.Options{}, nameField())
	orphan := mustSpec(t, "orphan", spec.Options{}, nameField())

	s := mustSpec(t, "report", spec.Options{Refs: []*spec.Spec{author, publisher, orphan}},
		mustField(t, spec.FieldOptions{Identifier: "written-by", Type: "ref", Cardinality: spec.One, Description: "The writer", Ref: spec.RefTo("author")}),
		mustField(t, spec.FieldOptions{Identifier: "edited-by", Type: "ref", Cardinality: spec.One, Description: "The editor", Ref: spec.RefTo("author")}),
		mustField(t, spec.FieldOptions{Identifier: "produced-by", Type: "ref", Cardinality: spec.One, Description: "The producer", Ref: spec.RefTo("publisher")}),
	)

	text, warnings, err := Render(s)
	require.NoError(t, err)

	blocks := strings.Split(text, "\n\n")
	require.Len(t, blocks, 3)

	// Used twice: hoisted once, named, first.
	assert.True(t, strings.HasPrefix(blocks[0], "author {"), "hoisted block should be named: %q", blocks[0])
	assert.Equal(t, 1, strings.Count(text, "author {"))

	// Used once: rendered once as an anonymous top-level block.
	assert.True(t, strings.HasPrefix(blocks[1], "{"), "inlined block should be anonymous: %q", blocks[1])
	assert.NotContains(t, text, "publisher {")

	// Main block last, with ref fields pointing at targets by name.
	assert.True(t, strings.HasPrefix(blocks[2], "report {"))
	assert.Contains(t, blocks[2], "written-by: author,")
	assert.Contains(t, blocks[2], "produced-by: publisher,")

	// Unused: dropped with a warning.
	assert.NotContains(t, text, "orphan")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "orphan")
}

func TestRenderUnionRef(t *testing.T) {
	nameField := func() spec.Field {
		return mustField(t, spec.FieldOptions{Identifier: "name", Type: "string", Cardinality: spec.One, Description: "A name"})
	}
	person := mustSpec(t, "person", spec.Options{}, nameField())
	org := mustSpec(t, "org", spec.Options{}, nameField())

	s := mustSpec(t, "", spec.Options{Refs: []*spec.Spec{person, org}},
		mustField(t, spec.FieldOptions{Identifier: "owner", Type: "ref", Cardinality: spec.One, Description: "The owner", Ref: spec.RefToAny("person", "org")}),
	)
	assert.Contains(t, mustRender(t, s), "owner: person | org,")
}

func TestRenderHumanize(t *testing.T) {
	s := mustSpec(t, "", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "unit_price", Type: "float", Cardinality: spec.One, Description: "Cost of one unit", Humanize: true}),
	)
	assert.Contains(t, mustRender(t, s), "// Unit price: Cost of one unit (required)")
}

func TestRenderDeterministic(t *testing.T) {
	s := mustSpec(t, "report", spec.Options{},
		mustField(t, spec.FieldOptions{Identifier: "zeta.x", Type: "int", Cardinality: spec.One, Description: "Z first"}),
		mustField(t, spec.FieldOptions{Identifier: "alpha.y", Type: "int", Cardinality: spec.One, Description: "A second"}),
	)
	first := mustRender(t, s)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, mustRender(t, s))
	}
	// Children sort lexicographically regardless of declaration order.
	assert.Less(t, strings.Index(first, "alpha:"), strings.Index(first, "zeta:"))
}
