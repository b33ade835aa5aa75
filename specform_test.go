package specform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func bookReportSpec(t *testing.T) *Spec {
	t.Helper()

	author, err := NewSpec("author", SpecOptions{},
		mustField(t, FieldOptions{Identifier: "name", Type: "string", Cardinality: One, Description: "The author's full name"}),
	)
	require.NoError(t, err)

	s, err := NewSpec("book-report", SpecOptions{Refs: []*Spec{author}},
		mustField(t, FieldOptions{Identifier: "books", Type: "string", Cardinality: Many, Description: "All books found"}),
		mustField(t, FieldOptions{Identifier: "books.title", Type: "string", Cardinality: One, Description: "Title of one book"}),
		mustField(t, FieldOptions{Identifier: "books.year", Type: "int", Cardinality: One, Description: "Publication year", Optional: true}),
		mustField(t, FieldOptions{Identifier: "books.written-by", Type: "ref", Cardinality: One, Description: "The writer", Ref: RefTo("author")}),
	)
	require.NoError(t, err)
	return s
}

func mustField(t *testing.T, opts FieldOptions) Field {
	t.Helper()
	f, err := NewField(opts)
	require.NoError(t, err)
	return f
}

func TestCodecRenderDecodeValidate(t *testing.T) {
	c := New(bookReportSpec(t))

	block, err := c.Render()
	require.NoError(t, err)
	assert.Contains(t, block, "books: [")
	assert.Contains(t, block, "title: string,")
	assert.Contains(t, block, "written-by: author,")

	response := "Here are the books:\n```json\n" +
		`{"books": [{"title": "Dune", "year": 1965, "written-by": {"name": "Frank Herbert"}}]}` +
		"\n```"
	data, err := c.Decode(response)
	require.NoError(t, err)

	report := c.Validate(data)
	assert.True(t, report.Valid, "errors: %v", report.Errors)
}

func TestCodecRoundTrip(t *testing.T) {
	c := New(bookReportSpec(t))

	data, err := c.Decode(`{"books": [{"title": "Emma", "written-by": {"name": "Jane Austen"}}]}`)
	require.NoError(t, err)

	out, err := c.Serialize(data)
	require.NoError(t, err)

	again, err := c.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestCodecValidateReportsErrors(t *testing.T) {
	c := New(bookReportSpec(t))

	data, err := c.Decode(`{"books": [{"year": 1965, "written-by": {"name": "Frank"}}]}`)
	require.NoError(t, err)

	report := c.Validate(data)
	assert.False(t, report.Valid)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "books.title", report.Errors[0].Identifier)
}

func TestCodecLogsDiagnostics(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := New(bookReportSpec(t), WithLogger(zap.New(core)))

	_, err := c.Decode(`{books: [{title: 'Emma', 'written-by': {name: 'Jane'}},]}`)
	require.NoError(t, err)

	require.NotZero(t, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "specform diagnostic", entry.Message)
	assert.Equal(t, "decode", entry.ContextMap()["stage"])
}

func TestCodecPromptTokens(t *testing.T) {
	c := New(bookReportSpec(t), WithModel("gpt-4o"))
	block, err := c.Render()
	require.NoError(t, err)
	assert.Greater(t, c.PromptTokens(block), 0)
}

func TestCodecParseOnly(t *testing.T) {
	c := New(bookReportSpec(t))
	value, err := c.ParseOnly(`{"anything": 1}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"anything": float64(1)}, value)
}

func TestPackageLevelHelpers(t *testing.T) {
	s := bookReportSpec(t)

	block, err := Render(s)
	require.NoError(t, err)
	// One ref field uses author, so its block inlines anonymously first.
	assert.True(t, strings.HasPrefix(block, "{"))
	assert.Contains(t, block, "book-report {")

	data, err := Decode(`{"books": [{"title": "Dune", "written-by": {"name": "Frank"}}]}`, s)
	require.NoError(t, err)
	assert.True(t, Validate(s, data).Valid)

	out, err := Serialize(data)
	require.NoError(t, err)
	assert.Contains(t, out, `"Dune"`)
}
