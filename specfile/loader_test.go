package specfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/specform/spec"
)

const bookReportDoc = `
name: book-report
key_namespace: report
refs:
  - name: author
    fields:
      - identifier: name
        type: string
        cardinality: one
        description: The author's full name
fields:
  - identifier: books
    type: string
    cardinality: many
    description: All books found
  - identifier: books.title
    type: string
    cardinality: one
    description: Title of one book
  - identifier: books.year
    type: int
    cardinality: one
    description: Publication year
    optional: true
  - identifier: written-by
    type: ref
    cardinality: one
    description: The writer
    ref:
      target: author
`

func TestLoadBuildsSpec(t *testing.T) {
	s, err := Load([]byte(bookReportDoc))
	require.NoError(t, err)

	assert.Equal(t, "book-report", s.Name)
	assert.Equal(t, "report", s.KeyNamespace)
	require.Len(t, s.Fields, 4)
	require.Len(t, s.Refs, 1)
	assert.Equal(t, "author", s.Refs[0].Name)

	year := s.Fields[2]
	assert.Equal(t, "books.year", year.Identifier)
	assert.Equal(t, spec.KindInt, year.Type.Kind)
	assert.True(t, year.Optional)

	writtenBy := s.Fields[3]
	assert.Equal(t, spec.KindRef, writtenBy.Type.Kind)
	assert.Equal(t, []string{"author"}, writtenBy.Ref.Names())
}

func TestLoadUnionRef(t *testing.T) {
	doc := `
name: holding
refs:
  - name: person
    fields:
      - identifier: name
        type: string
        cardinality: one
        description: Full name
  - name: org
    fields:
      - identifier: name
        type: string
        cardinality: one
        description: Legal name
fields:
  - identifier: owner
    type: ref
    cardinality: one
    description: The owner
    ref:
      targets: [person, org]
`
	s, err := Load([]byte(doc))
	require.NoError(t, err)
	owner := s.Fields[0]
	assert.True(t, owner.Ref.IsUnion())
	assert.Equal(t, []string{"person", "org"}, owner.Ref.Names())
}

func TestLoadEnum(t *testing.T) {
	doc := `
fields:
  - identifier: role
    type: string
    cardinality: one
    description: Access level
    enum:
      admin: full access
      user: read only
`
	s, err := Load([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"admin": "full access", "user": "read only"}, s.Fields[0].Enum)
}

func TestLoadRejectsBadField(t *testing.T) {
	doc := `
fields:
  - identifier: title
    type: string
    cardinality: one
`
	_, err := Load([]byte(doc))
	require.Error(t, err)
	assert.True(t, spec.IsKind(err, spec.ErrInvalidField))
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte("fields: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse spec document")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book-report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bookReportDoc), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "book-report", s.Name)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read spec file")
}
