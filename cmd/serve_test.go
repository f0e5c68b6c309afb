package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewYAML = `
name: review
fields:
  - name: title
  - name: rating
    type: int
  - name: tags
    type: choice
    multiple: true
    choices: [go, web]
`

func writeSchema(t *testing.T, dir, name, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0o644))
}

func TestLoadSchemas(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "review.yaml", reviewYAML)
	writeSchema(t, dir, "notes.txt", "not a schema")

	schemas, err := loadSchemas(dir)
	require.NoError(t, err)
	require.Len(t, schemas, 1)

	s := schemas["review"]
	require.NotNil(t, s)
	assert.Equal(t, "review", s.Name)
	assert.Len(t, s.Fields, 3)
}

func TestLoadSchemasMissingDir(t *testing.T) {
	_, err := loadSchemas(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestLoadSchemasRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	writeSchema(t, dir, "broken.yaml", "name: broken\nfields:\n  - name: x\n    type: list\n")

	_, err := loadSchemas(dir)
	assert.Error(t, err)
}
