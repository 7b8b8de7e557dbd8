package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/simdup/domain"
)

func TestInputReader_HashFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.tsv")
	content := "id\thash\n1\t10\n2\t20\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := NewInputReader()
	records, err := r.Read(path, domain.InputFormatHash, "text", "id", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, uint64(10), records[0].Hash)
	assert.Equal(t, "2", records[1].ID)
	assert.Equal(t, uint64(20), records[1].Hash)
}

func TestInputReader_HashFormat_Sample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.tsv")
	content := "id\thash\n1\t10\n2\t20\n3\t30\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := NewInputReader()
	records, err := r.Read(path, domain.InputFormatHash, "text", "id", 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestInputReader_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.jsonl")
	content := `{"id":1,"text":"hello world"}
{"id":2,"text":"goodbye world"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r := NewInputReader()
	records, err := r.Read(path, domain.InputFormatJSON, "text", "id", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "hello world", records[0].Text)
}

func TestInputReader_DirectoryOfShards(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.tsv"), []byte("id\thash\n1\t10\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.tsv"), []byte("id\thash\n2\t20\n"), 0o644))

	r := NewInputReader()
	records, err := r.Read(dir, domain.InputFormatHash, "text", "id", 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestInputReader_MissingFile(t *testing.T) {
	r := NewInputReader()
	_, err := r.Read("/nonexistent/path.tsv", domain.InputFormatHash, "text", "id", 0)
	assert.Error(t, err)
}
