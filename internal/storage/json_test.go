package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/klauer/vita/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDoc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestWriteJSONThenReadJSONRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	in := sampleDoc{Name: "run-1", Count: 42}

	require.NoError(t, storage.WriteJSON(path, in))
	assert.True(t, storage.FileExists(path))

	var out sampleDoc
	require.NoError(t, storage.ReadJSON(path, &out))
	assert.Equal(t, in, out)
}

func TestFileExistsFalseForMissingPath(t *testing.T) {
	assert.False(t, storage.FileExists(filepath.Join(t.TempDir(), "missing.json")))
}

func TestListJSONFilesFindsOnlyJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, storage.WriteJSON(filepath.Join(dir, "a.json"), sampleDoc{Name: "a"}))
	require.NoError(t, storage.WriteJSON(filepath.Join(dir, "b.json"), sampleDoc{Name: "b"}))

	files, err := storage.ListJSONFiles(dir)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDeleteFileIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	assert.NoError(t, storage.DeleteFile(path))

	require.NoError(t, storage.WriteJSON(path, sampleDoc{Name: "x"}))
	require.NoError(t, storage.DeleteFile(path))
	assert.False(t, storage.FileExists(path))
}
