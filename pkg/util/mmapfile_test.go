package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileMapped_SmallFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.json")
	content := []byte(`{"color":{"primary":"#657E79"}}`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	data, err := ReadFileMapped(path)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestReadFileMapped_LargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.json")
	content := bytes.Repeat([]byte("x"), mmapThreshold+1024)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	data, err := ReadFileMapped(path)
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestReadFileMapped_Missing(t *testing.T) {
	_, err := ReadFileMapped(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
