package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedSource = "// " + HeaderComment + "\n//go:build !cmpbygen\n\npackage geometry\n"

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmpby_gen.go")
	files := []GeneratedFile{{Package: "example.com/geometry", Path: path, Content: []byte(generatedSource)}}

	res, err := WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, res.Written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, generatedSource, string(got))

	res, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Empty(t, res.Written)
	assert.Equal(t, []string{path}, res.Unchanged)

	files[0].Content = nil
	res, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, res.Removed)
	assert.NoFileExists(t, path)

	res, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Empty(t, res.Removed)
}

func TestWriteFiles_KeepsHandWrittenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmpby_gen.go")
	require.NoError(t, os.WriteFile(path, []byte("package geometry\n"), 0o644))

	res, err := WriteFiles([]GeneratedFile{{Package: "example.com/geometry", Path: path}})
	require.NoError(t, err)
	assert.Empty(t, res.Removed)
	assert.FileExists(t, path)
}

func TestWriteFiles_NoPath(t *testing.T) {
	_, err := WriteFiles([]GeneratedFile{{Package: "example.com/geometry", Content: []byte(generatedSource)}})
	assert.Error(t, err)
}

func TestIsGenerated(t *testing.T) {
	assert.True(t, IsGenerated([]byte(generatedSource)))
	assert.False(t, IsGenerated([]byte("package geometry\n")))
	assert.False(t, IsGenerated(nil))
}

func TestStale(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "current", "cmpby_gen.go")
	outdated := filepath.Join(dir, "outdated", "cmpby_gen.go")
	leftover := filepath.Join(dir, "leftover", "cmpby_gen.go")
	missing := filepath.Join(dir, "missing", "cmpby_gen.go")

	for _, p := range []string{current, outdated, leftover} {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	}

	require.NoError(t, os.WriteFile(current, []byte(generatedSource), 0o644))
	require.NoError(t, os.WriteFile(outdated, []byte(generatedSource+"// old\n"), 0o644))
	require.NoError(t, os.WriteFile(leftover, []byte(generatedSource), 0o644))

	files := []GeneratedFile{
		{Package: "current", Path: current, Content: []byte(generatedSource)},
		{Package: "outdated", Path: outdated, Content: []byte(generatedSource)},
		{Package: "leftover", Path: leftover},
		{Package: "missing", Path: missing},
	}

	stale, err := Stale(files)
	require.NoError(t, err)
	assert.Equal(t, []string{outdated, leftover}, stale)

	_, err = WriteFiles(files)
	require.NoError(t, err)

	stale, err = Stale(files)
	require.NoError(t, err)
	assert.Empty(t, stale)
}
