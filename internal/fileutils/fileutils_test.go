package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/planned-spending/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "book.yaml")
	require.NoError(t, os.WriteFile(testFile, []byte("reminders: []"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.yaml")))
	// Directories are not files
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	newDir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	// Existing directory is fine
	assert.NoError(t, fileutils.EnsureDirectoryExists(newDir))
}

func TestFindFile(t *testing.T) {
	tmpDir := t.TempDir()
	abs := filepath.Join(tmpDir, "book.yaml")
	require.NoError(t, os.WriteFile(abs, []byte("{}"), 0600))

	found, err := fileutils.FindFile(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, found)

	_, err = fileutils.FindFile(filepath.Join(tmpDir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = fileutils.FindFile("")
	assert.Error(t, err)

	chdir(t, tmpDir)
	require.NoError(t, os.MkdirAll("data", 0750))
	require.NoError(t, os.WriteFile(filepath.Join("data", "other.yaml"), []byte("{}"), 0600))
	found, err = fileutils.FindFile("other.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "other.yaml"), found)
}

func TestReadFile(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("hello"), 0600))

	data, err := fileutils.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = fileutils.ReadFile(testFile + ".missing")
	assert.Error(t, err)
}

func TestCreateFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "reports", "2025", "report.csv")

	f, err := fileutils.CreateFile(target)
	require.NoError(t, err)
	_, err = f.WriteString("x")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.True(t, fileutils.FileExists(target))
}
