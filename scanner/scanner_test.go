package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()
	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
	return tempDir
}

func TestProjectScanner(t *testing.T) {
	tempDir := writeFiles(t, map[string]string{
		"token.swsc":       "contract Token {}",
		"vault.swsc":       "contract Vault {}",
		"notes.txt":        "This is a text file",
		"nested/bank.swsc": "contract Bank {}",
		"nested/README.md": "docs",
	})

	scanner := New(tempDir)
	scannedFiles, err := scanner.Scan()
	require.NoError(t, err)

	assert.Len(t, scannedFiles, 3)

	foundPaths := make(map[string]bool)
	for _, file := range scannedFiles {
		foundPaths[file.Path] = true
		assert.Greater(t, file.Size, int64(0))
	}

	assert.True(t, foundPaths[filepath.Join(tempDir, "token.swsc")])
	assert.True(t, foundPaths[filepath.Join(tempDir, "vault.swsc")])
	assert.True(t, foundPaths[filepath.Join(tempDir, "nested/bank.swsc")])
	assert.False(t, foundPaths[filepath.Join(tempDir, "notes.txt")])
}

func TestScannerCustomExtensions(t *testing.T) {
	tempDir := writeFiles(t, map[string]string{
		"a.swsc": "contract A {}",
		"b.yaml": "rules: {}",
	})

	scanner := New(tempDir, ".yaml")
	scannedFiles, err := scanner.Scan()
	require.NoError(t, err)

	require.Len(t, scannedFiles, 1)
	assert.Equal(t, filepath.Join(tempDir, "b.yaml"), scannedFiles[0].Path)
}
