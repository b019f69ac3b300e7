package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunCFGAnalysisWritesDot(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := `contract Bank {
    init() {}

    public func withdraw(amount: UInt256) {
        if amount > 0 {
            vault.send(amount)
        }
    }
}`
	path := filepath.Join(dir, "bank.swsc")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	out := filepath.Join(dir, "withdraw.dot")
	err := runCFGAnalysis(zap.NewNop(), []string{path}, "withdraw", out)
	require.NoError(t, err)

	dot, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph cfg {")
	assert.Contains(t, string(dot), "entry")
}

func TestRunCFGAnalysisUnknownFunction(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.swsc")
	require.NoError(t, os.WriteFile(path, []byte("contract C {\n    init() {}\n}"), 0o644))

	err := runCFGAnalysis(zap.NewNop(), []string{path}, "missing", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}
