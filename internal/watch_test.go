package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tt "github.com/swiftsc-lang/sclint/internal/types"
)

func TestWatcherRelintsOnWrite(t *testing.T) {
	engine, err := NewEngine("", nil, nil)
	require.NoError(t, err)

	path := writeTempContract(t, "contract C {\n    init() {}\n}")

	results := make(chan []tt.Issue, 4)
	watcher, err := NewWatcher(engine, zap.NewNop(), []string{filepath.Dir(path)}, func(_ string, issues []tt.Issue) {
		results <- issues
	})
	require.NoError(t, err)

	require.NoError(t, watcher.StartWatching())
	assert.Error(t, watcher.StartWatching()) // already running

	require.NoError(t, os.WriteFile(path, []byte(vulnerableSrc), 0o644))

	select {
	case issues := <-results:
		var rules []string
		for _, issue := range issues {
			rules = append(rules, issue.Rule)
		}
		assert.Contains(t, rules, "reentrancy")
	case <-time.After(5 * time.Second):
		t.Fatal("no re-lint within deadline")
	}

	require.NoError(t, watcher.StopWatching())
}
