package lint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swiftsc-lang/sclint/internal/types"
	"github.com/swiftsc-lang/sclint/token"
)

type mockLintEngine struct {
	mock.Mock
}

func (m *mockLintEngine) Run(filePath string) ([]types.Issue, error) {
	args := m.Called(filePath)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) RunSource(source []byte) ([]types.Issue, error) {
	args := m.Called(source)
	return args.Get(0).([]types.Issue), args.Error(1)
}

func (m *mockLintEngine) IgnoreRule(rule string) {
	m.Called(rule)
}

func (m *mockLintEngine) IgnorePath(path string) {
	m.Called(path)
}

func setupMockEngine(expectedIssues []types.Issue, filePath string) *mockLintEngine {
	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", filePath).Return(expectedIssues, nil)
	return mockEngine
}

func TestProcessFile(t *testing.T) {
	t.Parallel()
	expectedIssues := []types.Issue{
		{
			Rule:     "reentrancy",
			Filename: "test.swsc",
			Start:    token.Position{Filename: "test.swsc", Line: 1, Column: 1},
			End:      token.Position{Filename: "test.swsc", Line: 1, Column: 11},
			Message:  "Test issue",
		},
	}
	mockEngine := setupMockEngine(expectedIssues, "test.swsc")

	issues, err := ProcessFile(mockEngine, "test.swsc")

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessSource(t *testing.T) {
	t.Parallel()
	content := []byte("contract C {\n    init() {}\n}")
	expectedIssues := []types.Issue{
		{
			Rule:    "unused-function",
			Message: "Test issue",
		},
	}
	mockEngine := new(mockLintEngine)
	mockEngine.On("RunSource", content).Return(expectedIssues, nil)

	issues, err := ProcessSource(mockEngine, content)

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessPathSingleFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.swsc")
	require.NoError(t, os.WriteFile(path, []byte("contract C {\n    init() {}\n}"), 0o644))

	expectedIssues := []types.Issue{{Rule: "reentrancy", Filename: path}}
	mockEngine := setupMockEngine(expectedIssues, path)

	logger, _ := zap.NewDevelopment()
	issues, err := ProcessPath(context.Background(), logger, mockEngine, path, ProcessFile)

	assert.NoError(t, err)
	assert.Equal(t, expectedIssues, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessPathSkipsOtherExtensions(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a contract"), 0o644))

	mockEngine := new(mockLintEngine)
	issues, err := ProcessPath(context.Background(), nil, mockEngine, path, ProcessFile)

	assert.NoError(t, err)
	assert.Empty(t, issues)
	mockEngine.AssertExpectations(t)
}

func TestProcessPathWalksNestedDirectories(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	top := filepath.Join(dir, "token.swsc")
	nested := filepath.Join(dir, "vaults", "bank.swsc")
	require.NoError(t, os.WriteFile(top, []byte("contract Token {\n    init() {}\n}"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Dir(nested), 0o755))
	require.NoError(t, os.WriteFile(nested, []byte("contract Bank {\n    init() {}\n}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	mockEngine := new(mockLintEngine)
	mockEngine.On("Run", top).Return([]types.Issue{}, nil)
	mockEngine.On("Run", nested).Return([]types.Issue{}, nil)

	_, err := ProcessPath(context.Background(), nil, mockEngine, dir, ProcessFile)
	require.NoError(t, err)
	mockEngine.AssertExpectations(t)
}

func TestProcessFilesRealEngine(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.swsc")
	src := `contract Bank {
    storage {
        var balance: UInt256
    }

    init() {
        self.balance = 0
    }

    public func withdraw(amount: UInt256) {
        vault.send(amount)
        self.balance = self.balance - amount
    }
}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	engine, err := New(dir, nil, "")
	require.NoError(t, err)

	issues, err := ProcessFiles(context.Background(), nil, engine, []string{path}, ProcessFile)
	require.NoError(t, err)

	var rules []string
	for _, issue := range issues {
		rules = append(rules, issue.Rule)
	}
	assert.Contains(t, rules, "reentrancy")
}

func TestProcessGasEstimation(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.swsc")
	src := `contract Bank {
    init() {}

    public func ping() {
        oracle.poke()
    }
}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	estimates, err := ProcessGasEstimation(dir)
	require.NoError(t, err)
	require.Len(t, estimates, 2)

	names := map[string]bool{}
	for _, fg := range estimates {
		names[fg.Name] = true
	}
	assert.True(t, names["init"])
	assert.True(t, names["ping"])
}

func TestParseConfigurationFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".sclint.yaml")
	cfg := `name: sclint
rules:
  reentrancy:
    severity: ERROR
  unchecked-arithmetic:
    severity: OFF
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	config, err := parseConfigurationFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "sclint", config.Name)
	assert.Equal(t, types.SeverityError, config.Rules["reentrancy"].Severity)
	assert.Equal(t, types.SeverityOff, config.Rules["unchecked-arithmetic"].Severity)
}
