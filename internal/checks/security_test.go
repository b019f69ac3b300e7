package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftsc-lang/sclint/ast"
	tt "github.com/swiftsc-lang/sclint/internal/types"
	"github.com/swiftsc-lang/sclint/parser"
)

func parseProg(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, _, err := parser.ParseFile("test.swsc", []byte(src))
	require.NoError(t, err)
	return prog
}

func rulesOf(issues []tt.Issue) []string {
	names := make([]string, 0, len(issues))
	for _, issue := range issues {
		names = append(names, issue.Rule)
	}
	return names
}

func TestDetectUninitializedStorage(t *testing.T) {
	t.Parallel()
	src := `contract Vault {
    storage {
        var owner: Address
        var balance: UInt256
        var paused: Bool
    }

    init() {
        self.owner = msg.sender
        if true {
            self.paused = false
        }
    }
}`
	issues, err := DetectUninitializedStorage("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "uninitialized-storage", issues[0].Rule)
	assert.Contains(t, issues[0].Message, `"balance"`)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
}

func TestDetectUninitializedStorageNoInit(t *testing.T) {
	t.Parallel()
	src := `contract Empty {
    storage {
        var x: UInt256
    }
}`
	issues, err := DetectUninitializedStorage("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	// without a constructor every field counts as uninitialized
	require.Len(t, issues, 1)
}

func TestDetectUninitializedStorageAllCovered(t *testing.T) {
	t.Parallel()
	src := `contract Ok {
    storage {
        var a: UInt256
        var b: UInt256
    }
    init() {
        self.a = 0
        self.b = 1
    }
}`
	issues, err := DetectUninitializedStorage("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestDetectReentrancy(t *testing.T) {
	t.Parallel()
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

    public func deposit(amount: UInt256) {
        self.balance = self.balance + amount
        ledger.record(amount)
    }
}`
	issues, err := DetectReentrancy("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "reentrancy", issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "withdraw")
}

func TestDetectReentrancyFlagIsFunctionScoped(t *testing.T) {
	t.Parallel()
	// the external call in the first function must not taint the second
	src := `contract C {
    func a() {
        other.ping()
    }
    func b() {
        self.x = 1
    }
    storage {
        var x: UInt256
    }
    init() { self.x = 0 }
}`
	issues, err := DetectReentrancy("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestDetectUncheckedArithmetic(t *testing.T) {
	t.Parallel()
	src := `func calc(a: UInt256, b: UInt256) -> UInt256 {
    let fixed = 2 + 3
    return a * b
}`
	issues, err := DetectUncheckedArithmetic("test.swsc", parseProg(t, src), false)
	require.NoError(t, err)
	require.Len(t, issues, 1) // literal-only 2+3 is exempt
	assert.Equal(t, "unchecked-arithmetic", issues[0].Rule)
	assert.Equal(t, tt.SeverityInfo, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "*")
}

func TestDetectUncheckedArithmeticStrict(t *testing.T) {
	t.Parallel()
	src := `func calc(a: UInt256, b: UInt256) -> UInt256 {
    let fixed = 2 + 3
    return a * b
}`
	issues, err := DetectUncheckedArithmetic("test.swsc", parseProg(t, src), true)
	require.NoError(t, err)
	require.Len(t, issues, 2) // strict mode flags the literal fold too
}

func TestDetectUncheckedArithmeticDivExempt(t *testing.T) {
	t.Parallel()
	// division cannot overflow; it has its own rule
	src := `func f(a: UInt256, b: UInt256) -> UInt256 {
    return a / b
}`
	issues, err := DetectUncheckedArithmetic("test.swsc", parseProg(t, src), false)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
