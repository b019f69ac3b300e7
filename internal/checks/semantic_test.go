package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftsc-lang/sclint/internal/symtab"
)

func TestDetectUndefinedSymbols(t *testing.T) {
	t.Parallel()
	src := `contract C {
    storage {
        var total: UInt256
    }
    init() {
        self.total = 0
    }
    public func add(amount: UInt256) {
        let next = self.total + amount
        self.total = next + bogus
    }
}`
	issues, err := DetectUndefinedSymbols("test.swsc", parseProg(t, src), nil)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "undefined-symbol", issues[0].Rule)
	assert.Contains(t, issues[0].Message, `"bogus"`)
}

func TestDetectUndefinedSymbolsBuiltinsAndScopes(t *testing.T) {
	t.Parallel()
	src := `contract C {
    init() {}
    public func f(a: UInt256) {
        let b = a + 1
        if msg.sender == tx.origin {
            let c = b
            ledger.push(c)
        }
    }
    func ledgerless() {
        helper(1)
    }
    func helper(n: UInt256) {}
}`
	// ledger is undefined without a symbol table entry
	issues, err := DetectUndefinedSymbols("test.swsc", parseProg(t, src), nil)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"ledger"`)

	// a symbol table naming ledger resolves it
	table := symtab.New()
	table.AddProgram("ledger.swsc", parseProg(t, `contract ledger { init() {} }`))
	issues, err = DetectUndefinedSymbols("test.swsc", parseProg(t, src), table)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestBranchScopesDoNotLeak(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) {
    if a > 0 {
        let inner = a
    }
    let after = inner
}`
	issues, err := DetectUndefinedSymbols("test.swsc", parseProg(t, src), nil)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, `"inner"`)
}

func TestDetectDuplicateDeclarations(t *testing.T) {
	t.Parallel()
	src := `contract C {
    storage {
        var x: UInt256
        var x: UInt256
    }
    init() { self.x = 0 }
    func f(a: UInt256, a: UInt256) {
        let y = 1
        let y = 2
    }
    func f(z: UInt256) {}
}`
	issues, err := DetectDuplicateDeclarations("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	rules := rulesOf(issues)
	assert.Len(t, rules, 4) // storage field, function, parameter, binding
	for _, rule := range rules {
		assert.Equal(t, "duplicate-declaration", rule)
	}
}

func TestDetectUninitializedLocals(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    var total: UInt256
    let doubled = total + total
    total = a
    return total
}`
	issues, err := DetectUninitializedLocals("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1) // one report per binding
	assert.Equal(t, "uninitialized-local", issues[0].Rule)
	assert.Contains(t, issues[0].Message, `"total"`)
}

func TestUninitializedLocalsAssignmentClears(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    var total: UInt256
    if a > 0 {
        total = a
    }
    return total
}`
	issues, err := DetectUninitializedLocals("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestUninitializedLocalsInitializedBindingClean(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    var total: UInt256 = 0
    let next = total + a
    return next
}`
	issues, err := DetectUninitializedLocals("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestDetectArityMismatch(t *testing.T) {
	t.Parallel()
	src := `contract C {
    event Transfer(from: Address, to: Address)

    init() {}

    func helper(a: UInt256, b: UInt256) {}

    public func go(x: UInt256) {
        self.helper(x)
        helper(x, x)
        emit Transfer(msg.sender)
        emit Missing(x)
    }
}`
	issues, err := DetectArityMismatch("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 3)

	assert.Contains(t, issues[0].Message, "helper expects 2 argument(s), got 1")
	assert.Contains(t, issues[1].Message, "event Transfer expects 2 argument(s), got 1")
	assert.Contains(t, issues[2].Message, "undeclared event")
}
