package nolint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftsc-lang/sclint/parser"
	"github.com/swiftsc-lang/sclint/token"
)

func parseWithComments(t *testing.T, src string) *Manager {
	t.Helper()
	prog, comments, err := parser.ParseFile("test.swsc", []byte(src))
	require.NoError(t, err)
	return ParseComments(prog, comments)
}

func at(line int) token.Position {
	return token.Position{Filename: "test.swsc", Line: line}
}

func TestInlineNolint(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256, b: UInt256) -> UInt256 {
    return a + b //nolint:unchecked-arithmetic
}`
	mgr := parseWithComments(t, src)
	assert.True(t, mgr.IsNolint(at(2), "unchecked-arithmetic"))
	assert.False(t, mgr.IsNolint(at(2), "reentrancy"))
}

func TestStandaloneNolintCoversNextStatement(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256, b: UInt256) -> UInt256 {
    //nolint:unchecked-arithmetic
    let sum = a + b
    return sum * 2
}`
	mgr := parseWithComments(t, src)
	assert.True(t, mgr.IsNolint(at(3), "unchecked-arithmetic"))
	assert.False(t, mgr.IsNolint(at(4), "unchecked-arithmetic"))
}

func TestNolintWithoutRulesSuppressesAll(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    return a / 0 //nolint
}`
	mgr := parseWithComments(t, src)
	assert.True(t, mgr.IsNolint(at(2), "division-by-zero"))
	assert.True(t, mgr.IsNolint(at(2), "unchecked-arithmetic"))
}

func TestFileWideNolint(t *testing.T) {
	t.Parallel()
	src := `//nolint:unchecked-arithmetic

func f(a: UInt256, b: UInt256) -> UInt256 {
    return a + b
}`
	mgr := parseWithComments(t, src)
	assert.True(t, mgr.IsNolint(at(4), "unchecked-arithmetic"))
	assert.False(t, mgr.IsNolint(at(4), "reentrancy"))
}

func TestNolintAboveFunctionCoversBody(t *testing.T) {
	t.Parallel()
	src := `func g() {}

//nolint:unchecked-arithmetic
func f(a: UInt256, b: UInt256) -> UInt256 {
    let x = a + b
    return x + 1
}`
	mgr := parseWithComments(t, src)
	assert.True(t, mgr.IsNolint(at(5), "unchecked-arithmetic"))
	assert.True(t, mgr.IsNolint(at(6), "unchecked-arithmetic"))
	assert.False(t, mgr.IsNolint(at(1), "unchecked-arithmetic"))
}

func TestMalformedNolintIgnored(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    return a + a //nolintert
}`
	mgr := parseWithComments(t, src)
	assert.False(t, mgr.IsNolint(at(2), "unchecked-arithmetic"))
}

func TestOtherCommentsIgnored(t *testing.T) {
	t.Parallel()
	src := `// adds two numbers
func f(a: UInt256, b: UInt256) -> UInt256 {
    return a + b
}`
	mgr := parseWithComments(t, src)
	assert.False(t, mgr.IsNolint(at(3), "unchecked-arithmetic"))
}
