package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/swiftsc-lang/sclint/internal/types"
)

func TestDetectDivisionByConstantZero(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    return a / 0
}`
	issues, err := DetectDivisionByZero("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "division-by-zero", issues[0].Rule)
	assert.Equal(t, tt.SeverityError, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "constant zero")
}

func TestDetectDivisionByUnguardedParameter(t *testing.T) {
	t.Parallel()
	src := `func share(total: UInt256, parts: UInt256) -> UInt256 {
    return total % parts
}`
	issues, err := DetectDivisionByZero("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, tt.SeverityWarning, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "modulo")
	assert.Contains(t, issues[0].Message, `"parts"`)
	assert.Equal(t, "require(parts != 0)", issues[0].Suggestion)
}

func TestDivisionGuardedParameterIsClean(t *testing.T) {
	t.Parallel()
	src := `func share(total: UInt256, parts: UInt256) -> UInt256 {
    require(parts > 0, "no parts")
    return total / parts
}`
	issues, err := DetectDivisionByZero("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestDivisionByNonzeroLiteralIsClean(t *testing.T) {
	t.Parallel()
	src := `func half(a: UInt256) -> UInt256 {
    return a / 2
}`
	issues, err := DetectDivisionByZero("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}
