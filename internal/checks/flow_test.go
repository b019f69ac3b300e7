package checks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectUnreachableCode(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    return a
    let dead = a + 1
}`
	issues, err := DetectUnreachableCode("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "unreachable-code", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "f")
}

func TestDetectUnreachableCodeAfterExhaustiveIf(t *testing.T) {
	t.Parallel()
	src := `func sign(a: UInt256) -> UInt256 {
    if a > 0 {
        return 1
    } else {
        return 0
    }
    let dead = 1
}`
	issues, err := DetectUnreachableCode("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
}

func TestDetectUnreachableCodeAfterRequireFalse(t *testing.T) {
	t.Parallel()
	src := `func halted(a: UInt256) {
    require(false, "disabled")
    let dead = a + 1
}`
	issues, err := DetectUnreachableCode("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "unreachable-code", issues[0].Rule)
}

func TestDetectUnreachableCodeInWhileFalseBody(t *testing.T) {
	t.Parallel()
	src := `func skip(a: UInt256) -> UInt256 {
    while false {
        let dead = a + 1
    }
    return a
}`
	issues, err := DetectUnreachableCode("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "unreachable-code", issues[0].Rule)
}

func TestDetectMissingReturn(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    if a > 0 {
        return a
    }
}`
	issues, err := DetectMissingReturn("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "missing-return", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "UInt256")
}

func TestDetectMissingReturnAllPathsCovered(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    if a > 0 {
        return a
    } else {
        return 0
    }
}`
	issues, err := DetectMissingReturn("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestDetectMissingReturnIgnoresVoidFunctions(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) {
    if a > 0 {
        return
    }
}`
	issues, err := DetectMissingReturn("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestDetectUnusedFunctions(t *testing.T) {
	t.Parallel()
	src := `contract C {
    init() {
        self.setup()
    }

    func setup() {}

    func orphan() {}

    public func entry() {}
}`
	issues, err := DetectUnusedFunctions("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "unused-function", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "orphan")
}

func TestDetectHighCyclomaticComplexity(t *testing.T) {
	t.Parallel()
	var b strings.Builder
	b.WriteString("func tangled(a: UInt256) {\n")
	for i := 0; i < 11; i++ {
		b.WriteString("    if a > 0 {\n    }\n")
	}
	b.WriteString("}\n")

	issues, err := DetectHighCyclomaticComplexity("test.swsc", parseProg(t, b.String()), 10)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "high-cyclomatic-complexity", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "complexity of 12")
}

func TestCyclomaticComplexityCountsLogicalOperators(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256, b: UInt256) {
    if a > 0 && b > 0 || a == b {
        return
    }
}`
	// 1 base + if + && + || = 4
	issues, err := DetectHighCyclomaticComplexity("test.swsc", parseProg(t, src), 3)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "complexity of 4")
}

func TestDetectUnnecessaryElse(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) -> UInt256 {
    if a > 0 {
        return a
    } else {
        return 0
    }
}`
	issues, err := DetectUnnecessaryElse("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "unnecessary-else", issues[0].Rule)
}

func TestUnnecessaryElseCleanWhenThenFallsThrough(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) {
    if a > 0 {
        let x = a
    } else {
        let y = a
    }
}`
	issues, err := DetectUnnecessaryElse("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}
