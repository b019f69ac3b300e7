package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectConstantConditions(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) {
    let cap = 100
    require(cap > 0, "cap must be positive")
    if false {
        let dead = 1
    }
    assert(cap < 50)
    while 1 > 2 {
        let never = 1
    }
    if a > cap {
        return
    }
}`
	issues, err := DetectConstantConditions("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	require.Len(t, issues, 4)

	assert.Contains(t, issues[0].Message, "require condition is always true")
	assert.Contains(t, issues[1].Message, "if condition is always false")
	assert.Contains(t, issues[2].Message, "assert condition is always false")
	assert.Contains(t, issues[3].Message, "while condition is always false")
}

func TestConstantConditionsReassignmentInvalidates(t *testing.T) {
	t.Parallel()
	src := `func f(y: UInt256) {
    let x = 1
    x = y
    if x == 1 {
        return
    }
}`
	issues, err := DetectConstantConditions("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestConstantConditionsWhileTrueNotReported(t *testing.T) {
	t.Parallel()
	// an always-true loop condition is how bounded loops exit early
	src := `func f(n: UInt256) {
    while true {
        if n == 0 {
            return
        }
    }
}`
	issues, err := DetectConstantConditions("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestConstantConditionsUnknownParamIsClean(t *testing.T) {
	t.Parallel()
	src := `func f(a: UInt256) {
    require(a > 0)
}`
	issues, err := DetectConstantConditions("test.swsc", parseProg(t, src))
	require.NoError(t, err)
	assert.Empty(t, issues)
}
