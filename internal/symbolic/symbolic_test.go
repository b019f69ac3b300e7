package symbolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/parser"
)

// condOf parses a single-require function and returns the condition.
func condOf(t *testing.T, cond string) ast.Expr {
	t.Helper()
	src := "func f() { require(" + cond + ") }"
	prog, _, err := parser.ParseFile("t.swsc", []byte(src))
	require.NoError(t, err)
	fn := prog.Items[0].(*ast.Function)
	return fn.Body.Stmts[0].(*ast.RequireStmt).Cond
}

func TestEvalBoolConstants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		cond string
		want Tri
	}{
		{"true", True},
		{"false", False},
		{"1 == 1", True},
		{"1 == 2", False},
		{"10 > 2 * 3", True},
		{"1 + 2 >= 4", False},
		{"!false", True},
		{"!(1 < 0)", True},
		{"true && false", False},
		{"true || false", True},
		{"x > 0", Unknown},
		{"x > 0 || true", True},   // short-circuit with unknown operand
		{"x > 0 && false", False}, // ditto
		{"x > 0 && true", Unknown},
	}
	for _, tt := range tests {
		got := EvalBool(condOf(t, tt.cond), NewEnv())
		assert.Equal(t, tt.want, got, "condition %q", tt.cond)
	}
}

func TestEvalBoolWithEnv(t *testing.T) {
	t.Parallel()
	env := NewEnv()
	env.Bind("limit", Value{Kind: IntValue, Int: 100})

	assert.Equal(t, True, EvalBool(condOf(t, "limit == 100"), env))
	assert.Equal(t, False, EvalBool(condOf(t, "limit < 100"), env))
	assert.Equal(t, Unknown, EvalBool(condOf(t, "limit < amount"), env))

	env.Forget("limit")
	assert.Equal(t, Unknown, EvalBool(condOf(t, "limit == 100"), env))
}

func TestEvalInt(t *testing.T) {
	t.Parallel()
	_, ok := EvalInt(condOf(t, "2 * 3 + 4 == 0"), NewEnv())
	assert.False(t, ok) // boolean, not int

	// evaluate arithmetic subexpression directly
	cond := condOf(t, "1_000 + 24 == 0").(*ast.BinaryExpr)
	v, ok := EvalInt(cond.X, NewEnv())
	require.True(t, ok)
	assert.Equal(t, int64(1024), v)

	// division by literal zero does not fold
	cond = condOf(t, "1 / 0 == 0").(*ast.BinaryExpr)
	_, ok = EvalInt(cond.X, NewEnv())
	assert.False(t, ok)
}

func TestTriNot(t *testing.T) {
	t.Parallel()
	assert.Equal(t, False, True.Not())
	assert.Equal(t, True, False.Not())
	assert.Equal(t, Unknown, Unknown.Not())
}
