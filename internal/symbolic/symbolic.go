// Package symbolic implements a small three-valued evaluator for
// SwiftSC expressions. It folds constants where possible and answers
// True, False, or Unknown for boolean conditions, which is enough to
// prove a require/assert/if condition redundant or unsatisfiable
// without a full prover.
package symbolic

import (
	"strconv"
	"strings"

	"github.com/swiftsc-lang/sclint/ast"
)

// Tri is a three-valued truth value.
type Tri int

const (
	Unknown Tri = iota
	True
	False
)

func (t Tri) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	}
	return "unknown"
}

// Not negates a three-valued truth value. Unknown stays Unknown.
func (t Tri) Not() Tri {
	switch t {
	case True:
		return False
	case False:
		return True
	}
	return Unknown
}

// ValueKind discriminates the kinds of known values.
type ValueKind int

const (
	IntValue ValueKind = iota
	BoolValue
	StringValue
)

// Value is a known constant value.
type Value struct {
	Kind ValueKind
	Int  int64
	Bool bool
	Str  string
}

// Env binds names to known constant values. A name absent from the
// environment is Unknown.
type Env struct {
	bindings map[string]Value
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{bindings: make(map[string]Value)}
}

// Bind records a known constant for a name.
func (e *Env) Bind(name string, v Value) {
	e.bindings[name] = v
}

// Forget drops a binding, typically after the name is reassigned to a
// non-constant expression.
func (e *Env) Forget(name string) {
	delete(e.bindings, name)
}

// Lookup returns the known value of a name, if any.
func (e *Env) Lookup(name string) (Value, bool) {
	if e == nil {
		return Value{}, false
	}
	v, ok := e.bindings[name]
	return v, ok
}

// EvalBool evaluates expr as a boolean condition under env.
func EvalBool(expr ast.Expr, env *Env) Tri {
	v, ok := eval(expr, env)
	if !ok || v.Kind != BoolValue {
		return Unknown
	}
	if v.Bool {
		return True
	}
	return False
}

// EvalInt evaluates expr as an integer constant under env.
func EvalInt(expr ast.Expr, env *Env) (int64, bool) {
	v, ok := eval(expr, env)
	if !ok || v.Kind != IntValue {
		return 0, false
	}
	return v.Int, true
}

func eval(expr ast.Expr, env *Env) (Value, bool) {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return evalLit(e)
	case *ast.Ident:
		return env.Lookup(e.Name)
	case *ast.ParenExpr:
		return eval(e.X, env)
	case *ast.UnaryExpr:
		return evalUnary(e, env)
	case *ast.BinaryExpr:
		return evalBinary(e, env)
	}
	return Value{}, false
}

func evalLit(lit *ast.BasicLit) (Value, bool) {
	switch lit.Kind {
	case ast.IntLit:
		raw := strings.ReplaceAll(lit.Value, "_", "")
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return Value{Kind: IntValue, Int: n}, true
	case ast.BoolLit:
		return Value{Kind: BoolValue, Bool: lit.Value == "true"}, true
	case ast.StringLit:
		return Value{Kind: StringValue, Str: lit.Value}, true
	}
	return Value{}, false
}

func evalUnary(e *ast.UnaryExpr, env *Env) (Value, bool) {
	v, ok := eval(e.X, env)
	if !ok {
		return Value{}, false
	}
	switch e.Op {
	case ast.Not:
		if v.Kind != BoolValue {
			return Value{}, false
		}
		return Value{Kind: BoolValue, Bool: !v.Bool}, true
	case ast.Neg:
		if v.Kind != IntValue {
			return Value{}, false
		}
		return Value{Kind: IntValue, Int: -v.Int}, true
	}
	return Value{}, false
}

func evalBinary(e *ast.BinaryExpr, env *Env) (Value, bool) {
	// short-circuit operators can resolve with one known operand
	if e.Op == ast.LAnd || e.Op == ast.LOr {
		return evalLogical(e, env)
	}

	x, okX := eval(e.X, env)
	y, okY := eval(e.Y, env)
	if !okX || !okY {
		return Value{}, false
	}

	if e.Op.IsArithmetic() {
		if x.Kind != IntValue || y.Kind != IntValue {
			return Value{}, false
		}
		return evalArith(e.Op, x.Int, y.Int)
	}

	if e.Op.IsComparison() {
		return evalCompare(e.Op, x, y)
	}

	return Value{}, false
}

func evalLogical(e *ast.BinaryExpr, env *Env) (Value, bool) {
	x := EvalBool(e.X, env)
	y := EvalBool(e.Y, env)

	switch e.Op {
	case ast.LAnd:
		if x == False || y == False {
			return Value{Kind: BoolValue, Bool: false}, true
		}
		if x == True && y == True {
			return Value{Kind: BoolValue, Bool: true}, true
		}
	case ast.LOr:
		if x == True || y == True {
			return Value{Kind: BoolValue, Bool: true}, true
		}
		if x == False && y == False {
			return Value{Kind: BoolValue, Bool: false}, true
		}
	}
	return Value{}, false
}

func evalArith(op ast.BinaryOp, x, y int64) (Value, bool) {
	switch op {
	case ast.Add:
		return Value{Kind: IntValue, Int: x + y}, true
	case ast.Sub:
		return Value{Kind: IntValue, Int: x - y}, true
	case ast.Mul:
		return Value{Kind: IntValue, Int: x * y}, true
	case ast.Div:
		if y == 0 {
			return Value{}, false
		}
		return Value{Kind: IntValue, Int: x / y}, true
	case ast.Mod:
		if y == 0 {
			return Value{}, false
		}
		return Value{Kind: IntValue, Int: x % y}, true
	}
	return Value{}, false
}

func evalCompare(op ast.BinaryOp, x, y Value) (Value, bool) {
	if x.Kind != y.Kind {
		return Value{}, false
	}

	var result bool
	switch x.Kind {
	case IntValue:
		switch op {
		case ast.Eq:
			result = x.Int == y.Int
		case ast.Neq:
			result = x.Int != y.Int
		case ast.Lt:
			result = x.Int < y.Int
		case ast.Le:
			result = x.Int <= y.Int
		case ast.Gt:
			result = x.Int > y.Int
		case ast.Ge:
			result = x.Int >= y.Int
		}
	case BoolValue:
		switch op {
		case ast.Eq:
			result = x.Bool == y.Bool
		case ast.Neq:
			result = x.Bool != y.Bool
		default:
			return Value{}, false
		}
	case StringValue:
		switch op {
		case ast.Eq:
			result = x.Str == y.Str
		case ast.Neq:
			result = x.Str != y.Str
		default:
			return Value{}, false
		}
	}
	return Value{Kind: BoolValue, Bool: result}, true
}
