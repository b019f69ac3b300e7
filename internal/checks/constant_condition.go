package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/symbolic"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// DetectConstantConditions symbolically evaluates require, assert, if
// and while conditions. A condition proved true is dead weight; one
// proved false either reverts every call or hides an unreachable
// branch. Local let bindings with constant initializers feed the
// evaluation environment.
func DetectConstantConditions(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	report := func(kind string, cond ast.Expr, value symbolic.Tri) {
		var msg, note string
		switch {
		case kind == "require" && value == symbolic.True:
			msg = "require condition is always true"
			note = "The check can never fail and only burns gas.\n"
		case kind == "require" && value == symbolic.False:
			msg = "require condition is always false, every call reverts"
		case kind == "assert" && value == symbolic.True:
			msg = "assert condition is always true"
		case kind == "assert" && value == symbolic.False:
			msg = "assert condition is always false"
		case value == symbolic.True:
			msg = fmt.Sprintf("%s condition is always true", kind)
		default:
			msg = fmt.Sprintf("%s condition is always false, the body never runs", kind)
		}
		issues = append(issues, tt.Issue{
			Rule:     "constant-condition",
			Category: "verification",
			Severity: tt.SeverityWarning,
			Filename: filename,
			Message:  msg,
			Note:     note,
			Start:    cond.Pos(),
			End:      cond.End(),
		})
	}

	forEachFunction(prog, func(fn *ast.Function) {
		env := symbolic.NewEnv()
		walkStmts(fn.Body, func(stmt ast.Stmt) {
			switch s := stmt.(type) {
			case *ast.LetStmt:
				bindConstant(env, s)
			case *ast.ExprStmt:
				// reassignment invalidates a previously known constant
				if bin, ok := s.X.(*ast.BinaryExpr); ok && bin.Op == ast.Assign {
					if id, ok := bin.X.(*ast.Ident); ok {
						env.Forget(id.Name)
					}
				}
			case *ast.RequireStmt:
				if v := symbolic.EvalBool(s.Cond, env); v != symbolic.Unknown {
					report("require", s.Cond, v)
				}
			case *ast.AssertStmt:
				if v := symbolic.EvalBool(s.Cond, env); v != symbolic.Unknown {
					report("assert", s.Cond, v)
				}
			case *ast.IfStmt:
				if v := symbolic.EvalBool(s.Cond, env); v != symbolic.Unknown {
					report("if", s.Cond, v)
				}
			case *ast.WhileStmt:
				// only a provably false loop condition is reportable;
				// a true one means the loop must exit by other means
				if v := symbolic.EvalBool(s.Cond, env); v == symbolic.False {
					report("while", s.Cond, v)
				}
			}
		})
	})

	return issues, nil
}

func bindConstant(env *symbolic.Env, s *ast.LetStmt) {
	if s.Init == nil || s.Mutable {
		return
	}
	if n, ok := symbolic.EvalInt(s.Init, env); ok {
		env.Bind(s.Name, symbolic.Value{Kind: symbolic.IntValue, Int: n})
		return
	}
	if v := symbolic.EvalBool(s.Init, env); v != symbolic.Unknown {
		env.Bind(s.Name, symbolic.Value{Kind: symbolic.BoolValue, Bool: v == symbolic.True})
	}
}
