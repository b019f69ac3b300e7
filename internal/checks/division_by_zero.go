package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/symbolic"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// DetectDivisionByZero reports division and modulo operations whose
// denominator is the literal zero, and parameter-derived denominators
// that are never guarded before use.
func DetectDivisionByZero(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	forEachFunction(prog, func(fn *ast.Function) {
		params := make(map[string]bool)
		for _, p := range fn.Params {
			params[p.Name] = true
		}
		guarded := make(map[string]bool)

		walkStmts(fn.Body, func(stmt ast.Stmt) {
			// require/if conditions mentioning a parameter guard it
			switch s := stmt.(type) {
			case *ast.RequireStmt:
				markGuarded(s.Cond, params, guarded)
			case *ast.IfStmt:
				markGuarded(s.Cond, params, guarded)
			}

			for _, expr := range ownExprs(stmt) {
				ast.Inspect(expr, func(n ast.Node) bool {
					bin, ok := n.(*ast.BinaryExpr)
					if !ok || (bin.Op != ast.Div && bin.Op != ast.Mod) {
						return true
					}

					if n, known := symbolic.EvalInt(bin.Y, symbolic.NewEnv()); known && n == 0 {
						issues = append(issues, tt.Issue{
							Rule:     "division-by-zero",
							Category: "security",
							Severity: tt.SeverityError,
							Filename: filename,
							Message:  fmt.Sprintf("%s by constant zero", opNoun(bin.Op)),
							Start:    bin.Pos(),
							End:      bin.End(),
						})
						return true
					}

					if id, ok := bin.Y.(*ast.Ident); ok && params[id.Name] && !guarded[id.Name] {
						issues = append(issues, tt.Issue{
							Rule:       "division-by-zero",
							Category:   "security",
							Severity:   tt.SeverityWarning,
							Filename:   filename,
							Message:    fmt.Sprintf("%s by parameter %q which may be zero", opNoun(bin.Op), id.Name),
							Suggestion: fmt.Sprintf("require(%s != 0)", id.Name),
							Start:      bin.Pos(),
							End:        bin.End(),
						})
					}
					return true
				})
			}
		})
	})

	return issues, nil
}

func opNoun(op ast.BinaryOp) string {
	if op == ast.Mod {
		return "modulo"
	}
	return "division"
}

func markGuarded(cond ast.Expr, params, guarded map[string]bool) {
	ast.Inspect(cond, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && params[id.Name] {
			guarded[id.Name] = true
		}
		return true
	})
}
