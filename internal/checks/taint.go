package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// DetectTaintFlows tracks values derived from the parameters of public
// functions (untrusted callers control them) and reports when such a
// value reaches an external call argument or a storage write without a
// require() mentioning it first. The propagation is name-based and
// flow-insensitive within branches, which keeps it cheap and
// predictable.
func DetectTaintFlows(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	forEachFunction(prog, func(fn *ast.Function) {
		if !fn.Public || fn.Name == "init" {
			return
		}

		tainted := make(map[string]bool)
		for _, p := range fn.Params {
			tainted[p.Name] = true
		}
		sanitized := make(map[string]bool)

		walkStmts(fn.Body, func(stmt ast.Stmt) {
			switch s := stmt.(type) {
			case *ast.LetStmt:
				if s.Init != nil && exprTainted(s.Init, tainted, sanitized) {
					tainted[s.Name] = true
				}

			case *ast.RequireStmt:
				// a require mentioning a tainted name counts as
				// validation for the rest of the function
				for name := range tainted {
					if exprMentions(s.Cond, name) {
						sanitized[name] = true
					}
				}

			case *ast.ExprStmt:
				bin, ok := s.X.(*ast.BinaryExpr)
				if ok && bin.Op == ast.Assign {
					if field, isStore := ast.SelfFieldTarget(bin.X); isStore {
						if exprTainted(bin.Y, tainted, sanitized) {
							issues = append(issues, tt.Issue{
								Rule:       "taint-storage-write",
								Category:   "taint",
								Severity:   tt.SeverityWarning,
								Filename:   filename,
								Message:    fmt.Sprintf("unvalidated caller input flows into storage field %q", field),
								Suggestion: "Validate the value with require() before persisting it.",
								Start:      bin.Pos(),
								End:        bin.End(),
							})
						}
						return
					}
					// local reassignment propagates or clears taint
					if id, ok := bin.X.(*ast.Ident); ok {
						tainted[id.Name] = exprTainted(bin.Y, tainted, sanitized)
					}
					return
				}
				reportTaintedCallArgs(filename, s.X, fn.Name, tainted, sanitized, &issues)
			}
		})
	})

	return issues, nil
}

func reportTaintedCallArgs(
	filename string,
	expr ast.Expr,
	fnName string,
	tainted, sanitized map[string]bool,
	issues *[]tt.Issue,
) {
	ast.Inspect(expr, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || !ast.IsExternalCall(call) {
			return true
		}
		for _, arg := range call.Args {
			if exprTainted(arg, tainted, sanitized) {
				*issues = append(*issues, tt.Issue{
					Rule:       "taint-external-call",
					Category:   "taint",
					Severity:   tt.SeverityWarning,
					Filename:   filename,
					Message:    fmt.Sprintf("unvalidated caller input of %s is passed to an external call", fnName),
					Suggestion: "Validate the value with require() before forwarding it to another contract.",
					Start:      call.Pos(),
					End:        call.End(),
				})
				return true
			}
		}
		return true
	})
}

// exprTainted reports whether the expression mentions a tainted,
// not-yet-sanitized name.
func exprTainted(expr ast.Expr, tainted, sanitized map[string]bool) bool {
	found := false
	ast.Inspect(expr, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			if tainted[id.Name] && !sanitized[id.Name] {
				found = true
			}
		}
		return !found
	})
	return found
}

// exprMentions reports whether the expression references name.
func exprMentions(expr ast.Expr, name string) bool {
	found := false
	ast.Inspect(expr, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && id.Name == name {
			found = true
		}
		return !found
	})
	return found
}
