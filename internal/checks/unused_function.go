package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// DetectUnusedFunctions reports private functions that are never called
// anywhere in the program. Entry points are exempt:
//  1. init, which runs on deployment,
//  2. public functions, which external callers invoke.
func DetectUnusedFunctions(filename string, prog *ast.Program) ([]tt.Issue, error) {
	declared := make(map[string]*ast.Function)
	called := make(map[string]bool)

	forEachFunction(prog, func(fn *ast.Function) {
		declared[fn.Name] = fn
	})

	ast.Inspect(prog, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		switch fun := call.Fun.(type) {
		case *ast.Ident:
			called[fun.Name] = true
		case *ast.FieldExpr:
			// self.helper() resolves within the program; external
			// receivers do not mark local functions used
			if id, ok := fun.X.(*ast.Ident); ok && id.Name == "self" {
				called[fun.Name] = true
			}
		}
		return true
	})

	var issues []tt.Issue
	for name, fn := range declared {
		if called[name] || fn.Public || name == "init" {
			continue
		}
		issues = append(issues, tt.Issue{
			Rule:     "unused-function",
			Category: "style",
			Severity: tt.SeverityWarning,
			Filename: filename,
			Message:  fmt.Sprintf("function %s is declared but never called", name),
			Start:    fn.Pos(),
			End:      fn.Pos(),
		})
	}
	return issues, nil
}
