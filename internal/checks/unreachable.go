package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/analysis/cfg"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// DetectUnreachableCode reports statements no execution path can
// reach, such as code after a return or after an if/else where both
// branches return.
func DetectUnreachableCode(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	forEachFunction(prog, func(fn *ast.Function) {
		graph := cfg.FromFunc(fn)
		for _, stmt := range graph.UnreachableStmts() {
			issues = append(issues, tt.Issue{
				Rule:     "unreachable-code",
				Category: "flow",
				Severity: tt.SeverityWarning,
				Filename: filename,
				Message:  fmt.Sprintf("unreachable code in %s", fn.Name),
				Start:    stmt.Pos(),
				End:      stmt.End(),
			})
		}
	})

	return issues, nil
}

// DetectMissingReturn reports functions declaring a result type where
// some execution path reaches the end of the body without returning.
func DetectMissingReturn(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	forEachFunction(prog, func(fn *ast.Function) {
		if fn.Result == nil {
			return
		}
		graph := cfg.FromFunc(fn)
		if len(graph.MissingReturnPaths()) == 0 {
			return
		}
		issues = append(issues, tt.Issue{
			Rule:     "missing-return",
			Category: "flow",
			Severity: tt.SeverityError,
			Filename: filename,
			Message:  fmt.Sprintf("function %s declares result %s but can finish without returning", fn.Name, fn.Result.Name),
			Start:    fn.Pos(),
			End:      fn.Pos(),
		})
	})

	return issues, nil
}
