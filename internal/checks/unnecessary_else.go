package checks

import (
	"github.com/swiftsc-lang/sclint/ast"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// DetectUnnecessaryElse reports else blocks that follow a then-branch
// ending in a return. The else can be dropped and its body flattened,
// which reads better in audit-heavy contract code.
func DetectUnnecessaryElse(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	ast.Inspect(prog, func(n ast.Node) bool {
		ifStmt, ok := n.(*ast.IfStmt)
		if !ok || ifStmt.Else == nil {
			return true
		}
		stmts := ifStmt.Then.Stmts
		if len(stmts) == 0 {
			return true
		}
		if _, isReturn := stmts[len(stmts)-1].(*ast.ReturnStmt); isReturn {
			issues = append(issues, tt.Issue{
				Rule:       "unnecessary-else",
				Category:   "style",
				Severity:   tt.SeverityInfo,
				Filename:   filename,
				Message:    "unnecessary else block",
				Suggestion: "The if block ends with a return; flatten the else body into the enclosing scope.",
				Start:      ifStmt.Else.Pos(),
				End:        ifStmt.Else.End(),
			})
		}
		return true
	})

	return issues, nil
}
