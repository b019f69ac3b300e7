package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// DefaultComplexityThreshold follows McCabe's recommendation of 10.
const DefaultComplexityThreshold = 10

// DetectHighCyclomaticComplexity reports functions whose cyclomatic
// complexity exceeds the threshold. Complexity is 1 plus one for each
// decision point: if, while, && and ||.
func DetectHighCyclomaticComplexity(filename string, prog *ast.Program, threshold int) ([]tt.Issue, error) {
	if threshold <= 0 {
		threshold = DefaultComplexityThreshold
	}

	var issues []tt.Issue
	forEachFunction(prog, func(fn *ast.Function) {
		complexity := cyclomaticComplexity(fn)
		if complexity <= threshold {
			return
		}
		issues = append(issues, tt.Issue{
			Rule:       "high-cyclomatic-complexity",
			Category:   "style",
			Severity:   tt.SeverityWarning,
			Filename:   filename,
			Message:    fmt.Sprintf("function %s has a cyclomatic complexity of %d (threshold %d)", fn.Name, complexity, threshold),
			Suggestion: "Consider splitting this function into smaller ones or simplifying its branching.\n",
			Note:       "High cyclomatic complexity makes contract code harder to audit. Aim for a score of 10 or less.\n",
			Start:      fn.Pos(),
			End:        fn.Pos(),
		})
	})
	return issues, nil
}

func cyclomaticComplexity(fn *ast.Function) int {
	complexity := 1
	ast.Inspect(fn.Body, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.IfStmt, *ast.WhileStmt:
			complexity++
		case *ast.BinaryExpr:
			if e.Op == ast.LAnd || e.Op == ast.LOr {
				complexity++
			}
		}
		return true
	})
	return complexity
}
