package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/symbolic"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// Static cost model. The constants follow the EVM's order of magnitude
// so estimates stay comparable to on-chain intuition.
const (
	costStorageWrite = 5000
	costStorageRead  = 200
	costExternalCall = 2600
	costCallOverhead = 700
	costArithmetic   = 3
	costComparison   = 3
	costEmitBase     = 375
	costEmitPerArg   = 375

	// loops without a provable literal bound are charged a
	// pessimistic fixed trip count
	defaultLoopFactor = 10

	// DefaultGasThreshold is the estimate above which the gas-limit
	// rule fires.
	DefaultGasThreshold = 3_000_000
)

// FunctionGas is the gas estimate of a single function.
type FunctionGas struct {
	Contract string
	Name     string
	Estimate int64
	Pos      ast.Node
}

// EstimateGas computes a static gas estimate for every function in the
// program.
func EstimateGas(prog *ast.Program) []FunctionGas {
	var estimates []FunctionGas

	record := func(contract string, fn *ast.Function) {
		estimates = append(estimates, FunctionGas{
			Contract: contract,
			Name:     fn.Name,
			Estimate: blockGas(fn.Body),
			Pos:      fn,
		})
	}

	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Function:
			record("", it)
		case *ast.Contract:
			for _, member := range it.Members {
				switch m := member.(type) {
				case *ast.Function:
					record(it.Name, m)
				case *ast.InitDecl:
					record(it.Name, m.Func)
				}
			}
		}
	}
	return estimates
}

func blockGas(block *ast.Block) int64 {
	if block == nil {
		return 0
	}
	var total int64
	for _, stmt := range block.Stmts {
		total += stmtGas(stmt)
	}
	return total
}

func stmtGas(stmt ast.Stmt) int64 {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return exprGas(s.Init)
	case *ast.ExprStmt:
		return exprGas(s.X)
	case *ast.ReturnStmt:
		return exprGas(s.Result)
	case *ast.RequireStmt:
		return exprGas(s.Cond) + exprGas(s.Message)
	case *ast.AssertStmt:
		return exprGas(s.Cond)
	case *ast.EmitStmt:
		cost := int64(costEmitBase)
		for _, arg := range s.Args {
			cost += costEmitPerArg + exprGas(arg)
		}
		return cost
	case *ast.IfStmt:
		// charge the more expensive branch
		thenCost := blockGas(s.Then)
		elseCost := blockGas(s.Else)
		branch := thenCost
		if elseCost > branch {
			branch = elseCost
		}
		return exprGas(s.Cond) + branch
	case *ast.WhileStmt:
		factor := loopFactor(s.Cond)
		return factor * (exprGas(s.Cond) + blockGas(s.Body))
	}
	return 0
}

// loopFactor derives a trip-count multiplier for a while loop. A
// comparison against an integer literal bounds the loop; anything else
// falls back to the pessimistic default.
func loopFactor(cond ast.Expr) int64 {
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok || !bin.Op.IsComparison() {
		return defaultLoopFactor
	}
	if n, ok := symbolic.EvalInt(bin.Y, symbolic.NewEnv()); ok && n >= 0 {
		return n + 1
	}
	if n, ok := symbolic.EvalInt(bin.X, symbolic.NewEnv()); ok && n >= 0 {
		return n + 1
	}
	return defaultLoopFactor
}

func exprGas(expr ast.Expr) int64 {
	if expr == nil {
		return 0
	}
	var total int64
	ast.Inspect(expr, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.BinaryExpr:
			switch {
			case e.Op == ast.Assign:
				if _, isStore := ast.SelfFieldTarget(e.X); isStore {
					total += costStorageWrite
				}
			case e.Op.IsArithmetic():
				total += costArithmetic
			case e.Op.IsComparison():
				total += costComparison
			}
		case *ast.FieldExpr:
			// reading a storage slot
			if id, ok := e.X.(*ast.Ident); ok && id.Name == "self" {
				total += costStorageRead
			}
		case *ast.CallExpr:
			if ast.IsExternalCall(e) {
				total += costExternalCall + costCallOverhead
			} else {
				total += costCallOverhead
			}
		}
		return true
	})
	return total
}

// DetectGasLimit reports functions whose static gas estimate exceeds
// the threshold.
func DetectGasLimit(filename string, prog *ast.Program, threshold int64) ([]tt.Issue, error) {
	if threshold <= 0 {
		threshold = DefaultGasThreshold
	}

	var issues []tt.Issue
	for _, fg := range EstimateGas(prog) {
		if fg.Estimate <= threshold {
			continue
		}
		name := fg.Name
		if fg.Contract != "" {
			name = fg.Contract + "." + fg.Name
		}
		issues = append(issues, tt.Issue{
			Rule:       "gas-limit",
			Category:   "gas",
			Severity:   tt.SeverityWarning,
			Filename:   filename,
			Message:    fmt.Sprintf("function %s has an estimated gas cost of %d (threshold %d)", name, fg.Estimate, threshold),
			Suggestion: "Split the function, bound its loops, or reduce storage writes per call.\n",
			Note:       "Estimates are static upper bounds; unbounded loops are charged a fixed pessimistic trip count.\n",
			Start:      fg.Pos.Pos(),
			End:        fg.Pos.Pos(),
		})
	}
	return issues, nil
}
