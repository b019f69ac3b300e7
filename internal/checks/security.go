// Package checks implements the individual analysis rules run by the
// engine. Every rule is a Detect* function from a parsed program to a
// slice of issues.
package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// DetectUninitializedStorage reports storage fields that the contract
// constructor never assigns. Reading such a field observes the zero
// value, which is almost never what the author intended for owners,
// caps, or addresses.
func DetectUninitializedStorage(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	for _, item := range prog.Items {
		contract, ok := item.(*ast.Contract)
		if !ok {
			continue
		}

		storageFields := make(map[string]*ast.Field)
		for _, member := range contract.Members {
			if sb, ok := member.(*ast.StorageBlock); ok {
				for _, f := range sb.Fields {
					storageFields[f.Name] = f
				}
			}
		}
		if len(storageFields) == 0 {
			continue
		}

		var initFn *ast.Function
		for _, member := range contract.Members {
			if d, ok := member.(*ast.InitDecl); ok {
				initFn = d.Func
			}
		}

		initialized := make(map[string]bool)
		if initFn != nil {
			collectInitializations(initFn.Body, initialized)
		}

		for name, field := range storageFields {
			if initialized[name] {
				continue
			}
			issues = append(issues, tt.Issue{
				Rule:       "uninitialized-storage",
				Category:   "security",
				Severity:   tt.SeverityWarning,
				Filename:   filename,
				Message:    fmt.Sprintf("storage field %q of contract %s is never initialized in init", name, contract.Name),
				Suggestion: fmt.Sprintf("self.%s = <initial value>", name),
				Note:       "Uninitialized storage observes the type's zero value, which silently disables owner checks and balance accounting.\n",
				Start:      field.Pos(),
				End:        field.End(),
			})
		}
	}

	return issues, nil
}

// collectInitializations records the storage fields assigned via
// `self.field = ...` anywhere in the block, including nested branches
// and loops.
func collectInitializations(block *ast.Block, initialized map[string]bool) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.ExprStmt:
			if bin, ok := s.X.(*ast.BinaryExpr); ok && bin.Op == ast.Assign {
				if name, ok := ast.SelfFieldTarget(bin.X); ok {
					initialized[name] = true
				}
			}
		case *ast.IfStmt:
			collectInitializations(s.Then, initialized)
			collectInitializations(s.Else, initialized)
		case *ast.WhileStmt:
			collectInitializations(s.Body, initialized)
		}
	}
}

// DetectUncheckedArithmetic reports +, - and * operations whose result
// can silently wrap. Operations on two literals are exempt unless
// strict is set, in which case every occurrence is reported.
func DetectUncheckedArithmetic(filename string, prog *ast.Program, strict bool) ([]tt.Issue, error) {
	var issues []tt.Issue

	ast.Inspect(prog, func(n ast.Node) bool {
		bin, ok := n.(*ast.BinaryExpr)
		if !ok {
			return true
		}
		switch bin.Op {
		case ast.Add, ast.Sub, ast.Mul:
			if !strict && literalOperands(bin) {
				return true
			}
			issues = append(issues, tt.Issue{
				Rule:     "unchecked-arithmetic",
				Category: "security",
				Severity: tt.SeverityInfo,
				Filename: filename,
				Message:  fmt.Sprintf("unchecked %s operation may overflow", bin.Op),
				Note:     "Guard the operands with require() or use a checked arithmetic helper.\n",
				Start:    bin.Pos(),
				End:      bin.End(),
			})
		}
		return true
	})

	return issues, nil
}

func literalOperands(bin *ast.BinaryExpr) bool {
	_, xLit := bin.X.(*ast.BasicLit)
	_, yLit := bin.Y.(*ast.BasicLit)
	return xLit && yLit
}

// DetectReentrancy reports storage writes that happen after a potential
// external call within the same function. An external contract invoked
// before the state update can re-enter and observe stale state, the
// classic reentrancy shape.
func DetectReentrancy(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	forEachFunction(prog, func(fn *ast.Function) {
		// the flag is function-scoped: once an external call is seen,
		// every later storage write in the function is suspect
		externalCallSeen := false
		ast.Inspect(fn.Body, func(n ast.Node) bool {
			switch e := n.(type) {
			case *ast.CallExpr:
				if ast.IsExternalCall(e) {
					externalCallSeen = true
				}
			case *ast.BinaryExpr:
				if e.Op != ast.Assign || !externalCallSeen {
					return true
				}
				if field, ok := ast.SelfFieldTarget(e.X); ok {
					issues = append(issues, tt.Issue{
						Rule:       "reentrancy",
						Category:   "security",
						Severity:   tt.SeverityError,
						Filename:   filename,
						Message:    fmt.Sprintf("storage field %q is modified after an external call in %s", field, fn.Name),
						Suggestion: "Update contract state before making external calls (checks-effects-interactions).",
						Start:      e.Pos(),
						End:        e.End(),
					})
				}
			}
			return true
		})
	})

	return issues, nil
}

// forEachFunction visits every function in the program: free functions,
// contract methods, and constructors.
func forEachFunction(prog *ast.Program, f func(*ast.Function)) {
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Function:
			f(it)
		case *ast.Contract:
			for _, member := range it.Members {
				switch m := member.(type) {
				case *ast.Function:
					f(m)
				case *ast.InitDecl:
					f(m.Func)
				}
			}
		}
	}
}

// walkStmts visits every statement of a block in source order,
// descending into nested blocks.
func walkStmts(block *ast.Block, f func(ast.Stmt)) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		f(stmt)
		switch s := stmt.(type) {
		case *ast.IfStmt:
			walkStmts(s.Then, f)
			walkStmts(s.Else, f)
		case *ast.WhileStmt:
			walkStmts(s.Body, f)
		}
	}
}
