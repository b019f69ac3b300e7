package checks

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/internal/symtab"
	tt "github.com/swiftsc-lang/sclint/internal/types"
)

// builtins are ambient names every SwiftSC function can reference.
var builtins = map[string]bool{
	"self":  true,
	"msg":   true,
	"block": true,
	"tx":    true,
}

// DetectUndefinedSymbols reports identifier references that resolve to
// neither a parameter, a local binding, a declared function or
// contract, nor a builtin. When a cross-file symbol table is given it
// extends the set of known top-level names.
func DetectUndefinedSymbols(filename string, prog *ast.Program, table *symtab.Table) ([]tt.Issue, error) {
	var issues []tt.Issue

	topLevel := collectTopLevelNames(prog)

	forEachFunction(prog, func(fn *ast.Function) {
		scope := make(map[string]bool)
		for _, p := range fn.Params {
			scope[p.Name] = true
		}
		checkBlockSymbols(filename, fn.Body, scope, topLevel, table, &issues)
	})

	return issues, nil
}

func collectTopLevelNames(prog *ast.Program) map[string]bool {
	names := make(map[string]bool)
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Contract:
			names[it.Name] = true
			for _, member := range it.Members {
				if fn, ok := member.(*ast.Function); ok {
					names[fn.Name] = true
				}
			}
		case *ast.Function:
			names[it.Name] = true
		case *ast.StructDecl:
			names[it.Name] = true
		case *ast.UseDecl:
			// imported modules are referenced by their last segment
			names[lastSegment(it.Path)] = true
		}
	}
	return names
}

func lastSegment(path string) string {
	last := path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			last = path[i+1:]
			break
		}
	}
	return last
}

func checkBlockSymbols(
	filename string,
	block *ast.Block,
	scope map[string]bool,
	topLevel map[string]bool,
	table *symtab.Table,
	issues *[]tt.Issue,
) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			if s.Init != nil {
				checkExprSymbols(filename, s.Init, scope, topLevel, table, issues)
			}
			scope[s.Name] = true
		case *ast.IfStmt:
			checkExprSymbols(filename, s.Cond, scope, topLevel, table, issues)
			checkBlockSymbols(filename, s.Then, cloneScope(scope), topLevel, table, issues)
			checkBlockSymbols(filename, s.Else, cloneScope(scope), topLevel, table, issues)
		case *ast.WhileStmt:
			checkExprSymbols(filename, s.Cond, scope, topLevel, table, issues)
			checkBlockSymbols(filename, s.Body, cloneScope(scope), topLevel, table, issues)
		case *ast.ReturnStmt:
			if s.Result != nil {
				checkExprSymbols(filename, s.Result, scope, topLevel, table, issues)
			}
		case *ast.RequireStmt:
			checkExprSymbols(filename, s.Cond, scope, topLevel, table, issues)
			if s.Message != nil {
				checkExprSymbols(filename, s.Message, scope, topLevel, table, issues)
			}
		case *ast.AssertStmt:
			checkExprSymbols(filename, s.Cond, scope, topLevel, table, issues)
		case *ast.EmitStmt:
			for _, arg := range s.Args {
				checkExprSymbols(filename, arg, scope, topLevel, table, issues)
			}
		case *ast.ExprStmt:
			checkExprSymbols(filename, s.X, scope, topLevel, table, issues)
		}
	}
}

func cloneScope(scope map[string]bool) map[string]bool {
	clone := make(map[string]bool, len(scope))
	for k := range scope {
		clone[k] = true
	}
	return clone
}

func checkExprSymbols(
	filename string,
	expr ast.Expr,
	scope map[string]bool,
	topLevel map[string]bool,
	table *symtab.Table,
	issues *[]tt.Issue,
) {
	ast.Inspect(expr, func(n ast.Node) bool {
		// field names are resolved against the receiver's type, not
		// the lexical scope; only inspect the receiver side
		if fe, ok := n.(*ast.FieldExpr); ok {
			checkExprSymbols(filename, fe.X, scope, topLevel, table, issues)
			return false
		}
		id, ok := n.(*ast.Ident)
		if !ok {
			return true
		}
		if scope[id.Name] || topLevel[id.Name] || builtins[id.Name] {
			return true
		}
		if table != nil && table.IsDefined(id.Name) {
			return true
		}
		*issues = append(*issues, tt.Issue{
			Rule:     "undefined-symbol",
			Category: "semantic",
			Severity: tt.SeverityError,
			Filename: filename,
			Message:  fmt.Sprintf("undefined symbol %q", id.Name),
			Start:    id.Pos(),
			End:      id.End(),
		})
		return true
	})
}

// DetectDuplicateDeclarations reports names declared twice in the same
// scope: storage fields, parameters, contract members, and locals.
func DetectDuplicateDeclarations(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	report := func(kind, name string, node ast.Node) {
		issues = append(issues, tt.Issue{
			Rule:     "duplicate-declaration",
			Category: "semantic",
			Severity: tt.SeverityError,
			Filename: filename,
			Message:  fmt.Sprintf("%s %q is declared more than once", kind, name),
			Start:    node.Pos(),
			End:      node.End(),
		})
	}

	for _, item := range prog.Items {
		contract, ok := item.(*ast.Contract)
		if !ok {
			continue
		}
		memberNames := make(map[string]bool)
		for _, member := range contract.Members {
			switch m := member.(type) {
			case *ast.StorageBlock:
				fieldNames := make(map[string]bool)
				for _, f := range m.Fields {
					if fieldNames[f.Name] {
						report("storage field", f.Name, f)
					}
					fieldNames[f.Name] = true
				}
			case *ast.Function:
				if memberNames[m.Name] {
					report("function", m.Name, m)
				}
				memberNames[m.Name] = true
			case *ast.EventDecl:
				if memberNames[m.Name] {
					report("event", m.Name, m)
				}
				memberNames[m.Name] = true
			}
		}
	}

	forEachFunction(prog, func(fn *ast.Function) {
		paramNames := make(map[string]bool)
		for _, p := range fn.Params {
			if paramNames[p.Name] {
				report("parameter", p.Name, p)
			}
			paramNames[p.Name] = true
		}
		checkDuplicateLocals(fn.Body, cloneScope(paramNames), report)
	})

	return issues, nil
}

func checkDuplicateLocals(block *ast.Block, declared map[string]bool, report func(string, string, ast.Node)) {
	if block == nil {
		return
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			if declared[s.Name] {
				report("binding", s.Name, s)
			}
			declared[s.Name] = true
		case *ast.IfStmt:
			checkDuplicateLocals(s.Then, cloneScope(declared), report)
			checkDuplicateLocals(s.Else, cloneScope(declared), report)
		case *ast.WhileStmt:
			checkDuplicateLocals(s.Body, cloneScope(declared), report)
		}
	}
}

// DetectUninitializedLocals reports reads of a `var x: T` binding that
// happen before any assignment to it. Bindings with an initializer
// cannot be read uninitialized and are skipped.
func DetectUninitializedLocals(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	forEachFunction(prog, func(fn *ast.Function) {
		uninit := make(map[string]bool)
		checkUninitializedLocals(filename, fn.Body, uninit, &issues)
	})

	return issues, nil
}

func checkUninitializedLocals(filename string, block *ast.Block, uninit map[string]bool, issues *[]tt.Issue) {
	if block == nil {
		return
	}
	report := func(id *ast.Ident) {
		*issues = append(*issues, tt.Issue{
			Rule:     "uninitialized-local",
			Category: "semantic",
			Severity: tt.SeverityWarning,
			Filename: filename,
			Message:  fmt.Sprintf("%q is read before it is assigned", id.Name),
			Start:    id.Pos(),
			End:      id.End(),
		})
		// one report per binding
		delete(uninit, id.Name)
	}
	checkRead := func(expr ast.Expr) {
		ast.Inspect(expr, func(n ast.Node) bool {
			if id, ok := n.(*ast.Ident); ok && uninit[id.Name] {
				report(id)
			}
			return true
		})
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			if s.Init != nil {
				checkRead(s.Init)
			} else {
				uninit[s.Name] = true
			}
		case *ast.ExprStmt:
			if bin, ok := s.X.(*ast.BinaryExpr); ok && bin.Op == ast.Assign {
				checkRead(bin.Y)
				if id, ok := bin.X.(*ast.Ident); ok {
					// an assignment clears the binding even inside a branch
					delete(uninit, id.Name)
					continue
				}
				checkRead(bin.X)
				continue
			}
			checkRead(s.X)
		case *ast.IfStmt:
			checkRead(s.Cond)
			checkUninitializedLocals(filename, s.Then, uninit, issues)
			checkUninitializedLocals(filename, s.Else, uninit, issues)
		case *ast.WhileStmt:
			checkRead(s.Cond)
			checkUninitializedLocals(filename, s.Body, uninit, issues)
		case *ast.ReturnStmt:
			if s.Result != nil {
				checkRead(s.Result)
			}
		case *ast.RequireStmt:
			checkRead(s.Cond)
			if s.Message != nil {
				checkRead(s.Message)
			}
		case *ast.AssertStmt:
			checkRead(s.Cond)
		case *ast.EmitStmt:
			for _, arg := range s.Args {
				checkRead(arg)
			}
		}
	}
}

// DetectArityMismatch reports calls to functions declared in the same
// program with a different number of arguments, and emit statements
// whose argument count disagrees with the event declaration.
func DetectArityMismatch(filename string, prog *ast.Program) ([]tt.Issue, error) {
	var issues []tt.Issue

	// index declared functions and events by name
	arities := make(map[string]int)
	events := make(map[string]int)
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Function:
			arities[it.Name] = len(it.Params)
		case *ast.Contract:
			for _, member := range it.Members {
				switch m := member.(type) {
				case *ast.Function:
					arities[m.Name] = len(m.Params)
				case *ast.EventDecl:
					events[m.Name] = len(m.Params)
				}
			}
		}
	}

	ast.Inspect(prog, func(n ast.Node) bool {
		switch e := n.(type) {
		case *ast.CallExpr:
			// direct calls and self-method calls resolve locally;
			// external receivers are out of reach
			var name string
			switch fun := e.Fun.(type) {
			case *ast.Ident:
				name = fun.Name
			case *ast.FieldExpr:
				if id, ok := fun.X.(*ast.Ident); ok && id.Name == "self" {
					name = fun.Name
				}
			}
			want, known := arities[name]
			if known && len(e.Args) != want {
				issues = append(issues, tt.Issue{
					Rule:     "arity-mismatch",
					Category: "semantic",
					Severity: tt.SeverityError,
					Filename: filename,
					Message:  fmt.Sprintf("%s expects %d argument(s), got %d", name, want, len(e.Args)),
					Start:    e.Pos(),
					End:      e.End(),
				})
			}
		case *ast.EmitStmt:
			want, known := events[e.Event]
			if !known {
				issues = append(issues, tt.Issue{
					Rule:     "arity-mismatch",
					Category: "semantic",
					Severity: tt.SeverityError,
					Filename: filename,
					Message:  fmt.Sprintf("emit of undeclared event %q", e.Event),
					Start:    e.Pos(),
					End:      e.End(),
				})
			} else if len(e.Args) != want {
				issues = append(issues, tt.Issue{
					Rule:     "arity-mismatch",
					Category: "semantic",
					Severity: tt.SeverityError,
					Filename: filename,
					Message:  fmt.Sprintf("event %s expects %d argument(s), got %d", e.Event, want, len(e.Args)),
					Start:    e.Pos(),
					End:      e.End(),
				})
			}
		}
		return true
	})

	return issues, nil
}
