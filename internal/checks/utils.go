package checks

import "github.com/swiftsc-lang/sclint/ast"

// ownExprs returns the expressions a statement owns directly, without
// descending into nested blocks. Rules that already walk statements
// with walkStmts use this to avoid visiting an expression twice.
func ownExprs(stmt ast.Stmt) []ast.Expr {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		if s.Init != nil {
			return []ast.Expr{s.Init}
		}
	case *ast.ExprStmt:
		return []ast.Expr{s.X}
	case *ast.ReturnStmt:
		if s.Result != nil {
			return []ast.Expr{s.Result}
		}
	case *ast.IfStmt:
		return []ast.Expr{s.Cond}
	case *ast.WhileStmt:
		return []ast.Expr{s.Cond}
	case *ast.RequireStmt:
		if s.Message != nil {
			return []ast.Expr{s.Cond, s.Message}
		}
		return []ast.Expr{s.Cond}
	case *ast.AssertStmt:
		return []ast.Expr{s.Cond}
	case *ast.EmitStmt:
		return s.Args
	}
	return nil
}
