// Package ast declares the syntax tree of the SwiftSC smart-contract
// language. Every node carries its source extent so analyses can report
// precise locations.
package ast

import "github.com/swiftsc-lang/sclint/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() token.Position
	End() token.Position
}

// Program is a parsed SwiftSC source file.
type Program struct {
	Items    []Item
	Filename string
}

func (p *Program) Pos() token.Position {
	if len(p.Items) > 0 {
		return p.Items[0].Pos()
	}
	return token.Position{Filename: p.Filename, Line: 1, Column: 1}
}

func (p *Program) End() token.Position {
	if len(p.Items) > 0 {
		return p.Items[len(p.Items)-1].End()
	}
	return token.Position{Filename: p.Filename, Line: 1, Column: 1}
}

// Item is a top-level declaration: a contract, a free function,
// a struct, or a use declaration.
type Item interface {
	Node
	itemNode()
}

// ---------------------------------------------------------------------------
// Declarations

// Contract is a contract declaration with its members.
type Contract struct {
	Name     string
	Members  []ContractMember
	StartPos token.Position
	EndPos   token.Position
}

func (c *Contract) Pos() token.Position { return c.StartPos }
func (c *Contract) End() token.Position { return c.EndPos }
func (*Contract) itemNode()             {}

// ContractMember is a member of a contract body.
type ContractMember interface {
	Node
	memberNode()
}

// StorageBlock declares the persistent state of a contract.
type StorageBlock struct {
	Fields   []*Field
	StartPos token.Position
	EndPos   token.Position
}

func (s *StorageBlock) Pos() token.Position { return s.StartPos }
func (s *StorageBlock) End() token.Position { return s.EndPos }
func (*StorageBlock) memberNode()           {}

// Field is a single storage field declaration.
type Field struct {
	Name     string
	Type     *TypeRef
	StartPos token.Position
	EndPos   token.Position
}

func (f *Field) Pos() token.Position { return f.StartPos }
func (f *Field) End() token.Position { return f.EndPos }

// InitDecl is the contract constructor.
type InitDecl struct {
	Func *Function
}

func (d *InitDecl) Pos() token.Position { return d.Func.Pos() }
func (d *InitDecl) End() token.Position { return d.Func.End() }
func (*InitDecl) memberNode()           {}

// EventDecl declares an emittable event and its payload fields.
type EventDecl struct {
	Name     string
	Params   []*Param
	StartPos token.Position
	EndPos   token.Position
}

func (d *EventDecl) Pos() token.Position { return d.StartPos }
func (d *EventDecl) End() token.Position { return d.EndPos }
func (*EventDecl) memberNode()           {}

// Function is a function declaration, either free-standing, a contract
// method, or (via InitDecl) a constructor.
type Function struct {
	Name     string
	Params   []*Param
	Result   *TypeRef // nil when the function returns nothing
	Body     *Block
	Public   bool
	StartPos token.Position
	EndPos   token.Position
}

func (f *Function) Pos() token.Position { return f.StartPos }
func (f *Function) End() token.Position { return f.EndPos }
func (*Function) itemNode()             {}
func (*Function) memberNode()           {}

// Param is a function parameter.
type Param struct {
	Name     string
	Type     *TypeRef
	StartPos token.Position
	EndPos   token.Position
}

func (p *Param) Pos() token.Position { return p.StartPos }
func (p *Param) End() token.Position { return p.EndPos }

// StructDecl is a plain data structure declaration.
type StructDecl struct {
	Name     string
	Fields   []*Field
	StartPos token.Position
	EndPos   token.Position
}

func (d *StructDecl) Pos() token.Position { return d.StartPos }
func (d *StructDecl) End() token.Position { return d.EndPos }
func (*StructDecl) itemNode()             {}

// UseDecl imports another module.
type UseDecl struct {
	Path     string
	StartPos token.Position
	EndPos   token.Position
}

func (d *UseDecl) Pos() token.Position { return d.StartPos }
func (d *UseDecl) End() token.Position { return d.EndPos }
func (*UseDecl) itemNode()             {}

// TypeRef is a reference to a named type, e.g. UInt256 or Address.
type TypeRef struct {
	Name     string
	StartPos token.Position
	EndPos   token.Position
}

func (t *TypeRef) Pos() token.Position { return t.StartPos }
func (t *TypeRef) End() token.Position { return t.EndPos }

// ---------------------------------------------------------------------------
// Statements

// Stmt is the interface implemented by all statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Block is a brace-delimited statement list.
type Block struct {
	Stmts    []Stmt
	StartPos token.Position
	EndPos   token.Position
}

func (b *Block) Pos() token.Position { return b.StartPos }
func (b *Block) End() token.Position { return b.EndPos }

// LetStmt declares a local binding. Mutable bindings use `var` and may
// omit the initializer.
type LetStmt struct {
	Name     string
	Type     *TypeRef // nil when inferred
	Init     Expr     // nil only for `var x: T`
	Mutable  bool
	StartPos token.Position
	EndPos   token.Position
}

func (s *LetStmt) Pos() token.Position { return s.StartPos }
func (s *LetStmt) End() token.Position { return s.EndPos }
func (*LetStmt) stmtNode()             {}

// ExprStmt is an expression used in statement position, including
// assignments.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }
func (s *ExprStmt) End() token.Position { return s.X.End() }
func (*ExprStmt) stmtNode()             {}

// ReturnStmt returns from the enclosing function.
type ReturnStmt struct {
	Result   Expr // nil for a bare return
	StartPos token.Position
	EndPos   token.Position
}

func (s *ReturnStmt) Pos() token.Position { return s.StartPos }
func (s *ReturnStmt) End() token.Position { return s.EndPos }
func (*ReturnStmt) stmtNode()             {}

// IfStmt is a conditional with an optional else block.
type IfStmt struct {
	Cond     Expr
	Then     *Block
	Else     *Block // nil when absent
	StartPos token.Position
}

func (s *IfStmt) Pos() token.Position { return s.StartPos }
func (s *IfStmt) End() token.Position {
	if s.Else != nil {
		return s.Else.End()
	}
	return s.Then.End()
}
func (*IfStmt) stmtNode() {}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	Cond     Expr
	Body     *Block
	StartPos token.Position
}

func (s *WhileStmt) Pos() token.Position { return s.StartPos }
func (s *WhileStmt) End() token.Position { return s.Body.End() }
func (*WhileStmt) stmtNode()             {}

// RequireStmt reverts the transaction when the condition is false.
type RequireStmt struct {
	Cond     Expr
	Message  Expr // nil when no message argument is given
	StartPos token.Position
	EndPos   token.Position
}

func (s *RequireStmt) Pos() token.Position { return s.StartPos }
func (s *RequireStmt) End() token.Position { return s.EndPos }
func (*RequireStmt) stmtNode()             {}

// AssertStmt aborts on a violated internal invariant.
type AssertStmt struct {
	Cond     Expr
	StartPos token.Position
	EndPos   token.Position
}

func (s *AssertStmt) Pos() token.Position { return s.StartPos }
func (s *AssertStmt) End() token.Position { return s.EndPos }
func (*AssertStmt) stmtNode()             {}

// EmitStmt emits a declared event.
type EmitStmt struct {
	Event    string
	Args     []Expr
	StartPos token.Position
	EndPos   token.Position
}

func (s *EmitStmt) Pos() token.Position { return s.StartPos }
func (s *EmitStmt) End() token.Position { return s.EndPos }
func (*EmitStmt) stmtNode()             {}

// ---------------------------------------------------------------------------
// Expressions

// Expr is the interface implemented by all expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Ident is an identifier reference.
type Ident struct {
	Name     string
	StartPos token.Position
}

func (e *Ident) Pos() token.Position { return e.StartPos }
func (e *Ident) End() token.Position {
	end := e.StartPos
	end.Column += len(e.Name)
	end.Offset += len(e.Name)
	return end
}
func (*Ident) exprNode() {}

// LitKind discriminates basic literal kinds.
type LitKind int

const (
	IntLit LitKind = iota
	StringLit
	BoolLit
)

// BasicLit is an integer, string, or boolean literal.
type BasicLit struct {
	Kind     LitKind
	Value    string // raw literal text; string literals keep their quotes
	StartPos token.Position
	EndPos   token.Position
}

func (e *BasicLit) Pos() token.Position { return e.StartPos }
func (e *BasicLit) End() token.Position { return e.EndPos }
func (*BasicLit) exprNode()             {}

// BinaryOp is a binary operator, including assignment.
type BinaryOp int

const (
	Assign BinaryOp = iota
	Add
	Sub
	Mul
	Div
	Mod
	Eq
	Neq
	Lt
	Le
	Gt
	Ge
	LAnd
	LOr
)

var binaryOpNames = [...]string{
	Assign: "=",
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Mod:    "%",
	Eq:     "==",
	Neq:    "!=",
	Lt:     "<",
	Le:     "<=",
	Gt:     ">",
	Ge:     ">=",
	LAnd:   "&&",
	LOr:    "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// IsArithmetic reports whether the operator performs integer arithmetic.
func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case Add, Sub, Mul, Div, Mod:
		return true
	}
	return false
}

// IsComparison reports whether the operator compares its operands.
func (op BinaryOp) IsComparison() bool {
	switch op {
	case Eq, Neq, Lt, Le, Gt, Ge:
		return true
	}
	return false
}

// BinaryExpr is a binary operation. Assignments are binary expressions
// with the Assign operator, mirroring how the analyzer consumes them.
type BinaryExpr struct {
	X  Expr
	Op BinaryOp
	Y  Expr
}

func (e *BinaryExpr) Pos() token.Position { return e.X.Pos() }
func (e *BinaryExpr) End() token.Position { return e.Y.End() }
func (*BinaryExpr) exprNode()             {}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	Not UnaryOp = iota
	Neg
)

func (op UnaryOp) String() string {
	if op == Not {
		return "!"
	}
	return "-"
}

// UnaryExpr is a prefix operation.
type UnaryExpr struct {
	Op       UnaryOp
	X        Expr
	StartPos token.Position
}

func (e *UnaryExpr) Pos() token.Position { return e.StartPos }
func (e *UnaryExpr) End() token.Position { return e.X.End() }
func (*UnaryExpr) exprNode()             {}

// CallExpr is a function or method call.
type CallExpr struct {
	Fun    Expr
	Args   []Expr
	EndPos token.Position
}

func (e *CallExpr) Pos() token.Position { return e.Fun.Pos() }
func (e *CallExpr) End() token.Position { return e.EndPos }
func (*CallExpr) exprNode()             {}

// FieldExpr is a field access, e.g. self.balance or msg.sender.
type FieldExpr struct {
	X      Expr
	Name   string
	EndPos token.Position
}

func (e *FieldExpr) Pos() token.Position { return e.X.Pos() }
func (e *FieldExpr) End() token.Position { return e.EndPos }
func (*FieldExpr) exprNode()             {}

// IndexExpr is a subscript, e.g. balances[owner].
type IndexExpr struct {
	X      Expr
	Index  Expr
	EndPos token.Position
}

func (e *IndexExpr) Pos() token.Position { return e.X.Pos() }
func (e *IndexExpr) End() token.Position { return e.EndPos }
func (*IndexExpr) exprNode()             {}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	X        Expr
	StartPos token.Position
	EndPos   token.Position
}

func (e *ParenExpr) Pos() token.Position { return e.StartPos }
func (e *ParenExpr) End() token.Position { return e.EndPos }
func (*ParenExpr) exprNode()             {}

// ---------------------------------------------------------------------------
// Traversal

// Inspect traverses the tree rooted at node in depth-first order,
// calling f for each node. If f returns false the children of the
// current node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	switch n := node.(type) {
	case *Program:
		for _, item := range n.Items {
			Inspect(item, f)
		}
	case *Contract:
		for _, m := range n.Members {
			Inspect(m, f)
		}
	case *StorageBlock:
		for _, fld := range n.Fields {
			Inspect(fld, f)
		}
	case *InitDecl:
		Inspect(n.Func, f)
	case *Function:
		for _, p := range n.Params {
			Inspect(p, f)
		}
		if n.Body != nil {
			Inspect(n.Body, f)
		}
	case *StructDecl:
		for _, fld := range n.Fields {
			Inspect(fld, f)
		}
	case *Block:
		for _, s := range n.Stmts {
			Inspect(s, f)
		}
	case *LetStmt:
		if n.Init != nil {
			Inspect(n.Init, f)
		}
	case *ExprStmt:
		Inspect(n.X, f)
	case *ReturnStmt:
		if n.Result != nil {
			Inspect(n.Result, f)
		}
	case *IfStmt:
		Inspect(n.Cond, f)
		Inspect(n.Then, f)
		if n.Else != nil {
			Inspect(n.Else, f)
		}
	case *WhileStmt:
		Inspect(n.Cond, f)
		Inspect(n.Body, f)
	case *RequireStmt:
		Inspect(n.Cond, f)
		if n.Message != nil {
			Inspect(n.Message, f)
		}
	case *AssertStmt:
		Inspect(n.Cond, f)
	case *EmitStmt:
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *BinaryExpr:
		Inspect(n.X, f)
		Inspect(n.Y, f)
	case *UnaryExpr:
		Inspect(n.X, f)
	case *CallExpr:
		Inspect(n.Fun, f)
		for _, a := range n.Args {
			Inspect(a, f)
		}
	case *FieldExpr:
		Inspect(n.X, f)
	case *IndexExpr:
		Inspect(n.X, f)
		Inspect(n.Index, f)
	case *ParenExpr:
		Inspect(n.X, f)
	}
}

// SelfFieldTarget returns the storage field name when expr is an access
// to a field of self (self.name), and ok reports whether it matched.
// Security and taint analyses key on this pattern.
func SelfFieldTarget(expr Expr) (string, bool) {
	fe, ok := expr.(*FieldExpr)
	if !ok {
		return "", false
	}
	id, ok := fe.X.(*Ident)
	if !ok || id.Name != "self" {
		return "", false
	}
	return fe.Name, true
}

// IsExternalCall reports whether expr is a call on a receiver other
// than self, i.e. a potential external contract call.
func IsExternalCall(expr Expr) bool {
	call, ok := expr.(*CallExpr)
	if !ok {
		return false
	}
	fe, ok := call.Fun.(*FieldExpr)
	if !ok {
		return false
	}
	id, ok := fe.X.(*Ident)
	return ok && id.Name != "self"
}
