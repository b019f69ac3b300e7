// Package parser implements a hand-written lexer and recursive-descent
// parser for SwiftSC source files.
package parser

import (
	"fmt"
	"os"

	"github.com/swiftsc-lang/sclint/ast"
	"github.com/swiftsc-lang/sclint/token"
)

// ParseFile parses a SwiftSC source file. When src is nil the file is
// read from disk. Comments are returned alongside the program so the
// engine can honor suppression directives.
func ParseFile(filename string, src []byte) (*ast.Program, []token.Comment, error) {
	if src == nil {
		content, err := os.ReadFile(filename)
		if err != nil {
			return nil, nil, fmt.Errorf("error reading source file: %w", err)
		}
		src = content
	}

	tokens, comments, err := NewLexer(filename, src).Tokenize()
	if err != nil {
		return nil, nil, err
	}

	p := &parser{tokens: tokens, filename: filename}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, nil, err
	}
	return prog, comments, nil
}

type parser struct {
	tokens   []token.Token
	pos      int
	filename string
}

func (p *parser) cur() token.Token { return p.tokens[p.pos] }

func (p *parser) next() token.Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) accept(kind token.Kind) bool {
	if p.cur().Kind == kind {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.cur()
	if tok.Kind != kind {
		return tok, fmt.Errorf("%s: expected %q, found %q", tok.Pos, kind, tok.Lit)
	}
	p.next()
	return tok, nil
}

func (p *parser) parseProgram() (*ast.Program, error) {
	prog := &ast.Program{Filename: p.filename}
	for p.cur().Kind != token.EOF {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		prog.Items = append(prog.Items, item)
	}
	return prog, nil
}

func (p *parser) parseItem() (ast.Item, error) {
	switch p.cur().Kind {
	case token.USE:
		return p.parseUse()
	case token.CONTRACT:
		return p.parseContract()
	case token.STRUCT:
		return p.parseStruct()
	case token.PUBLIC, token.FUNC:
		return p.parseFunction()
	default:
		return nil, fmt.Errorf("%s: expected declaration, found %q", p.cur().Pos, p.cur().Lit)
	}
}

func (p *parser) parseUse() (*ast.UseDecl, error) {
	start := p.next().Pos // use
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	path := name.Lit
	end := name.Pos
	for p.cur().Kind == token.PERIOD {
		p.next()
		seg, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		path += "." + seg.Lit
		end = seg.Pos
	}
	return &ast.UseDecl{Path: path, StartPos: start, EndPos: end}, nil
}

func (p *parser) parseContract() (*ast.Contract, error) {
	start := p.next().Pos // contract
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	c := &ast.Contract{Name: name.Lit, StartPos: start}
	for p.cur().Kind != token.RBRACE && p.cur().Kind != token.EOF {
		member, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		c.Members = append(c.Members, member)
	}
	rbrace, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	c.EndPos = rbrace.Pos
	return c, nil
}

func (p *parser) parseMember() (ast.ContractMember, error) {
	switch p.cur().Kind {
	case token.STORAGE:
		return p.parseStorage()
	case token.INIT:
		return p.parseInit()
	case token.EVENT:
		return p.parseEvent()
	case token.PUBLIC, token.FUNC:
		return p.parseFunction()
	default:
		return nil, fmt.Errorf("%s: expected contract member, found %q", p.cur().Pos, p.cur().Lit)
	}
}

func (p *parser) parseStorage() (*ast.StorageBlock, error) {
	start := p.next().Pos // storage
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	sb := &ast.StorageBlock{StartPos: start}
	for p.cur().Kind != token.RBRACE && p.cur().Kind != token.EOF {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		sb.Fields = append(sb.Fields, field)
	}
	rbrace, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	sb.EndPos = rbrace.Pos
	return sb, nil
}

func (p *parser) parseField() (*ast.Field, error) {
	// storage fields read as `var name: Type`; the keyword is optional
	start := p.cur().Pos
	if p.cur().Kind == token.VAR || p.cur().Kind == token.LET {
		p.next()
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.Field{Name: name.Lit, Type: typ, StartPos: start, EndPos: typ.End()}, nil
}

func (p *parser) parseInit() (*ast.InitDecl, error) {
	start := p.next().Pos // init
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn := &ast.Function{
		Name:     "init",
		Params:   params,
		Body:     body,
		Public:   true,
		StartPos: start,
		EndPos:   body.End(),
	}
	return &ast.InitDecl{Func: fn}, nil
}

func (p *parser) parseEvent() (*ast.EventDecl, error) {
	start := p.next().Pos // event
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	end := name.Pos
	if len(params) > 0 {
		end = params[len(params)-1].End()
	}
	return &ast.EventDecl{Name: name.Lit, Params: params, StartPos: start, EndPos: end}, nil
}

func (p *parser) parseFunction() (*ast.Function, error) {
	start := p.cur().Pos
	public := p.accept(token.PUBLIC)
	if _, err := p.expect(token.FUNC); err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	var result *ast.TypeRef
	if p.accept(token.ARROW) {
		result, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Name:     name.Lit,
		Params:   params,
		Result:   result,
		Body:     body,
		Public:   public,
		StartPos: start,
		EndPos:   body.End(),
	}, nil
}

func (p *parser) parseParams() ([]*ast.Param, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []*ast.Param
	for p.cur().Kind != token.RPAREN && p.cur().Kind != token.EOF {
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, &ast.Param{
			Name:     name.Lit,
			Type:     typ,
			StartPos: name.Pos,
			EndPos:   typ.End(),
		})
		if !p.accept(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *parser) parseStruct() (*ast.StructDecl, error) {
	start := p.next().Pos // struct
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	decl := &ast.StructDecl{Name: name.Lit, StartPos: start}
	for p.cur().Kind != token.RBRACE && p.cur().Kind != token.EOF {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, field)
	}
	rbrace, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	decl.EndPos = rbrace.Pos
	return decl, nil
}

func (p *parser) parseType() (*ast.TypeRef, error) {
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	end := name.Pos
	end.Column += len(name.Lit)
	end.Offset += len(name.Lit)
	return &ast.TypeRef{Name: name.Lit, StartPos: name.Pos, EndPos: end}, nil
}

// ---------------------------------------------------------------------------
// Statements

func (p *parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{StartPos: lbrace.Pos}
	for p.cur().Kind != token.RBRACE && p.cur().Kind != token.EOF {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
		p.accept(token.SEMI)
	}
	rbrace, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	block.EndPos = rbrace.Pos
	return block, nil
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	switch p.cur().Kind {
	case token.LET, token.VAR:
		return p.parseLet()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.RETURN:
		return p.parseReturn()
	case token.REQUIRE:
		return p.parseRequire()
	case token.ASSERT:
		return p.parseAssert()
	case token.EMIT:
		return p.parseEmit()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: expr}, nil
	}
}

func (p *parser) parseLet() (*ast.LetStmt, error) {
	kw := p.next()
	mutable := kw.Kind == token.VAR
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	stmt := &ast.LetStmt{
		Name:     name.Lit,
		Mutable:  mutable,
		StartPos: kw.Pos,
		EndPos:   name.Pos,
	}
	if p.accept(token.COLON) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		stmt.Type = typ
		stmt.EndPos = typ.End()
	}
	if p.accept(token.ASSIGN) {
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Init = init
		stmt.EndPos = init.End()
	}
	if !mutable && stmt.Init == nil {
		return nil, fmt.Errorf("%s: let binding %q requires an initializer", kw.Pos, name.Lit)
	}
	if stmt.Type == nil && stmt.Init == nil {
		return nil, fmt.Errorf("%s: var %q needs a type or an initializer", kw.Pos, name.Lit)
	}
	return stmt, nil
}

func (p *parser) parseIf() (*ast.IfStmt, error) {
	start := p.next().Pos // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Cond: cond, Then: then, StartPos: start}
	if p.accept(token.ELSE) {
		if p.cur().Kind == token.IF {
			// desugar `else if` into an else block holding the nested if
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = &ast.Block{
				Stmts:    []ast.Stmt{nested},
				StartPos: nested.Pos(),
				EndPos:   nested.End(),
			}
		} else {
			stmt.Else, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}
	return stmt, nil
}

func (p *parser) parseWhile() (*ast.WhileStmt, error) {
	start := p.next().Pos // while
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, StartPos: start}, nil
}

func (p *parser) parseReturn() (*ast.ReturnStmt, error) {
	kw := p.next()
	stmt := &ast.ReturnStmt{StartPos: kw.Pos, EndPos: kw.Pos}
	if startsExpr(p.cur().Kind) {
		result, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Result = result
		stmt.EndPos = result.End()
	}
	return stmt, nil
}

func (p *parser) parseRequire() (*ast.RequireStmt, error) {
	kw := p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	stmt := &ast.RequireStmt{Cond: cond, StartPos: kw.Pos}
	if p.accept(token.COMMA) {
		msg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Message = msg
	}
	rparen, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	stmt.EndPos = rparen.Pos
	return stmt, nil
}

func (p *parser) parseAssert() (*ast.AssertStmt, error) {
	kw := p.next()
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	rparen, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	return &ast.AssertStmt{Cond: cond, StartPos: kw.Pos, EndPos: rparen.Pos}, nil
}

func (p *parser) parseEmit() (*ast.EmitStmt, error) {
	kw := p.next()
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	stmt := &ast.EmitStmt{Event: name.Lit, StartPos: kw.Pos}
	for p.cur().Kind != token.RPAREN && p.cur().Kind != token.EOF {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Args = append(stmt.Args, arg)
		if !p.accept(token.COMMA) {
			break
		}
	}
	rparen, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	stmt.EndPos = rparen.Pos
	return stmt, nil
}

func startsExpr(kind token.Kind) bool {
	switch kind {
	case token.IDENT, token.INT, token.STRING, token.TRUE, token.FALSE,
		token.LPAREN, token.NOT, token.SUB:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Expressions, precedence climbing

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.ASSIGN: ast.Assign,
	token.ADD:    ast.Add,
	token.SUB:    ast.Sub,
	token.MUL:    ast.Mul,
	token.QUO:    ast.Div,
	token.REM:    ast.Mod,
	token.EQL:    ast.Eq,
	token.NEQ:    ast.Neq,
	token.LSS:    ast.Lt,
	token.LEQ:    ast.Le,
	token.GTR:    ast.Gt,
	token.GEQ:    ast.Ge,
	token.LAND:   ast.LAnd,
	token.LOR:    ast.LOr,
}

func precedence(kind token.Kind) int {
	switch kind {
	case token.LOR:
		return 1
	case token.LAND:
		return 2
	case token.EQL, token.NEQ, token.LSS, token.LEQ, token.GTR, token.GEQ:
		return 3
	case token.ADD, token.SUB:
		return 4
	case token.MUL, token.QUO, token.REM:
		return 5
	}
	return 0
}

func (p *parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	// assignment is right-associative and has the lowest precedence
	if p.cur().Kind == token.ASSIGN {
		p.next()
		right, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{X: left, Op: ast.Assign, Y: right}, nil
	}
	return left, nil
}

func (p *parser) parseBinary(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := precedence(p.cur().Kind)
		if prec < minPrec {
			return left, nil
		}
		op := binaryOps[p.cur().Kind]
		p.next()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{X: left, Op: op, Y: right}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	switch p.cur().Kind {
	case token.NOT:
		pos := p.next().Pos
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.Not, X: x, StartPos: pos}, nil
	case token.SUB:
		pos := p.next().Pos
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: ast.Neg, X: x, StartPos: pos}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.PERIOD:
			p.next()
			name, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			end := name.Pos
			end.Column += len(name.Lit)
			end.Offset += len(name.Lit)
			expr = &ast.FieldExpr{X: expr, Name: name.Lit, EndPos: end}
		case token.LPAREN:
			p.next()
			call := &ast.CallExpr{Fun: expr}
			for p.cur().Kind != token.RPAREN && p.cur().Kind != token.EOF {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				call.Args = append(call.Args, arg)
				if !p.accept(token.COMMA) {
					break
				}
			}
			rparen, err := p.expect(token.RPAREN)
			if err != nil {
				return nil, err
			}
			call.EndPos = rparen.Pos
			expr = call
		case token.LBRACK:
			p.next()
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			rbrack, err := p.expect(token.RBRACK)
			if err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{X: expr, Index: index, EndPos: rbrack.Pos}
		default:
			return expr, nil
		}
	}
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	tok := p.cur()
	switch tok.Kind {
	case token.IDENT, token.INIT:
		// `init` is allowed in call position (e.g. Other.init(...))
		p.next()
		return &ast.Ident{Name: tok.Lit, StartPos: tok.Pos}, nil
	case token.INT:
		p.next()
		end := tok.Pos
		end.Column += len(tok.Lit)
		end.Offset += len(tok.Lit)
		return &ast.BasicLit{Kind: ast.IntLit, Value: tok.Lit, StartPos: tok.Pos, EndPos: end}, nil
	case token.STRING:
		p.next()
		end := tok.Pos
		end.Column += len(tok.Lit)
		end.Offset += len(tok.Lit)
		return &ast.BasicLit{Kind: ast.StringLit, Value: tok.Lit, StartPos: tok.Pos, EndPos: end}, nil
	case token.TRUE, token.FALSE:
		p.next()
		end := tok.Pos
		end.Column += len(tok.Lit)
		end.Offset += len(tok.Lit)
		return &ast.BasicLit{Kind: ast.BoolLit, Value: tok.Lit, StartPos: tok.Pos, EndPos: end}, nil
	case token.LPAREN:
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rparen, err := p.expect(token.RPAREN)
		if err != nil {
			return nil, err
		}
		return &ast.ParenExpr{X: inner, StartPos: tok.Pos, EndPos: rparen.Pos}, nil
	}
	return nil, fmt.Errorf("%s: expected expression, found %q", tok.Pos, tok.Lit)
}
