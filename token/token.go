package token

import "fmt"

// Kind is the set of lexical token kinds of the SwiftSC language.
type Kind int

const (
	ILLEGAL Kind = iota
	EOF
	COMMENT

	// literals
	IDENT  // transfer
	INT    // 42
	STRING // "insufficient balance"

	// operators and delimiters
	ASSIGN // =
	ADD    // +
	SUB    // -
	MUL    // *
	QUO    // /
	REM    // %

	EQL // ==
	NEQ // !=
	LSS // <
	LEQ // <=
	GTR // >
	GEQ // >=

	LAND // &&
	LOR  // ||
	NOT  // !

	ARROW  // ->
	PERIOD // .
	COMMA  // ,
	COLON  // :
	SEMI   // ;

	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	LBRACK // [
	RBRACK // ]

	// keywords
	CONTRACT
	STORAGE
	INIT
	FUNC
	LET
	VAR
	IF
	ELSE
	WHILE
	RETURN
	REQUIRE
	ASSERT
	EMIT
	EVENT
	STRUCT
	USE
	PUBLIC
	TRUE
	FALSE
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	INT:    "INT",
	STRING: "STRING",

	ASSIGN: "=",
	ADD:    "+",
	SUB:    "-",
	MUL:    "*",
	QUO:    "/",
	REM:    "%",

	EQL: "==",
	NEQ: "!=",
	LSS: "<",
	LEQ: "<=",
	GTR: ">",
	GEQ: ">=",

	LAND: "&&",
	LOR:  "||",
	NOT:  "!",

	ARROW:  "->",
	PERIOD: ".",
	COMMA:  ",",
	COLON:  ":",
	SEMI:   ";",

	LPAREN: "(",
	RPAREN: ")",
	LBRACE: "{",
	RBRACE: "}",
	LBRACK: "[",
	RBRACK: "]",

	CONTRACT: "contract",
	STORAGE:  "storage",
	INIT:     "init",
	FUNC:     "func",
	LET:      "let",
	VAR:      "var",
	IF:       "if",
	ELSE:     "else",
	WHILE:    "while",
	RETURN:   "return",
	REQUIRE:  "require",
	ASSERT:   "assert",
	EMIT:     "emit",
	EVENT:    "event",
	STRUCT:   "struct",
	USE:      "use",
	PUBLIC:   "public",
	TRUE:     "true",
	FALSE:    "false",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var keywords = map[string]Kind{
	"contract": CONTRACT,
	"storage":  STORAGE,
	"init":     INIT,
	"func":     FUNC,
	"let":      LET,
	"var":      VAR,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"return":   RETURN,
	"require":  REQUIRE,
	"assert":   ASSERT,
	"emit":     EMIT,
	"event":    EVENT,
	"struct":   STRUCT,
	"use":      USE,
	"public":   PUBLIC,
	"true":     TRUE,
	"false":    FALSE,
}

// Lookup maps an identifier to its keyword kind, or IDENT if it is not a keyword.
func Lookup(ident string) Kind {
	if kw, ok := keywords[ident]; ok {
		return kw
	}
	return IDENT
}

// Position describes a location in a SwiftSC source file.
// Line and Column are 1-based, Offset is 0-based.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// IsValid reports whether the position has a valid line number.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	s := p.Filename
	if p.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Token is a single lexical token with its source position.
type Token struct {
	Kind Kind
	Lit  string
	Pos  Position
}

// Comment is a single //-comment retained for suppression directives.
type Comment struct {
	Text string // including the leading "//"
	Pos  Position
}
