package parser

import (
	"fmt"

	"github.com/swiftsc-lang/sclint/token"
)

// Lexer scans SwiftSC source text into tokens. Comments are collected
// separately so suppression directives survive parsing.
type Lexer struct {
	filename string
	src      []byte
	offset   int
	line     int
	col      int

	tokens   []token.Token
	comments []token.Comment
}

// NewLexer returns a lexer for the given source.
func NewLexer(filename string, src []byte) *Lexer {
	return &Lexer{
		filename: filename,
		src:      src,
		line:     1,
		col:      1,
	}
}

// Tokenize scans the whole input. The returned slice always ends with
// an EOF token.
func (l *Lexer) Tokenize() ([]token.Token, []token.Comment, error) {
	for l.offset < len(l.src) {
		c := l.src[l.offset]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()

		case c == '/' && l.peek(1) == '/':
			l.lexComment()

		case isLetter(c):
			l.lexIdent()

		case isDigit(c):
			l.lexNumber()

		case c == '"':
			if err := l.lexString(); err != nil {
				return nil, nil, err
			}

		default:
			if err := l.lexOperator(); err != nil {
				return nil, nil, err
			}
		}
	}

	l.add(token.EOF, "")
	return l.tokens, l.comments, nil
}

func (l *Lexer) pos() token.Position {
	return token.Position{
		Filename: l.filename,
		Offset:   l.offset,
		Line:     l.line,
		Column:   l.col,
	}
}

func (l *Lexer) peek(n int) byte {
	if l.offset+n < len(l.src) {
		return l.src[l.offset+n]
	}
	return 0
}

func (l *Lexer) advance() {
	if l.src[l.offset] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.offset++
}

func (l *Lexer) add(kind token.Kind, lit string) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lit: lit, Pos: l.pos()})
}

func (l *Lexer) addAt(kind token.Kind, lit string, pos token.Position) {
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lit: lit, Pos: pos})
}

func (l *Lexer) lexComment() {
	start := l.offset
	pos := l.pos()
	for l.offset < len(l.src) && l.src[l.offset] != '\n' {
		l.advance()
	}
	l.comments = append(l.comments, token.Comment{
		Text: string(l.src[start:l.offset]),
		Pos:  pos,
	})
}

func (l *Lexer) lexIdent() {
	start := l.offset
	pos := l.pos()
	for l.offset < len(l.src) && (isLetter(l.src[l.offset]) || isDigit(l.src[l.offset])) {
		l.advance()
	}
	lit := string(l.src[start:l.offset])
	l.addAt(token.Lookup(lit), lit, pos)
}

func (l *Lexer) lexNumber() {
	start := l.offset
	pos := l.pos()
	for l.offset < len(l.src) && (isDigit(l.src[l.offset]) || l.src[l.offset] == '_') {
		l.advance()
	}
	l.addAt(token.INT, string(l.src[start:l.offset]), pos)
}

func (l *Lexer) lexString() error {
	start := l.offset
	pos := l.pos()
	l.advance() // opening quote
	for l.offset < len(l.src) && l.src[l.offset] != '"' {
		if l.src[l.offset] == '\n' {
			return fmt.Errorf("%s: unterminated string literal", pos)
		}
		if l.src[l.offset] == '\\' && l.offset+1 < len(l.src) {
			l.advance()
		}
		l.advance()
	}
	if l.offset >= len(l.src) {
		return fmt.Errorf("%s: unterminated string literal", pos)
	}
	l.advance() // closing quote
	l.addAt(token.STRING, string(l.src[start:l.offset]), pos)
	return nil
}

// two-character operators checked before their one-character prefixes
var operators = []struct {
	text string
	kind token.Kind
}{
	{"==", token.EQL},
	{"!=", token.NEQ},
	{"<=", token.LEQ},
	{">=", token.GEQ},
	{"&&", token.LAND},
	{"||", token.LOR},
	{"->", token.ARROW},
	{"=", token.ASSIGN},
	{"+", token.ADD},
	{"-", token.SUB},
	{"*", token.MUL},
	{"/", token.QUO},
	{"%", token.REM},
	{"<", token.LSS},
	{">", token.GTR},
	{"!", token.NOT},
	{".", token.PERIOD},
	{",", token.COMMA},
	{":", token.COLON},
	{";", token.SEMI},
	{"(", token.LPAREN},
	{")", token.RPAREN},
	{"{", token.LBRACE},
	{"}", token.RBRACE},
	{"[", token.LBRACK},
	{"]", token.RBRACK},
}

func (l *Lexer) lexOperator() error {
	pos := l.pos()
	for _, op := range operators {
		if l.matches(op.text) {
			l.addAt(op.kind, op.text, pos)
			for range op.text {
				l.advance()
			}
			return nil
		}
	}
	return fmt.Errorf("%s: unexpected character %q", pos, l.src[l.offset])
}

func (l *Lexer) matches(s string) bool {
	if l.offset+len(s) > len(l.src) {
		return false
	}
	return string(l.src[l.offset:l.offset+len(s)]) == s
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
