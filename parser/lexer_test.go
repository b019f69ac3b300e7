package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftsc-lang/sclint/token"
)

func TestTokenizeBasics(t *testing.T) {
	t.Parallel()
	src := `contract Token {
    storage {
        var total: UInt256
    }
}`
	tokens, comments, err := NewLexer("token.swsc", []byte(src)).Tokenize()
	require.NoError(t, err)
	assert.Empty(t, comments)

	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	expected := []token.Kind{
		token.CONTRACT, token.IDENT, token.LBRACE,
		token.STORAGE, token.LBRACE,
		token.VAR, token.IDENT, token.COLON, token.IDENT,
		token.RBRACE,
		token.RBRACE,
		token.EOF,
	}
	assert.Equal(t, expected, kinds)
}

func TestTokenizeOperators(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
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
		{"%", token.REM},
	}
	for _, tt := range tests {
		tokens, _, err := NewLexer("", []byte(tt.src)).Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, 2, "source %q", tt.src)
		assert.Equal(t, tt.kind, tokens[0].Kind, "source %q", tt.src)
	}
}

func TestTokenizeCollectsComments(t *testing.T) {
	t.Parallel()
	src := `// file comment
contract C {
    init() {} // trailing
}`
	tokens, comments, err := NewLexer("c.swsc", []byte(src)).Tokenize()
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "// file comment", comments[0].Text)
	assert.Equal(t, 1, comments[0].Pos.Line)
	assert.Equal(t, "// trailing", comments[1].Text)
	assert.Equal(t, 3, comments[1].Pos.Line)

	// comments never surface as tokens
	for _, tok := range tokens {
		assert.NotEqual(t, token.COMMENT, tok.Kind)
	}
}

func TestTokenizePositions(t *testing.T) {
	t.Parallel()
	src := "let x = 10\nlet y = 20"
	tokens, _, err := NewLexer("pos.swsc", []byte(src)).Tokenize()
	require.NoError(t, err)

	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 1, tokens[0].Pos.Column)

	// second `let` starts line 2
	assert.Equal(t, token.LET, tokens[4].Kind)
	assert.Equal(t, 2, tokens[4].Pos.Line)
	assert.Equal(t, 1, tokens[4].Pos.Column)
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()
	_, _, err := NewLexer("bad.swsc", []byte(`let s = "unterminated`)).Tokenize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")

	_, _, err = NewLexer("bad.swsc", []byte("let a = #")).Tokenize()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected character")
}

func TestTokenizeNumberSeparators(t *testing.T) {
	t.Parallel()
	tokens, _, err := NewLexer("", []byte("1_000_000")).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.INT, tokens[0].Kind)
	assert.Equal(t, "1_000_000", tokens[0].Lit)
}
