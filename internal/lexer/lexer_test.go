package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextTokenBasics(t *testing.T) {
	input := `fun main() -> int { return 42; }`
	l := New(input, "t.nva")

	kinds := []TokenKind{FUN, IDENT, LPAREN, RPAREN, ARROW, IDENT, LBRACE, RETURN, INT, SEMI, RBRACE, EOF}
	for i, want := range kinds {
		tok := l.NextToken()
		assert.Equal(t, want, tok.Kind, "token %d", i)
	}
}

func TestTwoCharOperators(t *testing.T) {
	input := `== != <= >= && ||`
	l := New(input, "t.nva")
	want := []TokenKind{EQ, NE, LE, GE, AND, OR, EOF}
	for _, w := range want {
		tok := l.NextToken()
		assert.Equal(t, w, tok.Kind)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\"d\\e"`, "t.nva")
	tok := l.NextToken()
	require.Equal(t, STRING, tok.Kind)
	assert.Equal(t, "a\nb\tc\"d\\e", tok.Literal)
}

func TestLineCommentsSkipped(t *testing.T) {
	input := "let x = 1; // trailing comment\nlet y = 2;"
	l := New(input, "t.nva")
	var kinds []TokenKind
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == EOF {
			break
		}
	}
	assert.NotContains(t, kinds, ILLEGAL)
}

func TestFloatVsIntLexing(t *testing.T) {
	l := New(`3.14 42`, "t.nva")
	tok := l.NextToken()
	assert.Equal(t, FLOAT, tok.Kind)
	assert.Equal(t, "3.14", tok.Literal)
	tok = l.NextToken()
	assert.Equal(t, INT, tok.Kind)
	assert.Equal(t, "42", tok.Literal)
}

func TestKeywordsRecognized(t *testing.T) {
	input := "fun struct let mut if else return import true false extern while for"
	want := []TokenKind{FUN, STRUCT, LET, MUT, IF, ELSE, RETURN, IMPORT, TRUE, FALSE, EXTERN, WHILE, FOR, EOF}
	l := New(input, "t.nva")
	for _, w := range want {
		tok := l.NextToken()
		assert.Equal(t, w, tok.Kind)
	}
}

func TestCRLFNormalization(t *testing.T) {
	l := New("let x = 1;\r\nlet y = 2;\r\n", "t.nva")
	tok := l.NextToken()
	assert.Equal(t, LET, tok.Kind)
	assert.Equal(t, 1, tok.Pos.Line)
}

func TestIllegalCharacter(t *testing.T) {
	l := New("@", "t.nva")
	tok := l.NextToken()
	assert.Equal(t, ILLEGAL, tok.Kind)
}
