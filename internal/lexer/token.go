package lexer

import "github.com/nilva-lang/nilva/internal/srcpos"

// TokenKind enumerates every token Nilva's grammar needs.
type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	IDENT
	INT
	FLOAT
	STRING

	// Keywords
	FUN
	STRUCT
	LET
	MUT
	IF
	ELSE
	RETURN
	IMPORT
	TRUE
	FALSE
	EXTERN
	WHILE
	FOR

	// Punctuation
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	COLON
	SEMI
	DOT
	ARROW // ->

	// Operators
	ASSIGN // =
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	BANG
	EQ
	NE
	LT
	LE
	GT
	GE
	AND // &&
	OR  // ||
)

var keywords = map[string]TokenKind{
	"fun":    FUN,
	"struct": STRUCT,
	"let":    LET,
	"mut":    MUT,
	"if":     IF,
	"else":   ELSE,
	"return": RETURN,
	"import": IMPORT,
	"true":   TRUE,
	"false":  FALSE,
	"extern": EXTERN,
	"while":  WHILE,
	"for":    FOR,
}

// LookupIdent classifies an identifier as a keyword, or returns IDENT.
func LookupIdent(s string) TokenKind {
	if k, ok := keywords[s]; ok {
		return k
	}
	return IDENT
}

// Token is one lexed unit.
type Token struct {
	Kind    TokenKind
	Literal string
	Pos     srcpos.Pos
}
