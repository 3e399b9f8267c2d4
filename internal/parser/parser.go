// Package parser builds the untyped AST the core consumes. Like
// internal/lexer, this is an external-collaborator package per spec.md
// §1 — kept small and hand-written, just enough to drive the middle-end
// with real Nilva programs.
package parser

import (
	"fmt"

	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/lexer"
	"github.com/nilva-lang/nilva/internal/tyspec"
)

// Parser is a simple recursive-descent, single-token-lookahead parser.
type Parser struct {
	l       *lexer.Lexer
	cur     lexer.Token
	peek    lexer.Token
	errors  []string
	arena   *tyspec.Arena
	file    string

	// noStructLiteral suppresses `Ident { ... }` being read as a struct
	// instantiation while parsing an if/while condition, so the brace
	// that opens the statement's body is never swallowed — the same
	// ambiguity Go itself resolves by banning bare composite literals in
	// if/for/switch headers.
	noStructLiteral bool
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer, file string) *Parser {
	p := &Parser{l: l, arena: tyspec.NewArena(), file: file}
	p.next()
	p.next()
	return p
}

// Errors returns every syntax error accumulated while parsing. Per
// spec.md §6, parser diagnostics are pushed to the same shared
// diagnostic engine the core uses; ParseFile's caller is responsible for
// forwarding these into a diag.Engine (see internal/loader).
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, fmt.Sprintf("%s: %s", p.cur.Pos, fmt.Sprintf(format, args...)))
}

func (p *Parser) expect(k lexer.TokenKind, what string) bool {
	if p.cur.Kind != k {
		p.errorf("expected %s, got %q", what, p.cur.Literal)
		return false
	}
	return true
}

func (p *Parser) expectAndAdvance(k lexer.TokenKind, what string) {
	if p.expect(k, what) {
		p.next()
	}
}

// ParseFile parses one complete compilation unit.
func (p *Parser) ParseFile() *ast.File {
	file := &ast.File{Path: p.file, Pos: p.cur.Pos, Arena: p.arena}

	for p.cur.Kind != lexer.EOF {
		switch p.cur.Kind {
		case lexer.IMPORT:
			file.Imports = append(file.Imports, p.parseImport())
		case lexer.STRUCT:
			file.Structs = append(file.Structs, p.parseStructDecl())
		case lexer.EXTERN, lexer.FUN:
			file.Funcs = append(file.Funcs, p.parseFuncDecl())
		default:
			p.errorf("unexpected top-level token %q", p.cur.Literal)
			p.next()
		}
	}
	return file
}

func (p *Parser) parseImport() *ast.Import {
	pos := p.cur.Pos
	p.next() // consume 'import'
	path := p.cur.Literal
	p.expectAndAdvance(lexer.STRING, "import path string")
	if p.cur.Kind == lexer.SEMI {
		p.next()
	}
	return &ast.Import{Path: path, Pos: pos}
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.cur.Pos
	p.next() // 'struct'
	name := p.cur.Literal
	p.expectAndAdvance(lexer.IDENT, "struct name")
	p.expectAndAdvance(lexer.LBRACE, "'{'")

	decl := &ast.StructDecl{Name: name, Pos: pos}
	for p.cur.Kind != lexer.RBRACE && p.cur.Kind != lexer.EOF {
		fieldPos := p.cur.Pos
		fieldName := p.cur.Literal
		p.expectAndAdvance(lexer.IDENT, "field name")
		p.expectAndAdvance(lexer.COLON, "':'")
		spec := p.parseTypeSpec()
		decl.Fields = append(decl.Fields, ast.Field{Name: fieldName, Spec: spec, Pos: fieldPos})
		if p.cur.Kind == lexer.COMMA {
			p.next()
		}
	}
	p.expectAndAdvance(lexer.RBRACE, "'}'")
	return decl
}

func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	pos := p.cur.Pos
	extern := false
	if p.cur.Kind == lexer.EXTERN {
		extern = true
		p.next()
	}
	p.expectAndAdvance(lexer.FUN, "'fun'")
	name := p.cur.Literal
	p.expectAndAdvance(lexer.IDENT, "function name")
	p.expectAndAdvance(lexer.LPAREN, "'('")

	decl := &ast.FuncDecl{Name: name, Extern: extern, Pos: pos}
	for p.cur.Kind != lexer.RPAREN && p.cur.Kind != lexer.EOF {
		paramPos := p.cur.Pos
		paramName := p.cur.Literal
		p.expectAndAdvance(lexer.IDENT, "parameter name")
		p.expectAndAdvance(lexer.COLON, "':'")
		spec := p.parseTypeSpec()
		decl.Params = append(decl.Params, ast.Param{Name: paramName, Spec: spec, Pos: paramPos})
		if p.cur.Kind == lexer.COMMA {
			p.next()
		}
	}
	p.expectAndAdvance(lexer.RPAREN, "')'")
	p.expectAndAdvance(lexer.ARROW, "'->'")
	decl.RetSpec = p.parseTypeSpec()

	if extern {
		if p.cur.Kind == lexer.SEMI {
			p.next()
		}
		return decl
	}
	if p.cur.Kind != lexer.LBRACE {
		// A non-extern function with no body is accepted (spec.md §4.4):
		// the binder still registers it and the AIR builder lowers it
		// with an empty body; no stage reports the missing body.
		if p.cur.Kind == lexer.SEMI {
			p.next()
		}
		return decl
	}
	decl.Body = p.parseBlock()
	return decl
}

func (p *Parser) parseTypeSpec() tyspec.TySpecId {
	pos := p.cur.Pos
	var base tyspec.TySpecId
	switch p.cur.Literal {
	case "int":
		base = p.arena.InternBuiltin(pos, tyspec.Int)
		p.next()
	case "float":
		base = p.arena.InternBuiltin(pos, tyspec.Float)
		p.next()
	case "bool":
		base = p.arena.InternBuiltin(pos, tyspec.Bool)
		p.next()
	case "string":
		base = p.arena.InternBuiltin(pos, tyspec.String)
		p.next()
	case "void":
		base = p.arena.InternBuiltin(pos, tyspec.Void)
		p.next()
	default:
		base = p.arena.InternNamed(pos, p.cur.Literal)
		p.expectAndAdvance(lexer.IDENT, "type name")
	}
	for p.cur.Kind == lexer.LBRACKET {
		arrPos := p.cur.Pos
		p.next()
		var size *int
		if p.cur.Kind == lexer.INT {
			n := parseIntLiteral(p.cur.Literal)
			size = &n
			p.next()
		}
		p.expectAndAdvance(lexer.RBRACKET, "']'")
		base = p.arena.InternArray(arrPos, base, size)
	}
	return base
}

func (p *Parser) parseBlock() []ast.Stmt {
	p.expectAndAdvance(lexer.LBRACE, "'{'")
	var stmts []ast.Stmt
	for p.cur.Kind != lexer.RBRACE && p.cur.Kind != lexer.EOF {
		stmts = append(stmts, p.parseStmt())
	}
	p.expectAndAdvance(lexer.RBRACE, "'}'")
	return stmts
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur.Kind {
	case lexer.LET:
		return p.parseVarDecl()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.IF:
		return p.parseIf()
	case lexer.WHILE:
		return p.parseWhile()
	case lexer.FOR:
		return p.parseFor()
	default:
		return p.parseExprStmtOrAssignment()
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	pos := p.cur.Pos
	p.next() // 'let'
	mutable := false
	if p.cur.Kind == lexer.MUT {
		mutable = true
		p.next()
	}
	name := p.cur.Literal
	p.expectAndAdvance(lexer.IDENT, "variable name")

	decl := &ast.VarDecl{Name: name, Mutable: mutable, Pos: pos}
	if p.cur.Kind == lexer.COLON {
		p.next()
		decl.Spec = p.parseTypeSpec()
		decl.HasSpec = true
	}
	if p.cur.Kind == lexer.ASSIGN {
		p.next()
		decl.Init = p.parseExpr(lowest)
	}
	if p.cur.Kind == lexer.SEMI {
		p.next()
	}
	return decl
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.cur.Pos
	p.next()
	ret := &ast.Return{Pos: pos}
	if p.cur.Kind != lexer.SEMI {
		ret.Value = p.parseExpr(lowest)
	}
	if p.cur.Kind == lexer.SEMI {
		p.next()
	}
	return ret
}

func (p *Parser) parseCondition() ast.Expr {
	p.noStructLiteral = true
	cond := p.parseExpr(lowest)
	p.noStructLiteral = false
	return cond
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.cur.Pos
	p.next()
	cond := p.parseCondition()
	stmt := &ast.If{Cond: cond, Pos: pos}
	stmt.Then = p.parseBlock()
	if p.cur.Kind == lexer.ELSE {
		p.next()
		if p.cur.Kind == lexer.IF {
			stmt.Else = []ast.Stmt{p.parseIf()}
		} else {
			stmt.Else = p.parseBlock()
		}
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	pos := p.cur.Pos
	p.next()
	cond := p.parseCondition()
	body := p.parseBlock()
	return &ast.While{Cond: cond, Body: body, Pos: pos}
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.cur.Pos
	p.next()
	stmt := &ast.For{Pos: pos}
	if p.cur.Kind != lexer.SEMI {
		stmt.Init = p.parseStmt()
	} else {
		p.next()
	}
	if p.cur.Kind != lexer.SEMI {
		stmt.Cond = p.parseCondition()
	}
	p.expectAndAdvance(lexer.SEMI, "';'")
	if p.cur.Kind != lexer.LBRACE {
		stmt.Post = p.parseExprStmtOrAssignment()
	}
	stmt.Body = p.parseBlock()
	return stmt
}

func (p *Parser) parseExprStmtOrAssignment() ast.Stmt {
	pos := p.cur.Pos
	expr := p.parseExpr(lowest)
	if p.cur.Kind == lexer.ASSIGN {
		p.next()
		value := p.parseExpr(lowest)
		if p.cur.Kind == lexer.SEMI {
			p.next()
		}
		switch lhs := expr.(type) {
		case *ast.Identifier:
			return &ast.Assignment{Name: lhs.Name, Value: value, Pos: pos}
		case *ast.FieldAccess:
			return &ast.FieldAssignment{Object: lhs.Object, Field: lhs.Field, Value: value, Pos: pos}
		default:
			p.errorf("invalid assignment target")
			return &ast.ExprStmt{X: expr, Pos: pos}
		}
	}
	if p.cur.Kind == lexer.SEMI {
		p.next()
	}
	return &ast.ExprStmt{X: expr, Pos: pos}
}

func parseIntLiteral(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
