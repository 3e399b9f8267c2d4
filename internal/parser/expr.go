package parser

import (
	"strconv"

	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/lexer"
	"github.com/nilva-lang/nilva/internal/srcpos"
)

// precedence levels, lowest to highest.
const (
	lowest = iota
	orPrec
	andPrec
	equalsPrec
	comparePrec
	sumPrec
	productPrec
	unaryPrec
	callPrec
)

var precedences = map[lexer.TokenKind]int{
	lexer.OR:      orPrec,
	lexer.AND:     andPrec,
	lexer.EQ:      equalsPrec,
	lexer.NE:      equalsPrec,
	lexer.LT:      comparePrec,
	lexer.LE:      comparePrec,
	lexer.GT:      comparePrec,
	lexer.GE:      comparePrec,
	lexer.PLUS:    sumPrec,
	lexer.MINUS:   sumPrec,
	lexer.STAR:    productPrec,
	lexer.SLASH:   productPrec,
	lexer.PERCENT: productPrec,
	lexer.DOT:     callPrec,
	lexer.LBRACKET: callPrec,
}

var binOpKinds = map[lexer.TokenKind]ast.BinaryOpKind{
	lexer.PLUS:    ast.OpAdd,
	lexer.MINUS:   ast.OpSub,
	lexer.STAR:    ast.OpMul,
	lexer.SLASH:   ast.OpDiv,
	lexer.PERCENT: ast.OpMod,
	lexer.EQ:      ast.OpEq,
	lexer.NE:      ast.OpNe,
	lexer.LT:      ast.OpLt,
	lexer.LE:      ast.OpLe,
	lexer.GT:      ast.OpGt,
	lexer.GE:      ast.OpGe,
	lexer.AND:     ast.OpAnd,
	lexer.OR:      ast.OpOr,
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Kind]; ok {
		return prec
	}
	return lowest
}

// parseExpr is a standard Pratt / precedence-climbing expression parser.
func (p *Parser) parseExpr(minPrec int) ast.Expr {
	left := p.parsePrefix()

	for p.cur.Kind != lexer.SEMI && minPrec < p.curPrecedence() {
		switch p.cur.Kind {
		case lexer.DOT:
			left = p.parseFieldAccess(left)
		case lexer.LBRACKET:
			left = p.parseArrayAccess(left)
		default:
			left = p.parseBinary(left)
		}
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Kind]; ok {
		return prec
	}
	return lowest
}

func (p *Parser) parsePrefix() ast.Expr {
	switch p.cur.Kind {
	case lexer.INT:
		return p.parseIntegerLiteral()
	case lexer.FLOAT:
		return p.parseFloatLiteral()
	case lexer.STRING:
		lit := &ast.StringLiteral{Value: p.cur.Literal, Pos: p.cur.Pos}
		p.next()
		return lit
	case lexer.TRUE:
		lit := &ast.BoolLiteral{Value: true, Pos: p.cur.Pos}
		p.next()
		return lit
	case lexer.FALSE:
		lit := &ast.BoolLiteral{Value: false, Pos: p.cur.Pos}
		p.next()
		return lit
	case lexer.MINUS:
		pos := p.cur.Pos
		p.next()
		operand := p.parseExpr(unaryPrec)
		return &ast.UnaryOp{Kind: ast.OpNeg, Operand: operand, Pos: pos}
	case lexer.BANG:
		pos := p.cur.Pos
		p.next()
		operand := p.parseExpr(unaryPrec)
		return &ast.UnaryOp{Kind: ast.OpNot, Operand: operand, Pos: pos}
	case lexer.LPAREN:
		p.next()
		expr := p.parseExpr(lowest)
		p.expectAndAdvance(lexer.RPAREN, "')'")
		return expr
	case lexer.LBRACKET:
		return p.parseArrayExpr()
	case lexer.IDENT:
		return p.parseIdentOrCallOrStruct()
	default:
		p.errorf("unexpected token %q in expression", p.cur.Literal)
		pos := p.cur.Pos
		p.next()
		return &ast.IntegerLiteral{Value: 0, Pos: pos}
	}
}

func (p *Parser) parseIntegerLiteral() ast.Expr {
	pos := p.cur.Pos
	v, _ := strconv.ParseInt(p.cur.Literal, 10, 64)
	p.next()
	return &ast.IntegerLiteral{Value: v, Pos: pos}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	pos := p.cur.Pos
	v, _ := strconv.ParseFloat(p.cur.Literal, 64)
	p.next()
	return &ast.FloatLiteral{Value: v, Pos: pos}
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	pos := p.cur.Pos
	kind := binOpKinds[p.cur.Kind]
	prec := p.curPrecedence()
	p.next()
	right := p.parseExpr(prec)
	return &ast.BinaryOp{Kind: kind, Left: left, Right: right, Pos: pos}
}

func (p *Parser) parseFieldAccess(left ast.Expr) ast.Expr {
	pos := p.cur.Pos
	p.next() // '.'
	field := p.cur.Literal
	p.expectAndAdvance(lexer.IDENT, "field name")
	return &ast.FieldAccess{Object: left, Field: field, Pos: pos}
}

func (p *Parser) parseArrayAccess(left ast.Expr) ast.Expr {
	pos := p.cur.Pos
	p.next() // '['
	index := p.parseExpr(lowest)
	p.expectAndAdvance(lexer.RBRACKET, "']'")
	return &ast.ArrayAccess{Array: left, Index: index, Pos: pos}
}

func (p *Parser) parseArrayExpr() ast.Expr {
	pos := p.cur.Pos
	p.next() // '['
	expr := &ast.ArrayExpr{Pos: pos}
	for p.cur.Kind != lexer.RBRACKET && p.cur.Kind != lexer.EOF {
		expr.Elements = append(expr.Elements, p.parseExpr(lowest))
		if p.cur.Kind == lexer.COMMA {
			p.next()
		}
	}
	p.expectAndAdvance(lexer.RBRACKET, "']'")
	return expr
}

func (p *Parser) parseIdentOrCallOrStruct() ast.Expr {
	pos := p.cur.Pos
	name := p.cur.Literal
	p.next()

	switch p.cur.Kind {
	case lexer.LPAREN:
		p.next()
		call := &ast.Call{Name: name, Pos: pos}
		for p.cur.Kind != lexer.RPAREN && p.cur.Kind != lexer.EOF {
			call.Args = append(call.Args, p.parseExpr(lowest))
			if p.cur.Kind == lexer.COMMA {
				p.next()
			}
		}
		p.expectAndAdvance(lexer.RPAREN, "')'")
		return call
	case lexer.LBRACE:
		if p.noStructLiteral {
			return &ast.Identifier{Name: name, Pos: pos}
		}
		return p.parseStructInstantiation(name, pos)
	default:
		return &ast.Identifier{Name: name, Pos: pos}
	}
}

func (p *Parser) parseStructInstantiation(name string, pos srcpos.Pos) ast.Expr {
	p.next() // '{'
	inst := &ast.StructInstantiation{Name: name, Pos: pos}
	for p.cur.Kind != lexer.RBRACE && p.cur.Kind != lexer.EOF {
		inst.Values = append(inst.Values, p.parseExpr(lowest))
		if p.cur.Kind == lexer.COMMA {
			p.next()
		}
	}
	p.expectAndAdvance(lexer.RBRACE, "'}'")
	return inst
}
