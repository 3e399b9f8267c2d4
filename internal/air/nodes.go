// Package air defines the typed AIR (spec.md §3/§4.7): the output of the
// middle-end and the input a code generator consumes. Every AIR
// expression node carries a resolved types.TyId; every statement node
// carries whatever identity (VarId, field index) codegen needs.
//
// Grounded on the teacher's internal/core/core.go tagged-variant IR node
// shapes (CoreNode embedding, coreExpr()/patternNode() marker methods) —
// carried over here as AIRNode embedding with airExpr()/airStmt().
package air

import (
	"github.com/nilva-lang/nilva/internal/srcpos"
	"github.com/nilva-lang/nilva/internal/symtab"
	"github.com/nilva-lang/nilva/internal/types"
)

// AIRNode is embedded by every AIR node to carry its source position.
type AIRNode struct {
	Pos srcpos.Pos
}

func (n AIRNode) Position() srcpos.Pos { return n.Pos }

// Expr is any typed AIR expression.
type Expr interface {
	Position() srcpos.Pos
	Type() types.TyId
	airExpr()
}

// Stmt is any AIR statement.
type Stmt interface {
	Position() srcpos.Pos
	airStmt()
}

// ---- Expressions ----

type IntegerLiteral struct {
	AIRNode
	Value int64
}

func (e *IntegerLiteral) Type() types.TyId { return types.Integer }
func (e *IntegerLiteral) airExpr()         {}

type FloatLiteral struct {
	AIRNode
	Value float64
}

func (e *FloatLiteral) Type() types.TyId { return types.Float }
func (e *FloatLiteral) airExpr()         {}

type BoolLiteral struct {
	AIRNode
	Value bool
}

func (e *BoolLiteral) Type() types.TyId { return types.Bool }
func (e *BoolLiteral) airExpr()         {}

type StringLiteral struct {
	AIRNode
	Value string
}

func (e *StringLiteral) Type() types.TyId { return types.String }
func (e *StringLiteral) airExpr()         {}

// VarRef is a typed reference to a bound variable. A reference to an
// undefined name still produces a VarRef (TyId=Error, VarId=0) so
// traversal continues (spec.md §4.7's Identifier contract).
type VarRef struct {
	AIRNode
	Name  string
	VarId symtab.VarId
	Ty    types.TyId
}

func (e *VarRef) Type() types.TyId { return e.Ty }
func (e *VarRef) airExpr()         {}

type UnaryOpKind int

const (
	OpNeg UnaryOpKind = iota
	OpNot
)

type UnaryOp struct {
	AIRNode
	Kind    UnaryOpKind
	Operand Expr
	Ty      types.TyId
}

func (e *UnaryOp) Type() types.TyId { return e.Ty }
func (e *UnaryOp) airExpr()         {}

type BinaryOpKind int

const (
	OpAdd BinaryOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

type BinaryOp struct {
	AIRNode
	Kind  BinaryOpKind
	Left  Expr
	Right Expr
	Ty    types.TyId
}

func (e *BinaryOp) Type() types.TyId { return e.Ty }
func (e *BinaryOp) airExpr()         {}

// Call is a resolved call to a function by FunctionId. Ty is the
// function's return type (or Error if the function was undefined).
type Call struct {
	AIRNode
	FuncId symtab.FunctionId
	Name   string
	Args   []Expr
	Ty     types.TyId
}

func (e *Call) Type() types.TyId { return e.Ty }
func (e *Call) airExpr()         {}

// StructInstantiation carries field values in declaration order (spec.md
// §3's explicit shape — not keyed by field name).
type StructInstantiation struct {
	AIRNode
	Name     string
	StructId types.StructId
	Values   []Expr
	Ty       types.TyId
}

func (e *StructInstantiation) Type() types.TyId { return e.Ty }
func (e *StructInstantiation) airExpr()         {}

// FieldAccess carries both the field's textual name (for diagnostics)
// and its resolved index (so codegen can compute an offset without
// re-resolving the field by name) — spec.md §3/§4.7's name+ID invariant.
type FieldAccess struct {
	AIRNode
	Object     Expr
	Field      string
	FieldIndex int
	Ty         types.TyId
}

func (e *FieldAccess) Type() types.TyId { return e.Ty }
func (e *FieldAccess) airExpr()         {}

type ArrayExpr struct {
	AIRNode
	Elements []Expr
	Ty       types.TyId // array TyId, registered via the type table's interning cache
}

func (e *ArrayExpr) Type() types.TyId { return e.Ty }
func (e *ArrayExpr) airExpr()         {}

type ArrayAccess struct {
	AIRNode
	Array Expr
	Index Expr
	Ty    types.TyId // the array's element type
}

func (e *ArrayAccess) Type() types.TyId { return e.Ty }
func (e *ArrayAccess) airExpr()         {}

// ---- Statements ----

type VarDecl struct {
	AIRNode
	VarId   symtab.VarId
	Mutable bool
	Ty      types.TyId
	Init    Expr
}

func (s *VarDecl) airStmt() {}

type Assignment struct {
	AIRNode
	VarId symtab.VarId
	Value Expr
}

func (s *Assignment) airStmt() {}

type FieldAssignment struct {
	AIRNode
	Object     Expr
	FieldIndex int
	Value      Expr
}

func (s *FieldAssignment) airStmt() {}

type Return struct {
	AIRNode
	Value Expr // nil for a bare `return;`
}

func (s *Return) airStmt() {}

type If struct {
	AIRNode
	Cond Expr
	Then []Stmt
	Else []Stmt
}

func (s *If) airStmt() {}

type ExprStmt struct {
	AIRNode
	X Expr
}

func (s *ExprStmt) airStmt() {}

// WhileLoop and ForLoop node shapes are reserved per spec.md §9's open
// question. The builder produces one only as an empty placeholder,
// alongside its "not yet supported" error, so a Module returned by Build
// never contains one; the shape is here so a later pass can fill in
// lowering without widening the Stmt interface.
type WhileLoop struct {
	AIRNode
	Cond Expr
	Body []Stmt
}

func (s *WhileLoop) airStmt() {}

type ForLoop struct {
	AIRNode
	Init Stmt
	Cond Expr
	Post Stmt
	Body []Stmt
}

func (s *ForLoop) airStmt() {}

// ---- Module-level ----

// StructDecl is a resolved struct: fields in declaration order with
// their resolved types, matching symtab.FieldSymbol order exactly (so
// field index in FieldAccess/StructInstantiation lines up).
type StructDecl struct {
	AIRNode
	StructId types.StructId
	Name     string
	Ty       types.TyId
	Fields   []symtab.FieldSymbol
}

// FuncDecl is a resolved function. Body is nil for extern functions.
type FuncDecl struct {
	AIRNode
	FuncId   symtab.FunctionId
	Name     string
	ParamIds []symtab.VarId
	ParamTys []types.TyId
	ReturnTy types.TyId
	Extern   bool
	Body     []Stmt
}

// Module is the complete typed output of one compilation's middle-end —
// what a code generator (internal/codegen) consumes.
type Module struct {
	Structs   []*StructDecl
	Functions []*FuncDecl
}
