// Builder lowers the bound, resolved AST into the typed air.Module
// (spec.md §4.7). Grounded on the teacher's internal/elaborate/elaborate.go
// visitor-dispatch structure (lowerExpr/lowerStmt switch-on-concrete-type
// functions), adapted from HM inference to this grammar's simple,
// monomorphic type-checking-while-lowering pass.
package air

import (
	"strings"

	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/bind"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/srcpos"
	"github.com/nilva-lang/nilva/internal/symtab"
	"github.com/nilva-lang/nilva/internal/tyspec"
	"github.com/nilva-lang/nilva/internal/types"
)

// Builder owns the shared state spec.md §4.7 lists: the type table, the
// symbol table, the diagnostic engine, and a reference to the bindings
// pass 2 produced (so VarIds stay stable between binder and AIR).
type Builder struct {
	Types   *types.Table
	Symbols *symtab.Table
	Diag    *diag.Engine
	bindRes *bind.Result

	// curArena is the TySpecArena of the file whose function is currently
	// being lowered, needed to resolve a local `let` annotation the same
	// way internal/resolve resolves struct fields and signatures.
	curArena *tyspec.Arena
}

// New creates a Builder. bindRes must be the Result produced by the
// Binder's BindBodies call for this compilation.
func New(t *types.Table, s *symtab.Table, d *diag.Engine, bindRes *bind.Result) *Builder {
	return &Builder{Types: t, Symbols: s, Diag: d, bindRes: bindRes}
}

// funcScope is the per-function "name -> TyId"/"name -> VarId" map
// spec.md §4.7 describes, distinct from internal/bind's Scope tree: a
// variable's TyId is only known once its initializer has been lowered,
// which happens here, not during binding.
type funcScope struct {
	vars   map[string]funcVar
	parent *funcScope
	retTy  types.TyId
}

type funcVar struct {
	id   symtab.VarId
	ty   types.TyId
	read bool
	pos  srcpos.Pos
	name string
}

func newFuncScope(parent *funcScope) *funcScope {
	s := &funcScope{vars: make(map[string]funcVar)}
	if parent != nil {
		s.parent = parent
		s.retTy = parent.retTy
	}
	return s
}

func (s *funcScope) declare(name string, id symtab.VarId, ty types.TyId, pos srcpos.Pos) {
	s.vars[name] = funcVar{id: id, ty: ty, pos: pos, name: name}
}

func (s *funcScope) lookup(name string) (funcVar, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return funcVar{}, false
}

// markRead marks name as read, walking up to whichever scope declared
// it, for the unused-let-binding warning.
func (s *funcScope) markRead(name string) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			v.read = true
			cur.vars[name] = v
			return
		}
	}
}

// Build assembles the complete Module: structs first, then functions
// (spec.md §4.7's module-assembly order). If the diagnostic engine
// reports any errors by the end, Build returns nil — the caller
// (internal/pipeline) should check diag.HasErrors() itself, but Build
// mirrors spec.md's "return nothing" contract for direct callers.
func (b *Builder) Build(files []*ast.File) *Module {
	mod := &Module{}

	for _, name := range b.Symbols.StructOrder() {
		sym, ok := b.Symbols.LookupStruct(name)
		if !ok {
			continue
		}
		mod.Structs = append(mod.Structs, &StructDecl{
			AIRNode:  AIRNode{Pos: sym.Pos},
			StructId: sym.Id,
			Name:     sym.Name,
			Ty:       sym.Ty,
			Fields:   sym.Fields,
		})
	}

	funcDecls := make(map[string]*ast.FuncDecl)
	arenaOf := make(map[string]*tyspec.Arena)
	for _, f := range files {
		for _, fd := range f.Funcs {
			funcDecls[fd.Name] = fd
			arenaOf[fd.Name] = f.Arena
		}
	}

	for _, name := range b.Symbols.FunctionOrder() {
		sym, ok := b.Symbols.LookupFunction(name)
		if !ok {
			continue
		}
		fd, ok := funcDecls[name]
		if !ok {
			continue
		}
		b.curArena = arenaOf[name]
		mod.Functions = append(mod.Functions, b.lowerFunc(fd, sym))
	}

	if b.Diag.HasErrors() {
		return nil
	}
	return mod
}

func (b *Builder) lowerFunc(fd *ast.FuncDecl, sym *symtab.FunctionSymbol) *FuncDecl {
	paramIds := b.bindRes.ParamVarIds[fd]

	out := &FuncDecl{
		AIRNode:  AIRNode{Pos: fd.Pos},
		FuncId:   sym.Id,
		Name:     fd.Name,
		ParamIds: paramIds,
		ParamTys: sym.ParamTys,
		ReturnTy: sym.ReturnTy,
		Extern:   fd.Extern,
	}
	if fd.Extern || fd.Body == nil {
		return out
	}

	scope := newFuncScope(nil)
	scope.retTy = sym.ReturnTy
	for i, p := range fd.Params {
		if i >= len(paramIds) {
			continue
		}
		ty := types.Error
		if i < len(sym.ParamTys) {
			ty = sym.ParamTys[i]
		}
		// Parameters are declared already marked read: only local
		// let-bindings are flagged unused (spec.md §3.1's supplemented
		// warning names let-bindings specifically).
		scope.vars[p.Name] = funcVar{id: paramIds[i], ty: ty, read: true, pos: p.Pos, name: p.Name}
	}

	out.Body = b.lowerStmts(fd.Body, scope)
	b.reportUnused(scope)
	return out
}

func (b *Builder) reportUnused(scope *funcScope) {
	for _, v := range scope.vars {
		if !v.read {
			b.Diag.Warnf(v.pos, diag.PhaseAIRBuilding, "Unused variable: %q", v.name)
		}
	}
}

func (b *Builder) lowerStmts(stmts []ast.Stmt, scope *funcScope) []Stmt {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, b.lowerStmt(s, scope))
	}
	return out
}

func (b *Builder) lowerStmt(s ast.Stmt, scope *funcScope) Stmt {
	switch st := s.(type) {
	case *ast.VarDecl:
		return b.lowerVarDecl(st, scope)
	case *ast.Assignment:
		return b.lowerAssignment(st, scope)
	case *ast.FieldAssignment:
		return b.lowerFieldAssignment(st, scope)
	case *ast.Return:
		return b.lowerReturn(st, scope)
	case *ast.If:
		return b.lowerIf(st, scope)
	case *ast.ExprStmt:
		return &ExprStmt{AIRNode: AIRNode{Pos: st.Pos}, X: b.lowerExpr(st.X, scope)}
	case *ast.While:
		b.Diag.Errorf(st.Pos, diag.PhaseAIRBuilding, "While loops are not yet supported in IR lowering")
		return &WhileLoop{AIRNode: AIRNode{Pos: st.Pos}}
	case *ast.For:
		b.Diag.Errorf(st.Pos, diag.PhaseAIRBuilding, "For loops are not yet supported in IR lowering")
		return &ForLoop{AIRNode: AIRNode{Pos: st.Pos}}
	default:
		diag.ICE("air: unhandled statement kind %T", s)
		return nil
	}
}

func (b *Builder) lowerVarDecl(st *ast.VarDecl, scope *funcScope) Stmt {
	var init Expr
	var initTy types.TyId = types.Error
	if st.Init != nil {
		init = b.lowerExpr(st.Init, scope)
		initTy = init.Type()
	} else {
		b.Diag.Errorf(st.Pos, diag.PhaseAIRBuilding, "All declarations require an initializer: %q", st.Name)
	}

	declaredTy := initTy
	if st.HasSpec {
		declaredTy = b.resolveVarDeclSpec(st)
		if st.Init != nil {
			b.checkCompatible(declaredTy, initTy, st.Pos, "variable initialization")
		}
	}

	id := symtab.VarId(-1)
	if existing, ok := b.bindRes.DeclVarIds[st]; ok {
		id = existing
	} else {
		id = b.Symbols.AllocateVarId()
	}
	b.Symbols.RegisterVariable(id, st.Name, st.Mutable, declaredTy, st.Pos)
	scope.declare(st.Name, id, declaredTy, st.Pos)

	return &VarDecl{
		AIRNode: AIRNode{Pos: st.Pos},
		VarId:   id,
		Mutable: st.Mutable,
		Ty:      declaredTy,
		Init:    init,
	}
}

// resolveVarDeclSpec resolves a VarDecl's own annotation. internal/bind
// and internal/resolve only resolve struct-field and function-signature
// specs; a local `let` annotation is resolved here, the first point a
// per-statement spec actually needs a TyId. Builtins and already-known
// struct names resolve directly; arrays resolve recursively via the type
// table's interning cache, exactly as internal/resolve does for struct
// fields and signatures.
func (b *Builder) resolveVarDeclSpec(st *ast.VarDecl) types.TyId {
	return b.resolveSpec(st.Spec)
}

func (b *Builder) resolveSpec(spec tyspec.TySpecId) types.TyId {
	s := b.curArena.Get(spec)
	switch {
	case s.IsBuiltin():
		if id, ok := b.Types.LookupByName(s.Builtin.String()); ok {
			return id
		}
		return types.Error
	case s.IsArray():
		elem := b.resolveSpec(s.Elem)
		return b.Types.RegisterArray(elem)
	case s.IsNamed():
		if sym, ok := b.Symbols.LookupStruct(s.Name); ok {
			return sym.Ty
		}
		return types.Error
	default:
		return types.Error
	}
}

func (b *Builder) lowerAssignment(st *ast.Assignment, scope *funcScope) Stmt {
	v, ok := scope.lookup(st.Name)
	if !ok {
		b.Diag.Errorf(st.Pos, diag.PhaseAIRBuilding, "Undefined variable: %q%s", st.Name, b.didYouMeanVar(st.Name, scope))
		value := b.lowerExpr(st.Value, scope)
		return &Assignment{AIRNode: AIRNode{Pos: st.Pos}, VarId: 0, Value: value}
	}
	value := b.lowerExpr(st.Value, scope)
	b.checkCompatible(v.ty, value.Type(), st.Pos, "assignment")
	return &Assignment{AIRNode: AIRNode{Pos: st.Pos}, VarId: v.id, Value: value}
}

func (b *Builder) lowerFieldAssignment(st *ast.FieldAssignment, scope *funcScope) Stmt {
	obj := b.lowerExpr(st.Object, scope)
	value := b.lowerExpr(st.Value, scope)

	idx, fieldTy, ok := b.lookupField(obj.Type(), st.Field, st.Pos)
	if !ok {
		return &FieldAssignment{AIRNode: AIRNode{Pos: st.Pos}, Object: obj, FieldIndex: -1, Value: value}
	}
	b.checkCompatible(fieldTy, value.Type(), st.Pos, "field assignment")
	return &FieldAssignment{AIRNode: AIRNode{Pos: st.Pos}, Object: obj, FieldIndex: idx, Value: value}
}

func (b *Builder) lowerReturn(st *ast.Return, scope *funcScope) Stmt {
	if st.Value == nil {
		if scope.retTy != types.Void && scope.retTy != types.Error {
			b.Diag.Errorf(st.Pos, diag.PhaseAIRBuilding, "Type mismatch in return: expected '%s', got 'void'", b.Types.TyName(scope.retTy))
		}
		return &Return{AIRNode: AIRNode{Pos: st.Pos}}
	}
	value := b.lowerExpr(st.Value, scope)
	b.checkCompatible(scope.retTy, value.Type(), st.Pos, "return")
	return &Return{AIRNode: AIRNode{Pos: st.Pos}, Value: value}
}

func (b *Builder) lowerIf(st *ast.If, scope *funcScope) Stmt {
	cond := b.lowerExpr(st.Cond, scope)
	if !b.Types.IsBool(cond.Type()) && !b.Types.IsError(cond.Type()) {
		b.Diag.Errorf(st.Pos, diag.PhaseAIRBuilding, "Type mismatch in if condition: expected 'bool', got '%s'", b.Types.TyName(cond.Type()))
	}

	thenScope := newFuncScope(scope)
	thenBody := b.lowerStmts(st.Then, thenScope)
	b.reportUnused(thenScope)

	var elseBody []Stmt
	if st.Else != nil {
		elseScope := newFuncScope(scope)
		elseBody = b.lowerStmts(st.Else, elseScope)
		b.reportUnused(elseScope)
	}

	return &If{AIRNode: AIRNode{Pos: st.Pos}, Cond: cond, Then: thenBody, Else: elseBody}
}

// ---- Expressions ----

func (b *Builder) lowerExpr(e ast.Expr, scope *funcScope) Expr {
	switch ex := e.(type) {
	case *ast.IntegerLiteral:
		return &IntegerLiteral{AIRNode: AIRNode{Pos: ex.Pos}, Value: ex.Value}
	case *ast.FloatLiteral:
		return &FloatLiteral{AIRNode: AIRNode{Pos: ex.Pos}, Value: ex.Value}
	case *ast.BoolLiteral:
		return &BoolLiteral{AIRNode: AIRNode{Pos: ex.Pos}, Value: ex.Value}
	case *ast.StringLiteral:
		return &StringLiteral{AIRNode: AIRNode{Pos: ex.Pos}, Value: ex.Value}
	case *ast.Identifier:
		return b.lowerIdentifier(ex, scope)
	case *ast.UnaryOp:
		return b.lowerUnary(ex, scope)
	case *ast.BinaryOp:
		return b.lowerBinary(ex, scope)
	case *ast.Call:
		return b.lowerCall(ex, scope)
	case *ast.StructInstantiation:
		return b.lowerStructInstantiation(ex, scope)
	case *ast.FieldAccess:
		return b.lowerFieldAccessExpr(ex, scope)
	case *ast.ArrayExpr:
		return b.lowerArrayExpr(ex, scope)
	case *ast.ArrayAccess:
		return b.lowerArrayAccess(ex, scope)
	default:
		diag.ICE("air: unhandled expression kind %T", e)
		return nil
	}
}

func (b *Builder) lowerIdentifier(ex *ast.Identifier, scope *funcScope) Expr {
	v, ok := scope.lookup(ex.Name)
	if !ok {
		b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Undefined variable: %q%s", ex.Name, b.didYouMeanVar(ex.Name, scope))
		return &VarRef{AIRNode: AIRNode{Pos: ex.Pos}, Name: ex.Name, VarId: 0, Ty: types.Error}
	}
	scope.markRead(ex.Name)
	return &VarRef{AIRNode: AIRNode{Pos: ex.Pos}, Name: ex.Name, VarId: v.id, Ty: v.ty}
}

func (b *Builder) lowerUnary(ex *ast.UnaryOp, scope *funcScope) Expr {
	operand := b.lowerExpr(ex.Operand, scope)
	var kind UnaryOpKind
	var resultTy types.TyId

	switch ex.Kind {
	case ast.OpNeg:
		kind = OpNeg
		if b.Types.IsNumeric(operand.Type()) || b.Types.IsError(operand.Type()) {
			resultTy = operand.Type()
		} else {
			b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Type mismatch in unary '-': expected numeric type, got '%s'", b.Types.TyName(operand.Type()))
			resultTy = types.Error
		}
	case ast.OpNot:
		kind = OpNot
		if b.Types.IsBool(operand.Type()) || b.Types.IsError(operand.Type()) {
			resultTy = types.Bool
		} else {
			b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Type mismatch in unary '!': expected 'bool', got '%s'", b.Types.TyName(operand.Type()))
			resultTy = types.Error
		}
	}
	return &UnaryOp{AIRNode: AIRNode{Pos: ex.Pos}, Kind: kind, Operand: operand, Ty: resultTy}
}

var binOpKindMap = map[ast.BinaryOpKind]BinaryOpKind{
	ast.OpAdd: OpAdd, ast.OpSub: OpSub, ast.OpMul: OpMul, ast.OpDiv: OpDiv, ast.OpMod: OpMod,
	ast.OpEq: OpEq, ast.OpNe: OpNe, ast.OpLt: OpLt, ast.OpLe: OpLe, ast.OpGt: OpGt, ast.OpGe: OpGe,
	ast.OpAnd: OpAnd, ast.OpOr: OpOr,
}

func isArithmetic(k ast.BinaryOpKind) bool {
	switch k {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return true
	}
	return false
}

func isComparison(k ast.BinaryOpKind) bool {
	switch k {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return true
	}
	return false
}

func (b *Builder) lowerBinary(ex *ast.BinaryOp, scope *funcScope) Expr {
	left := b.lowerExpr(ex.Left, scope)
	right := b.lowerExpr(ex.Right, scope)
	kind := binOpKindMap[ex.Kind]

	var resultTy types.TyId
	switch {
	case isArithmetic(ex.Kind):
		resultTy = b.checkArithmetic(left.Type(), right.Type(), ex.Pos)
	case isComparison(ex.Kind):
		if !b.Types.IsError(left.Type()) && !b.Types.IsError(right.Type()) && !b.Types.AreCompatible(left.Type(), right.Type()) {
			b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Type mismatch in comparison: expected '%s', got '%s'", b.Types.TyName(left.Type()), b.Types.TyName(right.Type()))
		}
		resultTy = types.Bool
	default: // logical AND/OR
		if !(b.Types.IsBool(left.Type()) || b.Types.IsError(left.Type())) {
			b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Type mismatch in logical operator: expected 'bool', got '%s'", b.Types.TyName(left.Type()))
		}
		if !(b.Types.IsBool(right.Type()) || b.Types.IsError(right.Type())) {
			b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Type mismatch in logical operator: expected 'bool', got '%s'", b.Types.TyName(right.Type()))
		}
		resultTy = types.Bool
	}

	return &BinaryOp{AIRNode: AIRNode{Pos: ex.Pos}, Kind: kind, Left: left, Right: right, Ty: resultTy}
}

// checkArithmetic implements spec.md §4.7's arithmetic rule: both
// operands the same numeric type (Integer+Integer -> Integer,
// Float+Float -> Float); anything else is an error producing Error.
func (b *Builder) checkArithmetic(left, right types.TyId, pos srcpos.Pos) types.TyId {
	if b.Types.IsError(left) || b.Types.IsError(right) {
		return types.Error
	}
	if left == right && b.Types.IsNumeric(left) {
		return left
	}
	b.Diag.Errorf(pos, diag.PhaseAIRBuilding, "Type mismatch in arithmetic expression: expected matching numeric types, got '%s' and '%s'", b.Types.TyName(left), b.Types.TyName(right))
	return types.Error
}

func (b *Builder) lowerCall(ex *ast.Call, scope *funcScope) Expr {
	sym, ok := b.Symbols.LookupFunction(ex.Name)
	if !ok {
		b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Undefined function: %q%s", ex.Name, b.didYouMeanFunc(ex.Name))
		args := make([]Expr, len(ex.Args))
		for i, a := range ex.Args {
			args[i] = b.lowerExpr(a, scope)
		}
		return &Call{AIRNode: AIRNode{Pos: ex.Pos}, Name: ex.Name, Args: args, Ty: types.Error}
	}

	if len(ex.Args) != len(sym.ParamTys) {
		b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Argument count mismatch in call to %q: expected %d, got %d", ex.Name, len(sym.ParamTys), len(ex.Args))
	}

	args := make([]Expr, len(ex.Args))
	for i, a := range ex.Args {
		lowered := b.lowerExpr(a, scope)
		args[i] = lowered
		if i < len(sym.ParamTys) {
			b.checkCompatible(sym.ParamTys[i], lowered.Type(), a.Position(), "function call argument")
		}
	}

	return &Call{AIRNode: AIRNode{Pos: ex.Pos}, FuncId: sym.Id, Name: ex.Name, Args: args, Ty: sym.ReturnTy}
}

func (b *Builder) lowerStructInstantiation(ex *ast.StructInstantiation, scope *funcScope) Expr {
	sym, ok := b.Symbols.LookupStruct(ex.Name)
	if !ok {
		b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Undefined struct: %q", ex.Name)
		values := make([]Expr, len(ex.Values))
		for i, v := range ex.Values {
			values[i] = b.lowerExpr(v, scope)
		}
		return &StructInstantiation{AIRNode: AIRNode{Pos: ex.Pos}, Name: ex.Name, Values: values, Ty: types.Error}
	}

	if len(ex.Values) != len(sym.Fields) {
		b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Field count mismatch in %q instantiation: expected %d, got %d", ex.Name, len(sym.Fields), len(ex.Values))
	}

	values := make([]Expr, len(ex.Values))
	for i, v := range ex.Values {
		lowered := b.lowerExpr(v, scope)
		values[i] = lowered
		if i < len(sym.Fields) {
			b.checkCompatible(sym.Fields[i].Ty, lowered.Type(), v.Position(), "struct field value")
		}
	}

	return &StructInstantiation{AIRNode: AIRNode{Pos: ex.Pos}, Name: ex.Name, StructId: sym.Id, Values: values, Ty: sym.Ty}
}

func (b *Builder) lowerFieldAccessExpr(ex *ast.FieldAccess, scope *funcScope) Expr {
	obj := b.lowerExpr(ex.Object, scope)
	idx, fieldTy, ok := b.lookupField(obj.Type(), ex.Field, ex.Pos)
	if !ok {
		return &FieldAccess{AIRNode: AIRNode{Pos: ex.Pos}, Object: obj, Field: ex.Field, FieldIndex: -1, Ty: types.Error}
	}
	return &FieldAccess{AIRNode: AIRNode{Pos: ex.Pos}, Object: obj, Field: ex.Field, FieldIndex: idx, Ty: fieldTy}
}

// lookupField implements the shared FieldAccess/FieldAssignment contract:
// the object must be a struct type; the field must exist by name.
func (b *Builder) lookupField(objTy types.TyId, field string, pos srcpos.Pos) (int, types.TyId, bool) {
	if b.Types.IsError(objTy) {
		return -1, types.Error, false
	}
	if !b.Types.IsStruct(objTy) {
		b.Diag.Errorf(pos, diag.PhaseAIRBuilding, "Field access on non-struct type '%s'", b.Types.TyName(objTy))
		return -1, types.Error, false
	}
	info := b.Types.Info(objTy)
	structName := info.Name
	sym, ok := b.Symbols.LookupStruct(structName)
	if !ok {
		diag.ICE("air: struct type %q has no symbol table entry", structName)
	}
	for i, f := range sym.Fields {
		if f.Name == field {
			return i, f.Ty, true
		}
	}
	b.Diag.Errorf(pos, diag.PhaseAIRBuilding, "Struct %s has no field %s", structName, field)
	return -1, types.Error, false
}

func (b *Builder) lowerArrayExpr(ex *ast.ArrayExpr, scope *funcScope) Expr {
	elements := make([]Expr, len(ex.Elements))
	var elemTy types.TyId = types.Void
	for i, el := range ex.Elements {
		lowered := b.lowerExpr(el, scope)
		elements[i] = lowered
		if i == 0 {
			elemTy = lowered.Type()
			continue
		}
		if !b.Types.IsError(lowered.Type()) && !b.Types.IsError(elemTy) && lowered.Type() != elemTy {
			b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Array elements must have the same type")
		}
	}
	if len(ex.Elements) == 0 {
		elemTy = types.Void
	}
	arrTy := b.Types.RegisterArray(elemTy)
	return &ArrayExpr{AIRNode: AIRNode{Pos: ex.Pos}, Elements: elements, Ty: arrTy}
}

func (b *Builder) lowerArrayAccess(ex *ast.ArrayAccess, scope *funcScope) Expr {
	arr := b.lowerExpr(ex.Array, scope)
	index := b.lowerExpr(ex.Index, scope)

	if !b.Types.IsError(index.Type()) && index.Type() != types.Integer {
		b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Array index must be 'int', got '%s'", b.Types.TyName(index.Type()))
	}

	if b.Types.IsError(arr.Type()) {
		return &ArrayAccess{AIRNode: AIRNode{Pos: ex.Pos}, Array: arr, Index: index, Ty: types.Error}
	}
	if !b.Types.IsArray(arr.Type()) {
		b.Diag.Errorf(ex.Pos, diag.PhaseAIRBuilding, "Array access on non-array type '%s'", b.Types.TyName(arr.Type()))
		return &ArrayAccess{AIRNode: AIRNode{Pos: ex.Pos}, Array: arr, Index: index, Ty: types.Error}
	}
	elemTy := b.Types.Info(arr.Type()).ElemType
	return &ArrayAccess{AIRNode: AIRNode{Pos: ex.Pos}, Array: arr, Index: index, Ty: elemTy}
}

// checkCompatible is spec.md §4.7's check_types_compatible policy:
// equal TyIds are compatible; either side Error is compatible
// (suppresses cascades); otherwise a type-mismatch diagnostic names both
// sides in the given context.
func (b *Builder) checkCompatible(expected, actual types.TyId, pos srcpos.Pos, context string) {
	if expected == actual || b.Types.IsError(expected) || b.Types.IsError(actual) {
		return
	}
	b.Diag.Errorf(pos, diag.PhaseAIRBuilding, "Type mismatch in %s: expected '%s', got '%s'", context, b.Types.TyName(expected), b.Types.TyName(actual))
}

// didYouMeanVar/didYouMeanFunc apply the same suggestion heuristic
// internal/resolve uses for unknown type names (spec.md §3.1's
// supplemented detail: the original applies it to unresolved function
// names too).
func (b *Builder) didYouMeanVar(name string, scope *funcScope) string {
	best, bestDist := "", -1
	for cur := scope; cur != nil; cur = cur.parent {
		for known := range cur.vars {
			if dist := nameSimilarity(name, known); best == "" || dist < bestDist {
				bestDist, best = dist, known
			}
		}
	}
	return suggestionSuffix(best, bestDist)
}

func (b *Builder) didYouMeanFunc(name string) string {
	best, bestDist := "", -1
	for _, known := range b.Symbols.FunctionOrder() {
		if dist := nameSimilarity(name, known); best == "" || dist < bestDist {
			bestDist, best = dist, known
		}
	}
	return suggestionSuffix(best, bestDist)
}

// nameSimilarity mirrors the original's suggest_type_name distance
// (original_source/src/sema/type_resolver.cc): length difference minus a
// bonus for a matching first character. Lower is closer — note this
// means two equal-length names with no matching first character still
// score a distance of 0, not a penalty.
func nameSimilarity(a, b string) int {
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	bonus := 0
	if len(a) > 0 && len(b) > 0 && strings.EqualFold(a[:1], b[:1]) {
		bonus = 2
	}
	return diff - bonus
}

// suggestionSuffix surfaces the closest candidate only within the
// original's distance < 3 cutoff.
func suggestionSuffix(best string, dist int) string {
	if best == "" || dist >= 3 {
		return ""
	}
	return " (did you mean \"" + best + "\"?)"
}
