// Package symtab is the single source of truth for what each identifier
// in a compilation denotes (component C, spec.md §4.3): functions and
// structs in a flat global namespace, and variables addressed by a
// stable VarId assigned during binding.
package symtab

import (
	"github.com/nilva-lang/nilva/internal/srcpos"
	"github.com/nilva-lang/nilva/internal/types"
)

// VarId and FunctionId are stable, monotonically assigned handles.
type VarId int
type FunctionId int

// VarSymbol describes one bound variable.
type VarSymbol struct {
	Id         VarId
	Name       string
	Mutable    bool
	Ty         types.TyId
	Pos        srcpos.Pos
}

// FunctionSymbol describes one bound function (extern or with a body).
type FunctionSymbol struct {
	Id       FunctionId
	Name     string
	ReturnTy types.TyId
	ParamTys []types.TyId
	Extern   bool
	Pos      srcpos.Pos
}

// FieldSymbol describes one resolved struct field, in declaration order.
type FieldSymbol struct {
	Name string
	Ty   types.TyId
	Pos  srcpos.Pos
}

// StructSymbol describes one bound struct declaration. Fields is empty
// until internal/resolve fills it in via SetStructFields — pass 1
// binding only reserves the struct's identity, not its shape.
type StructSymbol struct {
	Id     types.StructId
	Ty     types.TyId
	Name   string
	Fields []FieldSymbol
	Pos    srcpos.Pos
}

// Table holds the three globally keyed mappings spec.md §4.3 specifies:
// function name -> FunctionSymbol, struct name -> StructSymbol, and
// VarId -> VarSymbol.
type Table struct {
	functions map[string]*FunctionSymbol
	structs   map[string]*StructSymbol
	vars      map[VarId]*VarSymbol

	// funcOrder/structOrder preserve first-registration order so later
	// passes can walk declarations in source order (spec.md §8's
	// round-trip property: AIR functions must match input function
	// order), something a plain map iteration cannot guarantee.
	funcOrder   []string
	structOrder []string

	nextVarId  VarId
	nextFuncId FunctionId
}

// New constructs an empty symbol table.
func New() *Table {
	return &Table{
		functions: make(map[string]*FunctionSymbol),
		structs:   make(map[string]*StructSymbol),
		vars:      make(map[VarId]*VarSymbol),
	}
}

// AllocateVarId and AllocateFunctionId hand out fresh, monotonic ids.
func (t *Table) AllocateVarId() VarId {
	id := t.nextVarId
	t.nextVarId++
	return id
}

func (t *Table) AllocateFunctionId() FunctionId {
	id := t.nextFuncId
	t.nextFuncId++
	return id
}

// RegisterVariable records a variable by its already-allocated VarId.
func (t *Table) RegisterVariable(id VarId, name string, mutable bool, ty types.TyId, pos srcpos.Pos) {
	t.vars[id] = &VarSymbol{Id: id, Name: name, Mutable: mutable, Ty: ty, Pos: pos}
}

// RegisterFunction records a function by its already-allocated FunctionId.
func (t *Table) RegisterFunction(id FunctionId, name string, ret types.TyId, params []types.TyId, extern bool, pos srcpos.Pos) {
	t.functions[name] = &FunctionSymbol{Id: id, Name: name, ReturnTy: ret, ParamTys: params, Extern: extern, Pos: pos}
	t.funcOrder = append(t.funcOrder, name)
}

// SetFunctionSignature updates an already-registered function's resolved
// return/parameter types, used by internal/resolve once textual type
// names have been turned into TyIds.
func (t *Table) SetFunctionSignature(name string, ret types.TyId, params []types.TyId) {
	if sym, ok := t.functions[name]; ok {
		sym.ReturnTy = ret
		sym.ParamTys = params
	}
}

// RegisterStruct records a struct by its already-allocated StructId and
// the TyId the type table assigned it.
func (t *Table) RegisterStruct(name string, sid types.StructId, ty types.TyId, pos srcpos.Pos) {
	t.structs[name] = &StructSymbol{Id: sid, Ty: ty, Name: name, Pos: pos}
	t.structOrder = append(t.structOrder, name)
}

// SetStructFields records a struct's resolved field list, used by
// internal/resolve once field type specs have been turned into TyIds.
func (t *Table) SetStructFields(name string, fields []FieldSymbol) {
	if sym, ok := t.structs[name]; ok {
		sym.Fields = fields
	}
}

// HasFunction/HasStruct report whether a name is already declared —
// used by the binder's duplicate-declaration checks.
func (t *Table) HasFunction(name string) bool {
	_, ok := t.functions[name]
	return ok
}
func (t *Table) HasStruct(name string) bool {
	_, ok := t.structs[name]
	return ok
}

// LookupFunction, LookupStruct, LookupVariable resolve by key.
func (t *Table) LookupFunction(name string) (*FunctionSymbol, bool) {
	sym, ok := t.functions[name]
	return sym, ok
}
func (t *Table) LookupStruct(name string) (*StructSymbol, bool) {
	sym, ok := t.structs[name]
	return sym, ok
}
func (t *Table) LookupVariable(id VarId) (*VarSymbol, bool) {
	sym, ok := t.vars[id]
	return sym, ok
}

// Functions and Structs return the underlying name-keyed maps, whose
// iteration order is unspecified. Passes that walk "all structs before
// all functions" in declaration order (spec.md §5's ordering guarantee)
// use FunctionOrder/StructOrder below.
func (t *Table) Functions() map[string]*FunctionSymbol { return t.functions }
func (t *Table) Structs() map[string]*StructSymbol     { return t.structs }

// FunctionOrder and StructOrder return declaration names in
// first-registration order.
func (t *Table) FunctionOrder() []string { return t.funcOrder }
func (t *Table) StructOrder() []string   { return t.structOrder }
