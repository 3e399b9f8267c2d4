// Package types is the canonical registry of resolved types (component B
// of the semantic middle-end, spec.md §4.2). Unlike internal/tyspec,
// which preserves pre-resolution syntactic detail, this package holds
// one canonical TyId per distinct type identity for the whole
// compilation.
package types

import "fmt"

// TyId is a stable handle to a resolved type. Reserved low ids are fixed
// across every run (spec.md §6): Error=0, Integer=1, Float=2, String=3,
// Bool=4, Void=5. User-defined types start at 1000.
type TyId int

const (
	Error   TyId = 0
	Integer TyId = 1
	Float   TyId = 2
	String  TyId = 3
	Bool    TyId = 4
	Void    TyId = 5
)

const userDefinedStart = 1000

// Kind classifies a resolved type.
type Kind int

const (
	KindError Kind = iota
	KindInteger
	KindFloat
	KindString
	KindBool
	KindVoid
	KindStruct
	KindArray
)

// StructId uniquely identifies one struct declaration.
type StructId int

// TyInfo is the canonical record for one TyId.
type TyInfo struct {
	Id       TyId
	Kind     Kind
	Name     string // canonical name, used only for diagnostics
	StructId StructId
	ElemType TyId // valid when Kind == KindArray
}

// Table is the single resolved-type registry for one compilation. All
// mutation is additive — entries are never removed or altered once
// registered, per spec.md §5's append-only-cache invariant.
type Table struct {
	infos       []TyInfo          // indexed by TyId
	byName      map[string]TyId   // struct name -> TyId
	arrayByElem map[TyId]TyId     // element TyId -> array TyId cache
	nextStructId StructId
	nextUserId  TyId
}

// NewTable constructs a Table with the six builtins seeded.
func NewTable() *Table {
	t := &Table{
		byName:      make(map[string]TyId),
		arrayByElem: make(map[TyId]TyId),
		nextUserId:  userDefinedStart,
	}
	t.registerBuiltin("error", KindError, Error)
	t.registerBuiltin("int", KindInteger, Integer)
	t.registerBuiltin("float", KindFloat, Float)
	t.registerBuiltin("string", KindString, String)
	t.registerBuiltin("bool", KindBool, Bool)
	t.registerBuiltin("void", KindVoid, Void)
	return t
}

// registerBuiltin seeds one of the six builtins at its reserved id. It is
// called only once, at construction.
func (t *Table) registerBuiltin(name string, kind Kind, preassigned TyId) {
	for int(preassigned) >= len(t.infos) {
		t.infos = append(t.infos, TyInfo{})
	}
	t.infos[preassigned] = TyInfo{Id: preassigned, Kind: kind, Name: name}
	t.byName[name] = preassigned
}

func (t *Table) allocate(info TyInfo) TyId {
	id := t.nextUserId
	t.nextUserId++
	info.Id = id
	for int(id) >= len(t.infos) {
		t.infos = append(t.infos, TyInfo{})
	}
	t.infos[id] = info
	return id
}

// AllocateStructId hands out a fresh, monotonic StructId.
func (t *Table) AllocateStructId() StructId {
	id := t.nextStructId
	t.nextStructId++
	return id
}

// RegisterStruct interns a struct type by name. Struct types are
// interned by name: re-registering the same name returns the existing
// TyId rather than allocating a new one.
func (t *Table) RegisterStruct(name string, sid StructId) TyId {
	if existing, ok := t.byName[name]; ok {
		return existing
	}
	id := t.allocate(TyInfo{Kind: KindStruct, Name: name, StructId: sid})
	t.byName[name] = id
	return id
}

// RegisterArray interns an array type by element type. Array types are
// interned by element type — registering an array of T twice returns the
// same TyId.
func (t *Table) RegisterArray(elem TyId) TyId {
	if existing, ok := t.arrayByElem[elem]; ok {
		return existing
	}
	id := t.allocate(TyInfo{Kind: KindArray, Name: t.arrayName(elem), ElemType: elem})
	t.arrayByElem[elem] = id
	return id
}

func (t *Table) arrayName(elem TyId) string {
	return fmt.Sprintf("%s[]", t.TyName(elem))
}

// LookupByName resolves a textual type name (builtin or struct) to a
// TyId, if one has been registered.
func (t *Table) LookupByName(name string) (TyId, bool) {
	id, ok := t.byName[name]
	return id, ok
}

// Info returns the TyInfo for id. For an id this table never produced it
// returns an Error-kind TyInfo named "error" rather than panicking.
func (t *Table) Info(id TyId) TyInfo {
	if int(id) < 0 || int(id) >= len(t.infos) {
		return TyInfo{Id: Error, Kind: KindError, Name: "error"}
	}
	return t.infos[id]
}

// TyName renders id's canonical name, for diagnostics.
func (t *Table) TyName(id TyId) string {
	return t.Info(id).Name
}

func (t *Table) IsNumeric(id TyId) bool {
	k := t.Info(id).Kind
	return k == KindInteger || k == KindFloat
}
func (t *Table) IsStruct(id TyId) bool { return t.Info(id).Kind == KindStruct }
func (t *Table) IsArray(id TyId) bool  { return t.Info(id).Kind == KindArray }
func (t *Table) IsVoid(id TyId) bool   { return t.Info(id).Kind == KindVoid }
func (t *Table) IsError(id TyId) bool  { return t.Info(id).Kind == KindError }
func (t *Table) IsBool(id TyId) bool   { return t.Info(id).Kind == KindBool }

// AreCompatible is strict identity for now (a == b). The Error type is
// treated as universally compatible by higher layers (internal/air's
// check_types_compatible policy), not here — this function reports only
// structural equality.
func (t *Table) AreCompatible(a, b TyId) bool {
	return a == b
}
