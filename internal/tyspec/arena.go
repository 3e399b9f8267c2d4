// Package tyspec interns syntactic type annotations as they are parsed
// (component A of the semantic middle-end, spec.md §4.1). A type spec
// is the pre-resolution, textual form of a type annotation; the
// internal/types package later resolves specs to canonical TyIds.
package tyspec

import (
	"fmt"

	"github.com/nilva-lang/nilva/internal/srcpos"
)

// TySpecId is a handle into the arena. The zero value is never a valid
// handle — valid ids start at 1, matching the arena's append-only
// allocation order.
type TySpecId int

// BuiltinKind enumerates the builtin type annotations a spec can name.
type BuiltinKind int

const (
	Int BuiltinKind = iota
	Float
	Bool
	String
	Void
)

func (b BuiltinKind) String() string {
	switch b {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Void:
		return "void"
	default:
		return "<unknown builtin>"
	}
}

// kind tags which variant a TySpec holds.
type kind int

const (
	kindBuiltin kind = iota
	kindNamed
	kindArray
)

// TySpec is one interned type annotation. Exactly one of the variant
// fields is meaningful, selected by kind.
type TySpec struct {
	kind    kind
	Pos     srcpos.Pos
	Builtin BuiltinKind // valid when kind == kindBuiltin
	Name    string      // valid when kind == kindNamed
	Elem    TySpecId    // valid when kind == kindArray
	Size    *int        // valid when kind == kindArray; nil means unsized
}

// Arena is an append-only store of type specs. Each parsed file has its
// own Arena (parser.New creates one and ast.File carries it), so a
// TySpecId is only meaningful together with its file's Arena; a
// compilation of several files has several arenas. It is not
// thread-safe and a spec is never mutated after
// insertion — two specs with identical content may still get distinct
// ids, since specs are not deduplicated structurally (only their source
// locations differ).
type Arena struct {
	specs []TySpec
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	// Reserve index 0 so TySpecId's zero value never aliases a real spec.
	return &Arena{specs: make([]TySpec, 1)}
}

func (a *Arena) push(s TySpec) TySpecId {
	a.specs = append(a.specs, s)
	return TySpecId(len(a.specs) - 1)
}

// InternBuiltin interns a builtin type annotation (int/float/bool/string/void).
func (a *Arena) InternBuiltin(pos srcpos.Pos, k BuiltinKind) TySpecId {
	return a.push(TySpec{kind: kindBuiltin, Pos: pos, Builtin: k})
}

// InternNamed interns a reference to a user-declared record type by name.
func (a *Arena) InternNamed(pos srcpos.Pos, name string) TySpecId {
	return a.push(TySpec{kind: kindNamed, Pos: pos, Name: name})
}

// InternArray interns an array type annotation over elem, with an
// optional fixed size.
func (a *Arena) InternArray(pos srcpos.Pos, elem TySpecId, size *int) TySpecId {
	return a.push(TySpec{kind: kindArray, Pos: pos, Elem: elem, Size: size})
}

// Get returns the spec for id. Callers must have obtained id from this
// same arena; out-of-range lookups are a programmer bug, not a user
// diagnostic, and panic.
func (a *Arena) Get(id TySpecId) TySpec {
	if int(id) <= 0 || int(id) >= len(a.specs) {
		panic(fmt.Sprintf("tyspec: invalid TySpecId %d", id))
	}
	return a.specs[id]
}

// Pos returns the source location the spec was parsed at.
func (a *Arena) Pos(id TySpecId) srcpos.Pos {
	return a.Get(id).Pos
}

// IsBuiltin, IsNamed, IsArray classify a spec's variant for callers
// outside this package (internal/resolve) that must resolve specs to
// TyIds by a different strategy per variant — arrays cannot be resolved
// by name lookup the way builtins and named structs are.
func (s TySpec) IsBuiltin() bool { return s.kind == kindBuiltin }
func (s TySpec) IsNamed() bool   { return s.kind == kindNamed }
func (s TySpec) IsArray() bool   { return s.kind == kindArray }

// Render renders a human-readable description of id, used in
// diagnostics — e.g. "int", "Point", "int[]", "Point[4]".
func (a *Arena) Render(id TySpecId) string {
	s := a.Get(id)
	switch s.kind {
	case kindBuiltin:
		return s.Builtin.String()
	case kindNamed:
		return s.Name
	case kindArray:
		elem := a.Render(s.Elem)
		if s.Size != nil {
			return fmt.Sprintf("%s[%d]", elem, *s.Size)
		}
		return elem + "[]"
	default:
		return "<unknown type spec>"
	}
}
