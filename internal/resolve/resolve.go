// Package resolve is the type resolver (component F, spec.md §4.6): the
// definitive pass that turns every struct field spec and function
// signature spec into a canonical types.TyId, once every imported unit
// has been merged by internal/loader and bound by internal/bind.
//
// Grounded on the teacher's internal/elaborate type-resolution pass and
// the did-you-mean suggestion helper from CWBudde's checker package,
// generalized here to also walk struct fields and detect circular
// struct dependencies via a visiting set.
package resolve

import (
	"strings"

	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/srcpos"
	"github.com/nilva-lang/nilva/internal/symtab"
	"github.com/nilva-lang/nilva/internal/tyspec"
	"github.com/nilva-lang/nilva/internal/types"
)

// Resolver performs the definitive name -> TyId resolution pass over
// every file merged into one compilation.
type Resolver struct {
	Types   *types.Table
	Symbols *symtab.Table
	Diag    *diag.Engine

	// visiting supports the circular-struct-dependency DFS (spec.md
	// §4.6's edge case): a struct name currently on the DFS stack.
	// Arrays are opaque to this check — an array of T does not require T
	// to be fully laid out, only named.
	visiting map[string]bool
	resolved map[string]bool
}

// New creates a Resolver sharing the binder's symbol and type tables.
func New(types_ *types.Table, symbols *symtab.Table, d *diag.Engine) *Resolver {
	return &Resolver{
		Types:    types_,
		Symbols:  symbols,
		Diag:     d,
		visiting: make(map[string]bool),
		resolved: make(map[string]bool),
	}
}

// Run resolves every struct's fields and every function's signature
// across every merged file, in the order spec.md §5 requires: all
// structs first (detecting circular dependencies as it goes), then all
// functions.
func (r *Resolver) Run(files []*ast.File) {
	structDecls := make(map[string]*ast.StructDecl)
	funcDecls := make(map[string]*ast.FuncDecl)
	fileOf := make(map[string]*ast.File)

	for _, f := range files {
		for _, sd := range f.Structs {
			structDecls[sd.Name] = sd
			fileOf[sd.Name] = f
		}
		for _, fd := range f.Funcs {
			funcDecls[fd.Name] = fd
			fileOf[fd.Name] = f
		}
	}

	for _, name := range r.Symbols.StructOrder() {
		r.resolveStruct(name, structDecls, fileOf, srcpos.Pos{})
	}
	for _, name := range r.Symbols.FunctionOrder() {
		if fd, ok := funcDecls[name]; ok {
			r.resolveFunc(fd, fileOf[name])
		}
	}
}

// resolveStruct resolves one struct's fields, detecting circular
// dependencies via DFS. Arrays are opaque to the cycle check: a field of
// type T[] never triggers the visiting check for T, since an array
// member is stored behind a pointer-sized handle at codegen time rather
// than inlined.
//
// at is the position of the field whose spec named this struct and
// triggered this (possibly recursive) resolution — spec.md §4.6 requires
// a revisited-struct diagnostic to fire at that field's location, not at
// the struct's own declaration. The top-level call from Run has no such
// field, so it passes the zero Pos and falls back to the declaration.
func (r *Resolver) resolveStruct(name string, decls map[string]*ast.StructDecl, fileOf map[string]*ast.File, at srcpos.Pos) {
	if r.resolved[name] {
		return
	}
	sd, ok := decls[name]
	if !ok {
		return // unknown struct: already diagnosed as a duplicate or unresolved reference elsewhere
	}
	if r.visiting[name] {
		pos := at
		if pos.IsZero() {
			pos = sd.Pos
		}
		r.Diag.Errorf(pos, diag.PhaseTypeResolution, "Circular struct dependency involving %q", name)
		return
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	file := fileOf[name]
	fields := make([]symtab.FieldSymbol, len(sd.Fields))
	for i, f := range sd.Fields {
		// If the field's spec names another struct, resolve that struct
		// first so nested layouts are available depth-first — mirroring
		// the cycle DFS the spec requires, not merely name lookup order.
		if named, ok := r.namedSpecTarget(file, f.Spec); ok {
			if _, isStruct := decls[named]; isStruct {
				r.resolveStruct(named, decls, fileOf, f.Pos)
			}
		}
		ty := r.resolveSpec(file, f.Spec)
		fields[i] = symtab.FieldSymbol{Name: f.Name, Ty: ty, Pos: f.Pos}
	}
	r.Symbols.SetStructFields(name, fields)
	r.resolved[name] = true
}

func (r *Resolver) resolveFunc(fd *ast.FuncDecl, file *ast.File) {
	ret := r.resolveSpec(file, fd.RetSpec)
	params := make([]types.TyId, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = r.resolveSpec(file, p.Spec)
	}
	r.Symbols.SetFunctionSignature(fd.Name, ret, params)
}

// namedSpecTarget reports the struct name a spec immediately names, if
// any — used only to order the struct-resolution DFS, not to resolve
// the spec itself.
func (r *Resolver) namedSpecTarget(file *ast.File, spec tyspec.TySpecId) (string, bool) {
	s := file.Arena.Get(spec)
	if s.IsNamed() {
		return s.Name, true
	}
	return "", false
}

// resolveSpec is the definitive spec -> TyId resolution spec.md §4.6
// describes: builtins resolve directly, named specs resolve against the
// struct table (with a did-you-mean suggestion on failure), and array
// specs resolve their element first and then intern the array type —
// unlike internal/bind's best-effort name lookup, this correctly
// handles arrays since it never relies on a textual name for them.
func (r *Resolver) resolveSpec(file *ast.File, spec tyspec.TySpecId) types.TyId {
	s := file.Arena.Get(spec)
	switch {
	case s.IsBuiltin():
		name := s.Builtin.String()
		if id, ok := r.Types.LookupByName(name); ok {
			return id
		}
		return types.Error

	case s.IsArray():
		elem := r.resolveSpec(file, s.Elem)
		return r.Types.RegisterArray(elem)

	case s.IsNamed():
		if sym, ok := r.Symbols.LookupStruct(s.Name); ok {
			return sym.Ty
		}
		r.Diag.Errorf(file.Arena.Pos(spec), diag.PhaseTypeResolution, "Unknown type: %q%s", s.Name, r.didYouMean(s.Name))
		return types.Error

	default:
		return types.Error
	}
}

// didYouMean implements spec.md §4.6's suggestion heuristic over every
// struct name known so far: length difference with a first-character
// bonus, surfaced whenever a candidate's distance is under the
// original's cutoff of 3 (original_source/src/sema/type_resolver.cc's
// suggest_type_name) — not merely when the two names share a first
// character.
func (r *Resolver) didYouMean(name string) string {
	candidates := r.Symbols.StructOrder()
	best := ""
	bestDist := -1
	for _, c := range candidates {
		if c == name {
			continue
		}
		dist := similarity(name, c)
		if best == "" || dist < bestDist {
			bestDist, best = dist, c
		}
	}
	if best == "" || bestDist >= 3 {
		return ""
	}
	return " (did you mean \"" + best + "\"?)"
}

// similarity is a distance: length difference minus a bonus for a
// matching first character. Lower is closer.
func similarity(a, b string) int {
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
