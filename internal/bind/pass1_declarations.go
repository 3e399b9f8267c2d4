package bind

import (
	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/tyspec"
	"github.com/nilva-lang/nilva/internal/types"
)

// BindDeclarations is pass 1 (spec.md §4.4): walk one file's top-level
// declarations, assigning ids and detecting duplicates across the whole
// compilation's shared symbol table. Structs are bound before functions
// within this call (spec.md §5's "all iteration over structs precedes
// iteration over functions" ordering guarantee) since a function
// signature may reference a struct type.
func (b *Binder) BindDeclarations(file *ast.File) {
	for _, sd := range file.Structs {
		b.bindStructDecl(file, sd)
	}
	for _, fd := range file.Funcs {
		b.bindFuncDecl(file, fd)
	}
}

func (b *Binder) bindStructDecl(file *ast.File, sd *ast.StructDecl) {
	if b.Symbols.HasStruct(sd.Name) {
		b.Diag.Errorf(sd.Pos, diag.PhaseSymbolBinding, "Duplicate struct declaration: %q", sd.Name)
		return
	}
	sid := b.Types.AllocateStructId()
	ty := b.Types.RegisterStruct(sd.Name, sid)
	b.Symbols.RegisterStruct(sd.Name, sid, ty, sd.Pos)
}

func (b *Binder) bindFuncDecl(file *ast.File, fd *ast.FuncDecl) {
	if b.Symbols.HasFunction(fd.Name) {
		b.Diag.Errorf(fd.Pos, diag.PhaseSymbolBinding, "Duplicate function declaration: %q", fd.Name)
		return
	}

	fid := b.Symbols.AllocateFunctionId()

	ret := b.resolveSpecBestEffort(file, fd.RetSpec)
	params := make([]types.TyId, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = b.resolveSpecBestEffort(file, p.Spec)
	}

	// Unknown type names are errors but the binder still registers the
	// function with Error placeholders so later passes need not
	// short-circuit (spec.md §4.4).
	b.Symbols.RegisterFunction(fid, fd.Name, ret, params, fd.Extern, fd.Pos)
}

// resolveSpecBestEffort resolves a type spec to a TyId using only what is
// already registered in the shared type table at this point in binding.
// Every struct of this file is already registered (structs are bound
// before functions), but struct types from a unit merged after this one,
// and array specs (whose rendered names are never registered by name),
// resolve to Error here; internal/resolve performs
// the definitive resolution once every unit has been merged.
func (b *Binder) resolveSpecBestEffort(file *ast.File, spec tyspec.TySpecId) types.TyId {
	name := file.Arena.Render(spec)
	if id, ok := b.Types.LookupByName(name); ok {
		return id
	}
	return types.Error
}
