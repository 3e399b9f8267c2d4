package bind

import (
	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/symtab"
	"github.com/nilva-lang/nilva/internal/types"
)

// BindBodies is pass 2 (spec.md §4.4): for each function, build a root
// scope, bind its parameters, then walk its body statement by statement,
// pushing/popping a child scope for every If/While/For/Block construct.
// Call this once, after every unit has been merged by internal/loader,
// so a body can reference any function or struct declared anywhere in
// the compilation.
func (b *Binder) BindBodies(funcs []*ast.FuncDecl) {
	for _, fd := range funcs {
		b.bindFuncBody(fd)
	}
}

func (b *Binder) bindFuncBody(fd *ast.FuncDecl) {
	root := symtab.NewRootScope()

	paramIds := make([]symtab.VarId, len(fd.Params))
	for i, p := range fd.Params {
		if root.HasLocal(p.Name) {
			b.Diag.Errorf(p.Pos, diag.PhaseSymbolBinding, "Duplicate parameter name: %q", p.Name)
			continue
		}
		id := b.Symbols.AllocateVarId()
		// The parameter's resolved type is filled in definitively by
		// internal/resolve; here it is provisional (Error unless already
		// known), matching bindFuncDecl's best-effort signature resolution.
		b.Symbols.RegisterVariable(id, p.Name, false, types.Error, p.Pos)
		root.AddVariable(p.Name, id)
		paramIds[i] = id
	}
	b.result.ParamVarIds[fd] = paramIds

	if fd.Extern || fd.Body == nil {
		return
	}
	b.bindStmts(fd.Body, root)
}

func (b *Binder) bindStmts(stmts []ast.Stmt, scope *symtab.Scope) {
	for _, s := range stmts {
		b.bindStmt(s, scope)
	}
}

func (b *Binder) bindStmt(s ast.Stmt, scope *symtab.Scope) {
	switch st := s.(type) {
	case *ast.VarDecl:
		if scope.HasLocal(st.Name) {
			b.Diag.Errorf(st.Pos, diag.PhaseSymbolBinding, "Duplicate declaration in this scope: %q", st.Name)
			return
		}
		id := b.Symbols.AllocateVarId()
		b.Symbols.RegisterVariable(id, st.Name, st.Mutable, types.Error, st.Pos)
		scope.AddVariable(st.Name, id)
		b.result.DeclVarIds[st] = id

	case *ast.If:
		thenScope := symtab.NewChildScope(scope)
		b.bindStmts(st.Then, thenScope)
		if st.Else != nil {
			elseScope := symtab.NewChildScope(scope)
			b.bindStmts(st.Else, elseScope)
		}

	case *ast.While:
		bodyScope := symtab.NewChildScope(scope)
		b.bindStmts(st.Body, bodyScope)

	case *ast.For:
		forScope := symtab.NewChildScope(scope)
		if st.Init != nil {
			b.bindStmt(st.Init, forScope)
		}
		b.bindStmts(st.Body, forScope)

	case *ast.Assignment, *ast.FieldAssignment, *ast.Return, *ast.ExprStmt:
		// No declarations to bind; variable references in these are
		// resolved later by internal/air against its own per-function
		// name maps (spec.md §4.7), which carry the TyId information
		// that isn't available until AIR building infers it.
	}
}
