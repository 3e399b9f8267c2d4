// Package bind is the symbol binder (component D, spec.md §4.4): a
// two-pass walk that populates the symbol table and assigns stable
// identities to every declaration in the (possibly multi-file, merged)
// AST.
//
// Pass 1 (BindDeclarations) runs once per source unit as internal/loader
// merges it into the shared symbol/type universe (spec.md §4.5 step 6).
// Pass 2 (BindBodies) runs once, after every unit has been merged, over
// the complete set of function bodies — this is what lets a function in
// one file call a function declared later in another imported file.
//
// Grounded on the teacher's internal/elaborate/elaborate.go two-phase
// module elaboration shape and CWBudde's internal/semantic/passes
// per-phase file naming convention.
package bind

import (
	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/symtab"
	"github.com/nilva-lang/nilva/internal/types"
)

// Binder owns the shared symbol and type tables for one compilation.
type Binder struct {
	Symbols *symtab.Table
	Types   *types.Table
	Diag    *diag.Engine

	// result accumulates the per-node bindings pass 2 produces, since the
	// AST itself is shared, read-only infrastructure the loader also
	// holds a reference to.
	result *Result
}

// New creates a Binder with fresh symbol and type tables.
func New(d *diag.Engine) *Binder {
	return &Binder{
		Symbols: symtab.New(),
		Types:   types.NewTable(),
		Diag:    d,
		result:  newResult(),
	}
}

// Result carries the bindings pass 2 produces, keyed by AST node
// identity since variable declarations (unlike functions/structs) can
// share a name across nested scopes.
type Result struct {
	ParamVarIds map[*ast.FuncDecl][]symtab.VarId
	DeclVarIds  map[*ast.VarDecl]symtab.VarId
}

func newResult() *Result {
	return &Result{
		ParamVarIds: make(map[*ast.FuncDecl][]symtab.VarId),
		DeclVarIds:  make(map[*ast.VarDecl]symtab.VarId),
	}
}

// Result returns the accumulated pass-2 bindings. Valid only after
// BindBodies has run.
func (b *Binder) Result() *Result { return b.result }
