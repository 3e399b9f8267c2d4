// Package pipeline wires the middle-end stages together in the order
// spec.md §6 requires: E (imports) -> D (bind) -> F (resolve) -> G
// (build IR), halting between stages when the diagnostic engine reports
// errors (spec.md §5's "stage boundaries short-circuit" ordering
// guarantee).
package pipeline

import (
	"github.com/nilva-lang/nilva/internal/air"
	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/bind"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/loader"
	"github.com/nilva-lang/nilva/internal/resolve"
	"github.com/nilva-lang/nilva/internal/symtab"
	"github.com/nilva-lang/nilva/internal/types"
)

// Options configures one compilation run.
type Options struct {
	StdlibPath    string
	SearchPath    []string
	WarningBudget int
}

// Result is everything a caller (cmd/nilvac, a codegen backend, or a
// test) might need after running the pipeline.
type Result struct {
	Diag    *diag.Engine
	Symbols *symtab.Table
	Types   *types.Table
	Files   []*ast.File
	Module  *air.Module // nil if any stage reported an error
}

// Compile runs the full pipeline over rootPath and every file it
// transitively imports.
func Compile(rootPath string, opts Options) *Result {
	d := diag.NewEngine()
	if opts.WarningBudget > 0 {
		d.SetBudget(opts.WarningBudget)
	}

	binder := bind.New(d)
	res := &Result{Diag: d, Symbols: binder.Symbols, Types: binder.Types}

	// Stage E: import resolution. internal/loader calls BindDeclarations
	// (pass 1) itself as it merges each unit, per spec.md §4.5 step 6.
	ld := loader.NewResolver(binder, d, opts.StdlibPath, opts.SearchPath)
	if err := ld.LoadRoot(rootPath); err != nil {
		return res
	}
	res.Files = ld.Files
	if d.HasErrors() {
		return res
	}

	// Stage D pass 2: bind every merged function's body, once, after
	// every unit has been merged.
	var allFuncs []*ast.FuncDecl
	for _, f := range ld.Files {
		allFuncs = append(allFuncs, f.Funcs...)
	}
	binder.BindBodies(allFuncs)
	if d.HasErrors() {
		return res
	}

	// Stage F: definitive type resolution over every merged file.
	resolver := resolve.New(binder.Types, binder.Symbols, d)
	resolver.Run(ld.Files)
	if d.HasErrors() {
		return res
	}

	// Stage G: AIR building.
	builder := air.New(binder.Types, binder.Symbols, d, binder.Result())
	res.Module = builder.Build(ld.Files)
	return res
}
