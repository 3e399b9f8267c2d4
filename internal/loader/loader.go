// Package loader is the import resolver (component E, spec.md §4.5): it
// discovers, deduplicates, and merges imported source units into the
// single symbol/type universe one Binder owns, detecting import cycles.
//
// Directly grounded on the teacher's internal/loader/loader.go
// (CanonicalModuleID, resolvePath search order, cache-by-canonical-ID),
// generalized to the four-step search order spec.md §4.5 requires.
package loader

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/bind"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/lexer"
	"github.com/nilva-lang/nilva/internal/parser"
	"github.com/nilva-lang/nilva/internal/srcpos"
)

// Resolver merges imported units into one Binder's symbol/type universe.
// currentlyImporting and alreadyImported are shared across every nested
// resolver invocation in one compilation (spec.md §4.5's invariant);
// this is enforced simply by never constructing more than one Resolver
// per compilation and always recursing through its own methods.
type Resolver struct {
	binder *bind.Binder
	diag   *diag.Engine

	// searchPath mirrors step (d) of spec.md §4.5's candidate search
	// order: a colon-separated list of directories, e.g. from
	// internal/config / the NILVA_PATH environment variable.
	searchPath []string
	// stdlibDir is step (c): a directory located via environment
	// variable or executable-relative path (internal/config resolves
	// this; the loader just receives the final directory).
	stdlibDir string

	currentlyImporting map[string]bool
	alreadyImported     map[string]bool

	// Files is every unit merged so far, in merge order, for callers
	// (internal/pipeline) that need the complete merged function list
	// for pass 2 binding and for internal/resolve / internal/air.
	Files []*ast.File
	// ResolvedImports is the flat, deduplicated list of canonical import
	// paths actually merged, exposed for `nilvac imports`.
	ResolvedImports []string
}

// NewResolver creates a Resolver sharing binder's symbol/type tables and
// diagnostic engine.
func NewResolver(binder *bind.Binder, d *diag.Engine, stdlibDir string, searchPath []string) *Resolver {
	return &Resolver{
		binder:              binder,
		diag:                d,
		stdlibDir:            stdlibDir,
		searchPath:           searchPath,
		currentlyImporting:   make(map[string]bool),
		alreadyImported:      make(map[string]bool),
	}
}

// LoadRoot parses and merges rootPath — the file named on the command
// line — and then transitively resolves every import it (and its
// imports) declares.
func (r *Resolver) LoadRoot(rootPath string) error {
	return r.resolve(rootPath, filepath.Dir(rootPath))
}

// resolve implements the six-step algorithm of spec.md §4.5 for one
// import path P, where importerDir is the directory of the importing
// unit U (step (a) of the candidate search).
func (r *Resolver) resolve(path string, importerDir string) error {
	full, found := r.findCandidate(path, importerDir)
	if !found {
		r.diag.Errorf(srcpos.Pos{File: path}, diag.PhaseImport, "Cannot find import: %q%s", path, r.didYouMean(path))
		return nil
	}

	canonical, err := r.canonicalize(full)
	if err != nil {
		canonical = filepath.Clean(full)
	}

	// Shared imports are idempotent (spec.md §8 "Import idempotency").
	if r.alreadyImported[canonical] {
		return nil
	}
	if r.currentlyImporting[canonical] {
		r.diag.Errorf(srcpos.Pos{File: path}, diag.PhaseImport, "Circular import detected: %q", path)
		return nil
	}

	r.currentlyImporting[canonical] = true
	defer func() {
		delete(r.currentlyImporting, canonical)
		r.alreadyImported[canonical] = true
	}()

	content, err := os.ReadFile(full)
	if err != nil {
		r.diag.Errorf(srcpos.Pos{File: path}, diag.PhaseImport, "Cannot find import: %q", path)
		return nil
	}

	l := lexer.New(string(content), full)
	p := parser.New(l, full)
	file := p.ParseFile()
	for _, e := range p.Errors() {
		r.diag.Errorf(srcpos.Pos{File: full}, diag.PhaseParser, "%s", e)
	}

	// Recursively resolve this unit's own imports first, then register
	// its top-level declarations (spec.md §4.5 step 6: "Recursively
	// resolve imports from the imported AST first. Then register...").
	for _, imp := range file.Imports {
		if err := r.resolve(imp.Path, filepath.Dir(full)); err != nil {
			return err
		}
	}

	r.binder.BindDeclarations(file)
	r.Files = append(r.Files, file)
	r.ResolvedImports = append(r.ResolvedImports, canonical)
	return nil
}

// findCandidate implements the four-step search order: (a) directory of
// the importing unit, (b) current working directory, (c) the stdlib
// directory, (d) each entry of the colon-separated search path.
func (r *Resolver) findCandidate(path string, importerDir string) (string, bool) {
	rel := path
	if !strings.HasSuffix(rel, ".nva") {
		rel += ".nva"
	}

	// An absolute path (such as a root file named by its full path) names
	// exactly one file; joining it onto a search directory cannot find it.
	if filepath.IsAbs(rel) {
		if info, err := os.Stat(rel); err == nil && !info.IsDir() {
			return rel, true
		}
		return "", false
	}

	candidates := []string{filepath.Join(importerDir, rel)}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, rel))
	}
	if r.stdlibDir != "" {
		candidates = append(candidates, filepath.Join(r.stdlibDir, rel))
	}
	for _, dir := range r.searchPath {
		candidates = append(candidates, filepath.Join(dir, rel))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// canonicalize resolves symlinks and returns an absolute path — the key
// used for cycle detection and import deduplication (spec.md §4.5 step 3).
func (r *Resolver) canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// didYouMean offers a best-effort suggestion for an unresolved import
// path, generalizing the unknown-type-name heuristic of spec.md §4.6 to
// import paths too (original_source/src/resolver/import.cc applies the
// same helper to both).
func (r *Resolver) didYouMean(path string) string {
	base := filepath.Base(path)
	best := ""
	bestDist := -1
	for known := range r.alreadyImported {
		dist := similarity(base, filepath.Base(known))
		if best == "" || dist < bestDist {
			bestDist, best = dist, known
		}
	}
	if best == "" || bestDist >= 3 {
		return ""
	}
	return " (did you mean \"" + best + "\"?)"
}

// similarity is the same length-difference-with-first-char-bonus
// distance spec.md §4.6 specifies for unknown type names: lower is
// closer, surfaced up to the original's distance < 3 cutoff.
func similarity(a, b string) int {
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	bonus := 0
	if len(a) > 0 && len(b) > 0 && a[0] == b[0] {
		bonus = 2
	}
	return diff - bonus
}
