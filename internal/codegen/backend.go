// Package codegen declares the interface a code generator implements to
// consume an air.Module (spec.md §6: "Code generator consumes an AIR
// Module with the invariants of §3"). The backend is an external
// collaborator to the semantic middle-end; this repository ships one
// concrete implementation, internal/codegen/textir, rather than a real
// object-file emitter.
package codegen

import "github.com/nilva-lang/nilva/internal/air"

// Backend turns a fully-resolved, diagnostic-free air.Module into
// output bytes for some target representation.
type Backend interface {
	// Name identifies the backend, e.g. "textir".
	Name() string
	// Generate renders mod. Callers must only invoke this once the
	// diagnostic engine used to build mod reports no errors.
	Generate(mod *air.Module) ([]byte, error)
}
