// Package diag is the shared diagnostic engine every compiler stage
// reports into. Diagnostics accumulate; nothing in this package panics
// except ICE (see ice.go), which is reserved for internal invariant
// violations rather than user-facing errors.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/nilva-lang/nilva/internal/srcpos"
)

// Severity distinguishes a fatal diagnostic from an advisory one.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Phase tags which pipeline stage produced a diagnostic. Used only for
// filtering and statistics (--stats); never printed in the user-visible
// line.
type Phase int

const (
	PhaseLexer Phase = iota
	PhaseParser
	PhaseImport
	PhaseSymbolBinding
	PhaseTypeResolution
	PhaseTypeChecking
	PhaseAIRBuilding
	PhaseCodegen
)

func (p Phase) String() string {
	switch p {
	case PhaseLexer:
		return "Lexer"
	case PhaseParser:
		return "Parser"
	case PhaseImport:
		return "Import"
	case PhaseSymbolBinding:
		return "SymbolBinding"
	case PhaseTypeResolution:
		return "TypeResolution"
	case PhaseTypeChecking:
		return "TypeChecking"
	case PhaseAIRBuilding:
		return "AIRBuilding"
	case PhaseCodegen:
		return "Codegen"
	default:
		return "Unknown"
	}
}

// Diagnostic is a single error or warning attached to a source position.
type Diagnostic struct {
	Pos      srcpos.Pos
	Severity Severity
	Phase    Phase
	Message  string
}

// String renders the diagnostic in the format consumers expect:
// "<file>:<line>:<col>: <severity>: <message>". The phase is never
// included here — it is internal bookkeeping only.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Pos, d.Severity, d.Message)
}

// Engine accumulates diagnostics across every stage of one compilation.
// It is not safe for concurrent use; one Engine belongs to one
// compilation, matching the single-threaded, sequential pipeline model.
type Engine struct {
	diagnostics []Diagnostic
	budget      int // max errors before accumulation halts; NewEngine sets 20, SetBudget ignores values <= 0
	halted      bool
}

// NewEngine creates an Engine with the default warning/error budget.
func NewEngine() *Engine {
	return &Engine{budget: 20}
}

// SetBudget overrides the default error budget (spec default: 20).
func (e *Engine) SetBudget(n int) {
	if n > 0 {
		e.budget = n
	}
}

// Errorf records an error-severity diagnostic.
func (e *Engine) Errorf(pos srcpos.Pos, phase Phase, format string, args ...interface{}) {
	e.add(Diagnostic{Pos: pos, Severity: Error, Phase: phase, Message: fmt.Sprintf(format, args...)})
}

// Warnf records a warning-severity diagnostic.
func (e *Engine) Warnf(pos srcpos.Pos, phase Phase, format string, args ...interface{}) {
	e.add(Diagnostic{Pos: pos, Severity: Warning, Phase: phase, Message: fmt.Sprintf(format, args...)})
}

func (e *Engine) add(d Diagnostic) {
	if e.halted {
		return
	}
	e.diagnostics = append(e.diagnostics, d)
	if e.ErrorCount() >= e.budget {
		e.halted = true
	}
}

// Halted reports whether the error budget was exhausted and further
// diagnostics are being dropped.
func (e *Engine) Halted() bool { return e.halted }

// Diagnostics returns every accumulated diagnostic in report order.
func (e *Engine) Diagnostics() []Diagnostic { return e.diagnostics }

// HasErrors reports whether any error-severity diagnostic was recorded.
// The pipeline driver checks this between stages (spec.md §6).
func (e *Engine) HasErrors() bool {
	for _, d := range e.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// ErrorCount and WarningCount support the summary line.
func (e *Engine) ErrorCount() int   { return e.countSeverity(Error) }
func (e *Engine) WarningCount() int { return e.countSeverity(Warning) }

func (e *Engine) countSeverity(s Severity) int {
	n := 0
	for _, d := range e.diagnostics {
		if d.Severity == s {
			n++
		}
	}
	return n
}

// CountsByPhase returns a per-phase diagnostic count, for `nilvac build --stats`.
func (e *Engine) CountsByPhase() map[Phase]int {
	counts := make(map[Phase]int)
	for _, d := range e.diagnostics {
		counts[d.Phase]++
	}
	return counts
}

// Summary renders the final "N error(s), M warning(s) generated." line.
func (e *Engine) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s) generated.", e.ErrorCount(), e.WarningCount())
}

// Render writes every diagnostic, one per line, followed by the summary
// line. When color is enabled (stdout is a TTY, matching the teacher's
// cmd/ailang/main.go convention) errors render red and warnings yellow.
func (e *Engine) Render() string {
	var b strings.Builder
	errColor := color.New(color.FgRed)
	warnColor := color.New(color.FgYellow)
	boldColor := color.New(color.Bold)

	for _, d := range e.diagnostics {
		line := d.String()
		if d.Severity == Error {
			b.WriteString(errColor.Sprint(line))
		} else {
			b.WriteString(warnColor.Sprint(line))
		}
		b.WriteString("\n")
	}

	summary := e.Summary()
	if e.ErrorCount() > 0 || e.WarningCount() > 0 {
		b.WriteString(boldColor.Sprint(summary))
	} else {
		b.WriteString(summary)
	}
	return b.String()
}

// SortStable orders diagnostics by file, then line, then column — useful
// for deterministic test assertions since accumulation order can
// otherwise depend on traversal order within a pass.
func (e *Engine) SortStable() {
	sort.SliceStable(e.diagnostics, func(i, j int) bool {
		a, b := e.diagnostics[i].Pos, e.diagnostics[j].Pos
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}
