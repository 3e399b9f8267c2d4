package air

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/bind"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/lexer"
	"github.com/nilva-lang/nilva/internal/parser"
	"github.com/nilva-lang/nilva/internal/resolve"
	"github.com/nilva-lang/nilva/internal/types"
)

func compile(t *testing.T, src string) (*Module, *diag.Engine) {
	t.Helper()
	p := parser.New(lexer.New(src, "t.nva"), "t.nva")
	file := p.ParseFile()
	require.Empty(t, p.Errors())

	d := diag.NewEngine()
	binder := bind.New(d)
	binder.BindDeclarations(file)
	binder.BindBodies(file.Funcs)

	r := resolve.New(binder.Types, binder.Symbols, d)
	r.Run([]*ast.File{file})

	b := New(binder.Types, binder.Symbols, d, binder.Result())
	return b.Build([]*ast.File{file}), d
}

// S1 — minimal function.
func TestMinimalFunction(t *testing.T) {
	mod, d := compile(t, `fun main() -> int { return 42; }`)
	require.False(t, d.HasErrors())
	require.NotNil(t, mod)
	require.Len(t, mod.Functions, 1)

	fn := mod.Functions[0]
	assert.Equal(t, "main", fn.Name)
	assert.Equal(t, types.Integer, fn.ReturnTy)
	require.Len(t, fn.Body, 1)

	ret, ok := fn.Body[0].(*Return)
	require.True(t, ok)
	lit, ok := ret.Value.(*IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, int64(42), lit.Value)
	assert.Equal(t, types.Integer, lit.Type())
}

// S3 — struct access.
func TestStructFieldAccess(t *testing.T) {
	mod, d := compile(t, `
struct Pt { x: int, y: int }
fun main() -> int {
  let p: Pt = Pt { 3, 4 };
  return p.x;
}`)
	require.False(t, d.HasErrors())
	require.NotNil(t, mod)

	fn := mod.Functions[0]
	decl := fn.Body[0].(*VarDecl)
	inst := decl.Init.(*StructInstantiation)
	assert.Equal(t, "Pt", inst.Name)
	assert.Equal(t, 2, len(inst.Values))

	ret := fn.Body[1].(*Return)
	fa := ret.Value.(*FieldAccess)
	assert.Equal(t, "x", fa.Field)
	assert.Equal(t, 0, fa.FieldIndex)
	assert.Equal(t, types.Integer, fa.Type())
	objRef := fa.Object.(*VarRef)
	assert.Equal(t, "p", objRef.Name)
}

// S4 — type mismatch.
func TestVarDeclTypeMismatch(t *testing.T) {
	_, d := compile(t, `fun main() -> void { let x: int = true; }`)
	require.True(t, d.HasErrors())
	assertHasMessage(t, d, `Type mismatch in variable initialization: expected 'int', got 'bool'`)
}

// S5 — array element mismatch.
func TestArrayElementMismatch(t *testing.T) {
	_, d := compile(t, `fun main() -> void { let a = [1, 2.0]; }`)
	require.True(t, d.HasErrors())
	assertHasMessage(t, d, "Array elements must have the same type")
}

func TestUndefinedVariableMakesBuildReturnNil(t *testing.T) {
	mod, d := compile(t, `fun main() -> int { return y; }`)
	require.True(t, d.HasErrors())
	require.Nil(t, mod, "Build returns nil once diagnostics report errors")
}

// "cat" and "dog" are equal length with no matching first character;
// the original's distance < 3 cutoff (distance 0) still suggests it.
func TestDidYouMeanVarSuggestsEqualLengthNameWithoutFirstCharMatch(t *testing.T) {
	_, d := compile(t, `fun main() -> int { let dog = 1; return cat; }`)
	require.True(t, d.HasErrors())
	assertHasMessage(t, d, `Undefined variable: "cat" (did you mean "dog"?)`)
}

func TestArgumentCountMismatchStillLowersPresentArgs(t *testing.T) {
	_, d := compile(t, `
fun add(a: int, b: int) -> int { return a; }
fun main() -> int { return add(1); }`)
	require.True(t, d.HasErrors())
	assertHasMessage(t, d, `Argument count mismatch in call to "add": expected 2, got 1`)
}

func TestErrorTypeSuppressesCascadingDiagnostics(t *testing.T) {
	// y is undefined (one error); adding an int to it must not
	// also produce a type-mismatch diagnostic (spec.md §8 property 6).
	_, d := compile(t, `fun main() -> int { return y + 1; }`)
	errCount := 0
	for _, diagnostic := range d.Diagnostics() {
		if diagnostic.Severity == diag.Error {
			errCount++
		}
	}
	assert.Equal(t, 1, errCount)
}

func TestRoundTripFunctionOrderMatchesInput(t *testing.T) {
	mod, d := compile(t, `
fun third() -> int { return 3; }
fun first() -> int { return 1; }
fun second() -> int { return 2; }`)
	require.False(t, d.HasErrors())
	require.NotNil(t, mod)
	names := make([]string, len(mod.Functions))
	for i, fn := range mod.Functions {
		names[i] = fn.Name
	}
	assert.Equal(t, []string{"third", "first", "second"}, names)
}

func assertHasMessage(t *testing.T, d *diag.Engine, want string) {
	t.Helper()
	for _, diagnostic := range d.Diagnostics() {
		if diagnostic.Message == want {
			return
		}
	}
	t.Fatalf("expected diagnostic %q, got: %v", want, d.Diagnostics())
}
