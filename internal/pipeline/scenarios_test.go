package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilva-lang/nilva/internal/diag"
)

func writeSrc(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// S1 — a minimal single-function program compiles clean to one AIR function.
func TestScenarioMinimalFunction(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `fun main() -> int { return 0; }`)
	res := Compile(root, Options{})
	require.False(t, res.Diag.HasErrors())
	require.NotNil(t, res.Module)
	require.Len(t, res.Module.Functions, 1)
}

// Two functions, one calling the other.
func TestScenarioFunctionCall(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `
fun double(n: int) -> int { return n + n; }
fun main() -> int { return double(21); }`)
	res := Compile(root, Options{})
	require.False(t, res.Diag.HasErrors())
	require.NotNil(t, res.Module)
	require.Len(t, res.Module.Functions, 2)
}

// S3 — struct declaration, positional instantiation, field access.
func TestScenarioStructAccess(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `
struct Pt { x: int, y: int }
fun sum(p: Pt) -> int { return p.x + p.y; }
fun main() -> int {
  let origin: Pt = Pt { 0, 0 };
  return sum(origin);
}`)
	res := Compile(root, Options{})
	require.False(t, res.Diag.HasErrors(), "%v", res.Diag.Diagnostics())
	require.NotNil(t, res.Module)
	require.Len(t, res.Module.Structs, 1)
}

// S4 — a type mismatch halts the pipeline before AIR is produced.
func TestScenarioTypeMismatchHaltsBeforeAIR(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `fun main() -> void { let x: int = true; }`)
	res := Compile(root, Options{})
	assert.True(t, res.Diag.HasErrors())
	assert.Nil(t, res.Module)
}

// S5 — array literal with mismatched element types.
func TestScenarioArrayElementMismatch(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `fun main() -> void { let a = [1, true]; }`)
	res := Compile(root, Options{})
	assert.True(t, res.Diag.HasErrors())
	assert.Nil(t, res.Module)
}

// An unresolvable struct field type halts before AIR building runs.
func TestScenarioUnknownTypeHaltsBeforeAIR(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `struct Box { w: Widget }`)
	res := Compile(root, Options{})
	assert.True(t, res.Diag.HasErrors())
	assert.Nil(t, res.Module)
}

// Universal property: imports are merged exactly once even when two
// units import the same path.
func TestPropertyImportIdempotency(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, dir, "shared.nva", `struct Pt { x: int, y: int }`)
	writeSrc(t, dir, "a.nva", `import "shared";`)
	root := writeSrc(t, dir, "main.nva", `
import "shared";
import "a";
fun main() -> int { return 0; }`)

	res := Compile(root, Options{})
	require.False(t, res.Diag.HasErrors(), "%v", res.Diag.Diagnostics())
	assert.Len(t, res.Files, 3)
}

// Universal property: import cycles are diagnosed, not infinite loops.
func TestPropertyImportCycleIsDiagnosedNotInfinite(t *testing.T) {
	dir := t.TempDir()
	writeSrc(t, dir, "a.nva", `import "b";`)
	writeSrc(t, dir, "b.nva", `import "a";`)
	root := writeSrc(t, dir, "main.nva", `
import "a";
fun main() -> int { return 0; }`)

	res := Compile(root, Options{})
	assert.True(t, res.Diag.HasErrors())
}

// Universal property: struct types are interned by name, so two fields
// of the same struct type resolve to the identical TyId.
func TestPropertyStructInterningByName(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `
struct Pt { x: int, y: int }
struct Line { a: Pt, b: Pt }`)
	res := Compile(root, Options{})
	require.False(t, res.Diag.HasErrors())
	sym, ok := res.Symbols.LookupStruct("Line")
	require.True(t, ok)
	assert.Equal(t, sym.Fields[0].Ty, sym.Fields[1].Ty)
}

// Universal property: array types are interned by element type.
func TestPropertyArrayInterningByElementType(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `
struct Box { a: int[], b: int[] }`)
	res := Compile(root, Options{})
	require.False(t, res.Diag.HasErrors())
	sym, ok := res.Symbols.LookupStruct("Box")
	require.True(t, ok)
	assert.Equal(t, sym.Fields[0].Ty, sym.Fields[1].Ty)
}

// Universal property: function declaration order is preserved end to end.
func TestPropertyFunctionOrderRoundTrips(t *testing.T) {
	dir := t.TempDir()
	root := writeSrc(t, dir, "main.nva", `
fun c() -> int { return 3; }
fun a() -> int { return 1; }
fun b() -> int { return 2; }`)
	res := Compile(root, Options{})
	require.False(t, res.Diag.HasErrors())
	require.NotNil(t, res.Module)
	names := make([]string, len(res.Module.Functions))
	for i, fn := range res.Module.Functions {
		names[i] = fn.Name
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestErrorBudgetHaltsAccumulation(t *testing.T) {
	dir := t.TempDir()
	src := "struct Box {\n"
	for i := 0; i < 10; i++ {
		src += "  f" + string(rune('a'+i)) + ": Unknown" + string(rune('a'+i)) + ",\n"
	}
	src = src[:len(src)-2] + "\n}\n"
	root := writeSrc(t, dir, "main.nva", src)

	res := Compile(root, Options{WarningBudget: 3})
	errs := 0
	for _, d := range res.Diag.Diagnostics() {
		if d.Severity == diag.Error {
			errs++
		}
	}
	assert.LessOrEqual(t, errs, 3)
	assert.True(t, res.Diag.Halted())
}
