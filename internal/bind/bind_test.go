package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilva-lang/nilva/internal/ast"
	"github.com/nilva-lang/nilva/internal/diag"
	"github.com/nilva-lang/nilva/internal/lexer"
	"github.com/nilva-lang/nilva/internal/parser"
)

func parseOne(t *testing.T, src string) *ast.File {
	t.Helper()
	p := parser.New(lexer.New(src, "t.nva"), "t.nva")
	file := p.ParseFile()
	require.Empty(t, p.Errors())
	return file
}

func TestBindDeclarationsRegistersStructsAndFuncs(t *testing.T) {
	d := diag.NewEngine()
	b := New(d)
	file := parseOne(t, `
struct Pt { x: int, y: int }
fun main() -> int { return 0; }`)

	b.BindDeclarations(file)
	assert.False(t, d.HasErrors())
	assert.True(t, b.Symbols.HasStruct("Pt"))
	assert.True(t, b.Symbols.HasFunction("main"))
}

func TestBindDeclarationsDetectsDuplicateStruct(t *testing.T) {
	d := diag.NewEngine()
	b := New(d)
	file := parseOne(t, `
struct P { x: int }
struct P { y: int }
fun main() -> int { return 0; }`)

	b.BindDeclarations(file)
	assert.True(t, d.HasErrors())
	found := false
	for _, diagnostic := range d.Diagnostics() {
		if diagnostic.Message == `Duplicate struct declaration: "P"` {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBindDeclarationsDetectsDuplicateFunction(t *testing.T) {
	d := diag.NewEngine()
	b := New(d)
	file := parseOne(t, `
fun main() -> int { return 0; }
fun main() -> int { return 1; }`)

	b.BindDeclarations(file)
	assert.True(t, d.HasErrors())
}

func TestBindBodiesSameScopeDuplicateIsAnError(t *testing.T) {
	d := diag.NewEngine()
	b := New(d)
	file := parseOne(t, `
fun main() -> int {
  let x = 1;
  let x = 2;
  return x;
}`)
	b.BindDeclarations(file)
	b.BindBodies(file.Funcs)
	assert.True(t, d.HasErrors())
}

func TestBindBodiesNestedScopeShadowingIsAllowed(t *testing.T) {
	d := diag.NewEngine()
	b := New(d)
	file := parseOne(t, `
fun main() -> int {
  let x = 1;
  if x {
    let x = 2;
    return x;
  }
  return x;
}`)
	b.BindDeclarations(file)
	b.BindBodies(file.Funcs)
	assert.False(t, d.HasErrors())
}

func TestBindBodiesRecordsParamVarIds(t *testing.T) {
	d := diag.NewEngine()
	b := New(d)
	file := parseOne(t, `fun add(a: int, b: int) -> int { return a; }`)
	b.BindDeclarations(file)
	b.BindBodies(file.Funcs)

	ids := b.Result().ParamVarIds[file.Funcs[0]]
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
}
