package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilva-lang/nilva/internal/bind"
	"github.com/nilva-lang/nilva/internal/diag"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadRootMergesSingleFile(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "main.nva", `fun main() -> int { return 0; }`)

	d := diag.NewEngine()
	b := bind.New(d)
	r := NewResolver(b, d, "", nil)
	require.NoError(t, r.LoadRoot(root))
	assert.False(t, d.HasErrors())
	assert.Len(t, r.Files, 1)
	assert.True(t, b.Symbols.HasFunction("main"))
}

func TestLoadRootResolvesImportFromImporterDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "util.nva", `struct Pt { x: int, y: int }`)
	root := writeFile(t, dir, "main.nva", `
import "util";
fun main() -> int { return 0; }`)

	d := diag.NewEngine()
	b := bind.New(d)
	r := NewResolver(b, d, "", nil)
	require.NoError(t, r.LoadRoot(root))
	assert.False(t, d.HasErrors())
	assert.True(t, b.Symbols.HasStruct("Pt"))
	assert.Len(t, r.Files, 2)
}

func TestImportsAreIdempotentWhenSharedByTwoUnits(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shared.nva", `struct Pt { x: int, y: int }`)
	writeFile(t, dir, "a.nva", `import "shared";`)
	root := writeFile(t, dir, "main.nva", `
import "shared";
import "a";
fun main() -> int { return 0; }`)

	d := diag.NewEngine()
	b := bind.New(d)
	r := NewResolver(b, d, "", nil)
	require.NoError(t, r.LoadRoot(root))
	assert.False(t, d.HasErrors(), "%v", d.Diagnostics())
	// shared.nva merged exactly once despite two distinct import paths to it.
	assert.Len(t, r.Files, 3)
}

func TestImportCycleIsDetected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.nva", `import "b";`)
	writeFile(t, dir, "b.nva", `import "a";`)
	root := writeFile(t, dir, "main.nva", `
import "a";
fun main() -> int { return 0; }`)

	d := diag.NewEngine()
	b := bind.New(d)
	r := NewResolver(b, d, "", nil)
	require.NoError(t, r.LoadRoot(root))
	assert.True(t, d.HasErrors())

	found := false
	for _, diagnostic := range d.Diagnostics() {
		if diagnostic.Message == `Circular import detected: "a"` {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMissingImportEmitsDiagnostic(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "main.nva", `
import "nonexistent";
fun main() -> int { return 0; }`)

	d := diag.NewEngine()
	b := bind.New(d)
	r := NewResolver(b, d, "", nil)
	require.NoError(t, r.LoadRoot(root))
	assert.True(t, d.HasErrors())
}

// "cat.nva" and "dog.nva" are equal length with no matching first
// character; the original's distance < 3 cutoff still suggests it
// (distance 0), unlike a naive "first character must match" heuristic.
func TestMissingImportSuggestsEqualLengthNameWithoutFirstCharMatch(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cat.nva", `struct Cat { legs: int }`)
	root := writeFile(t, dir, "main.nva", `
import "cat.nva";
import "dog.nva";
fun main() -> int { return 0; }`)

	d := diag.NewEngine()
	b := bind.New(d)
	r := NewResolver(b, d, "", nil)
	require.NoError(t, r.LoadRoot(root))
	require.True(t, d.HasErrors())

	found := false
	for _, diagnostic := range d.Diagnostics() {
		if strings.Contains(diagnostic.Message, `Cannot find import: "dog.nva"`) &&
			strings.Contains(diagnostic.Message, "did you mean") &&
			strings.Contains(diagnostic.Message, "cat.nva") {
			found = true
		}
	}
	assert.True(t, found, "expected a did-you-mean suggestion, got: %v", d.Diagnostics())
}

func TestSearchPathIsConsultedAfterStdlibAndCwd(t *testing.T) {
	stdlib := t.TempDir()
	searchDir := t.TempDir()
	main := t.TempDir()
	writeFile(t, searchDir, "extra.nva", `struct Extra { v: int }`)
	root := writeFile(t, main, "main.nva", `
import "extra";
fun main() -> int { return 0; }`)

	d := diag.NewEngine()
	b := bind.New(d)
	r := NewResolver(b, d, stdlib, []string{searchDir})
	require.NoError(t, r.LoadRoot(root))
	assert.False(t, d.HasErrors())
	assert.True(t, b.Symbols.HasStruct("Extra"))
}
