package textir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilva-lang/nilva/internal/pipeline"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestGenerateRendersFunctionAndReturn(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "main.nva", `fun main() -> int { return 42; }`)

	res := pipeline.Compile(root, pipeline.Options{})
	require.False(t, res.Diag.HasErrors())
	require.NotNil(t, res.Module)

	out, err := New().Generate(res.Module)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "fun main(")
	assert.Contains(t, text, "return 42")
}

func TestGenerateRendersStructAndFieldAccess(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "main.nva", `
struct Pt { x: int, y: int }
fun getX(p: Pt) -> int { return p.x; }`)

	res := pipeline.Compile(root, pipeline.Options{})
	require.False(t, res.Diag.HasErrors())
	require.NotNil(t, res.Module)

	out, err := New().Generate(res.Module)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "struct Pt {")
	assert.Contains(t, text, ".x/#0")
}

func TestBackendNameIsTextir(t *testing.T) {
	assert.Equal(t, "textir", New().Name())
}
