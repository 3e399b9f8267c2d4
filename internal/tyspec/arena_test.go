package tyspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nilva-lang/nilva/internal/srcpos"
)

func TestRenderBuiltin(t *testing.T) {
	a := NewArena()
	id := a.InternBuiltin(srcpos.Pos{}, Int)
	assert.Equal(t, "int", a.Render(id))
}

func TestRenderNamed(t *testing.T) {
	a := NewArena()
	id := a.InternNamed(srcpos.Pos{}, "Point")
	assert.Equal(t, "Point", a.Render(id))
}

func TestRenderArrayUnsized(t *testing.T) {
	a := NewArena()
	elem := a.InternBuiltin(srcpos.Pos{}, Int)
	arr := a.InternArray(srcpos.Pos{}, elem, nil)
	assert.Equal(t, "int[]", a.Render(arr))
}

func TestRenderArraySized(t *testing.T) {
	a := NewArena()
	elem := a.InternBuiltin(srcpos.Pos{}, Int)
	n := 4
	arr := a.InternArray(srcpos.Pos{}, elem, &n)
	assert.Equal(t, "int[4]", a.Render(arr))
}

func TestDistinctIdsForIdenticalContent(t *testing.T) {
	a := NewArena()
	id1 := a.InternBuiltin(srcpos.Pos{}, Bool)
	id2 := a.InternBuiltin(srcpos.Pos{}, Bool)
	assert.NotEqual(t, id1, id2, "specs are not structurally deduplicated")
}

func TestGetInvalidIdPanics(t *testing.T) {
	a := NewArena()
	require.Panics(t, func() {
		a.Get(TySpecId(999))
	})
}

func TestVariantPredicates(t *testing.T) {
	a := NewArena()
	builtin := a.InternBuiltin(srcpos.Pos{}, Float)
	named := a.InternNamed(srcpos.Pos{}, "Widget")
	arr := a.InternArray(srcpos.Pos{}, builtin, nil)

	assert.True(t, a.Get(builtin).IsBuiltin())
	assert.True(t, a.Get(named).IsNamed())
	assert.True(t, a.Get(arr).IsArray())
	assert.False(t, a.Get(builtin).IsNamed())
}
