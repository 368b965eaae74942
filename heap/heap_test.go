package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adambiltcliffe/scheme/config"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/value"
)

func TestNewWithConfigHonorsInitialCapacity(t *testing.T) {
	cfg := config.New()
	cfg.SetInt("heap.initial_capacity", 8)
	h := NewWithConfig(cfg)
	assert.Equal(t, 1, h.CellCount(), "only the root env frame is allocated up front")
	assert.Equal(t, 8, cap(h.cells))
}

func TestAllocAndAccessors(t *testing.T) {
	h := New()
	p := h.Alloc(value.NewInteger(1), value.NewInteger(2))

	first, err := h.GetFirst(p)
	require.NoError(t, err)
	assert.Equal(t, value.NewInteger(1), first)

	rest, err := h.GetRest(p)
	require.NoError(t, err)
	assert.Equal(t, value.NewInteger(2), rest)

	first, rest, err = h.GetFirstRest(p)
	require.NoError(t, err)
	assert.Equal(t, value.NewInteger(1), first)
	assert.Equal(t, value.NewInteger(2), rest)
}

func TestSetFirstAndSetRest(t *testing.T) {
	h := New()
	p := h.Alloc(value.NewInteger(1), value.Nil)

	require.NoError(t, h.SetFirst(p, value.NewInteger(9)))
	require.NoError(t, h.SetRest(p, value.NewInteger(10)))

	first, rest, err := h.GetFirstRest(p)
	require.NoError(t, err)
	assert.Equal(t, value.NewInteger(9), first)
	assert.Equal(t, value.NewInteger(10), rest)
}

func TestGetFirstOnNonPairIsImproperList(t *testing.T) {
	h := New()
	_, err := h.GetFirst(value.NewInteger(1))
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.ImproperList))
}

func TestIsProperList(t *testing.T) {
	h := New()
	nested := h.Alloc(value.NewInteger(3), value.Nil)
	list := h.Alloc(value.NewInteger(2), nested)
	list = h.Alloc(value.NewInteger(1), list)

	ok, err := h.IsProperList(list)
	require.NoError(t, err)
	assert.True(t, ok)

	dotted := h.Alloc(value.NewInteger(1), value.NewInteger(2))
	ok, err = h.IsProperList(dotted)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = h.IsProperList(value.Nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTestLength(t *testing.T) {
	h := New()
	list := h.Alloc(value.NewInteger(2), value.Nil)
	list = h.Alloc(value.NewInteger(1), list)

	ok, err := h.TestLength(list, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.TestLength(list, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCollectReclaimsUnreachableCells(t *testing.T) {
	h := New()

	// Garbage: a cell reachable from nothing but a local Value that
	// is dropped before Collect runs.
	_ = h.Alloc(value.NewInteger(42), value.Nil)
	before := h.CellCount()

	h.Collect()

	assert.Equal(t, before, h.CellCount(), "arena slice is not shrunk, only freed")
	assert.Equal(t, 1, h.FreeCount())
}

func TestCollectPreservesRootReachableCells(t *testing.T) {
	h := New()
	kept := h.Alloc(value.NewInteger(7), value.Nil)
	h.SetSymbols(h.Alloc(kept, value.Nil))

	h.Collect()

	first, err := h.GetFirst(kept)
	require.NoError(t, err)
	assert.Equal(t, value.NewInteger(7), first)
}

func TestAllocReusesFreedSlots(t *testing.T) {
	h := New()
	_ = h.Alloc(value.NewInteger(1), value.Nil)
	before := h.CellCount()

	h.Collect()
	require.Equal(t, 1, h.FreeCount())

	h.Alloc(value.NewInteger(2), value.Nil)
	assert.Equal(t, before, h.CellCount(), "reused the freed slot instead of growing")
	assert.Equal(t, 0, h.FreeCount())
}
