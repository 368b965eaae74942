package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adambiltcliffe/scheme/heap"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/symtab"
	"github.com/adambiltcliffe/scheme/value"
)

func TestDefineThenLookup(t *testing.T) {
	h := heap.New()
	tab := symtab.New(h)
	x, err := tab.Intern("x")
	require.NoError(t, err)

	require.NoError(t, Define(h, h.RootEnv(), x, value.NewInteger(3)))

	got, err := Lookup(h, h.RootEnv(), x)
	require.NoError(t, err)
	assert.Equal(t, value.NewInteger(3), got)
}

func TestDefineUpdatesExistingBinding(t *testing.T) {
	h := heap.New()
	tab := symtab.New(h)
	x, err := tab.Intern("x")
	require.NoError(t, err)

	require.NoError(t, Define(h, h.RootEnv(), x, value.NewInteger(1)))
	require.NoError(t, Define(h, h.RootEnv(), x, value.NewInteger(2)))

	got, err := Lookup(h, h.RootEnv(), x)
	require.NoError(t, err)
	assert.Equal(t, value.NewInteger(2), got)
}

func TestLookupUnbound(t *testing.T) {
	h := heap.New()
	tab := symtab.New(h)
	x, err := tab.Intern("x")
	require.NoError(t, err)

	_, err = Lookup(h, h.RootEnv(), x)
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.UnboundSymbol))
}

func TestLookupRecursesToParent(t *testing.T) {
	h := heap.New()
	tab := symtab.New(h)
	x, err := tab.Intern("x")
	require.NoError(t, err)
	require.NoError(t, Define(h, h.RootEnv(), x, value.NewInteger(5)))

	child := Extend(h, h.RootEnv())
	got, err := Lookup(h, child, x)
	require.NoError(t, err)
	assert.Equal(t, value.NewInteger(5), got)
}

func TestDefineInChildDoesNotLeakToParent(t *testing.T) {
	h := heap.New()
	tab := symtab.New(h)
	y, err := tab.Intern("y")
	require.NoError(t, err)

	child := Extend(h, h.RootEnv())
	require.NoError(t, Define(h, child, y, value.NewInteger(1)))

	_, err = Lookup(h, h.RootEnv(), y)
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.UnboundSymbol))
}
