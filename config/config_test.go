package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, 64, c.GetInt("heap.initial_capacity"))
	assert.False(t, c.GetBool("gc.verbose"))
}

func TestSetOverridesDefault(t *testing.T) {
	c := New()
	c.SetBool("gc.verbose", true)
	assert.True(t, c.GetBool("gc.verbose"))
}

func TestGetMissingPathPanics(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.GetInt("no.such.setting") })
}

func TestGetWrongTypePanics(t *testing.T) {
	c := New()
	assert.Panics(t, func() { c.GetBool("heap.initial_capacity") })
}
