// Package env implements spec.md section 4.E: environment frames as
// (parent . bindings) pairs, with bindings stored as an alist of
// (name . value) pairs keyed by interned-symbol identity.
package env

import (
	"github.com/adambiltcliffe/scheme/heap"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/value"
)

// Extend allocates a new, empty frame whose parent is parent.
func Extend(h *heap.Heap, parent value.Value) value.Value {
	return h.Alloc(parent, value.Nil)
}

// Lookup searches env and its ancestors for name, returning
// ierr.UnboundSymbol if no frame binds it.
func Lookup(h *heap.Heap, env, name value.Value) (value.Value, error) {
	for {
		if !env.IsPair() {
			return value.Value{}, ierr.New(ierr.ImproperEnvironment)
		}
		parent, bindings, err := h.GetFirstRest(env)
		if err != nil {
			return value.Value{}, err
		}

		for b := bindings; !b.IsNil(); {
			if !b.IsPair() {
				return value.Value{}, ierr.New(ierr.ImproperList)
			}
			binding, rest, err := h.GetFirstRest(b)
			if err != nil {
				return value.Value{}, err
			}
			if !binding.IsPair() {
				return value.Value{}, ierr.New(ierr.ImproperEnvironment)
			}
			key, err := h.GetFirst(binding)
			if err != nil {
				return value.Value{}, err
			}
			if key.Equal(name) {
				return h.GetRest(binding)
			}
			b = rest
		}

		if parent.IsNil() {
			return value.Value{}, ierr.New(ierr.UnboundSymbol)
		}
		env = parent
	}
}

// Define binds name to val in env's own frame: if env already binds
// name, the binding is mutated in place; otherwise a new binding is
// prepended. There is no separate set! — this is always
// define-or-update semantics, per spec.md section 4.E.
func Define(h *heap.Heap, env, name, val value.Value) error {
	if !env.IsPair() {
		return ierr.New(ierr.ImproperEnvironment)
	}
	_, bindings, err := h.GetFirstRest(env)
	if err != nil {
		return err
	}

	for b := bindings; !b.IsNil(); {
		if !b.IsPair() {
			return ierr.New(ierr.ImproperList)
		}
		binding, rest, err := h.GetFirstRest(b)
		if err != nil {
			return err
		}
		if !binding.IsPair() {
			return ierr.New(ierr.ImproperEnvironment)
		}
		key, err := h.GetFirst(binding)
		if err != nil {
			return err
		}
		if key.Equal(name) {
			return h.SetRest(binding, val)
		}
		b = rest
	}

	binding := h.Alloc(name, val)
	newBindings := h.Alloc(binding, bindings)
	return h.SetRest(env, newBindings)
}
