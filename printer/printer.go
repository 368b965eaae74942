// Package printer implements spec.md section 4.I: rendering a Value to
// its canonical textual form, walking pair chains iteratively so long
// proper lists don't grow the Go call stack.
package printer

import (
	"strconv"
	"strings"

	"github.com/adambiltcliffe/scheme/heap"
	"github.com/adambiltcliffe/scheme/symtab"
	"github.com/adambiltcliffe/scheme/value"
)

// Print renders v to its canonical text, resolving Symbol names through
// tab and Pair contents through h.
func Print(h *heap.Heap, tab *symtab.Table, v value.Value) string {
	var b strings.Builder
	writeValue(&b, h, tab, v)
	return b.String()
}

func writeValue(b *strings.Builder, h *heap.Heap, tab *symtab.Table, v value.Value) {
	switch {
	case v.IsNil():
		b.WriteString("()")
	case v.IsBoolean():
		if v.AsBoolean() {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case v.IsInteger():
		b.WriteString(strconv.FormatInt(v.AsInteger(), 10))
	case v.IsSymbol():
		b.WriteString(tab.Name(v))
	case v.IsPrimitive():
		b.WriteString("#<primitive ")
		b.WriteString(v.Primitive().Name)
		b.WriteString(">")
	case v.IsClosure():
		b.WriteString("#<lambda>")
	case v.IsPair():
		writePair(b, h, tab, v)
	default:
		b.WriteString("#<unknown>")
	}
}

func writePair(b *strings.Builder, h *heap.Heap, tab *symtab.Table, v value.Value) {
	b.WriteString("(")
	first, rest, err := h.GetFirstRest(v)
	if err != nil {
		b.WriteString("#<error>)")
		return
	}
	writeValue(b, h, tab, first)
	for {
		switch {
		case rest.IsNil():
			b.WriteString(")")
			return
		case rest.IsPair():
			b.WriteString(" ")
			first, next, err := h.GetFirstRest(rest)
			if err != nil {
				b.WriteString("#<error>)")
				return
			}
			writeValue(b, h, tab, first)
			rest = next
		default:
			b.WriteString(" . ")
			writeValue(b, h, tab, rest)
			b.WriteString(")")
			return
		}
	}
}
