// Package symtab implements spec.md section 4.D: interning of symbol
// names into a heap-resident singly-linked list rooted at heap.Symbols,
// with ASCII upper-casing at intern time.
package symtab

import (
	"strings"

	"github.com/adambiltcliffe/scheme/heap"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/value"
)

// Table interns symbol names against a single Heap. The name text lives
// in a plain side table indexed by intern id: the spec requires the
// symbol list itself to be heap-resident (so it is traceable as a GC
// root, and so lookups walk it per spec.md's algorithm), but once a name
// is interned it is reachable forever through that same root, so storing
// the string bytes off-heap costs nothing in correctness and avoids
// embedding a full string header in every Symbol Value.
type Table struct {
	h     *heap.Heap
	names []string
}

// New returns a Table backed by h. h's symbol list must not have been
// populated by any other Table.
func New(h *heap.Heap) *Table {
	return &Table{h: h}
}

// Intern ensures name (case-folded to upper-case ASCII) has a Symbol in
// the table and returns it. Two calls with case-folded-equal names
// always return identity-equal Symbol values.
func (t *Table) Intern(name string) (value.Value, error) {
	upper := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, name)

	for s := t.h.Symbols(); !s.IsNil(); {
		sym, rest, err := t.h.GetFirstRest(s)
		if err != nil {
			return value.Value{}, err
		}
		if !sym.IsSymbol() {
			return value.Value{}, ierr.New(ierr.ImproperList)
		}
		if t.names[sym.SymbolID()] == upper {
			return sym, nil
		}
		s = rest
	}

	id := int32(len(t.names))
	t.names = append(t.names, upper)
	sym := value.NewSymbol(id)
	t.h.SetSymbols(t.h.Alloc(sym, t.h.Symbols()))
	return sym, nil
}

// Name returns the interned (upper-cased) name of a Symbol value. The
// caller must have checked v.IsSymbol() first.
func (t *Table) Name(v value.Value) string {
	return t.names[v.SymbolID()]
}
