// Package heap implements the cons-cell arena: a slotted store of cells
// with stable ids, mutation of either half, and mark-and-sweep collection
// rooted at the interned-symbol list and the root environment. See
// spec.md section 4.B.
package heap

import (
	"log"

	"github.com/adambiltcliffe/scheme/config"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/value"
)

// cell is one arena slot: a first/rest pair of Values. The mark bit used
// during collection is transient and kept on the stack in Collect rather
// than on the cell itself, since nothing outside of a single collection
// pass needs to observe it.
type cell struct {
	first, rest value.Value
}

// Heap owns the cell arena and the two GC roots: the interned-symbol
// list and the root environment. Every component that allocates or
// mutates cells holds a *Heap, never a raw cell id outside of a Value.
type Heap struct {
	cells   []cell
	free    []int32
	symbols value.Value
	rootEnv value.Value
	verbose bool
}

// New returns a Heap with an empty symbol list and a fresh, empty root
// environment frame: (Nil . Nil), sized and configured by defaults.
func New() *Heap {
	return NewWithConfig(config.New())
}

// NewWithConfig is like New but pre-sizes the cell arena from
// "heap.initial_capacity" and honors "gc.verbose" for Collect's summary
// logging, per the teacher's convention of a typed settings object
// governing internals that would otherwise be hardcoded constants.
func NewWithConfig(cfg *config.Config) *Heap {
	h := &Heap{
		symbols: value.Nil,
		verbose: cfg.GetBool("gc.verbose"),
	}
	h.cells = make([]cell, 0, cfg.GetInt("heap.initial_capacity"))
	h.rootEnv = h.Alloc(value.Nil, value.Nil)
	return h
}

// Symbols returns the head of the interned-symbol list, one of the two
// GC roots.
func (h *Heap) Symbols() value.Value { return h.symbols }

// SetSymbols updates the head of the interned-symbol list. Only the
// symtab package should call this.
func (h *Heap) SetSymbols(v value.Value) { h.symbols = v }

// RootEnv returns the root environment frame, the other GC root.
func (h *Heap) RootEnv() value.Value { return h.rootEnv }

// Alloc allocates a new cell holding (first, rest) and returns a fresh
// Pair value naming it. A freed slot is reused when one is available;
// the resulting key is otherwise indistinguishable from a freshly grown
// one, as spec.md section 3 permits.
func (h *Heap) Alloc(first, rest value.Value) value.Value {
	if n := len(h.free); n > 0 {
		id := h.free[n-1]
		h.free = h.free[:n-1]
		h.cells[id] = cell{first: first, rest: rest}
		return value.NewPair(id)
	}
	id := int32(len(h.cells))
	h.cells = append(h.cells, cell{first: first, rest: rest})
	return value.NewPair(id)
}

func (h *Heap) cellOf(v value.Value) (int32, error) {
	id, ok := v.CellRef()
	if !ok {
		return 0, ierr.Newf(ierr.ImproperList, "expected a pair, got %s", v.GoString())
	}
	if id < 0 || int(id) >= len(h.cells) {
		return 0, ierr.Newf(ierr.ImproperList, "invalid cell id %d", id)
	}
	return id, nil
}

// GetFirst returns the first half of the cell named by v.
func (h *Heap) GetFirst(v value.Value) (value.Value, error) {
	id, err := h.cellOf(v)
	if err != nil {
		return value.Value{}, err
	}
	return h.cells[id].first, nil
}

// GetRest returns the second half of the cell named by v.
func (h *Heap) GetRest(v value.Value) (value.Value, error) {
	id, err := h.cellOf(v)
	if err != nil {
		return value.Value{}, err
	}
	return h.cells[id].rest, nil
}

// GetFirstRest returns both halves of the cell named by v in one call.
func (h *Heap) GetFirstRest(v value.Value) (value.Value, value.Value, error) {
	id, err := h.cellOf(v)
	if err != nil {
		return value.Value{}, value.Value{}, err
	}
	c := h.cells[id]
	return c.first, c.rest, nil
}

// SetFirst mutates the first half of the cell named by v.
func (h *Heap) SetFirst(v, nv value.Value) error {
	id, err := h.cellOf(v)
	if err != nil {
		return err
	}
	h.cells[id].first = nv
	return nil
}

// SetRest mutates the second half of the cell named by v.
func (h *Heap) SetRest(v, nv value.Value) error {
	id, err := h.cellOf(v)
	if err != nil {
		return err
	}
	h.cells[id].rest = nv
	return nil
}

// IsProperList reports whether v is Nil or a chain of pairs ending in
// Nil.
func (h *Heap) IsProperList(v value.Value) (bool, error) {
	for {
		switch {
		case v.IsNil():
			return true, nil
		case v.IsPair():
			rest, err := h.GetRest(v)
			if err != nil {
				return false, err
			}
			v = rest
		default:
			return false, nil
		}
	}
}

// TestLength reports whether v is a proper list of exactly n elements.
func (h *Heap) TestLength(v value.Value, n int) (bool, error) {
	for {
		switch {
		case v.IsNil():
			return n == 0, nil
		case v.IsPair():
			if n == 0 {
				return false, nil
			}
			rest, err := h.GetRest(v)
			if err != nil {
				return false, err
			}
			v = rest
			n--
		default:
			return false, nil
		}
	}
}

// CellCount returns the number of live-or-free slots currently backing
// the arena. It is exposed for tests asserting that Collect actually
// reclaims cells.
func (h *Heap) CellCount() int { return len(h.cells) }

// FreeCount returns the number of slots Collect has freed and Alloc may
// reuse.
func (h *Heap) FreeCount() int { return len(h.free) }

// Collect runs a full mark-and-sweep pass rooted at the symbol list and
// the root environment, per spec.md section 4.B. It must only be called
// when no evaluation frame is outstanding: the evaluator never calls it,
// and the caller must not be holding any other live Value across the
// call (any Value retained across Collect may reference a freed slot).
func (h *Heap) Collect() {
	marked := make([]bool, len(h.cells))

	worklist := make([]value.Value, 0, 16)
	worklist = append(worklist, h.symbols, h.rootEnv)

	for len(worklist) > 0 {
		n := len(worklist) - 1
		v := worklist[n]
		worklist = worklist[:n]

		id, ok := v.CellRef()
		if !ok {
			continue
		}
		if int(id) >= len(marked) || marked[id] {
			continue
		}
		marked[id] = true
		c := h.cells[id]
		worklist = append(worklist, c.first, c.rest)
	}

	h.free = h.free[:0]
	for id := range h.cells {
		if !marked[id] {
			h.cells[id] = cell{}
			h.free = append(h.free, int32(id))
		}
	}

	if h.verbose {
		log.Printf("gc: %d live, %d freed", len(h.cells)-len(h.free), len(h.free))
	}
}
