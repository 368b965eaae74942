// Package value defines the tagged Value variant shared by every other
// component of the interpreter: the heap, the environment model, the
// reader, the evaluator, and the printer all operate on value.Value,
// and this package imports none of theirs.
package value

import "fmt"

// Tag identifies which case of the variant a Value holds.
type Tag uint8

const (
	TagNil Tag = iota
	TagBoolean
	TagInteger
	TagSymbol
	TagPair
	TagClosure
	TagPrimitive
)

func (t Tag) String() string {
	switch t {
	case TagNil:
		return "nil"
	case TagBoolean:
		return "boolean"
	case TagInteger:
		return "integer"
	case TagSymbol:
		return "symbol"
	case TagPair:
		return "pair"
	case TagClosure:
		return "closure"
	case TagPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// NativeFunc is the signature of a primitive's native implementation. It
// receives the already-evaluated argument list (a proper list allocated on
// the heap, or Nil) and a HeapAccessor through which it may read or
// allocate cells.
type NativeFunc func(args Value, h HeapAccessor) (Value, error)

// HeapAccessor is the minimal surface a native primitive needs from the
// cell arena. It exists so this package never has to import the heap
// package (which itself depends on Value), keeping the dependency graph
// acyclic while still letting Primitive carry a callable that can read
// and allocate cells.
type HeapAccessor interface {
	GetFirst(Value) (Value, error)
	GetRest(Value) (Value, error)
	GetFirstRest(Value) (Value, Value, error)
	Alloc(first, rest Value) Value
	SetFirst(Value, Value) error
	SetRest(Value, Value) error
	IsProperList(Value) (bool, error)
	TestLength(Value, int) (bool, error)
}

// Primitive is the shared, immutable descriptor behind a Value of tag
// Primitive: a name (for printing and diagnostics) plus the callable
// itself. Values carry only a pointer to one of these, so copying a
// Primitive Value stays cheap regardless of the closure's size.
type Primitive struct {
	Name string
	Func NativeFunc
}

// Value is a cheaply-copyable tagged union. Compound values (pairs,
// closures) are represented only by an arena-stable integer id; all
// sharing and cycles live in the heap, never in a Value itself.
type Value struct {
	tag  Tag
	num  int64 // Integer payload, Boolean (0/1), Symbol id, or cell id
	prim *Primitive
}

// Nil is the canonical empty-list / unit value.
var Nil = Value{tag: TagNil}

// NewBoolean constructs a Boolean value.
func NewBoolean(b bool) Value {
	var n int64
	if b {
		n = 1
	}
	return Value{tag: TagBoolean, num: n}
}

// NewInteger constructs a signed 64-bit Integer value.
func NewInteger(n int64) Value {
	return Value{tag: TagInteger, num: n}
}

// NewSymbol constructs a Symbol value from an intern id. Only the symtab
// package should call this; everyone else receives Symbol values back
// from symtab.Intern.
func NewSymbol(id int32) Value {
	return Value{tag: TagSymbol, num: int64(id)}
}

// NewPair constructs a Pair value referring to the arena cell with the
// given id. Only the heap package should call this.
func NewPair(cellID int32) Value {
	return Value{tag: TagPair, num: int64(cellID)}
}

// NewClosure constructs a Closure value referring to the arena cell with
// the given id. Only the eval package should call this.
func NewClosure(cellID int32) Value {
	return Value{tag: TagClosure, num: int64(cellID)}
}

// NewPrimitive constructs a Primitive value wrapping p.
func NewPrimitive(p *Primitive) Value {
	return Value{tag: TagPrimitive, prim: p}
}

func (v Value) Tag() Tag { return v.tag }

func (v Value) IsNil() bool       { return v.tag == TagNil }
func (v Value) IsBoolean() bool   { return v.tag == TagBoolean }
func (v Value) IsInteger() bool   { return v.tag == TagInteger }
func (v Value) IsSymbol() bool    { return v.tag == TagSymbol }
func (v Value) IsPair() bool      { return v.tag == TagPair }
func (v Value) IsClosure() bool   { return v.tag == TagClosure }
func (v Value) IsPrimitive() bool { return v.tag == TagPrimitive }

// AsBoolean returns the boolean payload. The caller must have checked
// IsBoolean first.
func (v Value) AsBoolean() bool { return v.num != 0 }

// AsInteger returns the integer payload. The caller must have checked
// IsInteger first.
func (v Value) AsInteger() int64 { return v.num }

// SymbolID returns the intern id. The caller must have checked IsSymbol
// first.
func (v Value) SymbolID() int32 { return int32(v.num) }

// CellID returns the arena cell id for a Pair value. The caller must have
// checked IsPair first.
func (v Value) CellID() int32 { return int32(v.num) }

// ClosureID returns the arena cell id for a Closure value. The caller
// must have checked IsClosure first.
func (v Value) ClosureID() int32 { return int32(v.num) }

// CellRef returns the arena cell id referenced by v and true, for any
// value whose representation is an arena cell (Pair or Closure). It
// returns false for every other tag.
func (v Value) CellRef() (int32, bool) {
	if v.tag == TagPair || v.tag == TagClosure {
		return int32(v.num), true
	}
	return 0, false
}

// Primitive returns the native descriptor for a Primitive value. The
// caller must have checked IsPrimitive first.
func (v Value) Primitive() *Primitive { return v.prim }

// Truthy implements spec.md's truthiness rule: every value except
// Boolean(false) is truthy, including Nil, 0, and the empty list.
func (v Value) Truthy() bool {
	return !(v.tag == TagBoolean && v.num == 0)
}

// Equal compares two values per spec.md section 4.C: Nil/Boolean/Integer
// compare by value, Symbol compares by intern identity, Pair/Closure
// compare by arena key identity (not structural), and values of
// different tags are never equal.
func (v Value) Equal(o Value) bool {
	if v.tag != o.tag {
		return false
	}
	switch v.tag {
	case TagNil:
		return true
	case TagPrimitive:
		return v.prim == o.prim
	default:
		return v.num == o.num
	}
}

// GoString is a compact debug representation; it does not perform the
// recursive S-expression printing that requires heap access (see the
// printer package for that).
func (v Value) GoString() string {
	switch v.tag {
	case TagNil:
		return "()"
	case TagBoolean:
		if v.AsBoolean() {
			return "#t"
		}
		return "#f"
	case TagInteger:
		return fmt.Sprintf("%d", v.num)
	case TagSymbol:
		return fmt.Sprintf("#<symbol %d>", v.num)
	case TagPair:
		return fmt.Sprintf("#<pair %d>", v.num)
	case TagClosure:
		return "#<lambda>"
	case TagPrimitive:
		return fmt.Sprintf("#<primitive %s>", v.prim.Name)
	default:
		return "#<unknown>"
	}
}
