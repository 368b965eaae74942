// Package primitive registers the fixed set of native bindings spec.md
// section 4.H requires in the root environment: pair accessors, cons,
// list?, and integer arithmetic/comparison.
package primitive

import (
	"github.com/adambiltcliffe/scheme/env"
	"github.com/adambiltcliffe/scheme/heap"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/symtab"
	"github.com/adambiltcliffe/scheme/value"
)

func validateArgCount(h value.HeapAccessor, args value.Value, n int) error {
	ok, err := h.TestLength(args, n)
	if err != nil {
		return err
	}
	if !ok {
		return ierr.New(ierr.WrongNumberOfArgs)
	}
	return nil
}

func asInteger(v value.Value) (int64, error) {
	if !v.IsInteger() {
		return 0, ierr.Newf(ierr.TypeError, "expected integer, got %s", v.Tag())
	}
	return v.AsInteger(), nil
}

func first(args value.Value, h value.HeapAccessor) (value.Value, error) {
	if err := validateArgCount(h, args, 1); err != nil {
		return value.Value{}, err
	}
	arg, err := h.GetFirst(args)
	if err != nil {
		return value.Value{}, err
	}
	return h.GetFirst(arg)
}

func rest(args value.Value, h value.HeapAccessor) (value.Value, error) {
	if err := validateArgCount(h, args, 1); err != nil {
		return value.Value{}, err
	}
	arg, err := h.GetFirst(args)
	if err != nil {
		return value.Value{}, err
	}
	return h.GetRest(arg)
}

func cons(args value.Value, h value.HeapAccessor) (value.Value, error) {
	if err := validateArgCount(h, args, 2); err != nil {
		return value.Value{}, err
	}
	a, tail, err := h.GetFirstRest(args)
	if err != nil {
		return value.Value{}, err
	}
	b, err := h.GetFirst(tail)
	if err != nil {
		return value.Value{}, err
	}
	return h.Alloc(a, b), nil
}

func listP(args value.Value, h value.HeapAccessor) (value.Value, error) {
	if err := validateArgCount(h, args, 1); err != nil {
		return value.Value{}, err
	}
	arg, err := h.GetFirst(args)
	if err != nil {
		return value.Value{}, err
	}
	ok, err := h.IsProperList(arg)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewBoolean(ok), nil
}

// doArithmetic implements spec.md's variadic arithmetic rule: one
// argument folds against identity, two or more fold left starting from
// the first operand, zero arguments is an arity error.
func doArithmetic(args value.Value, h value.HeapAccessor, identity int64, binOp func(a, b int64) int64) (value.Value, error) {
	if args.IsNil() {
		return value.Value{}, ierr.New(ierr.WrongNumberOfArgs)
	}
	firstArg, tail, err := h.GetFirstRest(args)
	if err != nil {
		return value.Value{}, err
	}
	firstN, err := asInteger(firstArg)
	if err != nil {
		return value.Value{}, err
	}
	if tail.IsNil() {
		return value.NewInteger(binOp(identity, firstN)), nil
	}

	result := firstN
	for v := tail; !v.IsNil(); {
		n, rest, err := h.GetFirstRest(v)
		if err != nil {
			return value.Value{}, err
		}
		nInt, err := asInteger(n)
		if err != nil {
			return value.Value{}, err
		}
		result = binOp(result, nInt)
		v = rest
	}
	return value.NewInteger(result), nil
}

func doPlus(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doArithmetic(args, h, 0, func(a, b int64) int64 { return a + b })
}

func doMinus(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doArithmetic(args, h, 0, func(a, b int64) int64 { return a - b })
}

func doTimes(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doArithmetic(args, h, 1, func(a, b int64) int64 { return a * b })
}

func doDivide(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doArithmetic(args, h, 1, func(a, b int64) int64 {
		if b == 0 {
			return 0
		}
		return a / b
	})
}

func doPredicate(args value.Value, h value.HeapAccessor, pred func(a, b int64) bool) (value.Value, error) {
	if err := validateArgCount(h, args, 2); err != nil {
		return value.Value{}, err
	}
	a, tail, err := h.GetFirstRest(args)
	if err != nil {
		return value.Value{}, err
	}
	b, err := h.GetFirst(tail)
	if err != nil {
		return value.Value{}, err
	}
	aN, err := asInteger(a)
	if err != nil {
		return value.Value{}, err
	}
	bN, err := asInteger(b)
	if err != nil {
		return value.Value{}, err
	}
	return value.NewBoolean(pred(aN, bN)), nil
}

func doNumEq(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doPredicate(args, h, func(a, b int64) bool { return a == b })
}

func doLt(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doPredicate(args, h, func(a, b int64) bool { return a < b })
}

func doLte(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doPredicate(args, h, func(a, b int64) bool { return a <= b })
}

func doGt(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doPredicate(args, h, func(a, b int64) bool { return a > b })
}

func doGte(args value.Value, h value.HeapAccessor) (value.Value, error) {
	return doPredicate(args, h, func(a, b int64) bool { return a >= b })
}

func addPrimitive(h *heap.Heap, syms *symtab.Table, name string, fn value.NativeFunc) error {
	sym, err := syms.Intern(name)
	if err != nil {
		return err
	}
	v := value.NewPrimitive(&value.Primitive{Name: name, Func: fn})
	return env.Define(h, h.RootEnv(), sym, v)
}

// Register installs the fixed primitive set into h's root environment.
func Register(h *heap.Heap, syms *symtab.Table) error {
	entries := []struct {
		name string
		fn   value.NativeFunc
	}{
		{"first", first},
		{"rest", rest},
		{"cons", cons},
		{"list?", listP},
		{"+", doPlus},
		{"-", doMinus},
		{"*", doTimes},
		{"/", doDivide},
		{"=", doNumEq},
		{"<", doLt},
		{"<=", doLte},
		{">", doGt},
		{">=", doGte},
	}
	for _, e := range entries {
		if err := addPrimitive(h, syms, e.name, e.fn); err != nil {
			return err
		}
	}
	return nil
}
