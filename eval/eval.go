// Package eval implements spec.md section 4.G: a tree-walking evaluator
// over heap-resident expressions, dispatching to special forms or to
// apply (primitives and closures) per the rules in that section.
package eval

import (
	"github.com/adambiltcliffe/scheme/env"
	"github.com/adambiltcliffe/scheme/heap"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/symtab"
	"github.com/adambiltcliffe/scheme/value"
)

// Evaluator bundles the heap and symbol table an eval pass needs. It
// never calls heap.Collect itself: collection is the driver's job
// between top-level expressions, per spec.md section 5.
type Evaluator struct {
	h    *heap.Heap
	syms *symtab.Table

	quote  value.Value
	define value.Value
	if_    value.Value
	lambda value.Value
}

// New returns an Evaluator backed by h, interning the special-form
// keywords through syms.
func New(h *heap.Heap, syms *symtab.Table) (*Evaluator, error) {
	e := &Evaluator{h: h, syms: syms}
	var err error
	if e.quote, err = syms.Intern("QUOTE"); err != nil {
		return nil, err
	}
	if e.define, err = syms.Intern("DEFINE"); err != nil {
		return nil, err
	}
	if e.if_, err = syms.Intern("IF"); err != nil {
		return nil, err
	}
	if e.lambda, err = syms.Intern("LAMBDA"); err != nil {
		return nil, err
	}
	return e, nil
}

// Eval evaluates expr in the root environment.
func (e *Evaluator) Eval(expr value.Value) (value.Value, error) {
	return e.EvalIn(e.h.RootEnv(), expr)
}

// EvalIn evaluates expr in the given environment frame.
func (e *Evaluator) EvalIn(frame, expr value.Value) (value.Value, error) {
	switch {
	case expr.IsNil(), expr.IsBoolean(), expr.IsInteger(), expr.IsClosure(), expr.IsPrimitive():
		return expr, nil

	case expr.IsSymbol():
		return env.Lookup(e.h, frame, expr)

	case expr.IsPair():
		return e.evalPair(frame, expr)

	default:
		return value.Value{}, ierr.Newf(ierr.TypeError, "cannot evaluate %s", expr.GoString())
	}
}

func (e *Evaluator) evalPair(frame, expr value.Value) (value.Value, error) {
	head, tail, err := e.h.GetFirstRest(expr)
	if err != nil {
		return value.Value{}, err
	}

	if head.IsSymbol() {
		switch {
		case head.Equal(e.quote):
			return e.evalQuote(tail)
		case head.Equal(e.define):
			return e.evalDefine(frame, tail)
		case head.Equal(e.if_):
			return e.evalIf(frame, tail)
		case head.Equal(e.lambda):
			return e.evalLambda(frame, tail)
		}
	}

	op, err := e.EvalIn(frame, head)
	if err != nil {
		return value.Value{}, err
	}

	args, err := e.evalList(frame, tail)
	if err != nil {
		return value.Value{}, err
	}

	return e.Apply(op, args)
}

func (e *Evaluator) evalQuote(args value.Value) (value.Value, error) {
	ok, err := e.h.TestLength(args, 1)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, ierr.New(ierr.WrongNumberOfArgs)
	}
	return e.h.GetFirst(args)
}

func (e *Evaluator) evalDefine(frame, args value.Value) (value.Value, error) {
	ok, err := e.h.TestLength(args, 2)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, ierr.New(ierr.WrongNumberOfArgs)
	}
	name, rest, err := e.h.GetFirstRest(args)
	if err != nil {
		return value.Value{}, err
	}
	if !name.IsSymbol() {
		return value.Value{}, ierr.New(ierr.ImproperSymbol)
	}
	body, err := e.h.GetFirst(rest)
	if err != nil {
		return value.Value{}, err
	}
	val, err := e.EvalIn(frame, body)
	if err != nil {
		return value.Value{}, err
	}
	if err := env.Define(e.h, frame, name, val); err != nil {
		return value.Value{}, err
	}
	return name, nil
}

func (e *Evaluator) evalIf(frame, args value.Value) (value.Value, error) {
	ok, err := e.h.TestLength(args, 3)
	if err != nil {
		return value.Value{}, err
	}
	if !ok {
		return value.Value{}, ierr.New(ierr.WrongNumberOfArgs)
	}
	test, rest, err := e.h.GetFirstRest(args)
	if err != nil {
		return value.Value{}, err
	}
	thenExpr, elseExpr, err := e.h.GetFirstRest(rest)
	if err != nil {
		return value.Value{}, err
	}
	elseExpr, err = e.h.GetFirst(elseExpr)
	if err != nil {
		return value.Value{}, err
	}

	result, err := e.EvalIn(frame, test)
	if err != nil {
		return value.Value{}, err
	}
	if result.Truthy() {
		return e.EvalIn(frame, thenExpr)
	}
	return e.EvalIn(frame, elseExpr)
}

// evalLambda allocates a closure cell per spec.md section 4.C: outer
// cell (captured-env . inner), inner (params . body-forms).
func (e *Evaluator) evalLambda(frame, args value.Value) (value.Value, error) {
	isList, err := e.h.IsProperList(args)
	if err != nil {
		return value.Value{}, err
	}
	if !isList {
		return value.Value{}, ierr.New(ierr.ImproperList)
	}
	params, body, err := e.h.GetFirstRest(args)
	if err != nil {
		return value.Value{}, err
	}
	if body.IsNil() {
		return value.Value{}, ierr.New(ierr.WrongNumberOfArgs)
	}
	paramsOK, err := e.h.IsProperList(params)
	if err != nil {
		return value.Value{}, err
	}
	if !paramsOK {
		return value.Value{}, ierr.New(ierr.ImproperLambda)
	}
	for p := params; !p.IsNil(); {
		first, rest, err := e.h.GetFirstRest(p)
		if err != nil {
			return value.Value{}, err
		}
		if !first.IsSymbol() {
			return value.Value{}, ierr.New(ierr.ImproperLambda)
		}
		p = rest
	}

	inner := e.h.Alloc(params, body)
	outer := e.h.Alloc(frame, inner)
	return value.NewClosure(outer.CellID()), nil
}

// evalList evaluates each element of a proper list in order, returning
// a newly heap-allocated proper list of the results.
func (e *Evaluator) evalList(frame, list value.Value) (value.Value, error) {
	isList, err := e.h.IsProperList(list)
	if err != nil {
		return value.Value{}, err
	}
	if !isList {
		return value.Value{}, ierr.New(ierr.ImproperList)
	}

	if list.IsNil() {
		return value.Nil, nil
	}

	var items []value.Value
	for p := list; !p.IsNil(); {
		first, rest, err := e.h.GetFirstRest(p)
		if err != nil {
			return value.Value{}, err
		}
		v, err := e.EvalIn(frame, first)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
		p = rest
	}

	result := value.Nil
	for i := len(items) - 1; i >= 0; i-- {
		result = e.h.Alloc(items[i], result)
	}
	return result, nil
}

// Apply invokes op (a Primitive or Closure) on the already-evaluated
// args list, per spec.md section 4.G.
func (e *Evaluator) Apply(op, args value.Value) (value.Value, error) {
	switch {
	case op.IsPrimitive():
		return op.Primitive().Func(args, e.h)

	case op.IsClosure():
		return e.applyClosure(op, args)

	default:
		return value.Value{}, ierr.Newf(ierr.NotCallable, "%s", op.GoString())
	}
}

func (e *Evaluator) applyClosure(closure, args value.Value) (value.Value, error) {
	capturedEnv, inner, err := e.h.GetFirstRest(closure)
	if err != nil {
		return value.Value{}, err
	}
	params, body, err := e.h.GetFirstRest(inner)
	if err != nil {
		return value.Value{}, err
	}

	frame := env.Extend(e.h, capturedEnv)

	p, a := params, args
	for !p.IsNil() {
		if a.IsNil() {
			return value.Value{}, ierr.New(ierr.WrongNumberOfArgs)
		}
		pFirst, pRest, err := e.h.GetFirstRest(p)
		if err != nil {
			return value.Value{}, err
		}
		aFirst, aRest, err := e.h.GetFirstRest(a)
		if err != nil {
			return value.Value{}, err
		}
		if err := env.Define(e.h, frame, pFirst, aFirst); err != nil {
			return value.Value{}, err
		}
		p, a = pRest, aRest
	}
	if !a.IsNil() {
		return value.Value{}, ierr.New(ierr.WrongNumberOfArgs)
	}

	var result value.Value = value.Nil
	for b := body; !b.IsNil(); {
		form, rest, err := e.h.GetFirstRest(b)
		if err != nil {
			return value.Value{}, err
		}
		result, err = e.EvalIn(frame, form)
		if err != nil {
			return value.Value{}, err
		}
		b = rest
	}
	return result, nil
}
