// Package repl drives the read-eval-print loop described in spec.md
// section 6: tokenize a line, parse and evaluate each expression it
// contains in turn, print "in:"/"out:"/"err:" lines, then collect.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/adambiltcliffe/scheme/config"
	"github.com/adambiltcliffe/scheme/eval"
	"github.com/adambiltcliffe/scheme/heap"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/lexer"
	"github.com/adambiltcliffe/scheme/parser"
	"github.com/adambiltcliffe/scheme/primitive"
	"github.com/adambiltcliffe/scheme/printer"
	"github.com/adambiltcliffe/scheme/symtab"
)

// Driver owns the heap and evaluator state that must persist across
// lines, and is reusable across an entire session.
type Driver struct {
	h    *heap.Heap
	tab  *symtab.Table
	eval *eval.Evaluator
	out  io.Writer
}

// New builds a Driver with a fresh heap, primitive registry, and
// evaluator, writing REPL output to out.
func New(out io.Writer) (*Driver, error) {
	return NewWithConfig(out, config.New())
}

// NewWithConfig is like New but builds the heap from cfg, letting a
// caller (typically cmd/scheme) turn on GC logging or change the
// arena's initial size.
func NewWithConfig(out io.Writer, cfg *config.Config) (*Driver, error) {
	h := heap.NewWithConfig(cfg)
	tab := symtab.New(h)
	if err := primitive.Register(h, tab); err != nil {
		return nil, err
	}
	e, err := eval.New(h, tab)
	if err != nil {
		return nil, err
	}
	return &Driver{h: h, tab: tab, eval: e, out: out}, nil
}

// Heap exposes the Driver's heap, mainly so callers can inspect it in
// tests after a RunLine call.
func (d *Driver) Heap() *heap.Heap { return d.h }

// RunLine tokenizes line, then parses and evaluates every expression it
// contains in sequence, printing "in:"/"out:"/"err:" to d.out for each
// one. A parse error aborts the remainder of the line (the unparsed
// suffix is discarded) since the token stream may no longer be
// recoverable; an evaluation error aborts only that expression and the
// loop continues with the next one. A full collection always runs once
// the line is exhausted, matching the driver/evaluator boundary in
// spec.md section 5.
func (d *Driver) RunLine(line string) {
	defer d.h.Collect()

	p := parser.New(d.h, d.tab, lexer.Tokenize(line))
	for !p.AtEnd() {
		expr, err := p.Parse()
		if err != nil {
			fmt.Fprintf(d.out, "err: %s\n", kindOf(err))
			return
		}

		fmt.Fprintf(d.out, "in:  %s\n", printer.Print(d.h, d.tab, expr))

		result, err := d.eval.Eval(expr)
		if err != nil {
			fmt.Fprintf(d.out, "err: %s\n", kindOf(err))
			continue
		}
		fmt.Fprintf(d.out, "out: %s\n", printer.Print(d.h, d.tab, result))
	}
}

func kindOf(err error) string {
	if e, ok := err.(*ierr.Error); ok {
		return e.Kind.String()
	}
	return err.Error()
}

// Run reads lines from in until it closes, calling RunLine on each.
func Run(in io.Reader, out io.Writer) error {
	return RunWithConfig(in, out, config.New())
}

// RunWithConfig is like Run but builds the Driver from cfg.
func RunWithConfig(in io.Reader, out io.Writer, cfg *config.Config) error {
	d, err := NewWithConfig(out, cfg)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		d.RunLine(scanner.Text())
	}
	return scanner.Err()
}
