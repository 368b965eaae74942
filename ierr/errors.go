// Package ierr defines the closed set of error kinds the interpreter can
// raise, from the lexer up through the evaluator.
package ierr

import "fmt"

// Kind identifies one of the error cases the interpreter core can signal.
// The set is closed; see spec.md section 7.
type Kind int

const (
	ImproperList Kind = iota
	ImproperSymbol
	ImproperEnvironment
	ImproperLambda
	UnboundSymbol
	NotCallable
	WrongNumberOfArgs
	TypeError
	AmbiguousValue
	UnexpectedDot
	UnexpectedEndOfInput
	UnmatchedBracket
)

var names = map[Kind]string{
	ImproperList:         "ImproperList",
	ImproperSymbol:       "ImproperSymbol",
	ImproperEnvironment:  "ImproperEnvironment",
	ImproperLambda:       "ImproperLambda",
	UnboundSymbol:        "UnboundSymbol",
	NotCallable:          "NotCallable",
	WrongNumberOfArgs:    "WrongNumberOfArgs",
	TypeError:            "TypeError",
	AmbiguousValue:       "AmbiguousValue",
	UnexpectedDot:        "UnexpectedDot",
	UnexpectedEndOfInput: "UnexpectedEndOfInput",
	UnmatchedBracket:     "UnmatchedBracket",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the single error type raised by every component of the
// interpreter core. It carries a Kind from the closed taxonomy and an
// optional human-readable Detail, so the REPL can always print the
// canonical "err: <Kind>" form while still letting tests or diagnostics
// inspect what went wrong.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// New returns an *Error of the given Kind with no extra detail.
func New(k Kind) error {
	return &Error{Kind: k}
}

// Newf returns an *Error of the given Kind with a formatted detail message.
func Newf(k Kind, format string, args ...any) error {
	return &Error{Kind: k, Detail: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *Error of the given Kind. Only err itself
// is inspected; wrapped errors are not unwrapped, and *Error defines no
// Is method, so errors.Is(err, ierr.New(k)) does not match by Kind.
func Is(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
