// Package parser implements spec.md section 4.F: a recursive-descent
// reader over a token stream that materializes S-expressions directly in
// the heap, including dotted pairs and quote shorthand.
package parser

import (
	"strconv"

	"github.com/adambiltcliffe/scheme/heap"
	"github.com/adambiltcliffe/scheme/ierr"
	"github.com/adambiltcliffe/scheme/lexer"
	"github.com/adambiltcliffe/scheme/symtab"
	"github.com/adambiltcliffe/scheme/value"
)

// Parser reads one heap-resident expression at a time from a fixed token
// stream, peeking one token ahead the way the teacher's recursive-
// descent grammar parser does (grammar_parser.go).
type Parser struct {
	h      *heap.Heap
	syms   *symtab.Table
	tokens []lexer.Token
	pos    int
}

// New returns a Parser over tokens, allocating into h and interning
// symbols through syms.
func New(h *heap.Heap, syms *symtab.Table, tokens []lexer.Token) *Parser {
	return &Parser{h: h, syms: syms, tokens: tokens}
}

// AtEnd reports whether every token has been consumed.
func (p *Parser) AtEnd() bool { return p.pos >= len(p.tokens) }

func (p *Parser) peek() (lexer.Token, bool) {
	if p.AtEnd() {
		return lexer.Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// Parse reads and returns the next expression from the stream.
func (p *Parser) Parse() (value.Value, error) {
	tok, ok := p.peek()
	if !ok {
		return value.Value{}, ierr.New(ierr.UnexpectedEndOfInput)
	}

	switch tok.Type {
	case lexer.RBracket:
		return value.Value{}, ierr.New(ierr.UnmatchedBracket)

	case lexer.Dot:
		return value.Value{}, ierr.New(ierr.UnexpectedDot)

	case lexer.Quote:
		p.advance()
		quote, err := p.syms.Intern("QUOTE")
		if err != nil {
			return value.Value{}, err
		}
		inner, err := p.Parse()
		if err != nil {
			return value.Value{}, err
		}
		tail := p.h.Alloc(inner, value.Nil)
		return p.h.Alloc(quote, tail), nil

	case lexer.LBracket:
		p.advance()
		return p.parseList()

	default: // Atom
		p.advance()
		return p.parseAtom(tok.Text)
	}
}

// parseList parses the body of a list after the opening LBracket has
// been consumed, including an optional dotted tail, per the grammar in
// spec.md section 4.F.
func (p *Parser) parseList() (value.Value, error) {
	if tok, ok := p.peek(); ok && tok.Type == lexer.RBracket {
		p.advance()
		return value.Nil, nil
	}

	first, err := p.Parse()
	if err != nil {
		return value.Value{}, err
	}
	result := p.h.Alloc(first, value.Nil)
	tail := result

	for {
		tok, ok := p.peek()
		if !ok {
			return value.Value{}, ierr.New(ierr.UnexpectedEndOfInput)
		}

		if tok.Type == lexer.RBracket {
			p.advance()
			return result, nil
		}

		if tok.Type == lexer.Dot {
			p.advance()
			next, err := p.Parse()
			if err != nil {
				return value.Value{}, err
			}
			if err := p.h.SetRest(tail, next); err != nil {
				return value.Value{}, err
			}
			closeTok, ok := p.peek()
			if !ok {
				return value.Value{}, ierr.New(ierr.UnexpectedEndOfInput)
			}
			if closeTok.Type != lexer.RBracket {
				return value.Value{}, ierr.New(ierr.UnexpectedDot)
			}
			p.advance()
			return result, nil
		}

		next, err := p.Parse()
		if err != nil {
			return value.Value{}, err
		}
		newTail := p.h.Alloc(next, value.Nil)
		if err := p.h.SetRest(tail, newTail); err != nil {
			return value.Value{}, err
		}
		tail = newTail
	}
}

// parseAtom classifies a raw atom token per spec.md section 4.F:
// #t/#f, integers (or the bare "-" symbol), or an interned symbol.
func (p *Parser) parseAtom(text string) (value.Value, error) {
	if len(text) > 0 && text[0] == '#' {
		switch text {
		case "#t":
			return value.NewBoolean(true), nil
		case "#f":
			return value.NewBoolean(false), nil
		default:
			return value.Value{}, ierr.Newf(ierr.AmbiguousValue, "%q", text)
		}
	}

	if len(text) > 0 && (isDigit(text[0]) || text[0] == '-') {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return value.NewInteger(n), nil
		}
		if text != "-" {
			return value.Value{}, ierr.Newf(ierr.AmbiguousValue, "%q", text)
		}
	}

	return p.syms.Intern(text)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
