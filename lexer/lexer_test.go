package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func types(tokens []Token) []TokenType {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func texts(tokens []Token) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantType []TokenType
		wantText []string
	}{
		{
			name:     "parens and atoms",
			input:    "(+ 1 2)",
			wantType: []TokenType{LBracket, Atom, Atom, Atom, RBracket},
			wantText: []string{"(", "+", "1", "2", ")"},
		},
		{
			name:     "quote shorthand",
			input:    "'(1 2)",
			wantType: []TokenType{Quote, LBracket, Atom, Atom, RBracket},
		},
		{
			name:     "bare dot",
			input:    "(1 . 2)",
			wantType: []TokenType{LBracket, Atom, Dot, Atom, RBracket},
		},
		{
			name:     "whitespace is ignored",
			input:    "  ( a\tb\n)  ",
			wantType: []TokenType{LBracket, Atom, Atom, RBracket},
		},
		{
			name:     "negative integer atom",
			input:    "(- -5)",
			wantType: []TokenType{LBracket, Atom, Atom, RBracket},
			wantText: []string{"(", "-", "-5", ")"},
		},
		{
			name:     "boolean literal atoms",
			input:    "#t #f",
			wantType: []TokenType{Atom, Atom},
			wantText: []string{"#t", "#f"},
		},
		{
			name:     "empty input",
			input:    "",
			wantType: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			assert.Equal(t, tt.wantType, types(got))
			if tt.wantText != nil {
				assert.Equal(t, tt.wantText, texts(got))
			}
		})
	}
}
