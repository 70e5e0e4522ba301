package calc

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	val  float64
	pos  int
}

// lex splits the expression into tokens. Whitespace is skipped; any rune
// outside digits, operators, parentheses and '.' is a syntax error.
func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, pos: i})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, pos: i})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokStar, pos: i})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(input) && (input[i] >= '0' && input[i] <= '9' || input[i] == '.') {
				i++
			}
			lit := input[start:i]
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("bad number %q", lit)}
			}
			toks = append(toks, token{kind: tokNumber, val: v, pos: start})
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}
