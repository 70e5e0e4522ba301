// Package calc evaluates plain arithmetic expressions over float64 with the
// conventional precedence rules. It is deliberately tiny: numbers, + - * /,
// parentheses and a single leading unary minus per operand.
package calc

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDivideByZero = errors.New("division by zero")
	ErrNotFinite    = errors.New("result is not finite")
)

// SyntaxError reports a malformed expression with the byte offset of the fault.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

// Eval parses and evaluates expr. Division by zero and overflow to a
// non-finite value are reported as ErrDivideByZero / ErrNotFinite; anything
// unparseable comes back as a *SyntaxError.
func Eval(expr string) (float64, error) {
	toks, err := lex(expr)
	if err != nil {
		return 0, err
	}
	root, err := parse(toks)
	if err != nil {
		return 0, err
	}
	return root.eval()
}

func (n *numberNode) eval() (float64, error) { return n.v, nil }

func (n *unaryNode) eval() (float64, error) {
	v, err := n.child.eval()
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n *binaryNode) eval() (float64, error) {
	l, err := n.left.eval()
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval()
	if err != nil {
		return 0, err
	}
	var v float64
	switch n.op {
	case tokPlus:
		v = l + r
	case tokMinus:
		v = l - r
	case tokStar:
		v = l * r
	case tokSlash:
		if r == 0 {
			return 0, ErrDivideByZero
		}
		v = l / r
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}
