package calc

import "fmt"

type node interface {
	eval() (float64, error)
}

type numberNode struct{ v float64 }

type unaryNode struct {
	op    tokenKind // tokMinus
	child node
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// parse builds the expression tree.
//
//	expr   := term (('+' | '-') term)*
//	term   := factor (('*' | '/') factor)*
//	factor := '-' primary | primary
//	primary := number | '(' expr ')'
func parse(toks []token) (node, error) {
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected trailing input"}
	}
	return n, nil
}

func (p *parser) expr() (node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus, tokMinus:
			op := p.next().kind
			right, err := p.term()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: op, left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) term() (node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar, tokSlash:
			op := p.next().kind
			right, err := p.factor()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: op, left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) factor() (node, error) {
	if p.peek().kind == tokMinus {
		p.next()
		child, err := p.primary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{op: tokMinus, child: child}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return &numberNode{v: t.val}, nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, &SyntaxError{Pos: c.pos, Msg: "missing closing parenthesis"}
		}
		return n, nil
	case tokEOF:
		return nil, &SyntaxError{Pos: t.pos, Msg: "unexpected end of expression"}
	default:
		return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected token at %d", t.pos)}
	}
}
