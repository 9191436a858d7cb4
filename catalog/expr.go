package catalog

import (
	"strconv"
	"strings"
)

// NodeKind identifies an expression node type.
type NodeKind int

const (
	NodeName   NodeKind = iota // An adapter, type or keyword, with optional arguments.
	NodeNumber                 // An unsigned integer literal.
)

// Node is one term of an adapter expression:
//
//	expr   = name [ "<" [ arg { "," arg } ] ">" ]
//	arg    = expr | number
//	name   = letter { letter | digit | "_" | "." }
//	number = digit { digit }
type Node struct {
	Kind   NodeKind
	Name   string
	Args   []Node
	Number uint64
	Offset int // Byte offset of the node in the expression.
}

// String renders n in canonical form.
func (n Node) String() string {
	b := &strings.Builder{}
	n.write(b)
	return b.String()
}

func (n Node) write(b *strings.Builder) {
	if n.Kind == NodeNumber {
		b.WriteString(strconv.FormatUint(n.Number, 10))
		return
	}
	b.WriteString(n.Name)
	if n.Args == nil {
		return
	}
	b.WriteByte('<')
	for i, a := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		a.write(b)
	}
	b.WriteByte('>')
}

// ParseExpr parses an adapter expression without resolving any name.
func ParseExpr(src string) (Node, error) {
	p := &parser{src: src}
	p.next()
	n, ok := p.expr()
	if !ok {
		return Node{}, p.issues
	}
	if p.tok.kind != tokEOF {
		p.fail("unexpected %s after expression", p.tok)
		return Node{}, p.issues
	}
	return n, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokName
	tokNumber
	tokLess
	tokGreater
	tokComma
	tokInvalid
)

var punct = map[byte]tokKind{'<': tokLess, '>': tokGreater, ',': tokComma}

type token struct {
	kind tokKind
	text string
	off  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of expression"
	case tokName, tokNumber:
		return strconv.Quote(t.text)
	default:
		return "'" + t.text + "'"
	}
}

type parser struct {
	src    string
	pos    int
	tok    token
	issues Issues
}

func isLetter(c byte) bool { return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }

func (p *parser) next() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
	start := p.pos
	if p.pos >= len(p.src) {
		p.tok = token{kind: tokEOF, off: start}
		return
	}
	c := p.src[p.pos]
	switch {
	case isLetter(c):
		for p.pos < len(p.src) && (isLetter(p.src[p.pos]) || isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		p.tok = token{kind: tokName, text: p.src[start:p.pos], off: start}
	case isDigit(c):
		for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
			p.pos++
		}
		p.tok = token{kind: tokNumber, text: p.src[start:p.pos], off: start}
	default:
		p.pos++
		k, ok := punct[c]
		if !ok {
			k = tokInvalid
		}
		p.tok = token{kind: k, text: string(c), off: start}
	}
}

func (p *parser) fail(format string, args ...any) {
	p.issues = append(p.issues, issue(p.tok.off, CodeSyntax, ErrSyntax, format, args...))
}

func (p *parser) expr() (Node, bool) {
	if p.tok.kind != tokName {
		p.fail("expected adapter or type name, got %s", p.tok)
		return Node{}, false
	}
	n := Node{Kind: NodeName, Name: p.tok.text, Offset: p.tok.off}
	p.next()
	if p.tok.kind != tokLess {
		return n, true
	}
	p.next()
	n.Args = []Node{}
	if p.tok.kind == tokGreater {
		p.next()
		return n, true
	}
	for {
		arg, ok := p.arg()
		if !ok {
			return Node{}, false
		}
		n.Args = append(n.Args, arg)
		switch p.tok.kind {
		case tokComma:
			p.next()
		case tokGreater:
			p.next()
			return n, true
		default:
			p.fail("expected ',' or '>' in arguments of %s, got %s", n.Name, p.tok)
			return Node{}, false
		}
	}
}

func (p *parser) arg() (Node, bool) {
	if p.tok.kind != tokNumber {
		return p.expr()
	}
	v, err := strconv.ParseUint(p.tok.text, 10, 64)
	if err != nil {
		p.fail("number %s out of range", p.tok)
		return Node{}, false
	}
	n := Node{Kind: NodeNumber, Number: v, Offset: p.tok.off}
	p.next()
	return n, true
}
