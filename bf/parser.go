package bf

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"

	"golang.org/x/text/unicode/norm"
)

// A ParseError is returned when a formula is not well-formed.
type ParseError struct {
	Formula string // Text of the faulty formula
	Column  int    // 1-based column where the error was detected
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %q: at column %d, %s", e.Formula, e.Column, e.Msg)
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokIdent
	tokConn
	tokLParen
	tokRParen
	tokInvalid
)

type token struct {
	kind tokKind
	text string
	conn Connective // Only meaningful for tokConn
	col  int
}

// lexer splits formulas into tokens. Keywords are recognized as whole words
// only, so "Pandora" is never read as "P and ora".
type lexer struct {
	s   scanner.Scanner
	err string // Last error reported by the scanner, if any
}

func newLexer(src string) *lexer {
	l := &lexer{}
	l.s.Init(strings.NewReader(norm.NFC.String(src)))
	l.s.Mode = scanner.ScanIdents
	l.s.Error = func(_ *scanner.Scanner, msg string) { l.err = msg }
	return l
}

func (l *lexer) next() token {
	r := l.s.Scan()
	if r == scanner.EOF {
		return token{kind: tokEOF, col: l.s.Pos().Column}
	}
	tok := token{text: l.s.TokenText(), col: l.s.Position.Column}
	switch {
	case l.err != "":
		tok.kind = tokInvalid
	case r == '(':
		tok.kind = tokLParen
	case r == ')':
		tok.kind = tokRParen
	case r == '=' && l.s.Peek() == '>':
		l.s.Next()
		tok.text = "=>"
		tok.kind, tok.conn = tokConn, OpImplies
	case r == '!' && l.s.Peek() == '=':
		l.s.Next()
		tok.text = "!="
		tok.kind, tok.conn = tokConn, OpXor
	default:
		if c, ok := Keyword(tok.text); ok {
			tok.kind, tok.conn = tokConn, c
		} else if r == scanner.Ident {
			tok.kind = tokIdent
		} else {
			tok.kind = tokInvalid
		}
	}
	return tok
}

type parser struct {
	lex *lexer
	voc *Vocabulary
	src string
	tok token // Last token read
}

// Parse parses the formula from the given input Reader.
// It returns the corresponding Formula.
// Formulas are written using the following operators (from lowest to highest priority) :
//
// - for an equivalence, the "=" operator,
// - for an implication, the "implies" or "=>" operators,
// - for a disjunction, the "or", "nor", "xor" or "!=" operators,
// - for a conjunction, the "and" or "nand" operators,
// - for a negation, the "not", "-" or "~" unary operators.
//
// Binary operators of the same priority associate to the left, so that
// "P implies Q implies R" reads "(P implies Q) implies R".
// Parentheses can be used to group subformulas.
// Identifiers that are not keywords must be accepted by voc as variable names.
// If voc is nil, Letters is used.
func Parse(voc *Vocabulary, r io.Reader) (Formula, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read formula: %v", err)
	}
	return ParseString(voc, string(src))
}

// ParseString is like Parse, but reads the formula from src.
func ParseString(voc *Vocabulary, src string) (Formula, error) {
	if voc == nil {
		voc = Letters
	}
	p := parser{lex: newLexer(src), voc: voc, src: src}
	p.scan()
	if p.tok.kind == tokEOF {
		return nil, p.errorf("expected formula, found EOF")
	}
	f, err := p.parseLevel(0)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return f, nil
}

func (p *parser) scan() {
	if p.tok.kind == tokEOF && p.tok.col != 0 {
		return
	}
	p.tok = p.lex.next()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Formula: p.src, Column: p.tok.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) unexpected() error {
	if p.tok.kind == tokRParen {
		return p.errorf("unbalanced closing parenthesis")
	}
	return p.errorf("unexpected token %q", p.tok.text)
}

// parseLevel parses a sequence of subformulas joined by the binary
// connectives of the given priority level.
func (p *parser) parseLevel(lvl int) (f Formula, err error) {
	if lvl == len(levels) {
		return p.parseNot()
	}
	f, err = p.parseLevel(lvl + 1)
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokConn && hasConnective(levels[lvl], p.tok.conn) {
		op := p.tok
		p.scan()
		if p.tok.kind == tokEOF {
			return nil, p.errorf("missing operand after %q", op.text)
		}
		f2, err := p.parseLevel(lvl + 1)
		if err != nil {
			return nil, err
		}
		f = op.conn.build(f, f2)
	}
	return f, nil
}

func hasConnective(conns []Connective, c Connective) bool {
	for _, c2 := range conns {
		if c == c2 {
			return true
		}
	}
	return false
}

func (p *parser) parseNot() (f Formula, err error) {
	if p.tok.kind == tokConn && p.tok.conn == OpNot {
		op := p.tok
		p.scan()
		if p.tok.kind == tokEOF {
			return nil, p.errorf("missing operand after %q", op.text)
		}
		f, err = p.parseNot()
		if err != nil {
			return nil, err
		}
		return Not(f), nil
	}
	return p.parseBasic()
}

func (p *parser) parseBasic() (f Formula, err error) {
	switch p.tok.kind {
	case tokLParen:
		open := p.tok
		p.scan()
		if p.tok.kind == tokEOF {
			return nil, p.errorf("expected expression after parenthesis opened at column %d, found EOF", open.col)
		}
		f, err = p.parseLevel(0)
		if err != nil {
			return nil, err
		}
		if p.tok.kind == tokEOF {
			return nil, p.errorf("expected closing parenthesis for column %d, found EOF", open.col)
		}
		if p.tok.kind != tokRParen {
			return nil, p.errorf("expected closing parenthesis, found %q", p.tok.text)
		}
		p.scan()
		return f, nil
	case tokIdent:
		if !p.voc.IsVar(p.tok.text) {
			return nil, p.errorf("%q is not a valid variable name for the %s vocabulary", p.tok.text, p.voc.Name)
		}
		defer p.scan()
		return Var(p.tok.text), nil
	case tokEOF:
		return nil, p.errorf("expected operand, found EOF")
	case tokConn:
		return nil, p.errorf("missing operand before %q", p.tok.text)
	default:
		return nil, p.unexpected()
	}
}

// Typeset rewrites the formula text src with the symbols of the notation n.
// Tokens are kept in their original order, parentheses included; src is not
// required to be a well-formed formula, but it must only contain valid tokens.
func Typeset(n *Notation, src string) (string, error) {
	l := newLexer(src)
	var sb strings.Builder
	prev := token{kind: tokEOF}
	for {
		tok := l.next()
		switch tok.kind {
		case tokEOF:
			return sb.String(), nil
		case tokInvalid:
			return "", &ParseError{Formula: src, Column: tok.col, Msg: fmt.Sprintf("unexpected token %q", tok.text)}
		}
		tight := prev.kind == tokLParen || tok.kind == tokRParen ||
			(n.TightNot && prev.kind == tokConn && prev.conn == OpNot)
		if sb.Len() > 0 && !tight {
			sb.WriteString(n.Space)
		}
		switch tok.kind {
		case tokIdent:
			if n.Ident != nil {
				sb.WriteString(n.Ident(tok.text))
			} else {
				sb.WriteString(tok.text)
			}
		case tokConn:
			sb.WriteString(n.Symbols[tok.conn])
		default:
			sb.WriteString(tok.text)
		}
		prev = tok
	}
}
