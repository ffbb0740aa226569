// Package parser turns a compiled grammar into a runtime parser.
// Alternatives are tried in definition order with cursor fallback,
// pruned by the FIRST sets the analysis computed. Reduce actions build
// a Node tree bottom-up.
package parser

import (
	"unicode/utf8"

	"github.com/pgen-go/pgen/analysis"
	"github.com/pgen-go/pgen/grammar"
	"github.com/pgen-go/pgen/internal/ints"
)

type Parser struct {
	g *grammar.Grammar
	a *analysis.Analysis
}

// New analyzes the grammar and builds a parser for it. Grammars with
// left recursion or indistinguishable alternatives are rejected here.
func New(g *grammar.Grammar) (*Parser, error) {
	a, e := analysis.Analyze(g)
	if e != nil {
		return nil, e
	}
	return &Parser{g: g, a: a}, nil
}

// Grammar returns the compiled grammar the parser was built for.
func (p *Parser) Grammar() *grammar.Grammar {
	return p.g
}

// Analysis returns the static facts computed for the grammar.
func (p *Parser) Analysis() *analysis.Analysis {
	return p.a
}

// Parse matches the whole stream against the named goal nonterminal and
// returns the value its reduce actions build. On failure the error
// reports the farthest position reached and the terminals that would
// have allowed progress there.
func (p *Parser) Parse(goal string, ts TokenStream) (*Node, error) {
	ni := -1
	for _, gi := range p.g.Goals {
		if p.g.Nonterms[gi].Name == goal {
			ni = gi
			break
		}
	}
	if ni < 0 {
		return nil, unknownGoalError(goal)
	}

	c := &parseContext{p: p, buf: newBuffer(ts), expected: ints.NewSet()}
	node, ok, e := c.parseNt(analysis.Inst{Nonterm: ni})
	if e != nil {
		return nil, e
	}
	if !ok {
		return nil, c.farthestError()
	}

	t, e := c.buf.peek(0)
	if e != nil {
		return nil, e
	}
	if !t.IsEof() {
		return nil, unmatchedInputError(t)
	}
	return node, nil
}

type parseContext struct {
	p   *Parser
	buf *buffer
	// farthest failure so far, for the final diagnostic
	failPos  int
	expected *ints.Set
}

// fail records terminals that would have allowed progress at a cursor
// position. Only the farthest position is kept.
func (c *parseContext) fail(pos int, terms *ints.Set) {
	if pos < c.failPos {
		return
	}
	if pos > c.failPos {
		c.failPos = pos
		c.expected = ints.NewSet()
	}
	if terms != nil {
		c.expected.Union(terms)
	}
}

func (c *parseContext) failTerm(pos, term int) {
	c.fail(pos, ints.NewSet(term))
}

func (c *parseContext) farthestError() error {
	c.buf.rewind(c.failPos)
	t, e := c.buf.peek(0)
	if e != nil {
		return e
	}

	expected := c.describeExpected()
	if t.IsEof() {
		return unexpectedEofError(t, expected)
	}
	return unexpectedTokenError(t, expected)
}

func (c *parseContext) describeExpected() string {
	terms := c.expected.ToSlice()
	if len(terms) == 0 {
		return "a different construct"
	}

	res := ""
	for i, term := range terms {
		if i > 0 {
			res += " or "
		}
		res += c.p.g.TermName(term)
	}
	return res
}

// parseNt tries the viable alternatives of one instantiation in order.
// ok is false when none matched; err reports stream failures only.
func (c *parseContext) parseNt(inst analysis.Inst) (*Node, bool, error) {
	nt := &c.p.g.Nonterms[inst.Nonterm]
	look, e := c.buf.peek(0)
	if e != nil {
		return nil, false, e
	}

	for pi := range nt.Prods {
		if !c.p.a.ProdViable(inst, pi) {
			continue
		}

		prod := &nt.Prods[pi]
		if hasProse(prod) {
			continue
		}

		first := c.p.a.ProdFirst(inst, pi)
		if !c.p.a.ProdNullable(inst, pi) && (look.IsEof() || !first.Contains(look.Term)) {
			c.fail(c.buf.mark(), first)
			continue
		}

		mark := c.buf.mark()
		node, ok, e := c.matchProd(inst, prod)
		if e != nil {
			return nil, false, e
		}
		if ok {
			return node, true, nil
		}
		c.buf.rewind(mark)
	}
	return nil, false, nil
}

func hasProse(p *grammar.Production) bool {
	for _, sym := range p.Symbols {
		if sym.Kind == grammar.ProseSym {
			return true
		}
	}
	return false
}

func (c *parseContext) matchProd(inst analysis.Inst, prod *grammar.Production) (*Node, bool, error) {
	values := make([]*Node, len(prod.Symbols))
	gi := 0

	for si := 0; si <= len(prod.Symbols); si++ {
		for gi < len(prod.Guards) && prod.Guards[gi].At == si {
			ok, e := c.checkGuard(&prod.Guards[gi])
			if e != nil {
				return nil, false, e
			}
			if !ok {
				return nil, false, nil
			}
			gi++
		}

		if si == len(prod.Symbols) {
			break
		}

		v, ok, e := c.matchSymbol(inst, &prod.Symbols[si])
		if e != nil {
			return nil, false, e
		}
		if !ok {
			return nil, false, nil
		}
		values[si] = v
	}

	return c.eval(prod.Action, values), true, nil
}

func (c *parseContext) matchSymbol(inst analysis.Inst, sym *grammar.Symbol) (*Node, bool, error) {
	if sym.Kind == grammar.TermSym {
		return c.matchTerm(sym)
	}

	callee := analysis.Inst{Nonterm: sym.Index, Mask: analysis.InstMask(sym.Args, inst.Mask)}
	mark := c.buf.mark()
	node, ok, e := c.parseNt(callee)
	if e != nil {
		return nil, false, e
	}

	if ok && len(sym.Exclusions) > 0 {
		excluded, e := c.checkExclusions(sym, mark, c.buf.mark())
		if e != nil {
			return nil, false, e
		}
		if excluded {
			c.fail(mark, nil)
			ok = false
		}
	}

	if !ok {
		c.buf.rewind(mark)
		if sym.Optional {
			return &Node{Kind: AbsentNode}, true, nil
		}
		return nil, false, nil
	}
	return node, true, nil
}

func (c *parseContext) matchTerm(sym *grammar.Symbol) (*Node, bool, error) {
	t, e := c.buf.peek(0)
	if e != nil {
		return nil, false, e
	}

	if t.Term == sym.Index {
		excluded, e := c.textExcluded(sym.Exclusions, t.Text)
		if e != nil {
			return nil, false, e
		}
		if !excluded {
			c.buf.next()
			return tokenNode(t), true, nil
		}
		c.fail(c.buf.mark(), nil)
	} else {
		c.failTerm(c.buf.mark(), sym.Index)
	}

	if sym.Optional {
		return &Node{Kind: AbsentNode}, true, nil
	}
	return nil, false, nil
}

// checkExclusions tests "but not" clauses against the text a symbol
// consumed, tokens from through to on the buffer.
func (c *parseContext) checkExclusions(sym *grammar.Symbol, from, to int) (bool, error) {
	return c.textExcludedRange(sym.Exclusions, c.buf.text(from, to), from, to)
}

func (c *parseContext) textExcluded(exs []grammar.Exclusion, text string) (bool, error) {
	return c.textExcludedRange(exs, text, -1, -1)
}

func (c *parseContext) textExcludedRange(exs []grammar.Exclusion, text string, from, to int) (bool, error) {
	for _, ex := range exs {
		switch ex.Kind {
		case grammar.ExText:
			if text == ex.Text {
				return true, nil
			}

		case grammar.ExRange:
			r, size := utf8.DecodeRuneInString(text)
			if size == len(text) && r >= ex.Lo && r <= ex.Hi {
				return true, nil
			}

		case grammar.ExNonterm:
			if from < 0 {
				// a single token: match it against the excluded nonterminal
				from, to = c.buf.mark(), c.buf.mark()+1
			}
			matches, e := c.derivesExactly(analysis.Inst{Nonterm: ex.Index}, from, to)
			if e != nil {
				return false, e
			}
			if matches {
				return true, nil
			}
		}
	}
	return false, nil
}

// derivesExactly reports whether the instantiation derives exactly the
// buffered tokens in [from, to). The cursor is restored afterwards.
func (c *parseContext) derivesExactly(inst analysis.Inst, from, to int) (bool, error) {
	saved := c.buf.mark()
	savedFail, savedExpected := c.failPos, c.expected
	c.buf.rewind(from)

	_, ok, e := c.parseNt(inst)
	matched := ok && c.buf.mark() == to

	c.buf.rewind(saved)
	c.failPos, c.expected = savedFail, savedExpected
	return matched, e
}

func (c *parseContext) checkGuard(g *grammar.Guard) (bool, error) {
	t, e := c.buf.peek(0)
	if e != nil {
		return false, e
	}

	switch g.Kind {
	case grammar.LaEqGuard:
		if t.Term == g.Seqs[0][0] {
			return true, nil
		}
		c.failTerm(c.buf.mark(), g.Seqs[0][0])
		return false, nil

	case grammar.LaNeGuard:
		if t.Term != g.Seqs[0][0] {
			return true, nil
		}
		c.fail(c.buf.mark(), nil)
		return false, nil

	case grammar.LaNotSetGuard:
		for _, seq := range g.Seqs {
			matched, e := c.seqAhead(seq)
			if e != nil {
				return false, e
			}
			if matched {
				c.fail(c.buf.mark(), nil)
				return false, nil
			}
		}
		return true, nil

	case grammar.LaNotNtGuard:
		inst := analysis.Inst{Nonterm: g.Nonterm}
		if c.p.a.Nullable(inst) || (!t.IsEof() && c.p.a.First(inst).Contains(t.Term)) {
			c.fail(c.buf.mark(), nil)
			return false, nil
		}
		return true, nil
	}

	// NoLineBreakGuard
	if t.AfterBreak {
		c.fail(c.buf.mark(), nil)
		return false, nil
	}
	return true, nil
}

func (c *parseContext) seqAhead(seq []int) (bool, error) {
	for i, term := range seq {
		t, e := c.buf.peek(i)
		if e != nil {
			return false, e
		}
		if t.Term != term {
			return false, nil
		}
	}
	return true, nil
}

// eval applies a reduce action to the matched element values.
func (c *parseContext) eval(a *grammar.Action, values []*Node) *Node {
	switch a.Kind {
	case grammar.RefAction:
		return values[a.Ref]

	case grammar.NoneAction:
		return &Node{Kind: AbsentNode}

	case grammar.SomeAction:
		return &Node{Kind: SomeNode, Children: []*Node{c.eval(a.Args[0], values)}}
	}

	node := &Node{Kind: MethodNode, Method: a.Method}
	for _, arg := range a.Args {
		node.Children = append(node.Children, c.eval(arg, values))
	}
	return node
}
