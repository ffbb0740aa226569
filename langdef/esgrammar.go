package langdef

import (
	"strconv"
	"strings"

	"github.com/pgen-go/pgen/ast"
	"github.com/pgen-go/pgen/lexer"
)

// Single-character terminal abbreviations used by the esgrammar dialect.
var charNames = map[string]rune{
	"<ZWNJ>":   0x200c,
	"<ZWJ>":    0x200d,
	"<ZWNBSP>": 0xfeff,
	"<TAB>":    '\t',
	"<VT>":     '\v',
	"<FF>":     '\f',
	"<SP>":     ' ',
	"<NBSP>":   0xa0,
	"<LF>":     '\n',
	"<CR>":     '\r',
	"<LS>":     0x2028,
	"<PS>":     0x2029,
}

// parseESGrammar implements the newline-significant ECMArkup dialect:
// blocks of production lines separated by blank lines, "one of" terminal
// enumerations, parameterized heads, ifdef guards, lookahead assertions,
// and exclusion clauses.
func (c *parseContext) parseESGrammar() (*ast.Grammar, error) {
	g := &ast.Grammar{}
	returns := ""

	for {
		t, e := c.fetch([]string{nlTok, ntTok, ntCallTok, "@", lexer.EofTokenName}, true, nil)
		if e != nil {
			return nil, e
		}

		switch {
		case t.IsEof():
			return g, nil

		case t.KindName() == nlTok:
			continue

		case t.Text() == "@":
			returns, e = c.parseESReturns()
			if e != nil {
				return nil, e
			}

		default:
			def, e := c.parseESNtDef(t, returns)
			if e != nil {
				return nil, e
			}

			returns = ""
			g.Defs = append(g.Defs, def)
		}
	}
}

// parseESReturns consumes "@ returns Type" up to the end of line.
// The type is informational, tokens are joined verbatim.
func (c *parseContext) parseESReturns() (string, error) {
	e := c.skipOne("returns", nil)
	if e != nil {
		return "", e
	}

	parts := make([]string, 0, 4)
	for {
		t, e := c.fetchOne(nlTok, false, nil)
		if e != nil {
			return "", e
		}

		if t != nil {
			break
		}

		t, e = c.fetch([]string{ntTok, ntCallTok, kwTok, opTok}, true, nil)
		if e != nil {
			return "", e
		}

		parts = append(parts, t.Text())
	}

	return strings.Join(parts, ""), nil
}

func (c *parseContext) parseESNtDef(head *lexer.Token, returns string) (*ast.NtDef, error) {
	def := &ast.NtDef{Name: head.Text(), Returns: returns, Pos: head.Pos()}

	if head.KindName() == ntCallTok {
		def.Name = strings.TrimSuffix(head.Text(), "[")
		for {
			p, e := c.fetchOne(ntTok, true, nil)
			if e != nil {
				return nil, e
			}

			def.Params = append(def.Params, p.Text())
			t, e := c.fetch([]string{",", "]"}, true, nil)
			if e != nil {
				return nil, e
			}

			if t.Text() == "]" {
				break
			}
		}
	}

	eq, e := c.fetchOne(eqTok, true, nil)
	if e != nil {
		return nil, e
	}

	def.Eq = eq.Text()
	one, e := c.fetchOne("one", false, nil)
	if e != nil {
		return nil, e
	}

	if one != nil {
		e = c.skipOne("of", nil)
		e = c.skipOne(nlTok, e)
		if e != nil {
			return nil, e
		}

		def.OneOf = true
		return def, c.parseESOneOfLines(def)
	}

	e = c.skipOne(nlTok, nil)
	if e != nil {
		return nil, e
	}

	for {
		t, e := c.fetch([]string{nlTok, lexer.EofTokenName}, false, nil)
		if e != nil {
			return nil, e
		}

		if t != nil {
			// blank line or end of file terminates the definition
			return def, nil
		}

		prod, e := c.parseESRhsLine()
		if e != nil {
			return nil, e
		}

		def.Prods = append(def.Prods, prod)
	}
}

// parseESOneOfLines reads flat terminal rows, one production per terminal.
func (c *parseContext) parseESOneOfLines(def *ast.NtDef) error {
	for {
		t, e := c.fetch([]string{nlTok, lexer.EofTokenName}, false, nil)
		if e != nil {
			return e
		}

		if t != nil {
			return nil
		}

		for {
			t, e = c.fetch([]string{tTok, chrTok, nlTok, lexer.EofTokenName}, true, nil)
			if e != nil {
				return e
			}

			if t.KindName() == nlTok || t.IsEof() {
				break
			}

			term, e := c.esTerminal(t)
			if e != nil {
				return e
			}

			def.Prods = append(def.Prods, &ast.Prod{Terms: []ast.Term{term}, Pos: t.Pos()})
		}
	}
}

func (c *parseContext) esTerminal(t *lexer.Token) (ast.Term, error) {
	if t.KindName() == tTok {
		return ast.Terminal{Text: backtickText(t.Text())}, nil
	}

	r, e := c.esChar(t)
	if e != nil {
		return nil, e
	}
	return ast.CharTerm{Char: r}, nil
}

func (c *parseContext) esChar(t *lexer.Token) (rune, error) {
	text := t.Text()
	if text[0] == '<' {
		r, valid := charNames[text]
		if !valid {
			return 0, unknownCharNameError(t)
		}
		return r, nil
	}

	cp, err := strconv.ParseUint(text[2:], 16, 32)
	if err != nil {
		return 0, badCodePointError(t)
	}
	return rune(cp), nil
}

func backtickText(text string) string {
	if text == "```" {
		return "`"
	}
	return text[1 : len(text)-1]
}

func (c *parseContext) parseESRhsLine() (*ast.Prod, error) {
	prod := &ast.Prod{}
	first := true

	for {
		t, e := c.fetch([]string{
			tTok, chrTok, ntTok, ntCallTok, ntAltTok, proseTok, wProseTok,
			prodIdTok, "[", "=>", nlTok, lexer.EofTokenName,
		}, true, nil)
		if e != nil {
			return nil, e
		}

		if t.KindName() == nlTok || t.IsEof() {
			return prod, nil
		}

		if first {
			prod.Pos = t.Pos()
		}

		switch {
		case t.KindName() == prodIdTok:
			prod.ID = t.Text()[1:]
			first = false
			continue

		case t.Text() == "=>":
			prod.Action, e = c.parseESExpr()
			if e != nil {
				return nil, e
			}
			first = false
			continue

		case t.KindName() == proseTok:
			prod.Terms = append(prod.Terms, ast.Prose{Text: strings.TrimSpace(t.Text()[1:])})
			first = false
			continue

		case t.KindName() == wProseTok:
			text := t.Text()
			prod.Terms = append(prod.Terms, ast.Prose{Text: strings.TrimSpace(text[2 : len(text)-1])})
			first = false
			continue

		case t.Text() == "[":
			term, cond, e := c.parseESBracket()
			if e != nil {
				return nil, e
			}

			if cond != nil {
				if !first {
					return nil, unexpectedTokenError(t, "symbol")
				}
				prod.Cond = cond
			} else if term != nil {
				prod.Terms = append(prod.Terms, term)
			}
			// nil term and nil cond: [empty], contributes nothing
			first = false
			continue
		}

		term, e := c.parseESSymbol(t)
		if e != nil {
			return nil, e
		}

		term, e = c.parseESPostfix(term)
		if e != nil {
			return nil, e
		}

		prod.Terms = append(prod.Terms, term)
		first = false
	}
}

// parseESSymbol converts a leading token to a matchable symbol.
func (c *parseContext) parseESSymbol(t *lexer.Token) (ast.Term, error) {
	switch t.KindName() {
	case tTok, chrTok:
		return c.esTerminal(t)

	case ntAltTok:
		text := t.Text()
		return ast.Name{Name: text[1 : len(text)-1], Pos: t.Pos()}, nil

	case ntCallTok:
		return c.parseESCall(t)
	}

	return ast.Name{Name: t.Text(), Pos: t.Pos()}, nil
}

func (c *parseContext) parseESCall(t *lexer.Token) (ast.Term, error) {
	call := ast.Call{Name: strings.TrimSuffix(t.Text(), "["), Pos: t.Pos()}
	seen := map[string]bool{}

	for {
		sigil, e := c.fetch([]string{"+", "~", "?"}, true, nil)
		name, e := c.fetchOne(ntTok, true, e)
		if e != nil {
			return nil, e
		}

		if seen[name.Text()] {
			return nil, duplicateArgError(name, name.Text())
		}

		seen[name.Text()] = true
		mode := ast.ArgFalse
		switch sigil.Text() {
		case "+":
			mode = ast.ArgTrue
		case "?":
			mode = ast.ArgInherit
		}
		call.Args = append(call.Args, ast.Arg{Name: name.Text(), Mode: mode})

		next, e := c.fetch([]string{",", "]"}, true, nil)
		if e != nil {
			return nil, e
		}

		if next.Text() == "]" {
			return call, nil
		}
	}
}

// parseESPostfix applies "?" and "but not" suffixes to a parsed symbol.
func (c *parseContext) parseESPostfix(term ast.Term) (ast.Term, error) {
	opt, e := c.fetchOne("?", false, nil)
	if e != nil {
		return nil, e
	}

	if opt != nil {
		term = ast.Optional{Inner: term}
	}

	but, e := c.fetchOne("but", false, nil)
	if e != nil || but == nil {
		return term, e
	}

	e = c.skipOne("not", nil)
	if e != nil {
		return nil, e
	}

	one, e := c.fetchOne("one", false, nil)
	if e != nil {
		return nil, e
	}

	exclude := ast.Exclude{Inner: term}
	if one == nil {
		ex, e := c.parseESExclusion()
		if e != nil {
			return nil, e
		}

		exclude.Exclusions = []ast.Exclusion{ex}
		return exclude, nil
	}

	e = c.skipOne("of", nil)
	if e != nil {
		return nil, e
	}

	for {
		ex, e := c.parseESExclusion()
		if e != nil {
			return nil, e
		}

		exclude.Exclusions = append(exclude.Exclusions, ex)
		or, e := c.fetchOne("or", false, nil)
		if e != nil {
			return nil, e
		}

		if or == nil {
			return exclude, nil
		}
	}
}

func (c *parseContext) parseESExclusion() (ast.Exclusion, error) {
	t, e := c.fetch([]string{tTok, chrTok, ntTok}, true, nil)
	if e != nil {
		return nil, e
	}

	switch t.KindName() {
	case tTok:
		return ast.ExTerminal{Text: backtickText(t.Text())}, nil

	case ntTok:
		return ast.ExName{Name: t.Text()}, nil
	}

	lo, e := c.esChar(t)
	if e != nil {
		return nil, e
	}

	through, e := c.fetchOne("through", false, nil)
	if e != nil {
		return nil, e
	}

	if through == nil {
		return ast.ExTerminal{Text: string(lo)}, nil
	}

	hiTok, e := c.fetchOne(chrTok, true, nil)
	if e != nil {
		return nil, e
	}

	hi, e := c.esChar(hiTok)
	if e != nil {
		return nil, e
	}

	return ast.ExRange{Lo: lo, Hi: hi}, nil
}

// parseESBracket parses constructs opening with "[": ifdef guards,
// lookahead assertions, [no LineTerminator here], and [empty].
// Exactly one of the results is set; both nil means [empty].
func (c *parseContext) parseESBracket() (ast.Term, *ast.Cond, error) {
	t, e := c.fetch([]string{"+", "~", "lookahead", "no", "empty"}, true, nil)
	if e != nil {
		return nil, nil, e
	}

	switch t.Text() {
	case "+", "~":
		name, e := c.fetchOne(ntTok, true, nil)
		e = c.skipOne("]", e)
		if e != nil {
			return nil, nil, e
		}
		return nil, &ast.Cond{Param: name.Text(), Value: t.Text() == "+"}, nil

	case "empty":
		e = c.skipOne("]", nil)
		return nil, nil, e

	case "no":
		_, e = c.fetchOne(ntTok, true, nil)
		e = c.skipOne("here", e)
		e = c.skipOne("]", e)
		if e != nil {
			return nil, nil, e
		}
		return ast.NoLineTerm{}, nil, nil
	}

	la, e := c.parseESLookahead()
	if e != nil {
		return nil, nil, e
	}
	return ast.Lookahead{La: la}, nil, nil
}

func (c *parseContext) parseESLookahead() (ast.La, error) {
	t, e := c.fetch([]string{"==", "!=", "<!"}, true, nil)
	if e != nil {
		return nil, e
	}

	switch t.Text() {
	case "==", "!=":
		term, e := c.fetch([]string{tTok, chrTok}, true, nil)
		e = c.skipOne("]", e)
		if e != nil {
			return nil, e
		}

		text, e := c.esTerminalText(term)
		if e != nil {
			return nil, e
		}

		if t.Text() == "==" {
			return ast.LaEq{Terminal: text}, nil
		}
		return ast.LaNe{Terminal: text}, nil
	}

	t, e = c.fetch([]string{ntTok, "{"}, true, nil)
	if e != nil {
		return nil, e
	}

	if t.KindName() == ntTok {
		e = c.skipOne("]", nil)
		if e != nil {
			return nil, e
		}
		return ast.LaNotNt{Name: t.Text()}, nil
	}

	la := ast.LaNotInSet{}
	for {
		seq, e := c.parseESLaSeq()
		if e != nil {
			return nil, e
		}

		la.Seqs = append(la.Seqs, seq)
		t, e = c.fetch([]string{",", "}"}, true, nil)
		if e != nil {
			return nil, e
		}

		if t.Text() == "}" {
			break
		}
	}

	e = c.skipOne("]", nil)
	return la, e
}

func (c *parseContext) parseESLaSeq() ([]string, error) {
	seq := make([]string, 0, 2)
	for {
		t, e := c.fetch([]string{tTok, chrTok}, len(seq) == 0, nil)
		if e != nil {
			return nil, e
		}

		if t == nil {
			return seq, nil
		}

		text, e := c.esTerminalText(t)
		if e != nil {
			return nil, e
		}

		seq = append(seq, text)
	}
}

func (c *parseContext) esTerminalText(t *lexer.Token) (string, error) {
	if t.KindName() == tTok {
		return backtickText(t.Text()), nil
	}

	r, e := c.esChar(t)
	if e != nil {
		return "", e
	}
	return string(r), nil
}

// parseESExpr parses a reduce expression in the esgrammar dialect.
func (c *parseContext) parseESExpr() (*ast.Expr, error) {
	t, e := c.fetch([]string{refTok, ntTok, "Some", "None"}, true, nil)
	if e != nil {
		return nil, e
	}

	if t.KindName() == refTok {
		n, _ := strconv.Atoi(t.Text()[1:])
		return &ast.Expr{Kind: ast.RefExpr, Ref: n}, nil
	}

	switch t.Text() {
	case "None":
		return &ast.Expr{Kind: ast.NoneExpr}, nil

	case "Some":
		e = c.skipOne("(", nil)
		if e != nil {
			return nil, e
		}

		inner, e := c.parseESExpr()
		e = c.skipOne(")", e)
		if e != nil {
			return nil, e
		}
		return &ast.Expr{Kind: ast.SomeExpr, Args: []*ast.Expr{inner}}, nil
	}

	expr := &ast.Expr{Kind: ast.CallExpr, Name: t.Text()}
	paren, e := c.fetchOne("(", false, nil)
	if e != nil || paren == nil {
		return expr, e
	}

	closed, e := c.fetchOne(")", false, nil)
	if e != nil {
		return nil, e
	}

	for closed == nil {
		arg, e := c.parseESExpr()
		if e != nil {
			return nil, e
		}

		expr.Args = append(expr.Args, arg)
		t, e = c.fetch([]string{",", ")"}, true, nil)
		if e != nil {
			return nil, e
		}

		if t.Text() == ")" {
			break
		}
	}

	return expr, nil
}
