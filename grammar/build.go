package grammar

import (
	"strconv"

	"github.com/pgen-go/pgen/ast"
	"github.com/pgen-go/pgen/source"
)

// Build compiles a syntax tree into a Grammar. Name resolution,
// parameter binding checks, and default action synthesis happen here.
func Build(tree *ast.Grammar) (*Grammar, error) {
	if len(tree.Defs) == 0 {
		return nil, noDefsError(treeName(tree))
	}

	b := &builder{
		g:        &Grammar{},
		tree:     tree,
		ntIndex:  map[string]int{},
		varTerms: map[string]int{},
		litTerms: map[string]int{},
	}

	e := b.collectTokens()
	if e == nil {
		e = b.collectNonterms()
	}
	if e == nil {
		e = b.buildDefs()
	}
	if e == nil {
		e = b.resolveGoals()
	}
	if e != nil {
		return nil, e
	}

	return b.g, nil
}

func treeName(tree *ast.Grammar) string {
	if len(tree.Defs) > 0 {
		return tree.Defs[0].Pos.SourceName()
	}
	if len(tree.Tokens) > 0 {
		return tree.Tokens[0].Pos.SourceName()
	}
	return "grammar"
}

type builder struct {
	g        *Grammar
	tree     *ast.Grammar
	ntIndex  map[string]int
	varTerms map[string]int
	litTerms map[string]int
	// def currently being compiled, for parameter lookups
	def *ast.NtDef
}

func (b *builder) collectTokens() error {
	names := map[string]bool{}
	for _, decl := range b.tree.Tokens {
		if names[decl.Name] {
			return redefinedTokenError(decl.Pos, decl.Name)
		}
		names[decl.Name] = true

		if decl.Var {
			b.varTerms[decl.Name] = b.addTerm(Term{Name: decl.Name, Flags: VarTerm})
			continue
		}

		if _, has := b.litTerms[decl.Literal]; has {
			return redefinedTokenError(decl.Pos, decl.Name)
		}
		b.litTerms[decl.Literal] = b.addTerm(Term{Name: decl.Name, Text: decl.Literal, Flags: LiteralTerm})
	}
	return nil
}

func (b *builder) collectNonterms() error {
	for _, def := range b.tree.Defs {
		if _, has := b.ntIndex[def.Name]; has {
			return redefinedNontermError(def.Pos, def.Name)
		}
		if _, has := b.varTerms[def.Name]; has {
			return redefinedTokenError(def.Pos, def.Name)
		}

		b.ntIndex[def.Name] = len(b.g.Nonterms)
		b.g.Nonterms = append(b.g.Nonterms, Nonterm{
			Name:    def.Name,
			Params:  def.Params,
			Lexical: def.Eq == "::",
		})
	}

	// Lexical definitions referenced from syntactic ones are matched as
	// whole tokens, so they double as variable terminals.
	for _, def := range b.tree.Defs {
		if def.Eq != "::" {
			continue
		}
		if b.referencedSyntactically(def.Name) {
			b.varTerms[def.Name] = b.addTerm(Term{Name: def.Name, Flags: VarTerm})
		}
	}
	return nil
}

func (b *builder) referencedSyntactically(name string) bool {
	for _, def := range b.tree.Defs {
		if def.Eq == "::" {
			continue
		}
		for _, prod := range def.Prods {
			for _, term := range prod.Terms {
				if refersTo(term, name) {
					return true
				}
			}
		}
	}
	return false
}

func refersTo(term ast.Term, name string) bool {
	switch t := term.(type) {
	case ast.Name:
		return t.Name == name
	case ast.Call:
		return t.Name == name
	case ast.Optional:
		return refersTo(t.Inner, name)
	case ast.Exclude:
		return refersTo(t.Inner, name)
	}
	return false
}

func (b *builder) addTerm(t Term) int {
	b.g.Terms = append(b.g.Terms, t)
	return len(b.g.Terms) - 1
}

// internLiteral returns the terminal index for an exact text, adding an
// implicit literal entry when no token declaration covers it.
func (b *builder) internLiteral(text string) int {
	i, has := b.litTerms[text]
	if !has {
		i = b.addTerm(Term{Name: strconv.Quote(text), Text: text, Flags: LiteralTerm})
		b.litTerms[text] = i
	}
	return i
}

func (b *builder) internChar(c rune) int {
	text := string(c)
	i, has := b.litTerms[text]
	if !has {
		i = b.addTerm(Term{Name: "U+" + strconv.FormatInt(int64(c), 16), Text: text, Flags: LiteralTerm | CharTerm})
		b.litTerms[text] = i
	}
	return i
}

func (b *builder) buildDefs() error {
	for di, def := range b.tree.Defs {
		b.def = def
		nt := &b.g.Nonterms[di]
		for pi, prod := range def.Prods {
			p, e := b.buildProd(def, pi, prod)
			if e != nil {
				return e
			}
			nt.Prods = append(nt.Prods, *p)
		}
	}
	return nil
}

func (b *builder) buildProd(def *ast.NtDef, index int, prod *ast.Prod) (*Production, error) {
	p := &Production{ID: prod.ID}

	if prod.Cond != nil {
		pi := paramIndex(def.Params, prod.Cond.Param)
		if pi < 0 {
			return nil, unknownParamError(prod.Pos, def.Name, prod.Cond.Param)
		}
		p.Cond = &Cond{Param: pi, Value: prod.Cond.Value}
	}

	for _, term := range prod.Terms {
		e := b.buildTerm(p, prod.Pos, term)
		if e != nil {
			return nil, e
		}
	}

	var e error
	p.Action, e = b.buildAction(def, index, prod, p)
	return p, e
}

func (b *builder) buildTerm(p *Production, pos source.Pos, term ast.Term) error {
	switch t := term.(type) {
	case ast.Lookahead:
		return b.buildLookahead(p, pos, t.La)

	case ast.NoLineTerm:
		p.Guards = append(p.Guards, Guard{At: len(p.Symbols), Kind: NoLineBreakGuard})
		return nil

	case ast.Optional:
		e := b.buildTerm(p, pos, t.Inner)
		if e == nil {
			p.Symbols[len(p.Symbols)-1].Optional = true
		}
		return e

	case ast.Exclude:
		e := b.buildTerm(p, pos, t.Inner)
		if e != nil {
			return e
		}
		sym := &p.Symbols[len(p.Symbols)-1]
		for _, ex := range t.Exclusions {
			compiled, e := b.buildExclusion(pos, ex)
			if e != nil {
				return e
			}
			sym.Exclusions = append(sym.Exclusions, compiled)
		}
		return nil
	}

	sym, e := b.buildSymbol(pos, term)
	if e == nil {
		p.Symbols = append(p.Symbols, *sym)
	}
	return e
}

func (b *builder) buildSymbol(pos source.Pos, term ast.Term) (*Symbol, error) {
	switch t := term.(type) {
	case ast.Terminal:
		return &Symbol{Kind: TermSym, Index: b.internLiteral(t.Text)}, nil

	case ast.CharTerm:
		return &Symbol{Kind: TermSym, Index: b.internChar(t.Char)}, nil

	case ast.Prose:
		return &Symbol{Kind: ProseSym, Text: t.Text}, nil

	case ast.Name:
		if vi, has := b.varTerms[t.Name]; has {
			ni, isNt := b.ntIndex[t.Name]
			// lexical nonterminals referenced from lexical definitions
			// expand in place rather than matching a whole token
			if isNt && b.def.Eq == "::" {
				return b.nontermSymbol(t.Pos, ni, nil)
			}
			return &Symbol{Kind: TermSym, Index: vi}, nil
		}

		ni, has := b.ntIndex[t.Name]
		if !has {
			return nil, undefinedNameError(t.Pos, t.Name)
		}
		return b.nontermSymbol(t.Pos, ni, nil)

	case ast.Call:
		ni, has := b.ntIndex[t.Name]
		if !has {
			return nil, undefinedNameError(t.Pos, t.Name)
		}
		return b.nontermSymbol(t.Pos, ni, t.Args)
	}

	return nil, undefinedNameError(pos, "symbol")
}

// nontermSymbol binds call arguments against the callee parameter list.
// Every callee parameter must be bound, a bare reference to a
// parameterized nonterminal is an arity error too.
func (b *builder) nontermSymbol(pos source.Pos, nt int, args []ast.Arg) (*Symbol, error) {
	callee := &b.g.Nonterms[nt]
	if len(args) != len(callee.Params) {
		return nil, wrongArgCountError(pos, callee.Name, len(args), len(callee.Params))
	}

	sym := &Symbol{Kind: NontermSym, Index: nt}
	for _, arg := range args {
		pi := paramIndex(callee.Params, arg.Name)
		if pi < 0 {
			return nil, unknownParamError(pos, callee.Name, arg.Name)
		}

		a := Arg{Param: pi}
		switch arg.Mode {
		case ast.ArgTrue:
			a.Source = ArgTrue

		case ast.ArgInherit:
			from := paramIndex(b.def.Params, arg.Name)
			if from < 0 {
				return nil, unboundParamError(pos, arg.Name)
			}
			a.Source = ArgInherit
			a.From = from
		}
		sym.Args = append(sym.Args, a)
	}
	return sym, nil
}

func (b *builder) buildExclusion(pos source.Pos, ex ast.Exclusion) (Exclusion, error) {
	switch x := ex.(type) {
	case ast.ExTerminal:
		return Exclusion{Kind: ExText, Text: x.Text}, nil

	case ast.ExRange:
		return Exclusion{Kind: ExRange, Lo: x.Lo, Hi: x.Hi}, nil

	case ast.ExName:
		ni, has := b.ntIndex[x.Name]
		if !has {
			return Exclusion{}, undefinedNameError(pos, x.Name)
		}
		return Exclusion{Kind: ExNonterm, Index: ni}, nil
	}
	return Exclusion{}, undefinedNameError(pos, "exclusion")
}

func (b *builder) buildLookahead(p *Production, pos source.Pos, la ast.La) error {
	g := Guard{At: len(p.Symbols)}

	switch l := la.(type) {
	case ast.LaEq:
		g.Kind = LaEqGuard
		g.Seqs = [][]int{{b.internLiteral(l.Terminal)}}

	case ast.LaNe:
		g.Kind = LaNeGuard
		g.Seqs = [][]int{{b.internLiteral(l.Terminal)}}

	case ast.LaNotNt:
		ni, has := b.ntIndex[l.Name]
		if !has {
			return undefinedNameError(pos, l.Name)
		}
		g.Kind = LaNotNtGuard
		g.Nonterm = ni

	case ast.LaNotInSet:
		g.Kind = LaNotSetGuard
		for _, seq := range l.Seqs {
			ids := make([]int, len(seq))
			for i, text := range seq {
				ids[i] = b.internLiteral(text)
			}
			g.Seqs = append(g.Seqs, ids)
		}
	}

	p.Guards = append(p.Guards, g)
	return nil
}

// buildAction compiles the reduce expression, or synthesizes the default:
// the sole value-producing element when there is exactly one, a builder
// method named after the nonterminal otherwise.
func (b *builder) buildAction(def *ast.NtDef, index int, prod *ast.Prod, p *Production) (*Action, error) {
	if prod.Action != nil {
		return b.buildExpr(prod.Pos, prod.Action, len(p.Symbols))
	}

	concrete := -1
	count := 0
	for i, sym := range p.Symbols {
		if producesValue(b.g, sym) {
			concrete = i
			count++
		}
	}

	if count == 1 {
		return &Action{Kind: RefAction, Ref: concrete}, nil
	}
	// a lone literal still passes its token through, one-of
	// enumerations rely on this
	if count == 0 && len(p.Symbols) == 1 {
		return &Action{Kind: RefAction, Ref: 0}, nil
	}

	name := def.Name
	if prod.ID != "" {
		name = prod.ID
	} else if len(def.Prods) > 1 {
		name += "_p" + strconv.Itoa(index)
	}

	act := &Action{Kind: MethodAction, Method: name}
	for i, sym := range p.Symbols {
		if producesValue(b.g, sym) {
			act.Args = append(act.Args, &Action{Kind: RefAction, Ref: i})
		}
	}
	return act, nil
}

// producesValue reports whether a matched symbol carries a value:
// nonterminals, variable terminals, and optional symbols do, fixed
// literals and prose do not.
func producesValue(g *Grammar, sym Symbol) bool {
	if sym.Kind == ProseSym {
		return false
	}
	if sym.Optional || sym.Kind == NontermSym {
		return true
	}
	return g.Terms[sym.Index].Flags&VarTerm != 0
}

func (b *builder) buildExpr(pos source.Pos, expr *ast.Expr, max int) (*Action, error) {
	switch expr.Kind {
	case ast.RefExpr:
		if expr.Ref >= max {
			return nil, badRefError(pos, expr.Ref, max)
		}
		return &Action{Kind: RefAction, Ref: expr.Ref}, nil

	case ast.NoneExpr:
		return &Action{Kind: NoneAction}, nil

	case ast.SomeExpr:
		inner, e := b.buildExpr(pos, expr.Args[0], max)
		if e != nil {
			return nil, e
		}
		return &Action{Kind: SomeAction, Args: []*Action{inner}}, nil
	}

	act := &Action{Kind: MethodAction, Method: expr.Name}
	for _, arg := range expr.Args {
		a, e := b.buildExpr(pos, arg, max)
		if e != nil {
			return nil, e
		}
		act.Args = append(act.Args, a)
	}
	return act, nil
}

func (b *builder) resolveGoals() error {
	for _, name := range b.tree.Goals {
		ni, has := b.ntIndex[name]
		if !has {
			return unknownGoalError(name)
		}
		b.g.Goals = append(b.g.Goals, ni)
	}

	// first definition is the root when nothing is marked
	if len(b.g.Goals) == 0 {
		b.g.Goals = []int{0}
	}
	return nil
}

func paramIndex(params []string, name string) int {
	for i, p := range params {
		if p == name {
			return i
		}
	}
	return -1
}
