// Package analysis derives static facts from a compiled grammar: the set
// of reachable parameter instantiations, per-instantiation nullability and
// FIRST sets, and structural defects such as left recursion and
// indistinguishable alternatives.
package analysis

import (
	"github.com/pgen-go/pgen/grammar"
	"github.com/pgen-go/pgen/internal/ints"
)

// Parameter values of one instantiation are packed into a bit mask.
const maxParams = 32

// Inst identifies a nonterminal instantiated with concrete parameter
// values: bit i of Mask is the value of Params[i].
type Inst struct {
	Nonterm int
	Mask    uint32
}

// InstMask computes the callee mask for a call site: explicit bindings
// set bits directly, inherited ones copy the caller's bit.
func InstMask(args []grammar.Arg, caller uint32) uint32 {
	var mask uint32
	for _, arg := range args {
		switch arg.Source {
		case grammar.ArgTrue:
			mask |= 1 << arg.Param

		case grammar.ArgInherit:
			if caller&(1<<arg.From) != 0 {
				mask |= 1 << arg.Param
			}
		}
	}
	return mask
}

type instData struct {
	nullable bool
	first    *ints.Set
	// per-production facts, indexed like Nonterm.Prods
	prodNullable []bool
	prodFirst    []*ints.Set
	prodViable   []bool
}

// Analysis holds the computed facts for every instantiation reachable
// from the grammar goals.
type Analysis struct {
	g     *grammar.Grammar
	insts map[Inst]*instData
	order []Inst
}

// Analyze discovers all instantiations reachable from the goals, runs the
// nullability and FIRST fixed point, and checks the grammar for left
// recursion and indistinguishable alternatives. The returned Analysis is
// valid even when an error is reported, errors describe the first defect.
func Analyze(g *grammar.Grammar) (*Analysis, error) {
	for i := range g.Nonterms {
		if len(g.Nonterms[i].Params) > maxParams {
			return nil, tooManyParamsError(g.Nonterms[i].Name, len(g.Nonterms[i].Params))
		}
	}

	a := &Analysis{g: g, insts: map[Inst]*instData{}}
	for _, goal := range g.Goals {
		a.discover(Inst{Nonterm: goal})
	}

	a.fixPoint()
	e := a.checkRecursion()
	if e == nil {
		e = a.checkAmbiguity()
	}
	return a, e
}

// Grammar returns the analyzed grammar.
func (a *Analysis) Grammar() *grammar.Grammar {
	return a.g
}

// Insts lists the reachable instantiations in discovery order.
func (a *Analysis) Insts() []Inst {
	return a.order
}

// Has reports whether the instantiation is reachable from a goal.
func (a *Analysis) Has(i Inst) bool {
	_, has := a.insts[i]
	return has
}

// Nullable reports whether the instantiation derives the empty sequence.
func (a *Analysis) Nullable(i Inst) bool {
	d := a.insts[i]
	return d != nil && d.nullable
}

// First returns the instantiation's FIRST set of terminal indices.
// Lookahead guards are not folded in, they stay runtime predicates.
func (a *Analysis) First(i Inst) *ints.Set {
	d := a.insts[i]
	if d == nil {
		return ints.NewSet()
	}
	return d.first
}

// ProdViable reports whether production p of the instantiation passes its
// parameter guard.
func (a *Analysis) ProdViable(i Inst, p int) bool {
	d := a.insts[i]
	return d != nil && d.prodViable[p]
}

// ProdNullable reports whether production p can match the empty sequence.
func (a *Analysis) ProdNullable(i Inst, p int) bool {
	d := a.insts[i]
	return d != nil && d.prodNullable[p]
}

// ProdFirst returns the FIRST set of production p at the instantiation.
func (a *Analysis) ProdFirst(i Inst, p int) *ints.Set {
	d := a.insts[i]
	if d == nil {
		return ints.NewSet()
	}
	return d.prodFirst[p]
}

func (a *Analysis) discover(i Inst) *instData {
	d, has := a.insts[i]
	if has {
		return d
	}

	nt := &a.g.Nonterms[i.Nonterm]
	d = &instData{
		first:        ints.NewSet(),
		prodNullable: make([]bool, len(nt.Prods)),
		prodFirst:    make([]*ints.Set, len(nt.Prods)),
		prodViable:   make([]bool, len(nt.Prods)),
	}
	a.insts[i] = d
	a.order = append(a.order, i)

	for pi := range nt.Prods {
		prod := &nt.Prods[pi]
		d.prodFirst[pi] = ints.NewSet()
		d.prodViable[pi] = condHolds(prod.Cond, i.Mask)
		if !d.prodViable[pi] {
			continue
		}

		for _, sym := range prod.Symbols {
			if sym.Kind == grammar.NontermSym {
				a.discover(Inst{sym.Index, InstMask(sym.Args, i.Mask)})
			}
			for _, ex := range sym.Exclusions {
				if ex.Kind == grammar.ExNonterm {
					a.discover(Inst{Nonterm: ex.Index})
				}
			}
		}
		for _, g := range prod.Guards {
			if g.Kind == grammar.LaNotNtGuard {
				a.discover(Inst{Nonterm: g.Nonterm})
			}
		}
	}
	return d
}

func condHolds(c *grammar.Cond, mask uint32) bool {
	return c == nil || (mask&(1<<c.Param) != 0) == c.Value
}

// fixPoint iterates nullability and FIRST propagation until stable.
func (a *Analysis) fixPoint() {
	for changed := true; changed; {
		changed = false
		for _, i := range a.order {
			if a.update(i) {
				changed = true
			}
		}
	}
}

func (a *Analysis) update(i Inst) bool {
	d := a.insts[i]
	nt := &a.g.Nonterms[i.Nonterm]
	changed := false

	for pi := range nt.Prods {
		if !d.prodViable[pi] {
			continue
		}

		prod := &nt.Prods[pi]
		if hasProse(prod) {
			continue
		}

		nullable := true
		for _, sym := range prod.Symbols {
			symFirst, symNullable := a.symbolFacts(sym, i.Mask)
			if d.prodFirst[pi].Union(symFirst) {
				changed = true
			}
			if !symNullable {
				nullable = false
				break
			}
		}

		if nullable && !d.prodNullable[pi] {
			d.prodNullable[pi] = true
			changed = true
		}

		if d.first.Union(d.prodFirst[pi]) {
			changed = true
		}
		if d.prodNullable[pi] && !d.nullable {
			d.nullable = true
			changed = true
		}
	}
	return changed
}

// hasProse reports whether a production contains a prose fragment.
// Such productions never match input and are excluded from the facts.
func hasProse(p *grammar.Production) bool {
	for _, sym := range p.Symbols {
		if sym.Kind == grammar.ProseSym {
			return true
		}
	}
	return false
}

func (a *Analysis) symbolFacts(sym grammar.Symbol, caller uint32) (*ints.Set, bool) {
	if sym.Kind == grammar.TermSym {
		return ints.NewSet(sym.Index), sym.Optional
	}

	d := a.insts[Inst{sym.Index, InstMask(sym.Args, caller)}]
	return d.first, sym.Optional || d.nullable
}

// checkRecursion reports an instantiation that can derive itself before
// consuming any input. Such grammars cannot be parsed by descent.
func (a *Analysis) checkRecursion() error {
	const (
		unseen = iota
		active
		done
	)

	state := map[Inst]int{}
	var visit func(i Inst) error
	visit = func(i Inst) error {
		switch state[i] {
		case done:
			return nil
		case active:
			return recursionError(a.g.Nonterms[i.Nonterm].Name)
		}

		state[i] = active
		d := a.insts[i]
		nt := &a.g.Nonterms[i.Nonterm]
		for pi := range nt.Prods {
			if !d.prodViable[pi] {
				continue
			}
			prod := &nt.Prods[pi]
			if hasProse(prod) {
				continue
			}

			for _, sym := range prod.Symbols {
				if sym.Kind == grammar.NontermSym {
					next := Inst{sym.Index, InstMask(sym.Args, i.Mask)}
					if e := visit(next); e != nil {
						return e
					}
				}

				if _, nullable := a.symbolFacts(sym, i.Mask); !nullable {
					break
				}
			}
		}
		state[i] = done
		return nil
	}

	for _, i := range a.order {
		if e := visit(i); e != nil {
			return e
		}
	}
	return nil
}

// checkAmbiguity reports alternatives no amount of lookahead separates:
// two viable unguarded productions with identical instantiated bodies, or
// two viable productions that both derive the empty sequence.
func (a *Analysis) checkAmbiguity() error {
	for _, i := range a.order {
		d := a.insts[i]
		nt := &a.g.Nonterms[i.Nonterm]

		firstNullable := -1
		for pi := range nt.Prods {
			if !d.prodViable[pi] || hasProse(&nt.Prods[pi]) {
				continue
			}

			if d.prodNullable[pi] {
				if firstNullable >= 0 {
					return ambiguousGrammarError(nt.Name, "two alternatives match the empty sequence")
				}
				firstNullable = pi
			}

			for pj := pi + 1; pj < len(nt.Prods); pj++ {
				if !d.prodViable[pj] || hasProse(&nt.Prods[pj]) {
					continue
				}
				if a.sameBody(&nt.Prods[pi], &nt.Prods[pj], i.Mask) {
					return ambiguousGrammarError(nt.Name, "duplicate alternatives")
				}
			}
		}
	}
	return nil
}

// sameBody compares two guard-free productions element by element under
// one instantiation. Guarded productions are separable at run time.
func (a *Analysis) sameBody(p, q *grammar.Production, mask uint32) bool {
	if len(p.Guards) > 0 || len(q.Guards) > 0 {
		return false
	}
	if len(p.Symbols) != len(q.Symbols) {
		return false
	}

	for i := range p.Symbols {
		ps, qs := p.Symbols[i], q.Symbols[i]
		if ps.Kind != qs.Kind || ps.Index != qs.Index || ps.Optional != qs.Optional {
			return false
		}
		if len(ps.Exclusions) != len(qs.Exclusions) {
			return false
		}
		if ps.Kind == grammar.NontermSym &&
			InstMask(ps.Args, mask) != InstMask(qs.Args, mask) {
			return false
		}
	}
	return true
}
