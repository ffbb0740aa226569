package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgen-go/pgen"
	"github.com/pgen-go/pgen/grammar"
	"github.com/pgen-go/pgen/langdef"
)

func analyzePgen(t *testing.T, content string) *Analysis {
	a, e := tryAnalyzePgen(t, content)
	require.NoError(t, e)
	return a
}

func tryAnalyzePgen(t *testing.T, content string) (*Analysis, error) {
	tree, e := langdef.ParsePgenString("test", content)
	require.NoError(t, e)
	g, e := grammar.Build(tree)
	require.NoError(t, e)
	return Analyze(g)
}

func analyzeES(t *testing.T, content string) *Analysis {
	tree, e := langdef.ParseESGrammarString("test", content)
	require.NoError(t, e)
	g, e := grammar.Build(tree)
	require.NoError(t, e)
	a, e := Analyze(g)
	require.NoError(t, e)
	return a
}

func first(t *testing.T, a *Analysis, i Inst) []string {
	var res []string
	for _, term := range a.First(i).ToSlice() {
		res = append(res, a.Grammar().TermName(term))
	}
	return res
}

func TestNullableAndFirst(t *testing.T) {
	a := analyzePgen(t, `
		goal nt stmt { attrs "x" ; }
		nt attrs {
			attr attrs;
			;
		}
		nt attr { "@" "a" ; }
	`)

	g := a.Grammar()
	stmt := Inst{Nonterm: g.NontermIndex("stmt")}
	attrs := Inst{Nonterm: g.NontermIndex("attrs")}
	attr := Inst{Nonterm: g.NontermIndex("attr")}

	assert.False(t, a.Nullable(stmt))
	assert.True(t, a.Nullable(attrs))
	assert.False(t, a.Nullable(attr))

	// nullable prefix lets the following terminal into FIRST
	assert.Equal(t, []string{`"x"`, `"@"`}, first(t, a, stmt))
	assert.Equal(t, []string{`"@"`}, first(t, a, attrs))
}

func TestProdFacts(t *testing.T) {
	a := analyzePgen(t, `
		goal nt list {
			"a" "b";
			"a" "c";
			;
		}
	`)

	list := Inst{}
	assert.True(t, a.ProdViable(list, 0))
	assert.False(t, a.ProdNullable(list, 0))
	assert.True(t, a.ProdNullable(list, 2))

	g := a.Grammar()
	assert.True(t, a.ProdFirst(list, 0).Contains(g.TermIndex("a")))
	assert.True(t, a.ProdFirst(list, 1).Contains(g.TermIndex("a")))
	assert.False(t, a.ProdFirst(list, 0).Contains(g.TermIndex("b")))
}

func TestInstantiations(t *testing.T) {
	a := analyzeES(t, ""+
		"Stmt :\n"+
		"    Expr[+In]\n"+
		"    Expr[~In]\n"+
		"\n"+
		"Expr[In] :\n"+
		"    [+In] `in`\n"+
		"    `x`\n")

	g := a.Grammar()
	expr := g.NontermIndex("Expr")
	assert.True(t, a.Has(Inst{Nonterm: expr, Mask: 0}))
	assert.True(t, a.Has(Inst{Nonterm: expr, Mask: 1}))
	assert.Len(t, a.Insts(), 3)

	// the guarded alternative exists only where In is set
	assert.True(t, a.ProdViable(Inst{Nonterm: expr, Mask: 1}, 0))
	assert.False(t, a.ProdViable(Inst{Nonterm: expr, Mask: 0}, 0))

	inTerm := g.TermIndex("in")
	assert.True(t, a.First(Inst{Nonterm: expr, Mask: 1}).Contains(inTerm))
	assert.False(t, a.First(Inst{Nonterm: expr, Mask: 0}).Contains(inTerm))
}

func TestInheritedParams(t *testing.T) {
	a := analyzeES(t, ""+
		"Goal :\n"+
		"    Outer[+P]\n"+
		"\n"+
		"Outer[P] :\n"+
		"    Inner[?P]\n"+
		"\n"+
		"Inner[P] :\n"+
		"    [+P] `p`\n"+
		"    [~P] `q`\n")

	g := a.Grammar()
	inner := g.NontermIndex("Inner")
	assert.True(t, a.Has(Inst{Nonterm: inner, Mask: 1}))
	assert.False(t, a.Has(Inst{Nonterm: inner, Mask: 0}))
}

func TestLookaheadNotInFirst(t *testing.T) {
	a := analyzeES(t, ""+
		"Stmt :\n"+
		"    [lookahead != `{`] `x`\n")

	// assertions stay runtime predicates, FIRST reflects consumed symbols only
	stmt := Inst{}
	g := a.Grammar()
	assert.True(t, a.First(stmt).Contains(g.TermIndex("x")))
	assert.Equal(t, 1, a.First(stmt).Len())
}

func TestProseExcluded(t *testing.T) {
	a := analyzeES(t, ""+
		"Any :\n"+
		"    `a`\n"+
		"    > any other code point\n")

	assert.False(t, a.Nullable(Inst{}))
	assert.Equal(t, 1, a.First(Inst{}).Len())
}

func TestRecursionError(t *testing.T) {
	_, e := tryAnalyzePgen(t, `
		goal nt expr { expr "+" term; term; }
		nt term { "x" ; }
	`)
	require.Error(t, e)
	assert.Equal(t, RecursionError, e.(*pgen.Error).Code)

	// recursion through a nullable prefix is still recursion
	_, e = tryAnalyzePgen(t, `
		goal nt a { b a "x" ; "y" ; }
		nt b { "z" ; ; }
	`)
	require.Error(t, e)
	assert.Equal(t, RecursionError, e.(*pgen.Error).Code)

	// right recursion is fine
	_, e = tryAnalyzePgen(t, `
		goal nt list { "x" list; ; }
	`)
	assert.NoError(t, e)
}

func TestAmbiguityError(t *testing.T) {
	_, e := tryAnalyzePgen(t, `
		goal nt a { "x" "y"; "x" "y"; }
	`)
	require.Error(t, e)
	assert.Equal(t, AmbiguousGrammarError, e.(*pgen.Error).Code)

	_, e = tryAnalyzePgen(t, `
		goal nt a { "x" ? ; ; }
	`)
	require.Error(t, e)
	assert.Equal(t, AmbiguousGrammarError, e.(*pgen.Error).Code)

	// a shared prefix alone is not ambiguous, it parses with more lookahead
	_, e = tryAnalyzePgen(t, `
		goal nt a { "x" "y"; "x" "z"; }
	`)
	assert.NoError(t, e)
}

func TestCondSeparatesDuplicates(t *testing.T) {
	// identical bodies under disjoint guards never compete
	a := analyzeES(t, ""+
		"Stmt[Yield] :\n"+
		"    [+Yield] `x`\n"+
		"    [~Yield] `x`\n")
	assert.NotNil(t, a)
}
