package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgen-go/pgen"
	"github.com/pgen-go/pgen/langdef"
)

func buildPgen(t *testing.T, content string) *Grammar {
	tree, e := langdef.ParsePgenString("test", content)
	require.NoError(t, e)
	g, e := Build(tree)
	require.NoError(t, e)
	return g
}

func buildES(t *testing.T, content string) *Grammar {
	tree, e := langdef.ParseESGrammarString("test", content)
	require.NoError(t, e)
	g, e := Build(tree)
	require.NoError(t, e)
	return g
}

func pgenError(t *testing.T, content string) *pgen.Error {
	tree, e := langdef.ParsePgenString("test", content)
	require.NoError(t, e)
	_, e = Build(tree)
	require.Error(t, e)
	return e.(*pgen.Error)
}

func esError(t *testing.T, content string) *pgen.Error {
	tree, e := langdef.ParseESGrammarString("test", content)
	require.NoError(t, e)
	_, e = Build(tree)
	require.Error(t, e)
	return e.(*pgen.Error)
}

func TestTerms(t *testing.T) {
	g := buildPgen(t, `
		token semi = ";";
		var token name;
		goal nt stmt { name ";" "!" ; }
	`)

	require.Len(t, g.Terms, 3)
	assert.Equal(t, Term{Name: "semi", Text: ";", Flags: LiteralTerm}, g.Terms[0])
	assert.Equal(t, Term{Name: "name", Flags: VarTerm}, g.Terms[1])
	// "!" is interned implicitly
	assert.Equal(t, LiteralTerm, g.Terms[2].Flags)
	assert.Equal(t, "!", g.Terms[2].Text)

	assert.Equal(t, 0, g.TermIndex(";"))
	assert.Equal(t, -1, g.TermIndex("?"))

	prod := g.Nonterms[0].Prods[0]
	require.Len(t, prod.Symbols, 3)
	assert.Equal(t, Symbol{Kind: TermSym, Index: 1}, prod.Symbols[0])
	assert.Equal(t, Symbol{Kind: TermSym, Index: 0}, prod.Symbols[1])
}

func TestGoals(t *testing.T) {
	g := buildPgen(t, `
		goal nt a { "x" ; }
		goal nt b { a ; }
	`)
	assert.Equal(t, []int{0, 1}, g.Goals)

	// without markers the first definition is the goal
	g = buildPgen(t, `nt a { "x" ; }`)
	assert.Equal(t, []int{0}, g.Goals)
}

func TestDefaultActions(t *testing.T) {
	g := buildPgen(t, `
		var token name;
		nt single { "(" name ")" ; }
		nt multi {
			name name;
			;
		}
	`)

	// one value-producing element: its value is passed through
	act := g.Nonterms[0].Prods[0].Action
	assert.Equal(t, &Action{Kind: RefAction, Ref: 1}, act)

	// several: a synthesized method collects them
	act = g.Nonterms[1].Prods[0].Action
	require.Equal(t, MethodAction, act.Kind)
	assert.Equal(t, "multi_p0", act.Method)
	require.Len(t, act.Args, 2)
	assert.Equal(t, &Action{Kind: RefAction, Ref: 0}, act.Args[0])

	act = g.Nonterms[1].Prods[1].Action
	assert.Equal(t, "multi_p1", act.Method)
	assert.Empty(t, act.Args)
}

func TestParamBinding(t *testing.T) {
	g := buildES(t, ""+
		"Stmt[Yield] :\n"+
		"    Expr[+In, ?Yield]\n"+
		"\n"+
		"Expr[In, Yield] :\n"+
		"    `x`\n")

	sym := g.Nonterms[0].Prods[0].Symbols[0]
	require.Equal(t, NontermSym, sym.Kind)
	assert.Equal(t, 1, sym.Index)
	require.Len(t, sym.Args, 2)
	assert.Equal(t, Arg{Param: 0, Source: ArgTrue}, sym.Args[0])
	assert.Equal(t, Arg{Param: 1, Source: ArgInherit, From: 0}, sym.Args[1])
}

func TestConds(t *testing.T) {
	g := buildES(t, ""+
		"Stmt[Await] :\n"+
		"    [+Await] `await` `x`\n"+
		"    [~Await] `x`\n")

	prods := g.Nonterms[0].Prods
	assert.Equal(t, &Cond{Param: 0, Value: true}, prods[0].Cond)
	assert.Equal(t, &Cond{Param: 0, Value: false}, prods[1].Cond)
}

func TestVarTermInference(t *testing.T) {
	g := buildES(t, ""+
		"Script :\n"+
		"    IdentifierName `;`\n"+
		"\n"+
		"IdentifierName ::\n"+
		"    IdentifierStart\n"+
		"\n"+
		"IdentifierStart ::\n"+
		"    `_`\n")

	// IdentifierName is matched as a whole token from syntactic context
	sym := g.Nonterms[0].Prods[0].Symbols[0]
	assert.Equal(t, TermSym, sym.Kind)
	assert.Equal(t, VarTerm, g.Terms[sym.Index].Flags&VarTerm)
	assert.Equal(t, "IdentifierName", g.Terms[sym.Index].Name)

	// but expands in place inside other lexical definitions
	sym = g.Nonterms[1].Prods[0].Symbols[0]
	assert.Equal(t, NontermSym, sym.Kind)
	assert.Equal(t, 2, sym.Index)
}

func TestGuardsCompiled(t *testing.T) {
	g := buildES(t, ""+
		"Stmt :\n"+
		"    [lookahead <! {`function`, `async` `function`}] `x`\n"+
		"    `return` [no LineTerminator here] `x`\n")

	prods := g.Nonterms[0].Prods
	require.Len(t, prods[0].Guards, 1)
	guard := prods[0].Guards[0]
	assert.Equal(t, LaNotSetGuard, guard.Kind)
	assert.Equal(t, 0, guard.At)
	require.Len(t, guard.Seqs, 2)
	assert.Len(t, guard.Seqs[1], 2)

	require.Len(t, prods[1].Guards, 1)
	guard = prods[1].Guards[0]
	assert.Equal(t, NoLineBreakGuard, guard.Kind)
	assert.Equal(t, 1, guard.At)
}

func TestRefsSkipAssertions(t *testing.T) {
	// $n counts matched elements only, zero-width assertions do not shift it
	g := buildES(t, ""+
		"Stmt :\n"+
		"    [lookahead != `{`] `do` Expr => stmt($1)\n"+
		"\n"+
		"Expr :\n"+
		"    `x`\n")

	prod := g.Nonterms[0].Prods[0]
	require.Len(t, prod.Symbols, 2)
	require.Len(t, prod.Guards, 1)

	act := prod.Action
	require.Equal(t, MethodAction, act.Kind)
	require.Len(t, act.Args, 1)
	assert.Equal(t, &Action{Kind: RefAction, Ref: 1}, act.Args[0])
}

func TestExclusionsCompiled(t *testing.T) {
	g := buildES(t, ""+
		"Id ::\n"+
		"    Word but not one of `if` or Reserved or U+0030 through U+0039\n"+
		"\n"+
		"Word ::\n"+
		"    `w`\n"+
		"\n"+
		"Reserved ::\n"+
		"    `r`\n")

	sym := g.Nonterms[0].Prods[0].Symbols[0]
	require.Len(t, sym.Exclusions, 3)
	assert.Equal(t, Exclusion{Kind: ExText, Text: "if"}, sym.Exclusions[0])
	assert.Equal(t, Exclusion{Kind: ExNonterm, Index: 2}, sym.Exclusions[1])
	assert.Equal(t, Exclusion{Kind: ExRange, Lo: '0', Hi: '9'}, sym.Exclusions[2])
}

func TestBuildErrors(t *testing.T) {
	samples := []struct {
		name string
		err  *pgen.Error
		code int
	}{
		{"undefined", pgenError(t, `nt a { b ; }`), UndefinedNameError},
		{"redefined nt", pgenError(t, `nt a { "x" ; } nt a { "y" ; }`), RedefinedNontermError},
		{"redefined token", pgenError(t, `var token x; var token x; nt a { ; }`), RedefinedTokenError},
		{"duplicate literal", pgenError(t, `token a = "x"; token b = "x"; nt c { ; }`), RedefinedTokenError},
		{"bad ref", pgenError(t, `nt a { "x" => item($1); }`), BadRefError},
		{"no defs", pgenError(t, `var token x;`), NoDefsError},
		{"too many args", esError(t, "A :\n    B[+X, +Y]\n\nB[X] :\n    `b`\n"), WrongArgCountError},
		{"missing args", esError(t, "A :\n    B[+X]\n\nB[X, Y] :\n    `b`\n"), WrongArgCountError},
		{"bare parameterized ref", esError(t, "A :\n    B\n\nB[X] :\n    `b`\n"), WrongArgCountError},
		{"unknown param", esError(t, "A :\n    B[+Z]\n\nB[X] :\n    `b`\n"), UnknownParamError},
		{"unbound inherit", esError(t, "A :\n    B[?X]\n\nB[X] :\n    `b`\n"), UnboundParamError},
		{"unknown cond param", esError(t, "A :\n    [+X] `a`\n"), UnknownParamError},
	}

	for _, sample := range samples {
		assert.Equal(t, sample.code, sample.err.Code, sample.name)
	}
}
