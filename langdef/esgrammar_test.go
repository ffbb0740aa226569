package langdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgen-go/pgen"
	"github.com/pgen-go/pgen/ast"
)

func TestESHeader(t *testing.T) {
	g, e := ParseESGrammarString("test", ""+
		"Statement[Yield, Await] :\n"+
		"    `;`\n"+
		"\n"+
		"Digit ::\n"+
		"    `0`\n")
	require.NoError(t, e)
	require.Len(t, g.Defs, 2)

	stmt := g.Defs[0]
	assert.Equal(t, "Statement", stmt.Name)
	assert.Equal(t, []string{"Yield", "Await"}, stmt.Params)
	assert.Equal(t, ":", stmt.Eq)
	require.Len(t, stmt.Prods, 1)
	assert.Equal(t, ast.Terminal{Text: ";"}, stmt.Prods[0].Terms[0])

	digit := g.Defs[1]
	assert.Equal(t, "::", digit.Eq)
	assert.Empty(t, digit.Params)
}

func TestESOneOf(t *testing.T) {
	g, e := ParseESGrammarString("test", ""+
		"Punctuator : one of\n"+
		"    `{` `}` `;`\n"+
		"    `,`\n")
	require.NoError(t, e)

	def := g.Defs[0]
	assert.True(t, def.OneOf)
	require.Len(t, def.Prods, 4)
	for i, text := range []string{"{", "}", ";", ","} {
		require.Len(t, def.Prods[i].Terms, 1)
		assert.Equal(t, ast.Terminal{Text: text}, def.Prods[i].Terms[0])
	}
}

func TestESCallsAndSigils(t *testing.T) {
	g, e := ParseESGrammarString("test", ""+
		"Block[Yield] :\n"+
		"    `{` StatementList[?Yield, +Return, ~In] `}`\n")
	require.NoError(t, e)

	prod := g.Defs[0].Prods[0]
	require.Len(t, prod.Terms, 3)
	call, isCall := prod.Terms[1].(ast.Call)
	require.True(t, isCall)
	assert.Equal(t, "StatementList", call.Name)
	require.Len(t, call.Args, 3)
	assert.Equal(t, ast.Arg{Name: "Yield", Mode: ast.ArgInherit}, call.Args[0])
	assert.Equal(t, ast.Arg{Name: "Return", Mode: ast.ArgTrue}, call.Args[1])
	assert.Equal(t, ast.Arg{Name: "In", Mode: ast.ArgFalse}, call.Args[2])
}

func TestESGuardsAndConds(t *testing.T) {
	g, e := ParseESGrammarString("test", ""+
		"Rule[Await] :\n"+
		"    [+Await] `await` Expr\n"+
		"    [~Await] Expr\n"+
		"    [lookahead != `{` ] Expr\n"+
		"    [lookahead <! Decl] Expr\n"+
		"    [lookahead <! {`function`, `async` `function`} ] Expr\n"+
		"    `return` [no LineTerminator here] Expr\n"+
		"    [empty]\n"+
		"\n"+
		"Expr :\n"+
		"    `x`\n"+
		"\n"+
		"Decl :\n"+
		"    `d`\n")
	require.NoError(t, e)

	prods := g.Defs[0].Prods
	require.Len(t, prods, 7)

	assert.Equal(t, &ast.Cond{Param: "Await", Value: true}, prods[0].Cond)
	assert.Equal(t, &ast.Cond{Param: "Await", Value: false}, prods[1].Cond)

	la := prods[2].Terms[0].(ast.Lookahead)
	assert.Equal(t, ast.LaNe{Terminal: "{"}, la.La)

	la = prods[3].Terms[0].(ast.Lookahead)
	assert.Equal(t, ast.LaNotNt{Name: "Decl"}, la.La)

	la = prods[4].Terms[0].(ast.Lookahead)
	set, isSet := la.La.(ast.LaNotInSet)
	require.True(t, isSet)
	assert.Equal(t, [][]string{{"function"}, {"async", "function"}}, set.Seqs)

	require.Len(t, prods[5].Terms, 3)
	assert.Equal(t, ast.NoLineTerm{}, prods[5].Terms[1])

	assert.Empty(t, prods[6].Terms)
}

func TestESExclusions(t *testing.T) {
	g, e := ParseESGrammarString("test", ""+
		"Name ::\n"+
		"    Word but not one of `if` or `while` or Keyword\n"+
		"\n"+
		"NonZero ::\n"+
		"    Digit but not `0`\n"+
		"\n"+
		"Letter ::\n"+
		"    Char but not U+0041 through U+005A\n"+
		"\n"+
		"Word ::\n"+
		"    `w`\n"+
		"\n"+
		"Keyword ::\n"+
		"    `k`\n"+
		"\n"+
		"Digit ::\n"+
		"    `1`\n"+
		"\n"+
		"Char ::\n"+
		"    `c`\n")
	require.NoError(t, e)

	ex := g.Defs[0].Prods[0].Terms[0].(ast.Exclude)
	assert.Equal(t, ast.Name{Name: "Word", Pos: ex.Inner.(ast.Name).Pos}, ex.Inner)
	require.Len(t, ex.Exclusions, 3)
	assert.Equal(t, ast.ExTerminal{Text: "if"}, ex.Exclusions[0])
	assert.Equal(t, ast.ExTerminal{Text: "while"}, ex.Exclusions[1])
	assert.Equal(t, ast.ExName{Name: "Keyword"}, ex.Exclusions[2])

	ex = g.Defs[1].Prods[0].Terms[0].(ast.Exclude)
	require.Len(t, ex.Exclusions, 1)
	assert.Equal(t, ast.ExTerminal{Text: "0"}, ex.Exclusions[0])

	ex = g.Defs[2].Prods[0].Terms[0].(ast.Exclude)
	assert.Equal(t, ast.ExRange{Lo: 'A', Hi: 'Z'}, ex.Exclusions[0])
}

func TestESCharsAndProse(t *testing.T) {
	g, e := ParseESGrammarString("test", ""+
		"WhiteSpace ::\n"+
		"    <TAB>\n"+
		"    U+0020\n"+
		"    > any other Unicode whitespace\n"+
		"    [> wrapped prose]\n")
	require.NoError(t, e)

	prods := g.Defs[0].Prods
	require.Len(t, prods, 4)
	assert.Equal(t, ast.CharTerm{Char: '\t'}, prods[0].Terms[0])
	assert.Equal(t, ast.CharTerm{Char: ' '}, prods[1].Terms[0])
	assert.Equal(t, ast.Prose{Text: "any other Unicode whitespace"}, prods[2].Terms[0])
	assert.Equal(t, ast.Prose{Text: "wrapped prose"}, prods[3].Terms[0])
}

func TestESOptionalAndIds(t *testing.T) {
	g, e := ParseESGrammarString("test", ""+
		"@ returns Statement\n"+
		"ReturnStatement :\n"+
		"    `return` Expr? `;` => return_stmt($1) #return\n"+
		"\n"+
		"Expr :\n"+
		"    `x`\n")
	require.NoError(t, e)

	def := g.Defs[0]
	assert.Equal(t, "Statement", def.Returns)
	prod := def.Prods[0]
	assert.Equal(t, "return", prod.ID)

	opt, isOpt := prod.Terms[1].(ast.Optional)
	require.True(t, isOpt)
	assert.Equal(t, "Expr", opt.Inner.(ast.Name).Name)

	require.NotNil(t, prod.Action)
	assert.Equal(t, "return_stmt", prod.Action.Name)
	assert.Equal(t, 1, prod.Action.Args[0].Ref)
}

func TestESNtAlt(t *testing.T) {
	g, e := ParseESGrammarString("test", ""+
		"Shifted :\n"+
		"    |Opener| `x`\n"+
		"\n"+
		"Opener :\n"+
		"    `o`\n")
	require.NoError(t, e)
	alt := g.Defs[0].Prods[0].Terms[0].(ast.Name)
	assert.Equal(t, "Opener", alt.Name)
}

func TestESErrors(t *testing.T) {
	samples := []struct {
		content string
		code    int
	}{
		{"A :\n    <WAT>\n", UnknownCharNameError},
		{"A :\n    B[+X, +X]\n", DuplicateArgError},
		{"A :\n    [+X] `a` [+Y] `b`\n", UnexpectedTokenError},
		{"A :\n    [lookahead ==\n", UnexpectedTokenError},
	}

	for _, sample := range samples {
		_, e := ParseESGrammarString("test", sample.content)
		require.Error(t, e, sample.content)
		assert.Equal(t, sample.code, e.(*pgen.Error).Code, sample.content)
	}
}
