package langdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgen-go/pgen"
	"github.com/pgen-go/pgen/ast"
)

func TestPgenTokenDecls(t *testing.T) {
	g, e := ParsePgenString("test", `
		token lparen = "(";
		token arrow = "=>";
		var token name;
		nt empty { ; }
	`)
	require.NoError(t, e)
	require.Len(t, g.Tokens, 3)

	assert.Equal(t, "lparen", g.Tokens[0].Name)
	assert.Equal(t, "(", g.Tokens[0].Literal)
	assert.False(t, g.Tokens[0].Var)
	assert.Equal(t, "=>", g.Tokens[1].Literal)
	assert.Equal(t, "name", g.Tokens[2].Name)
	assert.True(t, g.Tokens[2].Var)
}

func TestPgenEscapes(t *testing.T) {
	g, e := ParsePgenString("test", `
		token nl = "\n";
		token quote = "\"";
		nt empty { ; }
	`)
	require.NoError(t, e)
	assert.Equal(t, "\n", g.Tokens[0].Literal)
	assert.Equal(t, "\"", g.Tokens[1].Literal)
}

func TestPgenNtDefs(t *testing.T) {
	g, e := ParsePgenString("test", `
		var token name;
		goal nt list {
			item list;
			;
		}
		nt item {
			name "," ? => item($0, $1);
		}
	`)
	require.NoError(t, e)
	require.Len(t, g.Defs, 2)
	assert.Equal(t, []string{"list"}, g.Goals)

	list := g.Defs[0]
	assert.True(t, list.Goal)
	require.Len(t, list.Prods, 2)
	require.Len(t, list.Prods[0].Terms, 2)
	assert.Empty(t, list.Prods[1].Terms)

	item := g.Defs[1]
	require.Len(t, item.Prods, 1)
	prod := item.Prods[0]
	require.Len(t, prod.Terms, 2)
	assert.Equal(t, ast.Name{Name: "name", Pos: prod.Terms[0].(ast.Name).Pos}, prod.Terms[0])
	opt, isOpt := prod.Terms[1].(ast.Optional)
	require.True(t, isOpt)
	assert.Equal(t, ast.Terminal{Text: ","}, opt.Inner)

	require.NotNil(t, prod.Action)
	assert.Equal(t, ast.CallExpr, prod.Action.Kind)
	assert.Equal(t, "item", prod.Action.Name)
	require.Len(t, prod.Action.Args, 2)
	assert.Equal(t, ast.RefExpr, prod.Action.Args[0].Kind)
	assert.Equal(t, 1, prod.Action.Args[1].Ref)
}

func TestPgenExprs(t *testing.T) {
	g, e := ParsePgenString("test", `
		var token name;
		nt opt {
			name => Some($0);
			=> None;
		}
		nt flat {
			name => flatten;
		}
	`)
	require.NoError(t, e)

	some := g.Defs[0].Prods[0].Action
	assert.Equal(t, ast.SomeExpr, some.Kind)
	assert.Equal(t, ast.RefExpr, some.Args[0].Kind)
	assert.Equal(t, ast.NoneExpr, g.Defs[0].Prods[1].Action.Kind)

	flat := g.Defs[1].Prods[0].Action
	assert.Equal(t, ast.CallExpr, flat.Kind)
	assert.Equal(t, "flatten", flat.Name)
	assert.Empty(t, flat.Args)
}

func TestPgenErrors(t *testing.T) {
	samples := []struct {
		content string
		code    int
	}{
		{`nt a { ; } token x = "x";`, MisplacedTokenDefError},
		{`token x = "\q"; nt a { ; }`, BadEscapeError},
		{`token x "x";`, UnexpectedTokenError},
		{`nt a { b`, UnexpectedEofError},
		{`nt a { => Other($0 }`, UnexpectedTokenError},
	}

	for _, sample := range samples {
		_, e := ParsePgenString("test", sample.content)
		require.Error(t, e, sample.content)
		assert.Equal(t, sample.code, e.(*pgen.Error).Code, sample.content)
	}
}

func TestPgenErrorPos(t *testing.T) {
	_, e := ParsePgenString("test", "var token name;\nnt a { @ }")
	require.Error(t, e)
	pe := e.(*pgen.Error)
	assert.Equal(t, "test", pe.SourceName)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 8, pe.Col)
}
