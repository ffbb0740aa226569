package langdef

import (
	"strconv"
	"strings"

	"github.com/pgen-go/pgen/ast"
	"github.com/pgen-go/pgen/lexer"
)

// parsePgen implements the minimal free-form dialect: token declarations
// followed by brace-delimited nonterminal blocks with ;-terminated productions.
func (c *parseContext) parsePgen() (*ast.Grammar, error) {
	g := &ast.Grammar{}

	for {
		t, e := c.fetch([]string{"token", "var", "nt", "goal", lexer.EofTokenName}, true, nil)
		if e != nil {
			return nil, e
		}

		switch {
		case t.IsEof():
			return g, nil

		case t.Text() == "token":
			e = c.parsePgenTokenDecl(g, false)

		case t.Text() == "var":
			e = c.skipOne("token", nil)
			if e == nil {
				e = c.parsePgenTokenDecl(g, true)
			}

		default:
			c.put(t)
			return c.parsePgenNtDefs(g)
		}
		if e != nil {
			return nil, e
		}
	}
}

func (c *parseContext) parsePgenTokenDecl(g *ast.Grammar, isVar bool) error {
	name, e := c.fetchOne(nameTok, true, nil)
	if e != nil {
		return e
	}

	decl := ast.TokenDecl{Name: name.Text(), Var: isVar, Pos: name.Pos()}
	if !isVar {
		e = c.skipOne("=", nil)
		lit, e := c.fetchOne(stringTok, true, e)
		if e != nil {
			return e
		}

		decl.Literal, e = unquote(lit)
		if e != nil {
			return e
		}
	}

	e = c.skipOne(";", nil)
	if e != nil {
		return e
	}

	g.Tokens = append(g.Tokens, decl)
	return nil
}

func (c *parseContext) parsePgenNtDefs(g *ast.Grammar) (*ast.Grammar, error) {
	for {
		t, e := c.fetch([]string{"nt", "goal", "token", "var", lexer.EofTokenName}, true, nil)
		if e != nil {
			return nil, e
		}

		if t.IsEof() {
			return g, nil
		}

		if t.Text() == "token" || t.Text() == "var" {
			return nil, misplacedTokenDefError(t)
		}

		goal := t.Text() == "goal"
		if goal {
			e = c.skipOne("nt", nil)
			if e != nil {
				return nil, e
			}
		}

		def, e := c.parsePgenNtDef(goal)
		if e != nil {
			return nil, e
		}

		g.Defs = append(g.Defs, def)
		if goal {
			g.Goals = append(g.Goals, def.Name)
		}
	}
}

func (c *parseContext) parsePgenNtDef(goal bool) (*ast.NtDef, error) {
	name, e := c.fetchOne(nameTok, true, nil)
	e = c.skipOne("{", e)
	if e != nil {
		return nil, e
	}

	def := &ast.NtDef{Name: name.Text(), Goal: goal, Pos: name.Pos()}
	for {
		t, e := c.fetchOne("}", false, nil)
		if e != nil {
			return nil, e
		}

		if t != nil {
			return def, nil
		}

		prod, e := c.parsePgenProd()
		if e != nil {
			return nil, e
		}

		def.Prods = append(def.Prods, prod)
	}
}

func (c *parseContext) parsePgenProd() (*ast.Prod, error) {
	prod := &ast.Prod{}

	for {
		t, e := c.fetch([]string{stringTok, nameTok, "=>", ";"}, true, nil)
		if e != nil {
			return nil, e
		}

		if t.Text() == ";" {
			return prod, nil
		}

		if t.Text() == "=>" {
			prod.Action, e = c.parsePgenExpr()
			e = c.skipOne(";", e)
			return prod, e
		}

		if len(prod.Terms) == 0 {
			prod.Pos = t.Pos()
		}

		var term ast.Term
		if t.KindName() == stringTok {
			text, e := unquote(t)
			if e != nil {
				return nil, e
			}
			term = ast.Terminal{Text: text}
		} else {
			term = ast.Name{Name: t.Text(), Pos: t.Pos()}
		}

		opt, e := c.fetchOne("?", false, nil)
		if e != nil {
			return nil, e
		}
		if opt != nil {
			term = ast.Optional{Inner: term}
		}

		prod.Terms = append(prod.Terms, term)
	}
}

// parsePgenExpr parses a reduce expression: $n, None, Some(expr),
// a bare method name, or method(expr, ...).
func (c *parseContext) parsePgenExpr() (*ast.Expr, error) {
	t, e := c.fetch([]string{refTok, nameTok}, true, nil)
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
		inner, e := c.parsePgenExpr()
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
		arg, e := c.parsePgenExpr()
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

var escapeMap = map[byte]byte{
	'\\': '\\',
	'"':  '"',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// unquote strips quotes from a string token and processes escape sequences.
func unquote(t *lexer.Token) (string, error) {
	text := t.Text()
	text = text[1 : len(text)-1]
	if !strings.ContainsRune(text, '\\') {
		return text, nil
	}

	var b strings.Builder
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' {
			b.WriteByte(text[i])
			continue
		}

		i++
		sub, valid := escapeMap[text[i]]
		if !valid {
			return "", badEscapeError(t, text[i-1:i+1])
		}
		b.WriteByte(sub)
	}
	return b.String(), nil
}
