package langdef

import (
	"regexp"

	"github.com/pgen-go/pgen/ast"
	"github.com/pgen-go/pgen/lexer"
	"github.com/pgen-go/pgen/source"
)

// Token kind names shared by both dialect lexers.
const (
	nameTok   = "name"
	stringTok = "string"
	refTok    = "ref"
	opTok     = "op"
	wrongTok  = ""

	nlTok     = "nl"
	eqTok     = "eq"
	tTok      = "t"
	chrTok    = "chr"
	ntTok     = "nt"
	ntCallTok = "ntcall"
	ntAltTok  = "ntalt"
	prodIdTok = "prodid"
	proseTok  = "prose"
	wProseTok = "wprose"
	kwTok     = "kw"
)

var pgenLexerRe *regexp.Regexp
var pgenLexerKinds []lexer.TokenKind
var esLexerRe *regexp.Regexp
var esLexerKinds []lexer.TokenKind

func init() {
	pgenLexerKinds = []lexer.TokenKind{
		{Kind: 1, Name: nameTok},
		{Kind: 2, Name: stringTok},
		{Kind: 3, Name: refTok},
		{Kind: 4, Name: opTok},
		{Kind: lexer.ErrorTokenKind, Name: wrongTok},
	}

	pgenLexerRe = regexp.MustCompile(
		`^(?:\s+|//[^\n]*|` +
			`([A-Za-z_]\w*)|` +
			`("(?:[^\\"\n]|\\.)*")|` +
			`(\$(?:0|[1-9][0-9]*))|` +
			`(=>|[;{}()\[\]=,?~+])|` +
			`(["].{0,10}))`)

	esLexerKinds = []lexer.TokenKind{
		{Kind: 1, Name: nlTok},
		{Kind: 2, Name: eqTok},
		{Kind: 3, Name: tTok},
		{Kind: 4, Name: chrTok},
		{Kind: 5, Name: kwTok},
		{Kind: 6, Name: ntCallTok},
		{Kind: 7, Name: ntTok},
		{Kind: 8, Name: ntAltTok},
		{Kind: 9, Name: prodIdTok},
		{Kind: 10, Name: refTok},
		{Kind: 11, Name: wProseTok},
		{Kind: 12, Name: proseTok},
		{Kind: 13, Name: opTok},
		{Kind: lexer.ErrorTokenKind, Name: wrongTok},
	}

	// NTCALL keeps the trailing bracket: RE2 has no lookahead, the parser
	// strips it and treats the bracket as consumed.
	esLexerRe = regexp.MustCompile(
		`^(?:[ \t\r]+|` +
			`(\n)|` +
			`(:+)|` +
			"(`[^` \\n]+`|```)|" +
			`(<[A-Z ]+>|U\+[0-9A-Fa-f]{4})|` +
			`(\b(?:but|empty|here|lookahead|no|not|of|one|or|returns|through|Some|None)\b)|` +
			`([A-Za-z]\w*\[)|` +
			`([A-Za-z]\w*)|` +
			`(\|[A-Z]\w+\|)|` +
			`(#[A-Za-z]\w*)|` +
			`(\$(?:0|[1-9][0-9]*))|` +
			`(\[>[^\]]*\])|` +
			`(>[^\n]*)|` +
			`(<!|==|!=|=>|[\[\]{},~+?()@<>])|` +
			"([`].{0,10}))")
}

// ParsePgenString parses grammar text in the pgen dialect and returns its AST.
// Returns nil and *pgen.Error on error.
func ParsePgenString(name, content string) (*ast.Grammar, error) {
	return ParsePgen(source.New(name, []byte(content)))
}

// ParsePgenBytes parses grammar text in the pgen dialect and returns its AST.
func ParsePgenBytes(name string, content []byte) (*ast.Grammar, error) {
	return ParsePgen(source.New(name, content))
}

// ParsePgen parses a grammar source in the pgen dialect and returns its AST.
func ParsePgen(s *source.Source) (*ast.Grammar, error) {
	c := &parseContext{lx: lexer.New(pgenLexerRe, pgenLexerKinds, s)}
	return c.parsePgen()
}

// ParseESGrammarString parses grammar text in the esgrammar dialect and
// returns its AST. Returns nil and *pgen.Error on error.
func ParseESGrammarString(name, content string) (*ast.Grammar, error) {
	return ParseESGrammar(source.New(name, []byte(content)))
}

// ParseESGrammarBytes parses grammar text in the esgrammar dialect and
// returns its AST.
func ParseESGrammarBytes(name string, content []byte) (*ast.Grammar, error) {
	return ParseESGrammar(source.New(name, content))
}

// ParseESGrammar parses a grammar source in the esgrammar dialect and
// returns its AST.
func ParseESGrammar(s *source.Source) (*ast.Grammar, error) {
	c := &parseContext{lx: lexer.New(esLexerRe, esLexerKinds, s)}
	return c.parseESGrammar()
}

type parseContext struct {
	lx         *lexer.Lexer
	savedToken *lexer.Token
}

func (c *parseContext) put(t *lexer.Token) {
	if c.savedToken != nil {
		panic("cannot put " + t.KindName() + " token: already put " + c.savedToken.KindName())
	}

	c.savedToken = t
}

// fetch returns the next token if its kind name or text is listed in types.
// In strict mode an unlisted token is an error, otherwise it is pushed back
// and nil is returned. EoF is an error in strict mode unless listed.
func (c *parseContext) fetch(types []string, strict bool, e error) (*lexer.Token, error) {
	if e != nil {
		return nil, e
	}

	token := c.savedToken
	if token == nil {
		token, e = c.lx.Next()
		if e != nil {
			return nil, e
		}
	} else {
		c.savedToken = nil
	}

	for _, typ := range types {
		if token.KindName() == typ || token.Text() == typ {
			return token, nil
		}
	}

	if token.IsEof() {
		if strict {
			return nil, eofError(token, describeExpected(types))
		}
		c.put(token)
		return nil, nil
	}

	if strict {
		return nil, unexpectedTokenError(token, describeExpected(types))
	}

	c.put(token)
	return nil, nil
}

func (c *parseContext) fetchOne(typ string, strict bool, e error) (*lexer.Token, error) {
	return c.fetch([]string{typ}, strict, e)
}

func (c *parseContext) skip(types []string, e error) error {
	_, e = c.fetch(types, true, e)
	return e
}

func (c *parseContext) skipOne(typ string, e error) error {
	return c.skip([]string{typ}, e)
}

func describeExpected(types []string) string {
	if len(types) == 0 {
		return "nothing"
	}

	res := ""
	for i, typ := range types {
		if i > 0 {
			res += " or "
		}
		res += "\"" + typ + "\""
	}
	return res
}
