package langdef

import (
	"github.com/pgen-go/pgen"
	"github.com/pgen-go/pgen/lexer"
)

// Error codes used by langdef (lexical codes are defined in the lexer package):
const (
	UnexpectedEofError = pgen.LangDefErrors + 10 + iota
	UnexpectedTokenError
	UnknownCharNameError
	BadCodePointError
	BadEscapeError
	MisplacedTokenDefError
	DuplicateArgError
)

func eofError(t *lexer.Token, expected string) *pgen.Error {
	return pgen.FormatErrorPos(t, UnexpectedEofError, "unexpected end of file, expecting %s", expected)
}

func unexpectedTokenError(t *lexer.Token, expected string) *pgen.Error {
	return pgen.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q, expecting %s", t.Text(), expected)
}

func unknownCharNameError(t *lexer.Token) *pgen.Error {
	return pgen.FormatErrorPos(t, UnknownCharNameError, "unrecognized character abbreviation %s", t.Text())
}

func badCodePointError(t *lexer.Token) *pgen.Error {
	return pgen.FormatErrorPos(t, BadCodePointError, "invalid code point %s", t.Text())
}

func badEscapeError(t *lexer.Token, esc string) *pgen.Error {
	return pgen.FormatErrorPos(t, BadEscapeError, "invalid escape sequence %q", esc)
}

func misplacedTokenDefError(t *lexer.Token) *pgen.Error {
	return pgen.FormatErrorPos(t, MisplacedTokenDefError, "token declarations must precede nonterminal definitions")
}

func duplicateArgError(t *lexer.Token, name string) *pgen.Error {
	return pgen.FormatErrorPos(t, DuplicateArgError, "argument %q passed multiple times", name)
}
