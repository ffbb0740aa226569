// Package lexer defines the lexical analyzer for meta-language dialects.
package lexer

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/pgen-go/pgen"
	"github.com/pgen-go/pgen/source"
)

const (
	// ErrorTokenKind marks capturing groups for broken lexemes (e.g. unterminated
	// terminals). The lexer never returns such a token, it returns an error
	// containing the token text instead.
	ErrorTokenKind = -1
)

// Error codes used by lexer:
const (
	// WrongCharError indicates that no token can be fetched at current position.
	WrongCharError = pgen.LangDefErrors + iota

	// BadTokenError indicates a lexeme matching an ErrorTokenKind group.
	BadTokenError
)

// TokenKind binds a regexp capturing group to a token kind.
type TokenKind struct {
	Kind int
	Name string
}

// Lexer fetches tokens from a single source using one regexp.
// Each n-th element of kinds describes the (n+1)-th capturing group; a match
// with no captured group is insignificant (whitespace, comments) and is skipped.
// Lexer keeps a cursor, it is not safe for concurrent use.
type Lexer struct {
	re    *regexp.Regexp
	kinds []TokenKind
	src   *source.Source
	pos   int
}

// New creates a Lexer over src. The regexp must anchor at the match start.
func New(re *regexp.Regexp, kinds []TokenKind, src *source.Source) *Lexer {
	return &Lexer{re: re, kinds: kinds, src: src}
}

func wrongCharError(s *source.Source, content []byte, pos int) *pgen.Error {
	r, _ := utf8.DecodeRune(content)
	line, col := s.LineCol(pos)
	msg := fmt.Sprintf("wrong char %q (u+%x)", r, r)
	return pgen.NewError(WrongCharError, msg, s.Name(), line, col)
}

func badTokenError(t *Token) *pgen.Error {
	return pgen.FormatErrorPos(t, BadTokenError, "bad token %q", t.Text())
}

// Next fetches the token at the current position and advances the cursor.
// Returns an EoF token when the source is exhausted.
func (l *Lexer) Next() (*Token, error) {
	content := l.src.Content()
	for {
		if l.pos >= len(content) {
			return EofToken(l.src), nil
		}

		rest := content[l.pos:]
		match := l.re.FindSubmatchIndex(rest)
		if len(match) == 0 || match[0] != 0 || match[1] <= match[0] {
			return nil, wrongCharError(l.src, rest, l.pos)
		}

		for i := 2; i < len(match); i += 2 {
			if match[i] < 0 || match[i+1] < 0 {
				continue
			}

			kind := ErrorTokenKind
			name := ""
			gi := (i >> 1) - 1
			if gi < len(l.kinds) {
				kind = l.kinds[gi].Kind
				name = l.kinds[gi].Name
			}
			tok := NewToken(kind, name, string(rest[match[i]:match[i+1]]), source.NewPos(l.src, l.pos+match[i]))
			l.pos += match[1]
			if kind == ErrorTokenKind {
				return nil, badTokenError(tok)
			}

			return tok, nil
		}

		// no captured group: insignificant lexeme
		l.pos += match[1]
	}
}

// Pos returns the current byte offset.
func (l *Lexer) Pos() int {
	return l.pos
}
