package lexer

import (
	"github.com/pgen-go/pgen/source"
)

// Token is an immutable lexeme fetched from a source.
type Token struct {
	kind      int
	kindName  string
	text      string
	src       *source.Source
	offset    int
	line, col int
}

func (t *Token) Kind() int {
	return t.kind
}

func (t *Token) KindName() string {
	return t.kindName
}

func (t *Token) Text() string {
	return t.text
}

func (t *Token) Source() *source.Source {
	return t.src
}

func (t *Token) SourceName() string {
	if t.src == nil {
		return ""
	}
	return t.src.Name()
}

func (t *Token) Line() int {
	return t.line
}

func (t *Token) Col() int {
	return t.col
}

// NewToken creates a token at the position held by sp.
func NewToken(kind int, kindName, text string, sp source.Pos) *Token {
	return &Token{kind, kindName, text, sp.Source(), sp.Pos(), sp.Line(), sp.Col()}
}

// Pos returns the token position as a source.Pos.
func (t *Token) Pos() source.Pos {
	return source.NewPos(t.src, t.offset)
}

const (
	EofTokenKind = -2
	EofTokenName = "-end-of-file-"
)

func EofToken(s *source.Source) *Token {
	line, col := 0, 0
	if s != nil {
		line, col = s.LineCol(s.Len())
	}
	offset := 0
	if s != nil {
		offset = s.Len()
	}
	return &Token{kind: EofTokenKind, kindName: EofTokenName, src: s, offset: offset, line: line, col: col}
}

func (t *Token) IsEof() bool {
	return t.kind == EofTokenKind
}
