package parser

import (
	"strconv"
)

// EofTerm is the terminal index of the end-of-input token.
const EofTerm = -1

// Token is one unit of parser input. Term indexes the terminal alphabet
// of the grammar the parser was built for. AfterBreak marks tokens
// preceded by a line break, which no-line-break assertions test.
type Token struct {
	Term       int
	Text       string
	SourceName string
	Line, Col  int
	AfterBreak bool
}

func (t *Token) IsEof() bool {
	return t.Term == EofTerm
}

// Describe returns a printable form for error messages.
func (t *Token) Describe() string {
	if t.IsEof() {
		return "end of input"
	}
	return strconv.Quote(t.Text)
}

// TokenStream supplies parser input. Next returns the end-of-input token
// once the input is exhausted and may be called again after that.
type TokenStream interface {
	Next() (*Token, error)
}

// Tokens turns a fixed token slice into a stream, mostly for tests and
// for feeding the parser from a custom tokenizer.
func Tokens(toks []*Token) TokenStream {
	return &sliceStream{toks: toks}
}

type sliceStream struct {
	toks []*Token
	pos  int
}

func (s *sliceStream) Next() (*Token, error) {
	if s.pos >= len(s.toks) {
		return &Token{Term: EofTerm}, nil
	}

	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

// buffer reads a stream once and exposes cursor positioning over the
// consumed prefix, which alternative fallback and exclusion retries need.
type buffer struct {
	ts   TokenStream
	toks []*Token
	pos  int
}

func newBuffer(ts TokenStream) *buffer {
	return &buffer{ts: ts}
}

// peek returns the token at the cursor plus offset without consuming it.
func (b *buffer) peek(offset int) (*Token, error) {
	for len(b.toks) <= b.pos+offset {
		t, e := b.ts.Next()
		if e != nil {
			return nil, e
		}

		b.toks = append(b.toks, t)
		if t.IsEof() {
			break
		}
	}

	i := b.pos + offset
	if i >= len(b.toks) {
		return b.toks[len(b.toks)-1], nil
	}
	return b.toks[i], nil
}

func (b *buffer) next() (*Token, error) {
	t, e := b.peek(0)
	if e != nil {
		return nil, e
	}

	if !t.IsEof() {
		b.pos++
	}
	return t, nil
}

func (b *buffer) mark() int {
	return b.pos
}

func (b *buffer) rewind(mark int) {
	b.pos = mark
}

// text concatenates the token texts of a consumed range, used to test
// exclusion clauses against what a symbol actually matched.
func (b *buffer) text(from, to int) string {
	if to-from == 1 {
		return b.toks[from].Text
	}

	res := ""
	for i := from; i < to; i++ {
		res += b.toks[i].Text
	}
	return res
}
