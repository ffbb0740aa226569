package parser

import (
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/pgen-go/pgen/grammar"
	"github.com/pgen-go/pgen/lexer"
	"github.com/pgen-go/pgen/source"
)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Scanner tokenizes a source against a grammar's terminal alphabet and
// feeds the result to the parser. Fixed terminals match their exact text,
// longest first. Variable terminals match the patterns supplied by name,
// in alphabet order after all fixed ones.
type Scanner struct {
	lx       *lexer.Lexer
	prevLine int
}

// NewScanner compiles the matching expression for a grammar's alphabet.
// vars maps variable terminal names to RE2 patterns without capture groups.
func NewScanner(g *grammar.Grammar, vars map[string]string, s *source.Source) (*Scanner, error) {
	type entry struct {
		term int
		re   string
	}

	var fixed, free []entry
	for i := range g.Terms {
		t := &g.Terms[i]
		if t.Flags&grammar.VarTerm == 0 {
			re := regexp.QuoteMeta(t.Text)
			// keywords must not split identifiers that merely start with them
			if r, _ := utf8.DecodeLastRuneInString(t.Text); isWordRune(r) {
				re += `\b`
			}
			fixed = append(fixed, entry{i, re})
			continue
		}

		pat, has := vars[t.Name]
		if !has {
			return nil, noPatternError(t.Name)
		}
		free = append(free, entry{i, pat})
	}

	sort.SliceStable(fixed, func(i, j int) bool {
		return len(g.Terms[fixed[i].term].Text) > len(g.Terms[fixed[j].term].Text)
	})

	re := `^(?:\s+`
	kinds := make([]lexer.TokenKind, 0, len(fixed)+len(free))
	for _, ent := range append(fixed, free...) {
		re += `|(` + ent.re + `)`
		kinds = append(kinds, lexer.TokenKind{Kind: ent.term, Name: g.TermName(ent.term)})
	}
	re += `)`

	compiled, err := regexp.Compile(re)
	if err != nil {
		return nil, err
	}
	// sources start on line 1, anything below marks a preceding break
	return &Scanner{lx: lexer.New(compiled, kinds, s), prevLine: 1}, nil
}

func (sc *Scanner) Next() (*Token, error) {
	t, e := sc.lx.Next()
	if e != nil {
		return nil, e
	}

	term := t.Kind()
	if t.IsEof() {
		term = EofTerm
	}

	res := &Token{
		Term:       term,
		Text:       t.Text(),
		SourceName: t.SourceName(),
		Line:       t.Line(),
		Col:        t.Col(),
		AfterBreak: t.Line() > sc.prevLine,
	}
	sc.prevLine = t.Line()
	return res, nil
}
