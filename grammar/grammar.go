// Package grammar defines the compiled grammar structure and builds it
// from the syntax tree produced by langdef.
package grammar

import (
	"strconv"
)

type TermFlags int

const (
	// LiteralTerm matches its exact text.
	LiteralTerm TermFlags = 1 << iota
	// VarTerm matches by token kind, its text varies.
	VarTerm
	// CharTerm matches a single code point.
	CharTerm
)

// Term is one entry of the terminal alphabet.
type Term struct {
	Name  string    `yaml:"name"`
	Text  string    `yaml:"text,omitempty"`
	Flags TermFlags `yaml:"flags"`
}

type SymKind int

const (
	// TermSym matches a terminal, Index points into Grammar.Terms.
	TermSym SymKind = iota
	// NontermSym matches a nonterminal, Index points into Grammar.Nonterms.
	NontermSym
	// ProseSym is a free-text fragment, it never matches input.
	ProseSym
)

// ArgSource tells how a call site binds one callee parameter.
type ArgSource int

const (
	ArgFalse   ArgSource = iota // bound to false
	ArgTrue                     // bound to true
	ArgInherit                  // copied from the caller's parameter
)

// Arg binds the callee parameter with index Param. For ArgInherit,
// From is the caller's parameter index the value is copied from.
type Arg struct {
	Param  int       `yaml:"param"`
	Source ArgSource `yaml:"source"`
	From   int       `yaml:"from,omitempty"`
}

type ExKind int

const (
	ExText    ExKind = iota // an exact terminal text
	ExNonterm               // anything the nonterminal Index derives
	ExRange                 // code points in [Lo, Hi]
)

// Exclusion is one clause of "but not": a matched symbol is rejected
// when its text satisfies the clause.
type Exclusion struct {
	Kind  ExKind `yaml:"kind"`
	Text  string `yaml:"text,omitempty"`
	Index int    `yaml:"index,omitempty"`
	Lo    rune   `yaml:"lo,omitempty"`
	Hi    rune   `yaml:"hi,omitempty"`
}

// Symbol is one matchable element of a production body.
type Symbol struct {
	Kind       SymKind     `yaml:"kind"`
	Index      int         `yaml:"index,omitempty"`
	Args       []Arg       `yaml:"args,omitempty"`
	Optional   bool        `yaml:"optional,omitempty"`
	Exclusions []Exclusion `yaml:"exclusions,omitempty"`
	Text       string      `yaml:"text,omitempty"`
}

type GuardKind int

const (
	// LaEqGuard: the next terminal must be Seqs[0][0].
	LaEqGuard GuardKind = iota
	// LaNeGuard: the next terminal must not be Seqs[0][0].
	LaNeGuard
	// LaNotSetGuard: upcoming terminals must not match any sequence in Seqs.
	LaNotSetGuard
	// LaNotNtGuard: upcoming input must not start a derivation of Nonterm.
	LaNotNtGuard
	// NoLineBreakGuard: no line break before the next token.
	NoLineBreakGuard
)

// Guard is a zero-width constraint checked when matching reaches
// symbol position At.
type Guard struct {
	At      int       `yaml:"at"`
	Kind    GuardKind `yaml:"kind"`
	Seqs    [][]int   `yaml:"seqs,omitempty"`
	Nonterm int       `yaml:"nonterm,omitempty"`
}

type ActionKind int

const (
	RefAction    ActionKind = iota // value of matched element Ref
	MethodAction                   // builder method call
	SomeAction                     // wrap the single argument
	NoneAction                     // the absent value
)

// Action is the reduce expression of a production.
type Action struct {
	Kind   ActionKind `yaml:"kind"`
	Ref    int        `yaml:"ref,omitempty"`
	Method string     `yaml:"method,omitempty"`
	Args   []*Action  `yaml:"args,omitempty"`
}

// Cond restricts a production to instantiations where parameter
// Param has value Value.
type Cond struct {
	Param int  `yaml:"param"`
	Value bool `yaml:"value"`
}

// Production is one compiled alternative of a nonterminal.
type Production struct {
	Symbols []Symbol `yaml:"symbols"`
	Guards  []Guard  `yaml:"guards,omitempty"`
	Cond    *Cond    `yaml:"cond,omitempty"`
	Action  *Action  `yaml:"action"`
	ID      string   `yaml:"id,omitempty"`
}

// Nonterm is one compiled nonterminal with all its alternatives.
type Nonterm struct {
	Name    string       `yaml:"name"`
	Params  []string     `yaml:"params,omitempty"`
	Lexical bool         `yaml:"lexical,omitempty"`
	Prods   []Production `yaml:"prods"`
}

// Grammar is the compiled grammar: the terminal alphabet, the
// nonterminals, and the goal nonterminal indices.
type Grammar struct {
	Terms    []Term    `yaml:"terms"`
	Nonterms []Nonterm `yaml:"nonterms"`
	Goals    []int     `yaml:"goals"`
}

// TermIndex returns the index of the terminal with the given exact text,
// or -1 when the alphabet has no such entry.
func (g *Grammar) TermIndex(text string) int {
	for i := range g.Terms {
		if g.Terms[i].Flags&VarTerm == 0 && g.Terms[i].Text == text {
			return i
		}
	}
	return -1
}

// NontermIndex returns the index of the named nonterminal, or -1.
func (g *Grammar) NontermIndex(name string) int {
	for i := range g.Nonterms {
		if g.Nonterms[i].Name == name {
			return i
		}
	}
	return -1
}

// TermName returns a printable name for a terminal index.
func (g *Grammar) TermName(i int) string {
	if i < 0 || i >= len(g.Terms) {
		return "#" + strconv.Itoa(i)
	}

	t := g.Terms[i]
	if t.Flags&VarTerm != 0 {
		return t.Name
	}
	return strconv.Quote(t.Text)
}
