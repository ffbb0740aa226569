// Package ast defines the abstract syntax tree for meta-language grammar files.
// Nodes are created by the langdef parsers and are immutable after construction;
// grammar.Build consumes the tree once, after which it may be discarded.
package ast

import (
	"github.com/pgen-go/pgen/source"
)

// Grammar is a parsed grammar file: token declarations followed by
// nonterminal definitions, in source order.
type Grammar struct {
	Tokens []TokenDecl
	Defs   []*NtDef
	Goals  []string
}

// TokenDecl declares a token kind: either a fixed literal
// (token Name = "text";) or a free-form kind (var token Name;).
type TokenDecl struct {
	Name    string
	Literal string
	Var     bool
	Pos     source.Pos
}

// NtDef is one nonterminal definition.
// OneOf definitions list flat terminal alternatives, one production per terminal.
// Eq is the defining punctuation of the esgrammar dialect (":" for syntactic,
// "::" for lexical definitions); empty for the pgen dialect.
type NtDef struct {
	Name    string
	Params  []string
	Goal    bool
	OneOf   bool
	Eq      string
	Returns string
	Prods   []*Prod
	Pos     source.Pos
}

// Prod is one alternative right-hand side.
// A nil Action means the default reduce action is synthesized during build.
type Prod struct {
	Terms  []Term
	Action *Expr
	Cond   *Cond
	ID     string
	Pos    source.Pos
}

// Cond is an ifdef guard: the production is present only at instantiations
// where the named parameter has the given value.
type Cond struct {
	Param string
	Value bool
}

// Term is a single right-hand-side element.
type Term interface {
	termNode()
}

// Terminal is a literal terminal symbol.
type Terminal struct {
	Text string
}

// CharTerm is a single-character terminal denoted by a control-character
// abbreviation or a U+XXXX code point reference.
type CharTerm struct {
	Char rune
}

// Name references a nonterminal or a declared free-form token kind;
// which one is resolved during build.
type Name struct {
	Name string
	Pos  source.Pos
}

// Call references a parameterized nonterminal with explicit arguments.
type Call struct {
	Name string
	Args []Arg
	Pos  source.Pos
}

// Optional wraps a term that may be absent.
type Optional struct {
	Inner Term
}

// Exclude restricts an otherwise matching term ("but not ...").
// The term matches only if none of the exclusions match.
type Exclude struct {
	Inner      Term
	Exclusions []Exclusion
}

// Lookahead is a zero-width assertion on upcoming input.
type Lookahead struct {
	La La
}

// NoLineTerm is the zero-width [no LineTerminator here] assertion.
type NoLineTerm struct{}

// Prose is a free-text grammar fragment; it never matches input.
type Prose struct {
	Text string
}

func (Terminal) termNode()   {}
func (CharTerm) termNode()   {}
func (Name) termNode()       {}
func (Call) termNode()       {}
func (Optional) termNode()   {}
func (Exclude) termNode()    {}
func (Lookahead) termNode()  {}
func (NoLineTerm) termNode() {}
func (Prose) termNode()      {}

// ArgMode is the sigil attached to a parameterized call argument.
type ArgMode int

const (
	ArgFalse   ArgMode = iota // ~Param
	ArgTrue                   // +Param
	ArgInherit                // ?Param, caller's current value
)

// Arg is one argument at a parameterized call site.
type Arg struct {
	Name string
	Mode ArgMode
}

// La variants mirror the lookahead constraint forms of the meta-language.
type La interface {
	laNode()
}

// LaEq is [lookahead == t].
type LaEq struct {
	Terminal string
}

// LaNe is [lookahead != t].
type LaNe struct {
	Terminal string
}

// LaNotNt is [lookahead <! Nt]: the upcoming input must not start any
// derivation of the named nonterminal.
type LaNotNt struct {
	Name string
}

// LaNotInSet is [lookahead <! {seq, ...}]: the upcoming tokens must not
// match any of the listed terminal sequences.
type LaNotInSet struct {
	Seqs [][]string
}

func (LaEq) laNode()       {}
func (LaNe) laNode()       {}
func (LaNotNt) laNode()    {}
func (LaNotInSet) laNode() {}

// Exclusion variants of a "but not" clause.
type Exclusion interface {
	exclusionNode()
}

// ExTerminal excludes an exact terminal.
type ExTerminal struct {
	Text string
}

// ExName excludes anything matching the named nonterminal or token kind.
type ExName struct {
	Name string
}

// ExRange excludes characters in the inclusive range [Lo, Hi].
type ExRange struct {
	Lo, Hi rune
}

func (ExTerminal) exclusionNode() {}
func (ExName) exclusionNode()     {}
func (ExRange) exclusionNode()    {}

// Expr is a reduce expression attached to a production by "=>".
type Expr struct {
	Kind ExprKind
	// Ref is the matched-element index for RefExpr.
	Ref int
	// Name is the builder method name for CallExpr.
	Name string
	// Args are nested expressions for CallExpr, or the single inner
	// expression for SomeExpr.
	Args []*Expr
}

type ExprKind int

const (
	RefExpr  ExprKind = iota // $n
	CallExpr                 // method(arg, ...)
	SomeExpr                 // Some(arg)
	NoneExpr                 // None
)
