/*
Package langdef converts textual grammar descriptions to ast.Grammar trees.

Two meta-language dialects are supported.

# The pgen dialect

A free-form notation with insignificant line breaks. Token declarations come
first, nonterminal definitions follow, each production ends with a semicolon.
Self-definition of this dialect is:
*/
//  // token kinds: name, string, ref ($n), operators
//
//  grammar      { token-decls nt-defs };
//  token-decls  { token-decl token-decls; => ; };
//  token-decl   { "token" name "=" string ";";
//                 "var" "token" name ";"; };
//  nt-defs      { nt-def nt-defs; nt-def; };
//  nt-def       { "goal"? "nt" name "{" prods "}"; };
//  prods        { prod prods; prod; };
//  prod         { terms action? ";"; };
//  terms        { term terms; => ; };
//  term         { string "?"?; name "?"?; };
//  action       { "=>" expr; };
//  expr         { ref; "None"; "Some" "(" expr ")";
//                 name "(" exprs ")"; name "(" ")"; name; };
/*
Literal tokens (token Name = "text";) match their exact text. Free-form tokens
(var token Name;) stand for kinds whose text varies, identifiers or numbers,
and are matched by kind at parse time. A definition marked goal becomes a
start symbol. Line comments start with // and end at the line break.

A production without => gets a default reduce action: $0 when exactly one of
its symbols produces a value, otherwise a synthesized builder method named
after the nonterminal and the production index.

# The esgrammar dialect

The ECMArkup-flavored notation of the ECMAScript specification. Line breaks
are significant: a definition is a header line followed by one production per
line, terminated by a blank line. For example:

	IfStatement[Yield, Await] :
	    `if` `(` Expression[+In, ?Yield, ?Await] `)` Statement[?Yield, ?Await]

The header ends with ":" for syntactic definitions or "::" for lexical ones.
A bracketed suffix on the head names boolean parameters; call sites bind them
with sigils: +P passes true, ~P passes false, ?P passes the caller's value.
Every parameter of the callee must be bound at the call site.

In reduce expressions $n refers to the n-th matched element of the
production; zero-width assertions do not count.

The dialect also supports:

	Head : one of        flat terminal enumerations, one production per terminal
	[+P] / [~P]          production guards on a parameter value
	[lookahead == `t`]   zero-width assertions, also != and <! forms
	[no X here]          forbids an intervening line break
	Sym? and [empty]     optional symbols and the explicitly empty production
	X but not (one of)   exclusion clauses, with `through` character ranges
	<TAB>, U+0009        single-character terminals by abbreviation or code point
	#id                  production identifiers
	> prose              free-text fragments that never match input
	@ returns Type       result type annotation for the following definition

Both parsers return the same ast.Grammar shape; grammar.Build consumes either.
All errors returned by this package are *pgen.Error values carrying the
source name and position of the offending token.
*/
package langdef
