/*
Package pgen is a parser-generator engine: it reads a grammar written in a
small meta-language, builds a normalized grammar model, analyzes it, and
synthesizes a parser for token streams conforming to that grammar.

Consists of subpackages:
  - source: named source text with position mapping, used by the lexer;
  - lexer: lexical analyzer for the meta-language dialects;
  - ast: abstract syntax tree produced by the meta-grammar parser;
  - langdef: converts meta-language text (pgen or esgrammar dialect) to an AST;
  - grammar: lowers an AST to a validated grammar model;
  - analysis: computes nullable productions and FIRST sets, detects ambiguity;
  - parser: synthesizes a reusable parser from a grammar model;
  - cmd/pgen: console utility checking grammar files and dumping grammar models.

Typical usage is:

1. Describe a grammar in one of the two dialects (see langdef docs).

2. Parse it with langdef.ParsePgenString or langdef.ParseESGrammarString
and lower the result with grammar.Build.

3. Create a parser with parser.New and feed it token streams; the result of
each Parse call is a parse tree annotated with the grammar's action tags.
*/
package pgen

import (
	"fmt"
)

// Error classes used by subpackages, each class contains up to 99 error codes:
const (
	LangDefErrors  = 1   // used by lexer and langdef
	ModelErrors    = 101 // used by grammar
	AnalysisErrors = 201 // used by analysis
	ParseErrors    = 301 // used by parser
)

// Error is the error type used by pgen subpackages.
type Error struct {
	// Code contains non-zero error code.
	Code int

	// Message contains non-empty error message including source name and position information if provided.
	Message string

	// SourceName contains source name that caused this error or empty string.
	SourceName string

	// Line contains line number in source file or 0.
	Line int

	// Col contains column number in source file or 0.
	Col int
}

// SourcePos is used to retrieve source name and position information when constructing an error;
// source.Pos and lexer.Token implement this interface.
type SourcePos interface {
	// SourceName returns source file name or empty string.
	SourceName() string
	// Line returns line number or 0.
	Line() int
	// Col returns column number or 0.
	Col() int
}

// NewError creates new Error structure.
// name, line, and col will be added to error message if provided (non-zero).
func NewError(code int, msg, name string, line, col int) *Error {
	if name != "" && line != 0 && col != 0 {
		msg += fmt.Sprintf(" in %s at line %d col %d", name, line, col)
	}
	return &Error{code, msg, name, line, col}
}

// Error simply returns Error.Message.
func (e *Error) Error() string {
	return e.Message
}

// FormatError creates Error structure with no source and position information.
// params will be added to error message using fmt.Sprintf function.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, "", 0, 0)
}

// FormatErrorPos creates Error structure with source and position information.
// pos must not be nil.
// params will be added to error message using fmt.Sprintf function.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return NewError(code, msg, pos.SourceName(), pos.Line(), pos.Col())
}
