package parser

import (
	"github.com/pgen-go/pgen"
)

// Error codes used by parser:
const (
	UnexpectedTokenError = pgen.ParseErrors + iota
	UnexpectedEofError
	UnknownGoalError
	NoPatternError
	UnmatchedInputError
)

func unexpectedTokenError(t *Token, expected string) *pgen.Error {
	return pgen.NewError(UnexpectedTokenError,
		"unexpected "+t.Describe()+", expecting "+expected, t.SourceName, t.Line, t.Col)
}

func unexpectedEofError(t *Token, expected string) *pgen.Error {
	return pgen.NewError(UnexpectedEofError,
		"unexpected end of input, expecting "+expected, t.SourceName, t.Line, t.Col)
}

func unknownGoalError(name string) *pgen.Error {
	return pgen.FormatError(UnknownGoalError, "%q is not a goal nonterminal", name)
}

func noPatternError(name string) *pgen.Error {
	return pgen.FormatError(NoPatternError, "no pattern given for token %q", name)
}

func unmatchedInputError(t *Token) *pgen.Error {
	return pgen.NewError(UnmatchedInputError,
		"input past the end of the goal: "+t.Describe(), t.SourceName, t.Line, t.Col)
}
