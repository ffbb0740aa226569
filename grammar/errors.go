package grammar

import (
	"github.com/pgen-go/pgen"
	"github.com/pgen-go/pgen/source"
)

// Error codes used by grammar:
const (
	UndefinedNameError = pgen.ModelErrors + iota
	RedefinedNontermError
	RedefinedTokenError
	WrongArgCountError
	UnknownParamError
	UnboundParamError
	UnknownGoalError
	NoDefsError
	BadRefError
)

func undefinedNameError(pos source.Pos, name string) *pgen.Error {
	return pgen.FormatErrorPos(pos, UndefinedNameError, "unknown name %q", name)
}

func redefinedNontermError(pos source.Pos, name string) *pgen.Error {
	return pgen.FormatErrorPos(pos, RedefinedNontermError, "nonterminal %q is already defined", name)
}

func redefinedTokenError(pos source.Pos, name string) *pgen.Error {
	return pgen.FormatErrorPos(pos, RedefinedTokenError, "token %q is already declared", name)
}

func wrongArgCountError(pos source.Pos, name string, got, want int) *pgen.Error {
	return pgen.FormatErrorPos(pos, WrongArgCountError, "%q takes %d argument(s), got %d", name, want, got)
}

func unknownParamError(pos source.Pos, nt, param string) *pgen.Error {
	return pgen.FormatErrorPos(pos, UnknownParamError, "%q has no parameter %q", nt, param)
}

func unboundParamError(pos source.Pos, param string) *pgen.Error {
	return pgen.FormatErrorPos(pos, UnboundParamError, "parameter %q is not bound here", param)
}

func unknownGoalError(name string) *pgen.Error {
	return pgen.FormatError(UnknownGoalError, "goal %q is not defined", name)
}

func noDefsError(name string) *pgen.Error {
	return pgen.FormatError(NoDefsError, "%s: grammar has no nonterminal definitions", name)
}

func badRefError(pos source.Pos, ref, max int) *pgen.Error {
	return pgen.FormatErrorPos(pos, BadRefError, "$%d does not name a matched element, production has %d", ref, max)
}
