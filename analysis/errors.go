package analysis

import (
	"github.com/pgen-go/pgen"
)

// Error codes used by analysis:
const (
	AmbiguousGrammarError = pgen.AnalysisErrors + iota
	RecursionError
	TooManyParamsError
)

func ambiguousGrammarError(nt, detail string) *pgen.Error {
	return pgen.FormatError(AmbiguousGrammarError, "alternatives of %q cannot be distinguished: %s", nt, detail)
}

func recursionError(nt string) *pgen.Error {
	return pgen.FormatError(RecursionError, "%q derives itself at its left edge", nt)
}

func tooManyParamsError(nt string, count int) *pgen.Error {
	return pgen.FormatError(TooManyParamsError, "%q has %d parameters, at most %d are supported", nt, count, maxParams)
}
