package pgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewError(t *testing.T) {
	e := NewError(42, "something failed", "grammar.pgen", 3, 7)
	assert.Equal(t, 42, e.Code)
	assert.Equal(t, "something failed in grammar.pgen at line 3 col 7", e.Error())

	e = NewError(42, "something failed", "", 0, 0)
	assert.Equal(t, "something failed", e.Error())
}

func TestFormatError(t *testing.T) {
	e := FormatError(ModelErrors, "unknown name %q", "Foo")
	assert.Equal(t, ModelErrors, e.Code)
	assert.Equal(t, `unknown name "Foo"`, e.Message)
	assert.Equal(t, "", e.SourceName)
}

type testPos struct{}

func (testPos) SourceName() string { return "test.pgen" }
func (testPos) Line() int          { return 2 }
func (testPos) Col() int           { return 5 }

func TestFormatErrorPos(t *testing.T) {
	e := FormatErrorPos(testPos{}, 7, "bad token %q", "@")
	assert.Equal(t, `bad token "@" in test.pgen at line 2 col 5`, e.Message)
	assert.Equal(t, "test.pgen", e.SourceName)
	assert.Equal(t, 2, e.Line)
	assert.Equal(t, 5, e.Col)
}
