// Package cmd implements the pgen command line.
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pgen-go/pgen/ast"
	"github.com/pgen-go/pgen/grammar"
	"github.com/pgen-go/pgen/langdef"
)

var dialect string

var rootCmd = &cobra.Command{
	Use:          "pgen",
	Short:        "pgen - grammar analysis and parser construction",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dialect, "dialect", "",
		`grammar dialect, "pgen" or "esgrammar", default is by file suffix`)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
}

// loadGrammar reads and compiles one grammar file. The dialect comes
// from the --dialect flag or the file suffix, .esgrammar selects the
// extended one.
func loadGrammar(path string) (*grammar.Grammar, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var tree *ast.Grammar
	if useESDialect(path) {
		tree, err = langdef.ParseESGrammarBytes(path, content)
	} else {
		tree, err = langdef.ParsePgenBytes(path, content)
	}
	if err != nil {
		return nil, err
	}

	return grammar.Build(tree)
}

func useESDialect(path string) bool {
	if dialect != "" {
		return dialect == "esgrammar"
	}
	return filepath.Ext(path) == ".esgrammar"
}
