package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pgen-go/pgen/analysis"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Compile and analyze grammar files, report defects",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := 0
		for _, path := range args {
			if !checkFile(path) {
				failed++
			}
		}
		if failed > 0 {
			os.Exit(1)
		}
	},
}

func checkFile(path string) bool {
	g, err := loadGrammar(path)
	var a *analysis.Analysis
	if err == nil {
		a, err = analysis.Analyze(g)
	}

	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		return false
	}

	color.New(color.FgGreen).Printf("ok: ")
	fmt.Printf("%s: %d terminals, %d nonterminals, %d instantiations\n",
		path, len(g.Terms), len(g.Nonterms), len(a.Insts()))
	return true
}
