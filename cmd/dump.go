package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var dumpOutput string

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Compile a grammar file and print its structure as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGrammar(args[0])
		if err != nil {
			return err
		}

		content, err := yaml.Marshal(g)
		if err != nil {
			return err
		}

		if dumpOutput == "" {
			_, err = os.Stdout.Write(content)
			return err
		}
		return os.WriteFile(dumpOutput, content, 0o644)
	},
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpOutput, "output", "o", "", "output file, default is standard output")
}
