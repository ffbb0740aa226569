package main

import (
	"os"

	"github.com/pgen-go/pgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
