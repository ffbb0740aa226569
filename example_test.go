package pgen_test

import (
	"fmt"

	"github.com/pgen-go/pgen/grammar"
	"github.com/pgen-go/pgen/langdef"
	"github.com/pgen-go/pgen/parser"
	"github.com/pgen-go/pgen/source"
)

const calcGrammar = `
var token number;

goal nt sum {
	product "+" sum => add($0, $2);
	product => $0;
}

nt product {
	number "*" product => mul($0, $2);
	number => $0;
}
`

func Example() {
	tree, e := langdef.ParsePgenString("calc", calcGrammar)

	var g *grammar.Grammar
	if e == nil {
		g, e = grammar.Build(tree)
	}

	var p *parser.Parser
	if e == nil {
		p, e = parser.New(g)
	}

	var sc *parser.Scanner
	if e == nil {
		sc, e = parser.NewScanner(g, map[string]string{"number": `\d+`},
			source.New("input", []byte("2 * 3 + 4")))
	}

	var node *parser.Node
	if e == nil {
		node, e = p.Parse("sum", sc)
	}

	if e == nil {
		fmt.Println(node)
	} else {
		fmt.Println(e)
	}

	// Output: add(mul(2, 3), 4)
}
