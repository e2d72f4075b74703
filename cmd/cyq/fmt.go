package main

import (
	"fmt"
	"os"

	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/parser"
)

func fmtCommand(args []string) error {
	if len(args) != 1 {
		return usageErrorf(2, "Usage: cyq fmt <file>")
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	p, err := parser.New()
	if err != nil {
		return err
	}

	query, err := p.Parse(string(content))
	if err != nil {
		return usageErrorf(1, "%s: %v", filename, err)
	}

	fmt.Println(ast.Print(query))
	return nil
}
