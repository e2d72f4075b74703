package main

import (
	"fmt"
	"os"

	"github.com/cypherplan/cyq/src/parser"
)

func lintCommand(args []string) error {
	if len(args) != 1 {
		return usageErrorf(2, "Usage: cyq lint <file>")
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

	if _, err := p.Parse(string(content)); err != nil {
		return usageErrorf(1, "%s: %v", filename, err)
	}

	fmt.Printf("%s: OK\n", filename)
	return nil
}
