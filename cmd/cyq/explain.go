package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cypherplan/cyq/src/ast"
	"github.com/cypherplan/cyq/src/parser"
	"github.com/cypherplan/cyq/src/transform"
)

func explainCommand(args []string) error {
	fs := flag.NewFlagSet("explain", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	graphFlag := fs.String("graph", "default", "graph name the query runs against")
	catalogFlag := fs.String("catalog", "", "path to a fixture YAML file")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return &exitError{code: 0}
		}
		return usageErrorf(2, "%v", err)
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return usageErrorf(2, "Usage: cyq explain <file> [--graph name] [--catalog fixture.yaml]")
	}

	content, err := os.ReadFile(rest[0])
	if err != nil {
		return err
	}

	p, err := parser.New()
	if err != nil {
		return err
	}
	rq, err := p.Parse(string(content))
	if err != nil {
		return usageErrorf(1, "%s: %v", rest[0], err)
	}

	cat, err := loadCatalogAndGraph(*catalogFlag, *graphFlag)
	if err != nil {
		return err
	}
	ctx, err := transform.NewContext(cat, *graphFlag)
	if err != nil {
		return err
	}

	compiled, err := transform.TransformQuery(ctx, rq)
	if err != nil {
		return usageErrorf(1, "%s: %v", rest[0], err)
	}

	fmt.Printf("query: %s\n\n", ast.Print(rq))
	fmt.Println("plan:")
	writePlanTree(os.Stdout, compiled.Root)

	fmt.Println("\nfinal bindings:")
	writeBindings(os.Stdout, ctx.Resolver.Visible())

	if len(ctx.ExistsPlans) > 0 {
		fmt.Println("\nEXISTS subplans:")
		for _, sub := range ctx.ExistsPlans {
			writePlanTree(os.Stdout, sub.Root)
		}
	}
	return nil
}
