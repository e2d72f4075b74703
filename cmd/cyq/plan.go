package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cypherplan/cyq/src/catalog"
	"github.com/cypherplan/cyq/src/fixture"
	"github.com/cypherplan/cyq/src/parser"
	"github.com/cypherplan/cyq/src/transform"
)

// loadCatalogAndGraph resolves the --catalog/--graph flags shared by plan
// and explain: a fixture file if given, otherwise an empty in-memory graph
// under the requested name.
func loadCatalogAndGraph(catalogPath, graphName string) (catalog.Catalog, error) {
	if catalogPath == "" {
		c := catalog.NewMemCatalog()
		c.AddGraph(graphName)
		return c, nil
	}
	f, err := fixture.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	return f.Catalog, nil
}

func planCommand(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
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
		return usageErrorf(2, "Usage: cyq plan <file> [--graph name] [--catalog fixture.yaml]")
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

	plan, err := transform.TransformQuery(ctx, rq)
	if err != nil {
		return usageErrorf(1, "%s: %v", rest[0], err)
	}

	fmt.Printf("columns: %v\n", plan.Columns)
	writePlanTree(os.Stdout, plan.Root)
	for i, w := range plan.Writes {
		fmt.Printf("write[%d]: %s target=%s\n", i, writeOpText(w.Op), w.Target)
	}
	return nil
}
