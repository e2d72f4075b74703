// Command cyq is a development tool for the Cypher front-end: it parses,
// formats, plans, and explains Cypher query text from the command line, the
// way the teacher's cmd/cyq let a developer exercise its driver outside a
// running application.
package main

import (
	"errors"
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "lint":
		err = lintCommand(args)
	case "fmt":
		err = fmtCommand(args)
	case "plan":
		err = planCommand(args)
	case "explain":
		err = explainCommand(args)
	case "version", "--version", "-v":
		err = versionCommand()
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.Error() != "" {
				fmt.Fprintln(os.Stderr, exitErr.Error())
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("cyq - Cypher front-end tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cyq lint <file>                         - Parse and report syntax errors")
	fmt.Println("  cyq fmt <file>                           - Print the canonical textual form")
	fmt.Println("  cyq plan <file> [--graph name] [--catalog fixture.yaml]   - Print the compiled plan tree")
	fmt.Println("  cyq explain <file> [--graph name] [--catalog fixture.yaml] - Plan tree plus final binding set")
	fmt.Println("  cyq version                             - Show version information")
}

func versionCommand() error {
	fmt.Printf("cyq version %s\n", version)
	return nil
}
