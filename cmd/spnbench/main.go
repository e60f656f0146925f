// Command spnbench drives the binning generator from the command line.
// Argument parsing is intentionally minimal; this is a thin wrapper over
// dataset.Generate for manual runs and local experimentation, not a full
// CLI.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		if err := generate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "diagnose":
		if err := diagnose(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`spnbench - Stochastic Petri Net benchmark dataset generator

Usage:
  spnbench generate -places 2:6 -transitions 2:6 -bins 10,50,200 -per-bin 20 -out metadata.csv
  spnbench diagnose -log run.jsonl

Commands:
  generate    run the binning loop and write metadata.csv
  diagnose    summarize a generate -event-log audit trail by rejection stage
  help        show this message`)
}
