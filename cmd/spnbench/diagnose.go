package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/spnforge/spngen/dataset"
)

func diagnose(args []string) error {
	fs := flag.NewFlagSet("diagnose", flag.ExitOnError)
	logPath := fs.String("log", "", "path to a JSONL audit trail written by generate -event-log")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *logPath == "" {
		return fmt.Errorf("-log is required")
	}

	f, err := os.Open(*logPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", *logPath, err)
	}
	defer f.Close()

	breakdown, err := dataset.Diagnose(f)
	if err != nil {
		return err
	}

	fmt.Printf("%d cases, %d accepted\n", breakdown.Summary.NumCases, breakdown.Accepted)
	stages := make([]string, 0, len(breakdown.FailedAt))
	for stage := range breakdown.FailedAt {
		stages = append(stages, stage)
	}
	sort.Strings(stages)
	for _, stage := range stages {
		fmt.Printf("  %s: %d\n", stage, breakdown.FailedAt[stage])
	}
	return nil
}
