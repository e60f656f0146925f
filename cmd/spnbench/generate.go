package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spnforge/spngen/dataset"
	"github.com/spnforge/spngen/eventlog"
)

func generate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	places := fs.String("places", "2:6", "place count range, min:max")
	transitions := fs.String("transitions", "2:6", "transition count range, min:max")
	bins := fs.String("bins", "10,50,200", "comma-separated state-count bucket boundaries")
	perBin := fs.Int("per-bin", 20, "target accepted SPNs per bin")
	prob := fs.Float64("prob", 0.5, "arc density probability")
	lambdaMax := fs.Int("lambda-max", 5, "maximum firing rate")
	workers := fs.Int("workers", 4, "worker count")
	seed := fs.Int64("seed", 1, "master RNG seed")
	attemptCap := fs.Int("attempt-cap", 0, "attempt cap per (places, transitions) pair, shared by its bins, 0 disables")
	out := fs.String("out", "metadata.csv", "metadata CSV output path")
	svgDir := fs.String("svg-dir", "", "if set, render each accepted candidate's structure to an SVG file in this directory")
	eventLog := fs.String("event-log", "", "if set, write a JSONL audit trail of every candidate's state transitions to this path")
	sampleTransient := fs.Bool("sample-transient", false, "report how quickly the first accepted candidate's distribution relaxes to steady state")

	if err := fs.Parse(args); err != nil {
		return err
	}

	pRange, err := parseRange(*places)
	if err != nil {
		return fmt.Errorf("-places: %w", err)
	}
	tRange, err := parseRange(*transitions)
	if err != nil {
		return fmt.Errorf("-transitions: %w", err)
	}
	stateBins, err := parseInts(*bins)
	if err != nil {
		return fmt.Errorf("-bins: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *out, err)
	}
	defer f.Close()

	sink, err := dataset.NewCSVSink(f, "h5")
	if err != nil {
		return err
	}
	sinks := []dataset.Sink{sink}

	if *svgDir != "" {
		if err := os.MkdirAll(*svgDir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", *svgDir, err)
		}
		sinks = append(sinks, dataset.NewSVGSink(*svgDir))
	}

	cfg := dataset.NewConfig(pRange, tRange, stateBins, *perBin).
		WithProb(*prob).
		WithLambdaMax(*lambdaMax).
		WithWorkerCount(*workers).
		WithMasterSeed(*seed).
		WithAttemptCap(*attemptCap).
		WithSinks(sinks...)

	if *eventLog != "" {
		logFile, err := os.Create(*eventLog)
		if err != nil {
			return fmt.Errorf("creating %s: %w", *eventLog, err)
		}
		defer logFile.Close()
		cfg = cfg.WithEventLog(dataset.NewJSONLRecorder(eventlog.NewWriter(logFile)))
	}

	res, err := dataset.Generate(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Printf("accepted %d SPNs across %d bins, %d bins unfilled\n", len(res.Accepted), binCount(stateBins, pRange, tRange), len(res.Unfilled))
	for _, u := range res.Unfilled {
		fmt.Printf("  unfilled: places=%d transitions=%d bucket=%d accepted=%d attempts=%d\n", u.P, u.T, u.Bucket, u.Accepted, u.Attempts)
	}

	if *sampleTransient && len(res.Accepted) > 0 {
		sample, err := dataset.SampleRelaxation(res.Accepted[0], [2]float64{0, 50}, 1e-3)
		if err != nil {
			return err
		}
		fmt.Printf("relaxation sample for %s: settled within 1e-3 by t=%.2f\n", sample.ID, sample.SettledAt)
	}
	return nil
}

func binCount(bins []int, pRange, tRange [2]int) int {
	return (pRange[1] - pRange[0] + 1) * (tRange[1] - tRange[0] + 1) * (len(bins) + 1)
}

func parseRange(s string) ([2]int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("expected min:max, got %q", s)
	}
	lo, err := strconv.Atoi(parts[0])
	if err != nil {
		return [2]int{}, err
	}
	hi, err := strconv.Atoi(parts[1])
	if err != nil {
		return [2]int{}, err
	}
	return [2]int{lo, hi}, nil
}

func parseInts(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
