// Package dataset drives the parallel-worker binning loop: it draws random
// SPN candidates, runs them through synthesis, repair, reachability and
// validity filtering, and classifies accepted results into a (places x
// transitions x state-bucket) grid until every bin holds its target count
// or its (places, transitions) pair's attempt cap is spent.
package dataset

import (
	"log"

	"github.com/spnforge/spngen/markov"
)

// Config configures a Generate run. Use NewConfig and its With... builder
// methods, matching the reachability.Analyzer / sensitivity.Analyzer
// builder shape.
type Config struct {
	PRange    [2]int
	TRange    [2]int
	StateBins []int // sorted bucket boundaries b1 < b2 < ... < bk
	PerBin    int

	Prob      float64
	LambdaMax int

	MiniBatchSize int
	WorkerCount   int
	MasterSeed    int64
	AttemptCap    int // cap on candidates drawn for a (P, T) pair, shared across its buckets, before an unfilled bucket is reported unfillable; 0 disables the cap

	Strategy markov.Strategy
	Logger   *log.Logger
	Sinks    []Sink
	// EventLog, if set, receives one event per candidate state transition
	// (CANDIDATE -> CONNECTED -> BOUNDED -> SOLVABLE -> VALID/INVALID).
	EventLog EventRecorder
}

// NewConfig returns a Config with the reference defaults: place_limit and
// mark_limit are left to reachability.DefaultLimits() by the pipeline that
// consumes this Config, not duplicated here.
func NewConfig(pRange, tRange [2]int, stateBins []int, perBin int) *Config {
	return &Config{
		PRange:        pRange,
		TRange:        tRange,
		StateBins:     stateBins,
		PerBin:        perBin,
		Prob:          0.5,
		LambdaMax:     5,
		MiniBatchSize: 8,
		WorkerCount:   4,
		MasterSeed:    1,
		AttemptCap:    0,
		Strategy:      markov.Exact,
		Logger:        log.Default(),
	}
}

func (c *Config) WithProb(prob float64) *Config        { c.Prob = prob; return c }
func (c *Config) WithLambdaMax(lambdaMax int) *Config   { c.LambdaMax = lambdaMax; return c }
func (c *Config) WithMiniBatchSize(n int) *Config       { c.MiniBatchSize = n; return c }
func (c *Config) WithWorkerCount(n int) *Config         { c.WorkerCount = n; return c }
func (c *Config) WithMasterSeed(seed int64) *Config     { c.MasterSeed = seed; return c }
func (c *Config) WithAttemptCap(n int) *Config          { c.AttemptCap = n; return c }
func (c *Config) WithStrategy(s markov.Strategy) *Config { c.Strategy = s; return c }
func (c *Config) WithLogger(l *log.Logger) *Config      { c.Logger = l; return c }
func (c *Config) WithSinks(sinks ...Sink) *Config       { c.Sinks = sinks; return c }
func (c *Config) WithEventLog(r EventRecorder) *Config  { c.EventLog = r; return c }
