package dataset

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	"github.com/spnforge/spngen/reachability"
	"github.com/spnforge/spngen/spn"
	"github.com/spnforge/spngen/validity"
)

// ErrBinUnfillable is logged (not returned) when a bin's attempt cap is
// spent without reaching its target; Generate keeps running the other
// bins and returns whatever it filled.
var ErrBinUnfillable = fmt.Errorf("dataset: bin unfillable within attempt cap")

// UnfilledBin reports a bin that never reached its target by the time
// Generate stopped, along with how many attempts were spent on its
// (P, T) pair; that count is shared by every bucket of the pair.
type UnfilledBin struct {
	P, T, Bucket int
	Accepted     int
	Attempts     int
}

// Result is the outcome of one Generate run.
type Result struct {
	Accepted []Accepted
	Unfilled []UnfilledBin
}

// recordEvent is a nil-safe convenience wrapper; cfg.EventLog's own
// implementation (JSONLRecorder) is responsible for serializing concurrent
// calls from multiple workers.
func recordEvent(cfg *Config, id uuid.UUID, state, reason string) {
	if cfg.EventLog != nil {
		cfg.EventLog.Record(id, state, reason)
	}
}

// Generate runs the binning loop: WorkerCount workers each repeatedly draw
// random (P, T) within range, synthesize a mini-batch, repair and filter
// each candidate, and submit VALID results to the coordinator's
// mutex-guarded bin table. It returns once every bin is full, ctx is
// cancelled, or (with a positive AttemptCap) every unfilled bin's (P, T)
// pair has spent its cap, whichever comes first. If a sink write failed,
// the first such error is returned together with the partial Result.
func Generate(ctx context.Context, cfg *Config) (*Result, error) {
	if cfg.PRange[0] < 1 || cfg.PRange[0] > cfg.PRange[1] {
		return nil, fmt.Errorf("%w: invalid P range %v", spn.ErrInvalidParameters, cfg.PRange)
	}
	if cfg.TRange[0] < 1 || cfg.TRange[0] > cfg.TRange[1] {
		return nil, fmt.Errorf("%w: invalid T range %v", spn.ErrInvalidParameters, cfg.TRange)
	}
	if cfg.PerBin < 1 {
		return nil, fmt.Errorf("%w: per_bin must be >= 1, got %d", spn.ErrInvalidParameters, cfg.PerBin)
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("%w: worker_count must be >= 1, got %d", spn.ErrInvalidParameters, cfg.WorkerCount)
	}

	table := newBinTable(cfg.PRange, cfg.TRange, cfg.StateBins, cfg.PerBin)

	var resultMu sync.Mutex
	var accepted []Accepted
	var sinkErr error
	warned := make(map[binKey]bool)

	var wg sync.WaitGroup
	for worker := 0; worker < cfg.WorkerCount; worker++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(cfg.MasterSeed + int64(workerID)))

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if table.doneOrCapped(cfg.AttemptCap) {
					return
				}

				p := cfg.PRange[0] + rng.Intn(cfg.PRange[1]-cfg.PRange[0]+1)
				t := cfg.TRange[0] + rng.Intn(cfg.TRange[1]-cfg.TRange[0]+1)

				batch, err := spn.SynthesizeMany(p, t, cfg.Prob, cfg.LambdaMax, cfg.MiniBatchSize, false, rng)
				if err != nil {
					cfg.Logger.Printf("dataset: worker %d: synthesize P=%d T=%d: %v", workerID, p, t, err)
					continue
				}

				for _, cand := range batch {
					select {
					case <-ctx.Done():
						return
					default:
					}

					table.recordAttempt(p, t)

					id := uuid.New()
					recordEvent(cfg, id, string(validity.Candidate), "")

					cand.Matrix.AddEdgesToIsolatedNodes(rng)
					outcome := validity.Filter(cand.Matrix, cand.Lambda, validity.Options{
						Limits:   reachability.DefaultLimits(),
						Strategy: cfg.Strategy,
					})

					// Record every intermediate state the candidate held: all of
					// them on VALID, up to and including FailedAt on INVALID.
					held := outcome.State == validity.Valid || outcome.FailedAt != validity.Candidate
					for _, s := range []validity.State{validity.Connected, validity.Bounded, validity.Solvable} {
						if !held {
							break
						}
						recordEvent(cfg, id, string(s), "")
						if outcome.State == validity.Invalid && outcome.FailedAt == s {
							held = false
						}
					}

					if outcome.State == validity.Invalid {
						recordEvent(cfg, id, string(outcome.FailedAt)+"->INVALID", outcome.Reason)
					} else {
						recordEvent(cfg, id, string(outcome.State), "")
					}

					if outcome.State != validity.Valid {
						continue
					}

					k := binKey{P: p, T: t, Bucket: bucket(outcome.Record.Graph.StateCount(), cfg.StateBins)}
					if !table.tryAccept(k) {
						continue
					}

					a := Accepted{ID: id, P: p, T: t, Bucket: k.Bucket, Record: outcome.Record}

					resultMu.Lock()
					accepted = append(accepted, a)
					resultMu.Unlock()

					// Each Sink implementation is responsible for its own
					// internal synchronization (see CSVSink, SQLiteSink,
					// SVGSink); calling them outside resultMu keeps slow
					// I/O from blocking unrelated workers' bin bookkeeping.
					for _, sink := range cfg.Sinks {
						if err := sink.Write(a); err != nil {
							cfg.Logger.Printf("dataset: worker %d: sink write failed for %s: %v", workerID, a.ID, err)
							resultMu.Lock()
							if sinkErr == nil {
								sinkErr = fmt.Errorf("dataset: sink write failed for %s: %w", a.ID, err)
							}
							resultMu.Unlock()
						}
					}
				}

				if cfg.AttemptCap > 0 {
					for k, n := range table.unfilled() {
						if n >= cfg.AttemptCap {
							resultMu.Lock()
							already := warned[k]
							warned[k] = true
							resultMu.Unlock()
							if !already {
								cfg.Logger.Printf("%v: places=%d transitions=%d bucket=%d after %d attempts", ErrBinUnfillable, k.P, k.T, k.Bucket, n)
							}
						}
					}
				}
			}
		}(worker)
	}
	wg.Wait()

	res := &Result{Accepted: accepted}
	for k, attempts := range table.unfilled() {
		table.mu.Lock()
		count := table.counts[k]
		table.mu.Unlock()
		res.Unfilled = append(res.Unfilled, UnfilledBin{P: k.P, T: k.T, Bucket: k.Bucket, Accepted: count, Attempts: attempts})
	}

	return res, sinkErr
}
