package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/lead-ingest/internal/model"
)

// Defaults sized for the data provider's rate limits.
const (
	DefaultBatchSize       = 10
	DefaultInterChunkDelay = 2 * time.Second
)

// Processor resolves one record to a terminal outcome; implemented by
// resolve.Resolver.
type Processor interface {
	Process(ctx context.Context, rec model.RawRecord) (model.EntryOutcome, error)
}

// Sleeper waits between chunks; injectable so tests don't wait wall-clock
// time. The default honors context cancellation.
type Sleeper func(ctx context.Context, d time.Duration) error

func defaultSleeper(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// RunnerOptions tunes batch pacing.
type RunnerOptions struct {
	BatchSize       int
	InterChunkDelay time.Duration
	Sleep           Sleeper
}

// Runner orchestrates one ingestion batch: sequential entries within a chunk,
// chunks in input order, a fixed delay between chunks, and one retry pass over
// entries whose resolver call errored.
type Runner struct {
	proc  Processor
	batch int
	delay time.Duration
	sleep Sleeper
}

// NewRunner creates a runner; zero option fields take the defaults.
func NewRunner(proc Processor, opts RunnerOptions) *Runner {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.InterChunkDelay <= 0 {
		opts.InterChunkDelay = DefaultInterChunkDelay
	}
	if opts.Sleep == nil {
		opts.Sleep = defaultSleeper
	}
	return &Runner{proc: proc, batch: opts.BatchSize, delay: opts.InterChunkDelay, sleep: opts.Sleep}
}

// Run parses raw NDJSON text and processes every entry. The returned summary
// always reflects all parsed entries; the only error cases are zero parseable
// input and context cancellation during an inter-chunk delay.
func (r *Runner) Run(ctx context.Context, raw string) (*model.BatchSummary, error) {
	records, dropped, err := ParseLines(raw)
	if err != nil {
		return nil, err
	}
	return r.RunRecords(ctx, records, dropped)
}

type failedEntry struct {
	rec model.RawRecord
	err error
}

// RunRecords processes already-parsed records; used directly by the xlsx path.
func (r *Runner) RunRecords(ctx context.Context, records []model.RawRecord, dropped int) (*model.BatchSummary, error) {
	summary := &model.BatchSummary{DroppedLines: dropped}

	var failures []failedEntry
	for start := 0; start < len(records); start += r.batch {
		end := start + r.batch
		if end > len(records) {
			end = len(records)
		}
		for _, rec := range records[start:end] {
			out, err := r.processEntry(ctx, rec)
			if err != nil {
				failures = append(failures, failedEntry{rec: rec, err: err})
				continue
			}
			summary.Tally(out)
		}
		if end < len(records) {
			if err := r.sleep(ctx, r.delay); err != nil {
				return nil, err
			}
		}
	}

	// Retry pass: one more attempt per failed entry, in original order.
	for _, f := range failures {
		zap.L().Info("ingest: retrying failed entry", zap.Error(f.err))
		out, err := r.processEntry(ctx, f.rec)
		if err != nil {
			zap.L().Error("ingest: entry permanently failed", zap.Error(err))
			summary.Tally(model.EntryOutcome{Status: model.OutcomeFailed, Err: err.Error()})
			continue
		}
		summary.Tally(out)
	}

	summary.Summarize()
	zap.L().Info("ingest: batch done", zap.String("summary", summary.Message))
	return summary, nil
}

// processEntry shields the batch from a panicking resolver call; a panic is
// treated like any other per-entry error and hits the retry pass.
func (r *Runner) processEntry(ctx context.Context, rec model.RawRecord) (out model.EntryOutcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("ingest: entry panicked: %v", p)
		}
	}()
	return r.proc.Process(ctx, rec)
}
