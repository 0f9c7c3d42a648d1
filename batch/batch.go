package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/byte4ever/tokenrender/logging"
	"github.com/byte4ever/tokenrender/records"
	"github.com/byte4ever/tokenrender/tokenlist"
	"github.com/byte4ever/tokenrender/values"
)

// Config holds all settings for a batch run.
type Config struct {
	// Template is rendered once per record.
	Template *tokenlist.Template

	// Source yields the records.
	Source records.Source

	// Tags wraps record field names into tokens. A field X
	// always backs the token Start+X+End, even when a record
	// also carries a raw key spelled that way.
	Tags values.Tags

	// Out receives rendered outputs in record order.
	Out io.Writer

	// Separator is written between two outputs.
	Separator string

	// Parallelism is the number of concurrent render
	// workers. Values below one mean one.
	Parallelism int

	// Logger defaults to logging.Nop().
	Logger *slog.Logger
}

// Stats summarises a run.
type Stats struct {
	RunID    string
	Records  int
	Rendered int
	Failed   int
}

// Run reads every record from cfg.Source, renders it and
// writes the results to cfg.Out. Records that fail to
// render are left out of the output; their errors are
// reported together once all records were processed.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	const errCtx = "running batch"

	stats := Stats{RunID: uuid.NewString()}

	if cfg.Template == nil || cfg.Source == nil || cfg.Out == nil {
		return stats, fmt.Errorf(
			"%s: template, source and output are required",
			errCtx,
		)
	}

	lg := cfg.Logger
	if lg == nil {
		lg = logging.Nop()
	}

	lg = lg.With("run", stats.RunID)

	recs, err := cfg.Source.Read(ctx)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", errCtx, err)
	}

	stats.Records = len(recs)

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	lg.Info(
		"rendering records",
		"count", len(recs),
		"parallelism", parallelism,
	)

	// Keyed resolves a wrapped field before a raw key that
	// happens to spell the same token.
	render := func(rc records.Record) (string, error) {
		return cfg.Template.Render(cfg.Tags.Keyed(rc))
	}

	outs, fails, err := renderAll(ctx, render, recs, parallelism)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", errCtx, err)
	}

	var errs []error

	first := true

	for idx, out := range outs {
		if fails[idx] != nil {
			lg.Warn(
				"record failed",
				"record", idx+1,
				"error", fails[idx],
			)

			errs = append(errs, fails[idx])

			continue
		}

		if !first && cfg.Separator != "" {
			if _, err := io.WriteString(
				cfg.Out, cfg.Separator,
			); err != nil {
				return stats, fmt.Errorf(
					"%s: writing separator: %w",
					errCtx, err,
				)
			}
		}

		first = false

		if _, err := io.WriteString(cfg.Out, out); err != nil {
			return stats, fmt.Errorf(
				"%s: writing output: %w", errCtx, err,
			)
		}

		stats.Rendered++
	}

	stats.Failed = len(errs)

	lg.Info(
		"batch finished",
		"rendered", stats.Rendered,
		"failed", stats.Failed,
	)

	if len(errs) > 0 {
		return stats, fmt.Errorf(
			"%s: %d errors, first: %w",
			errCtx, len(errs), errs[0],
		)
	}

	return stats, nil
}

// renderAll renders recs with a worker pool bounded by
// parallelism. outs and fails are indexed like recs.
// Cancellation stops dispatching even while every worker
// slot is busy.
func renderAll(
	ctx context.Context,
	render func(records.Record) (string, error),
	recs []records.Record,
	parallelism int,
) ([]string, []error, error) {
	outs := make([]string, len(recs))
	fails := make([]error, len(recs))

	var (
		wg      sync.WaitGroup
		stopped error
	)

	sem := make(chan struct{}, parallelism)

dispatch:
	for idx, rec := range recs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			stopped = ctx.Err()

			break dispatch
		}

		// Both cases may be ready at once; cancellation wins.
		if ctx.Err() != nil {
			<-sem
			stopped = ctx.Err()

			break
		}

		wg.Add(1)

		go func(n int, rc records.Record) {
			defer wg.Done()
			defer func() { <-sem }()

			out, err := render(rc)
			if err != nil {
				fails[n] = fmt.Errorf("record %d: %w", n+1, err)

				return
			}

			outs[n] = out
		}(idx, rec)
	}

	wg.Wait()

	if stopped != nil {
		return nil, nil, stopped
	}

	return outs, fails, nil
}
