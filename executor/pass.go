package executor

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/duhBlu/gridfilter/eval"
	"github.com/duhBlu/gridfilter/query"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"
)

const DefaultBatchSizeRows = 1024

type (
	PassOptions struct {
		// worker goroutines, defaults to the number of CPUs
		Workers int

		// rows per batch, cancellation is checked between batches
		BatchSize int
	}
)

// Pass applies a compiled predicate to every row and returns the
// matching row indices in ascending order. Batches run on a worker
// pool; rows have no cross-row dependency so batch order does not
// matter, the stable output order is assembled afterwards. A canceled
// ctx abandons the pass without publishing partial results.
func Pass(ctx context.Context, cells []query.CellValue, pred *eval.Predicate, opts PassOptions) ([]int, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSizeRows
	}

	batches := (len(cells) + batchSize - 1) / batchSize
	perBatch := make([][]int, batches)

	passStart := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for b := 0; b < batches; b++ {
		b := b
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := b * batchSize
			end := min(start+batchSize, len(cells))

			matched := []int{}
			for i := start; i < end; i++ {
				if pred.Evaluate(cells[i]) {
					matched = append(matched, i)
				}
			}

			perBatch[b] = matched
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		color.Red("filter pass abandoned : %s", err.Error())
		return nil, err
	}

	total := 0
	for _, matched := range perBatch {
		total += len(matched)
	}

	out := make([]int, 0, total)
	for _, matched := range perBatch {
		out = append(out, matched...)
	}

	slog.Info("filter pass done",
		"rows", len(cells),
		"matched", len(out),
		"batches", batches,
		"took_ms", time.Since(passStart).Seconds()*1000,
	)

	return out, nil
}

// PassValues runs a pass over plain column values without grouping
// parents.
func PassValues(ctx context.Context, values []any, pred *eval.Predicate, opts PassOptions) ([]int, error) {
	cells := make([]query.CellValue, len(values))
	for i, v := range values {
		cells[i].Value = v
	}
	return Pass(ctx, cells, pred, opts)
}
