package stats

import (
	"context"
	"slices"

	"github.com/duhBlu/gridfilter/ops"
)

// values scanned between cancellation checks during a build
const buildBatchSize = 2048

type (
	// Context is a precomputed snapshot of one column's full value
	// distribution: distinct frequency table, arithmetic mean over the
	// coercible numeric values and an ascending rank order of distinct
	// values. Built once per filter pass, immutable afterwards, safe
	// to share across any number of concurrent evaluators.
	Context struct {
		freq map[any]int

		mean    float64
		hasMean bool

		// distinct non-null values ascending, with their rank index
		ordered []any
		ranks   map[any]int

		total, nulls int
	}
)

// Build scans the column's raw values once. The scan checks ctx
// between batches; an abandoned build publishes nothing.
func Build(ctx context.Context, values []any) (*Context, error) {
	freq := map[any]int{}
	rep := map[any]any{}

	var numericSum float64
	numericCount := 0
	nulls := 0

	for i, v := range values {
		if i%buildBatchSize == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		k := ops.MapKey(v)
		if freq[k] == 0 {
			rep[k] = v
		}
		freq[k]++

		if v == nil {
			nulls++
			continue
		}

		// non-numeric and null values stay out of both the numerator
		// and the denominator
		if coerced := ops.Coerce(v); coerced.Kind == ops.KindNumber {
			numericSum += coerced.Num
			numericCount++
		}
	}

	nullK := ops.MapKey(nil)

	ordered := make([]any, 0, len(rep))
	for k, v := range rep {
		if k == nullK {
			continue
		}
		ordered = append(ordered, v)
	}
	slices.SortStableFunc(ordered, ops.Compare)

	ranks := make(map[any]int, len(ordered))
	for idx, v := range ordered {
		ranks[ops.MapKey(v)] = idx
	}

	built := &Context{
		freq:    freq,
		ordered: ordered,
		ranks:   ranks,
		total:   len(values),
		nulls:   nulls,
	}

	if numericCount > 0 {
		built.mean = numericSum / float64(numericCount)
		built.hasMean = true
	}

	return built, nil
}

// Frequency is the occurrence count of v in the scanned column,
// null-safe.
func (c *Context) Frequency(v any) int {
	return c.freq[ops.MapKey(v)]
}

// Mean reports the arithmetic mean over the column's coercible numeric
// values, false when the column held none.
func (c *Context) Mean() (float64, bool) {
	return c.mean, c.hasMean
}

// RankFromTop is the distinct rank of v counted from the highest
// value, 0 for the highest. False when v is null or unseen.
func (c *Context) RankFromTop(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	idx, seen := c.ranks[ops.MapKey(v)]
	if !seen {
		return 0, false
	}
	return len(c.ordered) - 1 - idx, true
}

// RankFromBottom is the distinct rank of v counted from the lowest
// value, 0 for the lowest.
func (c *Context) RankFromBottom(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	idx, seen := c.ranks[ops.MapKey(v)]
	return idx, seen
}

// Distinct returns the column's distinct non-null values in ascending
// order. The slice is a copy, callers may keep it.
func (c *Context) Distinct() []any {
	return slices.Clone(c.ordered)
}

// Domain is the column's full observed value domain for the optimizer:
// every distinct value, plus null when the column held any. Leaving an
// observed null out would break inclusion/exclusion equivalence for
// null rows.
func (c *Context) Domain() []any {
	domain := slices.Clone(c.ordered)
	if c.nulls > 0 {
		domain = append(domain, nil)
	}
	return domain
}

func (c *Context) DistinctLen() int { return len(c.ordered) }

func (c *Context) NullCount() int { return c.nulls }

func (c *Context) Len() int { return c.total }
