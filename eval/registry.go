package eval

import (
	"errors"
	"fmt"
	"time"

	"github.com/duhBlu/gridfilter/query"
	"github.com/duhBlu/gridfilter/stats"
)

var (
	// ErrUnsupportedOperator means an operator outside the closed
	// taxonomy reached dispatch, a caller/version mismatch.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrContextRequired means a statistical or uniqueness operator
	// was compiled without a collection context. Failing fast here
	// beats silently returning an always-false predicate.
	ErrContextRequired = errors.New("collection context required")
)

type (
	// Env carries the shared per-pass state evaluators close over: the
	// column's collection context (nil for passes without statistical
	// operators) and the pass start time, recomputed every pass so
	// Today/Yesterday stay correct across a day boundary.
	Env struct {
		Context *stats.Context
		Now     time.Time
	}

	evalFunc func(cell query.CellValue, cond *query.Condition, env *Env) bool

	registryEntry struct {
		fn           evalFunc
		needsContext bool
	}
)

// one evaluator per operator, fixed at process start
var registry [query.NumOperators]registryEntry

func register(op query.Operator, needsContext bool, fn evalFunc) {
	registry[op] = registryEntry{fn: fn, needsContext: needsContext}
}

func lookup(op query.Operator) (registryEntry, error) {
	if !op.Known() || registry[op].fn == nil {
		return registryEntry{}, fmt.Errorf("%w: %v", ErrUnsupportedOperator, byte(op))
	}
	return registry[op], nil
}

// Dispatch evaluates a single condition against one cell, resolving
// the evaluator on every call. The compiled predicate path must agree
// with this one on every row; tests pin that down.
func Dispatch(cell query.CellValue, cond *query.Condition, env *Env) (bool, error) {
	entry, err := lookup(cond.Operator)
	if err != nil {
		return false, err
	}

	if env == nil {
		env = &Env{Now: time.Now()}
	}
	if entry.needsContext && env.Context == nil {
		return false, fmt.Errorf("operator %s : %w", cond.Operator.String(), ErrContextRequired)
	}

	return entry.fn(cell, cond, env), nil
}
