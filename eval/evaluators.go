package eval

import (
	"strings"
	"time"

	"github.com/duhBlu/gridfilter/ops"
	"github.com/duhBlu/gridfilter/query"
)

func init() {
	register(query.Equals, false, evalEquals)
	register(query.NotEquals, false, negate(evalEquals))

	register(query.GreaterThan, false, orderingEval(func(c int) bool { return c > 0 }))
	register(query.GreaterThanOrEqual, false, orderingEval(func(c int) bool { return c >= 0 }))
	register(query.LessThan, false, orderingEval(func(c int) bool { return c < 0 }))
	register(query.LessThanOrEqual, false, orderingEval(func(c int) bool { return c <= 0 }))
	register(query.Between, false, evalBetween)
	register(query.NotBetween, false, evalNotBetween)

	register(query.Contains, false, evalContains)
	register(query.NotContains, false, negate(evalContains))
	register(query.StartsWith, false, evalStartsWith)
	register(query.EndsWith, false, evalEndsWith)
	register(query.IsLike, false, evalIsLike)
	register(query.IsNotLike, false, negate(evalIsLike))

	register(query.IsAnyOf, false, evalIsAnyOf)
	register(query.IsNoneOf, false, negate(evalIsAnyOf))
	register(query.IsOnAnyOfDates, false, evalIsOnAnyOfDates)

	register(query.IsNull, false, evalIsNull)
	register(query.IsNotNull, false, negate(evalIsNull))
	register(query.IsBlank, false, evalIsBlank)
	register(query.IsNotBlank, false, negate(evalIsBlank))

	register(query.Today, false, evalToday)
	register(query.Yesterday, false, evalYesterday)
	register(query.BetweenDates, false, evalBetweenDates)
	register(query.DateInterval, false, evalDateInterval)

	register(query.TopN, true, evalTopN)
	register(query.BottomN, true, evalBottomN)
	register(query.AboveAverage, true, evalAboveAverage)
	register(query.BelowAverage, true, evalBelowAverage)

	register(query.IsUnique, true, evalIsUnique)
	register(query.IsDuplicate, true, evalIsDuplicate)

	register(query.GroupedInclusion, false, evalGroupedInclusion)
	register(query.GroupedExclusion, false, evalGroupedExclusion)
	register(query.GroupedCombination, false, evalGroupedCombination)
}

func negate(fn evalFunc) evalFunc {
	return func(cell query.CellValue, cond *query.Condition, env *Env) bool {
		return !fn(cell, cond, env)
	}
}

// equality

func evalEquals(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	return ops.Equals(cell.Value, cond.Primary())
}

// ordering
//
// nulls stay out of ordering comparisons entirely: a null value or a
// null operand fails every ordering operator

func orderingEval(accept func(int) bool) evalFunc {
	return func(cell query.CellValue, cond *query.Condition, _ *Env) bool {
		if cell.Value == nil || cond.Primary() == nil {
			return false
		}
		return accept(ops.Compare(cell.Value, cond.Primary()))
	}
}

// rangeBounds orders the two operands so reversed user input still
// forms a valid interval.
func rangeBounds(cond *query.Condition) (any, any) {
	low := cond.Primary()
	high, _ := cond.Secondary()

	if ops.Compare(low, high) > 0 {
		low, high = high, low
	}
	return low, high
}

// Between is the closed interval [low, high].
func evalBetween(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	if cond.Incomplete() {
		return true
	}
	if cell.Value == nil {
		return false
	}

	low, high := rangeBounds(cond)
	return ops.Compare(cell.Value, low) >= 0 && ops.Compare(cell.Value, high) <= 0
}

// NotBetween excludes exactly the closed [low, high] interval: the
// bounds themselves fail.
func evalNotBetween(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	if cond.Incomplete() {
		return true
	}
	if cell.Value == nil {
		return false
	}

	low, high := rangeBounds(cond)
	return ops.Compare(cell.Value, low) < 0 || ops.Compare(cell.Value, high) > 0
}

// string matching, on case-normalized text forms with null as ""

func evalContains(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	return strings.Contains(ops.Text(cell.Value), ops.Text(cond.Primary()))
}

func evalStartsWith(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	return strings.HasPrefix(ops.Text(cell.Value), ops.Text(cond.Primary()))
}

func evalEndsWith(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	return strings.HasSuffix(ops.Text(cell.Value), ops.Text(cond.Primary()))
}

func evalIsLike(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	return ops.Like(ops.Text(cell.Value), ops.Text(cond.Primary()))
}

// set membership

func evalIsAnyOf(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	for _, operand := range cond.Arguments {
		if ops.Equals(cell.Value, operand) {
			return true
		}
	}
	return false
}

func evalIsOnAnyOfDates(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	day, onDate := cellDate(cell)
	if !onDate {
		return false
	}

	for _, operand := range cond.Arguments {
		if operandDay, isDate := valueDate(operand); isDate && day.Equal(operandDay) {
			return true
		}
	}
	return false
}

// null/blank
//
// IsNull is strictly narrower than IsBlank: blank additionally covers
// values whose trimmed text form is empty

func evalIsNull(cell query.CellValue, _ *query.Condition, _ *Env) bool {
	return cell.Value == nil
}

func evalIsBlank(cell query.CellValue, _ *query.Condition, _ *Env) bool {
	if cell.Value == nil {
		return true
	}
	return strings.TrimSpace(ops.Text(cell.Value)) == ""
}

// date-relative, against the pass-start clock in env

func evalToday(cell query.CellValue, _ *query.Condition, env *Env) bool {
	day, onDate := cellDate(cell)
	return onDate && day.Equal(ops.DateOnly(env.Now))
}

func evalYesterday(cell query.CellValue, _ *query.Condition, env *Env) bool {
	day, onDate := cellDate(cell)
	return onDate && day.Equal(ops.DateOnly(env.Now.AddDate(0, 0, -1)))
}

// BetweenDates compares date portions only, closed on both ends.
func evalBetweenDates(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	if cond.Incomplete() {
		return true
	}

	day, onDate := cellDate(cell)
	if !onDate {
		return false
	}

	low, lowOk := valueDate(cond.Primary())
	secondary, _ := cond.Secondary()
	high, highOk := valueDate(secondary)
	if !lowOk || !highOk {
		return false
	}

	if high.Before(low) {
		low, high = high, low
	}
	return !day.Before(low) && !day.After(high)
}

// DateInterval is the closed interval over full timestamps.
func evalDateInterval(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	if cond.Incomplete() {
		return true
	}

	coerced := ops.Coerce(cell.Value)
	if coerced.Kind != ops.KindDate {
		return false
	}

	from := ops.Coerce(cond.Primary())
	secondary, _ := cond.Secondary()
	to := ops.Coerce(secondary)
	if from.Kind != ops.KindDate || to.Kind != ops.KindDate {
		return false
	}

	lowT, highT := from.Date, to.Date
	if highT.Before(lowT) {
		lowT, highT = highT, lowT
	}
	return !coerced.Date.Before(lowT) && !coerced.Date.After(highT)
}

// statistical, over the pass's collection context

func evalTopN(cell query.CellValue, cond *query.Condition, env *Env) bool {
	n := countArg(cond.Primary())
	if n <= 0 {
		return false
	}

	rank, seen := env.Context.RankFromTop(cell.Value)
	return seen && rank < n
}

func evalBottomN(cell query.CellValue, cond *query.Condition, env *Env) bool {
	n := countArg(cond.Primary())
	if n <= 0 {
		return false
	}

	rank, seen := env.Context.RankFromBottom(cell.Value)
	return seen && rank < n
}

// a value exactly equal to the mean passes neither direction

func evalAboveAverage(cell query.CellValue, _ *query.Condition, env *Env) bool {
	mean, hasMean := env.Context.Mean()
	if !hasMean {
		return false
	}

	coerced := ops.Coerce(cell.Value)
	return coerced.Kind == ops.KindNumber && coerced.Num > mean
}

func evalBelowAverage(cell query.CellValue, _ *query.Condition, env *Env) bool {
	mean, hasMean := env.Context.Mean()
	if !hasMean {
		return false
	}

	coerced := ops.Coerce(cell.Value)
	return coerced.Kind == ops.KindNumber && coerced.Num < mean
}

// uniqueness

func evalIsUnique(cell query.CellValue, _ *query.Condition, env *Env) bool {
	return cell.Value != nil && env.Context.Frequency(cell.Value) == 1
}

func evalIsDuplicate(cell query.CellValue, _ *query.Condition, env *Env) bool {
	return cell.Value != nil && env.Context.Frequency(cell.Value) > 1
}

// grouped filters: membership keyed first by the row's parent value,
// then by its leaf value

func evalGroupedInclusion(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	for _, group := range cond.Groups {
		if ops.Equals(cell.GroupKey, group.Key) {
			return containsValue(group.Values, cell.Value)
		}
	}
	// parent not named by any selected group
	return false
}

func evalGroupedExclusion(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	for _, group := range cond.Groups {
		if ops.Equals(cell.GroupKey, group.Key) {
			return !containsValue(group.Values, cell.Value)
		}
	}
	// parent carries no exclusions
	return true
}

// GroupedCombination keeps inclusion semantics for unlisted parents,
// so the optimizer's per-group exclusion rewrite cannot change the
// pass set of rows outside the selected groups.
func evalGroupedCombination(cell query.CellValue, cond *query.Condition, _ *Env) bool {
	for _, group := range cond.Groups {
		if ops.Equals(cell.GroupKey, group.Key) {
			matched := containsValue(group.Values, cell.Value)
			if group.Exclude {
				return !matched
			}
			return matched
		}
	}
	return false
}

// helpers

func containsValue(set []any, v any) bool {
	for _, member := range set {
		if ops.Equals(v, member) {
			return true
		}
	}
	return false
}

func cellDate(cell query.CellValue) (time.Time, bool) {
	return valueDate(cell.Value)
}

func valueDate(v any) (time.Time, bool) {
	coerced := ops.Coerce(v)
	if coerced.Kind != ops.KindDate {
		return time.Time{}, false
	}
	return ops.DateOnly(coerced.Date), true
}

func countArg(v any) int {
	coerced := ops.Coerce(v)
	if coerced.Kind != ops.KindNumber {
		return 0
	}
	return int(coerced.Num)
}
