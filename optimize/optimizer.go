package optimize

import (
	"fmt"

	"github.com/duhBlu/gridfilter/ops"
	"github.com/duhBlu/gridfilter/query"
)

type (
	// Info is the optimizer's decision record, consumed by UI status
	// and telemetry only; the engine puts no further invariant on it.
	Info struct {
		Applied bool

		OriginalStrategy string
		ChosenStrategy   string

		OriginalCount  int
		OptimizedCount int
		ValuesSaved    int
		GainRatio      float64
	}
)

// Selection rewrites a discrete inclusion selection into its exclusion
// complement when that is strictly cheaper, keeping pass/fail results
// identical for every row whose value lies in the domain. The domain
// must be the column's full observed domain, null included when the
// column holds nulls (stats.Context.Domain provides exactly that).
// A tie keeps the inclusion form the user built.
func Selection(field string, selected, domain []any) (query.Condition, Info) {
	complement := difference(domain, selected)

	info := Info{
		OriginalCount:    len(selected),
		OriginalStrategy: fmt.Sprintf("include %d of %d values", len(selected), len(domain)),
	}

	var cond query.Condition

	if len(complement) < len(selected) {
		info.Applied = true
		info.OptimizedCount = len(complement)
		info.ChosenStrategy = fmt.Sprintf("exclude %d of %d values", len(complement), len(domain))

		cond = query.Condition{
			Field:     field,
			Operator:  query.IsNoneOf,
			Arguments: complement,
		}
	} else {
		info.OptimizedCount = len(selected)
		info.ChosenStrategy = info.OriginalStrategy

		cond = query.Condition{
			Field:     field,
			Operator:  query.IsAnyOf,
			Arguments: selected,
		}
	}

	info.ValuesSaved = info.OriginalCount - info.OptimizedCount
	if info.OriginalCount > 0 {
		info.GainRatio = float64(info.ValuesSaved) / float64(info.OriginalCount)
	}

	return cond, info
}

// Grouped applies the same rule per parent group, each group's leaf
// selection optimized independently against that group's own domain.
// The result stays GroupedInclusion when no group was rewritten;
// otherwise it becomes a GroupedCombination carrying per-group
// exclusion flags, which leaves rows of unselected parents failing
// exactly as they did under the original inclusion filter.
func Grouped(field string, selections []query.GroupSelection, domains map[any][]any) (query.Condition, Info) {
	keyedDomains := make(map[any][]any, len(domains))
	for key, domain := range domains {
		keyedDomains[ops.MapKey(key)] = domain
	}

	info := Info{}
	rewritten := false

	groups := make([]query.GroupSelection, 0, len(selections))

	for _, selection := range selections {
		domain := keyedDomains[ops.MapKey(selection.Key)]
		complement := difference(domain, selection.Values)

		info.OriginalCount += len(selection.Values)

		if len(domain) > 0 && len(complement) < len(selection.Values) {
			rewritten = true
			info.OptimizedCount += len(complement)

			groups = append(groups, query.GroupSelection{
				Key:     selection.Key,
				Values:  complement,
				Exclude: true,
			})
			continue
		}

		info.OptimizedCount += len(selection.Values)
		groups = append(groups, query.GroupSelection{
			Key:    selection.Key,
			Values: selection.Values,
		})
	}

	operator := query.GroupedInclusion
	if rewritten {
		operator = query.GroupedCombination
	}

	info.Applied = rewritten
	info.ValuesSaved = info.OriginalCount - info.OptimizedCount
	if info.OriginalCount > 0 {
		info.GainRatio = float64(info.ValuesSaved) / float64(info.OriginalCount)
	}
	info.OriginalStrategy = fmt.Sprintf("include %d values across %d groups", info.OriginalCount, len(selections))
	if rewritten {
		info.ChosenStrategy = fmt.Sprintf("mixed include/exclude over %d values across %d groups", info.OptimizedCount, len(groups))
	} else {
		info.ChosenStrategy = info.OriginalStrategy
	}

	return query.Condition{
		Field:    field,
		Operator: operator,
		Groups:   groups,
	}, info
}

// difference is domain \ selected under null-safe equality.
func difference(domain, selected []any) []any {
	selectedKeys := make(map[any]struct{}, len(selected))
	for _, v := range selected {
		selectedKeys[ops.MapKey(v)] = struct{}{}
	}

	out := []any{}
	for _, v := range domain {
		if _, isSelected := selectedKeys[ops.MapKey(v)]; !isSelected {
			out = append(out, v)
		}
	}
	return out
}
