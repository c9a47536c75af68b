package eval

import (
	"context"
	"testing"
	"time"

	"github.com/duhBlu/gridfilter/query"
	"github.com/duhBlu/gridfilter/stats"
)

func mustDispatch(t *testing.T, v any, cond query.Condition, env *Env) bool {
	t.Helper()

	got, err := Dispatch(query.CellValue{Value: v}, &cond, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func buildContext(t *testing.T, values []any) *stats.Context {
	t.Helper()

	built, err := stats.Build(context.Background(), values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return built
}

func TestEqualsReflexiveForAllValues(t *testing.T) {
	values := []any{nil, 0, 42, "abc", 3.14}

	for _, v := range values {
		eq := query.Condition{Operator: query.Equals, Arguments: []any{v}}
		neq := query.Condition{Operator: query.NotEquals, Arguments: []any{v}}

		if !mustDispatch(t, v, eq, nil) {
			t.Errorf("Expected Equals(%v, %v) to pass", v, v)
		}
		if mustDispatch(t, v, neq, nil) {
			t.Errorf("Expected NotEquals(%v, %v) to fail", v, v)
		}
	}
}

func TestBetweenClosedInterval(t *testing.T) {
	cond := query.Condition{Operator: query.Between, Arguments: []any{5, 10}}
	notCond := query.Condition{Operator: query.NotBetween, Arguments: []any{5, 10}}

	cases := []struct {
		value      any
		between    bool
		notBetween bool
	}{
		{4, false, true},
		{5, true, false},
		{7, true, false},
		{10, true, false},
		{11, false, true},
	}

	for _, c := range cases {
		if got := mustDispatch(t, c.value, cond, nil); got != c.between {
			t.Errorf("Between(5,10) on %v: Expected %v but got %v", c.value, c.between, got)
		}
		if got := mustDispatch(t, c.value, notCond, nil); got != c.notBetween {
			t.Errorf("NotBetween(5,10) on %v: Expected %v but got %v", c.value, c.notBetween, got)
		}
	}
}

func TestBetweenReversedBoundsStillWork(t *testing.T) {
	cond := query.Condition{Operator: query.Between, Arguments: []any{10, 5}}

	if !mustDispatch(t, 7, cond, nil) {
		t.Errorf("Expected reversed bounds to form the same interval")
	}
}

func TestIncompleteRangeIsNoOp(t *testing.T) {
	// only one bound present: the UI is mid-edit, every row passes
	for _, op := range []query.Operator{query.Between, query.NotBetween, query.BetweenDates, query.DateInterval} {
		cond := query.Condition{Operator: op, Arguments: []any{5}}

		if !mustDispatch(t, 12345, cond, nil) {
			t.Errorf("%s with a missing bound: Expected a pass-through", op.String())
		}
	}
}

func TestStringOperators(t *testing.T) {
	cases := []struct {
		op      query.Operator
		value   any
		operand any
		want    bool
	}{
		{query.Contains, "Widget Pro", "get", true},
		{query.Contains, "Widget Pro", "GET", true},
		{query.Contains, nil, "x", false},
		{query.Contains, nil, "", true},
		{query.NotContains, "Widget Pro", "xyz", true},
		{query.StartsWith, "Widget Pro", "wid", true},
		{query.StartsWith, "Widget Pro", "pro", false},
		{query.EndsWith, "Widget Pro", "PRO", true},
		{query.IsLike, "Widget Pro", "wid*pro", true},
		{query.IsLike, "Widget Pro", "wid", false},
		{query.IsNotLike, "Widget Pro", "w?dget*", false},
	}

	for _, c := range cases {
		cond := query.Condition{Operator: c.op, Arguments: []any{c.operand}}
		if got := mustDispatch(t, c.value, cond, nil); got != c.want {
			t.Errorf("%s(%v, %v): Expected %v but got %v", c.op.String(), c.value, c.operand, c.want, got)
		}
	}
}

func TestSetMembership(t *testing.T) {
	anyOf := query.Condition{Operator: query.IsAnyOf, Arguments: []any{"a", "b", nil}}
	noneOf := query.Condition{Operator: query.IsNoneOf, Arguments: []any{"a", "b", nil}}

	if !mustDispatch(t, "a", anyOf, nil) {
		t.Errorf("Expected member to pass IsAnyOf")
	}
	if !mustDispatch(t, nil, anyOf, nil) {
		t.Errorf("Expected null member to pass IsAnyOf")
	}
	if mustDispatch(t, "z", anyOf, nil) {
		t.Errorf("Expected non-member to fail IsAnyOf")
	}
	if mustDispatch(t, "a", noneOf, nil) {
		t.Errorf("Expected member to fail IsNoneOf")
	}
	if !mustDispatch(t, "z", noneOf, nil) {
		t.Errorf("Expected non-member to pass IsNoneOf")
	}
}

func TestIsOnAnyOfDatesIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)
	other := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)

	cond := query.Condition{Operator: query.IsOnAnyOfDates, Arguments: []any{morning}}

	if !mustDispatch(t, evening, cond, nil) {
		t.Errorf("Expected same-day value to pass regardless of time")
	}
	if mustDispatch(t, other, cond, nil) {
		t.Errorf("Expected a different day to fail")
	}
	if mustDispatch(t, "not a date", cond, nil) {
		t.Errorf("Expected a non-date value to fail")
	}
}

func TestNullVersusBlank(t *testing.T) {
	// IsNull is strictly narrower than IsBlank
	cases := []struct {
		value any
		null  bool
		blank bool
	}{
		{nil, true, true},
		{"", false, true},
		{"   ", false, true},
		{"x", false, false},
		{0, false, false},
	}

	for _, c := range cases {
		isNull := query.Condition{Operator: query.IsNull}
		isBlank := query.Condition{Operator: query.IsBlank}
		notBlank := query.Condition{Operator: query.IsNotBlank}

		if got := mustDispatch(t, c.value, isNull, nil); got != c.null {
			t.Errorf("IsNull(%#v): Expected %v but got %v", c.value, c.null, got)
		}
		if got := mustDispatch(t, c.value, isBlank, nil); got != c.blank {
			t.Errorf("IsBlank(%#v): Expected %v but got %v", c.value, c.blank, got)
		}
		if got := mustDispatch(t, c.value, notBlank, nil); got == c.blank {
			t.Errorf("IsNotBlank(%#v): Expected %v but got %v", c.value, !c.blank, got)
		}
	}
}

func TestTodayYesterdayAgainstPassClock(t *testing.T) {
	now := time.Date(2024, 5, 2, 23, 59, 0, 0, time.UTC)
	env := &Env{Now: now}

	today := query.Condition{Operator: query.Today}
	yesterday := query.Condition{Operator: query.Yesterday}

	if !mustDispatch(t, time.Date(2024, 5, 2, 0, 1, 0, 0, time.UTC), today, env) {
		t.Errorf("Expected a value on the pass date to pass Today")
	}
	if !mustDispatch(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), yesterday, env) {
		t.Errorf("Expected a value on the previous date to pass Yesterday")
	}
	if mustDispatch(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), today, env) {
		t.Errorf("Expected yesterday's value to fail Today")
	}
}

func TestBetweenDatesComparesDatePortion(t *testing.T) {
	cond := query.Condition{
		Operator: query.BetweenDates,
		Arguments: []any{
			time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 3, 1, 0, 0, 0, time.UTC),
		},
	}

	// 2024-05-01 at 02:00 is before the lower bound's time of day but
	// on the boundary date, so it passes
	if !mustDispatch(t, time.Date(2024, 5, 1, 2, 0, 0, 0, time.UTC), cond, nil) {
		t.Errorf("Expected boundary date to pass regardless of time of day")
	}
	if mustDispatch(t, time.Date(2024, 5, 4, 2, 0, 0, 0, time.UTC), cond, nil) {
		t.Errorf("Expected a date past the interval to fail")
	}
}

func TestTopNIncludesBoundaryTies(t *testing.T) {
	domain := []any{1, 2, 2, 3, 4, 4, 4}
	env := &Env{Context: buildContext(t, domain), Now: time.Now()}

	cond := query.Condition{Operator: query.TopN, Arguments: []any{2}}

	// top 2 distinct values are 3 and 4; every row holding 4 passes,
	// not an arbitrary subset
	passing := []any{}
	for _, v := range domain {
		if mustDispatch(t, v, cond, env) {
			passing = append(passing, v)
		}
	}

	want := []any{3, 4, 4, 4}
	if len(passing) != len(want) {
		t.Fatalf("Expected %d passing rows but got %d (%v)", len(want), len(passing), passing)
	}
	for i := range want {
		if passing[i] != want[i] {
			t.Errorf("position %d: Expected %v but got %v", i, want[i], passing[i])
		}
	}
}

func TestBottomN(t *testing.T) {
	domain := []any{1, 2, 2, 3, 4}
	env := &Env{Context: buildContext(t, domain), Now: time.Now()}

	cond := query.Condition{Operator: query.BottomN, Arguments: []any{2}}

	for _, v := range []any{1, 2} {
		if !mustDispatch(t, v, cond, env) {
			t.Errorf("Expected %v to pass BottomN(2)", v)
		}
	}
	for _, v := range []any{3, 4} {
		if mustDispatch(t, v, cond, env) {
			t.Errorf("Expected %v to fail BottomN(2)", v)
		}
	}
}

func TestAboveBelowAverageStrictAndDisjoint(t *testing.T) {
	domain := []any{10, 20, 30} // mean exactly 20
	env := &Env{Context: buildContext(t, domain), Now: time.Now()}

	above := query.Condition{Operator: query.AboveAverage}
	below := query.Condition{Operator: query.BelowAverage}

	for _, v := range domain {
		gotAbove := mustDispatch(t, v, above, env)
		gotBelow := mustDispatch(t, v, below, env)

		if gotAbove && gotBelow {
			t.Errorf("Expected AboveAverage and BelowAverage to be disjoint for %v", v)
		}
	}

	// a value exactly equal to the mean passes neither
	if mustDispatch(t, 20, above, env) || mustDispatch(t, 20, below, env) {
		t.Errorf("Expected the exact mean to pass neither direction")
	}
	if !mustDispatch(t, 30, above, env) {
		t.Errorf("Expected 30 to pass AboveAverage")
	}
	if !mustDispatch(t, 10, below, env) {
		t.Errorf("Expected 10 to pass BelowAverage")
	}
}

func TestUniqueDuplicatePartition(t *testing.T) {
	domain := []any{"a", "b", "b", nil, "c", "c", "c"}
	env := &Env{Context: buildContext(t, domain), Now: time.Now()}

	unique := query.Condition{Operator: query.IsUnique}
	duplicate := query.Condition{Operator: query.IsDuplicate}

	for _, v := range domain {
		gotUnique := mustDispatch(t, v, unique, env)
		gotDuplicate := mustDispatch(t, v, duplicate, env)

		if gotUnique && gotDuplicate {
			t.Errorf("Expected Unique and Duplicate to be disjoint for %v", v)
		}
		if v == nil {
			if gotUnique || gotDuplicate {
				t.Errorf("Expected null to belong to neither partition")
			}
			continue
		}
		if !gotUnique && !gotDuplicate {
			t.Errorf("Expected every non-null value to fall in one partition, %v fell in neither", v)
		}
	}
}

func TestStatisticalOperatorWithoutContextFails(t *testing.T) {
	cond := query.Condition{Operator: query.TopN, Arguments: []any{3}}

	_, err := Dispatch(query.CellValue{Value: 1}, &cond, &Env{Now: time.Now()})
	if err == nil {
		t.Fatalf("Expected an explicit error without a collection context")
	}
}

func TestGroupedInclusion(t *testing.T) {
	cond := query.Condition{
		Operator: query.GroupedInclusion,
		Groups: []query.GroupSelection{
			{Key: "tools", Values: []any{"hammer", "saw"}},
			{Key: "garden", Values: []any{"hose"}},
		},
	}

	cases := []struct {
		parent any
		leaf   any
		want   bool
	}{
		{"tools", "hammer", true},
		{"tools", "hose", false},
		{"garden", "hose", true},
		{"office", "stapler", false}, // parent not selected at all
	}

	for _, c := range cases {
		got, err := Dispatch(query.CellValue{Value: c.leaf, GroupKey: c.parent}, &cond, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.want {
			t.Errorf("GroupedInclusion(%v/%v): Expected %v but got %v", c.parent, c.leaf, c.want, got)
		}
	}
}

func TestGroupedExclusion(t *testing.T) {
	cond := query.Condition{
		Operator: query.GroupedExclusion,
		Groups: []query.GroupSelection{
			{Key: "tools", Values: []any{"hammer"}},
		},
	}

	cases := []struct {
		parent any
		leaf   any
		want   bool
	}{
		{"tools", "hammer", false},
		{"tools", "saw", true},
		{"office", "stapler", true}, // parent carries no exclusions
	}

	for _, c := range cases {
		got, err := Dispatch(query.CellValue{Value: c.leaf, GroupKey: c.parent}, &cond, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.want {
			t.Errorf("GroupedExclusion(%v/%v): Expected %v but got %v", c.parent, c.leaf, c.want, got)
		}
	}
}

func TestGroupedCombination(t *testing.T) {
	cond := query.Condition{
		Operator: query.GroupedCombination,
		Groups: []query.GroupSelection{
			{Key: "tools", Values: []any{"hammer"}},
			{Key: "garden", Values: []any{"rake"}, Exclude: true},
		},
	}

	cases := []struct {
		parent any
		leaf   any
		want   bool
	}{
		{"tools", "hammer", true},
		{"tools", "saw", false},
		{"garden", "rake", false},
		{"garden", "hose", true},
		{"office", "stapler", false}, // unlisted parents keep inclusion semantics
	}

	for _, c := range cases {
		got, err := Dispatch(query.CellValue{Value: c.leaf, GroupKey: c.parent}, &cond, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != c.want {
			t.Errorf("GroupedCombination(%v/%v): Expected %v but got %v", c.parent, c.leaf, c.want, got)
		}
	}
}

func TestOrderingWithNullsFails(t *testing.T) {
	gt := query.Condition{Operator: query.GreaterThan, Arguments: []any{5}}

	if mustDispatch(t, nil, gt, nil) {
		t.Errorf("Expected null to fail ordering operators")
	}

	gtNull := query.Condition{Operator: query.GreaterThan, Arguments: []any{nil}}
	if mustDispatch(t, 5, gtNull, nil) {
		t.Errorf("Expected a null operand to fail ordering operators")
	}
}
