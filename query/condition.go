package query

import "fmt"

type (
	// Condition is one search operator with its operands. Arguments[0]
	// is the primary operand, Arguments[1] the secondary one used by
	// range operators; set-membership operators treat the whole
	// arguments list as the operand set. Immutable once evaluation of
	// a filter pass begins.
	Condition struct {
		Field     string
		Operator  Operator
		Arguments []any

		// parent-scoped selections for the grouped operators,
		// ignored by everything else
		Groups []GroupSelection
	}

	// GroupSelection is one parent group's leaf-value selection inside
	// a grouped filter. Exclude flips the listed values into an
	// exclusion set, used when the optimizer rewrites a group.
	GroupSelection struct {
		Key     any
		Values  []any
		Exclude bool
	}

	// CellValue is a single row's column value as handed to
	// evaluation. GroupKey carries the row's parent grouping value
	// (e.g. category) and is only read by grouped operators.
	CellValue struct {
		Value    any
		GroupKey any
	}
)

func (c Condition) Primary() any {
	if len(c.Arguments) > 0 {
		return c.Arguments[0]
	}
	return nil
}

func (c Condition) Secondary() (any, bool) {
	if len(c.Arguments) > 1 {
		return c.Arguments[1], true
	}
	return nil, false
}

// Incomplete reports whether a range condition is missing one of its
// bounds. The UI holds such conditions transiently while the user is
// still typing, so evaluation treats them as a no-op filter that
// passes every row instead of failing.
func (c Condition) Incomplete() bool {
	return c.Operator.IsRange() && len(c.Arguments) < 2
}

func (c Condition) Validate() error {
	if !c.Operator.Known() {
		return fmt.Errorf("condition on `%s` uses unknown operator %v", c.Field, byte(c.Operator))
	}
	if c.Operator.IsGrouped() && len(c.Arguments) > 0 {
		return fmt.Errorf("grouped condition on `%s` must carry its operands in Groups, not Arguments", c.Field)
	}
	return nil
}
