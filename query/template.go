package query

import (
	"fmt"

	"github.com/google/uuid"
)

type LogicalOp byte

const (
	And LogicalOp = iota
	Or
)

func (l LogicalOp) String() string {
	switch l {
	case And:
		return "AND"
	case Or:
		return "OR"
	default:
		panic(fmt.Sprintf("unknown logical operator %v", byte(l)))
	}
}

type (
	// Template wraps one condition inside a filter chain. Link states
	// how the template combines with its next sibling; templates
	// sharing the same non-zero Group id form one bracketed
	// sub-expression. HasChanges is a UI dirty flag and is never read
	// by evaluation.
	Template struct {
		ID        uuid.UUID
		Condition Condition

		Link  LogicalOp
		Group int

		HasChanges bool
	}
)

func NewTemplate(cond Condition) Template {
	return Template{
		ID:        uuid.New(),
		Condition: cond,
	}
}

func (t Template) WithLink(l LogicalOp) Template {
	t.Link = l
	return t
}

func (t Template) InGroup(group int) Template {
	t.Group = group
	return t
}
