package query

import (
	"github.com/duhBlu/gridfilter/ops"
	"github.com/google/uuid"
)

type TokenKind byte

const (
	TokenBracketOpen TokenKind = iota
	TokenColumnName
	TokenOperatorName
	TokenValue
	TokenLogicalConnector
	TokenBracketClose
	TokenRemoveAction
)

type (
	// Token is one element of the flattened breadcrumb projection of a
	// template chain. The projection is read-only output for the UI
	// panel: the engine never parses it back.
	Token struct {
		Kind TokenKind
		Text string

		// owning template, used by the remove action
		Owner     uuid.UUID
		Condition *Condition

		Order       int
		FilterStart bool
		FilterEnd   bool
	}
)

// Tokens flattens an ordered template chain into breadcrumb tokens.
// Bracket tokens appear where consecutive templates share a group,
// logical connectors between siblings, and every filter ends with its
// remove action.
func Tokens(templates []Template) []Token {
	out := []Token{}
	order := 0

	emit := func(t *Template, kind TokenKind, text string) {
		out = append(out, Token{
			Kind:      kind,
			Text:      text,
			Owner:     t.ID,
			Condition: &t.Condition,
			Order:     order,
		})
		order++
	}

	for i := range templates {
		t := &templates[i]

		opensGroup := t.Group != 0 && (i == 0 || templates[i-1].Group != t.Group)
		closesGroup := t.Group != 0 && (i == len(templates)-1 || templates[i+1].Group != t.Group)

		if opensGroup {
			emit(t, TokenBracketOpen, "(")
		}

		start := len(out)

		emit(t, TokenColumnName, t.Condition.Field)
		emit(t, TokenOperatorName, t.Condition.Operator.DisplayName())

		if t.Condition.Operator.IsGrouped() {
			for _, g := range t.Condition.Groups {
				emit(t, TokenValue, ops.Display(g.Key))
			}
		} else {
			for _, arg := range t.Condition.Arguments {
				emit(t, TokenValue, ops.Display(arg))
			}
		}

		emit(t, TokenRemoveAction, "x")

		out[start].FilterStart = true
		out[len(out)-1].FilterEnd = true

		if closesGroup {
			emit(t, TokenBracketClose, ")")
		}

		if i < len(templates)-1 {
			emit(t, TokenLogicalConnector, t.Link.String())
		}
	}

	return out
}
