package query

import "github.com/google/uuid"

type (
	// Node is one node of the boolean expression tree a template chain
	// compiles into. Leaves hold single conditions, inner nodes
	// combine an ordered list of children.
	Node interface {
		node()
	}

	Leaf struct {
		Condition *Condition
		Owner     uuid.UUID
	}

	AndNode struct {
		Children []Node
	}

	OrNode struct {
		Children []Node
	}
)

func (*Leaf) node()    {}
func (*AndNode) node() {}
func (*OrNode) node()  {}

// BuildTree compiles an ordered template chain into an expression
// tree. Consecutive templates sharing a non-zero Group id become one
// nested child node instead of flattening into the parent's operand
// list. Chains fold left to right: `a AND b OR c` reads as
// `(a AND b) OR c`, never re-derived by operator precedence.
func BuildTree(templates []Template) Node {
	type chainItem struct {
		node Node
		link LogicalOp
	}

	items := []chainItem{}

	i := 0
	for i < len(templates) {
		t := templates[i]

		if t.Group != 0 {
			j := i
			for j < len(templates) && templates[j].Group == t.Group {
				j++
			}

			// the bracketed run compiles on its own, then joins the
			// outer chain as a single item
			sub := make([]Template, j-i)
			copy(sub, templates[i:j])
			for k := range sub {
				sub[k].Group = 0
			}

			items = append(items, chainItem{
				node: BuildTree(sub),
				link: templates[j-1].Link,
			})
			i = j
			continue
		}

		items = append(items, chainItem{
			node: &Leaf{Condition: &templates[i].Condition, Owner: t.ID},
			link: t.Link,
		})
		i++
	}

	if len(items) == 0 {
		return nil
	}

	cur := items[0].node
	for k := 1; k < len(items); k++ {
		next := items[k].node

		switch items[k-1].link {
		case And:
			if a, isAnd := cur.(*AndNode); isAnd {
				a.Children = append(a.Children, next)
			} else {
				cur = &AndNode{Children: []Node{cur, next}}
			}
		case Or:
			if o, isOr := cur.(*OrNode); isOr {
				o.Children = append(o.Children, next)
			} else {
				cur = &OrNode{Children: []Node{cur, next}}
			}
		}
	}

	return cur
}
