package eval

import (
	"fmt"
	"time"

	"github.com/duhBlu/gridfilter/query"
)

type (
	// Predicate is a template chain compiled into one reusable row
	// predicate. Operator dispatch is resolved once at compile time,
	// not per row. Immutable after Compile and safe for concurrent
	// invocation.
	Predicate struct {
		root compiledNode
	}

	compiledNode interface {
		eval(cell query.CellValue) bool
	}

	compiledLeaf struct {
		cond *query.Condition
		fn   evalFunc
		env  *Env
	}

	compiledAnd struct {
		children []compiledNode
	}

	compiledOr struct {
		children []compiledNode
	}
)

func (l *compiledLeaf) eval(cell query.CellValue) bool {
	return l.fn(cell, l.cond, l.env)
}

func (n *compiledAnd) eval(cell query.CellValue) bool {
	for _, child := range n.children {
		if !child.eval(cell) {
			return false
		}
	}
	return true
}

func (n *compiledOr) eval(cell query.CellValue) bool {
	for _, child := range n.children {
		if child.eval(cell) {
			return true
		}
	}
	return false
}

// Compile builds the boolean tree for a template chain and resolves
// every evaluator up front. A nil env gets the current time and no
// context; conditions that need a context fail here, not per row.
// An empty chain compiles to a pass-everything predicate.
func Compile(templates []query.Template, env *Env) (*Predicate, error) {
	if env == nil {
		env = &Env{}
	}
	if env.Now.IsZero() {
		env.Now = time.Now()
	}

	tree := query.BuildTree(templates)
	if tree == nil {
		return &Predicate{}, nil
	}

	root, err := compileNode(tree, env)
	if err != nil {
		return nil, err
	}

	return &Predicate{root: root}, nil
}

// CompileCondition compiles a single condition, the path the UI takes
// for one column's standalone filter.
func CompileCondition(cond query.Condition, env *Env) (*Predicate, error) {
	return Compile([]query.Template{query.NewTemplate(cond)}, env)
}

func compileNode(node query.Node, env *Env) (compiledNode, error) {
	switch t := node.(type) {
	case *query.Leaf:
		if err := t.Condition.Validate(); err != nil {
			return nil, err
		}

		entry, err := lookup(t.Condition.Operator)
		if err != nil {
			return nil, err
		}

		if entry.needsContext && env.Context == nil {
			return nil, fmt.Errorf("operator %s : %w", t.Condition.Operator.String(), ErrContextRequired)
		}

		return &compiledLeaf{cond: t.Condition, fn: entry.fn, env: env}, nil

	case *query.AndNode:
		children, err := compileChildren(t.Children, env)
		if err != nil {
			return nil, err
		}
		return &compiledAnd{children: children}, nil

	case *query.OrNode:
		children, err := compileChildren(t.Children, env)
		if err != nil {
			return nil, err
		}
		return &compiledOr{children: children}, nil

	default:
		return nil, fmt.Errorf("unknown expression node %T", node)
	}
}

func compileChildren(nodes []query.Node, env *Env) ([]compiledNode, error) {
	compiled := make([]compiledNode, 0, len(nodes))
	for _, child := range nodes {
		c, err := compileNode(child, env)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, c)
	}
	return compiled, nil
}

// Evaluate applies the compiled predicate to one row's cell.
func (p *Predicate) Evaluate(cell query.CellValue) bool {
	if p.root == nil {
		return true
	}
	return p.root.eval(cell)
}

// EvaluateValue is Evaluate for rows without a grouping parent.
func (p *Predicate) EvaluateValue(v any) bool {
	return p.Evaluate(query.CellValue{Value: v})
}
