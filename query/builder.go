package query

import (
	"errors"

	"github.com/square/gsel/nodeset"
)

// A Builder consumes the structural events produced by Parser.Parse. The
// parser has already validated the structure when an event is delivered:
// every CloseGroup matches an OpenGroup and no group is empty. A Builder
// error aborts the parse.
type Builder interface {
	// OpenGroup starts a subgroup of the current group.
	OpenGroup() error
	// Operand appends hosts to the current group, joined by op.
	Operand(op BoolOp, hosts Hosts) error
	// CloseGroup finishes the current group and appends it to its parent,
	// joined by op.
	CloseGroup(op BoolOp) error
}

var errUnbalancedEvents = errors.New("close event without a matching open")

// TreeBuilder is a Builder that keeps the whole tree.
type TreeBuilder struct {
	stack []*Group
}

func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{stack: []*Group{{}}}
}

func (b *TreeBuilder) top() *Group {
	return b.stack[len(b.stack)-1]
}

func (b *TreeBuilder) OpenGroup() error {
	b.stack = append(b.stack, &Group{})
	return nil
}

func (b *TreeBuilder) Operand(op BoolOp, hosts Hosts) error {
	top := b.top()
	top.Items = append(top.Items, Item{Op: op, Operand: hosts})
	return nil
}

func (b *TreeBuilder) CloseGroup(op BoolOp) error {
	if len(b.stack) < 2 {
		return errUnbalancedEvents
	}
	group := b.top()
	b.stack = b.stack[:len(b.stack)-1]
	parent := b.top()
	parent.Items = append(parent.Items, Item{Op: op, Operand: group})
	return nil
}

// Tree returns the root group.
func (b *TreeBuilder) Tree() *Group {
	return b.stack[0]
}

// Evaluator is a Builder that reduces each group as soon as it closes,
// without keeping the tree.
type Evaluator struct {
	stack []nodeset.NodeSet
}

func NewEvaluator() *Evaluator {
	return &Evaluator{stack: []nodeset.NodeSet{{}}}
}

func (e *Evaluator) OpenGroup() error {
	e.stack = append(e.stack, nodeset.NodeSet{})
	return nil
}

func (e *Evaluator) Operand(op BoolOp, hosts Hosts) error {
	top := len(e.stack) - 1
	e.stack[top] = combine(e.stack[top], op, hosts.Set)
	return nil
}

func (e *Evaluator) CloseGroup(op BoolOp) error {
	if len(e.stack) < 2 {
		return errUnbalancedEvents
	}
	group := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	top := len(e.stack) - 1
	e.stack[top] = combine(e.stack[top], op, group)
	return nil
}

// Result returns the set selected by the root group.
func (e *Evaluator) Result() nodeset.NodeSet {
	return e.stack[0]
}
