package query

import (
	"strings"

	"github.com/square/gsel/nodeset"
)

// Operand is either Hosts or *Group.
type Operand interface {
	String() string
	operand()
}

// Hosts is a terminal operand: the expansion of one hosts token.
type Hosts struct {
	// Pattern is the token text the set was expanded from
	Pattern string
	Set     nodeset.NodeSet
}

func (Hosts) operand() {}

// String returns the source pattern, or the folded set when the operand
// was built without one.
func (h Hosts) String() string {
	if h.Pattern != "" {
		return h.Pattern
	}
	return h.Set.String()
}

// Item is one operand of a group together with the operator joining it to
// the items before it. The first item of a group has OpNone.
type Item struct {
	Op      BoolOp
	Operand Operand
}

// Group is a parenthesized, or top level, sequence of operands.
type Group struct {
	Items []Item
}

func (*Group) operand() {}

// String renders the group as a query that parses back to an equal tree.
func (g *Group) String() string {
	var b strings.Builder
	for i, item := range g.Items {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(item.Op.String())
			b.WriteByte(' ')
		}
		switch operand := item.Operand.(type) {
		case *Group:
			b.WriteByte('(')
			b.WriteString(operand.String())
			b.WriteByte(')')
		case Hosts:
			b.WriteString(operand.String())
		}
	}
	return b.String()
}

// Eval reduces a tree to the set of hosts it selects. Items combine
// strictly left to right with no precedence: "a and b or c" is
// "(a and b) or c".
func Eval(g *Group) nodeset.NodeSet {
	var result nodeset.NodeSet
	for _, item := range g.Items {
		var set nodeset.NodeSet
		switch operand := item.Operand.(type) {
		case *Group:
			set = Eval(operand)
		case Hosts:
			set = operand.Set
		}
		result = combine(result, item.Op, set)
	}
	return result
}

func combine(acc nodeset.NodeSet, op BoolOp, set nodeset.NodeSet) nodeset.NodeSet {
	switch op {
	case OpAnd:
		return acc.Intersection(set)
	case OpAndNot:
		return acc.Difference(set)
	case OpOr:
		return acc.Union(set)
	case OpXor:
		return acc.SymmetricDifference(set)
	default:
		return set
	}
}
