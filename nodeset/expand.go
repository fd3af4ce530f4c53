package nodeset

import (
	"fmt"
	"strconv"
	"strings"
)

// Limits bound the work a single expansion may do.
type Limits struct {
	// MaxDepth is the maximum number of bracket groups in one operand.
	MaxDepth int
	// MaxHosts is the maximum size of any intermediate set.
	MaxHosts int
}

// DefaultLimits are used by Expand.
var DefaultLimits = Limits{
	MaxDepth: 100,
	MaxHosts: 100000,
}

// orDefault fills unset fields from DefaultLimits.
func (l Limits) orDefault() Limits {
	if l.MaxDepth <= 0 {
		l.MaxDepth = DefaultLimits.MaxDepth
	}
	if l.MaxHosts <= 0 {
		l.MaxHosts = DefaultLimits.MaxHosts
	}
	return l
}

type setOp byte

const (
	opUnion        setOp = ','
	opDifference   setOp = '!'
	opIntersection setOp = '&'
	opSymmetric    setOp = '^'
)

func (op setOp) apply(running, next NodeSet) NodeSet {
	switch op {
	case opDifference:
		return running.Difference(next)
	case opIntersection:
		return running.Intersection(next)
	case opSymmetric:
		return running.SymmetricDifference(next)
	default:
		return running.Union(next)
	}
}

// operand is one run of pattern text between two set operators.
type operand struct {
	op    setOp
	text  string
	start int
}

// Expand expands pattern with DefaultLimits.
func Expand(pattern string) (NodeSet, error) {
	return ExpandWithLimits(pattern, DefaultLimits)
}

// ExpandWithLimits expands pattern into the set of hosts it denotes. Zero
// limit fields fall back to DefaultLimits. On error no partial set is
// returned.
func ExpandWithLimits(pattern string, limits Limits) (NodeSet, error) {
	limits = limits.orDefault()
	e := expander{pattern: pattern, limits: limits}

	operands, err := e.split()
	if err != nil {
		return NodeSet{}, err
	}

	var running NodeSet
	for i, o := range operands {
		hosts, err := e.expandOperand(o.text, o.start, 0)
		if err != nil {
			return NodeSet{}, err
		}
		next := New(hosts...)
		if i == 0 {
			running = next
		} else {
			running = o.op.apply(running, next)
		}
		if running.Len() > limits.MaxHosts {
			return NodeSet{}, e.fail(o.start, fmt.Sprintf("expands to more than %d hosts", limits.MaxHosts))
		}
	}
	return running, nil
}

type expander struct {
	pattern string
	limits  Limits
}

func (e *expander) fail(pos int, reason string) error {
	return &MalformedPatternError{Pattern: e.pattern, Position: pos, Reason: reason}
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '-' || c == '_' || c == '.'
}

func isRangeChar(c byte) bool {
	return c >= '0' && c <= '9' || c == ',' || c == '-' || c == '/'
}

// split cuts the pattern at the set operators found outside of brackets,
// validating brackets and characters on the way.
func (e *expander) split() ([]operand, error) {
	if e.pattern == "" {
		return nil, e.fail(0, "empty pattern")
	}

	var operands []operand
	op, start, open := opUnion, 0, -1

	for i := 0; i < len(e.pattern); i++ {
		c := e.pattern[i]
		switch {
		case c == '[':
			if open >= 0 {
				return nil, e.fail(i, "nested '['")
			}
			open = i
		case c == ']':
			if open < 0 {
				return nil, e.fail(i, "unbalanced ']'")
			}
			open = -1
		case open >= 0:
			if !isRangeChar(c) {
				return nil, e.fail(i, fmt.Sprintf("unexpected character %q in brackets", c))
			}
		case c == ',' || c == '!' || c == '&' || c == '^':
			if i == start {
				return nil, e.fail(i, fmt.Sprintf("empty operand before %q", c))
			}
			operands = append(operands, operand{op: op, text: e.pattern[start:i], start: start})
			op, start = setOp(c), i+1
		case !isNameChar(c):
			return nil, e.fail(i, fmt.Sprintf("unexpected character %q", c))
		}
	}

	if open >= 0 {
		return nil, e.fail(open, "unbalanced '['")
	}
	if start == len(e.pattern) {
		return nil, e.fail(start, fmt.Sprintf("empty operand after %q", byte(op)))
	}
	return append(operands, operand{op: op, text: e.pattern[start:], start: start}), nil
}

// expandOperand expands the first bracket group of text and recurses into
// the remainder, producing the cartesian product.
func (e *expander) expandOperand(text string, offset, depth int) ([]string, error) {
	open := strings.IndexByte(text, '[')
	if open < 0 {
		return []string{text}, nil
	}
	if depth >= e.limits.MaxDepth {
		return nil, e.fail(offset+open, fmt.Sprintf("more than %d bracket groups", e.limits.MaxDepth))
	}
	closing := open + strings.IndexByte(text[open:], ']')

	numbers, err := e.rangeList(text[open+1:closing], offset+open+1)
	if err != nil {
		return nil, err
	}
	rest, err := e.expandOperand(text[closing+1:], offset+closing+1, depth+1)
	if err != nil {
		return nil, err
	}
	if len(numbers)*len(rest) > e.limits.MaxHosts {
		return nil, e.fail(offset+open, fmt.Sprintf("expands to more than %d hosts", e.limits.MaxHosts))
	}

	prefix := text[:open]
	hosts := make([]string, 0, len(numbers)*len(rest))
	for _, n := range numbers {
		for _, r := range rest {
			hosts = append(hosts, prefix+n+r)
		}
	}
	return hosts, nil
}

// rangeList expands the body of a bracket group, e.g. "1,3,05-10/2".
func (e *expander) rangeList(body string, offset int) ([]string, error) {
	if body == "" {
		return nil, e.fail(offset-1, "empty brackets")
	}

	var numbers []string
	pos := offset
	for _, elem := range strings.Split(body, ",") {
		expanded, err := e.rangeElement(elem, pos)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, expanded...)
		if len(numbers) > e.limits.MaxHosts {
			return nil, e.fail(pos, fmt.Sprintf("expands to more than %d hosts", e.limits.MaxHosts))
		}
		pos += len(elem) + 1
	}
	return numbers, nil
}

func (e *expander) rangeElement(elem string, pos int) ([]string, error) {
	if elem == "" {
		return nil, e.fail(pos, "empty range element")
	}

	bounds, stepText := elem, ""
	if i := strings.IndexByte(elem, '/'); i >= 0 {
		bounds, stepText = elem[:i], elem[i+1:]
	}

	i := strings.IndexByte(bounds, '-')
	if i < 0 {
		if elem != bounds {
			return nil, e.fail(pos, fmt.Sprintf("step without a range in %q", elem))
		}
		if _, err := e.number(bounds, pos); err != nil {
			return nil, err
		}
		return []string{bounds}, nil
	}

	startText, endText := bounds[:i], bounds[i+1:]
	start, err := e.number(startText, pos)
	if err != nil {
		return nil, err
	}
	end, err := e.number(endText, pos+i+1)
	if err != nil {
		return nil, err
	}
	if start > end {
		return nil, e.fail(pos, fmt.Sprintf("inverted range %s", bounds))
	}

	step := 1
	if elem != bounds {
		if step, err = e.number(stepText, pos+len(bounds)+1); err != nil {
			return nil, err
		}
		if step < 1 {
			return nil, e.fail(pos+len(bounds)+1, "step must be at least 1")
		}
	}

	if (end-start)/step >= e.limits.MaxHosts {
		return nil, e.fail(pos, fmt.Sprintf("range %s expands to more than %d hosts", bounds, e.limits.MaxHosts))
	}

	width, count := len(startText), (end-start)/step+1
	numbers := make([]string, 0, count)
	for k := 0; k < count; k++ {
		numbers = append(numbers, fmt.Sprintf("%0*d", width, start+k*step))
	}
	return numbers, nil
}

func (e *expander) number(text string, pos int) (int, error) {
	if text == "" {
		return 0, e.fail(pos, "missing number")
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return 0, e.fail(pos+i, fmt.Sprintf("non-numeric range bound %q", text))
		}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, e.fail(pos, fmt.Sprintf("number %q out of range", text))
	}
	return n, nil
}
