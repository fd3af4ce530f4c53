package query

import (
	"errors"
	"fmt"

	"github.com/square/gsel/nodeset"
	"go.uber.org/zap"
)

// Limits bound the resources a single query may use.
type Limits struct {
	// MaxDepth is the maximum parenthesis nesting depth.
	MaxDepth int
	// MaxQueryLength is the maximum query length in bytes.
	MaxQueryLength int
	// Pattern bounds the expansion of each hosts token.
	Pattern nodeset.Limits
}

// DefaultLimits are used by NewParser and the package level functions.
var DefaultLimits = Limits{
	MaxDepth:       100,
	MaxQueryLength: 10000,
	Pattern:        nodeset.DefaultLimits,
}

// Parser parses queries into Builder events. It holds no per-query state
// and is safe for concurrent use.
type Parser struct {
	limits Limits
	logger *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLimits replaces DefaultLimits. Zero fields keep their default.
func WithLimits(limits Limits) Option {
	return func(p *Parser) {
		if limits.MaxDepth > 0 {
			p.limits.MaxDepth = limits.MaxDepth
		}
		if limits.MaxQueryLength > 0 {
			p.limits.MaxQueryLength = limits.MaxQueryLength
		}
		if limits.Pattern.MaxDepth > 0 {
			p.limits.Pattern.MaxDepth = limits.Pattern.MaxDepth
		}
		if limits.Pattern.MaxHosts > 0 {
			p.limits.Pattern.MaxHosts = limits.Pattern.MaxHosts
		}
	}
}

// WithLogger makes the parser trace tokens and events at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func NewParser(opts ...Option) *Parser {
	p := &Parser{limits: DefaultLimits, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Limits returns the limits the parser enforces.
func (p *Parser) Limits() Limits {
	return p.limits
}

// Parse tokenizes query and feeds its structure to b.
func (p *Parser) Parse(query string, b Builder) error {
	if len(query) > p.limits.MaxQueryLength {
		return &InvalidQueryError{
			Query:    query,
			Position: p.limits.MaxQueryLength,
			Reason:   fmt.Sprintf("query longer than %d bytes", p.limits.MaxQueryLength),
		}
	}

	tokens, err := Tokenize(query)
	if err == nil {
		err = p.Build(tokens, b)
	}

	var qerr *InvalidQueryError
	if errors.As(err, &qerr) && qerr.Query == "" {
		qerr.Query = query
	}
	return err
}

// Tree parses query into its expression tree.
func (p *Parser) Tree(query string) (*Group, error) {
	b := NewTreeBuilder()
	if err := p.Parse(query, b); err != nil {
		return nil, err
	}
	return b.Tree(), nil
}

// Resolve parses query and returns the hosts it selects.
func (p *Parser) Resolve(query string) (nodeset.NodeSet, error) {
	e := NewEvaluator()
	if err := p.Parse(query, e); err != nil {
		return nodeset.NodeSet{}, err
	}
	return e.Result(), nil
}

// frame tracks a group that is still open.
type frame struct {
	operands int
	pending  BoolOp
	// openOp is the operator written before the "(" of this group.
	openOp  BoolOp
	openPos int
}

// Build consumes tokens left to right, expanding hosts tokens and
// reporting the group structure to b. An operator written just before
// "(" joins the whole subgroup to its parent and is delivered with the
// matching CloseGroup.
func (p *Parser) Build(tokens []Token, b Builder) error {
	if len(tokens) == 0 {
		return invalid(0, "empty query")
	}

	stack := []frame{{}}

	for _, tok := range tokens {
		top := &stack[len(stack)-1]
		p.logger.Debug("token", zap.Stringer("token", tok), zap.Int("depth", len(stack)-1))

		switch tok.Kind {
		case TokenOpenGroup:
			if top.operands > 0 && top.pending == OpNone {
				return invalid(tok.Position, "missing boolean operator before '('")
			}
			if len(stack) > p.limits.MaxDepth {
				return invalid(tok.Position, "nesting deeper than %d groups", p.limits.MaxDepth)
			}
			if err := b.OpenGroup(); err != nil {
				return err
			}
			opened := frame{openOp: top.pending, openPos: tok.Position}
			top.pending = OpNone
			stack = append(stack, opened)

		case TokenHosts:
			if top.operands > 0 && top.pending == OpNone {
				return invalid(tok.Position, "missing boolean operator before %q", tok.Text)
			}
			set, err := nodeset.ExpandWithLimits(tok.Text, p.limits.Pattern)
			if err != nil {
				return fmt.Errorf("hosts %q at position %d: %w", tok.Text, tok.Position, err)
			}
			if err := b.Operand(top.pending, Hosts{Pattern: tok.Text, Set: set}); err != nil {
				return err
			}
			p.logger.Debug("operand", zap.Stringer("op", top.pending), zap.String("hosts", tok.Text), zap.Int("count", set.Len()))
			top.operands++
			top.pending = OpNone

		case TokenBool:
			if top.operands == 0 {
				return invalid(tok.Position, "a group cannot start with %q", tok.Text)
			}
			if top.pending != OpNone {
				return invalid(tok.Position, "%q follows %q without an operand", tok.Text, top.pending.String())
			}
			top.pending = tok.Op

		case TokenCloseGroup:
			if len(stack) == 1 {
				return invalid(tok.Position, "unmatched ')'")
			}
			if top.pending != OpNone {
				return invalid(tok.Position, "missing operand after %q", top.pending.String())
			}
			if top.operands == 0 {
				return invalid(top.openPos, "empty group")
			}
			closed := *top
			stack = stack[:len(stack)-1]
			if err := b.CloseGroup(closed.openOp); err != nil {
				return err
			}
			stack[len(stack)-1].operands++

		default:
			return invalid(tok.Position, "unexpected token %s", tok)
		}
	}

	top := stack[len(stack)-1]
	last := tokens[len(tokens)-1]
	if len(stack) > 1 {
		return invalid(top.openPos, "unmatched '('")
	}
	if top.pending != OpNone {
		return invalid(last.Position+len(last.Text), "missing operand after %q", top.pending.String())
	}
	if top.operands == 0 {
		return invalid(0, "empty query")
	}
	return nil
}

var defaultParser = NewParser()

// Parse parses query into its expression tree with DefaultLimits.
func Parse(query string) (*Group, error) {
	return defaultParser.Tree(query)
}

// Resolve returns the hosts selected by query with DefaultLimits.
func Resolve(query string) (nodeset.NodeSet, error) {
	return defaultParser.Resolve(query)
}
