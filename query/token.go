package query

import "fmt"

// TokenKind is the class of a Token.
type TokenKind int

const (
	// TokenHosts is a host pattern, expanded with the nodeset package
	TokenHosts TokenKind = iota
	// TokenBool is one of the boolean operators
	TokenBool
	// TokenOpenGroup is a left parenthesis
	TokenOpenGroup
	// TokenCloseGroup is a right parenthesis
	TokenCloseGroup
)

func (k TokenKind) String() string {
	switch k {
	case TokenHosts:
		return "HOSTS"
	case TokenBool:
		return "BOOL"
	case TokenOpenGroup:
		return "LPAREN"
	case TokenCloseGroup:
		return "RPAREN"
	default:
		return "UNKNOWN"
	}
}

// BoolOp combines an operand with the operands before it in the same
// group.
type BoolOp int

const (
	// OpNone marks the first operand of a group
	OpNone BoolOp = iota
	// OpAnd is set intersection
	OpAnd
	// OpAndNot is set difference, left minus right
	OpAndNot
	// OpOr is set union
	OpOr
	// OpXor is symmetric difference
	OpXor
)

func (op BoolOp) String() string {
	switch op {
	case OpNone:
		return ""
	case OpAnd:
		return "and"
	case OpAndNot:
		return "and not"
	case OpOr:
		return "or"
	case OpXor:
		return "xor"
	default:
		return "unknown"
	}
}

// Token is a classified fragment of a query. Text holds the source text;
// Op is only meaningful for TokenBool.
type Token struct {
	Kind     TokenKind
	Text     string
	Op       BoolOp
	Position int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at pos %d", t.Kind, t.Text, t.Position)
}
