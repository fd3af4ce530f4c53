package query

import (
	"regexp"
	"strings"
)

type keywordPattern struct {
	Op      BoolOp
	Pattern *regexp.Regexp
}

var (
	// keywordPatterns are tried in order, "and not" before "and". A match
	// only counts when the keyword is not followed by a host character.
	keywordPatterns = []keywordPattern{
		{OpAndNot, regexp.MustCompile(`^(?i)and\s+not`)},
		{OpAnd, regexp.MustCompile(`^(?i)and`)},
		{OpXor, regexp.MustCompile(`^(?i)xor`)},
		{OpOr, regexp.MustCompile(`^(?i)or`)},
	}

	hostsPattern      = regexp.MustCompile(`^[A-Za-z0-9_.,!&^\[\]-]+`)
	whitespacePattern = regexp.MustCompile(`^\s+`)
)

func isHostChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		strings.IndexByte("-_.,!&^[]", c) >= 0
}

// matchKeyword returns the boolean operator at the start of input, if any.
func matchKeyword(input string) (BoolOp, string, bool) {
	for _, kw := range keywordPatterns {
		match := kw.Pattern.FindString(input)
		if match == "" {
			continue
		}
		if len(match) < len(input) && isHostChar(input[len(match)]) {
			continue
		}
		return kw.Op, match, true
	}
	return OpNone, "", false
}

// Tokenize splits a query into tokens. Whitespace separates tokens and is
// dropped. A boolean keyword is recognized only as a whole word, so
// "andromeda" is a single hosts token.
func Tokenize(query string) ([]Token, error) {
	if strings.TrimSpace(query) == "" {
		return nil, invalid(0, "empty query")
	}

	var tokens []Token
	position := 0

	for position < len(query) {
		rest := query[position:]

		if match := whitespacePattern.FindString(rest); match != "" {
			position += len(match)
			continue
		}

		switch rest[0] {
		case '(':
			tokens = append(tokens, Token{Kind: TokenOpenGroup, Text: "(", Position: position})
			position++
			continue
		case ')':
			tokens = append(tokens, Token{Kind: TokenCloseGroup, Text: ")", Position: position})
			position++
			continue
		}

		if op, match, ok := matchKeyword(rest); ok {
			tokens = append(tokens, Token{Kind: TokenBool, Text: match, Op: op, Position: position})
			position += len(match)
			continue
		}

		if match := hostsPattern.FindString(rest); match != "" {
			tokens = append(tokens, Token{Kind: TokenHosts, Text: match, Position: position})
			position += len(match)
			continue
		}

		return nil, invalid(position, "unexpected character %q", firstRune(rest))
	}

	return tokens, nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
