// Package query implements the direct host selection language: host
// patterns (see package nodeset) combined with boolean operators and
// parenthesized subgroups.
//
//	host100[1-5].dc or (host10[30-40].dc and (host10[10-42].dc and not host33.dc))
//
// The operators are "and" (intersection), "or" (union), "xor" (symmetric
// difference) and "and not" (difference), matched case-insensitively.
// Within a group operands combine strictly left to right: "a and b or c"
// selects (a and b) or c.
//
// A Parser turns a query into Builder events. TreeBuilder keeps the tree
// for inspection or printing and Evaluator resolves the hosts directly.
package query
