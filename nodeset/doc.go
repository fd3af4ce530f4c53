/*
Package nodeset expands compact host patterns into sets of host names and
folds sets back into the same notation.

Syntax

    host1                 - literal, returns itself.
    host[1-3]             - numeric range, host1 host2 host3.
    host[01-03]           - padding follows the first number of the range:
                            host01 host02 host03.
    host[1,3,7-9]         - list of numbers and ranges.
    host[1-9/4]           - range with a step: host1 host5 host9.
    rack[1-2]-n[1-2].dc   - several brackets give the cartesian product.
    a,b                   - union.
    a!b                   - a minus b.
    a&b                   - intersection.
    a^b                   - symmetric difference.

Operators apply to the running set in textual order and bind only to the
operand that follows them. There is no precedence: a!b&c is (a minus b)
intersected with c.

Results are ordered naturally, so host9 sorts before host10.

Limits

Expansion is bounded by Limits. MaxDepth caps how many bracket groups a
single operand may contain and MaxHosts caps the size of every
intermediate set. Exceeding either returns a MalformedPatternError rather
than consuming unbounded memory.
*/
package nodeset
