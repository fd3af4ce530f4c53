package nodeset

import (
	"sort"

	mapset "github.com/deckarep/golang-set"
	"github.com/xlab/handysort"
)

// A NodeSet is a duplicate-free set of host names. Sets are never modified
// after construction; the algebra methods return new sets. The zero value
// is an empty set.
type NodeSet struct {
	set mapset.Set
}

// New returns a set holding the given hosts.
func New(hosts ...string) NodeSet {
	s := mapset.NewSet()
	for _, host := range hosts {
		s.Add(host)
	}
	return NodeSet{s}
}

func (s NodeSet) members() mapset.Set {
	if s.set == nil {
		return mapset.NewSet()
	}
	return s.set
}

// Len returns the number of hosts in the set.
func (s NodeSet) Len() int {
	if s.set == nil {
		return 0
	}
	return s.set.Cardinality()
}

// Contains reports whether host is a member of the set.
func (s NodeSet) Contains(host string) bool {
	return s.set != nil && s.set.Contains(host)
}

// Hosts returns the members in natural order.
func (s NodeSet) Hosts() []string {
	hosts := make([]string, 0, s.Len())
	if s.set == nil {
		return hosts
	}
	for _, h := range s.set.ToSlice() {
		hosts = append(hosts, h.(string))
	}
	sortHosts(hosts)
	return hosts
}

func (s NodeSet) Union(other NodeSet) NodeSet {
	return NodeSet{s.members().Union(other.members())}
}

// Difference returns the hosts of s that are not in other.
func (s NodeSet) Difference(other NodeSet) NodeSet {
	return NodeSet{s.members().Difference(other.members())}
}

func (s NodeSet) Intersection(other NodeSet) NodeSet {
	return NodeSet{s.members().Intersect(other.members())}
}

// SymmetricDifference returns the hosts that are in exactly one of s and
// other.
func (s NodeSet) SymmetricDifference(other NodeSet) NodeSet {
	return NodeSet{s.members().SymmetricDifference(other.members())}
}

// Equal reports whether both sets hold the same hosts, regardless of the
// order they were added in.
func (s NodeSet) Equal(other NodeSet) bool {
	return s.members().Equal(other.members())
}

// String returns the folded notation of the set, see Fold.
func (s NodeSet) String() string {
	return Fold(s)
}

// Less orders host names naturally: digit runs compare as integers, so
// host9 sorts before host10. Names that only differ in zero padding fall
// back to byte order.
func Less(a, b string) bool {
	if handysort.StringLess(a, b) {
		return true
	}
	if handysort.StringLess(b, a) {
		return false
	}
	return a < b
}

func sortHosts(hosts []string) {
	sort.Slice(hosts, func(i, j int) bool {
		return Less(hosts[i], hosts[j])
	})
}
