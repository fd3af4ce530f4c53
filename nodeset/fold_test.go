package nodeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFold(t *testing.T) {
	cases := []struct {
		hosts  []string
		folded string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"host1"}, "host1"},
		{[]string{"host1", "host2", "host3"}, "host[1-3]"},
		{[]string{"host1", "host2", "host3", "host5"}, "host[1-3,5]"},
		{[]string{"host9", "host10", "host11"}, "host[9-11]"},
		{[]string{"host01", "host02", "host03"}, "host[01-03]"},
		{[]string{"web1.a", "web2.a", "db1.b"}, "db1.b,web[1-2].a"},
		{[]string{"b", "a", "c1"}, "a,b,c1"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.folded, Fold(New(tc.hosts...)), "%v", tc.hosts)
	}
}

func TestFoldRoundTrip(t *testing.T) {
	patterns := []string{
		"host[1-3]",
		"host[1-3,5,7-9].dc",
		"host[01-12]",
		"host[1-2,005-006]",
		"n[098-102]",
		"rack[1-2]-n[1-3].dc",
		"a,b,c[1-2]",
		"db[9-11].prod,db[1-3].dev,lb1",
		"host[00-10/5]",
	}

	for _, pattern := range patterns {
		expanded, err := Expand(pattern)
		require.NoError(t, err, pattern)

		folded := Fold(expanded)
		again, err := Expand(folded)
		require.NoError(t, err, "%s folded to %s", pattern, folded)
		assert.True(t, expanded.Equal(again), "%s folded to %s: %v", pattern, folded, again.Hosts())
	}
}
