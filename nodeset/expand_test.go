package nodeset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExpand(t *testing.T, expected []string, pattern string) {
	t.Helper()
	result, err := Expand(pattern)
	require.NoError(t, err, "pattern %q", pattern)
	assert.Equal(t, expected, result.Hosts(), "pattern %q", pattern)
}

func testMalformed(t *testing.T, pattern string, position int) {
	t.Helper()
	result, err := Expand(pattern)
	require.Error(t, err, "pattern %q", pattern)
	assert.True(t, errors.Is(err, ErrMalformedPattern), "pattern %q: %v", pattern, err)
	assert.Zero(t, result.Len())

	var perr *MalformedPatternError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, pattern, perr.Pattern)
	assert.Equal(t, position, perr.Position, "pattern %q: %v", pattern, err)
}

func TestExpandLiteral(t *testing.T) {
	testExpand(t, []string{"host1.example.com"}, "host1.example.com")
	testExpand(t, []string{"db_primary-2"}, "db_primary-2")
}

func TestExpandRange(t *testing.T) {
	testExpand(t, []string{"host1", "host2", "host3"}, "host[1-3]")
	testExpand(t, []string{"host9", "host10", "host11"}, "host[9-11]")
	testExpand(t, []string{"host1.dc", "host2.dc"}, "host[1-2].dc")
}

func TestExpandRangeSize(t *testing.T) {
	for _, tc := range []struct{ a, b int }{{0, 0}, {1, 3}, {7, 12}, {95, 105}} {
		pattern := fmt.Sprintf("web[%d-%d].dc", tc.a, tc.b)
		result, err := Expand(pattern)
		require.NoError(t, err)

		hosts := result.Hosts()
		require.Len(t, hosts, tc.b-tc.a+1, pattern)
		for i, host := range hosts {
			assert.Equal(t, fmt.Sprintf("web%d.dc", tc.a+i), host)
		}
	}
}

func TestExpandPadding(t *testing.T) {
	testExpand(t, []string{"host01", "host02", "host03"}, "host[01-03]")
	testExpand(t, []string{"host08", "host09", "host10", "host11"}, "host[08-11]")
	testExpand(t, []string{"n098", "n099", "n100"}, "n[098-100]")

	// Padding is kept per element.
	result, err := Expand("host[01,1]")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"host01", "host1"}, result.Hosts())
	testExpand(t, []string{"host1", "host2", "host005", "host006"}, "host[1-2,005-006]")
}

func TestExpandList(t *testing.T) {
	testExpand(t, []string{"host1", "host3", "host7", "host8", "host9"}, "host[1,3,7-9]")
}

func TestExpandStep(t *testing.T) {
	testExpand(t, []string{"host1", "host5", "host9"}, "host[1-9/4]")
	testExpand(t, []string{"host00", "host05", "host10"}, "host[00-10/5]")
}

func TestExpandCartesian(t *testing.T) {
	testExpand(t,
		[]string{"rack1-n1.dc", "rack1-n2.dc", "rack2-n1.dc", "rack2-n2.dc"},
		"rack[1-2]-n[1-2].dc")
}

func TestExpandUnion(t *testing.T) {
	testExpand(t, []string{"a"}, "a,a")
	testExpand(t, []string{"a", "b"}, "b,a")
	testExpand(t, []string{"host1", "host2", "host3"}, "host[1-2],host[2-3]")
	testExpand(t, []string{"host10.a", "host2010.b"}, "host10.a,host2010.b")
}

func TestExpandDifference(t *testing.T) {
	testExpand(t, []string{"a1", "a3"}, "a[1-3]!a[2-2]")
	testExpand(t, []string{}, "a!a")
}

func TestExpandIntersection(t *testing.T) {
	testExpand(t, []string{"a3", "a4", "a5"}, "a[1-5]&a[3-7]")
	testExpand(t, []string{}, "a&b")
}

func TestExpandSymmetricDifference(t *testing.T) {
	testExpand(t, []string{"a1", "a2", "a5", "a6"}, "a[1-4]^a[3-6]")
}

func TestExpandLeftToRight(t *testing.T) {
	// (a minus b) intersect c, not a minus (b intersect c).
	testExpand(t, []string{"h3"}, "h[1-4]!h[1-2]&h[2-3]")
	testExpand(t, []string{"h1", "h5"}, "h[1-3]!h[2-3],h5")
	testExpand(t, []string{"h1"}, "h[1-3],h5!h[2-5]")
}

func TestExpandNaturalOrder(t *testing.T) {
	testExpand(t,
		[]string{"a2", "a10", "b1", "host9.dc", "host10.dc"},
		"host10.dc,a10,host9.dc,b1,a2")
}

func TestExpandMalformed(t *testing.T) {
	testMalformed(t, "", 0)
	testMalformed(t, "host[5-1]", 5)
	testMalformed(t, "host[1-3", 4)
	testMalformed(t, "host1-3]", 7)
	testMalformed(t, "host[1-[2]]", 7)
	testMalformed(t, "host[]", 4)
	testMalformed(t, "host[a-b]", 5)
	testMalformed(t, "host[1-b]", 7)
	testMalformed(t, "host[1,,2]", 7)
	testMalformed(t, "host[-2]", 5)
	testMalformed(t, "host[5/2]", 5)
	testMalformed(t, "host[1-5/0]", 9)
	testMalformed(t, "host[1-5/]", 9)
	testMalformed(t, "host*", 4)
	testMalformed(t, "host 1", 4)
	testMalformed(t, "a,,b", 2)
	testMalformed(t, "!a", 0)
	testMalformed(t, "a&", 2)
	testMalformed(t, "host[99999999999999999999]", 5)
}

func TestExpandLimits(t *testing.T) {
	limits := Limits{MaxDepth: 2, MaxHosts: 10}

	_, err := ExpandWithLimits("a[1-2]b[1-2]", limits)
	require.NoError(t, err)

	_, err = ExpandWithLimits("a[1-2]b[1-2]c[1-2]", limits)
	assert.True(t, errors.Is(err, ErrMalformedPattern), "%v", err)

	_, err = ExpandWithLimits("a[1-11]", limits)
	assert.True(t, errors.Is(err, ErrMalformedPattern), "%v", err)

	_, err = ExpandWithLimits("a[1-5]b[1-3]", limits)
	assert.True(t, errors.Is(err, ErrMalformedPattern), "%v", err)

	_, err = ExpandWithLimits("a[1-6],b[1-6]", limits)
	assert.True(t, errors.Is(err, ErrMalformedPattern), "%v", err)

	_, err = Expand("a[0-9223372036854775807]")
	assert.True(t, errors.Is(err, ErrMalformedPattern), "%v", err)
}

func TestExpandZeroLimits(t *testing.T) {
	result, err := ExpandWithLimits("a[1-3]", Limits{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Len())
}

func TestExpandContextIndependent(t *testing.T) {
	first, err := Expand("host[1-3]")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := Expand("host[1-3]")
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
		assert.Equal(t, []string{"host1", "host2", "host3"}, again.Hosts())
	}
}
