package nodeset

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var lastNumber = regexp.MustCompile(`^(.*?)(\d+)(\D*)$`)

type foldKey struct {
	prefix, suffix string
}

// foldNumber is one value of the varying digit run. width is non-zero
// only for zero padded numbers.
type foldNumber struct {
	text  string
	value int
	width int
}

func newFoldNumber(text string) (foldNumber, bool) {
	v, err := strconv.Atoi(text)
	if err != nil {
		return foldNumber{}, false
	}
	n := foldNumber{text: text, value: v}
	if len(text) > 1 && text[0] == '0' {
		n.width = len(text)
	}
	return n, true
}

// Fold normalizes a set into a compact pattern, such as
// host[1-3,5].example.com, that expands back to the same set. Hosts are
// grouped on their last run of digits.
func Fold(s NodeSet) string {
	var literals []string
	groups := map[foldKey][]foldNumber{}

	for _, host := range s.Hosts() {
		match := lastNumber.FindStringSubmatch(host)
		if match == nil {
			literals = append(literals, host)
			continue
		}
		n, ok := newFoldNumber(match[2])
		if !ok {
			literals = append(literals, host)
			continue
		}
		key := foldKey{match[1], match[3]}
		groups[key] = append(groups[key], n)
	}

	result := literals
	for key, numbers := range groups {
		result = append(result, foldGroup(key, numbers))
	}
	sortHosts(result)
	return strings.Join(result, ",")
}

func foldGroup(key foldKey, numbers []foldNumber) string {
	if len(numbers) == 1 {
		return key.prefix + numbers[0].text + key.suffix
	}

	sort.Slice(numbers, func(i, j int) bool {
		if numbers[i].width != numbers[j].width {
			return numbers[i].width < numbers[j].width
		}
		return numbers[i].value < numbers[j].value
	})

	var elems []string
	start, prev := numbers[0], numbers[0]
	flush := func() {
		if start.value == prev.value {
			elems = append(elems, start.text)
		} else {
			elems = append(elems, start.text+"-"+prev.text)
		}
	}

	for _, n := range numbers[1:] {
		if n.value == prev.value+1 && continues(start, n) {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()

	return key.prefix + "[" + strings.Join(elems, ",") + "]" + key.suffix
}

// continues reports whether n can extend a run that starts at start. A run
// started by a padded number keeps its width; an unpadded run never takes
// a padded number.
func continues(start, n foldNumber) bool {
	if start.width == 0 {
		return n.width == 0
	}
	return len(n.text) == start.width
}
