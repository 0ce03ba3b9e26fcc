package util

import (
	"sort"
	"strings"
)

// MakeTextList gives a nice list of things joined by the given conjunction,
// such as "and" or "or". Lists of more than two items use an oxford comma.
func MakeTextList(items []string, conj string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " " + conj + " " + items[1]
	}

	withConj := make([]string, len(items))
	copy(withConj, items)
	withConj[len(withConj)-1] = conj + " " + withConj[len(withConj)-1]
	return strings.Join(withConj, ", ")
}

// OrderedKeys returns the keys of m in ascending order.
func OrderedKeys[K ~int | ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

// TruncateWithEllipses truncates s to at most max runes, replacing the end with
// "..." if it had to be cut.
func TruncateWithEllipses(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
