package filter

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

const (
	orderLess    = -1
	orderEqual   = 0
	orderGreater = 1
)

// compare holds the target value and ordering parsed from a +N / -N / N
// token: no prefix selects equality, + greater-than, - less-than.
type compare[T cmp.Ordered] struct {
	target   T
	ordering int
}

func newCompare[T cmp.Ordered](target T, ordering int) compare[T] {
	return compare[T]{target: target, ordering: ordering}
}

func (c compare[T]) check(value T) bool {
	return cmp.Compare(value, c.target) == c.ordering
}

// splitOrdering strips the ordering prefix off a comparator token.
func splitOrdering(arg string) (int, string) {
	switch {
	case strings.HasPrefix(arg, "+"):
		return orderGreater, arg[1:]
	case strings.HasPrefix(arg, "-"):
		return orderLess, arg[1:]
	}
	return orderEqual, arg
}

// compareFromArgs consumes one comparator token and parses its numeric
// part with parse. The returned error names the predicate being built.
func compareFromArgs[T cmp.Ordered](args *Args, name string, parse func(string) (T, error)) (compare[T], error) {
	arg, ok := args.Next()
	if !ok {
		return compare[T]{}, fmt.Errorf("%s: missing comparison argument", name)
	}
	ordering, buf := splitOrdering(arg)
	target, err := parse(buf)
	if err != nil {
		return compare[T]{}, fmt.Errorf("%s: cannot parse %q as the filter argument", name, buf)
	}
	return newCompare(target, ordering), nil
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
