package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Size implements -size. The file size is rounded UP to whole units
// before comparing, so the comparison is not a total order across
// different units: a 1-byte and a 511-byte file are both "1b".
type Size struct {
	cmp        compare[uint64]
	unit       uint64
	followLink bool
}

func NewSizeFilter(count uint64, unit uint64, ordering int, followLink bool) *Size {
	return &Size{cmp: newCompare(count, ordering), unit: unit, followLink: followLink}
}

func NewSize(args *Args, cfg *Config) (*Size, error) {
	arg, err := args.demand("-size")
	if err != nil {
		return nil, err
	}

	ordering, buf := splitOrdering(arg)

	unit := uint64(512)
	switch {
	case strings.HasSuffix(buf, "c"):
		unit, buf = 1, buf[:len(buf)-1]
	case strings.HasSuffix(buf, "w"):
		unit, buf = 2, buf[:len(buf)-1]
	case strings.HasSuffix(buf, "k"):
		unit, buf = 1<<10, buf[:len(buf)-1]
	case strings.HasSuffix(buf, "M"):
		unit, buf = 1<<20, buf[:len(buf)-1]
	case strings.HasSuffix(buf, "G"):
		unit, buf = 1<<30, buf[:len(buf)-1]
	case strings.HasSuffix(buf, "b"):
		buf = buf[:len(buf)-1]
	}

	count, err := strconv.ParseUint(buf, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("-size: invalid size %q", arg)
	}
	return NewSizeFilter(count, unit, ordering, cfg.FollowWhenFilter()), nil
}

func (f *Size) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	count := (uint64(m.Size()) + f.unit - 1) / f.unit
	return f.cmp.check(count), nil
}
