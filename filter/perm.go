package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PermMask governs how the requested permission bits are compared against
// the file's.
type PermMask int

const (
	// PermExact requires the permission bits to be identical.
	PermExact PermMask = iota

	// PermAll requires all requested bits to be set.
	PermAll

	// PermAny requires at least one requested bit to be set; an empty
	// request matches everything.
	PermAny
)

const permBits = 0o777

// Perm implements -perm. The mode token is octal or symbolic
// ("u=rwx,g=rx,..."), optionally prefixed with "-" (all bits), "/" or the
// deprecated "+" (any bit).
type Perm struct {
	perm       uint32
	mask       PermMask
	followLink bool
}

func NewPermFilter(perm uint32, mask PermMask, followLink bool) *Perm {
	return &Perm{perm: perm, mask: mask, followLink: followLink}
}

func NewPerm(args *Args, cfg *Config) (*Perm, error) {
	arg, err := args.demand("-perm")
	if err != nil {
		return nil, err
	}

	mask := PermExact
	buf := arg
	switch {
	case strings.HasPrefix(arg, "-"):
		mask, buf = PermAll, arg[1:]
	case strings.HasPrefix(arg, "/"):
		mask, buf = PermAny, arg[1:]
	case strings.HasPrefix(arg, "+"):
		mask, buf = PermAny, arg[1:]
	}

	perm, err := parseMode(buf)
	if err != nil {
		return nil, fmt.Errorf("-perm: %w", err)
	}
	return NewPermFilter(perm, mask, cfg.FollowWhenFilter()), nil
}

func (f *Perm) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	mode := uint32(m.Mode().Perm()) & permBits
	switch f.mask {
	case PermAll:
		return mode&f.perm == f.perm, nil
	case PermAny:
		return mode&f.perm != 0 || f.perm == 0, nil
	}
	return mode == f.perm, nil
}

var (
	symbolicModeRe = regexp.MustCompile(`([ugoa]=[rwx]+,)*([ugoa]=[rwx]+)`)
	modeClauseRe   = regexp.MustCompile(`([ugoa])=([rwx]+)`)
)

// parseMode turns an octal or symbolic mode string into permission bits.
func parseMode(mode string) (uint32, error) {
	if mode == "" {
		return 0, fmt.Errorf("the mode string is empty")
	}
	if symbolicModeRe.MatchString(mode) {
		return parseSymbolicMode(mode), nil
	}
	return parseOctalMode(mode)
}

func parseOctalMode(octal string) (uint32, error) {
	mode, err := strconv.ParseUint(octal, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("cannot parse the octal mode string %q", octal)
	}
	return uint32(mode), nil
}

// parseSymbolicMode accumulates the bits of every "entity=perms" clause.
// Entities are u, g, o and a; a is an alias for o here. Clauses repeating
// an entity add to its bits.
func parseSymbolicMode(expr string) uint32 {
	var mode uint32
	for _, clause := range modeClauseRe.FindAllStringSubmatch(expr, -1) {
		entity, perms := clause[1], clause[2]

		var entityOffset uint32
		switch entity[0] {
		case 'u':
			entityOffset = 6
		case 'g':
			entityOffset = 3
		case 'o', 'a':
			entityOffset = 0
		}

		for _, perm := range perms {
			var permOffset uint32
			switch perm {
			case 'r':
				permOffset = 2
			case 'w':
				permOffset = 1
			case 'x':
				permOffset = 0
			}
			mode |= 1 << (entityOffset + permOffset)
		}
	}
	return mode
}
