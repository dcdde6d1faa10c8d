package filter

import (
	"fmt"
	"os/user"
	"strconv"
)

// idOrName is a token that is a numeric id when it parses as one, and a
// symbolic name otherwise.
type idOrName struct {
	id      uint64
	name    string
	numeric bool
}

func parseIdOrName(arg string) idOrName {
	if id, err := strconv.ParseUint(arg, 10, 64); err == nil {
		return idOrName{id: id, numeric: true}
	}
	return idOrName{name: arg}
}

// User implements -user: ownership by name or numeric uid. Files whose
// owner has no name on this system only match a numeric token.
type User struct {
	owner      idOrName
	followLink bool
}

func NewUser(args *Args, cfg *Config) (*User, error) {
	arg, err := args.demand("-user")
	if err != nil {
		return nil, err
	}
	return &User{owner: parseIdOrName(arg), followLink: cfg.FollowWhenFilter()}, nil
}

func (f *User) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	if f.owner.numeric {
		return m.Uid() == f.owner.id, nil
	}
	name := m.Username()
	if name == "" {
		return false, nil
	}
	return name == f.owner.name, nil
}

// Group implements -group, the group counterpart of -user.
type Group struct {
	group      idOrName
	followLink bool
}

func NewGroup(args *Args, cfg *Config) (*Group, error) {
	arg, err := args.demand("-group")
	if err != nil {
		return nil, err
	}
	return &Group{group: parseIdOrName(arg), followLink: cfg.FollowWhenFilter()}, nil
}

func (f *Group) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	if f.group.numeric {
		return m.Gid() == f.group.id, nil
	}
	name := m.Groupname()
	if name == "" {
		return false, nil
	}
	return name == f.group.name, nil
}

// UserId implements -uid with the usual comparator token.
type UserId struct {
	cmp        compare[uint64]
	followLink bool
}

func NewUserId(args *Args, cfg *Config) (*UserId, error) {
	cmp, err := compareFromArgs(args, "-uid", parseUint)
	if err != nil {
		return nil, err
	}
	return &UserId{cmp: cmp, followLink: cfg.FollowWhenFilter()}, nil
}

func (f *UserId) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	return f.cmp.check(m.Uid()), nil
}

// GroupId implements -gid.
type GroupId struct {
	cmp        compare[uint64]
	followLink bool
}

func NewGroupId(args *Args, cfg *Config) (*GroupId, error) {
	cmp, err := compareFromArgs(args, "-gid", parseUint)
	if err != nil {
		return nil, err
	}
	return &GroupId{cmp: cmp, followLink: cfg.FollowWhenFilter()}, nil
}

func (f *GroupId) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	return f.cmp.check(m.Gid()), nil
}

// NoUser implements -nouser: the owning uid has no passwd entry. The
// lookup is live, not taken from the snapshot, so entries added after the
// stat are seen.
type NoUser struct {
	followLink bool
}

func NewNoUser(cfg *Config) *NoUser {
	return &NoUser{followLink: cfg.FollowWhenFilter()}
}

func (f *NoUser) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	_, err = user.LookupId(fmt.Sprintf("%d", m.Uid()))
	return err != nil, nil
}

// NoGroup implements -nogroup.
type NoGroup struct {
	followLink bool
}

func NewNoGroup(cfg *Config) *NoGroup {
	return &NoGroup{followLink: cfg.FollowWhenFilter()}
}

func (f *NoGroup) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	_, err = user.LookupGroupId(fmt.Sprintf("%d", m.Gid()))
	return err != nil, nil
}
