package filter

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/eztools-go/findutil/objects"
)

// Time units, in seconds.
const (
	Minute int64 = 60
	Hour         = Minute * 60
	Day          = Hour * 24
)

// TimeKind selects which timestamp of a snapshot a time test reads.
type TimeKind int

const (
	TimeAccess TimeKind = iota
	TimeChange
	TimeModify
)

func (k TimeKind) timeOf(m *objects.FileInfo) int64 {
	switch k {
	case TimeAccess:
		return m.AccessTime().Unix()
	case TimeChange:
		return m.ChangeTime().Unix()
	}
	return m.ModTime().Unix()
}

// nowTimestamp returns the reference instant for the relative time tests:
// the current time, or the start of the current local day under -daystart.
func nowTimestamp(cfg *Config) int64 {
	now := time.Now().Unix()
	if cfg.Filter.DayStart {
		return daystart(now)
	}
	return now
}

// daystart truncates a timestamp to the preceding local midnight. GNU
// find historically measures -daystart from the start of tomorrow
// (savannah bug 23065); this implementation measures from today.
func daystart(ts int64) int64 {
	t := time.Unix(ts, 0).Local()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.Unix()
}

// DurationToNow implements -amin/-cmin/-mmin and -atime/-ctime/-mtime:
// the age of the selected timestamp, clamped at zero and truncated to
// whole units, compared against the comparator token.
type DurationToNow struct {
	kind       TimeKind
	unit       int64
	cmp        compare[int64]
	now        int64
	followLink bool
}

func NewDurationToNow(kind TimeKind, unit int64, args *Args, cfg *Config) (*DurationToNow, error) {
	cmp, err := compareFromArgs(args, "-amin/-atime family", parseInt)
	if err != nil {
		return nil, err
	}
	return &DurationToNow{
		kind:       kind,
		unit:       unit,
		cmp:        cmp,
		now:        nowTimestamp(cfg),
		followLink: cfg.FollowWhenFilter(),
	}, nil
}

func (f *DurationToNow) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	duration := max(f.now-f.kind.timeOf(m), 0) / f.unit
	return f.cmp.check(duration), nil
}

// Newer implements -newer, -anewer, -cnewer and the -newerXY family: the
// file's X-timestamp must be strictly greater than the target resolved at
// build time.
type Newer struct {
	kind       TimeKind
	cmp        compare[int64]
	followLink bool
}

// NewNewer resolves the target from a reference path's Y-timestamp. The
// reference is stat'ed once, at build time, under the build-time follow
// mode.
func NewNewer(x, y TimeKind, args *Args, cfg *Config) (*Newer, error) {
	reference, err := args.demand("-newer")
	if err != nil {
		return nil, err
	}
	file := NewFile(reference, "/", 0, cfg.DebugStat)
	m, err := getMetadata(file, cfg.FollowWhenBuild())
	if err != nil {
		return nil, fmt.Errorf("-newer: cannot stat reference %s: %w", reference, err)
	}
	return &Newer{
		kind:       x,
		cmp:        newCompare(y.timeOf(m), orderGreater),
		followLink: cfg.FollowWhenFilter(),
	}, nil
}

// NewNewerDate resolves the target from a free-form date string
// interpreted in the local timezone.
func NewNewerDate(x TimeKind, args *Args, cfg *Config) (*Newer, error) {
	date, err := args.demand("-newerXt")
	if err != nil {
		return nil, err
	}
	t, err := dateparse.ParseLocal(date)
	if err != nil {
		return nil, fmt.Errorf("-newerXt: cannot parse date %q: %w", date, err)
	}
	return &Newer{
		kind:       x,
		cmp:        newCompare(t.Unix(), orderGreater),
		followLink: cfg.FollowWhenFilter(),
	}, nil
}

func (f *Newer) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	return f.cmp.check(f.kind.timeOf(m)), nil
}

// Used implements -used: whole days between access time and status change
// time.
type Used struct {
	cmp        compare[int64]
	followLink bool
}

func NewUsed(args *Args, cfg *Config) (*Used, error) {
	cmp, err := compareFromArgs(args, "-used", parseInt)
	if err != nil {
		return nil, err
	}
	return &Used{cmp: cmp, followLink: cfg.FollowWhenFilter()}, nil
}

func (f *Used) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	accessTime := TimeAccess.timeOf(m)
	changeTime := TimeChange.timeOf(m)

	// Files whose atime equals their ctime never pass `-used 0`; see
	// used.sh in GNU findutils.
	if accessTime == changeTime && f.cmp.target == 0 && f.cmp.ordering == orderEqual {
		return false, nil
	}

	return f.cmp.check((accessTime - changeTime) / Day), nil
}
