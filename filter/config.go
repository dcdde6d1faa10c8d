package filter

import (
	"fmt"
	"io"
	"os"
	"regexp"
)

// LinkMode mirrors the -H, -L and -P command-line options controlling how
// symbolic links are treated.
type LinkMode int

const (
	// LinkModeP never follows symbolic links. This is the default.
	LinkModeP LinkMode = iota

	// LinkModeH follows symbolic links only while processing the
	// command-line starting points.
	LinkModeH

	// LinkModeL follows symbolic links everywhere.
	LinkModeL
)

// RegexType selects the regular expression dialect used by the -regex and
// -iregex tests.
type RegexType int

// RegexGo is the only dialect currently supported: Go's RE2 syntax,
// anchored to match the whole name.
const RegexGo RegexType = iota

func ParseRegexType(s string) (RegexType, error) {
	switch s {
	case "default", "go":
		return RegexGo, nil
	}
	return RegexGo, fmt.Errorf("%q is not a valid regex type", s)
}

func (t RegexType) String() string {
	return "go"
}

// Compile builds the anchored matcher for pattern under this dialect.
func (t RegexType) Compile(pattern string, caseInsensitive bool) (*regexp.Regexp, error) {
	expr := "^" + pattern + "$"
	if caseInsensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("cannot build the %s regex %q: %w", t, pattern, err)
	}
	return re, nil
}

// FilterOption holds the positional options that change how subsequent
// tests are built.
type FilterOption struct {
	FollowLink bool
	NoLeaf     bool
	DayStart   bool
	RegexType  RegexType
	Warn       bool
}

// GlobalOption holds the options that control the traversal as a whole.
type GlobalOption struct {
	Depth             bool
	IgnoreReaddirRace bool
	MaxDepth          int // -1 when unlimited
	MinDepth          int
	XDev              bool
	NoLeaf            bool
}

// Config is the shared state consumed while building filters from the
// command line and while walking the starting points.
type Config struct {
	LinkMode       LinkMode
	StartingPoints []string
	FromCLI        bool

	DebugTree   bool
	DebugExec   bool
	DebugSearch bool
	DebugRates  bool
	DebugStat   bool

	// HasActions records whether the expression contains an action that
	// turns off the implicit -print.
	HasActions bool

	// Status is the exit status reported when the traversal quits.
	Status int

	Filter FilterOption
	Global GlobalOption

	// Filesystems resolves device ids for the -fstype test. When nil the
	// process-wide /proc/filesystems registry is used.
	Filesystems *FilesystemRegistry

	// Stdout receives the output of the print-family actions.
	Stdout io.Writer
}

func NewConfig() *Config {
	return &Config{
		Filter: FilterOption{RegexType: RegexGo, Warn: true},
		Global: GlobalOption{MaxDepth: -1},
		Stdout: os.Stdout,
	}
}

// FollowWhenFilter reports whether tests dereference symlinks when they
// run against a visited file.
func (c *Config) FollowWhenFilter() bool {
	return c.LinkMode == LinkModeL || c.Filter.FollowLink
}

// FollowWhenBuild reports whether reference paths given on the command
// line (-newer FILE, -samefile FILE) are dereferenced at build time.
// -H extends following to command-line arguments only.
func (c *Config) FollowWhenBuild() bool {
	return c.FollowWhenFilter() || c.LinkMode == LinkModeH
}
