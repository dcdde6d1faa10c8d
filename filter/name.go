package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// globPattern is a shell glob compiled for either case-sensitive or
// case-insensitive matching. No separator is special: `*` crosses `/`,
// matching fnmatch without FNM_PATHNAME.
type globPattern struct {
	matcher     glob.Glob
	insensitive bool
}

func compileGlob(name, pattern string, insensitive bool) (globPattern, error) {
	src := pattern
	if insensitive {
		src = strings.ToLower(pattern)
	}
	matcher, err := glob.Compile(src)
	if err != nil {
		return globPattern{}, fmt.Errorf("%s: cannot build pattern %q: %w", name, pattern, err)
	}
	return globPattern{matcher: matcher, insensitive: insensitive}, nil
}

func (p globPattern) match(s string) bool {
	if p.insensitive {
		s = strings.ToLower(s)
	}
	return p.matcher.Match(s)
}

// baseName extracts the final path component, reporting false for paths
// that have none (the root).
func baseName(path string) (string, bool) {
	base := filepath.Base(path)
	if base == string(filepath.Separator) {
		return "", false
	}
	return base, true
}

// Name implements -name: glob match against the base name only. The
// pattern "/" is special-cased to match the root path, which has no base
// name.
type Name struct {
	pattern globPattern
	raw     string
}

func NewName(args *Args) (*Name, error) {
	arg, err := args.demand("-name")
	if err != nil {
		return nil, err
	}
	pattern, err := compileGlob("-name", arg, false)
	if err != nil {
		return nil, err
	}
	return &Name{pattern: pattern, raw: arg}, nil
}

func (f *Name) Filter(file *File) (bool, error) {
	if f.raw == "/" && file.Path() == "/" {
		return true, nil
	}
	base, ok := baseName(file.Path())
	if !ok {
		return false, nil
	}
	return f.pattern.match(base), nil
}

// InsensitiveName implements -iname.
type InsensitiveName struct {
	pattern globPattern
}

func NewInsensitiveName(args *Args) (*InsensitiveName, error) {
	arg, err := args.demand("-iname")
	if err != nil {
		return nil, err
	}
	pattern, err := compileGlob("-iname", arg, true)
	if err != nil {
		return nil, err
	}
	return &InsensitiveName{pattern: pattern}, nil
}

func (f *InsensitiveName) Filter(file *File) (bool, error) {
	base, ok := baseName(file.Path())
	if !ok {
		return false, nil
	}
	return f.pattern.match(base), nil
}

// Path implements -path/-wholename: glob match against the full path.
type Path struct {
	pattern globPattern
}

func NewPath(args *Args) (*Path, error) {
	arg, err := args.demand("-path")
	if err != nil {
		return nil, err
	}
	pattern, err := compileGlob("-path", arg, false)
	if err != nil {
		return nil, err
	}
	return &Path{pattern: pattern}, nil
}

func (f *Path) Filter(file *File) (bool, error) {
	return f.pattern.match(file.Path()), nil
}

// InsensitivePath implements -ipath/-iwholename.
type InsensitivePath struct {
	pattern globPattern
}

func NewInsensitivePath(args *Args) (*InsensitivePath, error) {
	arg, err := args.demand("-ipath")
	if err != nil {
		return nil, err
	}
	pattern, err := compileGlob("-ipath", arg, true)
	if err != nil {
		return nil, err
	}
	return &InsensitivePath{pattern: pattern}, nil
}

func (f *InsensitivePath) Filter(file *File) (bool, error) {
	return f.pattern.match(file.Path()), nil
}

// LinkedName implements -lname/-ilname: glob match against a symlink's
// target path. When symlink following is in force the test never matches,
// since the followed file is not a link anymore.
type LinkedName struct {
	pattern    globPattern
	followLink bool
}

func NewLinkedName(args *Args, cfg *Config) (*LinkedName, error) {
	arg, err := args.demand("-lname")
	if err != nil {
		return nil, err
	}
	pattern, err := compileGlob("-lname", arg, false)
	if err != nil {
		return nil, err
	}
	return &LinkedName{pattern: pattern, followLink: cfg.FollowWhenFilter()}, nil
}

func NewInsensitiveLinkedName(args *Args, cfg *Config) (*LinkedName, error) {
	arg, err := args.demand("-ilname")
	if err != nil {
		return nil, err
	}
	pattern, err := compileGlob("-ilname", arg, true)
	if err != nil {
		return nil, err
	}
	return &LinkedName{pattern: pattern, followLink: cfg.FollowWhenFilter()}, nil
}

func (f *LinkedName) Filter(file *File) (bool, error) {
	if f.followLink {
		return false, nil
	}
	target, err := os.Readlink(file.Path())
	if err != nil {
		return false, err
	}
	return f.pattern.match(target), nil
}
