package filter

import (
	"fmt"
	"regexp"
)

// Regex implements -regex and -iregex: the configured dialect's anchored
// match against the base name. Dialect and case-sensitivity are baked in
// at build time.
type Regex struct {
	re *regexp.Regexp
}

func NewRegex(args *Args, cfg *Config) (*Regex, error) {
	return newRegex(args, cfg, "-regex", false)
}

func NewInsensitiveRegex(args *Args, cfg *Config) (*Regex, error) {
	return newRegex(args, cfg, "-iregex", true)
}

func newRegex(args *Args, cfg *Config, name string, caseInsensitive bool) (*Regex, error) {
	pattern, err := args.demand(name)
	if err != nil {
		return nil, err
	}
	re, err := cfg.Filter.RegexType.Compile(pattern, caseInsensitive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &Regex{re: re}, nil
}

func (f *Regex) Filter(file *File) (bool, error) {
	base, ok := baseName(file.Path())
	if !ok {
		return false, fmt.Errorf("cannot get the file name of %s", file.Path())
	}
	return f.re.MatchString(base), nil
}
