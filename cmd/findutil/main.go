package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/eztools-go/findutil/filter"
	"github.com/eztools-go/findutil/logging"
	"github.com/eztools-go/findutil/parse"
	"github.com/eztools-go/findutil/search"
)

const version = "0.1.0"

const usage = `usage: findutil [-H] [-L] [-P] [-D debugopts] [-Olevel] [starting-point...] [expression]

Search the directory trees rooted at each starting point, evaluating the
expression on every file found. The default starting point is the current
directory and the default expression is -print.

Operators: ( EXPR )  ! EXPR  -not EXPR  EXPR -a EXPR  EXPR -o EXPR  EXPR , EXPR
Options:   -daystart -depth -follow -maxdepth N -mindepth N -mount -noleaf
           -regextype TYPE -warn -nowarn -xdev -ignore_readdir_race
Tests:     -amin -anewer -atime -cmin -cnewer -ctime -empty -executable -false
           -fstype -gid -group -ilname -iname -inum -ipath -iregex -links
           -lname -mmin -mtime -name -newer -newerXY -nogroup -nouser -path
           -perm -readable -regex -samefile -size -true -type -uid -used
           -user -wholename -writable -xtype
Actions:   -delete -fls FILE -fprint FILE -fprint0 FILE -ls -print -print0
           -prune -quit`

// linkModeValue records the link mode of the flag it is bound to when that
// flag appears, so the last of -H, -L and -P wins.
type linkModeValue struct {
	target *filter.LinkMode
	mode   filter.LinkMode
}

func (v *linkModeValue) Set(string) error {
	*v.target = v.mode
	return nil
}

func (v *linkModeValue) String() string { return "" }
func (v *linkModeValue) Type() string   { return "bool" }

func main() {
	os.Exit(entry(os.Args[1:], os.Stdout, os.Stderr))
}

func entry(args []string, stdout io.Writer, stderr io.Writer) int {
	logger := logging.NewLogger(stdout, stderr)

	leading, rest := splitLeadingOptions(args)
	startingPoints, exprTokens := splitStartingPoints(rest)

	cfg := filter.NewConfig()
	cfg.StartingPoints = startingPoints
	cfg.FromCLI = true
	cfg.Stdout = stdout

	flags := pflag.NewFlagSet("findutil", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	for _, mode := range []struct {
		name string
		mode filter.LinkMode
		help string
	}{
		{"H", filter.LinkModeH, "follow symbolic links on the command line only"},
		{"L", filter.LinkModeL, "follow symbolic links everywhere"},
		{"P", filter.LinkModeP, "never follow symbolic links (default)"},
	} {
		f := flags.VarPF(&linkModeValue{target: &cfg.LinkMode, mode: mode.mode}, mode.name, mode.name, mode.help)
		f.NoOptDefVal = "true"
	}
	debugOpts := flags.StringP("debug", "D", "", "comma-separated debug topics: tree,search,stat,rates,exec,all")
	flags.StringP("optimize", "O", "1", "query optimization level (accepted and ignored)")

	if err := flags.Parse(leading); err != nil {
		logger.Error("%v", err)
		return 1
	}

	if *debugOpts != "" {
		logger.EnableDebug(*debugOpts)
		for _, topic := range strings.Split(*debugOpts, ",") {
			switch topic {
			case "tree":
				cfg.DebugTree = true
			case "exec":
				cfg.DebugExec = true
			case "search":
				cfg.DebugSearch = true
			case "rates":
				cfg.DebugRates = true
			case "stat":
				cfg.DebugStat = true
			case "all":
				cfg.DebugTree = true
				cfg.DebugExec = true
				cfg.DebugSearch = true
				cfg.DebugRates = true
				cfg.DebugStat = true
			default:
				logger.Warn("unknown debug topic %q", topic)
			}
		}
	}

	tree, err := parse.Expression(exprTokens, cfg)
	switch {
	case errors.Is(err, parse.ErrHelp):
		fmt.Fprintln(stdout, usage)
		return 0
	case errors.Is(err, parse.ErrVersion):
		fmt.Fprintf(stdout, "findutil %s\n", version)
		return 0
	case err != nil:
		logger.Error("%v", err)
		return 1
	}

	// -L implies -noleaf.
	if cfg.LinkMode == filter.LinkModeL {
		cfg.Global.NoLeaf = true
	}
	if !cfg.Filter.Warn {
		logger.DisableWarn()
	}

	tree = parse.WithImplicitPrint(tree, cfg)
	if cfg.DebugTree {
		logger.Debug("tree", "%#v", tree)
	}

	err = search.Search(cfg, tree, logger)
	var quit *search.QuitError
	if errors.As(err, &quit) {
		return quit.Status
	}
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	return cfg.Status
}

// splitLeadingOptions cuts off the leading zone of -H/-L/-P/-D/-O flags.
// -D and -O consume a following argument unless the value is attached.
func splitLeadingOptions(args []string) ([]string, []string) {
	i := 0
	for i < len(args) {
		switch arg := args[i]; {
		case arg == "-H" || arg == "-L" || arg == "-P":
			i++
		case arg == "-D" || arg == "-O":
			i += 2
		case strings.HasPrefix(arg, "-D") || strings.HasPrefix(arg, "-O"):
			i++
		default:
			return args[:min(i, len(args))], args[min(i, len(args)):]
		}
	}
	return args[:min(i, len(args))], nil
}

// splitStartingPoints cuts the starting points off the front of the
// expression, which begins at the first "(", "!" or "-"-prefixed token.
func splitStartingPoints(args []string) ([]string, []string) {
	for i, arg := range args {
		if arg == "(" || arg == "!" || strings.HasPrefix(arg, "-") {
			return args[:i], args[i:]
		}
	}
	return args, nil
}
