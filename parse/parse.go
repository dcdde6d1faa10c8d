// Package parse turns the expression tokens of the command line into a
// filter tree. Options mutate the shared configuration and evaluate as
// true; actions additionally record that the implicit print is off.
package parse

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/eztools-go/findutil/action"
	"github.com/eztools-go/findutil/filter"
)

// ErrHelp and ErrVersion are returned when the expression contains the
// corresponding request; the caller prints and exits.
var (
	ErrHelp    = errors.New("help requested")
	ErrVersion = errors.New("version requested")
)

// Expression parses the whole token stream into one filter tree. Adjacent
// operands are joined with an implicit -and; -a/-and, -o/-or and `,` are
// left-associative with equal precedence. An empty stream yields nil.
func Expression(tokens []string, cfg *filter.Config) (filter.Filter, error) {
	return parseExprs(filter.NewArgs(tokens), cfg, false)
}

// WithImplicitPrint appends the implicit -print action when the parsed
// expression contains no action of its own.
func WithImplicitPrint(f filter.Filter, cfg *filter.Config) filter.Filter {
	if cfg.HasActions {
		return f
	}
	print := action.NewPrint(cfg.Stdout)
	if f == nil {
		return print
	}
	return filter.And(f, print)
}

func parseExprs(args *filter.Args, cfg *filter.Config, nested bool) (filter.Filter, error) {
	var lhs filter.Filter

	for {
		tok, ok := args.Peek()
		if !ok {
			if nested {
				return nil, errors.New("no matching closing parenthesis")
			}
			return lhs, nil
		}

		switch tok {
		case ")":
			if !nested {
				return nil, errors.New("unexpected closing parenthesis")
			}
			args.Next()
			if lhs == nil {
				return nil, errors.New("empty parentheses are illegal")
			}
			return lhs, nil

		case "-a", "-and":
			if lhs == nil {
				return nil, fmt.Errorf("%s is a binary operator with no expression before it", tok)
			}
			args.Next()
			rhs, err := parseOperand(args, cfg)
			if err != nil {
				return nil, err
			}
			lhs = filter.And(lhs, rhs)

		case "-o", "-or":
			if lhs == nil {
				return nil, fmt.Errorf("%s is a binary operator with no expression before it", tok)
			}
			args.Next()
			rhs, err := parseOperand(args, cfg)
			if err != nil {
				return nil, err
			}
			lhs = filter.Or(lhs, rhs)

		case ",":
			if lhs == nil {
				return nil, errors.New(", is a binary operator with no expression before it")
			}
			args.Next()
			rhs, err := parseOperand(args, cfg)
			if err != nil {
				return nil, err
			}
			lhs = filter.Comma(lhs, rhs)

		default:
			operand, err := parseOperand(args, cfg)
			if err != nil {
				return nil, err
			}
			if lhs == nil {
				lhs = operand
			} else {
				lhs = filter.And(lhs, operand)
			}
		}
	}
}

// parseOperand consumes one operand: a negation, a parenthesized group, an
// option, a test or an action.
func parseOperand(args *filter.Args, cfg *filter.Config) (filter.Filter, error) {
	tok, ok := args.Next()
	if !ok {
		return nil, errors.New("missing expression operand")
	}

	switch tok {
	case "!", "-not":
		inner, err := parseOperand(args, cfg)
		if err != nil {
			return nil, err
		}
		return filter.Not(inner), nil

	case "(":
		return parseExprs(args, cfg, true)

	// Positional options.
	case "-daystart":
		cfg.Filter.DayStart = true
		return filter.NewTrue(), nil
	case "-follow":
		// -follow implies -noleaf.
		cfg.Filter.FollowLink = true
		cfg.Global.NoLeaf = true
		return filter.NewTrue(), nil
	case "-regextype":
		arg, err := demand(args, "-regextype")
		if err != nil {
			return nil, err
		}
		t, err := filter.ParseRegexType(arg)
		if err != nil {
			return nil, err
		}
		cfg.Filter.RegexType = t
		return filter.NewTrue(), nil
	case "-warn":
		cfg.Filter.Warn = true
		return filter.NewTrue(), nil
	case "-nowarn":
		cfg.Filter.Warn = false
		return filter.NewTrue(), nil

	// Global options.
	case "-d", "-depth":
		cfg.Global.Depth = true
		return filter.NewTrue(), nil
	case "-maxdepth":
		depth, err := demandDepth(args, "-maxdepth")
		if err != nil {
			return nil, err
		}
		cfg.Global.MaxDepth = depth
		return filter.NewTrue(), nil
	case "-mindepth":
		depth, err := demandDepth(args, "-mindepth")
		if err != nil {
			return nil, err
		}
		cfg.Global.MinDepth = depth
		return filter.NewTrue(), nil
	case "-mount", "-xdev":
		cfg.Global.XDev = true
		return filter.NewTrue(), nil
	case "-noleaf":
		cfg.Global.NoLeaf = true
		return filter.NewTrue(), nil
	case "-ignore_readdir_race":
		cfg.Global.IgnoreReaddirRace = true
		return filter.NewTrue(), nil
	case "-noignore_readdir_race":
		cfg.Global.IgnoreReaddirRace = false
		return filter.NewTrue(), nil

	case "-help", "--help":
		return nil, ErrHelp
	case "-version", "--version":
		return nil, ErrVersion

	// Actions that turn off the implicit -print.
	case "-delete":
		// -delete implies -depth.
		cfg.Global.Depth = true
		cfg.HasActions = true
		return action.NewDelete(), nil
	case "-fls":
		cfg.HasActions = true
		return action.NewFileLs(args, cfg)
	case "-fprint":
		cfg.HasActions = true
		return action.NewFilePrint(args)
	case "-fprint0":
		cfg.HasActions = true
		return action.NewFilePrint0(args)
	case "-ls":
		cfg.HasActions = true
		return action.NewLs(cfg.Stdout, cfg), nil
	case "-print":
		cfg.HasActions = true
		return action.NewPrint(cfg.Stdout), nil
	case "-print0":
		cfg.HasActions = true
		return action.NewPrint0(cfg.Stdout), nil

	// Actions that keep the implicit -print.
	case "-prune":
		return action.NewPrune(), nil
	case "-quit":
		return action.NewQuit(), nil

	// Tests.
	case "-amin":
		return filter.NewDurationToNow(filter.TimeAccess, filter.Minute, args, cfg)
	case "-atime":
		return filter.NewDurationToNow(filter.TimeAccess, filter.Day, args, cfg)
	case "-cmin":
		return filter.NewDurationToNow(filter.TimeChange, filter.Minute, args, cfg)
	case "-ctime":
		return filter.NewDurationToNow(filter.TimeChange, filter.Day, args, cfg)
	case "-mmin":
		return filter.NewDurationToNow(filter.TimeModify, filter.Minute, args, cfg)
	case "-mtime":
		return filter.NewDurationToNow(filter.TimeModify, filter.Day, args, cfg)
	case "-anewer":
		return filter.NewNewer(filter.TimeAccess, filter.TimeModify, args, cfg)
	case "-cnewer":
		return filter.NewNewer(filter.TimeChange, filter.TimeModify, args, cfg)
	case "-newer":
		return filter.NewNewer(filter.TimeModify, filter.TimeModify, args, cfg)
	case "-used":
		return filter.NewUsed(args, cfg)
	case "-empty":
		return filter.NewEmpty(cfg), nil
	case "-executable":
		return filter.NewExecutable(), nil
	case "-readable":
		return filter.NewReadable(), nil
	case "-writable":
		return filter.NewWritable(), nil
	case "-true":
		return filter.NewTrue(), nil
	case "-false":
		return filter.NewFalse(), nil
	case "-fstype":
		return filter.NewFileSystemType(args, cfg)
	case "-gid":
		return filter.NewGroupId(args, cfg)
	case "-group":
		return filter.NewGroup(args, cfg)
	case "-uid":
		return filter.NewUserId(args, cfg)
	case "-user":
		return filter.NewUser(args, cfg)
	case "-nogroup":
		return filter.NewNoGroup(cfg), nil
	case "-nouser":
		return filter.NewNoUser(cfg), nil
	case "-ilname":
		return filter.NewInsensitiveLinkedName(args, cfg)
	case "-lname":
		return filter.NewLinkedName(args, cfg)
	case "-iname":
		return filter.NewInsensitiveName(args)
	case "-name":
		return filter.NewName(args)
	case "-inum":
		return filter.NewInode(args, cfg)
	case "-links":
		return filter.NewHardLinks(args, cfg)
	case "-ipath", "-iwholename":
		return filter.NewInsensitivePath(args)
	case "-path", "-wholename":
		return filter.NewPath(args)
	case "-iregex":
		return filter.NewInsensitiveRegex(args, cfg)
	case "-regex":
		return filter.NewRegex(args, cfg)
	case "-perm":
		return filter.NewPerm(args, cfg)
	case "-samefile":
		return filter.NewSameFile(args, cfg)
	case "-size":
		return filter.NewSize(args, cfg)
	case "-type":
		return filter.NewType(args, cfg)
	case "-xtype":
		return filter.NewXType(args, cfg)
	}

	if newer, ok, err := parseNewerXY(tok, args, cfg); ok {
		return newer, err
	}

	return nil, fmt.Errorf("%s is not a valid predicate", tok)
}

// parseNewerXY handles the -newerXY family: X and Y pick the timestamps
// compared, Y may be t to compare against a date string.
func parseNewerXY(tok string, args *filter.Args, cfg *filter.Config) (filter.Filter, bool, error) {
	const prefix = "-newer"
	if len(tok) != len(prefix)+2 || tok[:len(prefix)] != prefix {
		return nil, false, nil
	}

	x, err := timeKindOf(tok[6])
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", tok, err)
	}
	if tok[7] == 't' {
		newer, err := filter.NewNewerDate(x, args, cfg)
		return newer, true, err
	}
	y, err := timeKindOf(tok[7])
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", tok, err)
	}
	newer, err := filter.NewNewer(x, y, args, cfg)
	return newer, true, err
}

func timeKindOf(c byte) (filter.TimeKind, error) {
	switch c {
	case 'a':
		return filter.TimeAccess, nil
	case 'c':
		return filter.TimeChange, nil
	case 'm':
		return filter.TimeModify, nil
	}
	return 0, fmt.Errorf("invalid time selector %q", string(c))
}

func demand(args *filter.Args, name string) (string, error) {
	arg, ok := args.Next()
	if !ok {
		return "", fmt.Errorf("%s: missing argument", name)
	}
	return arg, nil
}

func demandDepth(args *filter.Args, name string) (int, error) {
	arg, err := demand(args, name)
	if err != nil {
		return 0, err
	}
	depth, err := strconv.Atoi(arg)
	if err != nil || depth < 0 {
		return 0, fmt.Errorf("%s: %q is not a non-negative integer", name, arg)
	}
	return depth, nil
}
