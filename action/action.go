// Package action implements the expression primitives that produce output
// or steer the traversal: the print family, the long listing, prune, quit
// and delete.
package action

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eztools-go/findutil/filter"
	"github.com/eztools-go/findutil/objects"
)

// openTarget opens the file argument of the -f variants for appending,
// creating it when absent.
func openTarget(args *filter.Args, name string) (io.Writer, error) {
	pathname, ok := args.Next()
	if !ok {
		return nil, fmt.Errorf("%s: missing output file", name)
	}
	fp, err := os.OpenFile(pathname, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot open %s: %w", name, pathname, err)
	}
	return fp, nil
}

func metadata(file *filter.File, followLink bool) (*objects.FileInfo, error) {
	if followLink {
		return file.FollowedMetadata()
	}
	return file.Metadata()
}

// Print emits the pathname of every file it sees and always matches.
// With a newline terminator, names carrying ASCII control characters are
// quoted; the NUL-terminated form is always raw so consumers can split on
// the terminator.
type Print struct {
	w          io.Writer
	terminator byte
}

func NewPrint(w io.Writer) *Print {
	return &Print{w: w, terminator: '\n'}
}

func NewPrint0(w io.Writer) *Print {
	return &Print{w: w, terminator: 0}
}

func NewFilePrint(args *filter.Args) (*Print, error) {
	w, err := openTarget(args, "-fprint")
	if err != nil {
		return nil, err
	}
	return NewPrint(w), nil
}

func NewFilePrint0(args *filter.Args) (*Print, error) {
	w, err := openTarget(args, "-fprint0")
	if err != nil {
		return nil, err
	}
	return NewPrint0(w), nil
}

func (a *Print) Filter(file *filter.File) (bool, error) {
	name := file.Path()
	if a.terminator == '\n' && hasControlCharacters(name) {
		name = "'" + strings.Trim(strconv.Quote(name), `"`) + "'"
	}
	if _, err := fmt.Fprintf(a.w, "%s%c", name, a.terminator); err != nil {
		return false, err
	}
	return true, nil
}

func hasControlCharacters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] <= 0x1f || s[i] == 0x7f {
			return true
		}
	}
	return false
}

// Ls emits one ls -dils style line per file: inode, blocks, mode, link
// count, owner, group, size, modification time and path. Blocks are in
// 1KB units, or 512 bytes when POSIXLY_CORRECT is set.
type Ls struct {
	w            io.Writer
	posixCorrect bool
	followLink   bool
}

func NewLs(w io.Writer, cfg *filter.Config) *Ls {
	return &Ls{
		w:            w,
		posixCorrect: os.Getenv("POSIXLY_CORRECT") != "",
		followLink:   cfg.FollowWhenBuild(),
	}
}

func NewFileLs(args *filter.Args, cfg *filter.Config) (*Ls, error) {
	w, err := openTarget(args, "-fls")
	if err != nil {
		return nil, err
	}
	return &Ls{
		w:            w,
		posixCorrect: os.Getenv("POSIXLY_CORRECT") != "",
		followLink:   cfg.FollowWhenBuild(),
	}, nil
}

func (a *Ls) Filter(file *filter.File) (bool, error) {
	m, err := metadata(file, a.followLink)
	if err != nil {
		return false, err
	}

	blocks := m.Blocks()
	if !a.posixCorrect {
		blocks >>= 1
	}

	owner := m.Username()
	if owner == "" {
		owner = fmt.Sprintf("%d", m.Uid())
	}
	group := m.Groupname()
	if group == "" {
		group = fmt.Sprintf("%d", m.Gid())
	}

	_, err = fmt.Fprintf(a.w, "%d %d %s%o %d %s %s %d %s %s\n",
		m.Ino(),
		blocks,
		fileTypeSymbol(m.Mode()),
		m.Mode().Perm(),
		m.Nlink(),
		owner,
		group,
		m.Size(),
		m.ModTime().Format("Jan _2 15:04"),
		file.Path(),
	)
	if err != nil {
		return false, err
	}
	return true, nil
}

func fileTypeSymbol(mode os.FileMode) string {
	switch filter.FileTypeFromMode(mode) {
	case filter.FileTypeDirectory:
		return "d"
	case filter.FileTypeSymlink:
		return "l"
	case filter.FileTypeBlockDevice:
		return "b"
	case filter.FileTypeCharDevice:
		return "c"
	case filter.FileTypePipe:
		return "p"
	case filter.FileTypeSocket:
		return "s"
	}
	return "-"
}

// Prune tells the traversal not to descend into the current directory and
// always matches.
type Prune struct{}

func NewPrune() *Prune {
	return &Prune{}
}

func (a *Prune) Filter(file *filter.File) (bool, error) {
	return a.FilterWithSideEffects(file, nil)
}

func (a *Prune) FilterWithSideEffects(_ *filter.File, effects *filter.SideEffects) (bool, error) {
	effects.Push(filter.InstructionPrune)
	return true, nil
}

// Quit stops the whole traversal after the current file.
type Quit struct{}

func NewQuit() *Quit {
	return &Quit{}
}

func (a *Quit) Filter(file *filter.File) (bool, error) {
	return a.FilterWithSideEffects(file, nil)
}

func (a *Quit) FilterWithSideEffects(_ *filter.File, effects *filter.SideEffects) (bool, error) {
	effects.Push(filter.InstructionQuit)
	return true, nil
}

// Delete removes the file it is evaluated on. Directories must be empty,
// which the implied contents-first traversal order guarantees for fully
// matched subtrees.
type Delete struct{}

func NewDelete() *Delete {
	return &Delete{}
}

func (a *Delete) Filter(file *filter.File) (bool, error) {
	if err := os.Remove(file.Path()); err != nil {
		return false, err
	}
	return true, nil
}
