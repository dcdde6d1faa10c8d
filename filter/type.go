package filter

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileType is the set of file kinds -type and -xtype can select on.
type FileType int

const (
	FileTypeBlockDevice FileType = iota
	FileTypeCharDevice
	FileTypeDirectory
	FileTypePipe
	FileTypeRegular
	FileTypeSymlink
	FileTypeSocket
	FileTypeDoor
)

// ParseFileType maps the single-letter type tokens to a FileType.
func ParseFileType(arg string) (FileType, error) {
	switch arg {
	case "b":
		return FileTypeBlockDevice, nil
	case "c":
		return FileTypeCharDevice, nil
	case "d":
		return FileTypeDirectory, nil
	case "p":
		return FileTypePipe, nil
	case "f":
		return FileTypeRegular, nil
	case "l":
		return FileTypeSymlink, nil
	case "s":
		return FileTypeSocket, nil
	case "D":
		return FileTypeDoor, nil
	}
	return 0, fmt.Errorf("unknown file type %q", arg)
}

// FileTypeFromMode classifies a stat mode.
func FileTypeFromMode(mode fs.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return FileTypeRegular
	case mode.IsDir():
		return FileTypeDirectory
	case mode&fs.ModeSymlink != 0:
		return FileTypeSymlink
	case mode&fs.ModeNamedPipe != 0:
		return FileTypePipe
	case mode&fs.ModeSocket != 0:
		return FileTypeSocket
	case mode&fs.ModeCharDevice != 0:
		return FileTypeCharDevice
	case mode&fs.ModeDevice != 0:
		return FileTypeBlockDevice
	}
	return FileTypeDoor
}

// Type implements -type. Broken symlinks encountered while following are
// still reported as symlinks.
type Type struct {
	fileType   FileType
	followLink bool
}

func NewTypeFilter(fileType FileType, followLink bool) *Type {
	return &Type{fileType: fileType, followLink: followLink}
}

func NewType(args *Args, cfg *Config) (*Type, error) {
	arg, err := args.demand("-type")
	if err != nil {
		return nil, err
	}
	fileType, err := ParseFileType(arg)
	if err != nil {
		return nil, fmt.Errorf("-type: %w", err)
	}
	return NewTypeFilter(fileType, cfg.FollowWhenFilter()), nil
}

// NewXType builds -xtype, which reads the file type with the follow mode
// inverted: the type behind the link when not following, the link itself
// when following.
func NewXType(args *Args, cfg *Config) (*Type, error) {
	arg, err := args.demand("-xtype")
	if err != nil {
		return nil, err
	}
	fileType, err := ParseFileType(arg)
	if err != nil {
		return nil, fmt.Errorf("-xtype: %w", err)
	}
	return NewTypeFilter(fileType, !cfg.FollowWhenFilter()), nil
}

func (f *Type) Filter(file *File) (bool, error) {
	if f.followLink {
		broken, err := isSymlinkBroken(file)
		if err != nil {
			return false, err
		}
		if broken {
			return f.fileType == FileTypeSymlink, nil
		}
	}
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	return FileTypeFromMode(m.Mode()) == f.fileType, nil
}

func isSymlink(file *File) (bool, error) {
	m, err := file.Metadata()
	if err != nil {
		return false, err
	}
	return m.Mode()&fs.ModeSymlink != 0, nil
}

// isSymlinkBroken reports whether the file is a symlink whose target does
// not resolve.
func isSymlinkBroken(file *File) (bool, error) {
	link, err := isSymlink(file)
	if err != nil || !link {
		return false, err
	}
	target, err := os.Readlink(file.Path())
	if err != nil {
		return false, err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(file.Path()), target)
	}
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}
