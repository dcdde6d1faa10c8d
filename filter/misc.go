package filter

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Empty implements -empty for regular files and directories.
type Empty struct {
	followLink bool
}

func NewEmpty(cfg *Config) *Empty {
	return &Empty{followLink: cfg.FollowWhenFilter()}
}

func (f *Empty) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	return m.Size() == 0, nil
}

// Inode implements -inum.
type Inode struct {
	cmp        compare[uint64]
	followLink bool
}

func NewInode(args *Args, cfg *Config) (*Inode, error) {
	cmp, err := compareFromArgs(args, "-inum", parseUint)
	if err != nil {
		return nil, err
	}
	return &Inode{cmp: cmp, followLink: cfg.FollowWhenFilter()}, nil
}

func (f *Inode) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	return f.cmp.check(m.Ino()), nil
}

// HardLinks implements -links, comparing the link count.
type HardLinks struct {
	cmp        compare[uint64]
	followLink bool
}

func NewHardLinks(args *Args, cfg *Config) (*HardLinks, error) {
	cmp, err := compareFromArgs(args, "-links", parseUint)
	if err != nil {
		return nil, err
	}
	return &HardLinks{cmp: cmp, followLink: cfg.FollowWhenFilter()}, nil
}

func (f *HardLinks) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	return f.cmp.check(m.Nlink()), nil
}

// Accessible implements -readable, -writable and -executable through the
// access(2) probe, so the real uid and gid decide, and ACLs are honored.
type Accessible struct {
	mode uint32
}

func NewReadable() *Accessible {
	return &Accessible{mode: unix.R_OK}
}

func NewWritable() *Accessible {
	return &Accessible{mode: unix.W_OK}
}

func NewExecutable() *Accessible {
	return &Accessible{mode: unix.X_OK}
}

func (f *Accessible) Filter(file *File) (bool, error) {
	return unix.Access(file.Path(), f.mode) == nil, nil
}

// SameFile implements -samefile: same inode number as a reference path
// resolved once at build time.
type SameFile struct {
	cmp        compare[uint64]
	followLink bool
}

func NewSameFile(args *Args, cfg *Config) (*SameFile, error) {
	reference, err := args.demand("-samefile")
	if err != nil {
		return nil, err
	}
	file := NewFile(reference, "/", 0, cfg.DebugStat)
	m, err := getMetadata(file, cfg.FollowWhenBuild())
	if err != nil {
		return nil, fmt.Errorf("-samefile: cannot stat reference %s: %w", reference, err)
	}
	return &SameFile{
		cmp:        newCompare(m.Ino(), orderEqual),
		followLink: cfg.FollowWhenFilter(),
	}, nil
}

func (f *SameFile) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	return f.cmp.check(m.Ino()), nil
}

// FileSystemType implements -fstype, resolving the device id of a visited
// file through the filesystem registry.
type FileSystemType struct {
	fsType     string
	registry   *FilesystemRegistry
	followLink bool
}

func NewFileSystemType(args *Args, cfg *Config) (*FileSystemType, error) {
	arg, err := args.demand("-fstype")
	if err != nil {
		return nil, err
	}
	registry := cfg.Filesystems
	if registry == nil {
		registry = systemFilesystems
	}
	return &FileSystemType{
		fsType:     arg,
		registry:   registry,
		followLink: cfg.FollowWhenFilter(),
	}, nil
}

func (f *FileSystemType) Filter(file *File) (bool, error) {
	m, err := getMetadata(file, f.followLink)
	if err != nil {
		return false, err
	}
	name, err := f.registry.Name(m.Dev())
	if err != nil {
		return false, err
	}
	return name == f.fsType, nil
}
