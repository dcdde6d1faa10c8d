package filter

import (
	"fmt"
	"os"

	"github.com/eztools-go/findutil/objects"
)

// MetadataSource produces stat snapshots for a path. The default source
// queries the OS; tests substitute an instrumented one.
type MetadataSource interface {
	// Stat snapshots the target of pathname, following symlinks.
	Stat(pathname string) (objects.FileInfo, error)

	// Lstat snapshots the entry itself, never following a final symlink.
	Lstat(pathname string) (objects.FileInfo, error)
}

type osSource struct{}

func (osSource) Stat(pathname string) (objects.FileInfo, error) {
	return objects.Stat(pathname)
}

func (osSource) Lstat(pathname string) (objects.FileInfo, error) {
	return objects.Lstat(pathname)
}

// File is one candidate path under evaluation. It memoizes up to two
// metadata snapshots, one per follow mode, so that a whole filter tree
// costs at most one stat and one lstat per visited file.
type File struct {
	path          string
	startingPoint string
	depth         int
	debug         bool
	source        MetadataSource

	metadata         *objects.FileInfo
	followedMetadata *objects.FileInfo
}

func NewFile(path string, startingPoint string, depth int, debug bool) *File {
	return NewFileWithSource(path, startingPoint, depth, debug, osSource{})
}

// NewFileWithSource is NewFile with a caller-provided metadata source.
func NewFileWithSource(path string, startingPoint string, depth int, debug bool, source MetadataSource) *File {
	return &File{
		path:          path,
		startingPoint: startingPoint,
		depth:         depth,
		debug:         debug,
		source:        source,
	}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) StartingPoint() string {
	return f.startingPoint
}

func (f *File) Depth() int {
	return f.depth
}

// Metadata returns the memoized lstat snapshot, querying the source on
// first use only. Failed lookups are not cached.
func (f *File) Metadata() (*objects.FileInfo, error) {
	if f.metadata == nil {
		if f.debug {
			fmt.Fprintf(os.Stderr, "Debug stat: %s\n", f.path)
		}
		m, err := f.source.Lstat(f.path)
		if err != nil {
			return nil, err
		}
		f.metadata = &m
	}
	return f.metadata, nil
}

// FollowedMetadata returns the memoized stat snapshot; if the file is a
// symlink the pointed-to file is queried.
func (f *File) FollowedMetadata() (*objects.FileInfo, error) {
	if f.followedMetadata == nil {
		if f.debug {
			fmt.Fprintf(os.Stderr, "Debug stat: %s\n", f.path)
		}
		m, err := f.source.Stat(f.path)
		if err != nil {
			return nil, err
		}
		f.followedMetadata = &m
	}
	return f.followedMetadata, nil
}

func getMetadata(f *File, followLink bool) (*objects.FileInfo, error) {
	if followLink {
		return f.FollowedMetadata()
	}
	return f.Metadata()
}
