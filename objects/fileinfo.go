package objects

import (
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
)

// FileInfo is a point-in-time stat snapshot of one directory entry. It
// carries the fields fs.FileInfo does not surface (inode, device, link
// count, ownership, access and change times) plus the owner and group
// names resolved best-effort at snapshot time.
type FileInfo struct {
	Lname       string      `json:"Name"`
	Lsize       int64       `json:"Size"`
	Lmode       fs.FileMode `json:"Mode"`
	LmodTime    time.Time   `json:"ModTime"`
	LaccessTime time.Time   `json:"AccessTime"`
	LchangeTime time.Time   `json:"ChangeTime"`
	Ldev        uint64      `json:"Dev"`
	Lino        uint64      `json:"Ino"`
	Luid        uint64      `json:"Uid"`
	Lgid        uint64      `json:"Gid"`
	Lnlink      uint64      `json:"Nlink"`
	Lblocks     uint64      `json:"Blocks"`
	Lusername   string      `json:"Username"`
	Lgroupname  string      `json:"Groupname"`
}

func (f FileInfo) Name() string {
	return f.Lname
}

func (f FileInfo) Size() int64 {
	return f.Lsize
}

func (f FileInfo) Mode() os.FileMode {
	return f.Lmode
}

func (f FileInfo) ModTime() time.Time {
	return f.LmodTime
}

func (f FileInfo) AccessTime() time.Time {
	return f.LaccessTime
}

func (f FileInfo) ChangeTime() time.Time {
	return f.LchangeTime
}

func (f FileInfo) Dev() uint64 {
	return f.Ldev
}

func (f FileInfo) Ino() uint64 {
	return f.Lino
}

func (f FileInfo) Uid() uint64 {
	return f.Luid
}

func (f FileInfo) Gid() uint64 {
	return f.Lgid
}

func (f FileInfo) IsDir() bool {
	return f.Lmode.IsDir()
}

func (f FileInfo) Nlink() uint64 {
	return f.Lnlink
}

// Blocks returns the allocated block count in 512-byte units.
func (f FileInfo) Blocks() uint64 {
	return f.Lblocks
}

func (f FileInfo) Sys() any {
	return nil
}

// Username returns the owner name resolved when the snapshot was taken,
// or "" when the uid did not resolve.
func (f FileInfo) Username() string {
	return f.Lusername
}

// Groupname returns the group name resolved when the snapshot was taken,
// or "" when the gid did not resolve.
func (f FileInfo) Groupname() string {
	return f.Lgroupname
}

// FileInfoFromStat builds a snapshot from an fs.FileInfo, pulling the
// extended fields out of the underlying Stat_t when available.
func FileInfoFromStat(stat fs.FileInfo) FileInfo {
	fileinfo := FileInfo{
		Lname:    stat.Name(),
		Lsize:    stat.Size(),
		Lmode:    stat.Mode(),
		LmodTime: stat.ModTime(),
		Lnlink:   1,
	}

	if st, ok := stat.Sys().(*syscall.Stat_t); ok {
		fileinfo.Ldev = uint64(st.Dev)
		fileinfo.Lino = uint64(st.Ino)
		fileinfo.Luid = uint64(st.Uid)
		fileinfo.Lgid = uint64(st.Gid)
		fileinfo.Lnlink = uint64(st.Nlink)
		fileinfo.Lblocks = uint64(st.Blocks)
		fileinfo.LaccessTime, fileinfo.LchangeTime = statTimes(st)

		if u, err := user.LookupId(fmt.Sprintf("%d", st.Uid)); err == nil {
			fileinfo.Lusername = u.Username
		}
		if g, err := user.LookupGroupId(fmt.Sprintf("%d", st.Gid)); err == nil {
			fileinfo.Lgroupname = g.Name
		}
	}

	return fileinfo
}

// Lstat snapshots the entry itself, never following a final symlink.
func Lstat(pathname string) (FileInfo, error) {
	stat, err := os.Lstat(pathname)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfoFromStat(stat), nil
}

// Stat snapshots the target of pathname, following symlinks.
func Stat(pathname string) (FileInfo, error) {
	stat, err := os.Stat(pathname)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfoFromStat(stat), nil
}

func (f *FileInfo) HumanSize() string {
	return humanize.Bytes(uint64(f.Size()))
}

func (f *FileInfo) Equal(fi *FileInfo) bool {
	return f.Lname == fi.Lname &&
		f.Lsize == fi.Lsize &&
		f.Lmode == fi.Lmode &&
		f.LmodTime == fi.LmodTime &&
		f.LaccessTime == fi.LaccessTime &&
		f.LchangeTime == fi.LchangeTime &&
		f.Ldev == fi.Ldev &&
		f.Lino == fi.Lino &&
		f.Luid == fi.Luid &&
		f.Lgid == fi.Lgid &&
		f.Lnlink == fi.Lnlink
}
