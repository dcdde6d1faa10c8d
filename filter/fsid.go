package filter

import (
	"bufio"
	"os"
	"strings"
	"sync"
)

// FilesystemRegistry maps filesystem type ids to names, read once from a
// system table in /proc/filesystems format: one name per line, keyed by
// line order, lines starting with "nodev" skipped. The table is loaded
// lazily on first lookup and never mutated afterwards.
type FilesystemRegistry struct {
	pathname string
	once     sync.Once
	table    map[uint64]string
	err      error
}

// systemFilesystems is the process-wide registry backing -fstype when no
// explicit registry is configured.
var systemFilesystems = NewFilesystemRegistry("/proc/filesystems")

func NewFilesystemRegistry(pathname string) *FilesystemRegistry {
	return &FilesystemRegistry{pathname: pathname}
}

func (r *FilesystemRegistry) load() {
	fp, err := os.Open(r.pathname)
	if err != nil {
		r.err = err
		return
	}
	defer fp.Close()

	table := make(map[uint64]string)
	scanner := bufio.NewScanner(fp)
	for id := uint64(0); scanner.Scan(); id++ {
		line := scanner.Text()
		if strings.HasPrefix(line, "nodev") {
			continue
		}
		table[id] = strings.TrimSpace(line)
	}
	if err := scanner.Err(); err != nil {
		r.err = err
		return
	}
	r.table = table
}

// Name resolves a filesystem type id, returning "Unknown" for ids absent
// from the table. Failing to read the table at all is an error.
func (r *FilesystemRegistry) Name(id uint64) (string, error) {
	r.once.Do(r.load)
	if r.err != nil {
		return "", r.err
	}
	name, ok := r.table[id]
	if !ok {
		return "Unknown", nil
	}
	return name, nil
}
