// Package search walks the starting points and evaluates the filter tree
// on every visited file, honoring the traversal options and the prune and
// quit instructions the tree emits.
package search

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/eztools-go/findutil/filter"
	"github.com/eztools-go/findutil/logging"
	"github.com/eztools-go/findutil/objects"
)

// QuitError stops the whole traversal; Status becomes the process exit
// status.
type QuitError struct {
	Status int
}

func (e *QuitError) Error() string {
	return fmt.Sprintf("traversal quit with status %d", e.Status)
}

// Search walks every configured starting point in order. A failing
// starting point is reported and the next one is tried; a quit instruction
// aborts the rest and is returned to the caller.
func Search(cfg *filter.Config, filters filter.Filter, logger *logging.Logger) error {
	startingPoints := cfg.StartingPoints
	if len(startingPoints) == 0 {
		startingPoints = []string{"."}
	}

	for _, startingPoint := range startingPoints {
		err := searchStartingPoint(startingPoint, cfg, filters, logger)
		if err == nil {
			continue
		}
		var quit *QuitError
		if errors.As(err, &quit) {
			return err
		}
		logger.Warn("search of starting point %s failed: %v", startingPoint, err)
	}
	return nil
}

type walker struct {
	cfg           *filter.Config
	filters       filter.Filter
	logger        *logging.Logger
	startingPoint string

	// rootDev pins the walk to the starting point's device under -xdev.
	rootDev *uint64
}

func searchStartingPoint(startingPoint string, cfg *filter.Config, filters filter.Filter, logger *logging.Logger) error {
	w := &walker{
		cfg:           cfg,
		filters:       filters,
		logger:        logger,
		startingPoint: startingPoint,
	}

	if cfg.Global.XDev {
		m, err := objects.Stat(startingPoint)
		if err != nil {
			return err
		}
		dev := m.Dev()
		w.rootDev = &dev
	}

	if _, err := os.Lstat(startingPoint); err != nil {
		return err
	}
	return w.walk(startingPoint, 0)
}

// walk visits path at the given depth and recurses into directory
// contents. Pre-order by default, contents-first under -depth.
func (w *walker) walk(path string, depth int) error {
	file := filter.NewFile(path, w.startingPoint, depth, w.cfg.DebugStat)

	if w.rootDev != nil {
		m, err := file.Metadata()
		if err != nil {
			w.logger.Warn("cannot stat %s: %v", path, err)
			return nil
		}
		if m.Dev() != *w.rootDev {
			return nil
		}
	}

	prune := false
	evaluate := func() error {
		if depth < w.cfg.Global.MinDepth {
			return nil
		}
		if w.cfg.Global.MaxDepth >= 0 && depth > w.cfg.Global.MaxDepth {
			return nil
		}
		if w.cfg.DebugSearch {
			w.logger.Debug("search", "consider %s", path)
		}

		effects := &filter.SideEffects{}
		if _, err := filter.Apply(w.filters, file, effects); err != nil {
			w.logger.Warn("cannot evaluate %s: %v", path, err)
		}
		for _, instruction := range effects.Instructions() {
			switch instruction {
			case filter.InstructionPrune:
				prune = true
			case filter.InstructionQuit:
				return &QuitError{Status: w.cfg.Status}
			}
		}
		return nil
	}

	if !w.cfg.Global.Depth {
		if err := evaluate(); err != nil {
			return err
		}
	}

	if !prune && w.descendInto(file, depth) {
		names, err := w.readNames(path)
		if err != nil && !w.cfg.Global.IgnoreReaddirRace {
			w.logger.Warn("cannot read directory %s: %v", path, err)
		}
		for _, name := range names {
			if err := w.walk(filepath.Join(path, name), depth+1); err != nil {
				return err
			}
		}
	}

	if w.cfg.Global.Depth {
		return evaluate()
	}
	return nil
}

// descendInto reports whether path is a directory worth entering. A
// symlink to a directory is entered only when the configured link mode
// follows it at this depth.
func (w *walker) descendInto(file *filter.File, depth int) bool {
	if w.cfg.Global.MaxDepth >= 0 && depth >= w.cfg.Global.MaxDepth {
		return false
	}
	follow := w.cfg.FollowWhenFilter() || (w.cfg.LinkMode == filter.LinkModeH && depth == 0)

	m, err := file.Metadata()
	if err != nil {
		return false
	}
	if m.IsDir() {
		return true
	}
	if !follow || m.Mode()&os.ModeSymlink == 0 {
		return false
	}
	followed, err := file.FollowedMetadata()
	if err != nil {
		return false
	}
	return followed.IsDir()
}

// readNames lists a directory's entry names in lexical order, so runs over
// the same tree are deterministic.
func (w *walker) readNames(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names, err
}
