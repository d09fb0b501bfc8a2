// Package container binds predicates to directories and files in a data
// tree laid out as root/dataset/subject/session/domain/file. Containers
// navigate the tree through a billy filesystem, so the same code runs
// against the real disk and against an in-memory tree.
package container

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/neurodatakit/datablock/pkg/spec"
)

var (
	// ErrWrongLevel marks a predicate that does not reach the level a
	// container requires.
	ErrWrongLevel = errors.New("predicate does not reach the container level")
	// ErrNotFound marks a resolved path that has no entry on the filesystem.
	ErrNotFound = errors.New("no such entry")
	// ErrReadOnly marks a write attempted through a read-mode container.
	ErrReadOnly = errors.New("container is read-only")
	// ErrExists marks an append-mode save that would overwrite an entry.
	ErrExists = errors.New("entry already exists")
)

// base carries what every container level shares: the filesystem, the
// predicate as given (kept for filtering children), the predicate truncated
// to the container's own level, and the resolved path.
type base struct {
	fs   billy.Filesystem
	sel  spec.Predicate
	pred spec.Predicate
	path string
}

// resolve anchors a predicate at a level. The predicate must reach at least
// that deep; anything deeper is truncated away for the container's own path
// but kept on sel so child listings stay constrained. Read mode requires the
// path to exist; write and append modes create the directories leading to it.
func resolve(fs billy.Filesystem, sel spec.Predicate, level spec.Level) (base, error) {
	if fs == nil {
		fs = osfs.New("/")
	}
	if sel.Level() < level {
		return base{}, fmt.Errorf("%w: need %s, predicate reaches %s", ErrWrongLevel, level, sel.Level())
	}
	pred := sel.AtLevel(level)
	path, err := pred.Path()
	if err != nil {
		return base{}, err
	}

	dir := path
	if level == spec.LevelFile {
		dir = filepath.Dir(path)
	}
	switch pred.Mode() {
	case spec.ModeWrite, spec.ModeAppend:
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return base{}, err
		}
	default:
		if _, err := fs.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return base{}, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return base{}, err
		}
	}
	return base{fs: fs, sel: sel, pred: pred, path: path}, nil
}

// Path returns the resolved filesystem path of the container.
func (b base) Path() string { return b.path }

// Predicate returns the predicate truncated to the container's level.
func (b base) Predicate() spec.Predicate { return b.pred }

// Mode returns the access mode the container was opened with.
func (b base) Mode() spec.Mode { return b.pred.Mode() }

// childDirs lists the subdirectory names under the container, sorted,
// skipping dotted entries.
func (b base) childDirs() ([]string, error) {
	entries, err := b.fs.ReadDir(b.path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// splitAbs normalizes a path to absolute form and peels off its last n
// components.
func splitAbs(path string, n int) (string, []string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}
	return splitTail(abs, n)
}

// splitTail peels the last n path components off a cleaned path, returning
// the remaining prefix and the components in tree order.
func splitTail(path string, n int) (string, []string, error) {
	path = filepath.Clean(path)
	parts := make([]string, n)
	for i := n - 1; i >= 0; i-- {
		dir, name := filepath.Split(path)
		if name == "" || dir == "" {
			return "", nil, fmt.Errorf("%w: %q has fewer than %d components above the root", ErrWrongLevel, path, n)
		}
		parts[i] = name
		path = filepath.Clean(dir)
	}
	return path, parts, nil
}
