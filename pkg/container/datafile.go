package container

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"

	"github.com/neurodatakit/datablock/internal/dataio"
	"github.com/neurodatakit/datablock/pkg/spec"
)

// Datafile is the container for one data file inside a domain directory.
type Datafile struct{ base }

// NewDatafile anchors a predicate at the file level. The file specification
// must denote exactly one name in its session context.
func NewDatafile(fs billy.Filesystem, sel spec.Predicate) (*Datafile, error) {
	b, err := resolve(fs, sel, spec.LevelFile)
	if err != nil {
		return nil, err
	}
	return &Datafile{b}, nil
}

// DatafileFromPath opens a data file directly from its path, reconstructing
// domain, session, subject, dataset, and root from the five levels above it.
// The file name tokens must agree with those directories.
func DatafileFromPath(fs billy.Filesystem, path string, mode spec.Mode) (*Datafile, error) {
	root, parts, err := splitAbs(path, 5)
	if err != nil {
		return nil, err
	}
	p, err := spec.NewPredicate(spec.PredicateParams{
		Mode: mode, Root: root,
		Dataset: spec.Literal(parts[0]),
		Subject: spec.Literal(parts[1]),
		Domain:  spec.Literal(parts[3]),
	})
	if err != nil {
		return nil, err
	}
	// Resolve to the domain first so the file name is vetted against the
	// directories it sits under.
	sess, err := spec.SessionSpecFromName(parts[2])
	if err != nil {
		return nil, err
	}
	p, err = p.WithValues(spec.PredicateParams{Session: sess})
	if err != nil {
		return nil, err
	}
	dom, err := NewDomain(fs, p)
	if err != nil {
		return nil, err
	}
	return dom.File(parts[4])
}

// Name returns the file name.
func (f *Datafile) Name() string { return filepath.Base(f.path) }

// Exists reports whether the file is present on the filesystem. Write and
// append containers resolve without the file existing yet.
func (f *Datafile) Exists() bool {
	_, err := f.fs.Stat(f.path)
	return err == nil
}

// Load decodes the file's contents through the codec registered for its
// suffix. Content I/O always targets the host filesystem; the billy
// filesystem serves navigation only.
func (f *Datafile) Load() (any, error) {
	return dataio.Load(f.path)
}

// Save encodes v through the codec registered for the file's suffix and
// writes it atomically. Read containers refuse; append containers refuse to
// overwrite an existing file.
func (f *Datafile) Save(v any) error {
	switch f.Mode() {
	case spec.ModeRead:
		return fmt.Errorf("%w: %s", ErrReadOnly, f.path)
	case spec.ModeAppend:
		if f.Exists() {
			return fmt.Errorf("%w: %s", ErrExists, f.path)
		}
	}
	return dataio.Save(f.path, v)
}

// Remove deletes the file. Read containers refuse.
func (f *Datafile) Remove() error {
	if f.Mode() == spec.ModeRead {
		return fmt.Errorf("%w: %s", ErrReadOnly, f.path)
	}
	if err := f.fs.Remove(f.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, f.path)
		}
		return err
	}
	return nil
}

// Domain backs out to the domain container this file belongs to.
func (f *Datafile) Domain() (*Domain, error) {
	return NewDomain(f.fs, f.sel)
}

// Session backs out to the session container this file belongs to.
func (f *Datafile) Session() (*Session, error) {
	return NewSession(f.fs, f.sel)
}

// Subject backs out to the subject container this file belongs to.
func (f *Datafile) Subject() (*Subject, error) {
	return NewSubject(f.fs, f.sel)
}

// Dataset backs out to the dataset container this file belongs to.
func (f *Datafile) Dataset() (*Dataset, error) {
	return NewDataset(f.fs, f.sel)
}
