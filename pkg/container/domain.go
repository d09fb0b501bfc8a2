package container

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/neurodatakit/datablock/internal/parsing"
	"github.com/neurodatakit/datablock/pkg/spec"
)

// Domain is the container for one domain directory under a session.
type Domain struct{ base }

// NewDomain anchors a predicate at the domain level.
func NewDomain(fs billy.Filesystem, sel spec.Predicate) (*Domain, error) {
	b, err := resolve(fs, sel, spec.LevelDomain)
	if err != nil {
		return nil, err
	}
	return &Domain{b}, nil
}

// DomainFromPath opens a domain directly from its path, reconstructing the
// four levels above it.
func DomainFromPath(fs billy.Filesystem, path string, mode spec.Mode) (*Domain, error) {
	root, parts, err := splitAbs(path, 4)
	if err != nil {
		return nil, err
	}
	sess, err := spec.SessionSpecFromName(parts[2])
	if err != nil {
		return nil, err
	}
	p, err := spec.NewPredicate(spec.PredicateParams{
		Mode: mode, Root: root,
		Dataset: spec.Literal(parts[0]),
		Subject: spec.Literal(parts[1]),
		Session: sess,
		Domain:  spec.Literal(parts[3]),
	})
	if err != nil {
		return nil, err
	}
	return NewDomain(fs, p)
}

// Name returns the domain directory name.
func (d *Domain) Name() string {
	name, _ := d.pred.Domain().Single()
	return name
}

// Session backs out to the session container this domain belongs to.
func (d *Domain) Session() (*Session, error) {
	return NewSession(d.fs, d.sel)
}

// File descends to one named data file in this domain.
func (d *Domain) File(name string) (*Datafile, error) {
	fspec, err := d.fileSpecFor(name)
	if err != nil {
		return nil, err
	}
	p, err := d.sel.WithValues(spec.PredicateParams{File: fspec})
	if err != nil {
		return nil, err
	}
	return NewDatafile(d.fs, p)
}

// Files lists the data file containers the predicate's file axis accepts.
// Entries whose names the filename grammar rejects, or that belong to a
// different subject, session, or domain, are skipped.
func (d *Domain) Files() ([]*Datafile, error) {
	entries, err := d.fs.ReadDir(d.path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var out []*Datafile
	for _, name := range names {
		fspec, err := d.fileSpecFor(name)
		if err != nil {
			continue
		}
		if !d.sel.File().Test(fspec) {
			continue
		}
		p, err := d.sel.WithValues(spec.PredicateParams{File: fspec})
		if err != nil {
			return nil, err
		}
		f, err := NewDatafile(d.fs, p)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// fileSpecFor decomposes a file name and checks that its subject, session,
// and domain tokens agree with the directories the file sits under. Files
// without a block token cannot be addressed as a single file and are
// rejected too.
func (d *Domain) fileSpecFor(name string) (spec.FileSpec, error) {
	parsed, err := parsing.ParseFileName(name)
	if err != nil {
		return spec.FileSpec{}, err
	}
	subject, _ := d.pred.Subject().Single()
	session, _ := d.pred.SessionName()
	if parsed.Subject != subject || parsed.Session.Name != session || parsed.Domain != d.Name() {
		return spec.FileSpec{}, fmt.Errorf("%w: %q does not belong to %s/%s/%s",
			parsing.ErrMalformedName, name, subject, session, d.Name())
	}
	if parsed.Blocktype == "" {
		return spec.FileSpec{}, fmt.Errorf("%w: %q has no trial or run token", parsing.ErrMalformedName, name)
	}
	return spec.FileSpecFromName(name), nil
}
