package container

import (
	"github.com/go-git/go-billy/v5"

	"github.com/neurodatakit/datablock/pkg/spec"
)

// Dataset is the container for one dataset directory under the root.
type Dataset struct{ base }

// NewDataset anchors a predicate at the dataset level.
func NewDataset(fs billy.Filesystem, sel spec.Predicate) (*Dataset, error) {
	b, err := resolve(fs, sel, spec.LevelDataset)
	if err != nil {
		return nil, err
	}
	return &Dataset{b}, nil
}

// DatasetFromPath opens a dataset directly from its path, reconstructing the
// root one level up.
func DatasetFromPath(fs billy.Filesystem, path string, mode spec.Mode) (*Dataset, error) {
	root, parts, err := splitAbs(path, 1)
	if err != nil {
		return nil, err
	}
	p, err := spec.NewPredicate(spec.PredicateParams{
		Mode: mode, Root: root, Dataset: spec.Literal(parts[0]),
	})
	if err != nil {
		return nil, err
	}
	return NewDataset(fs, p)
}

// Name returns the dataset directory name.
func (d *Dataset) Name() string {
	name, _ := d.pred.Dataset().Single()
	return name
}

// Subject descends into one named subject.
func (d *Dataset) Subject(name string) (*Subject, error) {
	p, err := d.sel.WithValues(spec.PredicateParams{Subject: spec.Literal(name)})
	if err != nil {
		return nil, err
	}
	return NewSubject(d.fs, p)
}

// Subjects lists the subject containers the predicate's subject axis accepts.
func (d *Dataset) Subjects() ([]*Subject, error) {
	names, err := d.childDirs()
	if err != nil {
		return nil, err
	}
	out := make([]*Subject, 0, len(names))
	for _, name := range d.sel.Subject().Select(names) {
		s, err := d.Subject(name)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
