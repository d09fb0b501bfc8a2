package container

import (
	"github.com/go-git/go-billy/v5"

	"github.com/neurodatakit/datablock/pkg/spec"
)

// DataRoot is the container for the storage root directory.
type DataRoot struct{ base }

// NewDataRoot anchors a predicate at the root level. A nil filesystem means
// the real disk.
func NewDataRoot(fs billy.Filesystem, sel spec.Predicate) (*DataRoot, error) {
	b, err := resolve(fs, sel, spec.LevelRoot)
	if err != nil {
		return nil, err
	}
	return &DataRoot{b}, nil
}

// DataRootFromPath opens a storage root directly from its path.
func DataRootFromPath(fs billy.Filesystem, path string, mode spec.Mode) (*DataRoot, error) {
	p, err := spec.NewPredicate(spec.PredicateParams{Mode: mode, Root: path})
	if err != nil {
		return nil, err
	}
	return NewDataRoot(fs, p)
}

// Dataset descends into one named dataset.
func (r *DataRoot) Dataset(name string) (*Dataset, error) {
	p, err := r.sel.WithValues(spec.PredicateParams{Dataset: spec.Literal(name)})
	if err != nil {
		return nil, err
	}
	return NewDataset(r.fs, p)
}

// Datasets lists the dataset containers the predicate's dataset axis accepts.
func (r *DataRoot) Datasets() ([]*Dataset, error) {
	names, err := r.childDirs()
	if err != nil {
		return nil, err
	}
	out := make([]*Dataset, 0, len(names))
	for _, name := range r.sel.Dataset().Select(names) {
		ds, err := r.Dataset(name)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}
