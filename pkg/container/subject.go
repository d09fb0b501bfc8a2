package container

import (
	"github.com/go-git/go-billy/v5"

	"github.com/neurodatakit/datablock/pkg/spec"
)

// Subject is the container for one subject directory under a dataset.
type Subject struct{ base }

// NewSubject anchors a predicate at the subject level.
func NewSubject(fs billy.Filesystem, sel spec.Predicate) (*Subject, error) {
	b, err := resolve(fs, sel, spec.LevelSubject)
	if err != nil {
		return nil, err
	}
	return &Subject{b}, nil
}

// SubjectFromPath opens a subject directly from its path, reconstructing the
// dataset and root from the two levels above it.
func SubjectFromPath(fs billy.Filesystem, path string, mode spec.Mode) (*Subject, error) {
	root, parts, err := splitAbs(path, 2)
	if err != nil {
		return nil, err
	}
	p, err := spec.NewPredicate(spec.PredicateParams{
		Mode: mode, Root: root,
		Dataset: spec.Literal(parts[0]),
		Subject: spec.Literal(parts[1]),
	})
	if err != nil {
		return nil, err
	}
	return NewSubject(fs, p)
}

// Name returns the subject directory name.
func (s *Subject) Name() string {
	name, _ := s.pred.Subject().Single()
	return name
}

// Session descends into one named session directory. The name must satisfy
// the session grammar.
func (s *Subject) Session(name string) (*Session, error) {
	sess, err := spec.SessionSpecFromName(name)
	if err != nil {
		return nil, err
	}
	p, err := s.sel.WithValues(spec.PredicateParams{Session: sess})
	if err != nil {
		return nil, err
	}
	return NewSession(s.fs, p)
}

// Sessions lists the session containers the predicate's session axis
// accepts. Directories the session grammar rejects are skipped.
func (s *Subject) Sessions() ([]*Session, error) {
	names, err := s.childDirs()
	if err != nil {
		return nil, err
	}
	var out []*Session
	for _, name := range names {
		candidate, err := spec.SessionSpecFromName(name)
		if err != nil {
			continue
		}
		if !s.sel.Session().Test(candidate) {
			continue
		}
		sess, err := s.Session(name)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}
