package container

import (
	"github.com/go-git/go-billy/v5"

	"github.com/neurodatakit/datablock/pkg/spec"
)

// Session is the container for one session directory under a subject.
type Session struct{ base }

// NewSession anchors a predicate at the session level. The predicate must
// carry a session specification that denotes exactly one directory.
func NewSession(fs billy.Filesystem, sel spec.Predicate) (*Session, error) {
	b, err := resolve(fs, sel, spec.LevelSession)
	if err != nil {
		return nil, err
	}
	return &Session{b}, nil
}

// SessionFromPath opens a session directly from its path, reconstructing
// subject, dataset, and root from the three levels above it.
func SessionFromPath(fs billy.Filesystem, path string, mode spec.Mode) (*Session, error) {
	root, parts, err := splitAbs(path, 3)
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
	})
	if err != nil {
		return nil, err
	}
	return NewSession(fs, p)
}

// Name returns the session directory name.
func (s *Session) Name() string {
	name, _ := s.pred.SessionName()
	return name
}

// Subject backs out to the subject container this session belongs to.
func (s *Session) Subject() (*Subject, error) {
	return NewSubject(s.fs, s.sel)
}

// Domain descends into one named domain directory.
func (s *Session) Domain(name string) (*Domain, error) {
	p, err := s.sel.WithValues(spec.PredicateParams{Domain: spec.Literal(name)})
	if err != nil {
		return nil, err
	}
	return NewDomain(s.fs, p)
}

// Domains lists the domain containers the predicate's domain axis accepts.
func (s *Session) Domains() ([]*Domain, error) {
	names, err := s.childDirs()
	if err != nil {
		return nil, err
	}
	out := make([]*Domain, 0, len(names))
	for _, name := range s.sel.Domain().Select(names) {
		d, err := s.Domain(name)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
