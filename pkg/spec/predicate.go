package spec

import (
	"fmt"
	"path/filepath"
)

// Predicate is the six-axis coordinate addressing entities under
// root/dataset/subject/session/domain/file, together with an access mode.
// Construction never touches the filesystem; a Predicate is a pure value and
// all updates copy.
type Predicate struct {
	mode    Mode
	root    string // absolute path, or "" when unspecified
	dataset Value
	subject Value
	session SessionSpec
	domain  Value
	file    FileSpec
}

// PredicateParams carries the keyword fields accepted by NewPredicate and
// Predicate.WithValues.
type PredicateParams struct {
	Mode    Mode
	Root    string
	Dataset Value
	Subject Value
	Session SessionSpec
	Domain  Value
	File    FileSpec
}

// NewPredicate builds a Predicate. An empty mode defaults to read; a
// non-empty root is normalized to an absolute path without checking that it
// exists.
func NewPredicate(p PredicateParams) (Predicate, error) {
	mode, err := VerifyMode(p.Mode)
	if err != nil {
		return Predicate{}, err
	}
	root := p.Root
	if root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return Predicate{}, fmt.Errorf("%w: root %q: %v", ErrInvalidSpecification, p.Root, err)
		}
		root = abs
	}
	return Predicate{
		mode:    mode,
		root:    root,
		dataset: p.Dataset,
		subject: p.Subject,
		session: p.Session,
		domain:  p.Domain,
		file:    p.File,
	}, nil
}

// Mode returns the access mode.
func (p Predicate) Mode() Mode { return p.mode }

// Root returns the absolute storage root, or "" when unspecified.
func (p Predicate) Root() string { return p.root }

// Dataset returns the dataset axis.
func (p Predicate) Dataset() Value { return p.dataset }

// Subject returns the subject axis.
func (p Predicate) Subject() Value { return p.subject }

// Session returns the session sub-specification.
func (p Predicate) Session() SessionSpec { return p.session }

// Domain returns the domain axis.
func (p Predicate) Domain() Value { return p.domain }

// File returns the file sub-specification.
func (p Predicate) File() FileSpec { return p.file }

// rootValue views the root as an axis value for the status walk.
func (p Predicate) rootValue() Value {
	if p.root == "" {
		return Value{}
	}
	return Literal(p.root)
}

// Level returns the deepest axis that is non-trivially specified, checked
// from file upward.
func (p Predicate) Level() Level {
	switch {
	case p.file.Status() != StatusUnspecified:
		return LevelFile
	case !p.domain.IsUnspecified():
		return LevelDomain
	case p.session.Status() != StatusUnspecified:
		return LevelSession
	case !p.subject.IsUnspecified():
		return LevelSubject
	case !p.dataset.IsUnspecified():
		return LevelDataset
	case p.root != "":
		return LevelRoot
	default:
		return LevelNA
	}
}

// Status classifies how many entities the predicate denotes. Any dynamic
// field anywhere makes the whole predicate dynamic. Otherwise the axes are
// walked from least to most specific: an axis above the level that is not
// single blocks resolution with its own status, and the axis at the level
// has the final say.
func (p Predicate) Status() SelectionStatus {
	if p.dataset.IsDynamic() || p.subject.IsDynamic() || p.domain.IsDynamic() ||
		p.session.hasDynamicField() || p.file.hasDynamicField() {
		return StatusDynamic
	}

	level := p.Level()
	if level == LevelNA {
		return StatusUnspecified
	}

	walk := []struct {
		value Value
		level Level
	}{
		{p.rootValue(), LevelRoot},
		{p.dataset, LevelDataset},
		{p.subject, LevelSubject},
	}
	for _, ax := range walk {
		status := ax.value.Status()
		if level == ax.level || status != StatusSingle {
			return status
		}
	}

	if status := p.session.Status(); level == LevelSession || status != StatusSingle {
		return status
	}
	if status := p.domain.Status(); level == LevelDomain || status != StatusSingle {
		return status
	}
	return p.file.Status()
}

// Path returns the filesystem path the predicate denotes. It fails with
// ErrUnresolvablePath, carrying the actual status, unless the predicate
// denotes exactly one entity.
func (p Predicate) Path() (string, error) {
	level := p.Level()
	status := p.Status()
	if status != StatusSingle {
		return "", fmt.Errorf("%w: not specifying a single condition (status %q)", ErrUnresolvablePath, status)
	}

	if level == LevelRoot {
		return p.root, nil
	}
	dataset, _ := p.dataset.Single()
	path := filepath.Join(p.root, dataset)
	if level == LevelDataset {
		return path, nil
	}
	subject, _ := p.subject.Single()
	path = filepath.Join(path, subject)
	if level == LevelSubject {
		return path, nil
	}
	session, err := p.session.Name()
	if err != nil {
		return "", err
	}
	path = filepath.Join(path, session)
	if level == LevelSession {
		return path, nil
	}
	domain, _ := p.domain.Single()
	path = filepath.Join(path, domain)
	if level == LevelDomain {
		return path, nil
	}
	name, err := p.file.FormatName(NameContext{Subject: subject, Session: session, Domain: domain})
	if err != nil {
		return "", err
	}
	return filepath.Join(path, name), nil
}

// SessionName is the passthrough to SessionSpec.Name.
func (p Predicate) SessionName() (string, error) { return p.session.Name() }

// Trial is the passthrough to FileSpec.Trial.
func (p Predicate) Trial() (Index, error) { return p.file.Trial() }

// Run is the passthrough to FileSpec.Run.
func (p Predicate) Run() (Index, error) { return p.file.Run() }

// Channel is the passthrough to the file channel field.
func (p Predicate) Channel() Value { return p.file.Channel() }

// Suffix is the passthrough to the file suffix field.
func (p Predicate) Suffix() Value { return p.file.Suffix() }

// WithValues returns a new Predicate with the given fields overriding the
// current ones. Zero-valued params keep the current field.
func (p Predicate) WithValues(params PredicateParams) (Predicate, error) {
	return p.withValues(params, false)
}

// WithValuesCleared resets every field except mode and root to its empty
// default before applying the overrides. It is the way to start over while
// keeping the storage root fixed.
func (p Predicate) WithValuesCleared(params PredicateParams) (Predicate, error) {
	return p.withValues(params, true)
}

func (p Predicate) withValues(params PredicateParams, clear bool) (Predicate, error) {
	merged := params
	if merged.Mode == "" {
		merged.Mode = p.mode
	}
	if merged.Root == "" {
		merged.Root = p.root
	}
	if !clear {
		if merged.Dataset.IsUnspecified() {
			merged.Dataset = p.dataset
		}
		if merged.Subject.IsUnspecified() {
			merged.Subject = p.subject
		}
		if merged.Session.IsUnspecified() {
			merged.Session = p.session
		}
		if merged.Domain.IsUnspecified() {
			merged.Domain = p.domain
		}
		if merged.File.IsUnspecified() {
			merged.File = p.file
		}
	}
	return NewPredicate(merged)
}

// Cleared returns a Predicate where everything except mode and root is reset
// to its empty default.
func (p Predicate) Cleared() Predicate {
	cleared, err := p.WithValuesCleared(PredicateParams{})
	if err != nil {
		// mode and root were validated when p was built
		panic(fmt.Sprintf("clearing a valid predicate failed: %v", err))
	}
	return cleared
}

// AtLevel returns a copy truncated to the given level: every axis deeper
// than l is reset to its empty default. Truncating to NA clears everything
// except mode and root, like Cleared.
func (p Predicate) AtLevel(l Level) Predicate {
	out := p
	if l < LevelFile {
		out.file = FileSpec{}
	}
	if l < LevelDomain {
		out.domain = Value{}
	}
	if l < LevelSession {
		out.session = SessionSpec{}
	}
	if l < LevelSubject {
		out.subject = Value{}
	}
	if l < LevelDataset {
		out.dataset = Value{}
	}
	return out
}
