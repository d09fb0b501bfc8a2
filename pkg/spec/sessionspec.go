package spec

import (
	"fmt"

	"github.com/neurodatakit/datablock/internal/defaults"
	"github.com/neurodatakit/datablock/internal/parsing"
)

// SessionSpec is the sub-specification for the session axis: an explicit
// directory name, or a combination of type tag, date, and session index.
// The zero SessionSpec is fully unspecified. SessionSpec values are
// immutable; updates go through WithValues.
type SessionSpec struct {
	name  Value // explicit directory name, exact
	stype Value // alphabetic type tag ("sess", "awake", ...)
	date  Value // ISO date, YYYY-MM-DD
	index Index
	// digits preserves the index width of a parsed name so formatting
	// round-trips; 0 means the configured default.
	digits int
	sep    string // separator before the index, as parsed
}

// SessionParams carries the keyword fields accepted by NewSessionSpec and
// SessionSpec.WithValues.
type SessionParams struct {
	Name   Value
	Type   Value
	Date   Value
	Index  Index
	Digits int
}

// NewSessionSpec builds a SessionSpec from keyword fields. A single explicit
// name is decomposed through the session-directory grammar so the parsed
// type/date/index become testable; a name the grammar rejects is an invalid
// specification.
func NewSessionSpec(p SessionParams) (SessionSpec, error) {
	s := SessionSpec{
		name:   p.Name,
		stype:  p.Type,
		date:   p.Date,
		index:  p.Index,
		digits: p.Digits,
	}
	if err := s.index.validate("session index"); err != nil {
		return SessionSpec{}, err
	}
	if name, ok := p.Name.Single(); ok {
		parsed, err := parsing.ParseSessionName(name)
		if err != nil {
			return SessionSpec{}, fmt.Errorf("%w: %v", ErrInvalidSpecification, err)
		}
		s = fromParsedSession(parsed)
		// Explicit fields override what the name implies; the literal name
		// no longer holds then and is recomputed on demand.
		if !p.Type.IsUnspecified() || !p.Date.IsUnspecified() || !p.Index.IsUnspecified() {
			s.name = Value{}
			if !p.Type.IsUnspecified() {
				s.stype = p.Type
			}
			if !p.Date.IsUnspecified() {
				s.date = p.Date
			}
			if !p.Index.IsUnspecified() {
				s.index = p.Index
			}
		}
		if p.Digits > 0 {
			s.digits = p.Digits
		}
	}
	return s, nil
}

// SessionSpecFromName decomposes a session directory name.
func SessionSpecFromName(name string) (SessionSpec, error) {
	parsed, err := parsing.ParseSessionName(name)
	if err != nil {
		return SessionSpec{}, fmt.Errorf("%w: %v", ErrInvalidSpecification, err)
	}
	return fromParsedSession(parsed), nil
}

func fromParsedSession(parsed parsing.SessionName) SessionSpec {
	s := SessionSpec{
		name:   Literal(parsed.Name),
		digits: parsed.Digits,
		sep:    parsed.Sep,
	}
	if parsed.Type != "" {
		s.stype = Literal(parsed.Type)
	}
	if parsed.Date != "" {
		s.date = Literal(parsed.Date)
	}
	if parsed.HasIndex {
		s.index = SingleIndex(parsed.Index)
	}
	return s
}

// Type returns the session type field.
func (s SessionSpec) Type() Value { return s.stype }

// Date returns the session date field.
func (s SessionSpec) Date() Value { return s.date }

// Index returns the session index field.
func (s SessionSpec) Index() Index { return s.index }

// IsUnspecified reports whether no field of the spec is set.
func (s SessionSpec) IsUnspecified() bool {
	return s.name.IsUnspecified() && s.stype.IsUnspecified() &&
		s.date.IsUnspecified() && s.index.IsUnspecified()
}

// hasDynamicField reports whether any field carries a selector.
func (s SessionSpec) hasDynamicField() bool {
	return s.name.IsDynamic() || s.stype.IsDynamic() ||
		s.date.IsDynamic() || s.index.IsDynamic()
}

// Status aggregates the per-field statuses. None and dynamic dominate in
// that order, then any explicit multiple field. The spec is single when an
// exact name is present, or when a single index combines with a single type
// or date (that is enough to format one directory name); otherwise it is
// unspecified.
func (s SessionSpec) Status() SelectionStatus {
	statuses := []SelectionStatus{s.name.Status(), s.stype.Status(), s.date.Status(), s.index.Status()}
	for _, dominant := range []SelectionStatus{StatusNone, StatusDynamic} {
		for _, st := range statuses {
			if st == dominant {
				return dominant
			}
		}
	}
	for _, st := range statuses {
		if st == StatusMultiple {
			return StatusMultiple
		}
	}
	if _, ok := s.name.Single(); ok {
		return StatusSingle
	}
	if _, ok := s.index.Single(); ok {
		if _, typed := s.stype.Single(); typed {
			return StatusSingle
		}
		if _, dated := s.date.Single(); dated {
			return StatusSingle
		}
	}
	return StatusUnspecified
}

// Name returns the canonical session directory name. It fails with
// ErrUnresolvablePath unless the spec denotes exactly one session.
func (s SessionSpec) Name() (string, error) {
	if name, ok := s.name.Single(); ok {
		return name, nil
	}
	if st := s.Status(); st != StatusSingle {
		return "", fmt.Errorf("%w: session is not specifying a single condition (status %q)", ErrUnresolvablePath, st)
	}
	stype, _ := s.stype.Single()
	date, _ := s.date.Single()
	name := parsing.SessionName{Type: stype, Date: date, Sep: s.sep}
	if n, ok := s.index.Single(); ok {
		name.Index = n
		name.HasIndex = true
		name.Digits = s.digits
		if name.Digits <= 0 {
			name.Digits = defaults.SessionIndexWidth()
		}
		if name.Sep == "" && date != "" {
			name.Sep = "-"
		}
	}
	return name.Format(), nil
}

// Test reports whether this spec, read as a constraint, accepts another
// concrete spec. Unspecified fields on the receiver always match. When the
// receiver carries an exact name, the name decides alone.
func (s SessionSpec) Test(other SessionSpec) bool {
	if !s.name.IsUnspecified() {
		return s.name.Matches(other.name)
	}
	return s.stype.Matches(other.stype) &&
		s.date.Matches(other.date) &&
		s.index.Matches(other.index)
}

// WithValues returns a new SessionSpec with the given fields overriding the
// current ones. A new single name replaces everything the old name implied
// before the remaining overrides apply.
func (s SessionSpec) WithValues(p SessionParams) (SessionSpec, error) {
	if _, ok := p.Name.Single(); ok {
		return NewSessionSpec(p)
	}
	merged := SessionParams{
		Name:   p.Name,
		Type:   p.Type,
		Date:   p.Date,
		Index:  p.Index,
		Digits: p.Digits,
	}
	componentOverride := !p.Type.IsUnspecified() || !p.Date.IsUnspecified() || !p.Index.IsUnspecified()
	if merged.Name.IsUnspecified() && !componentOverride {
		merged.Name = s.name
	}
	if merged.Type.IsUnspecified() {
		merged.Type = s.stype
	}
	if merged.Date.IsUnspecified() {
		merged.Date = s.date
	}
	if merged.Index.IsUnspecified() {
		merged.Index = s.index
	}
	if merged.Digits <= 0 {
		merged.Digits = s.digits
	}
	return NewSessionSpec(merged)
}
