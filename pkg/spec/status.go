package spec

import "fmt"

// SelectionStatus classifies how many concrete entities an axis or a whole
// predicate denotes.
type SelectionStatus string

const (
	// StatusNone means the axis is explicitly empty: zero candidates.
	StatusNone SelectionStatus = "none"
	// StatusSingle means exactly one concrete value.
	StatusSingle SelectionStatus = "single"
	// StatusMultiple means an explicit finite collection with two or more items.
	StatusMultiple SelectionStatus = "multiple"
	// StatusDynamic means a selector whose result is unknown until it is
	// invoked against candidates.
	StatusDynamic SelectionStatus = "dynamic"
	// StatusUnspecified means the axis is absent: it matches anything.
	StatusUnspecified SelectionStatus = "unspecified"
)

// valueKind tags the closed variant shared by Value and Index.
type valueKind int

const (
	kindUnspecified valueKind = iota
	kindLiteral
	kindMany
	kindDynamic
)

// Selector dynamically narrows a set of candidate names. It must be pure:
// the same candidates always produce the same selection.
type Selector func(candidates []string) []string

// Value is one coordinate on a string-valued hierarchy axis (dataset,
// subject, domain, suffix, channel, ...). The zero Value is unspecified.
type Value struct {
	kind     valueKind
	literal  string
	many     []string
	selector Selector
}

// Literal returns a Value holding exactly one concrete name.
func Literal(s string) Value {
	return Value{kind: kindLiteral, literal: s}
}

// Many returns a Value holding an explicit finite collection. An empty
// collection denotes zero candidates, not "anything".
func Many(items ...string) Value {
	cp := make([]string, len(items))
	copy(cp, items)
	return Value{kind: kindMany, many: cp}
}

// Dynamic returns a Value whose candidates are narrowed by sel at
// resolution time. A nil selector yields an unspecified Value.
func Dynamic(sel Selector) Value {
	if sel == nil {
		return Value{}
	}
	return Value{kind: kindDynamic, selector: sel}
}

// ValueOf builds a Value from a loosely-typed axis argument: a string becomes
// a literal, nil stays unspecified, a Selector (or compatible func) becomes
// dynamic, and a string slice becomes a finite collection. Anything else is
// an invalid specification.
func ValueOf(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Value{}, nil
	case string:
		return Literal(t), nil
	case []string:
		return Many(t...), nil
	case Value:
		return t, nil
	case Selector:
		return Dynamic(t), nil
	case func(candidates []string) []string:
		return Dynamic(t), nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected axis value %v (%T)", ErrInvalidSpecification, v, v)
	}
}

// Status classifies the value: literal is single, absent is unspecified, a
// selector is dynamic, and a collection is none/single/multiple by length.
func (v Value) Status() SelectionStatus {
	switch v.kind {
	case kindLiteral:
		return StatusSingle
	case kindDynamic:
		return StatusDynamic
	case kindMany:
		switch len(v.many) {
		case 0:
			return StatusNone
		case 1:
			return StatusSingle
		default:
			return StatusMultiple
		}
	default:
		return StatusUnspecified
	}
}

// IsUnspecified reports whether the value is absent.
func (v Value) IsUnspecified() bool { return v.kind == kindUnspecified }

// IsDynamic reports whether the value carries a selector.
func (v Value) IsDynamic() bool { return v.kind == kindDynamic }

// Single returns the concrete name and true when the value denotes exactly
// one candidate.
func (v Value) Single() (string, bool) {
	switch {
	case v.kind == kindLiteral:
		return v.literal, true
	case v.kind == kindMany && len(v.many) == 1:
		return v.many[0], true
	default:
		return "", false
	}
}

// Items returns a copy of the explicit candidates. A literal yields one item;
// unspecified and dynamic values yield nil.
func (v Value) Items() []string {
	switch v.kind {
	case kindLiteral:
		return []string{v.literal}
	case kindMany:
		cp := make([]string, len(v.many))
		copy(cp, v.many)
		return cp
	default:
		return nil
	}
}

// Select narrows candidates to those this value accepts. An unspecified
// value accepts everything; a dynamic value defers to its selector.
func (v Value) Select(candidates []string) []string {
	switch v.kind {
	case kindUnspecified:
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	case kindDynamic:
		return v.selector(candidates)
	default:
		var out []string
		for _, c := range candidates {
			if v.contains(c) {
				out = append(out, c)
			}
		}
		return out
	}
}

// Matches reports whether this value, read as a constraint, accepts the
// other value. An unspecified constraint accepts anything. Otherwise the
// other value must denote a single candidate accepted by this one.
func (v Value) Matches(other Value) bool {
	if v.kind == kindUnspecified {
		return true
	}
	s, ok := other.Single()
	if !ok {
		return false
	}
	if v.kind == kindDynamic {
		return len(v.selector([]string{s})) > 0
	}
	return v.contains(s)
}

func (v Value) contains(s string) bool {
	switch v.kind {
	case kindLiteral:
		return v.literal == s
	case kindMany:
		for _, item := range v.many {
			if item == s {
				return true
			}
		}
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case kindLiteral:
		return v.literal
	case kindMany:
		return fmt.Sprintf("%v", v.many)
	case kindDynamic:
		return "<dynamic>"
	default:
		return "<unspecified>"
	}
}
