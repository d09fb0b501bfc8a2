package spec

import (
	"fmt"
	"strconv"
	"strings"
)

// indexSeparators are tried in order when a string looks like a repeated
// index ("1,2,3", "4/5", ...). Whitespace is checked before any of them.
var indexSeparators = []string{",", "/", "+", "-"}

// IndexSelector dynamically narrows a set of candidate indices.
type IndexSelector func(candidates []int) []int

// Index is the integer peer of Value, used for trial and run numbers.
// The zero Index is unspecified.
type Index struct {
	kind     valueKind
	value    int
	many     []int
	selector IndexSelector
}

// SingleIndex returns an Index holding exactly one number. Validity
// (non-negativity) is checked where the index enters a FileSpec.
func SingleIndex(n int) Index {
	return Index{kind: kindLiteral, value: n}
}

// IndexList returns an Index holding an explicit finite collection.
func IndexList(ns ...int) Index {
	cp := make([]int, len(ns))
	copy(cp, ns)
	return Index{kind: kindMany, many: cp}
}

// DynamicIndex returns an Index narrowed by sel at resolution time.
func DynamicIndex(sel IndexSelector) Index {
	if sel == nil {
		return Index{}
	}
	return Index{kind: kindDynamic, selector: sel}
}

// ParseIndex normalizes a textual index argument. It accepts a plain
// non-negative number, or a repetition split on the first matching separator
// (",", "/", "+", "-") or on whitespace. Empty tokens and negative or
// unparsable numbers fail with ErrInvalidIndex.
func ParseIndex(s string) (Index, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Index{}, nil
	}
	// A plain number wins over separator splitting so "-1" is a negative
	// index, not the repetition ["", "1"].
	if _, err := strconv.Atoi(s); err == nil {
		n, err := parseIndexToken(s)
		if err != nil {
			return Index{}, err
		}
		return SingleIndex(n), nil
	}
	if tokens, ok := splitRepeated(s); ok {
		ns := make([]int, 0, len(tokens))
		for _, tok := range tokens {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				// "3-" and "1,,2" are malformed, not repetitions with
				// holes in them.
				return Index{}, fmt.Errorf("%w: cannot parse %q into an index", ErrInvalidIndex, s)
			}
			n, err := parseIndexToken(tok)
			if err != nil {
				return Index{}, err
			}
			ns = append(ns, n)
		}
		return IndexList(ns...), nil
	}
	n, err := parseIndexToken(s)
	if err != nil {
		return Index{}, err
	}
	return SingleIndex(n), nil
}

func parseIndexToken(tok string) (int, error) {
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse %q into an index", ErrInvalidIndex, tok)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: index cannot be negative (got %d)", ErrInvalidIndex, n)
	}
	return n, nil
}

// splitRepeated reports whether s is a repetition of tokens, and if so
// returns them. Whitespace wins over the listed separators.
func splitRepeated(s string) ([]string, bool) {
	if strings.ContainsAny(s, " \t") {
		return strings.Fields(s), true
	}
	for _, sep := range indexSeparators {
		if strings.Contains(s, sep) {
			return strings.Split(s, sep), true
		}
	}
	return nil, false
}

// Status classifies the index the same way Value.Status classifies names.
func (ix Index) Status() SelectionStatus {
	switch ix.kind {
	case kindLiteral:
		return StatusSingle
	case kindDynamic:
		return StatusDynamic
	case kindMany:
		switch len(ix.many) {
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

// IsUnspecified reports whether the index is absent.
func (ix Index) IsUnspecified() bool { return ix.kind == kindUnspecified }

// IsDynamic reports whether the index carries a selector.
func (ix Index) IsDynamic() bool { return ix.kind == kindDynamic }

// Single returns the concrete number and true when the index denotes
// exactly one candidate.
func (ix Index) Single() (int, bool) {
	switch {
	case ix.kind == kindLiteral:
		return ix.value, true
	case ix.kind == kindMany && len(ix.many) == 1:
		return ix.many[0], true
	default:
		return 0, false
	}
}

// Items returns a copy of the explicit candidates, in order.
func (ix Index) Items() []int {
	switch ix.kind {
	case kindLiteral:
		return []int{ix.value}
	case kindMany:
		cp := make([]int, len(ix.many))
		copy(cp, ix.many)
		return cp
	default:
		return nil
	}
}

// Matches reports whether this index, read as a constraint, accepts the
// other index.
func (ix Index) Matches(other Index) bool {
	if ix.kind == kindUnspecified {
		return true
	}
	n, ok := other.Single()
	if !ok {
		return false
	}
	switch ix.kind {
	case kindDynamic:
		return len(ix.selector([]int{n})) > 0
	case kindLiteral:
		return ix.value == n
	case kindMany:
		for _, item := range ix.many {
			if item == n {
				return true
			}
		}
	}
	return false
}

// validate checks all explicit candidates are non-negative.
func (ix Index) validate(label string) error {
	for _, n := range ix.Items() {
		if n < 0 {
			return fmt.Errorf("%w: %s cannot be negative (got %d)", ErrInvalidIndex, label, n)
		}
	}
	return nil
}

func (ix Index) String() string {
	switch ix.kind {
	case kindLiteral:
		return strconv.Itoa(ix.value)
	case kindMany:
		return fmt.Sprintf("%v", ix.many)
	case kindDynamic:
		return "<dynamic>"
	default:
		return "<unspecified>"
	}
}
