// Package parsing implements the directory- and file-name grammars of the
// recording-session storage convention. It deals in plain strings and ints so
// that higher layers can wrap results in their own types.
package parsing

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrMalformedName marks a name that does not follow the storage convention.
var ErrMalformedName = errors.New("malformed name")

// sessionNameRe matches session directory names: an optional alphabetic type
// tag, an optional ISO date, and an optional zero-padded index, e.g.
// "sess01", "session2021-03-15", "awake2021-03-15-003". The only permitted
// index separator is "-"; "_" is reserved as the field separator of file
// names, where session names appear as a single token.
var sessionNameRe = regexp.MustCompile(`^([A-Za-z]+)?(\d{4}-\d{2}-\d{2})?(-)?(\d+)?$`)

// SessionName is the decomposition of a session directory name. Digits and
// Sep preserve the exact textual form so formatting round-trips.
type SessionName struct {
	Name     string // the full directory name as given
	Type     string // alphabetic type tag, possibly empty
	Date     string // ISO date (YYYY-MM-DD), possibly empty
	Index    int    // session index; meaningful only when HasIndex
	HasIndex bool
	Digits   int    // width of the index as written, for round-trips
	Sep      string // separator before the index ("-" or "")
}

// ParseSessionName decomposes a session directory name. At least one of
// type, date, or index must be present; anything the grammar cannot account
// for fails with ErrMalformedName.
func ParseSessionName(name string) (SessionName, error) {
	if name == "" {
		return SessionName{}, fmt.Errorf("%w: empty session name", ErrMalformedName)
	}
	m := sessionNameRe.FindStringSubmatch(name)
	if m == nil {
		return SessionName{}, fmt.Errorf("%w: %q is not a session name", ErrMalformedName, name)
	}
	parsed := SessionName{
		Name: name,
		Type: m[1],
		Date: m[2],
		Sep:  m[3],
	}
	if m[4] != "" {
		n, err := strconv.Atoi(m[4])
		if err != nil {
			return SessionName{}, fmt.Errorf("%w: session index %q", ErrMalformedName, m[4])
		}
		parsed.Index = n
		parsed.HasIndex = true
		parsed.Digits = len(m[4])
	} else if parsed.Sep != "" {
		// A trailing separator with no index is not part of the convention.
		return SessionName{}, fmt.Errorf("%w: %q is not a session name", ErrMalformedName, name)
	}
	if parsed.Type == "" && parsed.Date == "" && !parsed.HasIndex {
		return SessionName{}, fmt.Errorf("%w: %q is not a session name", ErrMalformedName, name)
	}
	return parsed, nil
}

// Format reassembles the canonical directory name. When the components came
// from ParseSessionName the result is byte-identical to the input. Any
// separator other than "-" is dropped: session names must stay a single
// token of the file-name grammar.
func (s SessionName) Format() string {
	out := s.Type + s.Date
	if s.HasIndex {
		digits := s.Digits
		if digits <= 0 {
			digits = 1
		}
		sep := s.Sep
		if sep != "-" {
			sep = ""
		}
		out += sep + fmt.Sprintf("%0*d", digits, s.Index)
	}
	return out
}
