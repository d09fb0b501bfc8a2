package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Data file names follow
//
//	{subject}_{session}_{domain}[_{blocktype}{index}|_all{blocktype}s][_{channel}[-{channel}...]][.{suffix}]
//
// where blocktype is "trial" or "run" and index is zero-padded.
var (
	blockTokenRe = regexp.MustCompile(`^(trial|run)(\d+)$`)
	allBlocksRe  = regexp.MustCompile(`^all(trial|run)s$`)
)

// FileName is the decomposition of a data file name.
type FileName struct {
	Subject   string
	Session   SessionName
	Domain    string
	Blocktype string // "trial", "run", or empty
	Index     int    // meaningful only when HasIndex
	HasIndex  bool
	Digits    int      // width of the index as written
	AllBlocks bool     // the "_all{blocktype}s" form
	Channels  []string // nil when no channel component
	Suffix    string   // includes the leading dot; empty when absent
}

// ParseFileName decomposes a data file name per the storage convention.
// The decomposition is total for well-formed names; anything else fails
// with ErrMalformedName.
func ParseFileName(name string) (FileName, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return FileName{}, fmt.Errorf("%w: %q is not a file name", ErrMalformedName, name)
	}

	base := name
	var suffix string
	if dot := strings.Index(name, "."); dot == 0 {
		return FileName{}, fmt.Errorf("%w: %q is not a file name", ErrMalformedName, name)
	} else if dot > 0 {
		base, suffix = name[:dot], name[dot:]
	}

	tokens := strings.Split(base, "_")
	if len(tokens) < 3 {
		return FileName{}, fmt.Errorf("%w: %q lacks subject/session/domain components", ErrMalformedName, name)
	}
	for _, tok := range tokens {
		if tok == "" {
			return FileName{}, fmt.Errorf("%w: %q has an empty component", ErrMalformedName, name)
		}
	}

	session, err := ParseSessionName(tokens[1])
	if err != nil {
		return FileName{}, err
	}

	parsed := FileName{
		Subject: tokens[0],
		Session: session,
		Domain:  tokens[2],
		Suffix:  suffix,
	}

	rest := tokens[3:]
	if len(rest) > 0 {
		if m := blockTokenRe.FindStringSubmatch(rest[0]); m != nil {
			n, convErr := strconv.Atoi(m[2])
			if convErr != nil {
				return FileName{}, fmt.Errorf("%w: block index %q", ErrMalformedName, m[2])
			}
			parsed.Blocktype = m[1]
			parsed.Index = n
			parsed.HasIndex = true
			parsed.Digits = len(m[2])
			rest = rest[1:]
		} else if m := allBlocksRe.FindStringSubmatch(rest[0]); m != nil {
			parsed.Blocktype = m[1]
			parsed.AllBlocks = true
			rest = rest[1:]
		}
	}

	for _, tok := range rest {
		parsed.Channels = append(parsed.Channels, strings.Split(tok, "-")...)
	}

	return parsed, nil
}
