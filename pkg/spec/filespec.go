package spec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/neurodatakit/datablock/internal/defaults"
	"github.com/neurodatakit/datablock/internal/parsing"
)

// BlockType discriminates the repeat-unit kind of a data file.
type BlockType string

const (
	BlockTrial BlockType = "trial"
	BlockRun   BlockType = "run"
)

// FileSpec is the sub-specification for the terminal file axis: suffix,
// blocktype, block index, and channel. The zero FileSpec is fully
// unspecified. FileSpec values are immutable; updates go through WithValues.
type FileSpec struct {
	suffix    Value
	blocktype BlockType
	index     Index
	channel   Value
}

// FileParams carries the keyword fields accepted by NewFileSpec and
// FileSpec.WithValues. Trial and Run are shorthands that set both the
// blocktype and the index; they are mutually exclusive with each other and
// with the explicit Blocktype/Index pair.
type FileParams struct {
	Suffix    Value
	Trial     Index
	Run       Index
	Blocktype BlockType
	Index     Index
	Channel   Value
}

// NewFileSpec builds a FileSpec from keyword fields, validating eagerly:
// trial and run cannot be combined, a blocktype cannot be combined with
// either shorthand, the blocktype must be "trial" or "run", and an index is
// only meaningful with a blocktype.
func NewFileSpec(p FileParams) (FileSpec, error) {
	blocktype := p.Blocktype
	index := p.Index

	if blocktype != "" {
		if !p.Trial.IsUnspecified() {
			return FileSpec{}, fmt.Errorf("%w: cannot specify trial when blocktype is specified", ErrConflictingSpecification)
		}
		if !p.Run.IsUnspecified() {
			return FileSpec{}, fmt.Errorf("%w: cannot specify run when blocktype is specified", ErrConflictingSpecification)
		}
		if blocktype != BlockTrial && blocktype != BlockRun {
			return FileSpec{}, fmt.Errorf("%w: blocktype must be %q or %q, got %q", ErrConflictingSpecification, BlockTrial, BlockRun, blocktype)
		}
	} else {
		switch {
		case !p.Trial.IsUnspecified() && !p.Run.IsUnspecified():
			return FileSpec{}, fmt.Errorf("%w: trial and run cannot be specified at the same time", ErrConflictingSpecification)
		case !p.Trial.IsUnspecified():
			if !index.IsUnspecified() {
				return FileSpec{}, fmt.Errorf("%w: cannot specify index when trial is specified", ErrConflictingSpecification)
			}
			blocktype, index = BlockTrial, p.Trial
		case !p.Run.IsUnspecified():
			if !index.IsUnspecified() {
				return FileSpec{}, fmt.Errorf("%w: cannot specify index when run is specified", ErrConflictingSpecification)
			}
			blocktype, index = BlockRun, p.Run
		}
	}

	if blocktype == "" && !index.IsUnspecified() {
		return FileSpec{}, fmt.Errorf("%w: cannot specify index when blocktype is not specified", ErrConflictingSpecification)
	}
	if err := index.validate(string(blocktype) + " index"); err != nil {
		return FileSpec{}, err
	}

	return FileSpec{
		suffix:    normalizeSuffixValue(p.Suffix),
		blocktype: blocktype,
		index:     index,
		channel:   p.Channel,
	}, nil
}

// FileSpecFromName interprets a string as a data file name. If the filename
// grammar accepts it, all four fields come from the decomposition; otherwise
// the string falls back to being a literal suffix. The fallback is the only
// recoverable control flow in this package. To combine a name with explicit
// fields, chain the result through WithValues:
//
//	f, err := FileSpecFromName("csv").WithValues(FileParams{Trial: SingleIndex(3)})
func FileSpecFromName(name string) FileSpec {
	parsed, err := parsing.ParseFileName(filepath.Base(name))
	if err != nil {
		return FileSpec{suffix: ParseSuffix(name)}
	}
	f := FileSpec{
		suffix:    ParseSuffix(parsed.Suffix),
		blocktype: BlockType(parsed.Blocktype),
	}
	if parsed.HasIndex {
		f.index = SingleIndex(parsed.Index)
	}
	switch len(parsed.Channels) {
	case 0:
	case 1:
		f.channel = Literal(parsed.Channels[0])
	default:
		f.channel = Many(parsed.Channels...)
	}
	return f
}

// ParseSuffix normalizes a textual suffix argument to a leading-dot form.
// Repeated tokens (split like ParseIndex) become a collection; an empty
// string stays unspecified.
func ParseSuffix(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	if tokens, ok := splitRepeated(s); ok {
		var out []string
		for _, tok := range tokens {
			if t := normalizeSuffixToken(tok); t != "" {
				out = append(out, t)
			}
		}
		return Many(out...)
	}
	if t := normalizeSuffixToken(s); t != "" {
		return Literal(t)
	}
	return Value{}
}

// ParseChannels normalizes a textual channel argument. Repeated tokens
// become a collection; no dot-prefixing and no sign checks apply.
func ParseChannels(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	if tokens, ok := splitRepeated(s); ok {
		var out []string
		for _, tok := range tokens {
			if t := strings.TrimSpace(tok); t != "" {
				out = append(out, t)
			}
		}
		return Many(out...)
	}
	return Literal(s)
}

func normalizeSuffixToken(tok string) string {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return ""
	}
	if !strings.HasPrefix(tok, ".") {
		return "." + tok
	}
	return tok
}

// normalizeSuffixValue applies the leading-dot normalization to every
// explicit candidate of a suffix Value.
func normalizeSuffixValue(v Value) Value {
	switch v.kind {
	case kindLiteral:
		if t := normalizeSuffixToken(v.literal); t != "" {
			return Literal(t)
		}
		return Value{}
	case kindMany:
		out := make([]string, 0, len(v.many))
		for _, item := range v.many {
			if t := normalizeSuffixToken(item); t != "" {
				out = append(out, t)
			}
		}
		return Many(out...)
	default:
		return v
	}
}

// Suffix returns the suffix field.
func (f FileSpec) Suffix() Value { return f.suffix }

// Blocktype returns the blocktype field; empty means unspecified.
func (f FileSpec) Blocktype() BlockType { return f.blocktype }

// Index returns the block index field.
func (f FileSpec) Index() Index { return f.index }

// Channel returns the channel field.
func (f FileSpec) Channel() Value { return f.channel }

// Trial returns the block index when the spec is trial-specified, and
// ErrWrongBlockType otherwise.
func (f FileSpec) Trial() (Index, error) {
	if f.blocktype != BlockTrial {
		return Index{}, fmt.Errorf("%w: file is not specified in terms of trials (blocktype %q)", ErrWrongBlockType, f.blocktype)
	}
	return f.index, nil
}

// Run returns the block index when the spec is run-specified, and
// ErrWrongBlockType otherwise.
func (f FileSpec) Run() (Index, error) {
	if f.blocktype != BlockRun {
		return Index{}, fmt.Errorf("%w: file is not specified in terms of runs (blocktype %q)", ErrWrongBlockType, f.blocktype)
	}
	return f.index, nil
}

// IsUnspecified reports whether no field of the spec is set.
func (f FileSpec) IsUnspecified() bool {
	return f.suffix.IsUnspecified() && f.blocktype == "" &&
		f.index.IsUnspecified() && f.channel.IsUnspecified()
}

// hasDynamicField reports whether any field carries a selector.
func (f FileSpec) hasDynamicField() bool {
	return f.suffix.IsDynamic() || f.index.IsDynamic() || f.channel.IsDynamic()
}

// Status aggregates the per-field statuses into the write status of the
// spec: none and dynamic dominate in that order; a multiple suffix or index
// cannot denote one file; otherwise the spec is single exactly when a
// blocktype is present.
func (f FileSpec) Status() SelectionStatus {
	statuses := []SelectionStatus{f.suffix.Status(), f.index.Status(), f.channel.Status()}
	for _, dominant := range []SelectionStatus{StatusNone, StatusDynamic} {
		for _, st := range statuses {
			if st == dominant {
				return dominant
			}
		}
	}
	if f.suffix.Status() == StatusMultiple || f.index.Status() == StatusMultiple {
		return StatusMultiple
	}
	if f.blocktype != "" {
		return StatusSingle
	}
	return StatusUnspecified
}

// Test reports whether this spec, read as a constraint, accepts another
// concrete spec. Unspecified fields on the receiver always match.
func (f FileSpec) Test(other FileSpec) bool {
	if f.blocktype != "" && f.blocktype != other.blocktype {
		return false
	}
	return f.suffix.Matches(other.suffix) &&
		f.index.Matches(other.index) &&
		f.channel.Matches(other.channel)
}

// NameContext carries the coarser-axis names a file name is built from.
type NameContext struct {
	Subject string
	Session string
	Domain  string
}

// FormatName builds the canonical file name
//
//	{subject}_{session}_{domain}{runSuffix}{channelSuffix}{fileSuffix}
//
// zero-padding single indices to the configured width and formatting an
// absent index as "all{blocktype}s". Fields that do not denote a single
// representation fail with ErrInvalidSpecification.
func (f FileSpec) FormatName(ctx NameContext) (string, error) {
	run, err := f.formatRun(0)
	if err != nil {
		return "", err
	}
	channel, err := f.formatChannel()
	if err != nil {
		return "", err
	}
	suffix, err := f.formatSuffix()
	if err != nil {
		return "", err
	}
	return ctx.Subject + "_" + ctx.Session + "_" + ctx.Domain + run + channel + suffix, nil
}

// formatRun renders the "_{blocktype}{index}" component. A zero digits
// argument means the configured default width.
func (f FileSpec) formatRun(digits int) (string, error) {
	if f.blocktype == "" {
		return "", nil
	}
	if f.index.IsUnspecified() {
		// blocktype without an index means every instance of that kind
		return fmt.Sprintf("_all%ss", f.blocktype), nil
	}
	n, ok := f.index.Single()
	if !ok {
		return "", fmt.Errorf("%w: cannot format a file name from %s index %v", ErrInvalidSpecification, f.blocktype, f.index)
	}
	if digits <= 0 {
		digits = defaults.RunIndexWidth()
	}
	return fmt.Sprintf("_%s%0*d", f.blocktype, digits, n), nil
}

func (f FileSpec) formatChannel() (string, error) {
	switch f.channel.Status() {
	case StatusUnspecified:
		return "", nil
	case StatusSingle:
		c, _ := f.channel.Single()
		return "_" + c, nil
	case StatusMultiple:
		return "_" + strings.Join(f.channel.Items(), "-"), nil
	default:
		return "", fmt.Errorf("%w: cannot compute a channel representation from %v", ErrInvalidSpecification, f.channel)
	}
}

func (f FileSpec) formatSuffix() (string, error) {
	if f.suffix.IsUnspecified() {
		return "", nil
	}
	s, ok := f.suffix.Single()
	if !ok {
		return "", fmt.Errorf("%w: cannot compute a suffix from %v", ErrInvalidSpecification, f.suffix)
	}
	return s, nil
}

// WithValues returns a new FileSpec with the given fields overriding the
// current ones, under the same exclusivity rules as NewFileSpec. Zero-valued
// params keep the current field; clearing a field means building a fresh
// spec instead.
func (f FileSpec) WithValues(p FileParams) (FileSpec, error) {
	merged := FileParams{Trial: p.Trial, Run: p.Run}

	if !p.Trial.IsUnspecified() || !p.Run.IsUnspecified() {
		if p.Blocktype != "" {
			return FileSpec{}, fmt.Errorf("%w: cannot specify blocktype when trial or run is given", ErrConflictingSpecification)
		}
		if !p.Index.IsUnspecified() {
			return FileSpec{}, fmt.Errorf("%w: cannot specify index when trial or run is given", ErrConflictingSpecification)
		}
	} else {
		merged.Blocktype = p.Blocktype
		if merged.Blocktype == "" {
			merged.Blocktype = f.blocktype
		}
		merged.Index = p.Index
		if merged.Index.IsUnspecified() {
			merged.Index = f.index
		}
	}

	merged.Suffix = p.Suffix
	if merged.Suffix.IsUnspecified() {
		merged.Suffix = f.suffix
	}
	merged.Channel = p.Channel
	if merged.Channel.IsUnspecified() {
		merged.Channel = f.channel
	}

	return NewFileSpec(merged)
}
