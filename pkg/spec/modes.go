package spec

import "fmt"

// Mode selects how a resolved path will be used. Read mode requires the
// entity to exist; write and append modes prepare to create it.
type Mode string

const (
	ModeRead   Mode = "read"
	ModeWrite  Mode = "write"
	ModeAppend Mode = "append"
)

// DefaultMode is assumed wherever a mode is left empty.
const DefaultMode = ModeRead

// validModes is the set of recognized modes.
var validModes = map[Mode]bool{
	ModeRead:   true,
	ModeWrite:  true,
	ModeAppend: true,
}

// VerifyMode normalizes an empty mode to the default and rejects anything
// outside the known set.
func VerifyMode(m Mode) (Mode, error) {
	if m == "" {
		return DefaultMode, nil
	}
	if !validModes[m] {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, m)
	}
	return m, nil
}
