package spec

// Level identifies the deepest hierarchy axis that a predicate specifies
// non-trivially. Levels order from nothing-at-all to a single file.
type Level int

const (
	LevelNA Level = iota
	LevelRoot
	LevelDataset
	LevelSubject
	LevelSession
	LevelDomain
	LevelFile
)

var levelNames = map[Level]string{
	LevelNA:      "na",
	LevelRoot:    "root",
	LevelDataset: "dataset",
	LevelSubject: "subject",
	LevelSession: "session",
	LevelDomain:  "domain",
	LevelFile:    "file",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}
