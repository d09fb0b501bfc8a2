package spec

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

// mkPredicate builds a predicate or fails the test.
func mkPredicate(t *testing.T, params PredicateParams) Predicate {
	t.Helper()
	p, err := NewPredicate(params)
	if err != nil {
		t.Fatalf("NewPredicate(%+v) error = %v", params, err)
	}
	return p
}

func TestEmptyPredicate(t *testing.T) {
	p := mkPredicate(t, PredicateParams{})
	if p.Level() != LevelNA {
		t.Errorf("Level() = %v, want na", p.Level())
	}
	if p.Status() != StatusUnspecified {
		t.Errorf("Status() = %q, want unspecified", p.Status())
	}
	if p.Mode() != ModeRead {
		t.Errorf("Mode() = %q, want read", p.Mode())
	}
	if _, err := p.Path(); !errors.Is(err, ErrUnresolvablePath) {
		t.Errorf("Path() error = %v, want ErrUnresolvablePath", err)
	}
}

func TestPredicateLevels(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	tests := []struct {
		name   string
		params PredicateParams
		want   Level
	}{
		{"root only", PredicateParams{Root: root}, LevelRoot},
		{"dataset", PredicateParams{Root: root, Dataset: Literal("ds")}, LevelDataset},
		{"subject", PredicateParams{Root: root, Subject: Literal("sub01")}, LevelSubject},
		{"session", PredicateParams{Session: mustSession("sess01")}, LevelSession},
		{"domain", PredicateParams{Domain: Literal("ephys")}, LevelDomain},
		{"file", PredicateParams{File: mustFile(FileParams{Trial: SingleIndex(1)})}, LevelFile},
		{"file wins over domain", PredicateParams{Domain: Literal("ephys"), File: mustFile(FileParams{Trial: SingleIndex(1)})}, LevelFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mkPredicate(t, tt.params).Level(); got != tt.want {
				t.Errorf("Level() = %v, want %v", got, tt.want)
			}
		})
	}
}

// mustSession and mustFile let table literals stay short; they panic only on
// programming errors in the test fixtures themselves.
func mustSession(name string) SessionSpec {
	s, err := SessionSpecFromName(name)
	if err != nil {
		panic(err)
	}
	return s
}

func mustFile(p FileParams) FileSpec {
	f, err := NewFileSpec(p)
	if err != nil {
		panic(err)
	}
	return f
}

func TestPredicateStatusWalk(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	tests := []struct {
		name   string
		params PredicateParams
		want   SelectionStatus
	}{
		{
			"fully single down to file",
			PredicateParams{
				Root: root, Dataset: Literal("ds"), Subject: Literal("sub01"),
				Session: mustSession("sess01"), Domain: Literal("ephys"),
				File: mustFile(FileParams{Run: SingleIndex(2), Suffix: Literal(".csv")}),
			},
			StatusSingle,
		},
		{
			"missing root blocks a session-level predicate",
			PredicateParams{Dataset: Literal("ds"), Subject: Literal("sub01"), Session: mustSession("sess01")},
			StatusUnspecified,
		},
		{
			"multiple subject blocks a domain-level predicate",
			PredicateParams{
				Root: root, Dataset: Literal("ds"), Subject: Many("sub01", "sub02"),
				Session: mustSession("sess01"), Domain: Literal("ephys"),
			},
			StatusMultiple,
		},
		{
			"empty dataset collection means zero candidates",
			PredicateParams{Root: root, Dataset: Many(), Subject: Literal("sub01")},
			StatusNone,
		},
		{
			"axis at the level decides",
			PredicateParams{Root: root, Dataset: Many("ds1", "ds2")},
			StatusMultiple,
		},
		{
			"dynamic anywhere dominates",
			PredicateParams{
				Root: root, Dataset: Literal("ds"),
				Subject: Dynamic(func(c []string) []string { return c }),
			},
			StatusDynamic,
		},
		{
			"dynamic nested in file dominates",
			PredicateParams{
				Root: root, Dataset: Literal("ds"), Subject: Literal("sub01"),
				Session: mustSession("sess01"), Domain: Literal("ephys"),
				File: mustFile(FileParams{Channel: Dynamic(func(c []string) []string { return c })}),
			},
			StatusDynamic,
		},
		{
			"root only resolves to root",
			PredicateParams{Root: root},
			StatusSingle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mkPredicate(t, tt.params).Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicatePath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	join := filepath.Join
	tests := []struct {
		name   string
		params PredicateParams
		want   string
	}{
		{"root", PredicateParams{Root: root}, root},
		{"dataset", PredicateParams{Root: root, Dataset: Literal("ds")}, join(root, "ds")},
		{
			"subject",
			PredicateParams{Root: root, Dataset: Literal("ds"), Subject: Literal("sub01")},
			join(root, "ds", "sub01"),
		},
		{
			"session",
			PredicateParams{Root: root, Dataset: Literal("ds"), Subject: Literal("sub01"), Session: mustSession("sess01")},
			join(root, "ds", "sub01", "sess01"),
		},
		{
			"domain",
			PredicateParams{
				Root: root, Dataset: Literal("ds"), Subject: Literal("sub01"),
				Session: mustSession("sess01"), Domain: Literal("ephys"),
			},
			join(root, "ds", "sub01", "sess01", "ephys"),
		},
		{
			"file",
			PredicateParams{
				Root: root, Dataset: Literal("ds"), Subject: Literal("sub01"),
				Session: mustSession("sess01"), Domain: Literal("ephys"),
				File: mustFile(FileParams{Run: SingleIndex(2), Channel: Literal("ch1"), Suffix: Literal(".csv")}),
			},
			join(root, "ds", "sub01", "sess01", "ephys", "sub01_sess01_ephys_run002_ch1.csv"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mkPredicate(t, tt.params).Path()
			if err != nil {
				t.Fatalf("Path() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Path() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicatePathUnresolvable(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	p := mkPredicate(t, PredicateParams{Root: root, Dataset: Many("ds1", "ds2")})
	_, err := p.Path()
	if !errors.Is(err, ErrUnresolvablePath) {
		t.Fatalf("Path() error = %v, want ErrUnresolvablePath", err)
	}
	// The message carries the actual status.
	if !strings.Contains(err.Error(), string(StatusMultiple)) {
		t.Errorf("Path() error %q does not mention status %q", err, StatusMultiple)
	}
}

func TestPredicateWithValues(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	p := mkPredicate(t, PredicateParams{Root: root, Dataset: Literal("ds"), Subject: Literal("sub01")})

	got, err := p.WithValues(PredicateParams{Domain: Literal("ephys")})
	if err != nil {
		t.Fatalf("WithValues error = %v", err)
	}
	if got.Level() != LevelDomain {
		t.Errorf("Level() = %v, want domain", got.Level())
	}
	if ds, _ := got.Dataset().Single(); ds != "ds" {
		t.Errorf("Dataset() = %v, want ds (kept)", got.Dataset())
	}
	// The original predicate is untouched.
	if p.Level() != LevelSubject {
		t.Errorf("original predicate mutated: Level() = %v", p.Level())
	}
}

func TestPredicateCleared(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	p := mkPredicate(t, PredicateParams{
		Mode: ModeWrite, Root: root,
		Dataset: Literal("ds"), Subject: Literal("sub01"),
		Session: mustSession("sess01"), Domain: Literal("ephys"),
		File:    mustFile(FileParams{Trial: SingleIndex(1)}),
	})

	got := p.Cleared()
	if got.Mode() != ModeWrite {
		t.Errorf("Mode() = %q, want write (kept)", got.Mode())
	}
	if got.Root() != root {
		t.Errorf("Root() = %q, want %q (kept)", got.Root(), root)
	}
	if got.Level() != LevelRoot {
		t.Errorf("Level() = %v, want root", got.Level())
	}
	want := mkPredicate(t, PredicateParams{Mode: ModeWrite, Root: root})
	if got.Status() != want.Status() || got.Level() != want.Level() {
		t.Errorf("Cleared() = %+v, want %+v", got, want)
	}
	if !got.Dataset().IsUnspecified() || !got.Subject().IsUnspecified() ||
		!got.Domain().IsUnspecified() || !got.Session().IsUnspecified() ||
		!got.File().IsUnspecified() {
		t.Error("Cleared() left a non-root axis specified")
	}
}

func TestPredicateWithValuesCleared(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	p := mkPredicate(t, PredicateParams{
		Root:    root,
		Dataset: Literal("ds"), Subject: Literal("sub01"),
		Session: mustSession("sess01"),
	})
	got, err := p.WithValuesCleared(PredicateParams{Dataset: Literal("other")})
	if err != nil {
		t.Fatalf("WithValuesCleared error = %v", err)
	}
	if got.Level() != LevelDataset {
		t.Errorf("Level() = %v, want dataset", got.Level())
	}
	if !got.Subject().IsUnspecified() {
		t.Errorf("Subject() = %v, want unspecified", got.Subject())
	}
}

func TestPredicateAtLevel(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "data")
	p := mkPredicate(t, PredicateParams{
		Root: root, Dataset: Literal("ds"), Subject: Literal("sub01"),
		Session: mustSession("sess01"), Domain: Literal("ephys"),
		File: mustFile(FileParams{Trial: SingleIndex(1)}),
	})
	if got := p.AtLevel(LevelSession).Level(); got != LevelSession {
		t.Errorf("AtLevel(session).Level() = %v, want session", got)
	}
	if got := p.AtLevel(LevelDataset).Level(); got != LevelDataset {
		t.Errorf("AtLevel(dataset).Level() = %v, want dataset", got)
	}
	if got := p.AtLevel(LevelFile).Level(); got != LevelFile {
		t.Errorf("AtLevel(file).Level() = %v, want file", got)
	}
}

func TestPredicatePassthroughs(t *testing.T) {
	p := mkPredicate(t, PredicateParams{File: mustFile(FileParams{Run: SingleIndex(3)})})
	if _, err := p.Trial(); !errors.Is(err, ErrWrongBlockType) {
		t.Errorf("Trial() error = %v, want ErrWrongBlockType", err)
	}
	ix, err := p.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n, _ := ix.Single(); n != 3 {
		t.Errorf("Run() = %v, want 3", ix)
	}
}

func TestPredicateInvalidMode(t *testing.T) {
	if _, err := NewPredicate(PredicateParams{Mode: "scan"}); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("NewPredicate(mode=scan) error = %v, want ErrInvalidMode", err)
	}
}
