package spec

import (
	"errors"
	"testing"
)

func TestNewFileSpecTrialRun(t *testing.T) {
	f, err := NewFileSpec(FileParams{Trial: SingleIndex(3)})
	if err != nil {
		t.Fatalf("NewFileSpec(trial=3) error = %v", err)
	}
	if f.Blocktype() != BlockTrial {
		t.Errorf("Blocktype() = %q, want %q", f.Blocktype(), BlockTrial)
	}
	if n, ok := f.Index().Single(); !ok || n != 3 {
		t.Errorf("Index() = %v, want 3", f.Index())
	}

	f, err = NewFileSpec(FileParams{Run: SingleIndex(1)})
	if err != nil {
		t.Fatalf("NewFileSpec(run=1) error = %v", err)
	}
	if f.Blocktype() != BlockRun {
		t.Errorf("Blocktype() = %q, want %q", f.Blocktype(), BlockRun)
	}
}

func TestNewFileSpecConflicts(t *testing.T) {
	tests := []struct {
		name   string
		params FileParams
	}{
		{"trial and run", FileParams{Trial: SingleIndex(3), Run: SingleIndex(1)}},
		{"blocktype and trial", FileParams{Blocktype: BlockTrial, Trial: SingleIndex(3)}},
		{"blocktype and run", FileParams{Blocktype: BlockRun, Run: SingleIndex(1)}},
		{"unknown blocktype", FileParams{Blocktype: "episode"}},
		{"index without blocktype", FileParams{Index: SingleIndex(5)}},
		{"trial and index", FileParams{Trial: SingleIndex(3), Index: SingleIndex(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileSpec(tt.params); !errors.Is(err, ErrConflictingSpecification) {
				t.Errorf("NewFileSpec error = %v, want ErrConflictingSpecification", err)
			}
		})
	}
}

func TestNewFileSpecNegativeIndex(t *testing.T) {
	if _, err := NewFileSpec(FileParams{Trial: SingleIndex(-2)}); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("NewFileSpec(trial=-2) error = %v, want ErrInvalidIndex", err)
	}
	if _, err := NewFileSpec(FileParams{Run: IndexList(1, -1)}); !errors.Is(err, ErrInvalidIndex) {
		t.Errorf("NewFileSpec(run=[1,-1]) error = %v, want ErrInvalidIndex", err)
	}
}

func TestFileSpecFromName(t *testing.T) {
	f := FileSpecFromName("sub01_sess01_domA_run002_ch1.csv")
	if f.Blocktype() != BlockRun {
		t.Errorf("Blocktype() = %q, want run", f.Blocktype())
	}
	if n, ok := f.Index().Single(); !ok || n != 2 {
		t.Errorf("Index() = %v, want 2", f.Index())
	}
	if c, ok := f.Channel().Single(); !ok || c != "ch1" {
		t.Errorf("Channel() = %v, want ch1", f.Channel())
	}
	if s, ok := f.Suffix().Single(); !ok || s != ".csv" {
		t.Errorf("Suffix() = %v, want .csv", f.Suffix())
	}
}

func TestFileSpecFromNameAllBlocks(t *testing.T) {
	f := FileSpecFromName("sub01_sess01_domA_alltrials.json")
	if f.Blocktype() != BlockTrial {
		t.Errorf("Blocktype() = %q, want trial", f.Blocktype())
	}
	if !f.Index().IsUnspecified() {
		t.Errorf("Index() = %v, want unspecified", f.Index())
	}
}

func TestFileSpecFromNameFallback(t *testing.T) {
	// Not a well-formed file name: the string becomes a literal suffix.
	f := FileSpecFromName("csv")
	if s, ok := f.Suffix().Single(); !ok || s != ".csv" {
		t.Errorf("Suffix() = %v, want .csv", f.Suffix())
	}
	if f.Blocktype() != "" || !f.Channel().IsUnspecified() {
		t.Errorf("fallback spec set extra fields: %v %v", f.Blocktype(), f.Channel())
	}
}

func TestFileSpecFromNameWithValuesChaining(t *testing.T) {
	// A name the grammar rejects becomes a suffix; explicit fields layer on
	// top through WithValues.
	f, err := FileSpecFromName("csv").WithValues(FileParams{Trial: SingleIndex(3)})
	if err != nil {
		t.Fatalf("WithValues error = %v", err)
	}
	if s, _ := f.Suffix().Single(); s != ".csv" {
		t.Errorf("Suffix() = %v, want .csv", f.Suffix())
	}
	if f.Blocktype() != BlockTrial {
		t.Errorf("Blocktype() = %q, want trial", f.Blocktype())
	}
	if n, _ := f.Index().Single(); n != 3 {
		t.Errorf("Index() = %v, want 3", f.Index())
	}
}

func TestParseSuffix(t *testing.T) {
	if v := ParseSuffix("csv"); func() bool { s, _ := v.Single(); return s != ".csv" }() {
		t.Errorf("ParseSuffix(csv) = %v, want .csv", v)
	}
	if v := ParseSuffix(".json"); func() bool { s, _ := v.Single(); return s != ".json" }() {
		t.Errorf("ParseSuffix(.json) = %v, want .json", v)
	}
	if v := ParseSuffix(""); !v.IsUnspecified() {
		t.Errorf("ParseSuffix(\"\") = %v, want unspecified", v)
	}
	v := ParseSuffix("csv,json")
	items := v.Items()
	if len(items) != 2 || items[0] != ".csv" || items[1] != ".json" {
		t.Errorf("ParseSuffix(csv,json) = %v, want [.csv .json]", items)
	}
}

func TestParseChannels(t *testing.T) {
	v := ParseChannels("ch1,ch2")
	items := v.Items()
	if len(items) != 2 || items[0] != "ch1" || items[1] != "ch2" {
		t.Errorf("ParseChannels = %v, want [ch1 ch2]", items)
	}
	if v := ParseChannels("ch1"); func() bool { c, _ := v.Single(); return c != "ch1" }() {
		t.Errorf("ParseChannels(ch1) = %v", v)
	}
}

func TestFileSpecStatus(t *testing.T) {
	mk := func(p FileParams) FileSpec {
		f, err := NewFileSpec(p)
		if err != nil {
			t.Fatalf("NewFileSpec(%+v) error = %v", p, err)
		}
		return f
	}
	tests := []struct {
		name string
		f    FileSpec
		want SelectionStatus
	}{
		{"zero spec", FileSpec{}, StatusUnspecified},
		{"suffix only", mk(FileParams{Suffix: Literal(".csv")}), StatusUnspecified},
		{"trial set", mk(FileParams{Trial: SingleIndex(1)}), StatusSingle},
		{"blocktype without index", mk(FileParams{Blocktype: BlockRun}), StatusSingle},
		{"multiple index", mk(FileParams{Trial: IndexList(1, 2)}), StatusMultiple},
		{"multiple suffix", mk(FileParams{Suffix: Many(".csv", ".json"), Trial: SingleIndex(1)}), StatusMultiple},
		{"multiple channel tolerated", mk(FileParams{Channel: Many("ch1", "ch2"), Trial: SingleIndex(1)}), StatusSingle},
		{"empty suffix collection", mk(FileParams{Suffix: Many()}), StatusNone},
		{"dynamic channel", mk(FileParams{Channel: Dynamic(func(c []string) []string { return c })}), StatusDynamic},
		{"none beats dynamic", mk(FileParams{Suffix: Many(), Channel: Dynamic(func(c []string) []string { return c })}), StatusNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Status(); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileSpecFormatName(t *testing.T) {
	ctx := NameContext{Subject: "S1", Session: "sess1", Domain: "ephys"}
	tests := []struct {
		name   string
		params FileParams
		want   string
	}{
		{"run zero padded", FileParams{Blocktype: BlockRun, Index: SingleIndex(7)}, "S1_sess1_ephys_run007"},
		{"trial with suffix", FileParams{Trial: SingleIndex(12), Suffix: Literal(".csv")}, "S1_sess1_ephys_trial012.csv"},
		{"all runs", FileParams{Blocktype: BlockRun}, "S1_sess1_ephys_allruns"},
		{"channel single", FileParams{Run: SingleIndex(2), Channel: Literal("ch1")}, "S1_sess1_ephys_run002_ch1"},
		{"channel joined", FileParams{Run: SingleIndex(2), Channel: Many("ch1", "ch2")}, "S1_sess1_ephys_run002_ch1-ch2"},
		{"bare context", FileParams{}, "S1_sess1_ephys"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFileSpec(tt.params)
			if err != nil {
				t.Fatalf("NewFileSpec error = %v", err)
			}
			got, err := f.FormatName(ctx)
			if err != nil {
				t.Fatalf("FormatName error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileSpecFormatNameUnformattable(t *testing.T) {
	f, err := NewFileSpec(FileParams{Trial: IndexList(1, 2)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.FormatName(NameContext{Subject: "S1", Session: "s1", Domain: "d"}); !errors.Is(err, ErrInvalidSpecification) {
		t.Errorf("FormatName with multiple index error = %v, want ErrInvalidSpecification", err)
	}
}

func TestFileSpecTest(t *testing.T) {
	mk := func(p FileParams) FileSpec {
		f, err := NewFileSpec(p)
		if err != nil {
			t.Fatalf("NewFileSpec error = %v", err)
		}
		return f
	}
	csvTrial := mk(FileParams{Suffix: Literal(".csv"), Trial: SingleIndex(1)})

	if !mk(FileParams{Suffix: Literal(".csv")}).Test(csvTrial) {
		t.Error("unspecified fields on the constraint must match")
	}
	if mk(FileParams{Suffix: Literal(".csv")}).Test(mk(FileParams{Suffix: Literal(".json")})) {
		t.Error("different suffixes must not match")
	}
	if !mk(FileParams{Suffix: Many(".csv", ".json")}).Test(csvTrial) {
		t.Error("membership on the constraint must match")
	}
	if mk(FileParams{Blocktype: BlockRun}).Test(csvTrial) {
		t.Error("run constraint must not match a trial spec")
	}
	if !mk(FileParams{Trial: IndexList(1, 2, 3)}).Test(csvTrial) {
		t.Error("index membership must match")
	}
}

func TestFileSpecTrialRunAccessors(t *testing.T) {
	f, err := NewFileSpec(FileParams{Run: SingleIndex(4)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Trial(); !errors.Is(err, ErrWrongBlockType) {
		t.Errorf("Trial() on run spec error = %v, want ErrWrongBlockType", err)
	}
	ix, err := f.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n, _ := ix.Single(); n != 4 {
		t.Errorf("Run() = %v, want 4", ix)
	}
}

func TestFileSpecWithValues(t *testing.T) {
	base, err := NewFileSpec(FileParams{Suffix: Literal(".csv"), Trial: SingleIndex(1)})
	if err != nil {
		t.Fatal(err)
	}

	got, err := base.WithValues(FileParams{Channel: Literal("ch3")})
	if err != nil {
		t.Fatalf("WithValues error = %v", err)
	}
	if c, _ := got.Channel().Single(); c != "ch3" {
		t.Errorf("Channel() = %v, want ch3", got.Channel())
	}
	if got.Blocktype() != BlockTrial {
		t.Errorf("Blocktype() = %q, want trial (kept)", got.Blocktype())
	}
	if s, _ := got.Suffix().Single(); s != ".csv" {
		t.Errorf("Suffix() = %v, want .csv (kept)", got.Suffix())
	}

	// A run override flips the blocktype.
	got, err = base.WithValues(FileParams{Run: SingleIndex(9)})
	if err != nil {
		t.Fatalf("WithValues(run) error = %v", err)
	}
	if got.Blocktype() != BlockRun {
		t.Errorf("Blocktype() = %q, want run", got.Blocktype())
	}

	if _, err := base.WithValues(FileParams{Trial: SingleIndex(1), Run: SingleIndex(2)}); !errors.Is(err, ErrConflictingSpecification) {
		t.Errorf("WithValues(trial+run) error = %v, want ErrConflictingSpecification", err)
	}
	if _, err := base.WithValues(FileParams{Trial: SingleIndex(1), Index: SingleIndex(2)}); !errors.Is(err, ErrConflictingSpecification) {
		t.Errorf("WithValues(trial+index) error = %v, want ErrConflictingSpecification", err)
	}
}
