// Resolve command: build a predicate from flags and report what it denotes.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodatakit/datablock/pkg/spec"
)

var (
	resolveMode         string
	resolveRoot         string
	resolveDataset      string
	resolveSubject      string
	resolveSession      string
	resolveSessionType  string
	resolveSessionDate  string
	resolveSessionIndex string
	resolveDomain       string
	resolveBlocktype    string
	resolveTrial        string
	resolveRun          string
	resolveChannel      string
	resolveSuffix       string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a predicate to its level, status, and path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPredicate()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "level: ", p.Level())
		fmt.Fprintln(out, "status:", p.Status())
		path, err := p.Path()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "path:  ", path)
		return nil
	},
}

func init() {
	f := resolveCmd.Flags()
	f.StringVar(&resolveMode, "mode", "", "access mode: read, write, or append (default: read)")
	f.StringVar(&resolveRoot, "root", "", "storage root directory")
	f.StringVar(&resolveDataset, "dataset", "", "dataset name")
	f.StringVar(&resolveSubject, "subject", "", "subject name")
	f.StringVar(&resolveSession, "session", "", "session directory name")
	f.StringVar(&resolveSessionType, "session-type", "", "session type tag (alternative to --session)")
	f.StringVar(&resolveSessionDate, "session-date", "", "session date, YYYY-MM-DD (alternative to --session)")
	f.StringVar(&resolveSessionIndex, "session-index", "", "session index (alternative to --session)")
	f.StringVar(&resolveDomain, "domain", "", "domain name")
	f.StringVar(&resolveBlocktype, "blocktype", "", "trial or run without an index (the all-blocks form)")
	f.StringVar(&resolveTrial, "trial", "", "trial index, a list like 1,2,3, or empty")
	f.StringVar(&resolveRun, "run", "", "run index, a list like 1,2,3, or empty")
	f.StringVar(&resolveChannel, "channel", "", "channel name or list")
	f.StringVar(&resolveSuffix, "suffix", "", "file suffix or list")
}

// buildPredicate assembles a predicate from the resolve flags.
func buildPredicate() (spec.Predicate, error) {
	params := spec.PredicateParams{
		Mode: spec.Mode(resolveMode),
		Root: resolveRoot,
	}
	if resolveDataset != "" {
		params.Dataset = spec.Literal(resolveDataset)
	}
	if resolveSubject != "" {
		params.Subject = spec.Literal(resolveSubject)
	}

	session, err := buildSessionSpec()
	if err != nil {
		return spec.Predicate{}, err
	}
	params.Session = session

	if resolveDomain != "" {
		params.Domain = spec.Literal(resolveDomain)
	}

	file, err := buildFileSpec()
	if err != nil {
		return spec.Predicate{}, err
	}
	params.File = file

	return spec.NewPredicate(params)
}

func buildSessionSpec() (spec.SessionSpec, error) {
	sp := spec.SessionParams{}
	if resolveSession != "" {
		sp.Name = spec.Literal(resolveSession)
	}
	if resolveSessionType != "" {
		sp.Type = spec.Literal(resolveSessionType)
	}
	if resolveSessionDate != "" {
		sp.Date = spec.Literal(resolveSessionDate)
	}
	if resolveSessionIndex != "" {
		ix, err := spec.ParseIndex(resolveSessionIndex)
		if err != nil {
			return spec.SessionSpec{}, err
		}
		sp.Index = ix
	}
	return spec.NewSessionSpec(sp)
}

func buildFileSpec() (spec.FileSpec, error) {
	fp := spec.FileParams{
		Suffix:    spec.ParseSuffix(resolveSuffix),
		Channel:   spec.ParseChannels(resolveChannel),
		Blocktype: spec.BlockType(resolveBlocktype),
	}
	if resolveTrial != "" {
		ix, err := spec.ParseIndex(resolveTrial)
		if err != nil {
			return spec.FileSpec{}, err
		}
		fp.Trial = ix
	}
	if resolveRun != "" {
		ix, err := spec.ParseIndex(resolveRun)
		if err != nil {
			return spec.FileSpec{}, err
		}
		fp.Run = ix
	}
	return spec.NewFileSpec(fp)
}
