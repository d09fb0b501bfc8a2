// Files command: query recorded data files from the catalog.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neurodatakit/datablock/internal/catalog"
)

var (
	filesDB      string
	filesScan    string
	filesDataset string
	filesSubject string
	filesSession string
	filesDomain  string
)

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "List data files recorded by a catalog scan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(filesDB)
		if err != nil {
			return err
		}
		defer c.Close()

		rows, err := c.Files(filesScan, catalog.Filter{
			Dataset: filesDataset,
			Subject: filesSubject,
			Session: filesSession,
			Domain:  filesDomain,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range rows {
			fmt.Fprintln(out, filepath.Join(r.Dataset, r.Subject, r.Session, r.Domain, r.Name))
		}
		return nil
	},
}

func init() {
	f := filesCmd.Flags()
	f.StringVar(&filesDB, "db", "datablock.db", "catalog database file")
	f.StringVar(&filesScan, "scan", "", "scan id (default: most recent)")
	f.StringVar(&filesDataset, "dataset", "", "restrict to one dataset")
	f.StringVar(&filesSubject, "subject", "", "restrict to one subject")
	f.StringVar(&filesSession, "session", "", "restrict to one session directory")
	f.StringVar(&filesDomain, "domain", "", "restrict to one domain")
}
