// Sessions command: query recorded sessions from the catalog.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodatakit/datablock/internal/catalog"
)

var (
	sessionsDB      string
	sessionsScan    string
	sessionsDataset string
	sessionsSubject string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions recorded by a catalog scan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(sessionsDB)
		if err != nil {
			return err
		}
		defer c.Close()

		rows, err := c.Sessions(sessionsScan, catalog.Filter{
			Dataset: sessionsDataset,
			Subject: sessionsSubject,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, r := range rows {
			fmt.Fprintf(out, "%s\t%s\t%s\n", r.Dataset, r.Subject, r.Name)
		}
		return nil
	},
}

func init() {
	f := sessionsCmd.Flags()
	f.StringVar(&sessionsDB, "db", "datablock.db", "catalog database file")
	f.StringVar(&sessionsScan, "scan", "", "scan id (default: most recent)")
	f.StringVar(&sessionsDataset, "dataset", "", "restrict to one dataset")
	f.StringVar(&sessionsSubject, "subject", "", "restrict to one subject")
}
