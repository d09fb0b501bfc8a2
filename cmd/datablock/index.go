// Index command: scan a data tree into the catalog database.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neurodatakit/datablock/internal/catalog"
)

var indexDB string

var indexCmd = &cobra.Command{
	Use:   "index ROOT",
	Short: "Scan a data tree and record its sessions and files in the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := catalog.Open(indexDB)
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := c.Scan(nil, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "scan:    ", res.ID)
		fmt.Fprintln(out, "root:    ", res.Root)
		fmt.Fprintln(out, "sessions:", res.Sessions)
		fmt.Fprintln(out, "files:   ", res.Files)
		fmt.Fprintln(out, "skipped: ", res.Skipped)
		return nil
	},
}

func init() {
	indexCmd.Flags().StringVar(&indexDB, "db", "datablock.db", "catalog database file")
}
