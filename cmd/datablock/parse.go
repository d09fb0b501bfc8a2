// Parse command: decompose a file or session name into its components.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neurodatakit/datablock/internal/parsing"
)

var parseCmd = &cobra.Command{
	Use:   "parse NAME",
	Short: "Decompose a data file or session directory name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := cmd.OutOrStdout()

		if f, err := parsing.ParseFileName(name); err == nil {
			fmt.Fprintln(out, "kind:    file")
			fmt.Fprintln(out, "subject:", f.Subject)
			fmt.Fprintln(out, "session:", f.Session.Name)
			fmt.Fprintln(out, "domain: ", f.Domain)
			if f.Blocktype != "" {
				if f.HasIndex {
					fmt.Fprintf(out, "%s:   %d\n", f.Blocktype, f.Index)
				} else {
					fmt.Fprintf(out, "%s:   all\n", f.Blocktype)
				}
			}
			if len(f.Channels) > 0 {
				fmt.Fprintln(out, "channel:", strings.Join(f.Channels, ","))
			}
			if f.Suffix != "" {
				fmt.Fprintln(out, "suffix: ", f.Suffix)
			}
			return nil
		}

		s, err := parsing.ParseSessionName(name)
		if err != nil {
			return fmt.Errorf("%q is neither a file nor a session name: %w", name, err)
		}
		fmt.Fprintln(out, "kind:    session")
		if s.Type != "" {
			fmt.Fprintln(out, "type:   ", s.Type)
		}
		if s.Date != "" {
			fmt.Fprintln(out, "date:   ", s.Date)
		}
		if s.HasIndex {
			fmt.Fprintln(out, "index:  ", s.Index)
		}
		return nil
	},
}
