// Root command for the datablock CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/neurodatakit/datablock/internal/defaults"
)

// Exit codes.
const (
	exitSuccess = 0
	exitError   = 1
)

// Global flag values.
var flagConfigDir string

var rootCmd = &cobra.Command{
	Use:   "datablock",
	Short: "Datablock addresses data trees laid out as root/dataset/subject/session/domain/file",
	Long: `Datablock resolves typed predicates against a data tree laid out as

	root/dataset/subject/session/domain/file

and can decompose names, index a tree into a catalog, and query it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir := flagConfigDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			dir = cwd
		}
		return defaults.Load(dir)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "directory holding datablock.yaml (default: current directory)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(filesCmd)
}
