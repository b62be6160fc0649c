package main

import (
	"fmt"

	"github.com/nfrund/issuedesk/internal/app"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of IssueDesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "IssueDesk v%s\n", app.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
