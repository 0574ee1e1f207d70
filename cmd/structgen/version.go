package main

import (
	"github.com/spf13/cobra"
)

// newVersionCmd — команда печати версии.
func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Version: %s\n", version)
		},
	}
}
