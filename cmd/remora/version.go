package main

import (
	"fmt"

	"github.com/dekarrin/remora/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Give the current version of remora and then exit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("remora %s (table format %s)\n", version.Current().String(), version.TableFormat().Core())
	},
}
