// Version command for the shopdesk CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laptopdoctor/shopdesk/pkg/shopdesk"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shopdesk version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "shopdesk", shopdesk.Version)
	},
}
