// Browse command starts the interactive grid.
package main

import (
	"github.com/spf13/cobra"

	"github.com/laptopdoctor/shopdesk/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and edit tables interactively",
	Long: `Browse opens the terminal interface: pick a table, then page
through its records, edit cells in place, change job statuses, search,
and add or delete records.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		return tui.Run(sess, log)
	},
}
