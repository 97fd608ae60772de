// Export command writes the whole database to an Excel workbook.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laptopdoctor/shopdesk/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export every table to an Excel workbook",
	Long:  "Export writes each table to its own sheet in one .xlsx workbook.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		path, err := export.Database(sess, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported database to %s\n", path)
		return nil
	},
}
