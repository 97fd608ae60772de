// Tables command lists the database's tables.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the database tables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		tables, err := sess.Tables()
		if err != nil {
			return fmt.Errorf("listing tables: %w", err)
		}
		for _, table := range tables {
			fmt.Fprintln(cmd.OutOrStdout(), table)
		}
		return nil
	},
}
