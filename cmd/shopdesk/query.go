// Query command runs ad-hoc SQL and prints or exports the result.
package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/laptopdoctor/shopdesk/internal/export"
)

var queryExcelPath string

var queryCmd = &cobra.Command{
	Use:   "query <sql>",
	Short: "Run an SQL statement",
	Long: `Query runs one SQL statement. SELECT-style statements print their
rows; other statements print the affected row count. With --excel the result
is written to a workbook instead of stdout.

Example:
  shopdesk query "SELECT * FROM jobs WHERE status = 'In Progress'"
  shopdesk query --excel waiting.xlsx "SELECT * FROM jobs WHERE status = 'Waiting for Parts'"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryExcelPath, "excel", "", "write the result to this .xlsx file")
}

func runQuery(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	sqlText := strings.Join(args, " ")
	cols, rows, err := sess.RunQuery(sqlText)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}

	if queryExcelPath != "" {
		path, err := export.Query(cols, rows, queryExcelPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(rows), path)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(cols, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "(%d rows)\n", len(rows))
	return nil
}
