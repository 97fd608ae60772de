// Report command builds the customer report for a job.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laptopdoctor/shopdesk/internal/report"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report <job-id>",
	Short: "Build the customer report for a job",
	Long: `Report looks up the job's customer and gathers that customer's
rows from every table that references customers, then writes the lot to an
Excel workbook, one sheet per table.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		r, err := report.Customer(sess, args[0])
		if err != nil {
			return fmt.Errorf("building report: %w", err)
		}

		out := reportOut
		if out == "" {
			out = fmt.Sprintf("customer_%s_report", r.CustomerID)
		}
		path, err := r.Export(out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report for customer %s written to %s\n",
			r.CustomerID, path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "output .xlsx path")
}
