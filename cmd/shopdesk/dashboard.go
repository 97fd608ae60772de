// Dashboard command renders shop metrics to an HTML page.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laptopdoctor/shopdesk/internal/dashboard"
)

var dashboardOut string

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Render the shop dashboard",
	Long: `Dashboard aggregates the jobs table into charts (jobs by status,
busiest customers, completed work by month) and writes them as one HTML
page.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession()
		if err != nil {
			return err
		}
		defer sess.Close()

		m, err := dashboard.Collect(sess)
		if err != nil {
			return fmt.Errorf("collecting metrics: %w", err)
		}
		if err := m.RenderFile(dashboardOut); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Dashboard written to %s\n", dashboardOut)
		return nil
	},
}

func init() {
	dashboardCmd.Flags().StringVarP(&dashboardOut, "out", "o", "dashboard.html", "output HTML path")
}
