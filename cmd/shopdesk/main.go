// Package main provides the shopdesk CLI: the repair shop's database front
// end, with an interactive grid, ad-hoc queries, Excel export, reports,
// dashboards, and scheduled backups.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
