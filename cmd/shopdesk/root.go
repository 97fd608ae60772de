// Root command for the shopdesk CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/laptopdoctor/shopdesk/internal/logging"
	"github.com/laptopdoctor/shopdesk/internal/paths"
	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/shopdesk"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagVerbose   bool
)

// cfg is the connection configuration loaded in PersistentPreRunE; all
// subcommands read it.
var cfg types.Config

// log is the process-wide logger, built alongside cfg.
var log *zap.Logger

var rootCmd = &cobra.Command{
	Use:     "shopdesk",
	Short:   "Shopdesk is the repair shop's database front end",
	Version: shopdesk.Version,
	Long: `Shopdesk browses and edits the shop database through an editable
grid, runs ad-hoc SQL, exports tables to Excel, builds customer reports and
dashboards, and keeps scheduled backups.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return fmt.Errorf("resolving config dir: %w", err)
		}
		v, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		cfg, err = buildConfig(v)
		if err != nil {
			return err
		}
		log = logging.Open(cfg.LogFile, flagVerbose)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "SQLite data directory (default: $(CWD)/.shopdesk-db)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(dashboardCmd)
}

func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// openSession connects using the loaded configuration. The caller must
// defer sess.Close().
func openSession() (*store.Session, error) {
	sess, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return sess, nil
}
