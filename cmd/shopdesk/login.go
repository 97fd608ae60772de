// Login command verifies database credentials and stores the working
// connection settings in config.yaml.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/laptopdoctor/shopdesk/internal/store"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

var (
	loginDriver   string
	loginHost     string
	loginUser     string
	loginDatabase string
	loginPassword string
	loginSave     bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify database credentials and save them",
	Long: `Login opens a connection with the given credentials. When the
connection succeeds the settings are written to config.yaml, so later
commands connect without repeating them. The password is only written when
--save-password is set; otherwise supply it per run via SHOPDESK_PASSWORD.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVar(&loginDriver, "driver", "", "database driver: sqlite or mysql (default: current config)")
	loginCmd.Flags().StringVar(&loginHost, "host", "", "MySQL host:port")
	loginCmd.Flags().StringVarP(&loginUser, "user", "u", "", "database user")
	loginCmd.Flags().StringVarP(&loginDatabase, "database", "d", "", "database name")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "database password")
	loginCmd.Flags().BoolVar(&loginSave, "save-password", false, "also store the password in config.yaml")
}

func runLogin(cmd *cobra.Command, args []string) error {
	attempt := cfg
	if loginDriver != "" {
		attempt.Driver = loginDriver
	}
	if loginHost != "" {
		attempt.Host = loginHost
	}
	if loginUser != "" {
		attempt.User = loginUser
	}
	if loginDatabase != "" {
		attempt.Database = loginDatabase
	}
	if loginPassword != "" {
		attempt.Password = loginPassword
	}

	sess, err := store.Open(attempt)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	defer sess.Close()

	if err := saveLogin(attempt); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s database %q. Settings saved.\n",
		attempt.Driver, attempt.Database)
	return nil
}

// saveLogin writes the verified settings back to config.yaml.
func saveLogin(c types.Config) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolving config dir: %w", err)
	}

	// Re-read the existing file so unrelated keys survive the rewrite.
	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	v.Set(cfgKeyDriver, c.Driver)
	v.Set(cfgKeyHost, c.Host)
	v.Set(cfgKeyUser, c.User)
	v.Set(cfgKeyDatabase, c.Database)
	if loginSave {
		v.Set(cfgKeyPassword, c.Password)
	}
	if err := v.WriteConfigAs(filepath.Join(configDir, configFileExt)); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
