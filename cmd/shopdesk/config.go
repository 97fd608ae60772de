// Config loading for the shopdesk CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/laptopdoctor/shopdesk/internal/paths"
	"github.com/laptopdoctor/shopdesk/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDriver    = "driver"
	cfgKeyHost      = "host"
	cfgKeyUser      = "user"
	cfgKeyDatabase  = "database"
	cfgKeyPassword  = "password"
	cfgKeyDataDir   = "data_dir"
	cfgKeyBackupDir = "backup_dir"
	cfgKeyLogFile   = "log_file"

	// EnvPassword overrides the stored password so it never has to live
	// in the config file.
	envPassword = "SHOPDESK_PASSWORD"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Shopdesk configuration

# Database driver: sqlite or mysql
driver: sqlite

# MySQL connection settings (ignored for sqlite)
# host: localhost:3306
# user: shopdesk
# database: laptopdoctor

# SQLite database name (file <data_dir>/<database>.db)
database: shopdesk

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Backup directory (optional)
# backup_dir:

# Log file (optional; stderr only when unset)
# log_file:
`

// loadConfig reads config.yaml from the resolved config directory, creating
// the directory and a default file on first run. A missing config.yaml is
// not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDriver, types.DriverSQLite)
	v.SetDefault(cfgKeyDatabase, "shopdesk")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// buildConfig assembles the runtime configuration from viper values, flags,
// and the environment.
func buildConfig(v *viper.Viper) (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(flagDataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving data dir: %w", err)
	}
	backupDir, err := paths.ResolveBackupDir("", v.GetString(cfgKeyBackupDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving backup dir: %w", err)
	}

	password := v.GetString(cfgKeyPassword)
	if env := os.Getenv(envPassword); env != "" {
		password = env
	}

	c := types.Config{
		Driver:    v.GetString(cfgKeyDriver),
		Host:      v.GetString(cfgKeyHost),
		User:      v.GetString(cfgKeyUser),
		Database:  v.GetString(cfgKeyDatabase),
		Password:  password,
		DataDir:   dataDir,
		LogFile:   v.GetString(cfgKeyLogFile),
		BackupDir: backupDir,
	}
	if err := c.Validate(); err != nil {
		return types.Config{}, err
	}
	return c, nil
}
