// Package paths resolves configuration, data, and backup directory
// locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appDirName is the per-user directory the app claims under the platform's
// config root.
const appDirName = "shopdesk"

// CWD-relative directory names used when nothing else is configured.
const (
	DefaultDataDirName   = ".shopdesk-db"
	DefaultBackupDirName = "backups"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SHOPDESK_CONFIG_DIR"
	EnvDataDir   = "SHOPDESK_DATA_DIR"
	EnvBackupDir = "SHOPDESK_BACKUP_DIR"
)

// ScheduleFileName is the backup schedule file kept in the config directory.
const ScheduleFileName = "backup_schedule.json"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/shopdesk (fallback ~/.config/shopdesk)
// macOS:   ~/Library/Application Support/shopdesk
// Windows: %APPDATA%/shopdesk
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		// macOS and Windows use os.UserConfigDir which returns
		// ~/Library/Application Support on macOS and %APPDATA% on Windows.
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SHOPDESK_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the SQLite data directory following the precedence
// chain: flag > config file value > SHOPDESK_DATA_DIR env > $(CWD)/.shopdesk-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ResolveBackupDir returns the backup directory following the precedence
// chain: flag > config file value > SHOPDESK_BACKUP_DIR env >
// <config dir>/backups.
func ResolveBackupDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvBackupDir); env != "" {
		return filepath.Abs(env)
	}
	cfg, err := ResolveConfigDir("")
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, DefaultBackupDirName), nil
}

// ScheduleFile returns the path of the backup schedule file under the
// resolved configuration directory.
func ScheduleFile(configDirFlag string) (string, error) {
	cfg, err := ResolveConfigDir(configDirFlag)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, ScheduleFileName), nil
}
