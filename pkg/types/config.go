package types

import "errors"

// Config holds the database connection settings and file locations for a
// shopdesk session. Loaded from config.yaml in the resolved config directory.
type Config struct {
	Driver   string `json:"driver" yaml:"driver"`
	Host     string `json:"host" yaml:"host"`
	User     string `json:"user" yaml:"user"`
	Database string `json:"database" yaml:"database"`
	Password string `json:"password" yaml:"password"`

	// DataDir holds the database file for the sqlite driver.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	LogFile   string `json:"log_file" yaml:"log_file"`
	BackupDir string `json:"backup_dir" yaml:"backup_dir"`
}

// Supported driver names.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrDriverEmpty   = errors.New("driver must not be empty")
	ErrDriverUnknown = errors.New("unknown driver")
	ErrDatabaseEmpty = errors.New("database must not be empty")
)

// knownDrivers lists the drivers that Validate accepts.
var knownDrivers = map[string]bool{
	DriverMySQL:  true,
	DriverSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Driver == "" {
		return ErrDriverEmpty
	}
	if !knownDrivers[c.Driver] {
		return ErrDriverUnknown
	}
	if c.Driver == DriverMySQL && c.Database == "" {
		return ErrDatabaseEmpty
	}
	return nil
}
