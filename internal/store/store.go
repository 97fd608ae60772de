// Package store implements the relational data layer for shopdesk: session
// lifetime, schema inspection, paged reads, cell-level mutations, keyword
// search, and the auto-increment watermark repair that keeps a table's
// counter at max(primary key)+1 after every mutation.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/laptopdoctor/shopdesk/pkg/types"
)

// Session wraps the single database connection held for the lifetime of a
// login. All operations are blocking calls on this connection; there is no
// retry or health-checking. A dropped connection surfaces as an error on the
// next call.
type Session struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database described by the config and returns a live
// session. The connection is verified with a ping so a bad password or host
// fails at login time, not on the first query.
func Open(cfg types.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		driver  string
		dsn     string
		dialect Dialect
	)
	switch cfg.Driver {
	case types.DriverMySQL:
		driver = "mysql"
		dsn = mysqlDSN(cfg)
		dialect = MySQLDialect{}
	case types.DriverSQLite:
		driver = "sqlite"
		dsn = sqliteDSN(cfg)
		dialect = SQLiteDialect{}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", cfg.Driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Driver, err)
	}
	return &Session{db: db, dialect: dialect}, nil
}

// mysqlDSN builds the go-sql-driver DSN from config parts.
func mysqlDSN(cfg types.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost:3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s", cfg.User, cfg.Password, host, cfg.Database)
}

// sqliteDSN resolves the database file path for the sqlite driver.
func sqliteDSN(cfg types.Config) string {
	name := cfg.Database
	if name == "" {
		name = "shopdesk"
	}
	dir := cfg.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name+".db")
}

// Close releases the session's connection. Idempotent.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// DB exposes the underlying connection for subsystems that consume a live
// connection directly (export, report, dashboard).
func (s *Session) DB() *sql.DB {
	return s.db
}

// Dialect returns the session's SQL dialect.
func (s *Session) Dialect() Dialect {
	return s.dialect
}
