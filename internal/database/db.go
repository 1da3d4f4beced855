package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/XSAM/otelsql"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"
)

// Driver names accepted by New
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB represents the run history database connection
type DB struct {
	conn   *sql.DB
	driver string
}

// New opens the history database. A DSN starting with postgres:// or holding
// libpq key=value pairs selects PostgreSQL; anything else is a SQLite file path
// (":memory:" included).
func New(dsn string) (*DB, error) {
	driver := DetectDriver(dsn)

	conn, err := otelsql.Open(driver, dsn,
		otelsql.WithAttributes(attribute.String("db.system", driver)))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, driver: driver}, nil
}

// DetectDriver picks the SQL driver for a DSN
func DetectDriver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=") {
		return DriverPostgres
	}
	return DriverSQLite
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying database connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Driver returns the SQL driver in use
func (db *DB) Driver() string {
	return db.driver
}
