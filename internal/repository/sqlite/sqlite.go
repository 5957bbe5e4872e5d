// Package sqlite implements the repository interfaces on SQLite.
//
// The driver is modernc.org/sqlite, a pure Go translation of SQLite —
// no CGo, so the binary cross-compiles cleanly. Schema management is
// handled by golang-migrate running the embedded migrations/ scripts.
package sqlite

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a sql.DB connection pool. The per-entity stores returned by
// Users, Categories, Goals and Transactions share this pool, so a
// transaction opened by one store (registration, goal deletion) sees
// the same database as the rest.
type DB struct {
	conn *sql.DB
}

func (db *DB) Users() *UserStore               { return &UserStore{conn: db.conn} }
func (db *DB) Categories() *CategoryStore      { return &CategoryStore{conn: db.conn} }
func (db *DB) Goals() *GoalStore               { return &GoalStore{conn: db.conn} }
func (db *DB) Transactions() *TransactionStore { return &TransactionStore{conn: db.conn} }

// New opens the database at dbPath (":memory:" is supported for tests),
// configures it and runs pending migrations.
//
// Pragmas ride in the DSN because they are per-connection state and
// database/sql pools connections: an Exec'd pragma would configure one
// connection and leave the rest of the pool with SQLite's defaults, in
// particular with foreign keys off. The driver replays _pragma DSN
// options on every new connection. WAL allows concurrent reads while a
// write is in flight; foreign keys are off by default in SQLite and we
// rely on them.
func New(dbPath string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", dbPath)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every pooled connection to ":memory:" would get its own empty
	// database, so collapse the pool to one connection in that case.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// runMigrations applies the embedded migration scripts. It runs on the
// main pool rather than a separate connection so that ":memory:"
// databases are migrated too.
func runMigrations(conn *sql.DB) error {
	driver, err := migratesqlite.WithInstance(conn, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("creating iofs migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure
// on the given column (e.g. "users.email"). modernc.org/sqlite exposes
// constraint failures only through the error text.
func isUniqueViolation(err error, column string) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
