package kvstore

import (
	"database/sql"
	"fmt"
	"strings"
)

// SQL is a Backend persisting entries in one table through database/sql.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// Open creates a backend for the configured store type. Supported types are
// "sqlite" (default), "postgres", "mysql" and "memory".
func Open(backendType string, config DialectConfig) (Backend, error) {
	var dialect Dialect

	switch strings.ToLower(backendType) {
	case "postgres", "postgresql":
		dialect = NewPostgresDialect()
	case "mysql":
		dialect = NewMySQLDialect()
	case "sqlite", "sqlite3", "":
		dialect = NewSQLiteDialect()
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", backendType)
	}

	return OpenSQL(dialect, config)
}

// OpenSQL connects a SQL backend using the given dialect and ensures the
// entries table exists.
func OpenSQL(dialect Dialect, config DialectConfig) (*SQL, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	// Apply dialect-specific configuration
	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	if _, err := db.Exec(dialect.CreateTableQuery()); err != nil {
		return nil, fmt.Errorf("failed to create entries table: %w", err)
	}

	return &SQL{db: db, dialect: dialect}, nil
}

// Close closes the underlying connection.
func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) Get(key string) (string, error) {
	query := s.dialect.RewriteQuery("SELECT entry_value FROM entries WHERE entry_key = ?")

	var value string
	err := s.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQL) Set(key, value string) error {
	query := s.dialect.RewriteQuery(s.dialect.UpsertQuery())
	_, err := s.db.Exec(query, key, value)
	return err
}

func (s *SQL) Remove(key string) error {
	query := s.dialect.RewriteQuery("DELETE FROM entries WHERE entry_key = ?")
	_, err := s.db.Exec(query, key)
	return err
}

func (s *SQL) Keys() ([]string, error) {
	query := "SELECT entry_key FROM entries"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}
