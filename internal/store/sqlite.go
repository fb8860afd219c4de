package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	log "github.com/sirupsen/logrus"

	"pcsoft.com/lumo/internal/metrics"
)

// SQLiteStore is a KeyValueStore backed by a single sqlite table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Get(key string) (string, bool) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			s.fail("get", key, err)
		}
		return "", false
	}
	return value, true
}

func (s *SQLiteStore) Set(key, value string) {
	_, err := s.db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value)
	if err != nil {
		s.fail("set", key, err)
	}
}

func (s *SQLiteStore) Remove(key string) {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		s.fail("remove", key, err)
	}
}

func (s *SQLiteStore) Clear() {
	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		s.fail("clear", "", err)
	}
}

func (s *SQLiteStore) fail(op, key string, err error) {
	metrics.KVFailures.WithLabelValues("sqlite", op).Inc()
	log.WithFields(log.Fields{"op": op, "key": key}).WithError(err).Warn("sqlite storage operation failed")
}
