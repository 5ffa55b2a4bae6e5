package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/liralabs/lirabot/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS usage_records (
    id            TEXT PRIMARY KEY,
    backend       TEXT NOT NULL,
    input_tokens  INTEGER NOT NULL,
    output_tokens INTEGER NOT NULL,
    cost          REAL NOT NULL,
    latency_ms    INTEGER NOT NULL,
    created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_usage_backend ON usage_records(backend);
CREATE INDEX IF NOT EXISTS idx_usage_created ON usage_records(created_at);
`

// Store is the SQLite-backed durable audit trail for usage records.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the audit database at the given path.
func OpenStore(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating audit dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening audit db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the audit database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores one usage record. Records are never updated or deleted.
func (s *Store) Append(rec model.UsageRecord) error {
	_, err := s.db.Exec(`INSERT INTO usage_records
		(id, backend, input_tokens, output_tokens, cost, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Backend, rec.InputTokens, rec.OutputTokens, rec.Cost,
		rec.ResponseLatency.Milliseconds(),
		rec.Timestamp.UTC().Format(time.RFC3339),
	)
	return err
}

// LoadAll reads every stored record, oldest first.
func (s *Store) LoadAll() ([]model.UsageRecord, error) {
	rows, err := s.db.Query(`SELECT id, backend, input_tokens, output_tokens,
		cost, latency_ms, created_at
		FROM usage_records ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.UsageRecord
	for rows.Next() {
		var rec model.UsageRecord
		var latencyMs int64
		var createdAt string

		if err := rows.Scan(&rec.ID, &rec.Backend, &rec.InputTokens,
			&rec.OutputTokens, &rec.Cost, &latencyMs, &createdAt); err != nil {
			return nil, err
		}

		rec.ResponseLatency = time.Duration(latencyMs) * time.Millisecond
		rec.Timestamp, _ = time.Parse(time.RFC3339, createdAt)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Backends returns the distinct backend names present in the store.
func (s *Store) Backends() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT backend FROM usage_records ORDER BY backend")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM usage_records").Scan(&count)
	return count, err
}
