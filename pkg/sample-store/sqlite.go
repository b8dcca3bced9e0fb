package samplestore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

const memoryFilename = "file::memory:?cache=shared"

type SQLiteStore struct {
	db         *sql.DB
	writeMutex *sync.Mutex
}

// NewSQLiteStore opens a store with the given filename as the db.
// If file name is empty or "memory", a new in-memory db is opened.
func NewSQLiteStore(filename string) (SQLiteStore, error) {
	if filename == "" || filename == "memory" {
		filename = memoryFilename
	}
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return SQLiteStore{}, fmt.Errorf("open %s: %w", filename, err)
	}
	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS samples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			value TEXT NOT NULL,
			format TEXT NOT NULL,
			parsed TEXT NOT NULL,
			seen_at INTEGER NOT NULL
		)`,
		"CREATE INDEX IF NOT EXISTS format_idx ON samples (format)",
		"PRAGMA journal_mode=WAL",
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return SQLiteStore{}, fmt.Errorf("init %s: %w", filename, err)
		}
	}
	return SQLiteStore{
		db:         db,
		writeMutex: &sync.Mutex{},
	}, nil
}

func (s SQLiteStore) Record(sample Sample) error {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()
	_, err := s.db.Exec("INSERT INTO samples (value, format, parsed, seen_at) VALUES (?, ?, ?, ?)",
		sample.Value, sample.Format, sample.Parsed, sample.SeenAt.UnixNano())
	return err
}

func (s SQLiteStore) Recent(limit int) ([]Sample, error) {
	return s.query(`SELECT value, format, parsed, seen_at
		FROM samples ORDER BY id DESC LIMIT ?`, limitOrDefault(limit))
}

func (s SQLiteStore) Unparsed(limit int) ([]Sample, error) {
	return s.query(`SELECT value, format, parsed, seen_at
		FROM samples WHERE format = '' ORDER BY id DESC LIMIT ?`, limitOrDefault(limit))
}

func (s SQLiteStore) Counts() (map[string]int, error) {
	counts := make(map[string]int)
	rows, err := s.db.Query("SELECT format, COUNT(*) FROM samples GROUP BY format")
	if err != nil {
		return counts, err
	}
	defer rows.Close()
	for rows.Next() {
		var format string
		var count int
		if err := rows.Scan(&format, &count); err != nil {
			return counts, err
		}
		counts[format] = count
	}
	return counts, rows.Err()
}

func (s SQLiteStore) Close() error {
	return s.db.Close()
}

func (s SQLiteStore) query(query string, args ...any) ([]Sample, error) {
	samples := make([]Sample, 0)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return samples, err
	}
	defer rows.Close()
	for rows.Next() {
		var sample Sample
		var seenAt int64
		if err := rows.Scan(&sample.Value, &sample.Format, &sample.Parsed, &seenAt); err != nil {
			return samples, err
		}
		sample.SeenAt = time.Unix(0, seenAt)
		samples = append(samples, sample)
	}
	return samples, rows.Err()
}
