package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists indicator history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (the dashboard reads
	// history while the updater writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS indicator_history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			name      TEXT NOT NULL,
			value     REAL,
			source    TEXT,
			detail    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_ts ON indicator_history(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_history_name ON indicator_history(name)`,

		`CREATE TABLE IF NOT EXISTS run_history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			updated   INTEGER,
			skipped   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_ts ON run_history(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordIndicator(evt *IndicatorEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO indicator_history
		(timestamp, name, value, source, detail)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Name, evt.Value, evt.Source, evt.Detail,
	)
	return err
}

func (r *SQLiteRecorder) RecordRun(evt *RunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO run_history
		(timestamp, updated, skipped)
		VALUES (?,?,?)`,
		time.Now().Unix(), evt.Updated, evt.Skipped,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
