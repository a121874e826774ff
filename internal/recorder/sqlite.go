package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"FishSentinel/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists history to a SQLite database.
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

	// WAL lets the API read history while the scheduler writes.
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
		`CREATE TABLE IF NOT EXISTS availability_events (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			fish         TEXT NOT NULL,
			zone         TEXT,
			from_state   TEXT,
			to_state     TEXT,
			remaining_ms INTEGER,
			eorzea_time  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_availability_ts ON availability_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS catalog_reloads (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			source     TEXT,
			fish_count INTEGER,
			spot_count INTEGER,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reloads_ts ON catalog_reloads(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTransition(evt *TransitionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := evt.Remaining
	if remaining == model.Forever {
		remaining = 0
	}
	_, err := r.db.Exec(`INSERT INTO availability_events
		(timestamp, fish, zone, from_state, to_state, remaining_ms, eorzea_time)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Fish, evt.Zone, string(evt.From), string(evt.To),
		remaining.Milliseconds(), evt.EorzeaTime,
	)
	return err
}

func (r *SQLiteRecorder) RecordReload(evt *ReloadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO catalog_reloads
		(timestamp, source, fish_count, spot_count, error)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Source, evt.Fish, evt.Spots, evt.Err,
	)
	return err
}

// RecentTransitions returns up to limit transitions, newest first.
func (r *SQLiteRecorder) RecentTransitions(limit int) ([]TransitionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, fish, zone, from_state, to_state, remaining_ms, eorzea_time
		FROM availability_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transitions: %w", err)
	}
	defer rows.Close()

	var out []TransitionRecord
	for rows.Next() {
		var (
			rec        TransitionRecord
			ts, leftMs int64
			zone, et   sql.NullString
			from, to   string
		)
		if err := rows.Scan(&ts, &rec.Fish, &zone, &from, &to, &leftMs, &et); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.Zone = zone.String
		rec.From = model.State(from)
		rec.To = model.State(to)
		rec.Remaining = time.Duration(leftMs) * time.Millisecond
		rec.EorzeaTime = et.String
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
