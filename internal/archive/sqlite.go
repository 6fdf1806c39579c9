// Package archive records played telemetry samples to SQLite so a session
// can be inspected after the dashboard closes.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"cansat-dashboard.klederson.com/internal/telemetry"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection for sample storage.
type DB struct {
	db      *sql.DB
	session string
	insert  *sql.Stmt
	now     func() time.Time
}

// Sample is one stored channel value.
type Sample struct {
	Session    string
	Tick       int
	Channel    telemetry.Channel
	Value      float64
	RecordedAt time.Time
}

// Open opens or creates the database at path and tags every record with
// session.
func Open(path, session string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	insert, err := db.Prepare(`INSERT INTO samples (session_id, tick, channel, value, recorded_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	return &DB{db: db, session: session, insert: insert, now: time.Now}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		channel TEXT NOT NULL,
		value REAL NOT NULL,
		recorded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_session_tick ON samples(session_id, tick);
	CREATE INDEX IF NOT EXISTS idx_samples_channel ON samples(channel);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.insert != nil {
		_ = d.insert.Close()
	}
	return d.db.Close()
}

// Record stores one appended tick, one row per channel, in a single
// transaction.
func (d *DB) Record(tick int, sample [telemetry.NumChannels]float64) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt := tx.Stmt(d.insert)
	at := d.now().UTC().Format(time.RFC3339Nano)
	for i, ch := range telemetry.Channels {
		if _, err := stmt.Exec(d.session, tick, string(ch), sample[i], at); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s: %w", ch, err)
		}
	}
	return tx.Commit()
}

// Samples returns the stored values of ch for session in tick order.
func (d *DB) Samples(session string, ch telemetry.Channel) ([]Sample, error) {
	rows, err := d.db.Query(`
		SELECT session_id, tick, channel, value, recorded_at
		FROM samples
		WHERE session_id = ? AND channel = ?
		ORDER BY tick`, session, string(ch))
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	var out []Sample
	for rows.Next() {
		var s Sample
		var channel, at string
		if err := rows.Scan(&s.Session, &s.Tick, &channel, &s.Value, &at); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		s.Channel = telemetry.Channel(channel)
		s.RecordedAt, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Sessions returns the distinct session ids with their sample counts.
func (d *DB) Sessions() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT session_id, COUNT(DISTINCT tick) FROM samples GROUP BY session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}

// Series returns the stored history of ch for session as chart
// coordinates: tick index against value.
func (d *DB) Series(session string, ch telemetry.Channel) (xs, ys []float64, err error) {
	samples, err := d.Samples(session, ch)
	if err != nil {
		return nil, nil, err
	}
	xs = make([]float64, len(samples))
	ys = make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = float64(s.Tick)
		ys[i] = s.Value
	}
	return xs, ys, nil
}
