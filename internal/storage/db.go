package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"shopclean/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS suggestions (
  code TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  seenCount INTEGER NOT NULL DEFAULT 0,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertRun(traceID string, stats internal.RunStats) error {
	countsJSON, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`INSERT INTO runs (traceId, countsJson) VALUES (?, ?)`, traceID, string(countsJSON))
	return err
}

func (d *DB) ListRuns(limit int) ([]internal.RunRecord, error) {
	rows, err := d.conn.Query(`
SELECT id, traceId, countsJson, createdAt
FROM runs ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RunRecord
	for rows.Next() {
		var rec internal.RunRecord
		var countsJSON string
		if err := rows.Scan(&rec.ID, &rec.TraceID, &countsJSON, &rec.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(countsJSON), &rec.Stats)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpsertSuggestions accumulates observation counts across analyze passes;
// the suggested name keeps the most recent first-observed value.
func (d *DB) UpsertSuggestions(suggestions []internal.Suggestion) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO suggestions (code, name, seenCount) VALUES (?, ?, ?)
ON CONFLICT(code) DO UPDATE SET
  name=excluded.name,
  seenCount=seenCount+excluded.seenCount,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range suggestions {
		if _, err := stmt.Exec(s.Code, s.Name, s.Count); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *DB) ListSuggestions() ([]internal.Suggestion, error) {
	rows, err := d.conn.Query(`SELECT code, name, seenCount FROM suggestions ORDER BY seenCount DESC, code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.Suggestion
	for rows.Next() {
		var s internal.Suggestion
		if err := rows.Scan(&s.Code, &s.Name, &s.Count); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
