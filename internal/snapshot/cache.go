package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"ria-analytics/internal/records"
)

// Cache persists snapshots in a local SQLite database so a fetched snapshot
// can be replayed deterministically without the record store.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS snapshot (
    id TEXT PRIMARY KEY,
    taken_at TEXT NOT NULL,
    saved_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_record (
    snapshot_id TEXT NOT NULL REFERENCES snapshot(id) ON DELETE CASCADE,
    collection TEXT NOT NULL CHECK (collection IN ('submissions', 'stage_history', 'comments', 'staff')),
    seq INTEGER NOT NULL,
    payload TEXT NOT NULL,
    PRIMARY KEY (snapshot_id, collection, seq)
);

CREATE INDEX IF NOT EXISTS idx_snapshot_record_snapshot_id ON snapshot_record(snapshot_id);
`

// OpenCache opens (and if needed initializes) the snapshot cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Save stores a snapshot under a fresh UUID and returns the ID.
func (c *Cache) Save(snap *Snapshot) (string, error) {
	id := uuid.NewString()

	tx, err := c.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin cache transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO snapshot (id, taken_at, saved_at) VALUES (?, ?, ?)`,
		id, snap.TakenAt.Format(time.RFC3339Nano), time.Now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot row: %w", err)
	}

	insert := func(collection string, seq int, record interface{}) error {
		payload, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to encode %s record: %w", collection, err)
		}
		_, err = tx.Exec(
			`INSERT INTO snapshot_record (snapshot_id, collection, seq, payload) VALUES (?, ?, ?, ?)`,
			id, collection, seq, string(payload),
		)
		return err
	}

	for i, sub := range snap.Submissions {
		if err := insert("submissions", i, sub); err != nil {
			return "", err
		}
	}
	for i, h := range snap.StageHistory {
		if err := insert("stage_history", i, h); err != nil {
			return "", err
		}
	}
	for i, cm := range snap.Comments {
		if err := insert("comments", i, cm); err != nil {
			return "", err
		}
	}
	for i, p := range snap.Staff {
		if err := insert("staff", i, p); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit snapshot: %w", err)
	}

	log.Info().Str("id", id).Time("takenAt", snap.TakenAt).Msg("Snapshot saved to cache")
	return id, nil
}

// LoadLatest restores the most recently saved snapshot, or returns false
// when the cache is empty.
func (c *Cache) LoadLatest() (*Snapshot, bool, error) {
	var id string
	var takenAtRaw string
	err := c.db.QueryRow(`SELECT id, taken_at FROM snapshot ORDER BY saved_at DESC LIMIT 1`).Scan(&id, &takenAtRaw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	snap, err := c.load(id, takenAtRaw)
	if err != nil {
		return nil, false, err
	}
	return snap, true, nil
}

// Load restores a snapshot by ID.
func (c *Cache) Load(id string) (*Snapshot, error) {
	var takenAtRaw string
	err := c.db.QueryRow(`SELECT taken_at FROM snapshot WHERE id = ?`, id).Scan(&takenAtRaw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %s not found in cache", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot %s: %w", id, err)
	}
	return c.load(id, takenAtRaw)
}

func (c *Cache) load(id string, takenAtRaw string) (*Snapshot, error) {
	takenAt, err := time.Parse(time.RFC3339Nano, takenAtRaw)
	if err != nil {
		return nil, fmt.Errorf("corrupt taken_at for snapshot %s: %w", id, err)
	}

	rows, err := c.db.Query(
		`SELECT collection, payload FROM snapshot_record WHERE snapshot_id = ? ORDER BY collection, seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot records: %w", err)
	}
	defer rows.Close()

	var (
		subs     []records.Submission
		history  []records.StageHistoryEntry
		comments []records.Comment
		staff    []records.StaffProfile
	)

	for rows.Next() {
		var collection, payload string
		if err := rows.Scan(&collection, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot record: %w", err)
		}
		switch collection {
		case "submissions":
			var sub records.Submission
			if err := json.Unmarshal([]byte(payload), &sub); err != nil {
				return nil, fmt.Errorf("corrupt submission record: %w", err)
			}
			subs = append(subs, sub)
		case "stage_history":
			var h records.StageHistoryEntry
			if err := json.Unmarshal([]byte(payload), &h); err != nil {
				return nil, fmt.Errorf("corrupt stage-history record: %w", err)
			}
			history = append(history, h)
		case "comments":
			var cm records.Comment
			if err := json.Unmarshal([]byte(payload), &cm); err != nil {
				return nil, fmt.Errorf("corrupt comment record: %w", err)
			}
			comments = append(comments, cm)
		case "staff":
			var p records.StaffProfile
			if err := json.Unmarshal([]byte(payload), &p); err != nil {
				return nil, fmt.Errorf("corrupt staff record: %w", err)
			}
			staff = append(staff, p)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading snapshot records: %w", err)
	}

	log.Info().Str("id", id).Int("submissions", len(subs)).Msg("Snapshot restored from cache")
	return New(takenAt, subs, history, comments, staff), nil
}

// Info describes one cached snapshot.
type Info struct {
	ID      string    `json:"id"`
	TakenAt time.Time `json:"takenAt"`
	SavedAt time.Time `json:"savedAt"`
}

// List returns metadata for all cached snapshots, newest first.
func (c *Cache) List() ([]Info, error) {
	rows, err := c.db.Query(`SELECT id, taken_at, saved_at FROM snapshot ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var takenRaw, savedRaw string
		if err := rows.Scan(&info.ID, &takenRaw, &savedRaw); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot info: %w", err)
		}
		info.TakenAt, _ = time.Parse(time.RFC3339Nano, takenRaw)
		info.SavedAt, _ = time.Parse(time.RFC3339Nano, savedRaw)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
