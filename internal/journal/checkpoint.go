package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/asim/chatd/internal/logging"
)

// Checkpoint records, periodically, how far the journal writer has flushed
// and what the IdentityGen counter reached at that point, so a restart can
// skip tokenizing the prefix of the log that's already known to be applied.
//
// This mirrors data/migrate.go's role: a step that runs once at startup,
// before the rest of the model is live, to avoid redoing work a prior run
// already finished. Unlike migrate.go it is purely an optimization — the
// text journal is still the single source of truth, and a missing or stale
// checkpoint only costs replay time, never correctness.
type Checkpoint struct {
	db  *sql.DB
	log *logging.Logger
}

// OpenCheckpoint opens (creating if absent) a SQLite checkpoint database at
// path. If SQLite is unavailable for any reason, callers should treat this
// as non-fatal and fall back to a full replay (see Load's contract below).
func OpenCheckpoint(path string) (*Checkpoint, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open checkpoint db: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS checkpoint (
		id INTEGER PRIMARY KEY CHECK (id = 0),
		byte_offset INTEGER NOT NULL,
		generator_sequence INTEGER NOT NULL,
		snapshot BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create checkpoint table: %w", err)
	}
	return &Checkpoint{db: db, log: logging.Default("journal")}, nil
}

func (c *Checkpoint) Close() error { return c.db.Close() }

// Save records the current replay position plus a serialized Model
// snapshot. Failures are logged and swallowed: losing a checkpoint update
// only means the next restart falls further back toward a full replay,
// never a correctness problem.
func (c *Checkpoint) Save(byteOffset int64, generatorSequence uint32, snapshot []byte) {
	_, err := c.db.Exec(`INSERT INTO checkpoint (id, byte_offset, generator_sequence, snapshot)
		VALUES (0, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET byte_offset = excluded.byte_offset,
			generator_sequence = excluded.generator_sequence, snapshot = excluded.snapshot`,
		byteOffset, generatorSequence, snapshot)
	if err != nil {
		c.log.Printf("checkpoint save failed, next restart replays further back: %v", err)
	}
}

// Load returns the last saved position and snapshot, or ok=false if none
// exists yet.
func (c *Checkpoint) Load() (byteOffset int64, generatorSequence uint32, snapshot []byte, ok bool) {
	row := c.db.QueryRow(`SELECT byte_offset, generator_sequence, snapshot FROM checkpoint WHERE id = 0`)
	if err := row.Scan(&byteOffset, &generatorSequence, &snapshot); err != nil {
		return 0, 0, nil, false
	}
	return byteOffset, generatorSequence, snapshot, true
}
