package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"aurum-cli/internal/model"

	_ "modernc.org/sqlite"
)

func (s Store) sqlitePath() string {
	return filepath.Join(s.localDir(), "index.sqlite")
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when CLI and TUI overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateEventLog(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateEventLog(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			entity_kind TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			entity_seq INTEGER NOT NULL,
			type TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL,
			payload_json TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_kind, entity_id, entity_seq);`,
		`CREATE INDEX IF NOT EXISTS idx_events_issued ON events(issued_at_unixms);`,
		`CREATE TABLE IF NOT EXISTS entity_seq (
			entity_kind TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			next_seq INTEGER NOT NULL,
			PRIMARY KEY(entity_kind, entity_id)
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// entityKindFromType derives the entity kind from an event type like
// "pillar.create" or "task.set_status".
func entityKindFromType(typ string) (string, bool) {
	head, _, ok := strings.Cut(strings.TrimSpace(typ), ".")
	if !ok {
		return "", false
	}
	switch head {
	case "pillar", "area", "project", "task", "capture", "journal", "nav", "workspace":
		return head, true
	default:
		return "", false
	}
}

func (s Store) appendEventSQLite(ctx context.Context, typ, entityID string, payload any) error {
	typ = strings.TrimSpace(typ)
	kind, ok := entityKindFromType(typ)
	if !ok {
		return fmt.Errorf("event contract: invalid entity kind for type %q", typ)
	}
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return errors.New("event contract: missing entity id")
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	pb, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	eventID, err := newUUIDv4()
	if err != nil {
		return err
	}
	nowMs := time.Now().UTC().UnixMilli()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Allocate per-entity sequence.
	var next int64
	err = tx.QueryRowContext(ctx, `SELECT next_seq FROM entity_seq WHERE entity_kind = ? AND entity_id = ?`, kind, entityID).Scan(&next)
	switch {
	case err == nil:
		if _, err := tx.ExecContext(ctx, `UPDATE entity_seq SET next_seq = ? WHERE entity_kind = ? AND entity_id = ?`, next+1, kind, entityID); err != nil {
			return err
		}
	case errors.Is(err, sql.ErrNoRows):
		next = 1
		if _, err := tx.ExecContext(ctx, `INSERT INTO entity_seq(entity_kind, entity_id, next_seq) VALUES(?, ?, ?)`, kind, entityID, int64(2)); err != nil {
			return err
		}
	default:
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO events(
			event_id, entity_kind, entity_id, entity_seq,
			type, issued_at_unixms, payload_json, created_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, eventID, kind, entityID, next, typ, nowMs, string(pb), nowMs); err != nil {
		return err
	}

	return tx.Commit()
}

// ReadEvents returns events in append order. If limit > 0, at most limit
// events are returned (oldest first).
func ReadEvents(dir string, limit int) ([]model.Event, error) {
	s := Store{Dir: dir}
	return s.readEventsSQLite(context.Background(), "", limit)
}

// ReadEventsForEntity returns events for one entity in per-entity sequence
// order.
func ReadEventsForEntity(dir, entityID string, limit int) ([]model.Event, error) {
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return []model.Event{}, nil
	}
	s := Store{Dir: dir}
	return s.readEventsSQLite(context.Background(), entityID, limit)
}

func (s Store) readEventsSQLite(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, issued_at_unixms, type, entity_id, payload_json FROM events`
	args := []any{}
	if entityID != "" {
		q += ` WHERE entity_id = ? ORDER BY entity_seq ASC`
		args = append(args, entityID)
	} else {
		// rowid tiebreak keeps append order for same-millisecond events.
		q += ` ORDER BY created_at_unixms ASC, rowid ASC`
	}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var id, typ, eid, payloadJSON string
		var tsMs int64
		if err := rows.Scan(&id, &tsMs, &typ, &eid, &payloadJSON); err != nil {
			return nil, err
		}
		var payload any
		_ = json.Unmarshal([]byte(payloadJSON), &payload)
		out = append(out, model.Event{
			ID:       id,
			TS:       time.UnixMilli(tsMs).UTC(),
			Type:     typ,
			EntityID: eid,
			Payload:  payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Event{}
	}
	return out, nil
}

func newUUIDv4() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	// RFC 4122 variant + v4
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uint32(b[0])<<24|uint32(b[1])<<16|uint32(b[2])<<8|uint32(b[3]),
		uint16(b[4])<<8|uint16(b[5]),
		uint16(b[6])<<8|uint16(b[7]),
		uint16(b[8])<<8|uint16(b[9]),
		uint64(b[10])<<40|uint64(b[11])<<32|uint64(b[12])<<24|uint64(b[13])<<16|uint64(b[14])<<8|uint64(b[15]),
	), nil
}
