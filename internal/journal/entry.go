package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Op identifies what kind of mutation an entry records.
type Op string

const (
	OpEventCreated      Op = "event.created"
	OpEventRenamed      Op = "event.renamed"
	OpEventUpdated      Op = "event.updated"
	OpEventDeleted      Op = "event.deleted"
	OpEnrolled          Op = "enrollment.added"
	OpUnenrolled        Op = "enrollment.removed"
	OpProfileRegistered Op = "profile.registered"
)

// Entry is one audit record. Seq is assigned by the database on append and
// is the only ordering that matters; RecordedAt is informational.
type Entry struct {
	Seq        int64
	ID         string
	Op         Op
	Entity     string // "event" or "profile"
	EntityKey  string // normalized event key, or profile id
	Details    map[string]string
	RecordedAt time.Time
}

// Append inserts an entry. A zero ID is assigned a fresh UUID; a zero
// RecordedAt is stamped with the current time. Appends are idempotent on the
// id: writing the same entry twice is a silent no-op.
func (j *Journal) Append(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	if e.Details == nil {
		e.Details = map[string]string{}
	}

	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("append entry: encode details: %w", err)
	}

	_, err = j.db.ExecContext(ctx, `
		INSERT INTO entries (id, op, entity, entity_key, details, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		string(e.Op),
		e.Entity,
		e.EntityKey,
		string(details),
		e.RecordedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// List returns entries in seq order, oldest first. A limit <= 0 means all.
func (j *Journal) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT seq, id, op, entity, entity_key, details, recorded_at
		FROM entries
		ORDER BY seq ASC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return j.queryEntries(ctx, query, args...)
}

// ListByEntity returns the entries for one entity in seq order, oldest
// first. A limit <= 0 means all.
func (j *Journal) ListByEntity(ctx context.Context, entity, entityKey string, limit int) ([]Entry, error) {
	query := `
		SELECT seq, id, op, entity, entity_key, details, recorded_at
		FROM entries
		WHERE entity = ? AND entity_key = ?
		ORDER BY seq ASC
	`
	args := []any{entity, entityKey}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return j.queryEntries(ctx, query, args...)
}

func (j *Journal) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			op         string
			details    string
			recordedAt string
		)
		if err := rows.Scan(&e.Seq, &e.ID, &op, &e.Entity, &e.EntityKey, &details, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Op = Op(op)
		if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
			return nil, fmt.Errorf("decode entry details: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, recordedAt); err == nil {
			e.RecordedAt = ts
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
