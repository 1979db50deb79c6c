package journal

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	for i := 0; i < 3; i++ {
		j, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		j.Close()
	}
}

func TestClose_NilJournal(t *testing.T) {
	var j *Journal
	if err := j.Close(); err != nil {
		t.Errorf("Close() on nil journal should not error: %v", err)
	}
}

func TestAppend_AssignsSeqInOrder(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	ops := []Op{OpEventCreated, OpEnrolled, OpUnenrolled}
	for _, op := range ops {
		err := j.Append(ctx, Entry{Op: op, Entity: "event", EntityKey: "workshop"})
		if err != nil {
			t.Fatalf("Append(%s) failed: %v", op, err)
		}
	}

	entries, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Op != ops[i] {
			t.Errorf("entry %d op = %s, want %s", i, e.Op, ops[i])
		}
		if i > 0 && entries[i].Seq <= entries[i-1].Seq {
			t.Errorf("seq not strictly increasing: %d then %d", entries[i-1].Seq, entries[i].Seq)
		}
		if e.ID == "" {
			t.Error("entry id was not assigned")
		}
	}
}

func TestAppend_IdempotentOnID(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	e := Entry{ID: "fixed-id", Op: OpEventCreated, Entity: "event", EntityKey: "workshop"}
	if err := j.Append(ctx, e); err != nil {
		t.Fatalf("first Append() failed: %v", err)
	}
	if err := j.Append(ctx, e); err != nil {
		t.Fatalf("duplicate Append() failed: %v", err)
	}

	entries, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("duplicate append created %d entries, want 1", len(entries))
	}
}

func TestAppend_RoundTripsDetails(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	err := j.Append(ctx, Entry{
		Op:        OpEventRenamed,
		Entity:    "event",
		EntityKey: "workshop",
		Details:   map[string]string{"from": "Workshop", "to": "Workshop Go"},
	})
	if err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	entries, err := j.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if entries[0].Details["to"] != "Workshop Go" {
		t.Errorf("details lost in round trip: %v", entries[0].Details)
	}
	if entries[0].RecordedAt.IsZero() {
		t.Error("recorded_at was not stamped")
	}
}

func TestList_Limit(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := j.Append(ctx, Entry{Op: OpEnrolled, Entity: "event", EntityKey: "workshop"}); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	entries, err := j.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("limit ignored: got %d entries", len(entries))
	}
}

func TestListByEntity(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	if err := j.Append(ctx, Entry{Op: OpEventCreated, Entity: "event", EntityKey: "workshop"}); err != nil {
		t.Fatal(err)
	}
	if err := j.Append(ctx, Entry{Op: OpProfileRegistered, Entity: "profile", EntityKey: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := j.Append(ctx, Entry{Op: OpEnrolled, Entity: "event", EntityKey: "workshop"}); err != nil {
		t.Fatal(err)
	}

	entries, err := j.ListByEntity(ctx, "event", "workshop", 0)
	if err != nil {
		t.Fatalf("ListByEntity() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 event entries, got %d", len(entries))
	}
	if entries[0].Op != OpEventCreated || entries[1].Op != OpEnrolled {
		t.Errorf("unexpected ops: %v, %v", entries[0].Op, entries[1].Op)
	}

	limited, err := j.ListByEntity(ctx, "event", "workshop", 1)
	if err != nil {
		t.Fatalf("ListByEntity() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d entries", len(limited))
	}
	if limited[0].Op != OpEventCreated {
		t.Errorf("limit must keep the oldest entries, got %v", limited[0].Op)
	}
}
