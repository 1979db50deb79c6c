// Package journal provides an append-only SQLite audit log of engine
// mutations: event created/renamed/updated/deleted, enrollments added and
// removed, profiles registered.
//
// The journal is observability, not source of truth - the JSON documents in
// the store are. An entry is appended after the documents have been saved,
// and a journal failure never fails the mutation it describes.
//
// Ordering uses the seq column (monotonic integer), never timestamps; the
// recorded_at column is informational only. Appends are idempotent on the
// entry id: replaying the same entry is a no-op.
package journal
