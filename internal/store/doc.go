// Package store provides durable storage for the three persisted collections:
// the events document (catalog + rosters), the students document, and the
// coordinators document. Each is a single JSON file in the data directory.
//
// # Contract
//
//   - Open seeds any missing document with an empty structure and persists
//     that empty state before returning, so callers never special-case a
//     missing file.
//   - Every save overwrites the whole document (temp file + rename). There is
//     no partial or append write: one writer, no concurrent mutation,
//     last-write-wins.
//   - Roster keys are normalized (lower-case, trimmed, NFC) on every load,
//     since earlier mutations may have written them inconsistently. Callers
//     must not assume the raw persisted casing.
//   - Documents are validated against embedded CUE schemas before
//     unmarshalling, so a hand-edited or corrupt file fails at the load
//     boundary instead of surfacing later as an invariant break.
package store
