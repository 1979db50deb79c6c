// Package engine implements the enrollment-consistency engine.
//
// The engine is the single aggregate that owns all three facets of an
// enrollment: the summary list embedded in the event record, the canonical
// per-event roster, and the profile's subscription list. Every mutation goes
// through one engine operation that updates all facets together, so no call
// site can update one and forget another.
//
// ARCHITECTURE:
//
// Load-then-save boundaries:
// Each top-level operation loads the documents it needs fresh from the
// store, mutates them in memory, and saves them before returning. Nothing
// is cached between operations; staleness-sensitive fields (event status)
// are recomputed and persisted before every listing.
//
// Single writer:
// The design assumes exactly one active session against the backing store.
// Operations are synchronous and run to completion; there is no locking and
// no cancellation primitive beyond the caller declining to continue.
//
// Crash model:
// An enroll or unenroll touches two documents (events, students). The saves
// are sequential whole-document overwrites; a crash between them is an
// accepted risk, not a correctness goal. The store renormalizes roster keys
// and renumbers rosters on load, which repairs the invariants it can.
//
// Failures surface as *Error values with a code from the taxonomy in
// errors.go. No error is fatal to the process; the caller decides whether
// to retry, cancel, or move on.
package engine
