// Package model defines the domain types shared by the engine, store, and
// CLI, together with their wire (JSON) representation.
//
// The persisted layout is three independent documents:
//
//   - events.json: {"eventos": [Event...], "inscricoes": {key: [EnrollmentRecord...]}}
//   - students.json: {id: Profile...}
//   - coordinators.json: {id: Profile...}
//
// Field names on the wire are the legacy Portuguese ones (nome, data,
// descricao, vagas, inscritos) and dates are DD/MM/YYYY strings. The Go side
// never exposes those spellings beyond the struct tags.
//
// An event's identity key for roster lookups is identity.NormalizeKey(name):
// lower-cased, trimmed, NFC-normalized. Rosters carry 1-based contiguous ids
// that are reassigned after every removal.
package model
