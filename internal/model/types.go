package model

import "github.com/dmoraes/inscrito/internal/identity"

// Status is the derived availability of an event relative to "now".
// It is recomputed and persisted before any listing so it never goes stale
// across a session boundary.
type Status string

const (
	// StatusAvailable means the event date is today or in the future.
	StatusAvailable Status = "Available"

	// StatusFinished means the event date is in the past.
	StatusFinished Status = "Finished"

	// StatusUnknown means the stored date does not parse.
	StatusUnknown Status = "Unknown"
)

// Summary is the enrollment reference embedded in an event record. It mirrors
// the canonical roster; the engine keeps both in step on every mutation.
type Summary struct {
	StudentID string `json:"id"`
	Name      string `json:"nome"`
}

// Event is one catalog entry. Name is the display identity; lookups go
// through Key(). Date stays a DD/MM/YYYY string on the wire.
type Event struct {
	Name        string    `json:"nome"`
	Date        string    `json:"data"`
	Description string    `json:"descricao"`
	Capacity    int       `json:"vagas"`
	Enrolled    []Summary `json:"inscritos"`
	Status      Status    `json:"status,omitempty"`
}

// Key returns the normalized roster key for the event's current name.
func (e *Event) Key() string {
	return identity.NormalizeKey(e.Name)
}

// Full reports whether the event has no remaining capacity.
func (e *Event) Full() bool {
	return len(e.Enrolled) >= e.Capacity
}

// SameContent reports whether two events are exact duplicates in the sense
// of create-time conflict detection: normalized name plus date, description,
// and capacity all equal.
func (e *Event) SameContent(o *Event) bool {
	return e.Key() == o.Key() &&
		e.Date == o.Date &&
		e.Description == o.Description &&
		e.Capacity == o.Capacity
}

// EnrollmentRecord is one student's claim on one event's capacity in the
// canonical roster. ID is 1-based and contiguous per roster: after any
// removal the remaining records are renumbered 1..n.
type EnrollmentRecord struct {
	ID        int    `json:"id"`
	StudentID string `json:"id_aluno"`
	Name      string `json:"nome"`
	Email     string `json:"email"`
}

// EventsDocument is the persisted events collection: the catalog plus the
// per-event rosters keyed by normalized event name.
type EventsDocument struct {
	Events  []Event                       `json:"eventos"`
	Rosters map[string][]EnrollmentRecord `json:"inscricoes"`
}

// NewEventsDocument returns an empty, non-nil document.
func NewEventsDocument() *EventsDocument {
	return &EventsDocument{
		Events:  []Event{},
		Rosters: map[string][]EnrollmentRecord{},
	}
}

// FindEvent returns the event whose normalized key matches key, or nil.
// The catalog assumes at most one live event per key.
func (d *EventsDocument) FindEvent(key string) *Event {
	for i := range d.Events {
		if d.Events[i].Key() == key {
			return &d.Events[i]
		}
	}
	return nil
}

// Role distinguishes the two profile collections.
type Role string

const (
	RoleStudent     Role = "student"
	RoleCoordinator Role = "coordinator"
)

// Profile is a student or coordinator identity record. ID is the string form
// of a positive integer, sequential per collection, never reused; on disk it
// is the document key, not a field.
type Profile struct {
	ID     string   `json:"-"`
	Name   string   `json:"nome"`
	Email  string   `json:"email"`
	Course string   `json:"curso,omitempty"`
	Events []string `json:"eventos_inscritos"`
}

// Subscribed reports whether the profile is enrolled in the event with the
// given display name, matching by normalized key so casing drift in either
// place does not hide a subscription.
func (p *Profile) Subscribed(eventName string) bool {
	key := identity.NormalizeKey(eventName)
	for _, name := range p.Events {
		if identity.NormalizeKey(name) == key {
			return true
		}
	}
	return false
}

// ProfileMap is one persisted profile collection keyed by id.
type ProfileMap map[string]*Profile

// IDs returns the collection's ids in unspecified order.
func (m ProfileMap) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids
}
