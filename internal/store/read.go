package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dmoraes/inscrito/internal/identity"
	"github.com/dmoraes/inscrito/internal/model"
)

// LoadEvents reads the events document: the catalog plus the per-event
// rosters. Roster keys are normalized on read; entries whose raw keys
// collide after normalization are merged (sorted raw-key order, for
// determinism) and the merged roster is renumbered 1..n.
func (s *Store) LoadEvents() (*model.EventsDocument, error) {
	data, err := os.ReadFile(s.eventsPath())
	if err != nil {
		return nil, fmt.Errorf("read events document: %w", err)
	}
	if err := validateDocument(eventsSchema, data); err != nil {
		return nil, fmt.Errorf("events document %s: %w", s.eventsPath(), err)
	}

	doc := model.NewEventsDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("decode events document: %w", err)
	}

	doc.Rosters = normalizeRosterKeys(doc.Rosters)
	if doc.Events == nil {
		doc.Events = []model.Event{}
	}
	for i := range doc.Events {
		if doc.Events[i].Enrolled == nil {
			doc.Events[i].Enrolled = []model.Summary{}
		}
	}
	return doc, nil
}

// SaveEvents overwrites the whole events document.
func (s *Store) SaveEvents(doc *model.EventsDocument) error {
	if err := writeDocument(s.eventsPath(), doc); err != nil {
		return fmt.Errorf("save events document: %w", err)
	}
	return nil
}

// LoadStudents reads the students document.
func (s *Store) LoadStudents() (model.ProfileMap, error) {
	return s.loadProfiles(s.studentsPath())
}

// LoadCoordinators reads the coordinators document.
func (s *Store) LoadCoordinators() (model.ProfileMap, error) {
	return s.loadProfiles(s.coordinatorsPath())
}

// SaveStudents overwrites the whole students document.
func (s *Store) SaveStudents(m model.ProfileMap) error {
	if err := writeDocument(s.studentsPath(), m); err != nil {
		return fmt.Errorf("save students document: %w", err)
	}
	return nil
}

// SaveCoordinators overwrites the whole coordinators document.
func (s *Store) SaveCoordinators(m model.ProfileMap) error {
	if err := writeDocument(s.coordinatorsPath(), m); err != nil {
		return fmt.Errorf("save coordinators document: %w", err)
	}
	return nil
}

func (s *Store) loadProfiles(path string) (model.ProfileMap, error) {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile document %s: %w", name, err)
	}
	if err := validateDocument(profilesSchema, data); err != nil {
		return nil, fmt.Errorf("profile document %s: %w", path, err)
	}

	m := model.ProfileMap{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode profile document %s: %w", name, err)
	}

	// The id lives in the document key; mirror it onto the record.
	for id, p := range m {
		p.ID = id
		if p.Events == nil {
			p.Events = []string{}
		}
	}
	return m, nil
}

// normalizeRosterKeys rewrites every roster key through identity.NormalizeKey.
// Keys that collide once normalized are merged; merged rosters are renumbered
// so the 1..n contiguity invariant holds regardless of what was persisted.
func normalizeRosterKeys(raw map[string][]model.EnrollmentRecord) map[string][]model.EnrollmentRecord {
	if raw == nil {
		return map[string][]model.EnrollmentRecord{}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string][]model.EnrollmentRecord, len(raw))
	merged := map[string]bool{}
	for _, k := range keys {
		nk := identity.NormalizeKey(k)
		if _, ok := out[nk]; ok {
			merged[nk] = true
		}
		out[nk] = append(out[nk], raw[k]...)
	}

	for nk, roster := range out {
		if merged[nk] || !contiguous(roster) {
			for i := range roster {
				roster[i].ID = i + 1
			}
			out[nk] = roster
		}
	}
	return out
}

func contiguous(roster []model.EnrollmentRecord) bool {
	for i := range roster {
		if roster[i].ID != i+1 {
			return false
		}
	}
	return true
}
